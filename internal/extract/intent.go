package extract

import (
	"strings"

	"paynlp/internal/domain"
)

type intentStrategy struct {
	name string
	find func(in *input) (domain.Intent, bool)
}

func intentStrategies() []intentStrategy {
	return []intentStrategy{
		{name: "root-lemma", find: intentFromRoot},
		{name: "first-verb", find: intentFromVerbs},
		{name: "keyword-scan", find: intentFromKeywords},
	}
}

func (e *Extractor) extractIntent(in *input, out *domain.ParseResult) {
	for _, s := range e.intents {
		if intent, ok := s.find(in); ok {
			out.Intent = &intent
			trace(out, FieldIntent, s.name)
			return
		}
	}
}

func lookupIntent(lemma string) (domain.Intent, bool) {
	intent, ok := domain.IntentLexicon[strings.ToLower(lemma)]
	return intent, ok
}

func intentFromRoot(in *input) (domain.Intent, bool) {
	root, ok := in.sentence.Graph.RootToken()
	if !ok || root.Lemma == "" {
		return "", false
	}
	return lookupIntent(root.Lemma)
}

// intentFromVerbs returns the intent of the first verb whose lemma is in the
// lexicon. Verbs outside the lexicon ("could", "want") are skipped.
func intentFromVerbs(in *input) (domain.Intent, bool) {
	for _, t := range in.sentence.Tokens {
		if !strings.HasPrefix(t.POS, "V") || t.Lemma == "" {
			continue
		}
		if intent, ok := lookupIntent(t.Lemma); ok {
			return intent, true
		}
	}
	return "", false
}

func intentFromKeywords(in *input) (domain.Intent, bool) {
	low := strings.ToLower(in.raw)
	for _, kw := range domain.IntentKeywordOrder {
		if containsWord(low, kw) {
			return domain.IntentLexicon[kw], true
		}
	}
	return "", false
}
