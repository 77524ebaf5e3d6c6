package extract

import (
	"sort"
	"strings"

	"paynlp/internal/domain"
)

type recipientStrategy struct {
	name string
	find func(in *input) (string, bool)
	// mention candidates are entity spans; they skip preposition stripping.
	mention bool
}

func (e *Extractor) recipientStrategies() []recipientStrategy {
	return []recipientStrategy{
		{name: "ner-person", mention: true, find: func(in *input) (string, bool) {
			return in.sentence.FirstMention(domain.EntityPerson)
		}},
		{name: "dependency-nmod-to", find: recipientFromDependencies},
		{name: "ner-org-email", mention: true, find: func(in *input) (string, bool) {
			return in.sentence.FirstMention(domain.EntityOrganization, domain.EntityEmail)
		}},
		{name: "preposition-scan", find: e.recipientFromPreposition},
	}
}

func (e *Extractor) extractRecipient(in *input, out *domain.ParseResult) {
	for _, s := range e.recipients {
		candidate, ok := s.find(in)
		if !ok {
			continue
		}
		if cleaned := e.cleanRecipient(candidate, s.mention); cleaned != "" {
			out.Recipient = &cleaned
			trace(out, FieldRecipient, s.name)
			return
		}
	}
}

// recipientFromDependencies follows the root's first nmod:to edge and returns
// the dependent's whole subtree in surface order.
func recipientFromDependencies(in *input) (string, bool) {
	g := in.sentence.Graph
	root, ok := g.RootToken()
	if !ok {
		return "", false
	}
	for _, edge := range g.Outgoing(root.Index) {
		if !strings.HasPrefix(edge.Relation, "nmod:to") {
			continue
		}
		nodes := append([]int{edge.Dependent}, g.Descendants(edge.Dependent)...)
		sort.Ints(nodes)
		words := make([]string, 0, len(nodes))
		for _, idx := range nodes {
			if tok, ok := g.Token(idx); ok && tok.Word != "" {
				words = append(words, tok.Word)
			}
		}
		return strings.Join(words, " "), true
	}
	return "", false
}

// recipientFromPreposition collects the words after the first preposition
// token up to punctuation, another preposition or a verb. A leading "@" is
// kept and glued to the next word so split handles survive.
func (e *Extractor) recipientFromPreposition(in *input) (string, bool) {
	tokens := in.sentence.Tokens
	for i, t := range tokens {
		if !e.isPreposition(t.Word) && !e.isPreposition(t.Lemma) {
			continue
		}
		var b strings.Builder
		for _, next := range tokens[i+1:] {
			w := next.Word
			if w == "" {
				break
			}
			if isPunctToken(w) && !(w == "@" && b.Len() == 0) {
				break
			}
			if strings.HasPrefix(next.POS, "IN") || strings.HasPrefix(next.POS, "VB") {
				break
			}
			// A lone "@" joins the next word with no space: "@ alex" -> "@alex".
			if b.Len() > 0 && b.String() != "@" {
				b.WriteByte(' ')
			}
			b.WriteString(w)
		}
		phrase := strings.TrimSpace(b.String())
		return phrase, phrase != ""
	}
	return "", false
}

func (e *Extractor) isPreposition(w string) bool {
	if w == "" {
		return false
	}
	w = strings.ToLower(w)
	for _, p := range e.prepositions {
		if w == p {
			return true
		}
	}
	return false
}

// cleanRecipient normalizes a candidate. Handles keep their case and inner
// characters and only lose trailing punctuation.
func (e *Extractor) cleanRecipient(candidate string, mention bool) string {
	s := strings.TrimSpace(candidate)
	if strings.HasPrefix(s, "@") {
		return trimTrailingPunct(s)
	}
	s = trimPunct(s)
	if mention {
		return s
	}
	return stripLeadingPreposition(s, e.prepositions)
}
