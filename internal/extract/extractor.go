// Package extract turns one annotated EN/ES sentence into a payment intent:
// action, amount, currency and recipient. Each field is resolved by an ordered
// list of strategies; the first strategy that yields a value wins.
package extract

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"paynlp/internal/domain"
	"paynlp/internal/port"
)

// DefaultPrepositions introduce a recipient phrase ("to John", "a Juan", "para María").
var DefaultPrepositions = []string{"to", "a", "para"}

// Trace keys.
const (
	FieldIntent    = "intent"
	FieldAmount    = "amount"
	FieldRecipient = "recipient"
)

// input is the per-call state shared by all strategies.
type input struct {
	raw      string
	sentence *port.Sentence
}

// Extractor runs the intent, amount and recipient strategies against the
// first sentence of its input. It holds no per-call state and is safe for
// concurrent use.
type Extractor struct {
	annotator    port.Annotator
	prepositions []string
	logger       *zap.Logger

	intents    []intentStrategy
	amounts    []amountStrategy
	recipients []recipientStrategy
}

// NewExtractor creates an Extractor. An empty prepositions list selects
// DefaultPrepositions.
func NewExtractor(annotator port.Annotator, prepositions []string, logger *zap.Logger) *Extractor {
	if len(prepositions) == 0 {
		prepositions = DefaultPrepositions
	}
	normalized := make([]string, 0, len(prepositions))
	for _, p := range prepositions {
		if p = strings.ToLower(strings.TrimSpace(p)); p != "" {
			normalized = append(normalized, p)
		}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	e := &Extractor{
		annotator:    annotator,
		prepositions: normalized,
		logger:       logger.Named("extract"),
	}
	e.intents = intentStrategies()
	e.amounts = amountStrategies()
	e.recipients = e.recipientStrategies()
	return e
}

// Parse extracts a ParseResult from text. It never fails: anything that
// cannot be extracted is left nil. Blank input is answered without calling
// the annotator, and an annotator that returns no sentence yields an empty
// result. An annotator error is different: extraction continues against an
// empty sentence, so the raw-text keyword intent and money scans can still
// fill fields while the recipient stays nil.
func (e *Extractor) Parse(ctx context.Context, text string) *domain.ParseResult {
	out := &domain.ParseResult{}
	if strings.TrimSpace(text) == "" {
		return out
	}

	var sentence port.Sentence
	sentences, err := e.annotator.Annotate(ctx, text)
	switch {
	case err != nil:
		e.logger.Warn("annotation failed, continuing with raw-text strategies",
			zap.String("annotator", e.annotator.Name()),
			zap.Error(err),
		)
	case len(sentences) == 0:
		return out
	default:
		sentence = sentences[0]
	}

	in := &input{raw: text, sentence: &sentence}
	e.extractIntent(in, out)
	e.extractAmount(in, out)
	e.extractRecipient(in, out)

	if sentence.Graph != nil {
		deps := sentence.Graph.String()
		out.DebugDependencies = &deps
	}
	return out
}

func trace(out *domain.ParseResult, field, strategy string) {
	if out.Trace == nil {
		out.Trace = make(map[string]string, 3)
	}
	out.Trace[field] = strategy
}
