package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"paynlp/internal/domain"
	"paynlp/internal/port"
)

func newInput(raw string, tokens []port.Token, root int) *input {
	return &input{
		raw: raw,
		sentence: &port.Sentence{
			Tokens: tokens,
			Graph:  port.NewDependencyGraph(tokens, root, nil),
		},
	}
}

func TestIntentFromRoot(t *testing.T) {
	tokens := []port.Token{
		{Index: 1, Word: "Sent", Lemma: "Send", POS: "VBD"},
		{Index: 2, Word: "money", Lemma: "money", POS: "NN"},
	}

	intent, ok := intentFromRoot(newInput("Sent money", tokens, 1))
	assert.True(t, ok)
	assert.Equal(t, domain.IntentSend, intent)

	_, ok = intentFromRoot(newInput("Sent money", tokens, 2))
	assert.False(t, ok, "root lemma outside the lexicon")

	_, ok = intentFromRoot(newInput("Sent money", tokens, 0))
	assert.False(t, ok, "no root")

	_, ok = intentFromRoot(&input{raw: "x", sentence: &port.Sentence{}})
	assert.False(t, ok, "no graph")
}

func TestIntentFromVerbs_SkipsVerbsOutsideLexicon(t *testing.T) {
	tokens := []port.Token{
		{Index: 1, Word: "I", Lemma: "I", POS: "PRP"},
		{Index: 2, Word: "want", Lemma: "want", POS: "VBP"},
		{Index: 3, Word: "to", Lemma: "to", POS: "TO"},
		{Index: 4, Word: "transfer", Lemma: "transfer", POS: "VB"},
		{Index: 5, Word: "pay", Lemma: "pay", POS: "VB"},
	}

	intent, ok := intentFromVerbs(newInput("", tokens, 0))
	assert.True(t, ok)
	assert.Equal(t, domain.IntentTransfer, intent)
}

func TestIntentFromVerbs_IgnoresNonVerbs(t *testing.T) {
	tokens := []port.Token{
		{Index: 1, Word: "pay", Lemma: "pay", POS: "NN"},
		{Index: 2, Word: "day", Lemma: "day", POS: "NN"},
	}

	_, ok := intentFromVerbs(newInput("", tokens, 0))
	assert.False(t, ok)
}

func TestIntentFromKeywords(t *testing.T) {
	tests := []struct {
		raw  string
		want domain.Intent
		ok   bool
	}{
		{"Quiero ENVIAR dinero", domain.IntentSend, true},
		{"hay que pagar y transferir", domain.IntentTransfer, true},
		{"pagar la cuenta", domain.IntentPay, true},
		// Spanish keys are tried before English ones.
		{"pay or enviar", domain.IntentSend, true},
		{"send or transfer", domain.IntentSend, true},
		{"transfer then pay", domain.IntentTransfer, true},
		{"payment sender transferal", "", false},
		{"pagaré mañana", "", false},
	}
	for _, tt := range tests {
		intent, ok := intentFromKeywords(&input{raw: tt.raw, sentence: &port.Sentence{}})
		assert.Equal(t, tt.ok, ok, tt.raw)
		assert.Equal(t, tt.want, intent, tt.raw)
	}
}

func TestExtractIntent_StrategyOrder(t *testing.T) {
	e := NewExtractor(nil, nil, nil)
	tokens := []port.Token{
		{Index: 1, Word: "pay", Lemma: "pay", POS: "VB"},
		{Index: 2, Word: "send", Lemma: "send", POS: "VB"},
	}
	out := &domain.ParseResult{}

	e.extractIntent(newInput("enviar", tokens, 2), out)

	assert.Equal(t, domain.IntentSend, *out.Intent)
	assert.Equal(t, "root-lemma", out.Trace[FieldIntent])
}
