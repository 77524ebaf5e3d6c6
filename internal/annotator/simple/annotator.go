// Package simple is an in-process rule-based annotator. It tags just enough
// for the extraction fallbacks (lexicon verbs, numbers, prepositions,
// determiners and emails) and serves when no CoreNLP server is reachable.
package simple

import (
	"context"
	"regexp"
	"strings"

	"paynlp/internal/config"
	"paynlp/internal/domain"
	"paynlp/internal/port"
)

const providerName = "simple"

var (
	tokenRe = regexp.MustCompile(
		`[\p{L}\p{N}._%+-]+@[\p{L}\p{N}-]+(?:\.[\p{L}\p{N}-]+)+` + // email
			`|@\w+` + // handle
			`|[0-9]{1,3}(?:,[0-9]{3})+(?:\.[0-9]+)?|[0-9]+(?:\.[0-9]+)?` + // number
			`|[\p{L}\p{M}]+(?:'[\p{L}]+)?` + // word
			`|\S`)
	emailRe = regexp.MustCompile(`^[\p{L}\p{N}._%+-]+@[\p{L}\p{N}-]+(?:\.[\p{L}\p{N}-]+)+$`)
	numRe   = regexp.MustCompile(`^[0-9][0-9,.]*$`)
)

// verbForms maps inflected payment verbs to their lemma.
var verbForms = map[string]string{
	"pay": "pay", "pays": "pay", "paid": "pay", "paying": "pay",
	"send": "send", "sends": "send", "sent": "send", "sending": "send",
	"transfer": "transfer", "transfers": "transfer", "transferred": "transfer", "transferring": "transfer",

	"pagar": "pagar", "pago": "pagar", "pagas": "pagar", "paga": "pagar", "pagamos": "pagar",
	"pague": "pagar", "pagué": "pagar", "pagó": "pagar", "págale": "pagar", "pagale": "pagar",
	"enviar": "enviar", "envío": "enviar", "envio": "enviar", "envías": "enviar", "envias": "enviar",
	"envía": "enviar", "envia": "enviar", "enviamos": "enviar", "envié": "enviar", "envió": "enviar",
	"envíale": "enviar", "enviale": "enviar", "manda": "enviar", "mandar": "enviar",
	"transferir": "transferir", "transfiero": "transferir", "transfieres": "transferir",
	"transfiere": "transferir", "transferimos": "transferir", "transferí": "transferir",
	"transfirió": "transferir",
}

var determiners = map[string]bool{
	"the": true, "a": true, "an": true, "my": true, "your": true, "our": true, "this": true, "that": true,
	"el": true, "la": true, "los": true, "las": true, "un": true, "una": true, "mi": true, "tu": true, "su": true,
}

// prepositions other than "to"; "a" is tagged as a determiner and still
// matches recipient prepositions by word.
var prepositions = map[string]bool{
	"for": true, "from": true, "of": true, "on": true, "in": true, "by": true, "with": true, "at": true,
	"para": true, "de": true, "del": true, "por": true, "con": true, "en": true,
}

// Annotator implements port.Annotator without external services.
type Annotator struct{}

// New creates a simple annotator.
func New() *Annotator {
	return &Annotator{}
}

// Factory adapts New to annotator.ProviderFactory.
func Factory(_ *config.AnnotatorProviderConfig) (port.Annotator, error) {
	return New(), nil
}

func (a *Annotator) Name() string {
	return providerName
}

func (a *Annotator) Annotate(ctx context.Context, text string) ([]port.Sentence, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var (
		out     []port.Sentence
		current []string
	)
	for _, w := range tokenRe.FindAllString(text, -1) {
		current = append(current, w)
		if w == "." || w == "!" || w == "?" {
			out = append(out, buildSentence(current))
			current = nil
		}
	}
	if len(current) > 0 {
		out = append(out, buildSentence(current))
	}
	return out, nil
}

func buildSentence(words []string) port.Sentence {
	tokens := make([]port.Token, 0, len(words))
	var mentions []port.Mention
	root := 0

	for i, w := range words {
		tok := tag(i+1, w)
		if root == 0 && strings.HasPrefix(tok.POS, "VB") {
			root = tok.Index
		}
		if emailRe.MatchString(w) {
			mentions = append(mentions, port.Mention{Text: w, Type: domain.EntityEmail})
		}
		tokens = append(tokens, tok)
	}

	return port.Sentence{
		Tokens:   tokens,
		Mentions: mentions,
		Graph:    port.NewDependencyGraph(tokens, root, nil),
	}
}

func tag(index int, word string) port.Token {
	lower := strings.ToLower(word)
	tok := port.Token{Index: index, Word: word, Lemma: lower, POS: "NN"}

	switch {
	case numRe.MatchString(word):
		tok.POS = "CD"
	case word == "." || word == "!" || word == "?":
		tok.POS = "."
	case word == ",":
		tok.POS = ","
	case word == ":" || word == ";":
		tok.POS = ":"
	case isCurrencySymbol(word):
		tok.POS = "$"
	case lower == "to":
		tok.POS = "TO"
	case determiners[lower]:
		tok.POS = "DT"
	case prepositions[lower]:
		tok.POS = "IN"
	default:
		if lemma, ok := verbForms[lower]; ok {
			tok.POS = "VB"
			tok.Lemma = lemma
		}
	}
	return tok
}

func isCurrencySymbol(w string) bool {
	switch w {
	case "$", "€", "£", "¥", "₹", "₩", "₽":
		return true
	}
	return false
}
