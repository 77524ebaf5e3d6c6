package extract_test

import (
	"context"
	"strings"

	"paynlp/internal/domain"
	"paynlp/internal/port"
)

// staticAnnotator answers with fixed, CoreNLP-shaped annotations keyed by input.
type staticAnnotator struct {
	sentences map[string][]port.Sentence
}

func (a *staticAnnotator) Annotate(_ context.Context, text string) ([]port.Sentence, error) {
	return a.sentences[text], nil
}

func (a *staticAnnotator) Name() string { return "static" }

// tok builds tokens from "word/lemma/POS" triples; indexes start at 1.
func tok(specs ...string) []port.Token {
	tokens := make([]port.Token, len(specs))
	for i, s := range specs {
		parts := strings.Split(s, "/")
		tokens[i] = port.Token{Index: i + 1, Word: parts[0], Lemma: parts[1], POS: parts[2]}
	}
	return tokens
}

func sentence(tokens []port.Token, root int, edges []port.Edge, mentions ...port.Mention) port.Sentence {
	return port.Sentence{
		Tokens:   tokens,
		Mentions: mentions,
		Graph:    port.NewDependencyGraph(tokens, root, edges),
	}
}

func money(text string) port.Mention  { return port.Mention{Text: text, Type: domain.EntityMoney} }
func person(text string) port.Mention { return port.Mention{Text: text, Type: domain.EntityPerson} }

const (
	inputGaby       = "could you please send  $15  to gaby?"
	inputJohn       = "send 20 dollars to John."
	inputAlex       = "transfer €1,234.50 to @alex99"
	inputJuan       = "enviar 20 euros a Juan."
	inputCoffeeShop = "send $10 to the coffee shop."
)

func coreNLPFixtures() *staticAnnotator {
	gaby := tok("could/could/MD", "you/you/PRP", "please/please/UH", "send/send/VB",
		"$/$/$", "15/15/CD", "to/to/TO", "gaby/gaby/NN", "?/?/.")
	john := tok("send/send/VB", "20/20/CD", "dollars/dollar/NNS", "to/to/TO", "John/John/NNP", "./././")
	alex := tok("transfer/transfer/VB", "€/€/NN", "1,234.50/1,234.50/CD", "to/to/TO", "@alex99/@alex99/NN")
	juan := tok("enviar/enviar/VB", "20/20/CD", "euros/euro/NNS", "a/a/DT", "Juan/Juan/NNP", "./././")
	shop := tok("send/send/VB", "$/$/$", "10/10/CD", "to/to/TO", "the/the/DT",
		"coffee/coffee/NN", "shop/shop/NN", "./././")

	return &staticAnnotator{sentences: map[string][]port.Sentence{
		inputGaby: {sentence(gaby, 4, []port.Edge{
			{Governor: 4, Dependent: 1, Relation: "aux"},
			{Governor: 4, Dependent: 2, Relation: "nsubj"},
			{Governor: 4, Dependent: 3, Relation: "discourse"},
			{Governor: 4, Dependent: 5, Relation: "dobj"},
			{Governor: 5, Dependent: 6, Relation: "nummod"},
			{Governor: 8, Dependent: 7, Relation: "case"},
			{Governor: 4, Dependent: 8, Relation: "nmod:to"},
			{Governor: 4, Dependent: 9, Relation: "punct"},
		}, money("$15"))},
		inputJohn: {sentence(john, 1, []port.Edge{
			{Governor: 1, Dependent: 3, Relation: "dobj"},
			{Governor: 3, Dependent: 2, Relation: "nummod"},
			{Governor: 5, Dependent: 4, Relation: "case"},
			{Governor: 1, Dependent: 5, Relation: "nmod:to"},
			{Governor: 1, Dependent: 6, Relation: "punct"},
		}, money("20 dollars"), person("John"))},
		inputAlex: {sentence(alex, 1, []port.Edge{
			{Governor: 1, Dependent: 3, Relation: "dobj"},
			{Governor: 3, Dependent: 2, Relation: "compound"},
			{Governor: 5, Dependent: 4, Relation: "case"},
			{Governor: 1, Dependent: 5, Relation: "nmod:to"},
		}, money("€1,234.50"))},
		inputJuan: {sentence(juan, 1, []port.Edge{
			{Governor: 1, Dependent: 3, Relation: "dobj"},
			{Governor: 3, Dependent: 2, Relation: "nummod"},
			{Governor: 5, Dependent: 4, Relation: "det"},
			{Governor: 1, Dependent: 5, Relation: "dep"},
			{Governor: 1, Dependent: 6, Relation: "punct"},
		}, money("20 euros"), person("Juan"))},
		inputCoffeeShop: {sentence(shop, 1, []port.Edge{
			{Governor: 1, Dependent: 2, Relation: "dobj"},
			{Governor: 2, Dependent: 3, Relation: "nummod"},
			{Governor: 7, Dependent: 4, Relation: "case"},
			{Governor: 7, Dependent: 5, Relation: "det"},
			{Governor: 7, Dependent: 6, Relation: "compound"},
			{Governor: 1, Dependent: 7, Relation: "nmod:to"},
			{Governor: 1, Dependent: 8, Relation: "punct"},
		}, money("$10"))},
	}}
}
