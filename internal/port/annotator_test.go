package port_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"paynlp/internal/domain"
	"paynlp/internal/port"
)

func coffeeShopGraph() *port.DependencyGraph {
	tokens := []port.Token{
		{Index: 1, Word: "send", Lemma: "send", POS: "VB"},
		{Index: 2, Word: "$", Lemma: "$", POS: "$"},
		{Index: 3, Word: "10", Lemma: "10", POS: "CD"},
		{Index: 4, Word: "to", Lemma: "to", POS: "TO"},
		{Index: 5, Word: "the", Lemma: "the", POS: "DT"},
		{Index: 6, Word: "coffee", Lemma: "coffee", POS: "NN"},
		{Index: 7, Word: "shop", Lemma: "shop", POS: "NN"},
	}
	edges := []port.Edge{
		{Governor: 1, Dependent: 2, Relation: "obj"},
		{Governor: 2, Dependent: 3, Relation: "nummod"},
		{Governor: 1, Dependent: 7, Relation: "obl:to"},
		{Governor: 7, Dependent: 4, Relation: "case"},
		{Governor: 7, Dependent: 5, Relation: "det"},
		{Governor: 7, Dependent: 6, Relation: "compound"},
		// enhanced graphs can point back up the tree
		{Governor: 6, Dependent: 7, Relation: "ref"},
	}
	return port.NewDependencyGraph(tokens, 1, edges)
}

func TestDependencyGraph_Descendants(t *testing.T) {
	g := coffeeShopGraph()

	assert.Equal(t, []int{4, 5, 6}, g.Descendants(7))
	assert.Equal(t, []int{2, 3, 4, 5, 6, 7}, g.Descendants(1))
	assert.Empty(t, g.Descendants(3))
}

func TestDependencyGraph_Outgoing(t *testing.T) {
	g := coffeeShopGraph()

	out := g.Outgoing(1)
	assert.Len(t, out, 2)
	assert.Equal(t, "obj", out[0].Relation)
	assert.Equal(t, "obl:to", out[1].Relation)
}

func TestDependencyGraph_RootToken(t *testing.T) {
	root, ok := coffeeShopGraph().RootToken()
	assert.True(t, ok)
	assert.Equal(t, "send", root.Word)

	_, ok = port.NewDependencyGraph(nil, 0, nil).RootToken()
	assert.False(t, ok)
}

func TestDependencyGraph_NilSafe(t *testing.T) {
	var g *port.DependencyGraph

	_, ok := g.RootToken()
	assert.False(t, ok)
	_, ok = g.Token(1)
	assert.False(t, ok)
	assert.Nil(t, g.Outgoing(1))
	assert.Nil(t, g.Descendants(1))
	assert.Equal(t, "", g.String())
}

func TestDependencyGraph_String(t *testing.T) {
	s := coffeeShopGraph().String()

	assert.Contains(t, s, "root(ROOT-0, send-1)\n")
	assert.Contains(t, s, "obl:to(send-1, shop-7)\n")
	assert.Contains(t, s, "det(shop-7, the-5)\n")
}

func TestSentence_FirstMention(t *testing.T) {
	s := port.Sentence{Mentions: []port.Mention{
		{Text: "$5", Type: domain.EntityMoney},
		{Text: "Acme", Type: domain.EntityOrganization},
		{Text: "ann@example.com", Type: domain.EntityEmail},
	}}

	text, ok := s.FirstMention(domain.EntityEmail, domain.EntityOrganization)
	assert.True(t, ok)
	assert.Equal(t, "Acme", text)

	_, ok = s.FirstMention(domain.EntityPerson)
	assert.False(t, ok)
}
