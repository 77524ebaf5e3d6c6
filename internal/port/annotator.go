package port

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"paynlp/internal/domain"
)

// Token is one annotated word of a sentence. Index is 1-based; 0 is reserved
// for the virtual ROOT of the dependency graph.
type Token struct {
	Index int
	Word  string
	Lemma string
	POS   string
}

// Mention is a named-entity span.
type Mention struct {
	Text string
	Type domain.EntityType
}

// Edge is a labeled dependency from Governor to Dependent (token indexes).
type Edge struct {
	Governor  int
	Dependent int
	Relation  string
}

// DependencyGraph is the dependency parse of one sentence.
type DependencyGraph struct {
	Root   int // 0 when the annotator produced no root
	Edges  []Edge
	tokens map[int]Token
}

// NewDependencyGraph builds a graph over the given tokens.
func NewDependencyGraph(tokens []Token, root int, edges []Edge) *DependencyGraph {
	byIndex := make(map[int]Token, len(tokens))
	for _, t := range tokens {
		byIndex[t.Index] = t
	}
	return &DependencyGraph{Root: root, Edges: edges, tokens: byIndex}
}

// Token returns the token at idx.
func (g *DependencyGraph) Token(idx int) (Token, bool) {
	if g == nil {
		return Token{}, false
	}
	t, ok := g.tokens[idx]
	return t, ok
}

// RootToken returns the root token, if any.
func (g *DependencyGraph) RootToken() (Token, bool) {
	if g == nil || g.Root == 0 {
		return Token{}, false
	}
	return g.Token(g.Root)
}

// Outgoing returns the edges governed by idx, in annotator order.
func (g *DependencyGraph) Outgoing(idx int) []Edge {
	if g == nil {
		return nil
	}
	var out []Edge
	for _, e := range g.Edges {
		if e.Governor == idx {
			out = append(out, e)
		}
	}
	return out
}

// Descendants returns every token index reachable from idx, excluding idx
// itself, in ascending order. Enhanced dependency graphs may contain cycles.
func (g *DependencyGraph) Descendants(idx int) []int {
	if g == nil {
		return nil
	}
	seen := map[int]bool{idx: true}
	stack := []int{idx}
	var out []int
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, e := range g.Outgoing(n) {
			if seen[e.Dependent] {
				continue
			}
			seen[e.Dependent] = true
			out = append(out, e.Dependent)
			stack = append(stack, e.Dependent)
		}
	}
	sort.Ints(out)
	return out
}

// String renders the graph one relation per line, e.g. "nmod:to(send-4, gaby-7)".
func (g *DependencyGraph) String() string {
	if g == nil {
		return ""
	}
	var b strings.Builder
	if root, ok := g.RootToken(); ok {
		fmt.Fprintf(&b, "root(ROOT-0, %s-%d)\n", root.Word, root.Index)
	}
	for _, e := range g.Edges {
		gov, _ := g.Token(e.Governor)
		dep, _ := g.Token(e.Dependent)
		fmt.Fprintf(&b, "%s(%s-%d, %s-%d)\n", e.Relation, gov.Word, e.Governor, dep.Word, e.Dependent)
	}
	return b.String()
}

// Sentence is the annotation of one sentence.
type Sentence struct {
	Tokens   []Token
	Mentions []Mention
	Graph    *DependencyGraph
}

// FirstMention returns the text of the first mention of any of the given types.
func (s *Sentence) FirstMention(types ...domain.EntityType) (string, bool) {
	for _, m := range s.Mentions {
		for _, t := range types {
			if m.Type == t {
				return m.Text, true
			}
		}
	}
	return "", false
}

// Annotator abstracts the linguistic annotation engine: tokenization, sentence
// splitting, POS tagging, lemmatization, NER and dependency parsing.
type Annotator interface {
	Annotate(ctx context.Context, text string) ([]Sentence, error)
	Name() string
}
