package corenlp

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"paynlp/internal/annotator"
	"paynlp/internal/config"
	"paynlp/internal/domain"
	"paynlp/internal/port"
)

const (
	providerName   = "corenlp"
	defaultBaseURL = "http://localhost:9000"
	annotators     = "tokenize,ssplit,pos,lemma,ner,entitymentions,depparse"
)

// Client implements port.Annotator against a Stanford CoreNLP server.
type Client struct {
	baseURL    string
	properties string
	client     *http.Client
}

// NewClient creates a CoreNLP client from a provider config.
func NewClient(cfg *config.AnnotatorProviderConfig) *Client {
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	timeout := time.Duration(cfg.TimeoutSecs) * time.Second
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL:    baseURL,
		properties: buildProperties(cfg.Language),
		client:     &http.Client{Timeout: timeout},
	}
}

// Factory adapts NewClient to annotator.ProviderFactory.
func Factory(cfg *config.AnnotatorProviderConfig) (port.Annotator, error) {
	return NewClient(cfg), nil
}

func (c *Client) Name() string {
	return providerName
}

func (c *Client) Annotate(ctx context.Context, text string) ([]port.Sentence, error) {
	endpoint := c.baseURL + "/?properties=" + url.QueryEscape(c.properties)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(text))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "text/plain; charset=utf-8")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling corenlp server: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		baseErr := fmt.Errorf("corenlp server error (status %d): %s", resp.StatusCode, strings.TrimSpace(string(respBody)))
		if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode == http.StatusServiceUnavailable {
			retryAfter := annotator.ParseRetryAfterHeader(resp.Header.Get("Retry-After"))
			return nil, annotator.NewUnavailableError(providerName, baseErr, retryAfter)
		}
		return nil, baseErr
	}

	return parseResponse(respBody)
}

func buildProperties(language string) string {
	props := map[string]string{
		"annotators":           annotators,
		"outputFormat":         "json",
		"ner.applyFineGrained": "false",
		"tokenize.options":     "ptb3Escaping=false",
	}
	if language != "" && !strings.EqualFold(language, "english") {
		props["pipelineLanguage"] = strings.ToLower(language)
	}
	// json.Marshal sorts map keys, so the query string is stable.
	b, _ := json.Marshal(props)
	return string(b)
}

// Response types for the CoreNLP JSON output format.

type document struct {
	Sentences []sentence `json:"sentences"`
}

type sentence struct {
	Tokens         []token         `json:"tokens"`
	EntityMentions []entityMention `json:"entitymentions"`
	Dependencies   []dependency    `json:"enhancedPlusPlusDependencies"`
}

type token struct {
	Index int    `json:"index"`
	Word  string `json:"word"`
	Lemma string `json:"lemma"`
	POS   string `json:"pos"`
}

type entityMention struct {
	Text string `json:"text"`
	NER  string `json:"ner"`
}

type dependency struct {
	Dep       string `json:"dep"`
	Governor  int    `json:"governor"`
	Dependent int    `json:"dependent"`
}

func parseResponse(body []byte) ([]port.Sentence, error) {
	var doc document
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("decoding corenlp response: %w", err)
	}

	out := make([]port.Sentence, 0, len(doc.Sentences))
	for i := range doc.Sentences {
		out = append(out, toSentence(&doc.Sentences[i]))
	}
	return out, nil
}

func toSentence(s *sentence) port.Sentence {
	tokens := make([]port.Token, 0, len(s.Tokens))
	for _, t := range s.Tokens {
		tokens = append(tokens, port.Token{Index: t.Index, Word: t.Word, Lemma: t.Lemma, POS: t.POS})
	}

	var mentions []port.Mention
	for _, m := range s.EntityMentions {
		mentions = append(mentions, port.Mention{Text: m.Text, Type: domain.EntityType(m.NER)})
	}

	root := 0
	var edges []port.Edge
	for _, d := range s.Dependencies {
		if d.Governor == 0 || d.Dep == "ROOT" {
			if root == 0 {
				root = d.Dependent
			}
			continue
		}
		edges = append(edges, port.Edge{Governor: d.Governor, Dependent: d.Dependent, Relation: d.Dep})
	}

	return port.Sentence{
		Tokens:   tokens,
		Mentions: mentions,
		Graph:    port.NewDependencyGraph(tokens, root, edges),
	}
}
