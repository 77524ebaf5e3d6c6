package domain

import (
	"time"

	"github.com/google/uuid"
)

// ParseResult is the structured payment intent extracted from one sentence.
// Every field is optional; nil means the field could not be extracted.
// AmountValue is only ever set together with AmountText.
type ParseResult struct {
	Intent            *Intent  `json:"intent"`
	AmountText        *string  `json:"amountText"`
	AmountValue       *float64 `json:"amountValue"`
	Currency          *string  `json:"currency"`
	Recipient         *string  `json:"recipient"`
	DebugDependencies *string  `json:"debugDependencies,omitempty"`

	// Trace names the strategy that produced each populated field.
	Trace map[string]string `json:"trace,omitempty"`
}

// IsEmpty reports whether no field was extracted.
func (r *ParseResult) IsEmpty() bool {
	return r.Intent == nil && r.AmountText == nil && r.AmountValue == nil &&
		r.Currency == nil && r.Recipient == nil
}

// ParseLogEntry records one parse request and its outcome.
type ParseLogEntry struct {
	ID          uuid.UUID `db:"id" json:"id"`
	RequestID   string    `db:"request_id" json:"request_id"`
	InputText   string    `db:"input_text" json:"input_text"`
	Intent      *string   `db:"intent" json:"intent"`
	AmountText  *string   `db:"amount_text" json:"amount_text"`
	AmountValue *float64  `db:"amount_value" json:"amount_value"`
	Currency    *string   `db:"currency" json:"currency"`
	Recipient   *string   `db:"recipient" json:"recipient"`
	Annotator   string    `db:"annotator" json:"annotator"`
	LatencyMS   int64     `db:"latency_ms" json:"latency_ms"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

// NewParseLogEntry flattens a ParseResult into a log entry.
func NewParseLogEntry(requestID, input, annotator string, result *ParseResult, latency time.Duration) *ParseLogEntry {
	entry := &ParseLogEntry{
		ID:          uuid.New(),
		RequestID:   requestID,
		InputText:   input,
		Annotator:   annotator,
		AmountText:  result.AmountText,
		AmountValue: result.AmountValue,
		Currency:    result.Currency,
		Recipient:   result.Recipient,
		LatencyMS:   latency.Milliseconds(),
		CreatedAt:   time.Now().UTC(),
	}
	if result.Intent != nil {
		intent := string(*result.Intent)
		entry.Intent = &intent
	}
	return entry
}
