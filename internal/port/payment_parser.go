package port

import (
	"context"

	"paynlp/internal/domain"
)

// PaymentParser turns one free-text sentence into a ParseResult. It never
// fails; anything it cannot extract is left nil.
type PaymentParser interface {
	Parse(ctx context.Context, text string) *domain.ParseResult
}
