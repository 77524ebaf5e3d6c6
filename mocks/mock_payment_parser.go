package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"paynlp/internal/domain"
)

// MockPaymentParser is a mock implementation of port.PaymentParser.
type MockPaymentParser struct {
	mock.Mock
}

func (m *MockPaymentParser) Parse(ctx context.Context, text string) *domain.ParseResult {
	args := m.Called(ctx, text)
	return args.Get(0).(*domain.ParseResult)
}
