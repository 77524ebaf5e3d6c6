package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"paynlp/internal/domain"
)

// MockParseService is a mock implementation of service.ParseService.
type MockParseService struct {
	mock.Mock
}

func (m *MockParseService) Parse(ctx context.Context, text string, debug bool) *domain.ParseResult {
	args := m.Called(ctx, text, debug)
	return args.Get(0).(*domain.ParseResult)
}
