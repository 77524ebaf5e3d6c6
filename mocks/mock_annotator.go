package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"paynlp/internal/port"
)

// MockAnnotator is a mock implementation of port.Annotator.
type MockAnnotator struct {
	mock.Mock
}

func (m *MockAnnotator) Annotate(ctx context.Context, text string) ([]port.Sentence, error) {
	args := m.Called(ctx, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]port.Sentence), args.Error(1)
}

func (m *MockAnnotator) Name() string {
	args := m.Called()
	return args.String(0)
}
