package mocks

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"

	"paynlp/internal/domain"
)

// MockParseLogService is a mock implementation of service.ParseLogService.
type MockParseLogService struct {
	mock.Mock
}

func (m *MockParseLogService) List(ctx context.Context, offset, limit int) ([]domain.ParseLogEntry, int, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.ParseLogEntry), args.Int(1), args.Error(2)
}

func (m *MockParseLogService) Export(ctx context.Context, format domain.ExportFormat, w io.Writer) error {
	args := m.Called(ctx, format, w)
	return args.Error(0)
}
