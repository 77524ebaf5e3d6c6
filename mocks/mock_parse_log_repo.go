package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"paynlp/internal/domain"
)

// MockParseLogRepo is a mock implementation of port.ParseLogRepository.
type MockParseLogRepo struct {
	mock.Mock
}

func (m *MockParseLogRepo) Create(ctx context.Context, entry *domain.ParseLogEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockParseLogRepo) List(ctx context.Context, offset, limit int) ([]domain.ParseLogEntry, int, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.ParseLogEntry), args.Int(1), args.Error(2)
}

func (m *MockParseLogRepo) ListAll(ctx context.Context) ([]domain.ParseLogEntry, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ParseLogEntry), args.Error(1)
}

func (m *MockParseLogRepo) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
