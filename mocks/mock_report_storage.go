package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"paynlp/internal/port"
)

// MockReportStorage is a mock implementation of port.ReportStorage.
type MockReportStorage struct {
	mock.Mock
}

func (m *MockReportStorage) Upload(ctx context.Context, input port.UploadInput) (*port.UploadOutput, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*port.UploadOutput), args.Error(1)
}

func (m *MockReportStorage) GetPresignedURL(ctx context.Context, bucket, key string, expirySeconds int64) (string, error) {
	args := m.Called(ctx, bucket, key, expirySeconds)
	return args.String(0), args.Error(1)
}
