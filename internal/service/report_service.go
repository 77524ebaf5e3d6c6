package service

import (
	"bytes"
	"context"
	"fmt"

	"paynlp/internal/domain"
	"paynlp/internal/export"
	"paynlp/internal/port"
)

// ReportService publishes batch result workbooks to object storage.
type ReportService interface {
	Publish(ctx context.Context, key string, workbook []byte) (string, error)
}

type reportService struct {
	storage       port.ReportStorage
	bucket        string
	presignExpiry int64
}

// NewReportService creates a new ReportService implementation.
func NewReportService(storage port.ReportStorage, bucket string, presignExpiry int64) ReportService {
	return &reportService{storage: storage, bucket: bucket, presignExpiry: presignExpiry}
}

// Publish uploads the workbook under key and returns a presigned download URL.
func (s *reportService) Publish(ctx context.Context, key string, workbook []byte) (string, error) {
	if key == "" {
		return "", fmt.Errorf("empty report key: %w", domain.ErrInvalidRequest)
	}

	_, err := s.storage.Upload(ctx, port.UploadInput{
		Bucket:      s.bucket,
		Key:         key,
		Body:        bytes.NewReader(workbook),
		ContentType: export.ContentType(domain.ExportFormatXLSX),
	})
	if err != nil {
		return "", fmt.Errorf("uploading report: %w", err)
	}

	url, err := s.storage.GetPresignedURL(ctx, s.bucket, key, s.presignExpiry)
	if err != nil {
		return "", fmt.Errorf("presigning report: %w", err)
	}
	return url, nil
}
