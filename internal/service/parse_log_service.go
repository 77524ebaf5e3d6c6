package service

import (
	"context"
	"fmt"
	"io"

	"paynlp/internal/domain"
	"paynlp/internal/export"
	"paynlp/internal/port"
)

// ParseLogService reads back recorded parses.
type ParseLogService interface {
	List(ctx context.Context, offset, limit int) ([]domain.ParseLogEntry, int, error)
	Export(ctx context.Context, format domain.ExportFormat, w io.Writer) error
}

type parseLogService struct {
	parseLogRepo port.ParseLogRepository
}

// NewParseLogService creates a new ParseLogService implementation.
func NewParseLogService(parseLogRepo port.ParseLogRepository) ParseLogService {
	return &parseLogService{parseLogRepo: parseLogRepo}
}

func (s *parseLogService) List(ctx context.Context, offset, limit int) ([]domain.ParseLogEntry, int, error) {
	return s.parseLogRepo.List(ctx, offset, limit)
}

// Export writes every entry to w in the requested format.
func (s *parseLogService) Export(ctx context.Context, format domain.ExportFormat, w io.Writer) error {
	if format != domain.ExportFormatCSV && format != domain.ExportFormatXLSX {
		return domain.ErrUnsupportedFormat
	}

	entries, err := s.parseLogRepo.ListAll(ctx)
	if err != nil {
		return fmt.Errorf("listing parse log: %w", err)
	}

	if format == domain.ExportFormatXLSX {
		return export.WriteXLSX(w, entries)
	}
	return export.WriteCSV(w, entries)
}
