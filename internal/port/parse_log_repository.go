package port

import (
	"context"

	"paynlp/internal/domain"
)

// ParseLogRepository persists parse log entries.
type ParseLogRepository interface {
	Create(ctx context.Context, entry *domain.ParseLogEntry) error
	List(ctx context.Context, offset, limit int) ([]domain.ParseLogEntry, int, error)
	ListAll(ctx context.Context) ([]domain.ParseLogEntry, error)
	Ping(ctx context.Context) error
}
