// Package noop provides a ParseLogRepository for deployments without a database.
package noop

import (
	"context"

	"paynlp/internal/domain"
	"paynlp/internal/port"
)

type parseLogRepo struct{}

// NewParseLogRepo returns a repository that drops writes and refuses reads.
func NewParseLogRepo() port.ParseLogRepository {
	return parseLogRepo{}
}

func (parseLogRepo) Create(_ context.Context, _ *domain.ParseLogEntry) error {
	return nil
}

func (parseLogRepo) List(_ context.Context, _, _ int) ([]domain.ParseLogEntry, int, error) {
	return nil, 0, domain.ErrParseLogDisabled
}

func (parseLogRepo) ListAll(_ context.Context) ([]domain.ParseLogEntry, error) {
	return nil, domain.ErrParseLogDisabled
}

func (parseLogRepo) Ping(_ context.Context) error {
	return nil
}
