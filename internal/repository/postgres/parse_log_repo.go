package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"paynlp/internal/domain"
	"paynlp/internal/port"
)

type parseLogRepo struct {
	db *sqlx.DB
}

// NewParseLogRepo creates a new PostgreSQL-backed ParseLogRepository.
func NewParseLogRepo(db *sqlx.DB) port.ParseLogRepository {
	return &parseLogRepo{db: db}
}

func (r *parseLogRepo) Create(ctx context.Context, entry *domain.ParseLogEntry) error {
	query := `INSERT INTO parse_log
		(id, request_id, input_text, intent, amount_text, amount_value, currency, recipient, annotator, latency_ms, created_at)
		VALUES (:id, :request_id, :input_text, :intent, :amount_text, :amount_value, :currency, :recipient, :annotator, :latency_ms, :created_at)`

	if _, err := r.db.NamedExecContext(ctx, query, entry); err != nil {
		return fmt.Errorf("parseLogRepo.Create: %w", err)
	}
	return nil
}

func (r *parseLogRepo) List(ctx context.Context, offset, limit int) ([]domain.ParseLogEntry, int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM parse_log"); err != nil {
		return nil, 0, fmt.Errorf("parseLogRepo.List count: %w", err)
	}

	var entries []domain.ParseLogEntry
	err := r.db.SelectContext(ctx, &entries,
		"SELECT * FROM parse_log ORDER BY created_at DESC LIMIT $1 OFFSET $2", limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("parseLogRepo.List: %w", err)
	}
	return entries, total, nil
}

func (r *parseLogRepo) ListAll(ctx context.Context) ([]domain.ParseLogEntry, error) {
	var entries []domain.ParseLogEntry
	if err := r.db.SelectContext(ctx, &entries, "SELECT * FROM parse_log ORDER BY created_at DESC"); err != nil {
		return nil, fmt.Errorf("parseLogRepo.ListAll: %w", err)
	}
	return entries, nil
}

func (r *parseLogRepo) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}
