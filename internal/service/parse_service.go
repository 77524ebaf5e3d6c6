package service

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"paynlp/internal/domain"
	"paynlp/internal/logging"
	"paynlp/internal/metrics"
	"paynlp/internal/port"
)

// ParseService runs payment-intent extraction for the HTTP and batch surfaces.
type ParseService interface {
	Parse(ctx context.Context, text string, debug bool) *domain.ParseResult
}

type parseService struct {
	parser        port.PaymentParser
	parseLogRepo  port.ParseLogRepository
	annotatorName string
	logger        *zap.Logger
}

// NewParseService creates a new ParseService implementation.
func NewParseService(
	parser port.PaymentParser,
	parseLogRepo port.ParseLogRepository,
	annotatorName string,
	logger *zap.Logger,
) ParseService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &parseService{
		parser:        parser,
		parseLogRepo:  parseLogRepo,
		annotatorName: annotatorName,
		logger:        logger.Named("service.parse"),
	}
}

// Parse extracts a result and records it. The parse log write is best
// effort: a failure is logged and counted, never returned. Diagnostics are
// removed unless debug is set.
func (s *parseService) Parse(ctx context.Context, text string, debug bool) *domain.ParseResult {
	start := time.Now()
	result := s.parser.Parse(ctx, text)
	elapsed := time.Since(start)

	metrics.ParseDuration.Observe(elapsed.Seconds())
	observeResult(result)

	if strings.TrimSpace(text) != "" {
		requestID := logging.RequestIDFromContext(ctx)
		entry := domain.NewParseLogEntry(requestID, text, s.annotatorName, result, elapsed)
		if err := s.parseLogRepo.Create(ctx, entry); err != nil {
			metrics.ParseLogWriteErrors.Inc()
			s.logger.Warn("failed to write parse log",
				append(logging.ContextFields(ctx), zap.Error(err))...)
		}
	}

	s.logger.Debug("parsed",
		append(logging.ContextFields(ctx),
			zap.Duration("elapsed", elapsed),
			zap.Any("trace", result.Trace),
		)...)

	out := *result
	if !debug {
		out.DebugDependencies = nil
		out.Trace = nil
	}
	return &out
}

func observeResult(r *domain.ParseResult) {
	intent := "none"
	if r.Intent != nil {
		intent = string(*r.Intent)
	}
	metrics.ParseRequests.WithLabelValues(intent).Inc()
	metrics.ObserveField("intent", r.Intent != nil)
	metrics.ObserveField("amount_text", r.AmountText != nil)
	metrics.ObserveField("amount_value", r.AmountValue != nil)
	metrics.ObserveField("currency", r.Currency != nil)
	metrics.ObserveField("recipient", r.Recipient != nil)
}
