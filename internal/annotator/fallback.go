package annotator

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"paynlp/internal/domain"
	"paynlp/internal/metrics"
	"paynlp/internal/port"
)

// circuitState tracks backoff for a single annotator.
type circuitState struct {
	mu      sync.RWMutex
	resetAt time.Time // zero value = closed (healthy)
}

func (c *circuitState) isOpenWithReset(now time.Time) (time.Time, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.resetAt, !c.resetAt.IsZero() && now.Before(c.resetAt)
}

func (c *circuitState) open(resetAt time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.resetAt = resetAt
}

// FallbackAnnotator tries annotators in order, skipping those with open
// circuits. An UnavailableError opens the failing annotator's circuit for its
// RetryAfter. It implements port.Annotator.
type FallbackAnnotator struct {
	annotators []port.Annotator
	circuits   []*circuitState
	logger     *zap.Logger
}

// NewFallbackAnnotator creates a FallbackAnnotator from an ordered list of annotators.
func NewFallbackAnnotator(annotators []port.Annotator, logger *zap.Logger) *FallbackAnnotator {
	circuits := make([]*circuitState, len(annotators))
	for i := range circuits {
		circuits[i] = &circuitState{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FallbackAnnotator{
		annotators: annotators,
		circuits:   circuits,
		logger:     logger.Named("annotator.fallback"),
	}
}

func (f *FallbackAnnotator) Name() string {
	names := make([]string, len(f.annotators))
	for i, a := range f.annotators {
		names[i] = a.Name()
	}
	return "fallback(" + strings.Join(names, ",") + ")"
}

func (f *FallbackAnnotator) Annotate(ctx context.Context, text string) ([]port.Sentence, error) {
	now := time.Now()
	var lastErr error

	for i, a := range f.annotators {
		name := a.Name()
		if resetAt, open := f.circuits[i].isOpenWithReset(now); open {
			f.logger.Debug("skipping annotator, circuit open",
				zap.String("annotator", name),
				zap.Time("reset_at", resetAt),
			)
			metrics.AnnotatorRequests.WithLabelValues(name, metrics.ResultSkipped).Inc()
			continue
		}

		sentences, err := a.Annotate(ctx, text)
		if err == nil {
			metrics.AnnotatorRequests.WithLabelValues(name, metrics.ResultSuccess).Inc()
			return sentences, nil
		}

		metrics.AnnotatorRequests.WithLabelValues(name, metrics.ResultError).Inc()
		f.logger.Warn("annotator failed", zap.String("annotator", name), zap.Error(err))
		lastErr = err

		var unavailable *UnavailableError
		if errors.As(err, &unavailable) {
			f.circuits[i].open(now.Add(unavailable.RetryAfter))
		}
	}

	if lastErr == nil {
		return nil, fmt.Errorf("all annotators skipped: %w", domain.ErrAnnotatorUnavailable)
	}
	return nil, fmt.Errorf("all annotators failed: %w: %w", domain.ErrAnnotatorUnavailable, lastErr)
}
