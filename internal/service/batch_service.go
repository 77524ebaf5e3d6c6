package service

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"paynlp/internal/domain"
)

// BatchService parses many sentences with bounded concurrency.
type BatchService struct {
	parseService  ParseService
	annotatorName string
	concurrency   int
	logger        *zap.Logger
}

// NewBatchService creates a BatchService. Concurrency below 1 means 1.
func NewBatchService(parseService ParseService, annotatorName string, concurrency int, logger *zap.Logger) *BatchService {
	if concurrency < 1 {
		concurrency = 1
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BatchService{
		parseService:  parseService,
		annotatorName: annotatorName,
		concurrency:   concurrency,
		logger:        logger.Named("service.batch"),
	}
}

// ParseAll parses every sentence and returns one entry per input, in input
// order. Sentences not started before ctx is canceled are skipped and their
// slot is left nil.
func (b *BatchService) ParseAll(ctx context.Context, sentences []string) []*domain.ParseLogEntry {
	out := make([]*domain.ParseLogEntry, len(sentences))
	sem := make(chan struct{}, b.concurrency)
	var wg sync.WaitGroup

	b.logger.Info("batch started", zap.Int("sentences", len(sentences)), zap.Int("concurrency", b.concurrency))

loop:
	for i, text := range sentences {
		if ctx.Err() != nil {
			break
		}
		select {
		case <-ctx.Done():
			break loop
		case sem <- struct{}{}:
		}

		wg.Add(1)
		go func(i int, text string) {
			defer wg.Done()
			defer func() { <-sem }()

			start := time.Now()
			result := b.parseService.Parse(ctx, text, false)
			out[i] = domain.NewParseLogEntry("", text, b.annotatorName, result, time.Since(start))
		}(i, text)
	}

	wg.Wait()
	b.logger.Info("batch finished", zap.Int("sentences", len(sentences)))
	return out
}
