package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"paynlp/internal/domain"
	"paynlp/internal/metrics"
	"paynlp/internal/port"
)

var (
	// ErrParseLogQueueFull is returned by ParseLogWorker.Create when the write
	// queue has no room.
	ErrParseLogQueueFull = errors.New("parse log queue full")

	// ErrParseLogWorkerStopped is returned by ParseLogWorker.Create once Start
	// has begun shutting down.
	ErrParseLogWorkerStopped = errors.New("parse log worker stopped")
)

// ParseLogWorkerConfig holds settings for the parse log writer.
type ParseLogWorkerConfig struct {
	QueueSize    int
	Concurrency  int
	WriteTimeout time.Duration
}

// ParseLogWorker moves parse log writes off the request path. Create only
// enqueues; Start persists queued entries to the wrapped repository. Reads
// go straight to the repository. It implements port.ParseLogRepository.
type ParseLogWorker struct {
	repo   port.ParseLogRepository
	cfg    ParseLogWorkerConfig
	queue  chan *domain.ParseLogEntry
	logger *zap.Logger
	wg     sync.WaitGroup

	mu      sync.RWMutex
	stopped bool
}

// NewParseLogWorker creates a ParseLogWorker in front of repo.
func NewParseLogWorker(repo port.ParseLogRepository, cfg ParseLogWorkerConfig, logger *zap.Logger) *ParseLogWorker {
	if cfg.QueueSize < 1 {
		cfg.QueueSize = 1
	}
	if cfg.Concurrency < 1 {
		cfg.Concurrency = 1
	}
	if cfg.WriteTimeout <= 0 {
		cfg.WriteTimeout = 5 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ParseLogWorker{
		repo:   repo,
		cfg:    cfg,
		queue:  make(chan *domain.ParseLogEntry, cfg.QueueSize),
		logger: logger.Named("service.parse_log_worker"),
	}
}

// Create enqueues entry without blocking. Entries offered after shutdown
// began are refused rather than silently dropped.
func (w *ParseLogWorker) Create(_ context.Context, entry *domain.ParseLogEntry) error {
	w.mu.RLock()
	defer w.mu.RUnlock()
	if w.stopped {
		return ErrParseLogWorkerStopped
	}
	select {
	case w.queue <- entry:
		return nil
	default:
		return ErrParseLogQueueFull
	}
}

func (w *ParseLogWorker) List(ctx context.Context, offset, limit int) ([]domain.ParseLogEntry, int, error) {
	return w.repo.List(ctx, offset, limit)
}

func (w *ParseLogWorker) ListAll(ctx context.Context) ([]domain.ParseLogEntry, error) {
	return w.repo.ListAll(ctx)
}

func (w *ParseLogWorker) Ping(ctx context.Context) error {
	return w.repo.Ping(ctx)
}

// Start writes queued entries until ctx is canceled, then writes whatever is
// still queued. It blocks until every write has finished.
func (w *ParseLogWorker) Start(ctx context.Context) {
	sem := make(chan struct{}, w.cfg.Concurrency)

	w.logger.Info("started",
		zap.Int("queue_size", w.cfg.QueueSize),
		zap.Int("concurrency", w.cfg.Concurrency),
	)

	for {
		select {
		case <-ctx.Done():
			// Waits out in-flight Create calls, so the drain below sees every
			// accepted entry.
			w.mu.Lock()
			w.stopped = true
			w.mu.Unlock()

			w.logger.Info("shutting down, draining queue", zap.Int("queued", len(w.queue)))
			for {
				select {
				case entry := <-w.queue:
					w.dispatch(sem, entry)
				default:
					w.wg.Wait()
					w.logger.Info("shutdown complete")
					return
				}
			}
		case entry := <-w.queue:
			w.dispatch(sem, entry)
		}
	}
}

func (w *ParseLogWorker) dispatch(sem chan struct{}, entry *domain.ParseLogEntry) {
	sem <- struct{}{} // acquire
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		defer func() { <-sem }() // release

		// Fresh context so queued writes complete during shutdown.
		ctx, cancel := context.WithTimeout(context.Background(), w.cfg.WriteTimeout)
		defer cancel()

		if err := w.repo.Create(ctx, entry); err != nil {
			metrics.ParseLogWriteErrors.Inc()
			w.logger.Warn("failed to write parse log",
				zap.String("request.id", entry.RequestID),
				zap.Stringer("entry.id", entry.ID),
				zap.Error(err),
			)
		}
	}()
}
