package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"paynlp/internal/annotator"
	"paynlp/internal/annotator/corenlp"
	"paynlp/internal/annotator/simple"
	"paynlp/internal/auth"
	"paynlp/internal/config"
	"paynlp/internal/extract"
	"paynlp/internal/handler"
	"paynlp/internal/logging"
	"paynlp/internal/port"
	"paynlp/internal/repository/noop"
	"paynlp/internal/repository/postgres"
	"paynlp/internal/router"
	"paynlp/internal/service"
)

// @title PayNLP API
// @version 1.0
// @description Payment intent extraction for English and Spanish sentences.
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() { _ = logging.Sync(logger) }()
	zap.ReplaceGlobals(logger)

	// Initialize annotators
	annotator.RegisterProvider("corenlp", corenlp.Factory)
	annotator.RegisterProvider("simple", simple.Factory)
	ann, err := annotator.NewChain(&cfg.Annotator, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize annotator: %w", err)
	}

	// Initialize repositories
	var parseLogRepo port.ParseLogRepository
	if cfg.DB.Enabled {
		db, err := postgres.NewDB(&cfg.DB)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer db.Close()

		worker := service.NewParseLogWorker(postgres.NewParseLogRepo(db), service.ParseLogWorkerConfig{
			QueueSize:    cfg.DB.LogQueueSize,
			Concurrency:  cfg.DB.LogWriters,
			WriteTimeout: cfg.DB.LogWriteTimeout,
		}, logger)
		// The worker outlives the signal context: requests still finishing
		// during srv.Shutdown enqueue writes. Deferred stop runs after
		// Shutdown returns and before the pool closes.
		workerCtx, stopWorker := context.WithCancel(context.Background())
		workerDone := make(chan struct{})
		go func() {
			worker.Start(workerCtx)
			close(workerDone)
		}()
		defer func() {
			stopWorker()
			<-workerDone
		}()
		parseLogRepo = worker
	} else {
		logger.Info("parse log storage disabled")
		parseLogRepo = noop.NewParseLogRepo()
	}

	// Initialize services
	extractor := extract.NewExtractor(ann, cfg.Extract.Prepositions, logger)
	parseSvc := service.NewParseService(extractor, parseLogRepo, ann.Name(), logger)
	parseLogSvc := service.NewParseLogService(parseLogRepo)
	tokens := auth.NewTokenService(&cfg.Auth)

	// Initialize handlers
	parseH := handler.NewParseHandler(parseSvc)
	parseLogH := handler.NewParseLogHandler(parseLogSvc)
	healthH := handler.NewHealthHandler(parseLogRepo)

	// Setup router
	r := router.Setup(cfg, logger, tokens, parseH, parseLogH, healthH)

	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("server starting",
			zap.String("addr", cfg.Server.Port),
			zap.String("environment", cfg.Server.Environment),
		)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	logger.Info("server stopped")
	return nil
}
