package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"paynlp/internal/annotator"
	"paynlp/internal/annotator/corenlp"
	"paynlp/internal/annotator/simple"
	"paynlp/internal/domain"
	"paynlp/internal/export"
	"paynlp/internal/extract"
	"paynlp/internal/port"
	"paynlp/internal/repository/noop"
	"paynlp/internal/repository/postgres"
	"paynlp/internal/service"
	s3storage "paynlp/internal/storage/s3"
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Parse every sentence in a spreadsheet",
	Long: `Batch reads sentences from column A of an XLSX sheet, parses each one and
writes a results workbook with one row per sentence. With --s3-key the
workbook is also uploaded to the configured bucket and a presigned download
URL is printed. Parses are recorded in the parse log when the database is
enabled.`,
	RunE: runBatch,
}

func init() {
	batchCmd.Flags().String("in", "", "input workbook (required)")
	batchCmd.Flags().String("out", "results.xlsx", "output workbook")
	batchCmd.Flags().String("sheet", "", "input sheet name (default: first sheet)")
	batchCmd.Flags().String("s3-key", "", "upload the results to this object key")
	batchCmd.Flags().Int("concurrency", 4, "sentences parsed in parallel")
	_ = batchCmd.MarkFlagRequired("in")

	rootCmd.AddCommand(batchCmd)
}

func runBatch(cmd *cobra.Command, _ []string) error {
	in, _ := cmd.Flags().GetString("in")
	out, _ := cmd.Flags().GetString("out")
	sheet, _ := cmd.Flags().GetString("sheet")
	s3Key, _ := cmd.Flags().GetString("s3-key")
	concurrency, _ := cmd.Flags().GetInt("concurrency")

	ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	f, err := os.Open(in)
	if err != nil {
		return fmt.Errorf("opening input: %w", err)
	}
	sentences, err := export.ReadSentences(f, sheet)
	_ = f.Close()
	if err != nil {
		return err
	}
	logger.Info("sentences loaded", zap.String("file", in), zap.Int("count", len(sentences)))

	annotator.RegisterProvider("corenlp", corenlp.Factory)
	annotator.RegisterProvider("simple", simple.Factory)
	ann, err := annotator.NewChain(&cfg.Annotator, logger)
	if err != nil {
		return fmt.Errorf("creating annotator: %w", err)
	}

	var repo port.ParseLogRepository = noop.NewParseLogRepo()
	if cfg.DB.Enabled {
		db, err := postgres.NewDB(&cfg.DB)
		if err != nil {
			return fmt.Errorf("connecting to database: %w", err)
		}
		defer func() { _ = db.Close() }()
		repo = postgres.NewParseLogRepo(db)
	}

	extractor := extract.NewExtractor(ann, cfg.Extract.Prepositions, logger)
	parseSvc := service.NewParseService(extractor, repo, ann.Name(), logger)
	entries := service.NewBatchService(parseSvc, ann.Name(), concurrency, logger).ParseAll(ctx, sentences)

	parsed := make([]domain.ParseLogEntry, 0, len(entries))
	for _, e := range entries {
		if e != nil {
			parsed = append(parsed, *e)
		}
	}
	if len(parsed) < len(entries) {
		logger.Warn("batch interrupted", zap.Int("parsed", len(parsed)), zap.Int("total", len(entries)))
	}

	var buf bytes.Buffer
	if err := export.WriteXLSX(&buf, parsed); err != nil {
		return err
	}
	if err := os.WriteFile(out, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	logger.Info("results written", zap.String("file", out), zap.Int("rows", len(parsed)))

	if s3Key != "" {
		url, err := publishReport(ctx, s3Key, buf.Bytes())
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), url)
	}
	return nil
}

func publishReport(ctx context.Context, key string, workbook []byte) (string, error) {
	storage, err := s3storage.NewReportStorage(ctx, &cfg.S3)
	if err != nil {
		return "", fmt.Errorf("initializing S3: %w", err)
	}
	return service.NewReportService(storage, cfg.S3.Bucket, cfg.S3.PresignExpiry).Publish(ctx, key, workbook)
}
