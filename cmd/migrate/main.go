// Command migrate applies the parse log schema in db/migrations.
// Usage: migrate [up|down|steps N|force V|version]
package main

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"go.uber.org/zap"

	"paynlp/internal/config"
	"paynlp/internal/logging"
)

const usage = "Usage: migrate [up|down|steps N|force V|version]"

func main() {
	if err := run(os.Args[1:]); err != nil {
		log.Fatal(err)
	}
}

func run(args []string) error {
	if len(args) < 1 {
		return errors.New(usage)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	logger, err := logging.New(cfg.Log)
	if err != nil {
		return fmt.Errorf("initializing logger: %w", err)
	}
	defer func() { _ = logging.Sync(logger) }()

	source := os.Getenv("PAYNLP_MIGRATIONS_PATH")
	if source == "" {
		source = "file://db/migrations"
	}
	m, err := migrate.New(source, cfg.DB.DSN())
	if err != nil {
		return fmt.Errorf("creating migrate instance: %w", err)
	}
	defer m.Close()

	switch cmd := args[0]; cmd {
	case "up":
		if err := ignoreNoChange(m.Up()); err != nil {
			return fmt.Errorf("migration up: %w", err)
		}
		logger.Info("migrations applied")

	case "down":
		if err := ignoreNoChange(m.Down()); err != nil {
			return fmt.Errorf("migration down: %w", err)
		}
		logger.Info("migrations reverted")

	case "steps", "force":
		if len(args) < 2 {
			return fmt.Errorf("%s requires a number argument", cmd)
		}
		n, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid %s argument: %w", cmd, err)
		}
		if cmd == "force" {
			if err := m.Force(n); err != nil {
				return fmt.Errorf("forcing version %d: %w", n, err)
			}
			logger.Info("version forced", zap.Int("version", n))
			return nil
		}
		if err := ignoreNoChange(m.Steps(n)); err != nil {
			return fmt.Errorf("migration steps: %w", err)
		}
		logger.Info("migration steps applied", zap.Int("steps", n))

	case "version":
		version, dirty, err := m.Version()
		if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
			return fmt.Errorf("reading version: %w", err)
		}
		fmt.Printf("version: %d, dirty: %v\n", version, dirty)

	default:
		return fmt.Errorf("unknown command %q\n%s", cmd, usage)
	}
	return nil
}

func ignoreNoChange(err error) error {
	if errors.Is(err, migrate.ErrNoChange) {
		return nil
	}
	return err
}
