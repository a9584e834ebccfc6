package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/plugfox/foxy-fib/internal/calculator"
	"github.com/plugfox/foxy-fib/internal/config"
	"github.com/plugfox/foxy-fib/internal/fib"
	log "github.com/plugfox/foxy-fib/internal/log"
	"github.com/plugfox/foxy-fib/internal/metrics"
	"github.com/plugfox/foxy-fib/internal/model"
	"github.com/plugfox/foxy-fib/internal/storage"

	// This controls the maxprocs environment variable in container runtimes.
	// see https://martin.baillie.id/wrote/gotchas-in-the-go-network-packages-defaults/#bonus-gomaxprocs-containers-and-the-cfs
	"go.uber.org/automaxprocs/maxprocs"
)

// Main is the whole body of a program printing fib(n).
func Main(n int64) {
	// Set the local timezone to UTC
	time.Local = time.UTC

	os.Exit(Execute(n, os.Stdout, os.Stderr))
}

// Execute prints fib(n) to stdout and returns the exit code.
// A configuration that cannot be loaded is reported on stderr and replaced by the defaults.
func Execute(n int64, stdout io.Writer, stderr io.Writer) int {
	ctx := context.Background()

	cfg, loadErr := config.MustLoadConfig()
	if loadErr != nil {
		cfg = config.Defaults()
	}

	// Logs go to stderr, stdout carries only the result
	logger := log.New(
		log.WithLevel(cfg.Verbose),
		log.WithSource(),
		log.WithWriter(stderr),
	)

	if loadErr != nil {
		logger.WarnContext(ctx, "config load failed, using defaults", slog.String("error", loadErr.Error()))
	}

	if err := Run(ctx, cfg, logger, n, stdout); err != nil {
		logger.ErrorContext(ctx, "an error occurred", slog.String("error", err.Error()))
		return 1
	}

	return 0
}

// ledgerEnabled - the programs exit right away, so an in-memory ledger would be thrown away
func ledgerEnabled(cfg *config.DatabaseConfig) bool {
	return cfg.Enabled && cfg.Connection != "" && cfg.Connection != ":memory:"
}

// SetMaxProcs matches GOMAXPROCS to the container CPU quota.
func SetMaxProcs(ctx context.Context, logger *slog.Logger) error {
	_, err := maxprocs.Set(maxprocs.Logger(func(s string, i ...interface{}) {
		logger.DebugContext(ctx, fmt.Sprintf(s, i...))
	}))
	if err != nil {
		return fmt.Errorf("setting max procs: %w", err)
	}
	return nil
}

// Run evaluates fib(n) by naive recursion and writes it to out as one decimal line.
// Recording and metrics are best effort and never change what is written.
func Run(ctx context.Context, config *config.Config, logger *slog.Logger, n int64, out io.Writer) error {
	if err := SetMaxProcs(ctx, logger); err != nil {
		return err
	}

	m := metrics.New(&config.Metrics, map[string]string{"environment": config.Environment}, logger)
	defer m.Close()

	opts := []calculator.Option{calculator.WithMetrics(m)}

	if ledgerEnabled(&config.Database) {
		db, err := storage.New(config, logger)
		if err != nil {
			logger.WarnContext(ctx, "results ledger unavailable", slog.String("error", err.Error()))
		} else {
			defer db.Close()
			opts = append(opts, calculator.WithRecorder(db))
		}
	}

	result, err := calculator.New(logger, opts...).Compute(ctx, n, fib.AlgorithmRecursive, model.SourceCLI)
	if err != nil {
		return fmt.Errorf("computing fib(%d): %w", n, err)
	}

	if err := fib.Format(out, result.Value); err != nil {
		return fmt.Errorf("writing result: %w", err)
	}

	logger.InfoContext(ctx, "computed",
		slog.Int64("n", result.N),
		slog.Int64("value", result.Value),
		slog.Duration("duration", result.Duration),
	)

	return nil
}
