package main

import (
	"context"
	"errors"
	"fmt"
	logByDefault "log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/plugfox/foxy-fib/internal/app"
	"github.com/plugfox/foxy-fib/internal/cache"
	"github.com/plugfox/foxy-fib/internal/calculator"
	config "github.com/plugfox/foxy-fib/internal/config"
	"github.com/plugfox/foxy-fib/internal/httpclient"
	log "github.com/plugfox/foxy-fib/internal/log"
	"github.com/plugfox/foxy-fib/internal/metrics"
	"github.com/plugfox/foxy-fib/internal/model"
	"github.com/plugfox/foxy-fib/internal/server"
	storage "github.com/plugfox/foxy-fib/internal/storage"
	"github.com/plugfox/foxy-fib/internal/telegram"
	"go.opentelemetry.io/otel"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// Set the local timezone to UTC
	time.Local = time.UTC

	config, err := config.MustLoadConfig()
	if err != nil {
		logByDefault.Fatalf("Config load error: %v", err)
	}

	logger := log.New(
		log.WithLevel(config.Verbose),
		log.WithSource(),
		log.WithJSON(),
	)

	if err := run(config, logger); err != nil {
		logger.ErrorContext(context.Background(), "an error occurred", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(config *config.Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := app.SetMaxProcs(ctx, logger); err != nil {
		return err
	}

	model.InitHashFunction()

	// Setup metrics
	m := metrics.New(&config.Metrics, map[string]string{"environment": config.Environment}, logger)
	defer m.Close()

	// Setup result cache
	resultCache, err := cache.New(&config.Cache)
	if err != nil {
		return err
	}
	defer resultCache.Close()

	opts := []calculator.Option{
		calculator.WithCache(resultCache),
		calculator.WithMetrics(m),
		calculator.WithTracerProvider(otel.GetTracerProvider()),
		calculator.WithMaxRecursive(config.Fib.MaxRecursive),
	}

	// Setup database connection
	var (
		db      *storage.Storage
		results server.ResultLister
	)
	if config.Database.Enabled {
		db, err = storage.New(config, logger)
		if err != nil {
			return fmt.Errorf("database connection error: %w", err)
		}
		defer db.Close()

		results = db
		opts = append(opts, calculator.WithRecorder(db))
	}

	calc := calculator.New(logger, opts...)

	// Setup API server
	srv := server.New(config, logger, calc, results)
	srv.AddHealthCheck(func() (bool, map[string]string) {
		if db == nil {
			return true, map[string]string{"database": "disabled"}
		}
		pingCtx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		if err := db.Ping(pingCtx); err != nil {
			return false, map[string]string{"database": err.Error()}
		}
		return true, map[string]string{"database": "ok"}
	})

	// Setup Telegram bot
	if config.Telegram.Token != "" {
		httpClient, err := httpclient.NewHTTPClient(&config.Proxy)
		if err != nil {
			return fmt.Errorf("http client setup error: %w", err)
		}

		bot, err := telegram.New(calc, httpClient, config, logger)
		if err != nil {
			return fmt.Errorf("telegram bot setup error: %w", err)
		}

		bot.Start()
		defer func() {
			stopCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := bot.Stop(stopCtx); err != nil {
				logger.Warn("telegram bot did not stop in time", slog.String("error", err.Error()))
			}
		}()

		logger.InfoContext(ctx, "Telegram bot started", slog.String("username", bot.Username()))
	}

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- srv.ListenAndServe()
	}()

	logger.InfoContext(ctx, "Server started", slog.String("address", srv.Addr()))

	select {
	case err := <-serveErr:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.InfoContext(context.Background(), "Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	return srv.Shutdown(shutdownCtx)
}
