package calculator

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/plugfox/foxy-fib/internal/cache"
	ferrors "github.com/plugfox/foxy-fib/internal/errors"
	"github.com/plugfox/foxy-fib/internal/fib"
	"github.com/plugfox/foxy-fib/internal/metrics"
	"github.com/plugfox/foxy-fib/internal/model"
	"github.com/plugfox/foxy-fib/internal/timer"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

const tracerName = "github.com/plugfox/foxy-fib/internal/calculator"

// Recorder persists computed results.
type Recorder interface {
	SaveResult(ctx context.Context, result *model.Result) error
}

// Calculator evaluates Fibonacci numbers for the network surfaces and the programs.
type Calculator struct {
	logger       *slog.Logger
	metrics      metrics.Metrics
	tracer       trace.Tracer
	cache        *cache.Cache
	recorder     Recorder
	maxRecursive int64
}

// Option configures a Calculator.
type Option func(*Calculator)

// WithCache serves repeated requests from c.
func WithCache(c *cache.Cache) Option {
	return func(calc *Calculator) {
		calc.cache = c
	}
}

// WithRecorder records every computed result.
func WithRecorder(r Recorder) Option {
	return func(calc *Calculator) {
		calc.recorder = r
	}
}

// WithMetrics reports computations.
func WithMetrics(m metrics.Metrics) Option {
	return func(calc *Calculator) {
		calc.metrics = m
	}
}

// WithTracerProvider replaces the no-op tracer.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(calc *Calculator) {
		calc.tracer = tp.Tracer(tracerName)
	}
}

// WithMaxRecursive caps n for the recursive algorithm, 0 disables the cap.
func WithMaxRecursive(n int64) Option {
	return func(calc *Calculator) {
		calc.maxRecursive = n
	}
}

func New(logger *slog.Logger, opts ...Option) *Calculator {
	calc := &Calculator{
		logger:  logger,
		metrics: metrics.NewMetricsFake(),
		tracer:  noop.NewTracerProvider().Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(calc)
	}
	return calc
}

// Compute evaluates fib(n). A recording failure is logged and does not fail the call.
func (c *Calculator) Compute(ctx context.Context, n int64, algorithm fib.Algorithm, source model.Source) (*model.Result, error) {
	ctx, span := c.tracer.Start(ctx, "fib.compute", trace.WithAttributes(
		attribute.Int64("fib.n", n),
		attribute.String("fib.algorithm", string(algorithm)),
		attribute.String("fib.source", string(source)),
	))
	defer span.End()

	if algorithm == fib.AlgorithmRecursive && c.maxRecursive > 0 && n > c.maxRecursive {
		err := ferrors.WrapArgumentTooLarge("n", n, c.maxRecursive)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	key := cache.Key{Algorithm: algorithm, N: n}
	if c.cache != nil {
		if value, ok := c.cache.Get(key); ok {
			span.SetAttributes(attribute.Bool("fib.cached", true))
			c.metrics.LogComputation(string(algorithm), string(source), n, 0, true)
			return &model.Result{N: n, Value: value, Algorithm: algorithm, Source: source, Cached: true}, nil
		}
	}

	timed, err := timer.TimeErr(fmt.Sprintf("fib(%d)", n), func() (int64, error) {
		return fib.Checked(n, algorithm)
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	c.logger.DebugContext(ctx, timed.String(),
		slog.Int64("n", n),
		slog.Int64("value", timed.Value),
		slog.String("algorithm", string(algorithm)),
	)

	if c.cache != nil {
		c.cache.Set(key, timed.Value)
	}

	result := &model.Result{
		N:         n,
		Value:     timed.Value,
		Algorithm: algorithm,
		Source:    source,
		Duration:  timed.Duration,
	}

	c.metrics.LogComputation(string(algorithm), string(source), n, timed.Duration, false)

	if c.recorder != nil {
		if err := c.recorder.SaveResult(ctx, result); err != nil {
			span.RecordError(err)
			c.logger.WarnContext(ctx, "recording result failed", slog.String("error", err.Error()))
		}
	}

	return result, nil
}

// Table returns fib(0) through fib(limit).
func (c *Calculator) Table(ctx context.Context, limit int64) ([]int64, error) {
	_, span := c.tracer.Start(ctx, "fib.table", trace.WithAttributes(attribute.Int64("fib.limit", limit)))
	defer span.End()

	values, err := fib.Table(limit)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	return values, nil
}
