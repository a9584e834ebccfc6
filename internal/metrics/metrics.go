package metrics

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/plugfox/foxy-fib/internal/config"
)

// Metrics defines the contract for recording events
type Metrics interface {
	LogEvent(eventName string, tags map[string]string, fields map[string]interface{})
	LogComputation(algorithm string, source string, n int64, duration time.Duration, cached bool)
	Close()
}

type metricsImpl struct {
	client      influxdb2.Client
	writeAPI    api.WriteAPI
	defaultTags map[string]string // Constant tags, like the environment
}

// Ensure metricsImpl implements Metrics
var _ Metrics = (*metricsImpl)(nil)

// New returns the InfluxDB implementation, or the no-op one when no URL is configured.
func New(cfg *config.MetricsConfig, defaultTags map[string]string, logger *slog.Logger) Metrics {
	if cfg == nil || cfg.URL == "" {
		return NewMetricsFake()
	}
	return NewMetricsImpl(cfg.URL, cfg.Token, cfg.Org, cfg.Bucket, defaultTags, logger)
}

// NewMetricsImpl initializes the writer with constant tags
func NewMetricsImpl(url string, token string, org string, bucket string, defaultTags map[string]string, logger *slog.Logger) Metrics {
	client := influxdb2.NewClient(url, token)
	writeAPI := client.WriteAPI(org, bucket)

	// Asynchronous write failures surface only on this channel
	go func() {
		for err := range writeAPI.Errors() {
			logger.WarnContext(context.Background(), "metrics write failed", slog.String("error", err.Error()))
		}
	}()

	return &metricsImpl{
		client:      client,
		writeAPI:    writeAPI,
		defaultTags: defaultTags,
	}
}

// Universal method to log an event with customizable tags and fields
func (m *metricsImpl) LogEvent(eventName string, tags map[string]string, fields map[string]interface{}) {
	if len(fields) == 0 {
		return
	}

	point := influxdb2.NewPointWithMeasurement("fib_event").
		AddTag("event", eventName).
		SetTime(time.Now())

	for key, value := range m.defaultTags {
		point.AddTag(key, value)
	}

	for key, value := range tags {
		point.AddTag(key, value)
	}

	for key, value := range fields {
		point.AddField(key, value)
	}

	m.writeAPI.WritePoint(point)
}

// LogComputation records one evaluated Fibonacci number
func (m *metricsImpl) LogComputation(algorithm string, source string, n int64, duration time.Duration, cached bool) {
	tags := map[string]string{
		"algorithm": algorithm,
		"source":    source,
		"cached":    strconv.FormatBool(cached),
	}

	m.LogEvent("computation", tags, map[string]interface{}{
		"n":           n,
		"duration_ns": duration.Nanoseconds(),
	})
}

// Close flushes the write API and closes the client
func (m *metricsImpl) Close() {
	m.writeAPI.Flush()
	m.client.Close()
}
