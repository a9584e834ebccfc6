package metrics

import "time"

// metricsFake is a no-op implementation of Metrics
type metricsFake struct{}

// Ensure metricsFake implements Metrics
var _ Metrics = (*metricsFake)(nil)

// NewMetricsFake creates a no-op Metrics
func NewMetricsFake() Metrics {
	return &metricsFake{}
}

func (metrics *metricsFake) LogEvent(_ string, _ map[string]string, _ map[string]interface{}) {}

func (metrics *metricsFake) LogComputation(_ string, _ string, _ int64, _ time.Duration, _ bool) {}

func (metrics *metricsFake) Close() {}
