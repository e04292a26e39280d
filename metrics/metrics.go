// Package metrics exposes ledger and aggregation counts as Prometheus
// metrics that can be dumped to a node-exporter textfile.
package metrics

import (
	"fmt"
	"path/filepath"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"testledger-cli/filesystem"
	"testledger-cli/ledger"
	"testledger-cli/logging"
)

const (
	MetricsNamespace = "testledger"
)

// Recorder implements ledger.Observer on a private registry
type Recorder struct {
	registry *prometheus.Registry

	executionsStarted  *prometheus.CounterVec
	executionsFinished *prometheus.CounterVec
	executionDuration  *prometheus.HistogramVec
	aggregateTests     *prometheus.GaugeVec
	aggregateDuration  prometheus.Gauge
}

var _ ledger.Observer = (*Recorder)(nil)

// NewRecorder creates a recorder with its own registry
func NewRecorder() *Recorder {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Recorder{
		registry: reg,
		executionsStarted: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: MetricsNamespace,
			Name:      "executions_started_total",
			Help:      "Count of test executions started",
		}, []string{
			"class_name",
		}),
		executionsFinished: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: MetricsNamespace,
			Name:      "executions_finished_total",
			Help:      "Count of test executions finished, by status",
		}, []string{
			"class_name",
			"status",
		}),
		executionDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: MetricsNamespace,
			Name:      "execution_duration_seconds",
			Help:      "Duration of finished test executions",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 10, 30, 60, 300},
		}, []string{
			"class_name",
		}),
		aggregateTests: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: MetricsNamespace,
			Name:      "aggregate_tests",
			Help:      "Test counts from the last XML aggregation, by result",
		}, []string{
			"result",
		}),
		aggregateDuration: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: MetricsNamespace,
			Name:      "aggregate_duration_seconds",
			Help:      "Total declared suite time from the last XML aggregation",
		}),
	}
}

// Registry returns the registry the recorder's metrics live in
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// ExecutionStarted implements ledger.Observer
func (r *Recorder) ExecutionStarted(testName, className string) {
	r.executionsStarted.WithLabelValues(className).Inc()
}

// ExecutionFinished implements ledger.Observer
func (r *Recorder) ExecutionFinished(result ledger.Result, durationMs int64) {
	r.executionsFinished.WithLabelValues(result.ClassName, string(result.Status)).Inc()
	r.executionDuration.WithLabelValues(result.ClassName).Observe(float64(durationMs) / 1000.0)
}

// RecordAggregate stores the totals of an XML aggregation run
func (r *Recorder) RecordAggregate(total, passed, failures, errors int, seconds float64) {
	r.aggregateTests.WithLabelValues("total").Set(float64(total))
	r.aggregateTests.WithLabelValues("passed").Set(float64(passed))
	r.aggregateTests.WithLabelValues("failed").Set(float64(failures))
	r.aggregateTests.WithLabelValues("error").Set(float64(errors))
	r.aggregateDuration.Set(seconds)
}

// WriteTextfile writes every metric in the text exposition format to path,
// creating the parent directory when needed
func (r *Recorder) WriteTextfile(path string) error {
	if err := filesystem.NewManager().CreateDirectory(filepath.Dir(path)); err != nil {
		return fmt.Errorf("failed to create metrics directory: %w", err)
	}
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("failed to write metrics textfile: %w", err)
	}
	logging.Debug("Metrics", "Wrote metrics to %s", path)
	return nil
}
