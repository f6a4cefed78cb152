// Package metrics records upgrade metrics in a Prometheus registry that can be
// exported in the node_exporter textfile format after a run.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/imamik/parcelup/internal/parcel"
)

// Result labels.
const (
	ResultSuccess = "success"
	ResultFailed  = "failed"
	ResultTimeout = "timeout"
	ResultDryRun  = "dry_run"
)

// Recorder owns a private registry so runs and tests never share state.
// A nil *Recorder is valid and records nothing.
type Recorder struct {
	registry *prometheus.Registry

	transitionsTotal   *prometheus.CounterVec
	transitionDuration *prometheus.HistogramVec
	pollsTotal         *prometheus.CounterVec
	runsTotal          *prometheus.CounterVec
	lastRun            *prometheus.GaugeVec
}

// NewRecorder creates a Recorder with all collectors registered.
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),

		transitionsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "parcelup",
				Subsystem: "stage",
				Name:      "transitions_total",
				Help:      "Stage transitions by target stage and result",
			},
			[]string{"product", "stage", "result"},
		),

		transitionDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "parcelup",
				Subsystem: "stage",
				Name:      "duration_seconds",
				Help:      "Time from issuing a stage action until the stage was reached",
				Buckets:   prometheus.ExponentialBuckets(1, 2, 10), // 1s to ~8.5min
			},
			[]string{"product", "stage"},
		),

		pollsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "parcelup",
				Subsystem: "stage",
				Name:      "polls_total",
				Help:      "Parcel polls issued while waiting for a stage",
			},
			[]string{"product", "stage"},
		),

		runsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "parcelup",
				Name:      "runs_total",
				Help:      "Upgrade runs by result",
			},
			[]string{"product", "result"},
		),

		lastRun: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "parcelup",
				Name:      "last_run_timestamp_seconds",
				Help:      "Unix time the last upgrade run finished",
			},
			[]string{"product"},
		),
	}

	r.registry.MustRegister(
		r.transitionsTotal,
		r.transitionDuration,
		r.pollsTotal,
		r.runsTotal,
		r.lastRun,
	)
	return r
}

// Registry exposes the underlying registry.
func (r *Recorder) Registry() *prometheus.Registry {
	if r == nil {
		return nil
	}
	return r.registry
}

// RecordTransition records the outcome of driving a parcel to stage.
func (r *Recorder) RecordTransition(product string, stage parcel.Stage, result string, d time.Duration) {
	if r == nil {
		return
	}
	r.transitionsTotal.WithLabelValues(product, stage.String(), result).Inc()
	if result == ResultSuccess {
		r.transitionDuration.WithLabelValues(product, stage.String()).Observe(d.Seconds())
	}
}

// RecordPoll counts one poll while waiting for stage.
func (r *Recorder) RecordPoll(product string, stage parcel.Stage) {
	if r == nil {
		return
	}
	r.pollsTotal.WithLabelValues(product, stage.String()).Inc()
}

// RecordRun records the final result of an upgrade run.
func (r *Recorder) RecordRun(product, result string, finished time.Time) {
	if r == nil {
		return
	}
	r.runsTotal.WithLabelValues(product, result).Inc()
	r.lastRun.WithLabelValues(product).Set(float64(finished.Unix()))
}

// WriteTextfile writes the registry to path atomically.
func (r *Recorder) WriteTextfile(path string) error {
	if r == nil {
		return nil
	}
	return prometheus.WriteToTextfile(path, r.registry)
}
