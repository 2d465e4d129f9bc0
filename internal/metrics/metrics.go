// Package metrics exposes Prometheus instrumentation for pipeline runs.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder registers run-level counters and gauges on its own registry so
// the /metrics endpoint stays free of default Go collector noise. A nil
// *Recorder is a valid no-op, which keeps it optional in one-shot runs.
type Recorder struct {
	registry *prometheus.Registry

	runsTotal      prometheus.Counter
	runDuration    prometheus.Histogram
	alertsSent     *prometheus.CounterVec
	sendFailures   prometheus.Counter
	scrapeErrors   prometheus.Counter
	recordsSkipped prometheus.Counter
	tracked        prometheus.Gauge
	lastRunUnix    prometheus.Gauge
}

// NewRecorder builds a Recorder with all metrics registered.
func NewRecorder() *Recorder {
	registry := prometheus.NewRegistry()
	auto := promauto.With(registry)

	return &Recorder{
		registry: registry,
		runsTotal: auto.NewCounter(prometheus.CounterOpts{
			Namespace: "hackwatch",
			Name:      "runs_total",
			Help:      "Completed pipeline runs.",
		}),
		runDuration: auto.NewHistogram(prometheus.HistogramOpts{
			Namespace: "hackwatch",
			Name:      "run_duration_seconds",
			Help:      "Wall time of a full pipeline run.",
			Buckets:   prometheus.DefBuckets,
		}),
		alertsSent: auto.NewCounterVec(prometheus.CounterOpts{
			Namespace: "hackwatch",
			Name:      "alerts_sent_total",
			Help:      "Alerts delivered to notifiers, by tier.",
		}, []string{"tier"}),
		sendFailures: auto.NewCounter(prometheus.CounterOpts{
			Namespace: "hackwatch",
			Name:      "alert_send_failures_total",
			Help:      "Alerts that could not be delivered.",
		}),
		scrapeErrors: auto.NewCounter(prometheus.CounterOpts{
			Namespace: "hackwatch",
			Name:      "scrape_errors_total",
			Help:      "Source scrapes that failed.",
		}),
		recordsSkipped: auto.NewCounter(prometheus.CounterOpts{
			Namespace: "hackwatch",
			Name:      "records_skipped_total",
			Help:      "Malformed hackathon records excluded from scoring.",
		}),
		tracked: auto.NewGauge(prometheus.GaugeOpts{
			Namespace: "hackwatch",
			Name:      "hackathons_tracked",
			Help:      "Active hackathons seen in the latest run.",
		}),
		lastRunUnix: auto.NewGauge(prometheus.GaugeOpts{
			Namespace: "hackwatch",
			Name:      "last_run_unix",
			Help:      "Unix timestamp of the latest completed run.",
		}),
	}
}

// Handler serves the recorder's registry for the watch-mode listener.
func (r *Recorder) Handler() http.Handler {
	if r == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

// RunCompleted records one finished run with its duration and the number of
// hackathons that survived classification.
func (r *Recorder) RunCompleted(at time.Time, duration time.Duration, trackedCount int) {
	if r == nil {
		return
	}
	r.runsTotal.Inc()
	r.runDuration.Observe(duration.Seconds())
	r.tracked.Set(float64(trackedCount))
	r.lastRunUnix.Set(float64(at.Unix()))
}

// AlertSent counts one delivered alert at the given tier.
func (r *Recorder) AlertSent(tier string) {
	if r == nil {
		return
	}
	r.alertsSent.WithLabelValues(tier).Inc()
}

// SendFailed counts one delivery failure.
func (r *Recorder) SendFailed() {
	if r == nil {
		return
	}
	r.sendFailures.Inc()
}

// ScrapeError counts one failed source scrape.
func (r *Recorder) ScrapeError() {
	if r == nil {
		return
	}
	r.scrapeErrors.Inc()
}

// RecordSkipped counts one malformed record excluded from scoring.
func (r *Recorder) RecordSkipped() {
	if r == nil {
		return
	}
	r.recordsSkipped.Inc()
}
