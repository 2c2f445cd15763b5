package metrics

import (
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

const namespace = "docsite"

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	stageDuration      *prom.HistogramVec
	renderDuration     prom.Histogram
	renderOutcome      *prom.CounterVec
	linkIssues         prom.Gauge
	pages              prom.Gauge
	validationFailures prom.Counter
	filesWritten       prom.Counter
}

// NewPrometheusRecorder constructs the metrics and registers them on reg
// (a fresh registry when nil).
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{
		stageDuration: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "stage_duration_seconds",
			Help:      "Duration of individual rebuild stages",
			Buckets:   prom.DefBuckets,
		}, []string{"stage"}),
		renderDuration: prom.NewHistogram(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "render_duration_seconds",
			Help:      "Total rebuild duration",
			Buckets:   prom.DefBuckets,
		}),
		renderOutcome: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "renders_total",
			Help:      "Rebuilds by outcome",
		}, []string{"outcome"}),
		linkIssues: prom.NewGauge(prom.GaugeOpts{
			Namespace: namespace,
			Name:      "link_issues",
			Help:      "Broken links found by the last check",
		}),
		pages: prom.NewGauge(prom.GaugeOpts{
			Namespace: namespace,
			Name:      "pages",
			Help:      "Content pages discovered by the last rebuild",
		}),
		validationFailures: prom.NewCounter(prom.CounterOpts{
			Namespace: namespace,
			Name:      "validation_failures_total",
			Help:      "Configuration loads rejected by validation",
		}),
		filesWritten: prom.NewCounter(prom.CounterOpts{
			Namespace: namespace,
			Name:      "files_written_total",
			Help:      "Generator artifacts written (unchanged files are skipped)",
		}),
	}
	reg.MustRegister(pr.stageDuration, pr.renderDuration, pr.renderOutcome, pr.linkIssues, pr.pages, pr.validationFailures, pr.filesWritten)
	return pr
}

func (p *PrometheusRecorder) ObserveStageDuration(stage Stage, d time.Duration) {
	if p == nil {
		return
	}
	p.stageDuration.WithLabelValues(string(stage)).Observe(d.Seconds())
}

func (p *PrometheusRecorder) ObserveRenderDuration(d time.Duration) {
	if p == nil {
		return
	}
	p.renderDuration.Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncRenderOutcome(outcome Outcome) {
	if p == nil {
		return
	}
	p.renderOutcome.WithLabelValues(string(outcome)).Inc()
}

func (p *PrometheusRecorder) SetLinkIssues(n int) {
	if p == nil {
		return
	}
	p.linkIssues.Set(float64(n))
}

func (p *PrometheusRecorder) SetPages(n int) {
	if p == nil {
		return
	}
	p.pages.Set(float64(n))
}

func (p *PrometheusRecorder) IncValidationFailure() {
	if p == nil {
		return
	}
	p.validationFailures.Inc()
}

func (p *PrometheusRecorder) IncFilesWritten(n int) {
	if p == nil || n <= 0 {
		return
	}
	p.filesWritten.Add(float64(n))
}

var _ Recorder = (*PrometheusRecorder)(nil)
