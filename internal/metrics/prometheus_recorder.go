package metrics

import (
	"net/http"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "focustimer"

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	transitions      *prom.CounterVec
	sessions         *prom.CounterVec
	focusSeconds     prom.Counter
	microBreaks      prom.Counter
	feedbackFailures *prom.CounterVec
	remaining        *prom.GaugeVec
	streak           prom.Gauge
}

// NewPrometheusRecorder constructs the metrics and registers them on reg.
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{
		transitions: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "phase_transitions_total",
			Help:      "Timer phase transitions by entered state",
		}, []string{"state"}),
		sessions: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "sessions_completed_total",
			Help:      "Completed sessions by type",
		}, []string{"type"}),
		focusSeconds: prom.NewCounter(prom.CounterOpts{
			Namespace: namespace,
			Name:      "focus_seconds_total",
			Help:      "Accumulated completed focus time",
		}),
		microBreaks: prom.NewCounter(prom.CounterOpts{
			Namespace: namespace,
			Name:      "micro_breaks_total",
			Help:      "Micro-breaks started",
		}),
		feedbackFailures: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "feedback_failures_total",
			Help:      "Failed notification, vibration or sound requests by cue",
		}, []string{"cue"}),
		remaining: prom.NewGaugeVec(prom.GaugeOpts{
			Namespace: namespace,
			Name:      "remaining_seconds",
			Help:      "Remaining time of the active phase",
		}, []string{"state"}),
		streak: prom.NewGauge(prom.GaugeOpts{
			Namespace: namespace,
			Name:      "consecutive_days",
			Help:      "Current streak of days with at least one session",
		}),
	}
	reg.MustRegister(pr.transitions, pr.sessions, pr.focusSeconds, pr.microBreaks,
		pr.feedbackFailures, pr.remaining, pr.streak)
	return pr
}

func (p *PrometheusRecorder) IncPhaseTransition(state string) {
	if p == nil {
		return
	}
	p.transitions.WithLabelValues(state).Inc()
}

func (p *PrometheusRecorder) IncSession(sessionType string) {
	if p == nil {
		return
	}
	p.sessions.WithLabelValues(sessionType).Inc()
}

func (p *PrometheusRecorder) AddFocusTime(d time.Duration) {
	if p == nil || d <= 0 {
		return
	}
	p.focusSeconds.Add(d.Seconds())
}

func (p *PrometheusRecorder) IncMicroBreak() {
	if p == nil {
		return
	}
	p.microBreaks.Inc()
}

func (p *PrometheusRecorder) IncFeedbackFailure(cue string) {
	if p == nil {
		return
	}
	p.feedbackFailures.WithLabelValues(cue).Inc()
}

func (p *PrometheusRecorder) SetRemaining(state string, d time.Duration) {
	if p == nil {
		return
	}
	p.remaining.Reset()
	p.remaining.WithLabelValues(state).Set(d.Seconds())
}

func (p *PrometheusRecorder) SetStreak(days int) {
	if p == nil {
		return
	}
	p.streak.Set(float64(days))
}

// HTTPHandler serves the metrics registered on reg.
func HTTPHandler(reg *prom.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{EnableOpenMetrics: true})
}
