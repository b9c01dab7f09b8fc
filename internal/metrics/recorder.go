// Package metrics defines the observability hooks used by the timer and the
// statistics aggregator. Components default to NoopRecorder; the run command
// swaps in a PrometheusRecorder when a metrics address is configured.
package metrics

import "time"

// Recorder receives timer and statistics observations.
type Recorder interface {
	IncPhaseTransition(state string)
	IncSession(sessionType string)
	AddFocusTime(d time.Duration)
	IncMicroBreak()
	IncFeedbackFailure(cue string)
	SetRemaining(state string, d time.Duration)
	SetStreak(days int)
}

// NoopRecorder discards every observation.
type NoopRecorder struct{}

func (NoopRecorder) IncPhaseTransition(string)          {}
func (NoopRecorder) IncSession(string)                  {}
func (NoopRecorder) AddFocusTime(time.Duration)         {}
func (NoopRecorder) IncMicroBreak()                     {}
func (NoopRecorder) IncFeedbackFailure(string)          {}
func (NoopRecorder) SetRemaining(string, time.Duration) {}
func (NoopRecorder) SetStreak(int)                      {}
