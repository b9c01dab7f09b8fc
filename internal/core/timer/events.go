package timer

import (
	"time"

	"focustimer/internal/core/model"
)

// State represents the current Timer phase.
type State string

const (
	StateIdle       State = "idle"
	StateFocusing   State = "focusing"
	StateMicroBreak State = "micro_break"
	StateLongBreak  State = "long_break"
	StatePaused     State = "paused"
)

// Active reports whether a countdown runs in this state.
func (state State) Active() bool {
	return state == StateFocusing || state == StateMicroBreak || state == StateLongBreak
}

// EventType defines the type of Timer event.
type EventType string

const (
	EventStateChange     EventType = "state_change"
	EventProgress        EventType = "progress"
	EventSessionComplete EventType = "session_complete"
	EventFeedbackError   EventType = "feedback_error"
	EventCountersReset   EventType = "counters_reset"
)

// Event represents a Timer update for observers.
type Event struct {
	Type      EventType
	State     State
	Remaining time.Duration
	Session   *model.SessionRecord
	Message   string
	At        time.Time
}

// CueKind tags a feedback request.
type CueKind string

const (
	CuePhase           CueKind = "phase"
	CueMicroBreakStart CueKind = "micro_break_start"
	CueMicroBreakEnd   CueKind = "micro_break_end"
	CueResume          CueKind = "resume"
	CueCancel          CueKind = "cancel"
)

// Cue is a feedback request emitted on phase transitions. CuePhase carries
// the entered state; StateIdle means a long break just ended. CueResume
// carries the phase that continues after Pause.
type Cue struct {
	Kind      CueKind
	State     State
	Remaining time.Duration
	Sound     model.SoundID
}

// Dispatcher delivers cues to notification, vibration and sound services.
// Errors are logged by the Timer and never affect its state.
type Dispatcher interface {
	Dispatch(cue Cue) error
}

// DispatcherFunc adapts a function to Dispatcher.
type DispatcherFunc func(cue Cue) error

func (fn DispatcherFunc) Dispatch(cue Cue) error {
	return fn(cue)
}

// Status is a point-in-time view of the Timer.
type Status struct {
	State               State
	PausedFrom          State
	Remaining           time.Duration
	MicroBreakRemaining time.Duration
	NextMicroBreakAt    time.Time
	SessionCount        int
	TotalFocusTime      time.Duration
}
