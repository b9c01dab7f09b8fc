package timer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"focustimer/internal/core/model"
	"focustimer/internal/logfields"
	"focustimer/internal/metrics"
)

var (
	// ErrNotIdle is returned when a focus session is started while another phase runs.
	ErrNotIdle = errors.New("timer is not idle")
	// ErrNotActive is returned when pausing without an active countdown.
	ErrNotActive = errors.New("timer has no active phase")
	// ErrNotPaused is returned when resuming a timer that is not paused.
	ErrNotPaused = errors.New("timer is not paused")
)

// Config contains runtime options for Timer.
type Config struct {
	TickInterval time.Duration
	Clock        clockwork.Clock
	Rand         RandomSource
	Dispatcher   Dispatcher
	// OnSession receives every SessionRecord after the transition that produced it.
	OnSession func(model.SessionRecord)
	Logger    *slog.Logger
	Metrics   metrics.Recorder
}

// Timer is the focus session state machine. One countdown runs at a time,
// advanced by tick; public operations may race with an in-flight tick and
// are serialized by mu.
type Timer struct {
	mu       sync.Mutex
	options  Config
	clock    clockwork.Clock
	rng      RandomSource
	logger   *slog.Logger
	recorder metrics.Recorder

	pending  model.TimerSettings
	settings model.TimerSettings

	state            State
	pausedFrom       State
	remaining        time.Duration
	microRemaining   time.Duration
	nextMicroBreakAt time.Time
	phaseEnteredAt   time.Time
	sessionStart     time.Time
	breakStart       time.Time

	sessionCount int
	totalFocus   time.Duration

	events []chan Event
}

type outbox struct {
	cues     []Cue
	sessions []model.SessionRecord
}

// New creates an idle Timer. The settings are applied at the next
// StartFocusSession.
func New(settings model.TimerSettings, options Config) *Timer {
	if options.TickInterval <= 0 {
		options.TickInterval = time.Second
	}
	if options.Clock == nil {
		options.Clock = clockwork.NewRealClock()
	}
	if options.Rand == nil {
		options.Rand = rand.New(rand.NewSource(options.Clock.Now().UnixNano()))
	}
	if options.Logger == nil {
		options.Logger = slog.Default()
	}
	if options.Metrics == nil {
		options.Metrics = metrics.NoopRecorder{}
	}

	return &Timer{
		options:  options,
		clock:    options.Clock,
		rng:      options.Rand,
		logger:   options.Logger,
		recorder: options.Metrics,
		pending:  settings,
		settings: settings,
		state:    StateIdle,
	}
}

// Subscribe registers a new observer channel. Slow observers miss events
// rather than stall the timer.
func (timer *Timer) Subscribe(buffer int) <-chan Event {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan Event, buffer)
	timer.mu.Lock()
	timer.events = append(timer.events, ch)
	timer.mu.Unlock()
	return ch
}

// Close closes every observer channel.
func (timer *Timer) Close() {
	timer.mu.Lock()
	events := timer.events
	timer.events = nil
	timer.mu.Unlock()

	for _, ch := range events {
		close(ch)
	}
}

// Run drives the countdown with a repeating tick until ctx is done.
func (timer *Timer) Run(ctx context.Context) {
	ticker := timer.clock.NewTicker(timer.options.TickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case tickTime := <-ticker.Chan():
			timer.tick(tickTime)
		}
	}
}

// UpdateSettings stores settings for the next focus session. A running
// session keeps the snapshot taken when it started.
func (timer *Timer) UpdateSettings(settings model.TimerSettings) {
	timer.mu.Lock()
	timer.pending = settings
	timer.mu.Unlock()
}

// Settings returns the settings the next focus session will use.
func (timer *Timer) Settings() model.TimerSettings {
	timer.mu.Lock()
	defer timer.mu.Unlock()
	return timer.pending
}

// Status returns a snapshot of the timer.
func (timer *Timer) Status() Status {
	timer.mu.Lock()
	defer timer.mu.Unlock()
	return Status{
		State:               timer.state,
		PausedFrom:          timer.pausedFrom,
		Remaining:           timer.remaining,
		MicroBreakRemaining: timer.microRemaining,
		NextMicroBreakAt:    timer.nextMicroBreakAt,
		SessionCount:        timer.sessionCount,
		TotalFocusTime:      timer.totalFocus,
	}
}

// StartFocusSession moves an idle timer into Focusing.
func (timer *Timer) StartFocusSession() error {
	timer.mu.Lock()
	if timer.state != StateIdle {
		timer.mu.Unlock()
		return fmt.Errorf("start focus session in %s: %w", timer.state, ErrNotIdle)
	}

	now := timer.clock.Now()
	var out outbox
	timer.settings = timer.pending
	timer.remaining = timer.settings.FocusDuration
	timer.microRemaining = 0
	timer.sessionStart = now
	timer.scheduleMicroBreakLocked(now)
	timer.enterLocked(StateFocusing, now)
	out.cues = append(out.cues, Cue{Kind: CuePhase, State: StateFocusing, Remaining: timer.remaining})
	timer.mu.Unlock()

	timer.deliver(out)
	return nil
}

// Pause freezes the active countdown. Pausing a micro-break abandons it.
func (timer *Timer) Pause() error {
	timer.mu.Lock()
	if !timer.state.Active() {
		state := timer.state
		timer.mu.Unlock()
		return fmt.Errorf("pause in %s: %w", state, ErrNotActive)
	}

	now := timer.clock.Now()
	var out outbox
	timer.pausedFrom = timer.state
	timer.microRemaining = 0
	timer.nextMicroBreakAt = time.Time{}
	timer.enterLocked(StatePaused, now)
	out.cues = append(out.cues, Cue{Kind: CueCancel, State: StatePaused, Remaining: timer.remaining})
	pausedFrom, remaining := timer.pausedFrom, timer.remaining
	timer.mu.Unlock()

	timer.logger.Debug("Paused",
		logfields.State(string(pausedFrom)),
		logfields.Remaining(remaining))

	timer.deliver(out)
	return nil
}

// Resume continues the phase that was active before Pause.
func (timer *Timer) Resume() error {
	timer.mu.Lock()
	if timer.state != StatePaused {
		state := timer.state
		timer.mu.Unlock()
		return fmt.Errorf("resume in %s: %w", state, ErrNotPaused)
	}

	now := timer.clock.Now()
	var out outbox
	target := timer.pausedFrom
	if target == StateMicroBreak {
		target = StateFocusing
	}
	timer.pausedFrom = ""
	if target == StateFocusing {
		timer.scheduleMicroBreakLocked(now)
	}
	timer.enterLocked(target, now)
	out.cues = append(out.cues, Cue{Kind: CueResume, State: target, Remaining: timer.remaining})
	remaining := timer.remaining
	timer.mu.Unlock()

	timer.logger.Debug("Resumed",
		logfields.State(string(target)),
		logfields.Remaining(remaining))

	timer.deliver(out)
	return nil
}

// Stop returns the timer to Idle and discards the current phase without
// recording a session.
func (timer *Timer) Stop() {
	timer.mu.Lock()
	if timer.state == StateIdle {
		timer.mu.Unlock()
		return
	}
	var out outbox
	timer.stopLocked(timer.clock.Now(), &out)
	timer.mu.Unlock()

	timer.deliver(out)
}

// Reset stops the timer and zeroes the completed-session counters.
func (timer *Timer) Reset() {
	timer.mu.Lock()
	now := timer.clock.Now()
	var out outbox
	if timer.state != StateIdle {
		timer.stopLocked(now, &out)
	}
	timer.sessionCount = 0
	timer.totalFocus = 0
	timer.emitLocked(Event{
		Type:  EventCountersReset,
		State: timer.state,
		At:    now,
	})
	timer.mu.Unlock()

	timer.deliver(out)
}

func (timer *Timer) stopLocked(now time.Time, out *outbox) {
	timer.remaining = 0
	timer.microRemaining = 0
	timer.nextMicroBreakAt = time.Time{}
	timer.pausedFrom = ""
	timer.enterLocked(StateIdle, now)
	out.cues = append(out.cues, Cue{Kind: CueCancel, State: StateIdle})
}

func (timer *Timer) tick(tickTime time.Time) {
	timer.mu.Lock()
	if !timer.state.Active() {
		timer.mu.Unlock()
		return
	}
	if tickTime.Before(timer.phaseEnteredAt) {
		state := timer.state
		timer.mu.Unlock()
		timer.logger.Debug("Ignoring stale tick", logfields.State(string(state)))
		return
	}

	var out outbox
	switch timer.state {
	case StateFocusing:
		timer.advanceFocusLocked(tickTime, &out)
	case StateMicroBreak:
		timer.advanceMicroBreakLocked(tickTime, &out)
	case StateLongBreak:
		timer.advanceBreakLocked(tickTime, &out)
	}
	timer.mu.Unlock()

	timer.deliver(out)
}

func (timer *Timer) advanceFocusLocked(now time.Time, out *outbox) {
	timer.remaining -= timer.options.TickInterval
	if timer.remaining <= 0 {
		timer.remaining = 0
		timer.completeFocusLocked(now, out)
		return
	}

	if !timer.nextMicroBreakAt.IsZero() && !now.Before(timer.nextMicroBreakAt) {
		timer.enterMicroBreakLocked(now, out)
		return
	}
	timer.emitProgressLocked(now)
}

func (timer *Timer) advanceMicroBreakLocked(now time.Time, out *outbox) {
	timer.microRemaining -= timer.options.TickInterval
	if timer.microRemaining > 0 {
		timer.emitProgressLocked(now)
		return
	}

	timer.microRemaining = 0
	timer.scheduleMicroBreakLocked(now)
	timer.enterLocked(StateFocusing, now)
	out.cues = append(out.cues, Cue{
		Kind:      CueMicroBreakEnd,
		State:     StateFocusing,
		Remaining: timer.remaining,
		Sound:     timer.settings.EndSound,
	})
}

func (timer *Timer) advanceBreakLocked(now time.Time, out *outbox) {
	timer.remaining -= timer.options.TickInterval
	if timer.remaining > 0 {
		timer.emitProgressLocked(now)
		return
	}

	timer.remaining = 0
	timer.recordLocked(model.SessionRecord{
		ID:        uuid.NewString(),
		Type:      model.SessionBreak,
		StartTime: timer.breakStart,
		Duration:  timer.settings.BreakDuration,
		Completed: true,
	}, now, out)
	timer.enterLocked(StateIdle, now)
	out.cues = append(out.cues, Cue{Kind: CuePhase, State: StateIdle})
}

func (timer *Timer) enterMicroBreakLocked(now time.Time, out *outbox) {
	timer.microRemaining = timer.settings.MicroBreakDuration
	timer.nextMicroBreakAt = time.Time{}
	timer.enterLocked(StateMicroBreak, now)
	timer.recorder.IncMicroBreak()
	out.cues = append(out.cues, Cue{
		Kind:      CueMicroBreakStart,
		State:     StateMicroBreak,
		Remaining: timer.microRemaining,
		Sound:     timer.settings.StartSound,
	})
}

func (timer *Timer) completeFocusLocked(now time.Time, out *outbox) {
	timer.sessionCount++
	timer.totalFocus += timer.settings.FocusDuration
	timer.recorder.AddFocusTime(timer.settings.FocusDuration)
	timer.recordLocked(model.SessionRecord{
		ID:        uuid.NewString(),
		Type:      model.SessionFocus,
		StartTime: timer.sessionStart,
		Duration:  timer.settings.FocusDuration,
		Completed: true,
	}, now, out)

	timer.remaining = timer.settings.BreakDuration
	timer.microRemaining = 0
	timer.nextMicroBreakAt = time.Time{}
	timer.breakStart = now
	timer.enterLocked(StateLongBreak, now)
	out.cues = append(out.cues, Cue{Kind: CuePhase, State: StateLongBreak, Remaining: timer.remaining})
}

func (timer *Timer) recordLocked(record model.SessionRecord, now time.Time, out *outbox) {
	out.sessions = append(out.sessions, record)
	timer.recorder.IncSession(string(record.Type))
	timer.emitLocked(Event{
		Type:    EventSessionComplete,
		State:   timer.state,
		Session: &record,
		At:      now,
	})
}

func (timer *Timer) scheduleMicroBreakLocked(now time.Time) {
	if !timer.settings.MicroBreakEnabled {
		timer.nextMicroBreakAt = time.Time{}
		return
	}
	interval := Range{
		Min: timer.settings.MicroBreakMinInterval,
		Max: timer.settings.MicroBreakMaxInterval,
	}.Random(timer.rng)
	timer.nextMicroBreakAt = now.Add(interval)
}

func (timer *Timer) enterLocked(state State, now time.Time) {
	timer.state = state
	timer.phaseEnteredAt = now
	timer.recorder.IncPhaseTransition(string(state))
	timer.recorder.SetRemaining(string(state), timer.displayRemainingLocked())
	timer.emitLocked(Event{
		Type:      EventStateChange,
		State:     state,
		Remaining: timer.displayRemainingLocked(),
		At:        now,
	})
}

func (timer *Timer) emitProgressLocked(now time.Time) {
	remaining := timer.displayRemainingLocked()
	timer.recorder.SetRemaining(string(timer.state), remaining)
	timer.emitLocked(Event{
		Type:      EventProgress,
		State:     timer.state,
		Remaining: remaining,
		At:        now,
	})
}

func (timer *Timer) displayRemainingLocked() time.Duration {
	if timer.state == StateMicroBreak {
		return timer.microRemaining
	}
	return timer.remaining
}

// deliver runs the side effects collected during a transition. It must be
// called without holding mu.
func (timer *Timer) deliver(out outbox) {
	for _, cue := range out.cues {
		if timer.options.Dispatcher == nil {
			break
		}
		if err := timer.dispatch(cue); err != nil {
			timer.logger.Warn("Feedback dispatch failed",
				logfields.Cue(string(cue.Kind)),
				logfields.State(string(cue.State)),
				logfields.Error(err))
			timer.recorder.IncFeedbackFailure(string(cue.Kind))
			timer.emit(Event{
				Type:    EventFeedbackError,
				State:   cue.State,
				Message: err.Error(),
				At:      timer.clock.Now(),
			})
		}
	}

	if timer.options.OnSession == nil {
		return
	}
	for _, record := range out.sessions {
		timer.options.OnSession(record)
	}
}

func (timer *Timer) dispatch(cue Cue) (err error) {
	defer func() {
		if recovered := recover(); recovered != nil {
			err = fmt.Errorf("dispatcher panic: %v", recovered)
		}
	}()
	return timer.options.Dispatcher.Dispatch(cue)
}

func (timer *Timer) emit(event Event) {
	timer.mu.Lock()
	defer timer.mu.Unlock()
	timer.emitLocked(event)
}

func (timer *Timer) emitLocked(event Event) {
	for _, ch := range timer.events {
		select {
		case ch <- event:
		default:
		}
	}
}
