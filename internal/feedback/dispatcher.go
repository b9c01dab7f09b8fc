// Package feedback turns timer cues into notifications, vibration and sound,
// each gated by its settings toggle.
package feedback

import (
	stderrors "errors"
	"fmt"
	"log/slog"
	"time"

	"focustimer/internal/core/model"
	"focustimer/internal/core/timer"
	ferrors "focustimer/internal/errors"
	"focustimer/internal/logfields"
)

var (
	// MicroBreakPattern alternates wait and buzz durations, starting with a wait.
	MicroBreakPattern = []time.Duration{0, 200 * time.Millisecond, 100 * time.Millisecond, 200 * time.Millisecond}
	// PhasePattern is a single buzz used for phase ends.
	PhasePattern = []time.Duration{500 * time.Millisecond}
)

// Notifier shows and clears user-visible notifications.
type Notifier interface {
	Notify(notification Notification) error
	CancelAll() error
}

// Vibrator plays a vibration pattern.
type Vibrator interface {
	Vibrate(pattern []time.Duration) error
}

// SoundPlayer plays a catalogue sound.
type SoundPlayer interface {
	Play(id model.SoundID) error
}

// SettingsSource returns the current toggles. Toggle changes take effect on
// the next cue.
type SettingsSource func() model.TimerSettings

// Options wires the output services. Nil services are skipped.
type Options struct {
	Notifier Notifier
	Vibrator Vibrator
	Sound    SoundPlayer
	Logger   *slog.Logger
}

// Dispatcher implements timer.Dispatcher.
type Dispatcher struct {
	settings SettingsSource
	options  Options
	logger   *slog.Logger
}

var _ timer.Dispatcher = (*Dispatcher)(nil)

// New creates a Dispatcher reading toggles from settings.
func New(settings SettingsSource, options Options) *Dispatcher {
	logger := options.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Dispatcher{settings: settings, options: options, logger: logger}
}

// Dispatch performs every output the cue calls for. A failing service does
// not prevent the others; all failures are joined into one feedback error.
func (d *Dispatcher) Dispatch(cue timer.Cue) error {
	if cue.Kind == timer.CueCancel {
		if d.options.Notifier == nil {
			return nil
		}
		if err := d.options.Notifier.CancelAll(); err != nil {
			return ferrors.Wrap(err, ferrors.CategoryFeedback, "cancel notifications")
		}
		return nil
	}

	plan, ok := planFor(cue)
	if !ok {
		d.logger.Debug("No feedback for cue", logfields.Cue(string(cue.Kind)), logfields.State(string(cue.State)))
		return nil
	}

	settings := d.settings()
	var errs []error
	if settings.NotificationEnabled && d.options.Notifier != nil {
		if err := d.options.Notifier.Notify(plan.notification); err != nil {
			errs = append(errs, fmt.Errorf("notify: %w", err))
		}
	}
	if settings.VibrationEnabled && d.options.Vibrator != nil && len(plan.pattern) > 0 {
		if err := d.options.Vibrator.Vibrate(plan.pattern); err != nil {
			errs = append(errs, fmt.Errorf("vibrate: %w", err))
		}
	}
	if settings.SoundEnabled && d.options.Sound != nil && cue.Sound != "" {
		if err := d.options.Sound.Play(cue.Sound); err != nil {
			errs = append(errs, fmt.Errorf("play %s: %w", cue.Sound, err))
		}
	}

	if err := stderrors.Join(errs...); err != nil {
		return ferrors.Wrap(err, ferrors.CategoryFeedback, string(cue.Kind))
	}
	return nil
}

type plan struct {
	notification Notification
	pattern      []time.Duration
}

func planFor(cue timer.Cue) (plan, bool) {
	switch cue.Kind {
	case timer.CueMicroBreakStart:
		return plan{notification: microBreakStart(cue.Remaining), pattern: MicroBreakPattern}, true
	case timer.CueMicroBreakEnd:
		return plan{notification: microBreakEnd(), pattern: PhasePattern}, true
	case timer.CueResume:
		return plan{notification: resumed(cue.State, cue.Remaining)}, true
	case timer.CuePhase:
		switch cue.State {
		case timer.StateFocusing:
			return plan{notification: focusInProgress(cue.Remaining)}, true
		case timer.StateLongBreak:
			return plan{notification: focusComplete(cue.Remaining), pattern: PhasePattern}, true
		case timer.StateIdle:
			return plan{notification: breakOver(), pattern: PhasePattern}, true
		}
	}
	return plan{}, false
}
