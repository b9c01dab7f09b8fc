// Package settings holds the user-configurable timer settings, validates
// every change at the boundary and notifies subscribers.
package settings

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"focustimer/internal/core/model"
	ferrors "focustimer/internal/errors"
	"focustimer/internal/logfields"
)

// Persister loads and saves settings.
type Persister interface {
	Load() (model.TimerSettings, error)
	Save(settings model.TimerSettings) error
}

// Store is the settings collaborator.
type Store struct {
	mu        sync.RWMutex
	persister Persister
	logger    *slog.Logger
	settings  model.TimerSettings
	listeners []func(model.TimerSettings)
}

// NewStore loads the persisted settings. Unreadable or invalid settings fall
// back to defaults; the problem is logged and returned alongside the store.
func NewStore(persister Persister, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}
	store := &Store{
		persister: persister,
		logger:    logger,
		settings:  model.DefaultTimerSettings(),
	}

	loaded, err := persister.Load()
	if err != nil {
		logger.Warn("Failed to load settings, using defaults", logfields.Error(err))
		return store, ferrors.Wrap(err, ferrors.CategoryConfig, "load settings")
	}
	if err := Validate(loaded); err != nil {
		logger.Warn("Stored settings are invalid, using defaults", logfields.Error(err))
		return store, err
	}
	store.settings = loaded
	return store, nil
}

// Get returns the current settings.
func (store *Store) Get() model.TimerSettings {
	store.mu.RLock()
	defer store.mu.RUnlock()
	return store.settings
}

// OnChange registers fn to receive settings after every accepted change.
func (store *Store) OnChange(fn func(model.TimerSettings)) {
	store.mu.Lock()
	store.listeners = append(store.listeners, fn)
	store.mu.Unlock()
}

// Update applies mutate to a copy of the settings, validates, persists and
// publishes the result. Rejected changes leave the store untouched.
func (store *Store) Update(mutate func(*model.TimerSettings)) error {
	store.mu.Lock()
	next := store.settings
	mutate(&next)
	if err := Validate(next); err != nil {
		store.mu.Unlock()
		return err
	}
	if err := store.persister.Save(next); err != nil {
		store.mu.Unlock()
		return ferrors.Wrap(err, ferrors.CategoryStorage, "save settings")
	}
	store.settings = next
	listeners := append(([]func(model.TimerSettings))(nil), store.listeners...)
	store.mu.Unlock()

	for _, fn := range listeners {
		fn(next)
	}
	return nil
}

// Reload re-reads the persisted settings, e.g. after an external edit.
func (store *Store) Reload() error {
	loaded, err := store.persister.Load()
	if err != nil {
		return ferrors.Wrap(err, ferrors.CategoryConfig, "reload settings")
	}
	if err := Validate(loaded); err != nil {
		return err
	}

	store.mu.Lock()
	if loaded == store.settings {
		store.mu.Unlock()
		return nil
	}
	store.settings = loaded
	listeners := append(([]func(model.TimerSettings))(nil), store.listeners...)
	store.mu.Unlock()

	store.logger.Info("Settings reloaded")
	for _, fn := range listeners {
		fn(loaded)
	}
	return nil
}

// Validate checks the model invariants plus the granularity the settings
// file can represent.
func Validate(settings model.TimerSettings) error {
	if err := settings.Validate(); err != nil {
		return ferrors.Validation(err)
	}
	whole := []struct {
		name  string
		value time.Duration
		unit  time.Duration
	}{
		{"focus duration", settings.FocusDuration, time.Minute},
		{"break duration", settings.BreakDuration, time.Minute},
		{"micro-break min interval", settings.MicroBreakMinInterval, time.Second},
		{"micro-break max interval", settings.MicroBreakMaxInterval, time.Second},
		{"micro-break duration", settings.MicroBreakDuration, time.Second},
	}
	for _, w := range whole {
		if w.value%w.unit != 0 {
			return ferrors.Validation(fmt.Errorf("%s must be a whole number of %s, got %s",
				w.name, unitName(w.unit), w.value))
		}
	}
	return nil
}

func unitName(unit time.Duration) string {
	if unit == time.Minute {
		return "minutes"
	}
	return "seconds"
}

func (store *Store) SetFocusDuration(d time.Duration) error {
	return store.Update(func(s *model.TimerSettings) { s.FocusDuration = d })
}

func (store *Store) SetBreakDuration(d time.Duration) error {
	return store.Update(func(s *model.TimerSettings) { s.BreakDuration = d })
}

func (store *Store) SetMicroBreakEnabled(enabled bool) error {
	return store.Update(func(s *model.TimerSettings) { s.MicroBreakEnabled = enabled })
}

// SetMicroBreakInterval sets both interval bounds in one validated change.
func (store *Store) SetMicroBreakInterval(minInterval, maxInterval time.Duration) error {
	return store.Update(func(s *model.TimerSettings) {
		s.MicroBreakMinInterval = minInterval
		s.MicroBreakMaxInterval = maxInterval
	})
}

func (store *Store) SetMicroBreakDuration(d time.Duration) error {
	return store.Update(func(s *model.TimerSettings) { s.MicroBreakDuration = d })
}

func (store *Store) SetNotificationEnabled(enabled bool) error {
	return store.Update(func(s *model.TimerSettings) { s.NotificationEnabled = enabled })
}

func (store *Store) SetVibrationEnabled(enabled bool) error {
	return store.Update(func(s *model.TimerSettings) { s.VibrationEnabled = enabled })
}

func (store *Store) SetSoundEnabled(enabled bool) error {
	return store.Update(func(s *model.TimerSettings) { s.SoundEnabled = enabled })
}

func (store *Store) SetStartSound(id model.SoundID) error {
	return store.Update(func(s *model.TimerSettings) { s.StartSound = id })
}

func (store *Store) SetEndSound(id model.SoundID) error {
	return store.Update(func(s *model.TimerSettings) { s.EndSound = id })
}
