package model

import (
	"fmt"
	"time"
)

// SoundID names a cue sound from the built-in catalogue.
type SoundID string

const (
	SoundTink      SoundID = "tink"
	SoundGlass     SoundID = "glass"
	SoundBell      SoundID = "bell"
	SoundHero      SoundID = "hero"
	SoundSubmarine SoundID = "submarine"
	SoundBasso     SoundID = "basso"
	SoundBottle    SoundID = "bottle"
	SoundFrog      SoundID = "frog"
	SoundFunk      SoundID = "funk"
	SoundMorse     SoundID = "morse"
	SoundPing      SoundID = "ping"
	SoundPop       SoundID = "pop"
	SoundPurr      SoundID = "purr"
	SoundSosumi    SoundID = "sosumi"
)

// Sounds lists every known SoundID in display order.
var Sounds = []SoundID{
	SoundTink, SoundGlass, SoundBell, SoundHero, SoundSubmarine, SoundBasso, SoundBottle,
	SoundFrog, SoundFunk, SoundMorse, SoundPing, SoundPop, SoundPurr, SoundSosumi,
}

// Valid reports whether the sound is part of the catalogue.
func (id SoundID) Valid() bool {
	for _, known := range Sounds {
		if known == id {
			return true
		}
	}
	return false
}

// TimerSettings contains the user-configurable durations and toggles.
type TimerSettings struct {
	FocusDuration time.Duration
	BreakDuration time.Duration

	MicroBreakEnabled     bool
	MicroBreakMinInterval time.Duration
	MicroBreakMaxInterval time.Duration
	MicroBreakDuration    time.Duration

	NotificationEnabled bool
	VibrationEnabled    bool
	SoundEnabled        bool
	StartSound          SoundID
	EndSound            SoundID
}

// DefaultTimerSettings returns the settings used when nothing has been saved yet.
func DefaultTimerSettings() TimerSettings {
	return TimerSettings{
		FocusDuration:         90 * time.Minute,
		BreakDuration:         20 * time.Minute,
		MicroBreakEnabled:     true,
		MicroBreakMinInterval: 3 * time.Minute,
		MicroBreakMaxInterval: 5 * time.Minute,
		MicroBreakDuration:    10 * time.Second,
		NotificationEnabled:   true,
		VibrationEnabled:      true,
		SoundEnabled:          true,
		StartSound:            SoundTink,
		EndSound:              SoundGlass,
	}
}

// Validate checks the settings invariants: positive durations, an ordered
// micro-break interval and known sounds.
func (settings TimerSettings) Validate() error {
	durations := []struct {
		name  string
		value time.Duration
	}{
		{"focus duration", settings.FocusDuration},
		{"break duration", settings.BreakDuration},
		{"micro-break min interval", settings.MicroBreakMinInterval},
		{"micro-break max interval", settings.MicroBreakMaxInterval},
		{"micro-break duration", settings.MicroBreakDuration},
	}
	for _, d := range durations {
		if d.value <= 0 {
			return fmt.Errorf("%s must be positive, got %s", d.name, d.value)
		}
	}
	if settings.MicroBreakMinInterval > settings.MicroBreakMaxInterval {
		return fmt.Errorf("micro-break min interval %s exceeds max interval %s",
			settings.MicroBreakMinInterval, settings.MicroBreakMaxInterval)
	}
	if !settings.StartSound.Valid() {
		return fmt.Errorf("unknown start sound %q", settings.StartSound)
	}
	if !settings.EndSound.Valid() {
		return fmt.Errorf("unknown end sound %q", settings.EndSound)
	}
	return nil
}
