package preferences

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"focustimer/internal/core/model"
)

// Form is the text state of the preferences window.
type Form struct {
	FocusMinutes string
	BreakMinutes string

	MicroBreakEnabled     bool
	MicroBreakMinSeconds  string
	MicroBreakMaxSeconds  string
	MicroBreakDurationSec string

	NotificationEnabled bool
	VibrationEnabled    bool
	SoundEnabled        bool
	StartSound          string
	EndSound            string
}

// FormFrom renders settings into form fields.
func FormFrom(settings model.TimerSettings) Form {
	return Form{
		FocusMinutes:          strconv.Itoa(int(settings.FocusDuration / time.Minute)),
		BreakMinutes:          strconv.Itoa(int(settings.BreakDuration / time.Minute)),
		MicroBreakEnabled:     settings.MicroBreakEnabled,
		MicroBreakMinSeconds:  strconv.Itoa(int(settings.MicroBreakMinInterval / time.Second)),
		MicroBreakMaxSeconds:  strconv.Itoa(int(settings.MicroBreakMaxInterval / time.Second)),
		MicroBreakDurationSec: strconv.Itoa(int(settings.MicroBreakDuration / time.Second)),
		NotificationEnabled:   settings.NotificationEnabled,
		VibrationEnabled:      settings.VibrationEnabled,
		SoundEnabled:          settings.SoundEnabled,
		StartSound:            string(settings.StartSound),
		EndSound:              string(settings.EndSound),
	}
}

// Settings parses the form. Range checks are left to the settings store.
func (form Form) Settings() (model.TimerSettings, error) {
	var settings model.TimerSettings
	fields := []struct {
		label string
		raw   string
		unit  time.Duration
		dst   *time.Duration
	}{
		{"Focus length", form.FocusMinutes, time.Minute, &settings.FocusDuration},
		{"Break length", form.BreakMinutes, time.Minute, &settings.BreakDuration},
		{"Micro-break earliest", form.MicroBreakMinSeconds, time.Second, &settings.MicroBreakMinInterval},
		{"Micro-break latest", form.MicroBreakMaxSeconds, time.Second, &settings.MicroBreakMaxInterval},
		{"Micro-break length", form.MicroBreakDurationSec, time.Second, &settings.MicroBreakDuration},
	}
	for _, f := range fields {
		value, ok := parsePositiveInt(f.raw)
		if !ok {
			return model.TimerSettings{}, fmt.Errorf("%s must be a positive whole number, got %q", f.label, f.raw)
		}
		*f.dst = time.Duration(value) * f.unit
	}

	settings.MicroBreakEnabled = form.MicroBreakEnabled
	settings.NotificationEnabled = form.NotificationEnabled
	settings.VibrationEnabled = form.VibrationEnabled
	settings.SoundEnabled = form.SoundEnabled
	settings.StartSound = model.SoundID(form.StartSound)
	settings.EndSound = model.SoundID(form.EndSound)
	return settings, nil
}

func parsePositiveInt(value string) (int, bool) {
	parsed, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || parsed <= 0 {
		return 0, false
	}
	return parsed, true
}

// SoundOptions lists the sound names offered in the selectors.
func SoundOptions() []string {
	options := make([]string, len(model.Sounds))
	for i, id := range model.Sounds {
		options[i] = string(id)
	}
	return options
}
