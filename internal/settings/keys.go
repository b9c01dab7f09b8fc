package settings

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"focustimer/internal/core/model"
	ferrors "focustimer/internal/errors"
)

type field struct {
	get func(model.TimerSettings) string
	set func(*model.TimerSettings, string) error
}

var fields = map[string]field{
	"focus": durationField(
		func(s model.TimerSettings) time.Duration { return s.FocusDuration },
		func(s *model.TimerSettings, d time.Duration) { s.FocusDuration = d }),
	"break": durationField(
		func(s model.TimerSettings) time.Duration { return s.BreakDuration },
		func(s *model.TimerSettings, d time.Duration) { s.BreakDuration = d }),
	"micro-break": boolField(
		func(s model.TimerSettings) bool { return s.MicroBreakEnabled },
		func(s *model.TimerSettings, v bool) { s.MicroBreakEnabled = v }),
	"micro-break-min": durationField(
		func(s model.TimerSettings) time.Duration { return s.MicroBreakMinInterval },
		func(s *model.TimerSettings, d time.Duration) { s.MicroBreakMinInterval = d }),
	"micro-break-max": durationField(
		func(s model.TimerSettings) time.Duration { return s.MicroBreakMaxInterval },
		func(s *model.TimerSettings, d time.Duration) { s.MicroBreakMaxInterval = d }),
	"micro-break-duration": durationField(
		func(s model.TimerSettings) time.Duration { return s.MicroBreakDuration },
		func(s *model.TimerSettings, d time.Duration) { s.MicroBreakDuration = d }),
	"notifications": boolField(
		func(s model.TimerSettings) bool { return s.NotificationEnabled },
		func(s *model.TimerSettings, v bool) { s.NotificationEnabled = v }),
	"vibration": boolField(
		func(s model.TimerSettings) bool { return s.VibrationEnabled },
		func(s *model.TimerSettings, v bool) { s.VibrationEnabled = v }),
	"sound": boolField(
		func(s model.TimerSettings) bool { return s.SoundEnabled },
		func(s *model.TimerSettings, v bool) { s.SoundEnabled = v }),
	"start-sound": soundField(
		func(s model.TimerSettings) model.SoundID { return s.StartSound },
		func(s *model.TimerSettings, id model.SoundID) { s.StartSound = id }),
	"end-sound": soundField(
		func(s model.TimerSettings) model.SoundID { return s.EndSound },
		func(s *model.TimerSettings, id model.SoundID) { s.EndSound = id }),
}

// Keys lists the settable keys in sorted order.
func Keys() []string {
	keys := make([]string, 0, len(fields))
	for key := range fields {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Value formats a single setting for display.
func Value(settings model.TimerSettings, key string) (string, error) {
	f, ok := fields[key]
	if !ok {
		return "", unknownKey(key)
	}
	return f.get(settings), nil
}

// Set parses value and applies it to key through Update.
func (store *Store) Set(key, value string) error {
	f, ok := fields[key]
	if !ok {
		return unknownKey(key)
	}
	value = strings.TrimSpace(value)
	scratch := store.Get()
	if err := f.set(&scratch, value); err != nil {
		return err
	}
	return store.Update(func(s *model.TimerSettings) {
		_ = f.set(s, value)
	})
}

func unknownKey(key string) error {
	return ferrors.New(ferrors.CategoryValidation,
		fmt.Sprintf("unknown setting %q (known: %s)", key, strings.Join(Keys(), ", ")))
}

func durationField(get func(model.TimerSettings) time.Duration, set func(*model.TimerSettings, time.Duration)) field {
	return field{
		get: func(s model.TimerSettings) string { return get(s).String() },
		set: func(s *model.TimerSettings, raw string) error {
			d, err := time.ParseDuration(raw)
			if err != nil {
				return ferrors.Validation(fmt.Errorf("parse duration %q: %w", raw, err))
			}
			set(s, d)
			return nil
		},
	}
}

func boolField(get func(model.TimerSettings) bool, set func(*model.TimerSettings, bool)) field {
	return field{
		get: func(s model.TimerSettings) string { return strconv.FormatBool(get(s)) },
		set: func(s *model.TimerSettings, raw string) error {
			v, err := strconv.ParseBool(raw)
			if err != nil {
				return ferrors.Validation(fmt.Errorf("parse bool %q: %w", raw, err))
			}
			set(s, v)
			return nil
		},
	}
}

func soundField(get func(model.TimerSettings) model.SoundID, set func(*model.TimerSettings, model.SoundID)) field {
	return field{
		get: func(s model.TimerSettings) string { return string(get(s)) },
		set: func(s *model.TimerSettings, raw string) error {
			set(s, model.SoundID(strings.ToLower(raw)))
			return nil
		},
	}
}
