package logfields

import (
	"log/slog"
	"time"
)

// Canonical log field names shared across packages.
const (
	KeyState       = "state"
	KeySessionType = "session_type"
	KeySessionID   = "session_id"
	KeyRemainingMS = "remaining_ms"
	KeyCue         = "cue"
	KeyDay         = "day"
	KeyPath        = "path"
	KeyJob         = "job"
	KeyError       = "error"
)

func State(s string) slog.Attr       { return slog.String(KeyState, s) }
func SessionType(t string) slog.Attr { return slog.String(KeySessionType, t) }
func SessionID(id string) slog.Attr  { return slog.String(KeySessionID, id) }
func Cue(kind string) slog.Attr      { return slog.String(KeyCue, kind) }
func Day(key string) slog.Attr       { return slog.String(KeyDay, key) }
func Path(p string) slog.Attr        { return slog.String(KeyPath, p) }
func Job(name string) slog.Attr      { return slog.String(KeyJob, name) }

func Remaining(d time.Duration) slog.Attr {
	return slog.Int64(KeyRemainingMS, d.Milliseconds())
}

func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
