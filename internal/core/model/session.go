package model

import "time"

// SessionType distinguishes focus periods from long breaks.
type SessionType string

const (
	SessionFocus SessionType = "focus"
	SessionBreak SessionType = "break"
)

// SessionRecord describes a finished phase. Records are immutable once created.
type SessionRecord struct {
	ID        string
	Type      SessionType
	StartTime time.Time
	Duration  time.Duration
	Completed bool
}

// EndTime returns the nominal end of the session.
func (record SessionRecord) EndTime() time.Time {
	return record.StartTime.Add(record.Duration)
}
