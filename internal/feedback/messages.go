package feedback

import (
	"fmt"
	"time"

	"focustimer/internal/core/timer"
)

// Notification is a single user-visible message. Ongoing notifications stay
// until replaced or cancelled.
type Notification struct {
	Phase   timer.State
	Title   string
	Body    string
	Ongoing bool
}

func focusInProgress(remaining time.Duration) Notification {
	return Notification{
		Phase:   timer.StateFocusing,
		Title:   "Focus session",
		Body:    "Remaining: " + FormatClock(remaining),
		Ongoing: true,
	}
}

func focusComplete(breakRemaining time.Duration) Notification {
	return Notification{
		Phase:   timer.StateLongBreak,
		Title:   "Focus session complete",
		Body:    "Take a break. Remaining: " + FormatClock(breakRemaining),
		Ongoing: true,
	}
}

func resumed(phase timer.State, remaining time.Duration) Notification {
	title := "Focus resumed"
	if phase == timer.StateLongBreak {
		title = "Break resumed"
	}
	return Notification{
		Phase:   phase,
		Title:   title,
		Body:    "Remaining: " + FormatClock(remaining),
		Ongoing: true,
	}
}

func breakOver() Notification {
	return Notification{
		Phase: timer.StateIdle,
		Title: "Break over",
		Body:  "Ready for the next focus session",
	}
}

func microBreakStart(length time.Duration) Notification {
	return Notification{
		Phase: timer.StateMicroBreak,
		Title: "Micro-break",
		Body:  fmt.Sprintf("Close your eyes and relax for %d seconds", int(length.Round(time.Second)/time.Second)),
	}
}

func microBreakEnd() Notification {
	return Notification{
		Phase: timer.StateFocusing,
		Title: "Micro-break over",
		Body:  "Back to focus",
	}
}

// FormatClock renders d as MM:SS, rounding partial seconds up. Minutes are
// not wrapped into hours.
func FormatClock(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	seconds := int64((d + time.Second - 1) / time.Second)
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}
