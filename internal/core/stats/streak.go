package stats

import (
	"time"

	"focustimer/internal/core/model"
)

// consecutiveDays walks days (most recent first) and counts while each day
// lies exactly as many calendar days before today as the count so far. The
// first mismatch or unparseable key ends the walk.
func consecutiveDays(days []model.DailyStatistic, now time.Time, location *time.Location) int {
	today := civilDate(now.In(location))
	count := 0
	for _, day := range days {
		parsed, err := time.ParseInLocation(model.DayKeyLayout, day.Date, location)
		if err != nil {
			break
		}
		if daysBetween(civilDate(parsed), today) != count {
			break
		}
		count++
	}
	return count
}

// civilDate maps t to midnight UTC of its calendar date so that day
// differences ignore DST shifts.
func civilDate(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func daysBetween(from, to time.Time) int {
	return int(to.Sub(from).Hours() / 24)
}
