package model

// DayKeyLayout is the calendar-day key format used by DailyStatistic.
const DayKeyLayout = "2006-01-02"

// DailyStatistic aggregates the sessions recorded on one calendar day.
type DailyStatistic struct {
	Date                   string `yaml:"date"`
	TotalFocusTimeMs       int64  `yaml:"total_focus_time_ms"`
	SessionCount           int    `yaml:"session_count"`
	AverageSessionLengthMs int64  `yaml:"average_session_length_ms"`
}

// StatisticsSnapshot is the aggregate view over every recorded session.
// DailyStats is ordered by date, most recent first.
type StatisticsSnapshot struct {
	TotalSessions          int              `yaml:"total_sessions"`
	TotalFocusTimeMs       int64            `yaml:"total_focus_time_ms"`
	AverageSessionLengthMs int64            `yaml:"average_session_length_ms"`
	ConsecutiveDays        int              `yaml:"consecutive_days"`
	DailyStats             []DailyStatistic `yaml:"daily_stats"`
}

// Clone returns a deep copy safe to hand to callers.
func (snapshot StatisticsSnapshot) Clone() StatisticsSnapshot {
	clone := snapshot
	if snapshot.DailyStats != nil {
		clone.DailyStats = append([]DailyStatistic(nil), snapshot.DailyStats...)
	}
	return clone
}
