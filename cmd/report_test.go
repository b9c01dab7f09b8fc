package main

import (
	"bytes"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"focustimer/internal/core/model"
)

func TestFormatMillis(t *testing.T) {
	tests := []struct {
		ms   int64
		want string
	}{
		{0, "0s"},
		{45_000, "45s"},
		{(25 * time.Minute).Milliseconds(), "25m"},
		{(90 * time.Minute).Milliseconds(), "1h 30m"},
		{(1234 * time.Hour).Milliseconds(), "1,234h 00m"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, formatMillis(tt.ms))
	}
}

func TestRenderStats(t *testing.T) {
	snapshot := model.StatisticsSnapshot{
		TotalSessions:          1200,
		TotalFocusTimeMs:       (1800 * time.Hour).Milliseconds(),
		AverageSessionLengthMs: (90 * time.Minute).Milliseconds(),
		ConsecutiveDays:        1,
	}
	days := []model.DailyStatistic{
		{Date: "2024-03-10", SessionCount: 2, TotalFocusTimeMs: (3 * time.Hour).Milliseconds(), AverageSessionLengthMs: (90 * time.Minute).Milliseconds()},
	}

	var out bytes.Buffer
	require.NoError(t, renderStats(&out, snapshot, days))
	text := out.String()
	assert.Contains(t, text, "Sessions:        1,200")
	assert.Contains(t, text, "Streak:          1 day\n")
	assert.Contains(t, text, "2024-03-10")
	assert.Contains(t, text, "3h 00m")
}

func TestRenderSessions(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, renderSessions(&out, nil, time.UTC))
	assert.Equal(t, "No sessions recorded yet.\n", out.String())

	out.Reset()
	start := time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)
	records := []model.SessionRecord{{ID: "abc", Type: model.SessionFocus, StartTime: start, Duration: 90 * time.Minute, Completed: true}}
	require.NoError(t, renderSessions(&out, records, time.UTC))
	assert.Contains(t, out.String(), "2024-03-10 09:00")
	assert.Contains(t, out.String(), "10:30")
	assert.Contains(t, out.String(), "focus")
}

func TestRenderSettingsListsEveryKey(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, renderSettings(&out, model.DefaultTimerSettings()))
	assert.Contains(t, out.String(), "focus")
	assert.Contains(t, out.String(), "1h30m0s")
	assert.Contains(t, out.String(), "start-sound")
}

func TestParseLogLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, parseLogLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, parseLogLevel("warn"))
	assert.Equal(t, slog.LevelInfo, parseLogLevel("bogus"))
}

func TestCLIOpenUsesDataDir(t *testing.T) {
	dir := t.TempDir()
	cli := CLI{DataDir: dir, Storage: "yaml", Timezone: "UTC"}
	ws, err := cli.open()
	require.NoError(t, err)
	defer func() { _ = ws.Close() }()

	assert.Nil(t, ws.journal)
	assert.Equal(t, time.UTC, ws.location)
	require.NoError(t, ws.settings.Set("focus", "25m"))
	assert.FileExists(t, ws.settingsFile.Path)

	_, err = (&CLI{DataDir: dir, Timezone: "Mars/Olympus"}).open()
	assert.Error(t, err)
}
