package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"focustimer/internal/core/model"
)

func sampleSnapshot() model.StatisticsSnapshot {
	return model.StatisticsSnapshot{
		TotalSessions:          3,
		TotalFocusTimeMs:       16200000,
		AverageSessionLengthMs: 5400000,
		ConsecutiveDays:        2,
		DailyStats: []model.DailyStatistic{
			{Date: "2024-03-10", TotalFocusTimeMs: 10800000, SessionCount: 2, AverageSessionLengthMs: 5400000},
			{Date: "2024-03-09", TotalFocusTimeMs: 5400000, SessionCount: 1, AverageSessionLengthMs: 5400000},
		},
	}
}

func TestSettingsFileMissingReturnsDefaults(t *testing.T) {
	file := NewSettingsFile(t.TempDir())
	settings, err := file.Load()
	require.NoError(t, err)
	assert.Equal(t, model.DefaultTimerSettings(), settings)
}

func TestSettingsFileRoundTrip(t *testing.T) {
	file := NewSettingsFile(filepath.Join(t.TempDir(), "nested"))
	settings := model.DefaultTimerSettings()
	settings.FocusDuration = 50 * time.Minute
	settings.BreakDuration = 10 * time.Minute
	settings.MicroBreakEnabled = false
	settings.MicroBreakMinInterval = 2 * time.Minute
	settings.MicroBreakMaxInterval = 4 * time.Minute
	settings.MicroBreakDuration = 15 * time.Second
	settings.SoundEnabled = false
	settings.StartSound = model.SoundFrog
	settings.EndSound = model.SoundPurr

	require.NoError(t, file.Save(settings))
	loaded, err := file.Load()
	require.NoError(t, err)
	assert.Equal(t, settings, loaded)
}

func TestSettingsFilePartialYAMLKeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, SettingsFileName)
	require.NoError(t, os.WriteFile(path, []byte("focus_minutes: 25\nvibration_enabled: false\n"), 0o644))

	settings, err := NewSettingsFile(dir).Load()
	require.NoError(t, err)
	assert.Equal(t, 25*time.Minute, settings.FocusDuration)
	assert.False(t, settings.VibrationEnabled)
	assert.Equal(t, 20*time.Minute, settings.BreakDuration)
	assert.True(t, settings.MicroBreakEnabled)
	assert.Equal(t, model.SoundTink, settings.StartSound)
}

func TestSettingsFileInvalidYAML(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, SettingsFileName), []byte("focus_minutes: [\n"), 0o644))

	settings, err := NewSettingsFile(dir).Load()
	require.Error(t, err)
	assert.Equal(t, model.DefaultTimerSettings(), settings)
}

func TestYAMLSnapshotStoreRoundTrip(t *testing.T) {
	store := NewYAMLSnapshotStore(t.TempDir())
	ctx := context.Background()

	loaded, err := store.LoadSnapshot(ctx)
	require.NoError(t, err)
	assert.Nil(t, loaded)

	require.NoError(t, store.SaveSnapshot(ctx, sampleSnapshot()))
	loaded, err = store.LoadSnapshot(ctx)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, sampleSnapshot(), *loaded)
}

func TestYAMLSnapshotStoreParseFailure(t *testing.T) {
	dir := t.TempDir()
	store := NewYAMLSnapshotStore(dir)
	require.NoError(t, os.WriteFile(store.Path(), []byte("daily_stats: {"), 0o644))

	loaded, err := store.LoadSnapshot(context.Background())
	require.Error(t, err)
	assert.Nil(t, loaded)
}

func TestYAMLSnapshotStoreLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	store := NewYAMLSnapshotStore(dir)
	require.NoError(t, store.SaveSnapshot(context.Background(), sampleSnapshot()))
	require.NoError(t, store.SaveSnapshot(context.Background(), sampleSnapshot()))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, SnapshotFileName, entries[0].Name())
}

func TestSQLiteStoreSnapshotRoundTrip(t *testing.T) {
	store, err := NewSQLiteStore(":memory:")
	require.NoError(t, err)
	defer func() { _ = store.Close() }()
	ctx := context.Background()

	loaded, err := store.LoadSnapshot(ctx)
	require.NoError(t, err)
	assert.Nil(t, loaded)

	require.NoError(t, store.SaveSnapshot(ctx, sampleSnapshot()))
	loaded, err = store.LoadSnapshot(ctx)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, sampleSnapshot(), *loaded)

	smaller := sampleSnapshot()
	smaller.DailyStats = smaller.DailyStats[:1]
	require.NoError(t, store.SaveSnapshot(ctx, smaller))
	loaded, err = store.LoadSnapshot(ctx)
	require.NoError(t, err)
	assert.Len(t, loaded.DailyStats, 1)
}

func TestSQLiteStoreSessionJournal(t *testing.T) {
	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), SQLiteFileName))
	require.NoError(t, err)
	defer func() { _ = store.Close() }()
	ctx := context.Background()

	start := time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)
	first := model.SessionRecord{ID: "a", Type: model.SessionFocus, StartTime: start, Duration: 90 * time.Minute, Completed: true}
	second := model.SessionRecord{ID: "b", Type: model.SessionFocus, StartTime: start.Add(2 * time.Hour), Duration: 90 * time.Minute, Completed: true}

	require.NoError(t, store.AppendSession(ctx, first))
	require.NoError(t, store.AppendSession(ctx, second))
	require.NoError(t, store.AppendSession(ctx, second))

	records, err := store.RecentSessions(ctx, 10)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "b", records[0].ID)
	assert.True(t, records[0].StartTime.Equal(second.StartTime))
	assert.Equal(t, first.Duration, records[1].Duration)
	assert.True(t, records[1].Completed)

	limited, err := store.RecentSessions(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}
