package stats

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"focustimer/internal/core/model"
)

type memoryStore struct {
	loaded  *model.StatisticsSnapshot
	loadErr error
	saveErr error
	saved   []model.StatisticsSnapshot
}

func (s *memoryStore) LoadSnapshot(context.Context) (*model.StatisticsSnapshot, error) {
	return s.loaded, s.loadErr
}

func (s *memoryStore) SaveSnapshot(_ context.Context, snapshot model.StatisticsSnapshot) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.saved = append(s.saved, snapshot)
	return nil
}

var today = time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

func newAggregator(t *testing.T, store *memoryStore) (*Aggregator, *clockwork.FakeClock) {
	t.Helper()
	clock := clockwork.NewFakeClockAt(today)
	return New(context.Background(), store, Options{Location: time.UTC, Clock: clock}), clock
}

func focusAt(start time.Time, duration time.Duration) model.SessionRecord {
	return model.SessionRecord{
		ID:        start.Format(time.RFC3339),
		Type:      model.SessionFocus,
		StartTime: start,
		Duration:  duration,
		Completed: true,
	}
}

func TestRecordSessionTotalsUseTruncatingAverage(t *testing.T) {
	store := &memoryStore{}
	aggregator, _ := newAggregator(t, store)
	ctx := context.Background()

	durations := []time.Duration{1000 * time.Millisecond, 1000 * time.Millisecond, 1001 * time.Millisecond}
	var sum int64
	for i, d := range durations {
		sum += d.Milliseconds()
		_, err := aggregator.RecordSession(ctx, focusAt(today.Add(time.Duration(i)*time.Minute), d))
		require.NoError(t, err)
	}

	snapshot := aggregator.Snapshot()
	assert.Equal(t, 3, snapshot.TotalSessions)
	assert.Equal(t, sum, snapshot.TotalFocusTimeMs)
	assert.Equal(t, int64(1000), snapshot.AverageSessionLengthMs)
	require.Len(t, store.saved, 3)
	assert.Equal(t, snapshot, store.saved[2])
}

func TestDailyRollupsUpdateInPlace(t *testing.T) {
	aggregator, _ := newAggregator(t, &memoryStore{})
	ctx := context.Background()

	_, err := aggregator.RecordSession(ctx, focusAt(today.AddDate(0, 0, -1), 30*time.Minute))
	require.NoError(t, err)
	_, err = aggregator.RecordSession(ctx, focusAt(today, 90*time.Minute))
	require.NoError(t, err)
	snapshot, err := aggregator.RecordSession(ctx, focusAt(today.Add(time.Hour), 45*time.Minute))
	require.NoError(t, err)

	require.Len(t, snapshot.DailyStats, 2)
	assert.Equal(t, model.DailyStatistic{
		Date:                   "2024-03-10",
		TotalFocusTimeMs:       (135 * time.Minute).Milliseconds(),
		SessionCount:           2,
		AverageSessionLengthMs: (135 * time.Minute).Milliseconds() / 2,
	}, snapshot.DailyStats[0])
	assert.Equal(t, "2024-03-09", snapshot.DailyStats[1].Date)
	assert.Equal(t, 1, snapshot.DailyStats[1].SessionCount)
}

func TestConsecutiveDays(t *testing.T) {
	tests := []struct {
		name string
		days []int
		want int
	}{
		{"three trailing days", []int{0, -1, -2}, 3},
		{"gap after today", []int{0, -2}, 1},
		{"only today", []int{0}, 1},
		{"nothing today", []int{-1, -2}, 0},
		{"gap further back", []int{0, -1, -3, -4}, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			aggregator, _ := newAggregator(t, &memoryStore{})
			var snapshot model.StatisticsSnapshot
			for _, offset := range tt.days {
				var err error
				snapshot, err = aggregator.RecordSession(context.Background(), focusAt(today.AddDate(0, 0, offset), time.Minute))
				require.NoError(t, err)
			}
			assert.Equal(t, tt.want, snapshot.ConsecutiveDays)
		})
	}
}

func TestConsecutiveDaysStopsAtBadKey(t *testing.T) {
	days := []model.DailyStatistic{{Date: "2024-03-10"}, {Date: "garbage"}, {Date: "2024-03-08"}}
	assert.Equal(t, 1, consecutiveDays(days, today, time.UTC))
}

func TestConsecutiveDaysAcrossDSTChange(t *testing.T) {
	zone, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skip("tz database unavailable")
	}
	now := time.Date(2024, 3, 11, 8, 0, 0, 0, zone)
	days := []model.DailyStatistic{{Date: "2024-03-11"}, {Date: "2024-03-10"}, {Date: "2024-03-09"}}
	assert.Equal(t, 3, consecutiveDays(days, now, zone))
}

func TestDayKeyUsesConfiguredLocation(t *testing.T) {
	tokyo := time.FixedZone("JST", 9*60*60)
	clock := clockwork.NewFakeClockAt(today)
	aggregator := New(context.Background(), &memoryStore{}, Options{Location: tokyo, Clock: clock})

	start := time.Date(2024, 3, 10, 23, 30, 0, 0, time.UTC)
	snapshot, err := aggregator.RecordSession(context.Background(), focusAt(start, time.Minute))
	require.NoError(t, err)
	assert.Equal(t, "2024-03-11", snapshot.DailyStats[0].Date)
}

func TestDailyStatsReturnsMostRecentRecordedDays(t *testing.T) {
	aggregator, _ := newAggregator(t, &memoryStore{})
	for offset := range 10 {
		_, err := aggregator.RecordSession(context.Background(), focusAt(today.AddDate(0, 0, -offset*2), time.Minute))
		require.NoError(t, err)
	}

	weekly := aggregator.WeeklyStats()
	require.Len(t, weekly, 7)
	assert.Equal(t, "2024-03-10", weekly[0].Date)
	assert.Equal(t, "2024-02-27", weekly[6].Date)

	assert.Len(t, aggregator.MonthlyStats(), 10)
	assert.Len(t, aggregator.DailyStats(3), 3)
	assert.Empty(t, aggregator.DailyStats(0))

	weekly[0].SessionCount = 99
	assert.Equal(t, 1, aggregator.DailyStats(1)[0].SessionCount)
}

func TestLoadFailureStartsEmpty(t *testing.T) {
	aggregator, _ := newAggregator(t, &memoryStore{loadErr: errors.New("corrupt")})
	assert.Equal(t, model.StatisticsSnapshot{}, aggregator.Snapshot())

	snapshot, err := aggregator.RecordSession(context.Background(), focusAt(today, time.Minute))
	require.NoError(t, err)
	assert.Equal(t, 1, snapshot.TotalSessions)
}

func TestLoadNormalizesSnapshot(t *testing.T) {
	store := &memoryStore{loaded: &model.StatisticsSnapshot{
		TotalSessions:    2,
		TotalFocusTimeMs: 5,
		DailyStats: []model.DailyStatistic{
			{Date: "2024-03-08", SessionCount: 1, TotalFocusTimeMs: 2},
			{Date: "2024-03-09", SessionCount: 1, TotalFocusTimeMs: 3},
		},
	}}
	aggregator, _ := newAggregator(t, store)

	snapshot := aggregator.Snapshot()
	assert.Equal(t, int64(2), snapshot.AverageSessionLengthMs)
	assert.Equal(t, "2024-03-09", snapshot.DailyStats[0].Date)
}

func TestSaveFailureKeepsUpdate(t *testing.T) {
	store := &memoryStore{saveErr: errors.New("read-only")}
	aggregator, _ := newAggregator(t, store)

	snapshot, err := aggregator.RecordSession(context.Background(), focusAt(today, time.Minute))
	require.Error(t, err)
	assert.Equal(t, 1, snapshot.TotalSessions)
	assert.Equal(t, 1, aggregator.Snapshot().TotalSessions)
}

func TestRefreshStreakAfterMissedDays(t *testing.T) {
	store := &memoryStore{}
	aggregator, clock := newAggregator(t, store)

	_, err := aggregator.RecordSession(context.Background(), focusAt(today, time.Minute))
	require.NoError(t, err)
	require.Equal(t, 1, aggregator.Snapshot().ConsecutiveDays)

	require.NoError(t, aggregator.RefreshStreak(context.Background()))
	assert.Len(t, store.saved, 1)

	clock.Advance(48 * time.Hour)
	require.NoError(t, aggregator.RefreshStreak(context.Background()))
	assert.Zero(t, aggregator.Snapshot().ConsecutiveDays)
	assert.Len(t, store.saved, 2)
}
