// Package stats aggregates completed sessions into running totals, per-day
// rollups and a consecutive-day streak.
package stats

import (
	"context"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"focustimer/internal/core/model"
	"focustimer/internal/logfields"
	"focustimer/internal/metrics"
)

// Store persists the statistics snapshot. LoadSnapshot returns nil and no
// error when nothing has been saved yet.
type Store interface {
	LoadSnapshot(ctx context.Context) (*model.StatisticsSnapshot, error)
	SaveSnapshot(ctx context.Context, snapshot model.StatisticsSnapshot) error
}

// Options configures an Aggregator.
type Options struct {
	// Location decides calendar days. Defaults to time.Local.
	Location *time.Location
	Clock    clockwork.Clock
	Logger   *slog.Logger
	Metrics  metrics.Recorder
}

// Aggregator owns the StatisticsSnapshot. It expects a single writer.
type Aggregator struct {
	mu       sync.RWMutex
	store    Store
	location *time.Location
	clock    clockwork.Clock
	logger   *slog.Logger
	recorder metrics.Recorder
	snapshot model.StatisticsSnapshot
}

// New loads the persisted snapshot. A missing or unreadable snapshot yields
// an empty one.
func New(ctx context.Context, store Store, options Options) *Aggregator {
	if options.Location == nil {
		options.Location = time.Local
	}
	if options.Clock == nil {
		options.Clock = clockwork.NewRealClock()
	}
	if options.Logger == nil {
		options.Logger = slog.Default()
	}
	if options.Metrics == nil {
		options.Metrics = metrics.NoopRecorder{}
	}

	aggregator := &Aggregator{
		store:    store,
		location: options.Location,
		clock:    options.Clock,
		logger:   options.Logger,
		recorder: options.Metrics,
	}

	loaded, err := store.LoadSnapshot(ctx)
	switch {
	case err != nil:
		aggregator.logger.Warn("Failed to load statistics, starting empty", logfields.Error(err))
	case loaded != nil:
		aggregator.snapshot = normalize(*loaded)
	}
	aggregator.recorder.SetStreak(aggregator.snapshot.ConsecutiveDays)
	return aggregator
}

// RecordSession folds a session into the totals and its day, recomputes the
// streak and persists the snapshot. The in-memory update stands even when
// saving fails; the save error is returned.
func (a *Aggregator) RecordSession(ctx context.Context, session model.SessionRecord) (model.StatisticsSnapshot, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	durationMs := session.Duration.Milliseconds()
	dayKey := session.StartTime.In(a.location).Format(model.DayKeyLayout)

	a.snapshot.TotalSessions++
	a.snapshot.TotalFocusTimeMs += durationMs
	a.snapshot.AverageSessionLengthMs = a.snapshot.TotalFocusTimeMs / int64(a.snapshot.TotalSessions)

	index := a.dayIndexLocked(dayKey)
	if index < 0 {
		a.snapshot.DailyStats = append(a.snapshot.DailyStats, model.DailyStatistic{Date: dayKey})
		index = len(a.snapshot.DailyStats) - 1
	}
	day := &a.snapshot.DailyStats[index]
	day.TotalFocusTimeMs += durationMs
	day.SessionCount++
	day.AverageSessionLengthMs = day.TotalFocusTimeMs / int64(day.SessionCount)

	sortDescending(a.snapshot.DailyStats)
	a.snapshot.ConsecutiveDays = consecutiveDays(a.snapshot.DailyStats, a.clock.Now(), a.location)
	a.recorder.SetStreak(a.snapshot.ConsecutiveDays)

	a.logger.Debug("Recorded session",
		logfields.SessionID(session.ID),
		logfields.SessionType(string(session.Type)),
		logfields.Day(dayKey))

	result := a.snapshot.Clone()
	if err := a.store.SaveSnapshot(ctx, result); err != nil {
		return result, err
	}
	return result, nil
}

// RefreshStreak recomputes the streak against the current date and persists
// the snapshot when it changed.
func (a *Aggregator) RefreshStreak(ctx context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	streak := consecutiveDays(a.snapshot.DailyStats, a.clock.Now(), a.location)
	a.recorder.SetStreak(streak)
	if streak == a.snapshot.ConsecutiveDays {
		return nil
	}
	a.snapshot.ConsecutiveDays = streak
	return a.store.SaveSnapshot(ctx, a.snapshot.Clone())
}

// Snapshot returns a copy of the current statistics.
func (a *Aggregator) Snapshot() model.StatisticsSnapshot {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.snapshot.Clone()
}

// DailyStats returns up to n of the most recently recorded days. Days without
// sessions are not padded in.
func (a *Aggregator) DailyStats(n int) []model.DailyStatistic {
	a.mu.RLock()
	defer a.mu.RUnlock()

	if n <= 0 {
		return []model.DailyStatistic{}
	}
	if n > len(a.snapshot.DailyStats) {
		n = len(a.snapshot.DailyStats)
	}
	return append([]model.DailyStatistic{}, a.snapshot.DailyStats[:n]...)
}

// WeeklyStats returns the seven most recently recorded days.
func (a *Aggregator) WeeklyStats() []model.DailyStatistic {
	return a.DailyStats(7)
}

// MonthlyStats returns the thirty most recently recorded days.
func (a *Aggregator) MonthlyStats() []model.DailyStatistic {
	return a.DailyStats(30)
}

func (a *Aggregator) dayIndexLocked(dayKey string) int {
	for i := range a.snapshot.DailyStats {
		if a.snapshot.DailyStats[i].Date == dayKey {
			return i
		}
	}
	return -1
}

func normalize(snapshot model.StatisticsSnapshot) model.StatisticsSnapshot {
	snapshot = snapshot.Clone()
	sortDescending(snapshot.DailyStats)
	if snapshot.TotalSessions > 0 {
		snapshot.AverageSessionLengthMs = snapshot.TotalFocusTimeMs / int64(snapshot.TotalSessions)
	} else {
		snapshot.AverageSessionLengthMs = 0
	}
	return snapshot
}

func sortDescending(days []model.DailyStatistic) {
	sort.SliceStable(days, func(i, j int) bool {
		return days[i].Date > days[j].Date
	})
}
