package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"focustimer/internal/core/model"
)

// SQLiteFileName is the database file inside the data dir.
const SQLiteFileName = "focustimer.db"

// SQLiteStore persists the statistics snapshot and a journal of every
// recorded session. Each snapshot save runs in one transaction.
type SQLiteStore struct {
	db *sql.DB
	mu sync.RWMutex
}

// NewSQLiteStore opens or creates the database at dbPath.
// Use ":memory:" for an in-memory database.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	// A second pooled connection to ":memory:" would see an empty database.
	db.SetMaxOpenConns(1)

	store := &SQLiteStore{db: db}
	if err := store.initialize(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("initialize schema: %w", err)
	}
	return store, nil
}

func (s *SQLiteStore) initialize() error {
	schema := `
	CREATE TABLE IF NOT EXISTS statistics (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		total_sessions INTEGER NOT NULL,
		total_focus_time_ms INTEGER NOT NULL,
		average_session_length_ms INTEGER NOT NULL,
		consecutive_days INTEGER NOT NULL
	);
	CREATE TABLE IF NOT EXISTS daily_stats (
		date TEXT PRIMARY KEY,
		total_focus_time_ms INTEGER NOT NULL,
		session_count INTEGER NOT NULL,
		average_session_length_ms INTEGER NOT NULL
	);
	CREATE TABLE IF NOT EXISTS sessions (
		id TEXT PRIMARY KEY,
		session_type TEXT NOT NULL,
		start_ms INTEGER NOT NULL,
		duration_ms INTEGER NOT NULL,
		completed INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_sessions_start ON sessions(start_ms);
	`
	_, err := s.db.Exec(schema)
	return err
}

// LoadSnapshot returns nil when no snapshot has been saved.
func (s *SQLiteStore) LoadSnapshot(ctx context.Context) (*model.StatisticsSnapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var snapshot model.StatisticsSnapshot
	err := s.db.QueryRowContext(ctx,
		"SELECT total_sessions, total_focus_time_ms, average_session_length_ms, consecutive_days FROM statistics WHERE id = 1",
	).Scan(&snapshot.TotalSessions, &snapshot.TotalFocusTimeMs, &snapshot.AverageSessionLengthMs, &snapshot.ConsecutiveDays)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query statistics: %w", err)
	}

	rows, err := s.db.QueryContext(ctx,
		"SELECT date, total_focus_time_ms, session_count, average_session_length_ms FROM daily_stats ORDER BY date DESC",
	)
	if err != nil {
		return nil, fmt.Errorf("query daily stats: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var day model.DailyStatistic
		if err := rows.Scan(&day.Date, &day.TotalFocusTimeMs, &day.SessionCount, &day.AverageSessionLengthMs); err != nil {
			return nil, fmt.Errorf("scan daily stat: %w", err)
		}
		snapshot.DailyStats = append(snapshot.DailyStats, day)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate daily stats: %w", err)
	}
	return &snapshot, nil
}

// SaveSnapshot replaces the stored snapshot.
func (s *SQLiteStore) SaveSnapshot(ctx context.Context, snapshot model.StatisticsSnapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO statistics (id, total_sessions, total_focus_time_ms, average_session_length_ms, consecutive_days)
		VALUES (1, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			total_sessions = excluded.total_sessions,
			total_focus_time_ms = excluded.total_focus_time_ms,
			average_session_length_ms = excluded.average_session_length_ms,
			consecutive_days = excluded.consecutive_days`,
		snapshot.TotalSessions, snapshot.TotalFocusTimeMs, snapshot.AverageSessionLengthMs, snapshot.ConsecutiveDays,
	)
	if err != nil {
		return fmt.Errorf("upsert statistics: %w", err)
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM daily_stats"); err != nil {
		return fmt.Errorf("clear daily stats: %w", err)
	}
	for _, day := range snapshot.DailyStats {
		_, err := tx.ExecContext(ctx,
			"INSERT INTO daily_stats (date, total_focus_time_ms, session_count, average_session_length_ms) VALUES (?, ?, ?, ?)",
			day.Date, day.TotalFocusTimeMs, day.SessionCount, day.AverageSessionLengthMs,
		)
		if err != nil {
			return fmt.Errorf("insert daily stat %s: %w", day.Date, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit snapshot: %w", err)
	}
	return nil
}

// AppendSession journals a session record. Re-appending the same ID is a no-op.
func (s *SQLiteStore) AppendSession(ctx context.Context, record model.SessionRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	completed := 0
	if record.Completed {
		completed = 1
	}
	_, err := s.db.ExecContext(ctx,
		"INSERT OR IGNORE INTO sessions (id, session_type, start_ms, duration_ms, completed) VALUES (?, ?, ?, ?, ?)",
		record.ID, string(record.Type), record.StartTime.UnixMilli(), record.Duration.Milliseconds(), completed,
	)
	if err != nil {
		return fmt.Errorf("insert session: %w", err)
	}
	return nil
}

// RecentSessions returns up to limit sessions, newest first.
func (s *SQLiteStore) RecentSessions(ctx context.Context, limit int) ([]model.SessionRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		"SELECT id, session_type, start_ms, duration_ms, completed FROM sessions ORDER BY start_ms DESC, id LIMIT ?",
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query sessions: %w", err)
	}
	defer rows.Close()

	var records []model.SessionRecord
	for rows.Next() {
		var (
			record     model.SessionRecord
			kind       string
			startMs    int64
			durationMs int64
			completed  int
		)
		if err := rows.Scan(&record.ID, &kind, &startMs, &durationMs, &completed); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		record.Type = model.SessionType(kind)
		record.StartTime = time.UnixMilli(startMs)
		record.Duration = time.Duration(durationMs) * time.Millisecond
		record.Completed = completed == 1
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sessions: %w", err)
	}
	return records, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db.Close()
}
