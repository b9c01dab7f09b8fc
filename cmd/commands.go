package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"text/tabwriter"

	"focustimer/internal/core/model"
	"focustimer/internal/metrics"
	"focustimer/internal/settings"
)

// StatsCmd implements the 'stats' command.
type StatsCmd struct {
	Days int `short:"d" default:"7" help:"Number of recorded days to list"`
}

func (s *StatsCmd) Run(root *CLI) error {
	ws, err := root.open()
	if err != nil {
		return err
	}
	defer func() { _ = ws.Close() }()

	aggregator := ws.aggregator(context.Background(), metrics.NoopRecorder{})
	if err := aggregator.RefreshStreak(context.Background()); err != nil {
		return fmt.Errorf("refresh streak: %w", err)
	}
	return renderStats(os.Stdout, aggregator.Snapshot(), aggregator.DailyStats(s.Days))
}

// SessionsCmd implements the 'sessions' command.
type SessionsCmd struct {
	Limit int `short:"n" default:"20" help:"Maximum number of sessions to list"`
}

func (s *SessionsCmd) Run(root *CLI) error {
	ws, err := root.open()
	if err != nil {
		return err
	}
	defer func() { _ = ws.Close() }()

	if ws.journal == nil {
		return errors.New("the session journal requires --storage=sqlite")
	}
	records, err := ws.journal.RecentSessions(context.Background(), s.Limit)
	if err != nil {
		return err
	}
	return renderSessions(os.Stdout, records, ws.location)
}

// SettingsCmd groups the settings subcommands.
type SettingsCmd struct {
	Show SettingsShowCmd `cmd:"" default:"1" help:"Print current settings"`
	Set  SettingsSetCmd  `cmd:"" help:"Change one setting"`
}

// SettingsShowCmd implements 'settings show'.
type SettingsShowCmd struct{}

func (s *SettingsShowCmd) Run(root *CLI) error {
	ws, err := root.open()
	if err != nil {
		return err
	}
	defer func() { _ = ws.Close() }()
	return renderSettings(os.Stdout, ws.settings.Get())
}

// SettingsSetCmd implements 'settings set KEY VALUE'.
type SettingsSetCmd struct {
	Key   string `arg:"" help:"Setting key, see 'settings show'"`
	Value string `arg:"" help:"New value; durations like 25m or 30s"`
}

func (s *SettingsSetCmd) Run(root *CLI) error {
	ws, err := root.open()
	if err != nil {
		return err
	}
	defer func() { _ = ws.Close() }()

	if err := ws.settings.Set(s.Key, s.Value); err != nil {
		return err
	}
	value, _ := settings.Value(ws.settings.Get(), s.Key)
	fmt.Printf("%s = %s\n", s.Key, value)
	return nil
}

func renderSettingsTo(w *tabwriter.Writer, current model.TimerSettings) error {
	for _, key := range settings.Keys() {
		value, err := settings.Value(current, key)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s\t%s\n", key, value)
	}
	return w.Flush()
}
