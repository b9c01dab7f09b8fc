package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"focustimer/internal/core/stats"
	"focustimer/internal/metrics"
	"focustimer/internal/platform"
	"focustimer/internal/settings"
	"focustimer/internal/storage"
)

// CLI is the root command line.
type CLI struct {
	Verbose  bool   `short:"v" help:"Enable verbose logging"`
	LogLevel string `name:"log-level" env:"FOCUS_LOG_LEVEL" default:"info" enum:"debug,info,warn,error" help:"Log level"`
	DataDir  string `name:"data-dir" env:"FOCUS_DATA_DIR" type:"path" help:"Directory for settings and statistics (default: user config dir)"`
	Storage  string `env:"FOCUS_STORAGE" default:"sqlite" enum:"yaml,sqlite" help:"Statistics backend"`
	Timezone string `env:"FOCUS_TIMEZONE" help:"IANA time zone deciding calendar days (default: local)"`

	Run      RunCmd      `cmd:"" default:"withargs" help:"Run the timer in the system tray"`
	Stats    StatsCmd    `cmd:"" help:"Print focus statistics"`
	Sessions SessionsCmd `cmd:"" help:"List recently recorded sessions"`
	Settings SettingsCmd `cmd:"" help:"Show or change timer settings"`
}

// AfterApply runs after flag parsing; setup logging once.
func (c *CLI) AfterApply() error {
	level := parseLogLevel(c.LogLevel)
	if c.Verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	return nil
}

func parseLogLevel(value string) slog.Level {
	switch strings.ToLower(value) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// workspace holds the persistence collaborators shared by every command.
type workspace struct {
	dir          string
	location     *time.Location
	settingsFile *storage.SettingsFile
	settings     *settings.Store
	statsStore   stats.Store
	journal      *storage.SQLiteStore
}

func (c *CLI) open() (*workspace, error) {
	dir := c.DataDir
	if dir == "" {
		resolved, err := platform.DataDir(appName)
		if err != nil {
			return nil, err
		}
		dir = resolved
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}

	location := time.Local
	if c.Timezone != "" {
		loaded, err := time.LoadLocation(c.Timezone)
		if err != nil {
			return nil, fmt.Errorf("load time zone %q: %w", c.Timezone, err)
		}
		location = loaded
	}

	ws := &workspace{
		dir:          dir,
		location:     location,
		settingsFile: storage.NewSettingsFile(dir),
	}
	store, err := settings.NewStore(ws.settingsFile, slog.Default())
	if err != nil {
		slog.Warn("Using default settings", slog.String("path", ws.settingsFile.Path), slog.String("error", err.Error()))
	}
	ws.settings = store

	switch c.Storage {
	case "yaml":
		ws.statsStore = storage.NewYAMLSnapshotStore(dir)
	default:
		journal, err := storage.NewSQLiteStore(filepath.Join(dir, storage.SQLiteFileName))
		if err != nil {
			return nil, err
		}
		ws.journal = journal
		ws.statsStore = journal
	}
	return ws, nil
}

func (ws *workspace) aggregator(ctx context.Context, recorder metrics.Recorder) *stats.Aggregator {
	return stats.New(ctx, ws.statsStore, stats.Options{
		Location: ws.location,
		Logger:   slog.Default(),
		Metrics:  recorder,
	})
}

func (ws *workspace) Close() error {
	if ws.journal == nil {
		return nil
	}
	return ws.journal.Close()
}
