package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"fyne.io/fyne/v2"
	fyneapp "fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/theme"
	"github.com/prometheus/client_golang/prometheus"

	"focustimer/internal/app"
	"focustimer/internal/core/model"
	"focustimer/internal/core/timer"
	"focustimer/internal/feedback"
	"focustimer/internal/metrics"
	"focustimer/internal/platform"
	"focustimer/internal/settings"
	"focustimer/internal/ui/preferences"
	"focustimer/internal/ui/tray"
)

// RunCmd implements the 'run' command.
type RunCmd struct {
	Headless       bool          `help:"Run without the tray; notifications go to the log"`
	Start          bool          `help:"Start a focus session immediately"`
	MetricsAddr    string        `name:"metrics-addr" env:"FOCUS_METRICS_ADDR" help:"Serve Prometheus metrics on this address (e.g. 127.0.0.1:9464)"`
	IdlePauseAfter time.Duration `name:"idle-pause-after" env:"FOCUS_IDLE_PAUSE_AFTER" default:"0s" help:"Pause a focus session after this much inactivity (0 disables)"`
}

func (r *RunCmd) Run(root *CLI) error {
	guard, err := platform.AcquireSingleInstance(appName)
	if err != nil {
		if errors.Is(err, platform.ErrAlreadyRunning) {
			slog.Info("Focus timer already running, activating it")
			return platform.ActivateRunning(appName)
		}
		return err
	}
	defer func() { _ = guard.Release() }()

	ws, err := root.open()
	if err != nil {
		return err
	}
	defer func() { _ = ws.Close() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var recorder metrics.Recorder = metrics.NoopRecorder{}
	var metricsServer *app.MetricsServer
	if r.MetricsAddr != "" {
		reg := prometheus.NewRegistry()
		recorder = metrics.NewPrometheusRecorder(reg)
		metricsServer, err = app.ListenMetrics(r.MetricsAddr, reg, slog.Default())
		if err != nil {
			return err
		}
	}

	var fyneApp fyne.App
	var notifier feedback.Notifier = feedback.LogNotifier{Logger: slog.Default()}
	if !r.Headless {
		fyneApp = fyneapp.NewWithID("io.github.focustimer")
		fyneApp.SetIcon(theme.MediaRecordIcon())
		notifier = feedback.FyneNotifier{App: fyneApp}
	}

	dispatcher := feedback.New(ws.settings.Get, feedback.Options{
		Notifier: notifier,
		Vibrator: feedback.LogVibrator{Logger: slog.Default()},
		Sound:    platform.NewSoundPlayer(slog.Default()),
		Logger:   slog.Default(),
	})

	service, err := app.New(app.Options{
		Settings:       ws.settings,
		Stats:          ws.aggregator(ctx, recorder),
		Journal:        journalOrNil(ws),
		Dispatcher:     dispatcher,
		Idle:           platform.NewIdleProvider(),
		IdlePauseAfter: r.IdlePauseAfter,
		Location:       ws.location,
		Logger:         slog.Default(),
		Metrics:        recorder,
	})
	if err != nil {
		return err
	}

	watcher, err := settings.NewWatcher(ws.settingsFile.Path, ws.settings, settings.DefaultDebounce, slog.Default())
	if err != nil {
		slog.Warn("Settings file will not be watched", slog.String("error", err.Error()))
	}

	var wg sync.WaitGroup
	background := func(fn func()) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			fn()
		}()
	}
	runCtx, cancel := context.WithCancel(ctx)
	defer func() {
		cancel()
		wg.Wait()
	}()

	if watcher != nil {
		background(func() { watcher.Run(runCtx) })
	}
	if metricsServer != nil {
		background(func() {
			if err := metricsServer.Serve(runCtx); err != nil {
				slog.Error("Metrics server failed", slog.String("error", err.Error()))
			}
		})
	}
	background(func() {
		if err := service.Run(runCtx); err != nil {
			slog.Error("Timer service stopped with error", slog.String("error", err.Error()))
		}
		service.Timer().Close()
	})

	startNow := func() error {
		if !r.Start {
			return nil
		}
		return service.Timer().StartFocusSession()
	}

	if r.Headless {
		guard.OnActivate(func() {
			slog.Info("Activation requested", slog.String("state", string(service.Timer().Status().State)))
		})
		logEvents(service.Timer().Subscribe(64))
		if err := startNow(); err != nil {
			return err
		}
		<-runCtx.Done()
		return nil
	}

	desktopApp, ok := fyneApp.(desktop.App)
	if !ok {
		return errors.New("system tray unsupported on this platform; use --headless")
	}
	runTray(fyneApp, desktopApp, service, ws, guard, cancel)
	if err := startNow(); err != nil {
		return err
	}

	// Quit from the tray cancels runCtx; a signal has to stop the UI loop.
	go func() {
		<-runCtx.Done()
		fyne.Do(fyneApp.Quit)
	}()
	fyneApp.Run()
	return nil
}

func journalOrNil(ws *workspace) app.Journal {
	if ws.journal == nil {
		return nil
	}
	return ws.journal
}

func logEvents(events <-chan timer.Event) {
	go func() {
		for event := range events {
			switch event.Type {
			case timer.EventStateChange:
				slog.Info("Timer state changed",
					slog.String("state", string(event.State)),
					slog.String("remaining", feedback.FormatClock(event.Remaining)))
			case timer.EventSessionComplete:
				slog.Info("Session complete",
					slog.String("session_type", string(event.Session.Type)),
					slog.Duration("duration", event.Session.Duration))
			case timer.EventFeedbackError:
				slog.Debug("Feedback error surfaced", slog.String("error", event.Message))
			}
		}
	}()
}

func runTray(fyneApp fyne.App, desktopApp desktop.App, service *app.Service, ws *workspace, guard *platform.InstanceGuard, quit context.CancelFunc) {
	tm := service.Timer()

	trayWindow := fyneApp.NewWindow("Focus Timer")
	trayWindow.SetCloseIntercept(trayWindow.Hide)
	desktopApp.SetSystemTrayWindow(trayWindow)

	prefsWindow := preferences.New(fyneApp, ws.settings.Get(), func(updated model.TimerSettings) error {
		return ws.settings.Update(func(current *model.TimerSettings) { *current = updated })
	})
	ws.settings.OnChange(func(updated model.TimerSettings) {
		fyne.Do(func() { prefsWindow.UpdateSettings(updated) })
	})
	guard.OnActivate(func() { fyne.Do(prefsWindow.Show) })

	report := func(err error) {
		if err != nil {
			slog.Debug("Tray action ignored", slog.String("error", err.Error()))
		}
	}
	manager := tray.New(desktopApp, tray.Callbacks{
		OnStart: func() { report(tm.StartFocusSession()) },
		OnTogglePause: func() {
			if tm.Status().State == timer.StatePaused {
				report(tm.Resume())
			} else {
				report(tm.Pause())
			}
		},
		OnStop:        tm.Stop,
		OnReset:       tm.Reset,
		OnPreferences: prefsWindow.Show,
		OnQuit: func() {
			quit()
			fyneApp.Quit()
		},
	})

	refreshSummary := func() {
		manager.SetTodaySummary(todaySummary(service, ws))
	}
	refreshSummary()

	events := tm.Subscribe(64)
	go func() {
		for event := range events {
			fyne.Do(func() {
				switch event.Type {
				case timer.EventStateChange:
					manager.SetState(event.State)
					manager.SetStatus(feedback.FormatClock(event.Remaining))
					refreshSummary()
				case timer.EventProgress:
					manager.SetStatus(feedback.FormatClock(event.Remaining))
				case timer.EventCountersReset:
					refreshSummary()
				}
			})
		}
	}()
}

func todaySummary(service *app.Service, ws *workspace) string {
	key := time.Now().In(ws.location).Format(model.DayKeyLayout)
	days := service.Stats().DailyStats(1)
	if len(days) == 0 || days[0].Date != key {
		return "Today: no sessions yet"
	}
	day := days[0]
	return fmt.Sprintf("Today: %d %s, %s", day.SessionCount,
		plural(day.SessionCount, "session", "sessions"), formatMillis(day.TotalFocusTimeMs))
}
