// Package tray renders the timer controls in the desktop system tray.
package tray

import (
	"fmt"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/theme"

	"focustimer/internal/core/timer"
)

const menuTitle = "Focus Timer"

// Callbacks defines tray action handlers.
type Callbacks struct {
	OnStart       func()
	OnTogglePause func()
	OnStop        func()
	OnReset       func()
	OnPreferences func()
	OnQuit        func()
}

// Manager handles system tray state. Its methods must run on the fyne
// main goroutine.
type Manager struct {
	mu sync.Mutex

	app        desktop.App
	callbacks  Callbacks
	statusItem *fyne.MenuItem
	statsItem  *fyne.MenuItem
	startItem  *fyne.MenuItem
	pauseItem  *fyne.MenuItem
	stopItem   *fyne.MenuItem
	resetItem  *fyne.MenuItem

	state       timer.State
	statusLabel string
}

// New creates a tray manager with the provided callbacks. A nil app builds
// the menu without installing it.
func New(app desktop.App, callbacks Callbacks) *Manager {
	manager := &Manager{
		app:       app,
		callbacks: callbacks,
		state:     timer.StateIdle,
	}

	manager.statusItem = fyne.NewMenuItem("", nil)
	manager.statusItem.Disabled = true
	manager.statsItem = fyne.NewMenuItem("Today: no sessions yet", nil)
	manager.statsItem.Disabled = true

	manager.startItem = fyne.NewMenuItem("Start focus session", invoke(&manager.callbacks.OnStart))
	manager.startItem.Icon = theme.MediaPlayIcon()
	manager.pauseItem = fyne.NewMenuItem("Pause", invoke(&manager.callbacks.OnTogglePause))
	manager.stopItem = fyne.NewMenuItem("Stop", invoke(&manager.callbacks.OnStop))
	manager.stopItem.Icon = theme.MediaStopIcon()
	manager.resetItem = fyne.NewMenuItem("Reset counters", invoke(&manager.callbacks.OnReset))

	manager.apply()
	return manager
}

func invoke(fn *func()) func() {
	return func() {
		if *fn != nil {
			(*fn)()
		}
	}
}

// SetState updates menu items for the timer state.
func (manager *Manager) SetState(state timer.State) {
	manager.mu.Lock()
	manager.state = state
	manager.mu.Unlock()
	manager.apply()
}

// SetStatus updates the status line, typically a remaining-time readout.
func (manager *Manager) SetStatus(status string) {
	manager.mu.Lock()
	manager.statusLabel = status
	manager.mu.Unlock()
	manager.apply()
}

// SetTodaySummary updates the statistics line.
func (manager *Manager) SetTodaySummary(summary string) {
	manager.mu.Lock()
	manager.statsItem.Label = summary
	manager.mu.Unlock()
	manager.apply()
}

// Items returns the current menu items, for inspection.
func (manager *Manager) Items() []*fyne.MenuItem {
	manager.mu.Lock()
	defer manager.mu.Unlock()
	return manager.itemsLocked()
}

func (manager *Manager) apply() {
	manager.mu.Lock()
	state := manager.state
	controls := controlsFor(state)
	manager.startItem.Disabled = !controls.start
	manager.pauseItem.Disabled = !controls.pause
	manager.pauseItem.Label = controls.pauseLabel
	if controls.pauseLabel == "Resume" {
		manager.pauseItem.Icon = theme.MediaPlayIcon()
	} else {
		manager.pauseItem.Icon = theme.MediaPauseIcon()
	}
	manager.stopItem.Disabled = !controls.stop
	manager.statusItem.Label = statusLine(state, manager.statusLabel)
	items := manager.itemsLocked()
	manager.mu.Unlock()

	if manager.app == nil {
		return
	}
	manager.app.SetSystemTrayMenu(fyne.NewMenu(menuTitle, items...))
	manager.app.SetSystemTrayIcon(iconFor(state))
}

func (manager *Manager) itemsLocked() []*fyne.MenuItem {
	return []*fyne.MenuItem{
		manager.statusItem,
		manager.statsItem,
		fyne.NewMenuItemSeparator(),
		manager.startItem,
		manager.pauseItem,
		manager.stopItem,
		manager.resetItem,
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Preferences", invoke(&manager.callbacks.OnPreferences)),
		fyne.NewMenuItem("Quit", invoke(&manager.callbacks.OnQuit)),
	}
}

type controls struct {
	start      bool
	pause      bool
	pauseLabel string
	stop       bool
}

func controlsFor(state timer.State) controls {
	switch state {
	case timer.StateIdle:
		return controls{start: true, pauseLabel: "Pause"}
	case timer.StatePaused:
		return controls{pause: true, pauseLabel: "Resume", stop: true}
	default:
		return controls{pause: true, pauseLabel: "Pause", stop: true}
	}
}

var stateTitles = map[timer.State]string{
	timer.StateIdle:       "Idle",
	timer.StateFocusing:   "Focusing",
	timer.StateMicroBreak: "Micro-break",
	timer.StateLongBreak:  "Break",
	timer.StatePaused:     "Paused",
}

func statusLine(state timer.State, detail string) string {
	title := stateTitles[state]
	if title == "" {
		title = string(state)
	}
	if detail == "" || state == timer.StateIdle {
		return fmt.Sprintf("Status: %s", title)
	}
	return fmt.Sprintf("Status: %s (%s)", title, detail)
}

func iconFor(state timer.State) fyne.Resource {
	switch state {
	case timer.StateFocusing:
		return theme.MediaRecordIcon()
	case timer.StateMicroBreak:
		return theme.VisibilityOffIcon()
	case timer.StateLongBreak:
		return theme.HistoryIcon()
	case timer.StatePaused:
		return theme.MediaPauseIcon()
	default:
		return theme.MediaPlayIcon()
	}
}
