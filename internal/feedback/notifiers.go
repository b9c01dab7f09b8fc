package feedback

import (
	"log/slog"
	"time"

	"fyne.io/fyne/v2"

	"focustimer/internal/core/timer"
	"focustimer/internal/logfields"
)

// LogNotifier writes notifications to the log, for headless runs.
type LogNotifier struct {
	Logger *slog.Logger
}

func (n LogNotifier) logger() *slog.Logger {
	if n.Logger == nil {
		return slog.Default()
	}
	return n.Logger
}

func (n LogNotifier) Notify(notification Notification) error {
	n.logger().Info(notification.Title,
		slog.String("body", notification.Body),
		logfields.State(string(notification.Phase)))
	return nil
}

func (n LogNotifier) CancelAll() error {
	n.logger().Debug("Notifications cleared")
	return nil
}

// LogVibrator records vibration requests on devices without a motor.
type LogVibrator struct {
	Logger *slog.Logger
}

func (v LogVibrator) Vibrate(pattern []time.Duration) error {
	logger := v.Logger
	if logger == nil {
		logger = slog.Default()
	}
	var total time.Duration
	for _, step := range pattern {
		total += step
	}
	logger.Debug("Vibrate", slog.Int("steps", len(pattern)), slog.Duration("total", total))
	return nil
}

// FyneNotifier sends desktop notifications through the fyne app.
type FyneNotifier struct {
	App fyne.App
}

// Notify skips ongoing progress notifications; the tray status line shows
// the countdown instead.
func (n FyneNotifier) Notify(notification Notification) error {
	if notification.Ongoing && notification.Phase == timer.StateFocusing {
		return nil
	}
	fyne.Do(func() {
		n.App.SendNotification(fyne.NewNotification(notification.Title, notification.Body))
	})
	return nil
}

// CancelAll is a no-op: desktop notifications expire on their own.
func (n FyneNotifier) CancelAll() error {
	return nil
}
