// Package preferences implements the settings window.
package preferences

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"

	"focustimer/internal/core/model"
)

// Window handles the preferences UI.
type Window struct {
	window fyne.Window
	onSave func(model.TimerSettings) error

	focus         *widget.Entry
	breakLength   *widget.Entry
	microEnabled  *widget.Check
	microMin      *widget.Entry
	microMax      *widget.Entry
	microDuration *widget.Entry
	notification  *widget.Check
	vibration     *widget.Check
	sound         *widget.Check
	startSound    *widget.Select
	endSound      *widget.Select
}

// New creates a preferences window. onSave returns the settings store's
// verdict; a rejected change keeps the window open and shows the error.
func New(app fyne.App, settings model.TimerSettings, onSave func(model.TimerSettings) error) *Window {
	window := app.NewWindow("Focus Timer Settings")

	prefs := &Window{
		window:        window,
		onSave:        onSave,
		focus:         widget.NewEntry(),
		breakLength:   widget.NewEntry(),
		microEnabled:  widget.NewCheck("Micro-breaks during focus", nil),
		microMin:      widget.NewEntry(),
		microMax:      widget.NewEntry(),
		microDuration: widget.NewEntry(),
		notification:  widget.NewCheck("Notifications", nil),
		vibration:     widget.NewCheck("Vibration", nil),
		sound:         widget.NewCheck("Sounds", nil),
		startSound:    widget.NewSelect(SoundOptions(), nil),
		endSound:      widget.NewSelect(SoundOptions(), nil),
	}
	prefs.microEnabled.OnChanged = prefs.toggleMicroFields
	prefs.sound.OnChanged = prefs.toggleSoundFields
	prefs.UpdateSettings(settings)

	form := container.NewVBox(
		widget.NewLabelWithStyle("Sessions", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewForm(
			widget.NewFormItem("Focus (min)", prefs.focus),
			widget.NewFormItem("Break (min)", prefs.breakLength),
		),
		widget.NewLabelWithStyle("Micro-breaks", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		prefs.microEnabled,
		widget.NewForm(
			widget.NewFormItem("Earliest after (sec)", prefs.microMin),
			widget.NewFormItem("Latest after (sec)", prefs.microMax),
			widget.NewFormItem("Length (sec)", prefs.microDuration),
		),
		widget.NewLabelWithStyle("Feedback", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		prefs.notification,
		prefs.vibration,
		prefs.sound,
		widget.NewForm(
			widget.NewFormItem("Micro-break start", prefs.startSound),
			widget.NewFormItem("Micro-break end", prefs.endSound),
		),
	)

	saveButton := widget.NewButton("Save", prefs.handleSave)
	saveButton.Importance = widget.HighImportance
	cancelButton := widget.NewButton("Cancel", window.Hide)
	buttons := container.NewHBox(layout.NewSpacer(), cancelButton, saveButton)

	window.SetContent(container.NewBorder(nil, buttons, nil, nil, container.NewVScroll(form)))
	window.SetCloseIntercept(window.Hide)
	window.Resize(fyne.NewSize(420, 560))
	return prefs
}

// Show displays the preferences window.
func (prefs *Window) Show() {
	prefs.window.Show()
	prefs.window.RequestFocus()
}

// UpdateSettings replaces window values, e.g. after an external edit.
func (prefs *Window) UpdateSettings(settings model.TimerSettings) {
	form := FormFrom(settings)
	prefs.focus.SetText(form.FocusMinutes)
	prefs.breakLength.SetText(form.BreakMinutes)
	prefs.microEnabled.SetChecked(form.MicroBreakEnabled)
	prefs.microMin.SetText(form.MicroBreakMinSeconds)
	prefs.microMax.SetText(form.MicroBreakMaxSeconds)
	prefs.microDuration.SetText(form.MicroBreakDurationSec)
	prefs.notification.SetChecked(form.NotificationEnabled)
	prefs.vibration.SetChecked(form.VibrationEnabled)
	prefs.sound.SetChecked(form.SoundEnabled)
	prefs.startSound.SetSelected(form.StartSound)
	prefs.endSound.SetSelected(form.EndSound)
	prefs.toggleMicroFields(form.MicroBreakEnabled)
	prefs.toggleSoundFields(form.SoundEnabled)
}

func (prefs *Window) form() Form {
	return Form{
		FocusMinutes:          prefs.focus.Text,
		BreakMinutes:          prefs.breakLength.Text,
		MicroBreakEnabled:     prefs.microEnabled.Checked,
		MicroBreakMinSeconds:  prefs.microMin.Text,
		MicroBreakMaxSeconds:  prefs.microMax.Text,
		MicroBreakDurationSec: prefs.microDuration.Text,
		NotificationEnabled:   prefs.notification.Checked,
		VibrationEnabled:      prefs.vibration.Checked,
		SoundEnabled:          prefs.sound.Checked,
		StartSound:            prefs.startSound.Selected,
		EndSound:              prefs.endSound.Selected,
	}
}

func (prefs *Window) handleSave() {
	settings, err := prefs.form().Settings()
	if err == nil && prefs.onSave != nil {
		err = prefs.onSave(settings)
	}
	if err != nil {
		dialog.ShowError(err, prefs.window)
		return
	}
	prefs.window.Hide()
}

func (prefs *Window) toggleMicroFields(enabled bool) {
	for _, entry := range []*widget.Entry{prefs.microMin, prefs.microMax, prefs.microDuration} {
		if enabled {
			entry.Enable()
		} else {
			entry.Disable()
		}
	}
}

func (prefs *Window) toggleSoundFields(enabled bool) {
	for _, selector := range []*widget.Select{prefs.startSound, prefs.endSound} {
		if enabled {
			selector.Enable()
		} else {
			selector.Disable()
		}
	}
}
