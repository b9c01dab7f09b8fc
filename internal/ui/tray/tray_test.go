package tray

import (
	"testing"

	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"focustimer/internal/core/timer"
)

func TestControlsFollowState(t *testing.T) {
	tests := []struct {
		state      timer.State
		start      bool
		pause      bool
		pauseLabel string
		stop       bool
	}{
		{timer.StateIdle, true, false, "Pause", false},
		{timer.StateFocusing, false, true, "Pause", true},
		{timer.StateMicroBreak, false, true, "Pause", true},
		{timer.StateLongBreak, false, true, "Pause", true},
		{timer.StatePaused, false, true, "Resume", true},
	}
	for _, tt := range tests {
		t.Run(string(tt.state), func(t *testing.T) {
			test.NewTempApp(t)
			manager := New(nil, Callbacks{})
			manager.SetState(tt.state)

			assert.Equal(t, !tt.start, manager.startItem.Disabled)
			assert.Equal(t, !tt.pause, manager.pauseItem.Disabled)
			assert.Equal(t, tt.pauseLabel, manager.pauseItem.Label)
			assert.Equal(t, !tt.stop, manager.stopItem.Disabled)
		})
	}
}

func TestStatusLine(t *testing.T) {
	assert.Equal(t, "Status: Idle", statusLine(timer.StateIdle, "12:00"))
	assert.Equal(t, "Status: Focusing (89:59)", statusLine(timer.StateFocusing, "89:59"))
	assert.Equal(t, "Status: Break", statusLine(timer.StateLongBreak, ""))
}

func TestMenuActionsInvokeCallbacks(t *testing.T) {
	test.NewTempApp(t)
	var started, quit bool
	manager := New(nil, Callbacks{
		OnStart: func() { started = true },
		OnQuit:  func() { quit = true },
	})

	items := manager.Items()
	require.NotEmpty(t, items)
	manager.startItem.Action()
	items[len(items)-1].Action()
	assert.True(t, started)
	assert.True(t, quit)

	manager.resetItem.Action()
}
