package settings

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"focustimer/internal/core/model"
	"focustimer/internal/storage"
)

func TestWatcherReloadsOnExternalWrite(t *testing.T) {
	dir := t.TempDir()
	file := storage.NewSettingsFile(dir)
	require.NoError(t, file.Save(model.DefaultTimerSettings()))

	store, err := NewStore(file, nil)
	require.NoError(t, err)
	changed := make(chan model.TimerSettings, 1)
	store.OnChange(func(s model.TimerSettings) { changed <- s })

	watcher, err := NewWatcher(file.Path, store, 20*time.Millisecond, nil)
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go watcher.Run(ctx)

	edited := model.DefaultTimerSettings()
	edited.FocusDuration = 25 * time.Minute
	require.NoError(t, file.Save(edited))

	select {
	case s := <-changed:
		assert.Equal(t, 25*time.Minute, s.FocusDuration)
	case <-time.After(5 * time.Second):
		t.Fatal("settings change was not picked up")
	}
}
