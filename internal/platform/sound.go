package platform

import (
	"fmt"
	"log/slog"
	"os/exec"

	"focustimer/internal/core/model"
	"focustimer/internal/logfields"
)

// macOS system sounds under /System/Library/Sounds.
var darwinSounds = map[model.SoundID]string{
	model.SoundTink:      "Tink",
	model.SoundGlass:     "Glass",
	model.SoundBell:      "Blow",
	model.SoundHero:      "Hero",
	model.SoundSubmarine: "Submarine",
	model.SoundBasso:     "Basso",
	model.SoundBottle:    "Bottle",
	model.SoundFrog:      "Frog",
	model.SoundFunk:      "Funk",
	model.SoundMorse:     "Morse",
	model.SoundPing:      "Ping",
	model.SoundPop:       "Pop",
	model.SoundPurr:      "Purr",
	model.SoundSosumi:    "Sosumi",
}

// freedesktop sound theme event names.
var freedesktopSounds = map[model.SoundID]string{
	model.SoundTink:      "message",
	model.SoundGlass:     "complete",
	model.SoundBell:      "bell",
	model.SoundHero:      "service-login",
	model.SoundSubmarine: "dialog-information",
	model.SoundBasso:     "dialog-error",
	model.SoundBottle:    "message-new-instant",
	model.SoundFrog:      "dialog-warning",
	model.SoundFunk:      "suspend-error",
	model.SoundMorse:     "network-connectivity-established",
	model.SoundPing:      "audio-volume-change",
	model.SoundPop:       "device-added",
	model.SoundPurr:      "device-removed",
	model.SoundSosumi:    "alarm-clock-elapsed",
}

// System.Media.SystemSounds members.
var windowsSounds = map[model.SoundID]string{
	model.SoundTink:      "Asterisk",
	model.SoundGlass:     "Beep",
	model.SoundBell:      "Exclamation",
	model.SoundHero:      "Asterisk",
	model.SoundSubmarine: "Question",
	model.SoundBasso:     "Hand",
	model.SoundBottle:    "Beep",
	model.SoundFrog:      "Question",
	model.SoundFunk:      "Hand",
	model.SoundMorse:     "Exclamation",
	model.SoundPing:      "Asterisk",
	model.SoundPop:       "Beep",
	model.SoundPurr:      "Question",
	model.SoundSosumi:    "Exclamation",
}

// SoundPlayer plays catalogue sounds through a system command. Playback is
// fire-and-forget; only a failure to start is reported.
type SoundPlayer struct {
	command func(id model.SoundID) (*exec.Cmd, error)
	logger  *slog.Logger
}

// NewSoundPlayer returns the player for the current OS.
func NewSoundPlayer(logger *slog.Logger) *SoundPlayer {
	if logger == nil {
		logger = slog.Default()
	}
	return &SoundPlayer{command: soundCommand, logger: logger}
}

// Play starts playback of id.
func (player *SoundPlayer) Play(id model.SoundID) error {
	cmd, err := player.command(id)
	if err != nil {
		return err
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start %s: %w", cmd.Path, err)
	}
	go func() {
		if err := cmd.Wait(); err != nil {
			player.logger.Debug("Sound command exited with error",
				slog.String("sound", string(id)), logfields.Error(err))
		}
	}()
	return nil
}

func lookupSound(table map[model.SoundID]string, id model.SoundID) (string, error) {
	name, ok := table[id]
	if !ok {
		return "", fmt.Errorf("unknown sound %q", id)
	}
	return name, nil
}
