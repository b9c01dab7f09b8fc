package platform

import (
	"os/exec"

	"focustimer/internal/core/model"
)

func soundCommand(id model.SoundID) (*exec.Cmd, error) {
	name, err := lookupSound(windowsSounds, id)
	if err != nil {
		return nil, err
	}
	return exec.Command("powershell", "-NoProfile", "-NonInteractive", "-Command",
		"[System.Media.SystemSounds]::"+name+".Play(); Start-Sleep -Milliseconds 800"), nil
}
