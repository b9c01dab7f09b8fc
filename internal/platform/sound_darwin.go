package platform

import (
	"os/exec"

	"focustimer/internal/core/model"
)

func soundCommand(id model.SoundID) (*exec.Cmd, error) {
	name, err := lookupSound(darwinSounds, id)
	if err != nil {
		return nil, err
	}
	return exec.Command("afplay", "/System/Library/Sounds/"+name+".aiff"), nil
}
