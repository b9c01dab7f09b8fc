package platform

import (
	"os/exec"

	"focustimer/internal/core/model"
)

func soundCommand(id model.SoundID) (*exec.Cmd, error) {
	name, err := lookupSound(freedesktopSounds, id)
	if err != nil {
		return nil, err
	}
	if path, err := exec.LookPath("canberra-gtk-play"); err == nil {
		return exec.Command(path, "--id", name), nil
	}
	if path, err := exec.LookPath("paplay"); err == nil {
		return exec.Command(path, "/usr/share/sounds/freedesktop/stereo/"+name+".oga"), nil
	}
	return nil, ErrSoundUnsupported
}
