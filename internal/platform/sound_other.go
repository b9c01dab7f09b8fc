//go:build !linux && !darwin && !windows

package platform

import (
	"os/exec"

	"focustimer/internal/core/model"
)

func soundCommand(model.SoundID) (*exec.Cmd, error) {
	return nil, ErrSoundUnsupported
}
