package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"focustimer/internal/core/model"
)

// SettingsFileName is the settings file inside the application config dir.
const SettingsFileName = "settings.yaml"

type yamlSettings struct {
	FocusMinutes                 int    `yaml:"focus_minutes"`
	BreakMinutes                 int    `yaml:"break_minutes"`
	MicroBreakEnabled            *bool  `yaml:"micro_break_enabled"`
	MicroBreakMinIntervalSeconds int    `yaml:"micro_break_min_interval_seconds"`
	MicroBreakMaxIntervalSeconds int    `yaml:"micro_break_max_interval_seconds"`
	MicroBreakDurationSeconds    int    `yaml:"micro_break_duration_seconds"`
	NotificationEnabled          *bool  `yaml:"notification_enabled"`
	VibrationEnabled             *bool  `yaml:"vibration_enabled"`
	SoundEnabled                 *bool  `yaml:"sound_enabled"`
	StartSound                   string `yaml:"start_sound,omitempty"`
	EndSound                     string `yaml:"end_sound,omitempty"`
}

// SettingsFile reads and writes timer settings as YAML at Path.
type SettingsFile struct {
	Path string
}

// NewSettingsFile returns a SettingsFile inside dir.
func NewSettingsFile(dir string) *SettingsFile {
	return &SettingsFile{Path: filepath.Join(dir, SettingsFileName)}
}

// Load reads user settings from YAML.
// If the file does not exist, default settings are returned.
func (file *SettingsFile) Load() (model.TimerSettings, error) {
	settings := model.DefaultTimerSettings()

	rawData, err := os.ReadFile(file.Path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return settings, nil
		}
		return settings, fmt.Errorf("read settings file: %w", err)
	}

	var fileData yamlSettings
	if err := yaml.Unmarshal(rawData, &fileData); err != nil {
		return settings, fmt.Errorf("parse settings yaml: %w", err)
	}

	applyYamlSettings(&settings, fileData)
	return settings, nil
}

// Save writes user settings to YAML.
func (file *SettingsFile) Save(settings model.TimerSettings) error {
	if err := os.MkdirAll(filepath.Dir(file.Path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	fileData := yamlSettings{
		FocusMinutes:                 int(settings.FocusDuration / time.Minute),
		BreakMinutes:                 int(settings.BreakDuration / time.Minute),
		MicroBreakEnabled:            boolPtr(settings.MicroBreakEnabled),
		MicroBreakMinIntervalSeconds: int(settings.MicroBreakMinInterval / time.Second),
		MicroBreakMaxIntervalSeconds: int(settings.MicroBreakMaxInterval / time.Second),
		MicroBreakDurationSeconds:    int(settings.MicroBreakDuration / time.Second),
		NotificationEnabled:          boolPtr(settings.NotificationEnabled),
		VibrationEnabled:             boolPtr(settings.VibrationEnabled),
		SoundEnabled:                 boolPtr(settings.SoundEnabled),
		StartSound:                   string(settings.StartSound),
		EndSound:                     string(settings.EndSound),
	}

	serialized, err := yaml.Marshal(fileData)
	if err != nil {
		return fmt.Errorf("marshal settings yaml: %w", err)
	}

	if err := writeFileAtomic(file.Path, serialized); err != nil {
		return fmt.Errorf("write settings file: %w", err)
	}
	return nil
}

func applyYamlSettings(settings *model.TimerSettings, fileData yamlSettings) {
	if fileData.FocusMinutes > 0 {
		settings.FocusDuration = time.Duration(fileData.FocusMinutes) * time.Minute
	}
	if fileData.BreakMinutes > 0 {
		settings.BreakDuration = time.Duration(fileData.BreakMinutes) * time.Minute
	}
	if fileData.MicroBreakMinIntervalSeconds > 0 {
		settings.MicroBreakMinInterval = time.Duration(fileData.MicroBreakMinIntervalSeconds) * time.Second
	}
	if fileData.MicroBreakMaxIntervalSeconds > 0 {
		settings.MicroBreakMaxInterval = time.Duration(fileData.MicroBreakMaxIntervalSeconds) * time.Second
	}
	if fileData.MicroBreakDurationSeconds > 0 {
		settings.MicroBreakDuration = time.Duration(fileData.MicroBreakDurationSeconds) * time.Second
	}

	if fileData.MicroBreakEnabled != nil {
		settings.MicroBreakEnabled = *fileData.MicroBreakEnabled
	}
	if fileData.NotificationEnabled != nil {
		settings.NotificationEnabled = *fileData.NotificationEnabled
	}
	if fileData.VibrationEnabled != nil {
		settings.VibrationEnabled = *fileData.VibrationEnabled
	}
	if fileData.SoundEnabled != nil {
		settings.SoundEnabled = *fileData.SoundEnabled
	}

	if fileData.StartSound != "" {
		settings.StartSound = model.SoundID(fileData.StartSound)
	}
	if fileData.EndSound != "" {
		settings.EndSound = model.SoundID(fileData.EndSound)
	}
}

func boolPtr(value bool) *bool {
	return &value
}

// writeFileAtomic replaces path with data through a temp file and rename so
// readers never observe a partial write.
func writeFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	return os.Rename(tmpName, path)
}
