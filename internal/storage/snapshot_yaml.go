package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"focustimer/internal/core/model"
)

// SnapshotFileName is the statistics file inside the data dir.
const SnapshotFileName = "statistics.yaml"

// YAMLSnapshotStore keeps the statistics snapshot in a single YAML document.
// Each save replaces the whole file atomically.
type YAMLSnapshotStore struct {
	path string
}

// NewYAMLSnapshotStore returns a store writing to dir/statistics.yaml.
func NewYAMLSnapshotStore(dir string) *YAMLSnapshotStore {
	return &YAMLSnapshotStore{path: filepath.Join(dir, SnapshotFileName)}
}

// Path returns the backing file.
func (store *YAMLSnapshotStore) Path() string {
	return store.path
}

// LoadSnapshot returns nil when the file does not exist yet.
func (store *YAMLSnapshotStore) LoadSnapshot(_ context.Context) (*model.StatisticsSnapshot, error) {
	rawData, err := os.ReadFile(store.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read statistics file: %w", err)
	}

	var snapshot model.StatisticsSnapshot
	if err := yaml.Unmarshal(rawData, &snapshot); err != nil {
		return nil, fmt.Errorf("parse statistics yaml: %w", err)
	}
	return &snapshot, nil
}

// SaveSnapshot writes the full snapshot.
func (store *YAMLSnapshotStore) SaveSnapshot(_ context.Context, snapshot model.StatisticsSnapshot) error {
	if err := os.MkdirAll(filepath.Dir(store.path), 0o755); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}

	serialized, err := yaml.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("marshal statistics yaml: %w", err)
	}
	if err := writeFileAtomic(store.path, serialized); err != nil {
		return fmt.Errorf("write statistics file: %w", err)
	}
	return nil
}
