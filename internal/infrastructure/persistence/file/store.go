// Package file implements the snapshot store on a local JSON file.
// This is the default backend: a single small center fits comfortably
// in one document that is rewritten in full on every change.
package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/athar-center/siraj-hub/internal/domain/center"
	"github.com/athar-center/siraj-hub/pkg/logger"
)

// Store persists the snapshot as one JSON document.
type Store struct {
	path string
	log  *logger.Logger
}

// NewStore creates a file-backed snapshot store.
func NewStore(path string, log *logger.Logger) *Store {
	if log == nil {
		log = logger.Default().With(logger.Component("file-store"))
	}
	return &Store{path: path, log: log}
}

// Load reads the snapshot document. A missing file is a first run and
// yields an empty snapshot, not an error.
func (s *Store) Load(ctx context.Context) (center.Snapshot, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return center.Snapshot{}, nil
		}
		return center.Snapshot{}, fmt.Errorf("file store: read snapshot: %w", err)
	}

	var snap center.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return center.Snapshot{}, fmt.Errorf("file store: decode snapshot: %w", err)
	}

	s.log.Debug("snapshot loaded",
		logger.StudentCount(len(snap.Students)),
		logger.RecordCount(len(snap.Records)))
	return snap, nil
}

// Save rewrites the document in full. The write goes to a temp file
// in the same directory followed by a rename, so a crash mid-write
// never leaves a truncated snapshot behind.
func (s *Store) Save(ctx context.Context, snap center.Snapshot) error {
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("file store: encode snapshot: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("file store: create directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".snapshot-*.json")
	if err != nil {
		return fmt.Errorf("file store: create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("file store: write snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("file store: close temp file: %w", err)
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("file store: replace snapshot: %w", err)
	}

	s.log.Debug("snapshot saved", logger.RecordCount(len(snap.Records)))
	return nil
}
