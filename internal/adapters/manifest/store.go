// Package manifest implements the persisted manifest store backed by a flat
// JSON file.
package manifest

import (
	"encoding/json"
	"errors"
	"io/fs"
	"maps"
	"os"
	"path/filepath"
	"sync"

	"go.trai.ch/mason/internal/core/domain"
	"go.trai.ch/mason/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.ManifestStore = (*Store)(nil)

// Store holds the last-run manifest loaded from disk and the current
// session's manifest. Flush merges current over last and writes the result,
// which becomes the next session's last-run manifest.
type Store struct {
	path string

	mu      sync.RWMutex
	last    domain.Manifest
	current domain.Manifest
}

// NewStore creates a manifest store backed by the file at the given path and
// loads the previous run's entries.
func NewStore(path string) (*Store, error) {
	s := &Store{
		path:    filepath.Clean(path),
		last:    make(domain.Manifest),
		current: make(domain.Manifest),
	}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	//nolint:gosec // Path is cleaned and provided by trusted caller
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return zerr.Wrap(err, "failed to read manifest")
	}

	if len(data) == 0 {
		return nil
	}

	if err := json.Unmarshal(data, &s.last); err != nil {
		return zerr.Wrap(err, "failed to unmarshal manifest")
	}
	return nil
}

// Last returns the entry recorded for the task by the previous run.
func (s *Store) Last(task string) (*domain.ManifestEntry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, ok := s.last[task]
	if !ok {
		return nil, false
	}
	return &entry, true
}

// Current returns the entry recorded for the task by this session.
func (s *Store) Current(task string) (*domain.ManifestEntry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, ok := s.current[task]
	if !ok {
		return nil, false
	}
	return &entry, true
}

// Record stores the task's current-session entry.
func (s *Store) Record(task string, entry domain.ManifestEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current[task] = entry
}

// Flush writes the merged manifest to disk. Tasks untouched this session
// keep their last-run entries.
func (s *Store) Flush() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	merged := make(domain.Manifest, len(s.last)+len(s.current))
	maps.Copy(merged, s.last)
	maps.Copy(merged, s.current)

	data, err := json.MarshalIndent(merged, "", "  ")
	if err != nil {
		return zerr.Wrap(err, "failed to marshal manifest")
	}

	if err := os.MkdirAll(filepath.Dir(s.path), domain.DirPerm); err != nil {
		return zerr.Wrap(err, "failed to create directory for manifest")
	}

	//nolint:gosec // Path is cleaned and provided by trusted caller
	if err := os.WriteFile(s.path, data, domain.FilePerm); err != nil {
		return zerr.Wrap(err, "failed to write manifest")
	}

	s.last = merged
	s.current = make(domain.Manifest)
	return nil
}
