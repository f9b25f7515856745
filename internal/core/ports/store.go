package ports

import "go.trai.ch/mason/internal/core/domain"

// ManifestStore holds two manifests: the one loaded from the previous run
// and the one being built by the current session. Implementations load the
// previous run at construction and persist the merged state on Flush.
//
//go:generate go run go.uber.org/mock/mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type ManifestStore interface {
	// Last returns the entry recorded for the task by the previous run.
	Last(task string) (*domain.ManifestEntry, bool)

	// Current returns the entry recorded for the task by this session.
	Current(task string) (*domain.ManifestEntry, bool)

	// Record stores the task's current-session entry, replacing any
	// previous current entry.
	Record(task string, entry domain.ManifestEntry)

	// Flush persists the current session's entries, merged over the
	// previous run's, so they become the next session's last-run manifest.
	Flush() error
}
