package domain

import (
	"maps"
	"slices"
	"time"
)

// ManifestEntry records what a dynamic task knew at the end of its last run:
// the output file's mtime after the action executed, and the mtime of every
// resolved dependency as observed when the edge was recorded.
type ManifestEntry struct {
	// OutputMTime is the output file's modification time stamped after the
	// task's action ran. It is the zero time while the entry is pending.
	OutputMTime time.Time `json:"output_mtime,omitzero"`

	// Deps maps each resolved dependency path to its modification time as
	// observed after that dependency was brought up to date.
	Deps map[string]time.Time `json:"deps,omitempty"`
}

// Stamped reports whether the entry has been finalized with an output time.
func (e *ManifestEntry) Stamped() bool {
	return !e.OutputMTime.IsZero()
}

// DepPaths returns the recorded dependency paths, sorted.
func (e *ManifestEntry) DepPaths() []string {
	return slices.Sorted(maps.Keys(e.Deps))
}

// Manifest maps task output paths to their manifest entries. One instance
// holds the current session's entries, another the entries loaded from the
// previous run.
type Manifest map[string]ManifestEntry
