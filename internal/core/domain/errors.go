package domain

import "errors"

// Sentinel errors are plain stdlib errors so that zerr.With keeps them in the
// cause chain and errors.Is matches on wrapped values.
var (
	// ErrTaskAlreadyExists is returned when two tasks declare the same output path.
	ErrTaskAlreadyExists = errors.New("task already exists")

	// ErrTaskNotFound is returned when a requested target is not in the graph.
	ErrTaskNotFound = errors.New("task not found")

	// ErrMissingDependency is returned when a prerequisite is neither a task
	// in the graph nor an existing file on disk.
	ErrMissingDependency = errors.New("missing dependency")

	// ErrCycleDetected is returned when the invocation chain re-enters a task,
	// across static or dynamic edges.
	ErrCycleDetected = errors.New("cycle detected")

	// ErrNoTargetsSpecified is returned when an invocation names no targets.
	ErrNoTargetsSpecified = errors.New("no targets specified")
)
