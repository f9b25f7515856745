package ports

import (
	"context"
	"io"
)

//go:generate go run go.uber.org/mock/mockgen -source=tracer.go -destination=mocks/mock_tracer.go -package=mocks

// Tracer records build progress, one vertex per task invocation.
type Tracer interface {
	// Record starts recording a vertex for the named task.
	Record(ctx context.Context, name string) (context.Context, Vertex)

	// Close flushes and closes the recording session.
	Close() error
}

// Vertex represents one task's slice of the build timeline.
type Vertex interface {
	io.Writer

	// Done completes the vertex with the task's outcome.
	Done(err error)

	// Cached marks the vertex as satisfied without running the action.
	Cached()
}
