// Package telemetry provides tracer implementations for build progress.
package telemetry

import (
	"context"

	"go.trai.ch/mason/internal/core/ports"
)

// NoOpTracer is a no-op implementation of ports.Tracer.
type NoOpTracer struct{}

// NewNoOpTracer creates a new NoOpTracer.
func NewNoOpTracer() *NoOpTracer {
	return &NoOpTracer{}
}

// Record returns a no-op vertex.
func (t *NoOpTracer) Record(ctx context.Context, _ string) (context.Context, ports.Vertex) {
	return ctx, &NoOpVertex{}
}

// Close does nothing.
func (t *NoOpTracer) Close() error {
	return nil
}

// NoOpVertex is a no-op implementation of ports.Vertex.
type NoOpVertex struct{}

// Write does nothing and reports the input as written.
func (v *NoOpVertex) Write(p []byte) (n int, err error) {
	return len(p), nil
}

// Done does nothing.
func (v *NoOpVertex) Done(error) {}

// Cached does nothing.
func (v *NoOpVertex) Cached() {}
