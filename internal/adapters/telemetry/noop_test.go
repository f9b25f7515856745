package telemetry_test

import (
	"context"
	"errors"
	"testing"

	"go.trai.ch/mason/internal/adapters/telemetry"
	telprogrock "go.trai.ch/mason/internal/adapters/telemetry/progrock"
)

func TestNoOpTracer(t *testing.T) {
	tracer := telemetry.NewNoOpTracer()

	ctx, vtx := tracer.Record(context.Background(), "out.js")
	if ctx == nil {
		t.Fatal("expected a context back")
	}

	n, err := vtx.Write([]byte("output"))
	if err != nil || n != 6 {
		t.Errorf("expected full no-op write, got n=%d err=%v", n, err)
	}
	vtx.Cached()
	vtx.Done(errors.New("ignored"))

	if err := tracer.Close(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestRecorder_VertexLifecycle(t *testing.T) {
	rec := telprogrock.New()

	_, vtx := rec.Record(context.Background(), "out.js")
	if _, err := vtx.Write([]byte("building\n")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	vtx.Done(nil)

	_, cached := rec.Record(context.Background(), "fresh.js")
	cached.Cached()
	cached.Done(nil)

	if err := rec.Close(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}
