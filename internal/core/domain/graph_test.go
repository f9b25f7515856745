package domain_test

import (
	"errors"
	"slices"
	"testing"

	"go.trai.ch/zerr"

	"go.trai.ch/mason/internal/core/domain"
)

func TestGraph_AddTask_Duplicate(t *testing.T) {
	g := domain.NewGraph()

	first := &domain.Task{Name: domain.NewPath("out.js")}
	if err := g.AddTask(first); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	err := g.AddTask(&domain.Task{Name: domain.NewPath("out.js")})
	if !errors.Is(err, domain.ErrTaskAlreadyExists) {
		t.Fatalf("expected ErrTaskAlreadyExists, got %v", err)
	}

	var zerror *zerr.Error
	if !errors.As(err, &zerror) {
		t.Fatalf("expected a zerr error, got %T", err)
	}
	if got := zerror.Metadata()["task"]; got != "out.js" {
		t.Errorf("expected task metadata %q, got %v", "out.js", got)
	}
}

func TestGraph_Validate_Acyclic(t *testing.T) {
	g := domain.NewGraph()
	tasks := []*domain.Task{
		{Name: domain.NewPath("bundle.js"), Prereqs: domain.NewPaths([]string{"a.js", "b.js"})},
		{Name: domain.NewPath("a.js"), Prereqs: domain.NewPaths([]string{"a.src"})},
		{Name: domain.NewPath("b.js"), Prereqs: domain.NewPaths([]string{"a.js", "b.src"})},
	}
	for _, task := range tasks {
		if err := g.AddTask(task); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	// a.src and b.src are plain files, not tasks; they are not Validate's
	// concern.
	if err := g.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestGraph_Validate_Cycle(t *testing.T) {
	g := domain.NewGraph()
	tasks := []*domain.Task{
		{Name: domain.NewPath("a.js"), Prereqs: domain.NewPaths([]string{"b.js"})},
		{Name: domain.NewPath("b.js"), Prereqs: domain.NewPaths([]string{"a.js"})},
	}
	for _, task := range tasks {
		if err := g.AddTask(task); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	err := g.Validate()
	if !errors.Is(err, domain.ErrCycleDetected) {
		t.Fatalf("expected ErrCycleDetected, got %v", err)
	}

	var zerror *zerr.Error
	if !errors.As(err, &zerror) {
		t.Fatalf("expected a zerr error, got %T", err)
	}
	if got := zerror.Metadata()["cycle"]; got != "a.js -> b.js -> a.js" {
		t.Errorf("expected cycle metadata %q, got %v", "a.js -> b.js -> a.js", got)
	}
}

func TestGraph_Lookup(t *testing.T) {
	g := domain.NewGraph()
	task := &domain.Task{
		Name:    domain.NewPath("out.js"),
		Prereqs: domain.NewPaths([]string{"in.js"}),
	}
	if err := g.AddTask(task); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, ok := g.Lookup(domain.NewPath("out.js"))
	if !ok {
		t.Fatal("expected task to be found")
	}
	if got.Name != task.Name {
		t.Errorf("expected %v, got %v", task.Name, got.Name)
	}

	if _, ok := g.Lookup(domain.NewPath("missing.js")); ok {
		t.Error("expected missing task to not be found")
	}
}

func TestGraph_Walk_Sorted(t *testing.T) {
	g := domain.NewGraph()
	for _, name := range []string{"c.js", "a.js", "b.js"} {
		if err := g.AddTask(&domain.Task{Name: domain.NewPath(name)}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	var names []string
	for task := range g.Walk() {
		names = append(names, task.Name.String())
	}
	want := []string{"a.js", "b.js", "c.js"}
	if !slices.Equal(names, want) {
		t.Errorf("expected %v, got %v", want, names)
	}
}

func TestGraph_Outputs(t *testing.T) {
	g := domain.NewGraph()
	for _, name := range []string{"b.js", "a.js"} {
		if err := g.AddTask(&domain.Task{Name: domain.NewPath(name)}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	want := []string{"a.js", "b.js"}
	if got := g.Outputs(); !slices.Equal(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}
