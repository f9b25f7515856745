// Package domain contains the core domain models for the build pipeline:
// tasks, the task graph, manifest entries and configuration fingerprints.
package domain

import (
	"iter"
	"slices"
	"strings"

	"go.trai.ch/zerr"
)

// Graph is the set of file tasks derived from one configuration source,
// keyed by output path. Invocation order and cycle detection live in the
// engine; the graph itself is a passive lookup structure.
type Graph struct {
	tasks map[Path]Task
	names []Path
}

// NewGraph creates a new empty Graph.
func NewGraph() *Graph {
	return &Graph{
		tasks: make(map[Path]Task),
	}
}

// AddTask adds a task to the graph.
// It returns an error if a task producing the same output already exists.
func (g *Graph) AddTask(t *Task) error {
	if _, exists := g.tasks[t.Name]; exists {
		return zerr.With(ErrTaskAlreadyExists, "task", t.Name.String())
	}
	g.tasks[t.Name] = *t
	g.names = append(g.names, t.Name)
	return nil
}

// Validate rejects graphs whose static prerequisite edges form a cycle.
// Prerequisites that are not tasks are plain input files and are checked for
// existence at invocation time, not here. The engine runs Validate before any
// task is invoked; a cycle that survived into invocation would leave
// concurrent branches waiting on each other's once-slots forever.
func (g *Graph) Validate() error {
	// 0: unvisited, 1: visiting, 2: visited
	visited := make(map[Path]int)
	var path []Path

	var visit func(name Path) error
	visit = func(name Path) error {
		visited[name] = 1
		path = append(path, name)

		for _, pre := range g.tasks[name].Prereqs {
			if _, ok := g.tasks[pre]; !ok {
				continue
			}
			if visited[pre] == 1 {
				return buildCycleError(path, pre)
			}
			if visited[pre] == 0 {
				if err := visit(pre); err != nil {
					return err
				}
			}
		}

		visited[name] = 2
		path = path[:len(path)-1]
		return nil
	}

	for _, name := range g.names {
		if visited[name] == 0 {
			if err := visit(name); err != nil {
				return err
			}
		}
	}
	return nil
}

func buildCycleError(path []Path, dep Path) error {
	var b strings.Builder
	for _, n := range path {
		b.WriteString(n.String())
		b.WriteString(" -> ")
	}
	b.WriteString(dep.String())
	return zerr.With(ErrCycleDetected, "cycle", b.String())
}

// Lookup returns the task producing the given output path.
func (g *Graph) Lookup(name Path) (Task, bool) {
	t, ok := g.tasks[name]
	return t, ok
}

// TaskCount returns the number of tasks in the graph.
func (g *Graph) TaskCount() int {
	return len(g.tasks)
}

// Walk returns an iterator over all tasks, sorted by output path so callers
// observe a deterministic order regardless of insertion order.
func (g *Graph) Walk() iter.Seq[Task] {
	sorted := slices.SortedFunc(slices.Values(g.names), func(a, b Path) int {
		return strings.Compare(a.String(), b.String())
	})
	return func(yield func(Task) bool) {
		for _, name := range sorted {
			if !yield(g.tasks[name]) {
				return
			}
		}
	}
}

// Outputs returns every declared output path, sorted.
func (g *Graph) Outputs() []string {
	outs := make([]string, 0, len(g.names))
	for _, name := range g.names {
		outs = append(outs, name.String())
	}
	slices.Sort(outs)
	return outs
}
