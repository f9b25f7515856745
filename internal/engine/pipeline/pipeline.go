// Package pipeline implements the task invocation engine: recursive
// prerequisite invocation with cycle detection, manifest-backed staleness
// checks, and memoized dynamic dependency resolution.
package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"runtime"

	"go.trai.ch/mason/internal/core/domain"
	"go.trai.ch/mason/internal/core/ports"
	"go.trai.ch/zerr"
)

// TmpDirEnvVar is exported to task recipes so they can place intermediate
// files in the fingerprint-scoped temp directory.
const TmpDirEnvVar = "MASON_TMPDIR"

// Pipeline is one task graph plus the collaborators needed to bring its
// outputs up to date. A Pipeline is created from a single configuration
// source and discarded when that source's fingerprint changes.
type Pipeline struct {
	graph     *domain.Graph
	tmpRoot   string
	tmpSubdir string

	store       ports.ManifestStore
	executor    ports.Executor
	resolver    ports.DepResolver
	logger      ports.Logger
	tracer      ports.Tracer
	parallelism int
}

// New creates a Pipeline for the given graph.
func New(
	graph *domain.Graph,
	store ports.ManifestStore,
	executor ports.Executor,
	resolver ports.DepResolver,
	logger ports.Logger,
	tracer ports.Tracer,
) *Pipeline {
	return &Pipeline{
		graph:       graph,
		store:       store,
		executor:    executor,
		resolver:    resolver,
		logger:      logger,
		tracer:      tracer,
		parallelism: runtime.NumCPU(),
	}
}

// SetParallelism caps the number of concurrently invoked prerequisites.
func (p *Pipeline) SetParallelism(n int) {
	if n > 0 {
		p.parallelism = n
	}
}

// SetTmpDir assigns the fingerprint-scoped temp location. The subdir name is
// derived by the project controller from the configuration fingerprint.
func (p *Pipeline) SetTmpDir(root, subdir string) {
	p.tmpRoot = root
	p.tmpSubdir = subdir
}

// TmpSubdir returns the pipeline's temp subdirectory name.
func (p *Pipeline) TmpSubdir() string {
	return p.tmpSubdir
}

// TmpDir returns the full path of the pipeline's temp directory, or the
// empty string if none was assigned.
func (p *Pipeline) TmpDir() string {
	if p.tmpSubdir == "" {
		return ""
	}
	return filepath.Join(p.tmpRoot, p.tmpSubdir)
}

// Outputs returns every output path declared by the graph, sorted.
func (p *Pipeline) Outputs() []string {
	return p.graph.Outputs()
}

// Invoke brings the named targets up to date, re-running only stale tasks.
// With no targets it invokes every task in the graph. Each task is invoked
// at most once per call, no matter how many paths reach it.
func (p *Pipeline) Invoke(ctx context.Context, targets []string) error {
	if err := p.graph.Validate(); err != nil {
		return err
	}

	names, err := p.targetPaths(targets)
	if err != nil {
		return err
	}

	if dir := p.TmpDir(); dir != "" {
		if err := os.MkdirAll(dir, domain.DirPerm); err != nil {
			return zerr.Wrap(err, "failed to create temp directory")
		}
	}

	s := newSession(p)
	for _, name := range names {
		if err := s.invoke(ctx, nil, name); err != nil {
			return err
		}
	}
	return nil
}

func (p *Pipeline) targetPaths(targets []string) ([]domain.Path, error) {
	if len(targets) == 0 {
		names := make([]domain.Path, 0, p.graph.TaskCount())
		for task := range p.graph.Walk() {
			names = append(names, task.Name)
		}
		if len(names) == 0 {
			return nil, domain.ErrNoTargetsSpecified
		}
		return names, nil
	}

	names := make([]domain.Path, 0, len(targets))
	for _, target := range targets {
		name := domain.NewPath(target)
		if _, ok := p.graph.Lookup(name); !ok {
			return nil, zerr.With(domain.ErrTaskNotFound, "task", target)
		}
		names = append(names, name)
	}
	return names, nil
}
