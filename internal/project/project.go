// Package project implements the project controller: it fingerprints the
// pipeline configuration, rebuilds the task graph when the fingerprint
// changes, and manages the lifecycle of fingerprint-scoped temp directories.
package project

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"go.trai.ch/mason/internal/core/domain"
	"go.trai.ch/mason/internal/core/ports"
	"go.trai.ch/mason/internal/engine/pipeline"
	"go.trai.ch/zerr"
)

// Deps bundles the collaborators a Project hands to every pipeline it builds.
type Deps struct {
	Loader   ports.ConfigLoader
	Store    ports.ManifestStore
	Executor ports.Executor
	Resolver ports.DepResolver
	Logger   ports.Logger
	Tracer   ports.Tracer
}

// Project owns one pipeline instance derived from a configuration source.
// All rebuild decisions and invocations are serialized behind a single lock:
// reading the configuration, fingerprinting it, conditionally rebuilding the
// graph, and the delegated invocation form one atomic unit.
type Project struct {
	mu          sync.Mutex
	configPath  string
	tmpRoot     string
	fingerprint string
	pipeline    *pipeline.Pipeline
	static      bool

	deps   Deps
	tokens *TokenRegistry
}

// New creates a Project that builds its pipeline from the configuration file
// at configPath, placing temp state under tmpRoot.
func New(configPath, tmpRoot string, deps Deps, tokens *TokenRegistry) *Project {
	if tokens == nil {
		tokens = NewTokenRegistry()
	}
	return &Project{
		configPath: configPath,
		tmpRoot:    tmpRoot,
		deps:       deps,
		tokens:     tokens,
	}
}

// FromPipeline creates a Project around an already-constructed pipeline.
// Such a project never fingerprints or rebuilds; invocations delegate
// straight to the live pipeline.
func FromPipeline(p *pipeline.Pipeline, tmpRoot string, deps Deps) *Project {
	return &Project{
		tmpRoot:  tmpRoot,
		pipeline: p,
		static:   true,
		deps:     deps,
		tokens:   NewTokenRegistry(),
	}
}

// InvokeClean re-reads the configuration source, rebuilds the pipeline if its
// content hash changed since the last build, garbage-collects temp
// directories left over from prior configurations, and then invokes the
// pipeline incrementally for the given targets.
func (p *Project) InvokeClean(ctx context.Context, targets []string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.static {
		if err := p.rebuildIfStaleLocked(); err != nil {
			return err
		}
	}
	return p.invokeLocked(ctx, targets)
}

// Invoke delegates directly to the pipeline's invocation, bypassing the
// fingerprint comparison. Used when the caller already knows no rebuild
// decision is needed. On first use the pipeline is still constructed once.
func (p *Project) Invoke(ctx context.Context, targets []string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.pipeline == nil {
		if err := p.buildPipelineLocked(); err != nil {
			return err
		}
	}
	return p.invokeLocked(ctx, targets)
}

func (p *Project) invokeLocked(ctx context.Context, targets []string) error {
	err := p.pipeline.Invoke(ctx, targets)
	// The current manifest becomes the next session's last-run manifest.
	if ferr := p.deps.Store.Flush(); ferr != nil {
		err = errors.Join(err, zerr.Wrap(ferr, "failed to flush manifest"))
	}
	return err
}

// rebuildIfStaleLocked compares the configuration's current content hash to
// the stored fingerprint and discards and rebuilds the pipeline on mismatch.
func (p *Project) rebuildIfStaleLocked() error {
	data, err := os.ReadFile(p.configPath)
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to read configuration"), "path", p.configPath)
	}

	fp := domain.Fingerprint(data)
	if p.pipeline != nil && fp == p.fingerprint {
		return nil
	}

	p.pipeline = nil
	p.fingerprint = fp
	if err := p.buildPipelineLocked(); err != nil {
		return err
	}

	if err := p.cleanupTmpDirLocked(); err != nil {
		// Stale directories survive until the next rebuild; not fatal.
		p.deps.Logger.Warn("temp directory cleanup incomplete: " + err.Error())
	}
	return nil
}

func (p *Project) buildPipelineLocked() error {
	if p.fingerprint == "" {
		data, err := os.ReadFile(p.configPath)
		if err != nil {
			return zerr.With(zerr.Wrap(err, "failed to read configuration"), "path", p.configPath)
		}
		p.fingerprint = domain.Fingerprint(data)
	}

	graph, err := p.deps.Loader.Load(p.configPath)
	if err != nil {
		return zerr.Wrap(err, "failed to build pipeline")
	}

	pl := pipeline.New(graph, p.deps.Store, p.deps.Executor, p.deps.Resolver, p.deps.Logger, p.deps.Tracer)
	pl.SetTmpDir(p.tmpRoot, domain.TmpDirName(p.fingerprint, p.tokens.Tokens()))
	p.pipeline = pl
	return nil
}

// Outputs returns the pipeline's declared output paths, constructing the
// pipeline first if needed. An unloadable configuration yields nil.
func (p *Project) Outputs() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.pipeline == nil {
		if err := p.buildPipelineLocked(); err != nil {
			return nil
		}
	}
	return p.pipeline.Outputs()
}

// Fingerprint returns the content hash of the configuration that produced
// the current pipeline, or the empty string before the first build.
func (p *Project) Fingerprint() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.fingerprint
}

// TmpSubdir returns the current fingerprint-derived temp subdirectory name.
func (p *Project) TmpSubdir() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.pipeline == nil {
		return ""
	}
	return p.pipeline.TmpSubdir()
}

// CleanupTmpDir removes every directory under the temp root that carries the
// fixed prefix but does not match the current fingerprint-derived name.
// Directories without the prefix are never candidates.
func (p *Project) CleanupTmpDir() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.pipeline == nil {
		if err := p.buildPipelineLocked(); err != nil {
			return err
		}
	}
	return p.cleanupTmpDirLocked()
}

func (p *Project) cleanupTmpDirLocked() error {
	current := p.pipeline.TmpSubdir()

	var errs error
	for _, dir := range p.obsoleteTmpDirsLocked(current) {
		if err := os.RemoveAll(dir); err != nil {
			errs = errors.Join(errs, zerr.With(zerr.Wrap(err, "failed to remove temp directory"), "path", dir))
		}
	}
	return errs
}

func (p *Project) obsoleteTmpDirsLocked(current string) []string {
	entries, err := os.ReadDir(p.tmpRoot)
	if err != nil {
		return nil
	}

	var dirs []string
	for _, entry := range entries {
		name := entry.Name()
		if !entry.IsDir() || !strings.HasPrefix(name, domain.TmpDirPrefix) {
			continue
		}
		if name == current {
			continue
		}
		dirs = append(dirs, filepath.Join(p.tmpRoot, name))
	}
	return dirs
}

// Clean is a hard reset of all generated state: every obsolete temp
// directory, the current temp directory, and every declared output file,
// independent of fingerprint bookkeeping. Removal is best effort; every
// failure is reported.
func (p *Project) Clean() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.pipeline == nil {
		if err := p.buildPipelineLocked(); err != nil {
			return err
		}
	}

	var errs error
	// Passing an empty current name makes every prefixed directory obsolete.
	for _, dir := range p.obsoleteTmpDirsLocked("") {
		if err := os.RemoveAll(dir); err != nil {
			errs = errors.Join(errs, zerr.With(zerr.Wrap(err, "failed to remove temp directory"), "path", dir))
		}
	}
	for _, out := range p.pipeline.Outputs() {
		if err := os.Remove(out); err != nil && !errors.Is(err, os.ErrNotExist) {
			errs = errors.Join(errs, zerr.With(zerr.Wrap(err, "failed to remove output"), "path", out))
		}
	}
	return errs
}
