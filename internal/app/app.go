// Package app implements the application layer for mason.
package app

import (
	"context"
	"strings"
	"sync"
	"time"

	"go.trai.ch/mason/internal/adapters/watcher"
	"go.trai.ch/mason/internal/core/domain"
	"go.trai.ch/mason/internal/project"
	"go.trai.ch/zerr"
)

// debounceWindow coalesces file system event bursts in watch mode.
const debounceWindow = 250 * time.Millisecond

// App ties the project controller to the CLI. It owns one Project per
// configuration path, created lazily on first use.
type App struct {
	deps   project.Deps
	tokens *project.TokenRegistry

	mu         sync.Mutex
	configPath string
	proj       *project.Project
}

// New creates a new App instance.
func New(deps project.Deps, tokens *project.TokenRegistry) *App {
	return &App{
		deps:       deps,
		tokens:     tokens,
		configPath: domain.ConfigFileName,
	}
}

// SetConfigPath points the app at a different configuration file. Must be
// called before the first build.
func (a *App) SetConfigPath(path string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if path != "" && path != a.configPath {
		a.configPath = path
		a.proj = nil
	}
}

func (a *App) projectLocked() *project.Project {
	if a.proj == nil {
		a.proj = project.New(a.configPath, domain.DefaultTmpRoot(), a.deps, a.tokens)
	}
	return a.proj
}

// Project returns the app's project controller.
func (a *App) Project() *project.Project {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.projectLocked()
}

// Build brings the named targets up to date. The normal path re-checks the
// configuration fingerprint first; force skips that decision and invokes the
// existing pipeline directly.
func (a *App) Build(ctx context.Context, targets []string, force bool) error {
	proj := a.Project()

	var err error
	if force {
		err = proj.Invoke(ctx, targets)
	} else {
		err = proj.InvokeClean(ctx, targets)
	}
	if err != nil {
		return zerr.Wrap(err, "build execution failed")
	}
	return nil
}

// Clean removes all generated state: temp directories and declared outputs.
func (a *App) Clean(_ context.Context) error {
	if err := a.Project().Clean(); err != nil {
		return zerr.Wrap(err, "clean failed")
	}
	return nil
}

// Watch builds the targets, then rebuilds whenever files under the current
// directory change, until the context is canceled.
func (a *App) Watch(ctx context.Context, targets []string) error {
	if err := a.Build(ctx, targets, false); err != nil {
		// A broken first build is not fatal in watch mode; the next change
		// may fix it.
		a.deps.Logger.Error(err)
	}

	w, err := watcher.NewWatcher(a.deps.Logger)
	if err != nil {
		return zerr.Wrap(err, "failed to create watcher")
	}
	defer w.Stop() //nolint:errcheck // Best effort close on shutdown

	if err := w.Start(ctx, "."); err != nil {
		return zerr.Wrap(err, "failed to start watcher")
	}

	debouncer := watcher.NewDebouncer(debounceWindow, func(paths []string) {
		a.deps.Logger.Info("change detected, rebuilding")
		if err := a.Build(ctx, targets, false); err != nil {
			a.deps.Logger.Error(err)
		}
	})

	outputs := a.outputSet()
	for {
		select {
		case <-ctx.Done():
			debouncer.Flush()
			return nil
		case path, ok := <-w.Changes():
			if !ok {
				return nil
			}
			// Our own outputs change on every build; reacting to them would
			// loop forever.
			if a.ignored(outputs, path) {
				continue
			}
			debouncer.Add(path)
		}
	}
}

func (a *App) outputSet() map[string]struct{} {
	set := make(map[string]struct{})
	for _, out := range a.Project().Outputs() {
		set[out] = struct{}{}
	}
	return set
}

func (a *App) ignored(outputs map[string]struct{}, path string) bool {
	if _, ok := outputs[path]; ok {
		return true
	}
	return strings.HasPrefix(path, domain.MasonDirName)
}
