package pipeline

import (
	"context"
	"os"
	"sync"
	"time"

	"go.trai.ch/mason/internal/core/domain"
	"go.trai.ch/zerr"
)

// session is the per-invocation state of a pipeline: one once-slot per task
// so each task runs at most once, and the memoized results of dynamic
// dependency resolution. A fresh session is created for every Pipeline.Invoke.
type session struct {
	p *Pipeline

	mu       sync.Mutex
	slots    map[domain.Path]*slot
	resolved map[domain.Path][]string
	dynEdges map[domain.Path][]domain.Path
}

// slot serializes a task's invocation. Concurrent invokers of the same task
// block on the Once until the first invocation completes, then share its
// error.
type slot struct {
	once sync.Once
	err  error
}

func newSession(p *Pipeline) *session {
	return &session{
		p:        p,
		slots:    make(map[domain.Path]*slot),
		resolved: make(map[domain.Path][]string),
		dynEdges: make(map[domain.Path][]domain.Path),
	}
}

// addDynamicEdges registers the task's discovered dependency edges after
// filtering out plain-file dependencies, and rejects any edge that would
// close a cycle through the combined static and dynamic dependency graph.
// Static edges alone are validated before the session starts; a discovered
// edge can still close a cycle with them across sibling branches, and such a
// cycle must be rejected here, before anything waits on the target's
// once-slot, or both branches block forever.
func (s *session) addDynamicEdges(from domain.Path, deps []string) ([]domain.Path, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	names := make([]domain.Path, 0, len(deps))
	for _, dep := range deps {
		name := domain.NewPath(dep)
		if _, ok := s.p.graph.Lookup(name); !ok {
			continue
		}
		if cycle, found := s.cyclePathLocked(name, from); found {
			rendered := from.String()
			for _, n := range cycle {
				rendered += " -> " + n.String()
			}
			return nil, zerr.With(domain.ErrCycleDetected, "cycle", rendered)
		}
		s.dynEdges[from] = append(s.dynEdges[from], name)
		names = append(names, name)
	}
	return names, nil
}

// cyclePathLocked returns a path from start to target following static
// prerequisite edges and the dynamic edges registered so far. Caller holds
// s.mu.
func (s *session) cyclePathLocked(start, target domain.Path) ([]domain.Path, bool) {
	seen := make(map[domain.Path]bool)

	var walk func(name domain.Path, path []domain.Path) ([]domain.Path, bool)
	walk = func(name domain.Path, path []domain.Path) ([]domain.Path, bool) {
		path = append(path, name)
		if name == target {
			return path, true
		}
		seen[name] = true

		task, ok := s.p.graph.Lookup(name)
		if !ok {
			return nil, false
		}
		for _, next := range task.Prereqs {
			if !seen[next] {
				if found, ok := walk(next, path); ok {
					return found, true
				}
			}
		}
		for _, next := range s.dynEdges[name] {
			if !seen[next] {
				if found, ok := walk(next, path); ok {
					return found, true
				}
			}
		}
		return nil, false
	}
	return walk(start, nil)
}

func (s *session) slotFor(name domain.Path) *slot {
	s.mu.Lock()
	defer s.mu.Unlock()

	if sl, ok := s.slots[name]; ok {
		return sl
	}
	sl := &slot{}
	s.slots[name] = sl
	return sl
}

// needed reports whether the task is stale and must re-run. It is
// side-effect-free and callable any number of times per session: true if the
// output is absent, older than a static prerequisite, or — for dynamic
// tasks — if the last run left no manifest entry or any recorded dependency
// has advanced past its recorded mtime.
func (s *session) needed(task *domain.Task) bool {
	out, err := os.Stat(task.Name.String())
	if err != nil {
		return true
	}
	for _, pre := range task.Prereqs {
		info, err := os.Stat(pre.String())
		if err != nil {
			return true
		}
		if info.ModTime().After(out.ModTime()) {
			return true
		}
	}

	if !task.Dynamic() {
		return false
	}
	entry, ok := s.p.store.Last(task.Name.String())
	if !ok {
		return true
	}
	return depsChanged(entry)
}

// depsChanged reports whether any dependency recorded in the entry now has a
// modification time strictly greater than the one recorded for it. A missing
// dependency file counts as changed, never as a silent success.
func depsChanged(entry *domain.ManifestEntry) bool {
	for dep, recorded := range entry.Deps {
		info, err := os.Stat(dep)
		if err != nil {
			return true
		}
		if info.ModTime().After(recorded) {
			return true
		}
	}
	return false
}

// resolvedDeps returns the task's dynamic dependencies, computing them at
// most once per session. Resolution may parse file content, so the result is
// memoized and, when the previous run's manifest entry is still valid, reused
// outright without invoking the resolver.
func (s *session) resolvedDeps(ctx context.Context, task *domain.Task) ([]string, error) {
	s.mu.Lock()
	deps, ok := s.resolved[task.Name]
	s.mu.Unlock()
	if ok {
		return deps, nil
	}

	// The engine guarantees at most one in-flight invocation per task per
	// session, so the lock above only guards the map, not the computation.
	deps, err := s.discoverDeps(ctx, task)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.resolved[task.Name] = deps
	s.mu.Unlock()
	return deps, nil
}

func (s *session) discoverDeps(ctx context.Context, task *domain.Task) ([]string, error) {
	if !task.Dynamic() || s.p.resolver == nil {
		return nil, nil
	}

	// Reuse the last run's discovery when nothing relevant changed: the task
	// is not otherwise stale and the output's mtime still matches the stamp
	// recorded after the last action ran. An external rewrite of the output
	// with an identical mtime defeats this check; accepted limitation.
	if !s.needed(task) {
		if entry, ok := s.p.store.Last(task.Name.String()); ok && entry.Stamped() {
			if info, err := os.Stat(task.Name.String()); err == nil && info.ModTime().Equal(entry.OutputMTime) {
				return entry.DepPaths(), nil
			}
		}
	}

	deps, err := s.p.resolver.Resolve(ctx, task)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "dependency resolution failed"), "task", task.Name.String())
	}
	return deps, nil
}

// recordPending stores the task's current-session manifest entry, mapping
// each resolved dependency to its mtime as observed now, after the
// dependencies have themselves been brought up to date. The entry is not
// output-stamped yet.
func (s *session) recordPending(task *domain.Task, deps []string) {
	entry := domain.ManifestEntry{
		Deps: make(map[string]time.Time, len(deps)),
	}
	for _, dep := range deps {
		entry.Deps[dep] = mtimeOrNow(dep)
	}
	s.p.store.Record(task.Name.String(), entry)
}

// stampOutput finalizes the task's pending entry with the output's mtime as
// it is after the action executed — the actual timestamp, never a forecast.
func (s *session) stampOutput(task *domain.Task) {
	entry, ok := s.p.store.Current(task.Name.String())
	if !ok {
		return
	}
	entry.OutputMTime = mtimeOrNow(task.Name.String())
	s.p.store.Record(task.Name.String(), *entry)
}

func mtimeOrNow(path string) time.Time {
	if info, err := os.Stat(path); err == nil {
		return info.ModTime()
	}
	return time.Now()
}
