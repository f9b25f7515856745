package pipeline

import (
	"context"
	"maps"
	"os"
	"strings"

	"go.trai.ch/mason/internal/core/domain"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// chain is the active invocation stack, threaded through every recursive
// task invocation — static and dynamic alike — so cycles spanning both kinds
// of edges are detected. It is an immutable linked list; each branch of the
// invocation tree extends its own copy.
type chain struct {
	name domain.Path
	prev *chain
}

func (c *chain) push(name domain.Path) *chain {
	return &chain{name: name, prev: c}
}

func (c *chain) contains(name domain.Path) bool {
	for n := c; n != nil; n = n.prev {
		if n.name == name {
			return true
		}
	}
	return false
}

// String renders the chain from oldest to newest, for cycle reports.
func (c *chain) String() string {
	var names []string
	for n := c; n != nil; n = n.prev {
		names = append(names, n.name.String())
	}
	var b strings.Builder
	for i := len(names) - 1; i >= 0; i-- {
		b.WriteString(names[i])
		if i > 0 {
			b.WriteString(" -> ")
		}
	}
	return b.String()
}

// invoke brings one prerequisite up to date. If the name is a task it is
// invoked through its once-slot; otherwise it must exist as a plain file.
func (s *session) invoke(ctx context.Context, c *chain, name domain.Path) error {
	if c.contains(name) {
		return zerr.With(domain.ErrCycleDetected, "cycle", c.String()+" -> "+name.String())
	}

	task, ok := s.p.graph.Lookup(name)
	if !ok {
		if _, err := os.Stat(name.String()); err != nil {
			return zerr.With(domain.ErrMissingDependency, "dependency", name.String())
		}
		return nil
	}

	sl := s.slotFor(name)
	sl.once.Do(func() {
		sl.err = s.run(ctx, c.push(name), &task)
	})
	return sl.err
}

// run executes one task invocation: static prerequisites first, then dynamic
// dependency resolution and invocation, then the action itself if the task is
// stale, and finally the manifest stamp.
func (s *session) run(ctx context.Context, c *chain, task *domain.Task) error {
	if err := s.invokePrereqs(ctx, c, task.Prereqs); err != nil {
		return err
	}

	if task.Dynamic() {
		deps, err := s.resolvedDeps(ctx, task)
		if err != nil {
			return err
		}
		// Discovered edges are registered and cycle-checked against the union
		// of static and dynamic edges before anything is invoked through them.
		depTasks, err := s.addDynamicEdges(task.Name, deps)
		if err != nil {
			return err
		}
		for _, name := range depTasks {
			if err := s.invoke(ctx, c, name); err != nil {
				return err
			}
		}
		s.recordPending(task, deps)
	}

	if s.needed(task) {
		if err := s.execute(ctx, task); err != nil {
			return err
		}
	} else {
		_, vtx := s.p.tracer.Record(ctx, task.Name.String())
		vtx.Cached()
		vtx.Done(nil)
	}

	if task.Dynamic() {
		s.stampOutput(task)
	}
	return nil
}

func (s *session) invokePrereqs(ctx context.Context, c *chain, prereqs []domain.Path) error {
	if len(prereqs) == 0 {
		return nil
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.p.parallelism)
	for _, pre := range prereqs {
		g.Go(func() error {
			return s.invoke(gctx, c, pre)
		})
	}
	return g.Wait()
}

func (s *session) execute(ctx context.Context, task *domain.Task) error {
	ctx, vtx := s.p.tracer.Record(ctx, task.Name.String())
	s.p.logger.Info("building " + task.Name.String())

	err := s.p.executor.Execute(ctx, s.withTmpDirEnv(task))
	vtx.Done(err)
	if err != nil {
		return zerr.With(zerr.Wrap(err, "task execution failed"), "task", task.Name.String())
	}
	return nil
}

// withTmpDirEnv hands the pipeline's temp directory to the recipe via the
// environment, leaving the task itself untouched.
func (s *session) withTmpDirEnv(task *domain.Task) *domain.Task {
	dir := s.p.TmpDir()
	if dir == "" {
		return task
	}
	t := *task
	t.Environment = maps.Clone(task.Environment)
	if t.Environment == nil {
		t.Environment = make(map[string]string, 1)
	}
	t.Environment[TmpDirEnvVar] = dir
	return &t
}
