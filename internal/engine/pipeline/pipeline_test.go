package pipeline_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"go.trai.ch/mason/internal/adapters/manifest"
	"go.trai.ch/mason/internal/adapters/telemetry"
	"go.trai.ch/mason/internal/core/domain"
	"go.trai.ch/mason/internal/core/ports"
	"go.trai.ch/mason/internal/core/ports/mocks"
	"go.trai.ch/mason/internal/engine/pipeline"
)

// fixture bundles the collaborators shared by most pipeline tests. The
// executor and resolver are mocks so call counts carry the assertions; the
// manifest store is the real adapter backed by a file under dir.
type fixture struct {
	dir      string
	store    ports.ManifestStore
	executor *mocks.MockExecutor
	resolver *mocks.MockDepResolver
	logger   *mocks.MockLogger
}

func newFixture(t *testing.T, ctrl *gomock.Controller) *fixture {
	t.Helper()
	dir := t.TempDir()

	store, err := manifest.NewStore(filepath.Join(dir, "manifest.json"))
	require.NoError(t, err)

	logger := mocks.NewMockLogger(ctrl)
	logger.EXPECT().Info(gomock.Any()).AnyTimes()

	return &fixture{
		dir:      dir,
		store:    store,
		executor: mocks.NewMockExecutor(ctrl),
		resolver: mocks.NewMockDepResolver(ctrl),
		logger:   logger,
	}
}

func (f *fixture) pipeline(g *domain.Graph) *pipeline.Pipeline {
	return pipeline.New(g, f.store, f.executor, f.resolver, f.logger, telemetry.NewNoOpTracer())
}

// reload simulates a fresh process: a new store instance reading the
// manifest file the previous session flushed.
func (f *fixture) reload(t *testing.T) {
	t.Helper()
	require.NoError(t, f.store.Flush())
	store, err := manifest.NewStore(filepath.Join(f.dir, "manifest.json"))
	require.NoError(t, err)
	f.store = store
}

func (f *fixture) path(name string) string {
	return filepath.Join(f.dir, name)
}

// writeFileAt creates a file with an explicit mtime so staleness comparisons
// do not depend on test execution speed.
func writeFileAt(t *testing.T, path, content string, mtime time.Time) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	require.NoError(t, os.Chtimes(path, mtime, mtime))
}

// writeOutput is the stand-in recipe: the mocked executor writes the task's
// output file when called.
func writeOutput(ctx context.Context, task *domain.Task) error {
	return os.WriteFile(task.Name.String(), []byte("built"), 0o644)
}

func graphWith(t *testing.T, tasks ...*domain.Task) *domain.Graph {
	t.Helper()
	g := domain.NewGraph()
	for _, task := range tasks {
		require.NoError(t, g.AddTask(task))
	}
	return g
}

func TestPipeline_Invoke_BuildsStaleTask(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	f := newFixture(t, ctrl)

	past := time.Now().Add(-time.Hour)
	writeFileAt(t, f.path("in.txt"), "source", past)

	out := f.path("out.txt")
	g := graphWith(t, &domain.Task{
		Name:    domain.NewPath(out),
		Prereqs: domain.NewPaths([]string{f.path("in.txt")}),
	})

	f.executor.EXPECT().Execute(gomock.Any(), gomock.Any()).DoAndReturn(writeOutput).Times(1)

	require.NoError(t, f.pipeline(g).Invoke(context.Background(), nil))

	if _, err := os.Stat(out); err != nil {
		t.Errorf("expected output to exist: %v", err)
	}
}

func TestPipeline_Invoke_Idempotent(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	f := newFixture(t, ctrl)

	past := time.Now().Add(-time.Hour)
	writeFileAt(t, f.path("in.txt"), "source", past)

	g := graphWith(t, &domain.Task{
		Name:    domain.NewPath(f.path("out.txt")),
		Prereqs: domain.NewPaths([]string{f.path("in.txt")}),
	})

	// The action runs in the first session only; the second finds the
	// output newer than its prerequisite and does nothing.
	f.executor.EXPECT().Execute(gomock.Any(), gomock.Any()).DoAndReturn(writeOutput).Times(1)

	p := f.pipeline(g)
	require.NoError(t, p.Invoke(context.Background(), nil))
	require.NoError(t, p.Invoke(context.Background(), nil))
}

func TestPipeline_Invoke_RebuildsWhenInputNewer(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	f := newFixture(t, ctrl)

	past := time.Now().Add(-time.Hour)
	writeFileAt(t, f.path("in.txt"), "source", past)

	g := graphWith(t, &domain.Task{
		Name:    domain.NewPath(f.path("out.txt")),
		Prereqs: domain.NewPaths([]string{f.path("in.txt")}),
	})

	f.executor.EXPECT().Execute(gomock.Any(), gomock.Any()).DoAndReturn(writeOutput).Times(2)

	p := f.pipeline(g)
	require.NoError(t, p.Invoke(context.Background(), nil))

	future := time.Now().Add(time.Hour)
	require.NoError(t, os.Chtimes(f.path("in.txt"), future, future))

	require.NoError(t, p.Invoke(context.Background(), nil))
}

func TestPipeline_Invoke_PrereqTaskChain(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	f := newFixture(t, ctrl)

	past := time.Now().Add(-time.Hour)
	writeFileAt(t, f.path("src.txt"), "source", past)

	mid := f.path("mid.txt")
	final := f.path("final.txt")
	g := graphWith(t,
		&domain.Task{
			Name:    domain.NewPath(final),
			Prereqs: domain.NewPaths([]string{mid}),
		},
		&domain.Task{
			Name:    domain.NewPath(mid),
			Prereqs: domain.NewPaths([]string{f.path("src.txt")}),
		},
	)

	// Prerequisite tasks are brought up to date before their consumers.
	midCall := f.executor.EXPECT().
		Execute(gomock.Any(), taskNamed(mid)).DoAndReturn(writeOutput).Times(1)
	f.executor.EXPECT().
		Execute(gomock.Any(), taskNamed(final)).DoAndReturn(writeOutput).Times(1).After(midCall)

	require.NoError(t, f.pipeline(g).Invoke(context.Background(), []string{final}))
}

func TestPipeline_Invoke_UnknownTarget(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	f := newFixture(t, ctrl)

	g := graphWith(t, &domain.Task{Name: domain.NewPath(f.path("out.txt"))})

	err := f.pipeline(g).Invoke(context.Background(), []string{"nope.txt"})
	require.True(t, errors.Is(err, domain.ErrTaskNotFound), "got %v", err)
}

func TestPipeline_Invoke_EmptyGraph(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	f := newFixture(t, ctrl)

	err := f.pipeline(domain.NewGraph()).Invoke(context.Background(), nil)
	require.True(t, errors.Is(err, domain.ErrNoTargetsSpecified), "got %v", err)
}

func TestPipeline_Invoke_MissingStaticPrereq(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	f := newFixture(t, ctrl)

	g := graphWith(t, &domain.Task{
		Name:    domain.NewPath(f.path("out.txt")),
		Prereqs: domain.NewPaths([]string{f.path("missing.txt")}),
	})

	err := f.pipeline(g).Invoke(context.Background(), nil)
	require.True(t, errors.Is(err, domain.ErrMissingDependency), "got %v", err)
}

func TestPipeline_Invoke_ExecutorFailurePropagates(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	f := newFixture(t, ctrl)

	past := time.Now().Add(-time.Hour)
	writeFileAt(t, f.path("in.txt"), "source", past)

	g := graphWith(t, &domain.Task{
		Name:    domain.NewPath(f.path("out.txt")),
		Prereqs: domain.NewPaths([]string{f.path("in.txt")}),
	})

	recipeErr := errors.New("recipe exploded")
	f.executor.EXPECT().Execute(gomock.Any(), gomock.Any()).Return(recipeErr).Times(1)

	err := f.pipeline(g).Invoke(context.Background(), nil)
	require.True(t, errors.Is(err, recipeErr), "got %v", err)
}

func TestPipeline_Invoke_CreatesTmpDir(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	f := newFixture(t, ctrl)

	past := time.Now().Add(-time.Hour)
	writeFileAt(t, f.path("in.txt"), "source", past)

	g := graphWith(t, &domain.Task{
		Name:    domain.NewPath(f.path("out.txt")),
		Prereqs: domain.NewPaths([]string{f.path("in.txt")}),
	})

	tmpRoot := filepath.Join(f.dir, "tmp")
	subdir := domain.TmpDirName(domain.Fingerprint([]byte("cfg")), nil)

	// The recipe sees the temp directory through its environment.
	var seenTmpDir string
	f.executor.EXPECT().Execute(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, task *domain.Task) error {
			seenTmpDir = task.Environment[pipeline.TmpDirEnvVar]
			return writeOutput(ctx, task)
		}).Times(1)

	p := f.pipeline(g)
	p.SetTmpDir(tmpRoot, subdir)
	require.NoError(t, p.Invoke(context.Background(), nil))

	want := filepath.Join(tmpRoot, subdir)
	require.Equal(t, want, seenTmpDir)
	if info, err := os.Stat(want); err != nil || !info.IsDir() {
		t.Errorf("expected temp directory %s to exist: %v", want, err)
	}
}

// taskNamed matches an executed task by its output path.
func taskNamed(name string) gomock.Matcher {
	return gomock.Cond(func(task *domain.Task) bool {
		return task.Name.String() == name
	})
}
