package commands_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"go.trai.ch/mason/cmd/mason/commands"
	"go.trai.ch/mason/internal/adapters/manifest"
	"go.trai.ch/mason/internal/adapters/telemetry"
	"go.trai.ch/mason/internal/app"
	"go.trai.ch/mason/internal/build"
	"go.trai.ch/mason/internal/core/domain"
	"go.trai.ch/mason/internal/core/ports/mocks"
	"go.trai.ch/mason/internal/project"
)

func testCLI(t *testing.T, ctrl *gomock.Controller) (*commands.CLI, *mocks.MockConfigLoader, string) {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)

	require.NoError(t, os.WriteFile(domain.ConfigFileName, []byte("tasks: {}\n"), 0o644))

	store, err := manifest.NewStore(filepath.Join(dir, "manifest.json"))
	require.NoError(t, err)

	logger := mocks.NewMockLogger(ctrl)
	logger.EXPECT().Info(gomock.Any()).AnyTimes()
	logger.EXPECT().Warn(gomock.Any()).AnyTimes()

	loader := mocks.NewMockConfigLoader(ctrl)

	a := app.New(project.Deps{
		Loader:   loader,
		Store:    store,
		Executor: mocks.NewMockExecutor(ctrl),
		Resolver: mocks.NewMockDepResolver(ctrl),
		Logger:   logger,
		Tracer:   telemetry.NewNoOpTracer(),
	}, project.NewTokenRegistry())

	return commands.New(a), loader, dir
}

func TestBuild(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	cli, loader, dir := testCLI(t, ctrl)

	// A graph whose single output already exists and has no prerequisites,
	// so the build succeeds without executing anything.
	out := filepath.Join(dir, "done.txt")
	require.NoError(t, os.WriteFile(out, []byte("done"), 0o644))
	g := domain.NewGraph()
	require.NoError(t, g.AddTask(&domain.Task{Name: domain.NewPath(out)}))

	loader.EXPECT().Load(domain.ConfigFileName).Return(g, nil).Times(1)

	cli.SetArgs([]string{"build"})
	require.NoError(t, cli.Execute(context.Background()))
}

func TestBuild_UnknownTarget(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	cli, loader, _ := testCLI(t, ctrl)

	loader.EXPECT().Load(domain.ConfigFileName).Return(domain.NewGraph(), nil).Times(1)

	var out bytes.Buffer
	cli.SetOutput(&out)
	cli.SetArgs([]string{"build", "nope.txt"})

	require.Error(t, cli.Execute(context.Background()))
}

func TestVersion(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	cli, _, _ := testCLI(t, ctrl)

	var out bytes.Buffer
	cli.SetOutput(&out)
	cli.SetArgs([]string{"version"})

	require.NoError(t, cli.Execute(context.Background()))
	require.Equal(t, build.Version, strings.TrimSpace(out.String()))
}

func TestRoot_Help(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	cli, _, _ := testCLI(t, ctrl)

	var out bytes.Buffer
	cli.SetOutput(&out)
	cli.SetArgs([]string{"--help"})

	require.NoError(t, cli.Execute(context.Background()))
	for _, sub := range []string{"build", "watch", "clean", "version"} {
		if !strings.Contains(out.String(), sub) {
			t.Errorf("expected help to mention %q", sub)
		}
	}
}

func TestClean_RejectsArgs(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	cli, _, _ := testCLI(t, ctrl)

	var out bytes.Buffer
	cli.SetOutput(&out)
	cli.SetArgs([]string{"clean", "extra"})

	require.Error(t, cli.Execute(context.Background()))
}
