package build

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/asmdock/asmdock/internal/validate"
)

// Records the invocation and optionally simulates a build by dropping the
// artifact into the workspace.
type fakeRunner struct {
	argv     []string
	dir      string
	artifact string // Written into the workspace when non-empty.
	err      error  // Returned from Run.
}

func (f *fakeRunner) Run(_ context.Context, argv []string, dir string) error {
	f.argv = argv
	f.dir = dir
	if f.artifact != "" {
		if err := os.WriteFile(filepath.Join(dir, f.artifact), []byte("\x7fELF"), 0755); err != nil {
			return err
		}
	}
	return f.err
}

// Creates a source file and a matching validated config.
func testConfig(t *testing.T, save bool) *validate.Config {
	t.Helper()
	src := filepath.Join(t.TempDir(), "hello.asm")
	if err := os.WriteFile(src, []byte("section .text\n"), 0644); err != nil {
		t.Fatal(err)
	}
	return &validate.Config{
		Sources: []string{src},
		Main:    "hello",
		Save:    save,
		Docker:  "docker",
		Image:   "asmdock/toolchain:latest",
	}
}

func TestRunRemovesWorkspace(t *testing.T) {
	runner := &fakeRunner{}
	cfg := testConfig(t, false)

	if err := Run(context.Background(), Options{Config: cfg, Runner: runner, Output: t.TempDir()}); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if runner.dir == "" {
		t.Fatal("runner never invoked")
	}
	if _, err := os.Stat(runner.dir); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("workspace %q still present after run", runner.dir)
	}
}

func TestRunWorkspaceContents(t *testing.T) {
	var seenSource, seenRecipe bool

	runner := &fakeRunner{}
	cfg := testConfig(t, false)

	// Inspect the workspace while the runner holds it.
	probe := runnerFunc(func(ctx context.Context, argv []string, dir string) error {
		if _, err := os.Stat(filepath.Join(dir, "hello.asm")); err == nil {
			seenSource = true
		}
		if _, err := os.Stat(filepath.Join(dir, "Makefile")); err == nil {
			seenRecipe = true
		}
		return runner.Run(ctx, argv, dir)
	})

	if err := Run(context.Background(), Options{Config: cfg, Runner: probe, Output: t.TempDir()}); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if !seenSource {
		t.Error("source file missing from the workspace during the run")
	}
	if !seenRecipe {
		t.Error("recipe missing from the workspace during the run")
	}
}

func TestRunSaveExportsBeforeRemoval(t *testing.T) {
	runner := &fakeRunner{artifact: "hello"}
	cfg := testConfig(t, true)
	output := t.TempDir()

	if err := Run(context.Background(), Options{Config: cfg, Runner: runner, Output: output}); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if _, err := os.Stat(filepath.Join(output, "hello")); err != nil {
		t.Errorf("artifact not exported: %v", err)
	}
	if _, err := os.Stat(runner.dir); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("workspace %q still present after run", runner.dir)
	}
}

func TestRunNoSaveLeavesNoArtifact(t *testing.T) {
	runner := &fakeRunner{artifact: "hello"}
	cfg := testConfig(t, false)
	output := t.TempDir()

	if err := Run(context.Background(), Options{Config: cfg, Runner: runner, Output: output}); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if _, err := os.Stat(filepath.Join(output, "hello")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("artifact exported without --save: %v", err)
	}
}

func TestRunCleanupSurvivesRunnerError(t *testing.T) {
	wantErr := errors.New("launch failed")
	runner := &fakeRunner{artifact: "hello", err: wantErr}
	cfg := testConfig(t, true)
	output := t.TempDir()

	err := Run(context.Background(), Options{Config: cfg, Runner: runner, Output: output})
	if !errors.Is(err, wantErr) {
		t.Fatalf("error = %v, want %v", err, wantErr)
	}

	// Export still happens, strictly before removal.
	if _, err := os.Stat(filepath.Join(output, "hello")); err != nil {
		t.Errorf("artifact not exported despite --save: %v", err)
	}
	if _, err := os.Stat(runner.dir); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("workspace %q still present after failed run", runner.dir)
	}
}

func TestRunExportFailureStillRemovesWorkspace(t *testing.T) {
	// The runner produces no artifact, so the export must fail; the
	// workspace is removed regardless and the failure is not surfaced.
	runner := &fakeRunner{}
	cfg := testConfig(t, true)

	if err := Run(context.Background(), Options{Config: cfg, Runner: runner, Output: t.TempDir()}); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if _, err := os.Stat(runner.dir); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("workspace %q still present after run", runner.dir)
	}
}

func TestRunInvocationTargetsWorkspace(t *testing.T) {
	runner := &fakeRunner{}
	cfg := testConfig(t, false)

	if err := Run(context.Background(), Options{Config: cfg, Runner: runner, Output: t.TempDir()}); err != nil {
		t.Fatalf("Run: %v", err)
	}

	mount := runner.dir + ":/mnt"
	found := false
	for _, arg := range runner.argv {
		if arg == mount {
			found = true
		}
	}
	if !found {
		t.Errorf("argv = %v, want mount element %q", runner.argv, mount)
	}

	script := runner.argv[len(runner.argv)-1]
	if !strings.Contains(script, "src=hello mode=gcc") {
		t.Errorf("script = %q, want synthesized src/mode", script)
	}
}

// Adapts a function to the Runner interface.
type runnerFunc func(ctx context.Context, argv []string, dir string) error

func (f runnerFunc) Run(ctx context.Context, argv []string, dir string) error {
	return f(ctx, argv, dir)
}
