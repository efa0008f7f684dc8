package workspace

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"

	"github.com/asmdock/asmdock/internal/paths"
	"github.com/asmdock/asmdock/internal/recipe"
)

// Prefix for workspace directory names, kept recognizable so operators can
// attribute stray directories to this tool.
const namePrefix = "asmdock-"

var (
	ErrCreate = errors.New("workspace creation failed")
	ErrCopy   = errors.New("copy failed")
)

// An isolated temporary directory owning copies of the source files and the
// build recipe for the duration of one invocation.
type Workspace struct {
	Path string // Absolute path of the workspace directory.
}

// Creates a uniquely named workspace directory.
//
// The name combines the asmdock prefix with a random UUID, so concurrent
// invocations on the same host never collide.
func Create() (*Workspace, error) {
	dir := filepath.Join(paths.WorkspaceParent(), namePrefix+uuid.NewString())

	if err := os.Mkdir(dir, paths.DefaultDirMode); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCreate, err)
	}

	slog.Debug("workspace created", "path", dir)
	return &Workspace{Path: dir}, nil
}

// Copies every source file into the workspace, preserving base names.
//
// Any failed copy is fatal and propagated as-is; the workspace may be left
// partially populated, which is acceptable since it is isolated and uniquely
// named.
func (w *Workspace) AddSources(sources []string) error {
	for _, src := range sources {
		dest := filepath.Join(w.Path, filepath.Base(src))
		n, err := copyFile(src, dest)
		if err != nil {
			return fmt.Errorf("%w: %s: %w", ErrCopy, src, err)
		}
		slog.Debug("source copied", "src", src, "dest", dest, "size", n)
	}
	return nil
}

// Places the build recipe into the workspace as "Makefile".
//
// A custom makefile path is copied verbatim; an empty path materializes the
// bundled default recipe.
func (w *Workspace) AddRecipe(custom string) error {
	dest := filepath.Join(w.Path, recipe.Filename)

	if custom == "" {
		if err := os.WriteFile(dest, recipe.Default(), paths.DefaultFileMode); err != nil {
			return fmt.Errorf("%w: default recipe: %w", ErrCopy, err)
		}
		slog.Debug("default recipe written", "dest", dest)
		return nil
	}

	if _, err := copyFile(custom, dest); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrCopy, custom, err)
	}
	slog.Debug("custom recipe copied", "src", custom, "dest", dest)
	return nil
}

// Copies the named build artifact from the workspace into destDir.
//
// The artifact's file mode is preserved so the executable bit survives the
// copy.
func (w *Workspace) Export(name, destDir string) error {
	src := filepath.Join(w.Path, name)
	dest := filepath.Join(destDir, name)

	n, err := copyFile(src, dest)
	if err != nil {
		return fmt.Errorf("%w: artifact %s: %w", ErrCopy, name, err)
	}

	slog.Debug("artifact saved", "path", dest, "size", humanize.Bytes(uint64(n)))
	return nil
}

// Deletes the workspace tree recursively.
//
// Removal failures are swallowed: the directory is transient and the run has
// already completed, so a leftover tree only warrants a warning.
func (w *Workspace) Remove() {
	if err := os.RemoveAll(w.Path); err != nil {
		slog.Warn("workspace removal failed", "path", w.Path, "error", err)
		return
	}
	slog.Debug("workspace removed", "path", w.Path)
}

// Copies a single regular file, preserving the source's file mode. Returns
// the number of bytes copied.
func copyFile(src, dest string) (int64, error) {
	info, err := os.Stat(src)
	if err != nil {
		return 0, err
	}

	in, err := os.Open(src)
	if err != nil {
		return 0, err
	}
	defer in.Close()

	out, err := os.OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return 0, err
	}

	n, err := io.Copy(out, in)
	if err != nil {
		out.Close()
		return n, err
	}

	return n, out.Close()
}
