package build

import (
	"context"
	"log/slog"

	"github.com/asmdock/asmdock/internal/invoke"
	"github.com/asmdock/asmdock/internal/validate"
	"github.com/asmdock/asmdock/internal/workspace"
)

// Launches a composed container invocation and waits for it to finish.
type Runner interface {
	Run(ctx context.Context, argv []string, dir string) error
}

// Controls one build-and-run cycle.
type Options struct {
	Config *validate.Config // Validated invocation configuration.
	Runner Runner           // Executor for the container invocation.
	Output string           // Directory receiving the artifact when saving.
}

// Executes the full pipeline for a validated configuration: prepare the
// workspace, compose the container invocation, run it, then export the
// artifact if requested and remove the workspace.
//
// Cleanup order is an invariant: the artifact is exported strictly before
// the workspace is deleted, and deletion happens on every path once the
// workspace is fully prepared, including run errors and interruption.
// Preparation failures propagate without cleanup; the partially populated
// directory is isolated and uniquely named.
func Run(ctx context.Context, opts Options) error {
	cfg := opts.Config

	ws, err := workspace.Create()
	if err != nil {
		return err
	}

	if err := ws.AddSources(cfg.Sources); err != nil {
		return err
	}

	if len(cfg.Sources) > 1 && cfg.Makefile == "" {
		slog.Warn("multiple sources with the default recipe: only the last file is built",
			"main", cfg.Main)
	}

	if err := ws.AddRecipe(cfg.Makefile); err != nil {
		return err
	}

	defer func() {
		if cfg.Save {
			if err := ws.Export(cfg.Main, opts.Output); err != nil {
				slog.Warn("artifact export failed", "artifact", cfg.Main, "error", err)
			}
		}
		ws.Remove()
	}()

	inv := invoke.Compose(cfg, ws.Path)
	slog.Info("building and running", "main", cfg.Main, "image", cfg.Image)
	slog.Debug("invocation composed", "argv", inv.String())

	return opts.Runner.Run(ctx, inv.Argv, ws.Path)
}
