package cli

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	goruntime "runtime"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/mattn/go-isatty"

	"github.com/asmdock/asmdock/internal"
	"github.com/asmdock/asmdock/internal/build"
	"github.com/asmdock/asmdock/internal/logging"
	"github.com/asmdock/asmdock/internal/runtime"
	"github.com/asmdock/asmdock/internal/settings"
	"github.com/asmdock/asmdock/internal/validate"
)

// Represents the asmdock command line.
type RootCmd struct {
	Sources []string `arg:"" name:"source" help:"Assembly source files. The last file names the artifact."`

	Args     []string `short:"a" name:"arg" help:"Argument passed to the built program. Repeatable." placeholder:"ARG"`
	Save     bool     `short:"s" help:"Copy the built artifact back to the current directory."`
	Sudo     bool     `help:"Run the container runtime with sudo."`
	Ld       bool     `help:"Link with ld directly instead of the compiler driver."`
	Makefile string   `short:"m" help:"Custom makefile copied into the workspace." placeholder:"PATH"`
	MakeCmd  string   `short:"c" name:"make-cmd" help:"Custom build command, wrapped in double quotes." placeholder:"CMD"`

	Image  string `help:"Override the toolchain container image." placeholder:"IMAGE"`
	Docker string `help:"Override the docker binary path." placeholder:"PATH"`

	Quiet   bool             `short:"q" help:"Suppress informational output."`
	Verbose bool             `short:"v" help:"Enable verbose output."`
	Debug   bool             `short:"d" help:"Enable debug output."`
	Version kong.VersionFlag `help:"Show version information."`
}

// Root holds the parsed command line.
var Root RootCmd

// Parses arguments, configures logging, and runs the build pipeline.
func Execute() error {

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	kongCtx := kong.Parse(&Root,
		kong.Name(internal.Name),
		kong.Description("Assembles the given sources inside a toolchain container and runs the result."),
		kong.UsageOnError(),
		kong.Vars{
			"version": internal.VersionString(),
		},
		kong.BindTo(ctx, (*context.Context)(nil)),
	)

	configureLogger()

	return kongCtx.Run()
}

// Executes one build-and-run cycle for the parsed command line.
func (r *RootCmd) Run(ctx context.Context) error {
	cfg, err := r.validated()
	if err != nil {
		return err
	}

	cwd, err := os.Getwd()
	if err != nil {
		return err
	}

	return build.Run(ctx, build.Options{
		Config: cfg,
		Runner: runtime.Runner{},
		Output: cwd,
	})
}

// Merges flags with settings-file defaults and validates the result.
//
// The capability predicate is wired only on Linux, the platform where
// container runtime access is gated by group membership.
func (r *RootCmd) validated() (*validate.Config, error) {
	s, err := settings.Load()
	if err != nil {
		return nil, err
	}

	image := r.Image
	if image == "" {
		image = s.Image
	}

	docker := r.Docker
	if docker == "" {
		docker = s.Docker
	}

	var capability validate.Capability
	if goruntime.GOOS == "linux" {
		capability = validate.RuntimeGroupMembership
	}

	return validate.Run(validate.Options{
		Sources:     r.Sources,
		Args:        r.Args,
		Save:        r.Save,
		Sudo:        r.Sudo,
		LinkerOnly:  r.Ld,
		Makefile:    r.Makefile,
		MakeCommand: r.MakeCmd,
		Image:       image,
		Docker:      runtime.Find(docker),
	}, capability)
}

// Configures the global logger based on CLI flags.
func configureLogger() {
	handler, ok := slog.Default().Handler().(*logging.Handler)
	if !ok {
		return // Not a logging.Handler, nothing to configure
	}

	debug := Root.Debug || internal.IsDebug()
	quiet := Root.Quiet || internal.IsQuiet()
	verbose := Root.Verbose || internal.IsVerbose()

	if debug {
		handler.SetLevel(slog.LevelDebug)
	} else if quiet {
		handler.SetLevel(slog.LevelWarn)
	} else {
		handler.SetLevel(slog.LevelInfo)
	}

	handler.SetVerbose(verbose)
	handler.SetColors(isatty.IsTerminal(os.Stderr.Fd()))
	handler.SetStream(os.Stderr)
}
