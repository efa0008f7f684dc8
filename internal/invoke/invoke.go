// Package invoke derives the container invocation from a validated
// configuration.
//
// The invocation is a typed argument vector built element by element; the
// only shell-interpreted string is the script passed to "sh -c" inside the
// container. Composition is deterministic: identical inputs always yield an
// identical vector.
package invoke

import (
	"strings"

	"github.com/asmdock/asmdock/internal/validate"
)

const (

	// Mount point of the workspace inside the container.
	containerWorkdir = "/mnt"

	// Shell used to interpret the composed script inside the container.
	containerShell = "/bin/sh"

	// Link mode synthesized when --ld was not requested.
	defaultMode = "gcc"

	// Link mode synthesized when --ld was requested.
	linkerMode = "ld"
)

// The exact command launched on the host, as an argument vector.
type Invocation struct {
	Argv []string
}

// Returns the vector joined for log output. Never fed back into a shell.
func (inv Invocation) String() string {
	return strings.Join(inv.Argv, " ")
}

// Composes the container invocation for a validated configuration and
// workspace path.
//
// The vector is, in order: an optional sudo prefix, the docker binary,
// run flags mounting the workspace at /mnt, the image, and the shell with
// the composed build-and-run script.
func Compose(cfg *validate.Config, workspace string) Invocation {
	argv := make([]string, 0, 12)

	if cfg.Sudo {
		argv = append(argv, "sudo")
	}

	argv = append(argv,
		cfg.Docker, "run", "--rm",
		"-v", workspace+":"+containerWorkdir,
		"-w", containerWorkdir,
		cfg.Image,
		containerShell, "-c", script(cfg),
	)

	return Invocation{Argv: argv}
}

// Composes the shell fragment executed inside the container: the build step,
// a status line, then the produced executable with any program arguments.
func script(cfg *validate.Config) string {
	run := "./" + cfg.Main
	if len(cfg.Args) > 0 {
		run += " " + strings.Join(cfg.Args, " ")
	}

	status := "=== running " + cfg.Main + " ==="

	return buildStep(cfg) + "; echo " + shQuote(status) + "; " + run
}

// Returns the build step: the custom make command verbatim when one was
// given, otherwise a synthesized make invocation carrying the main file name
// and link mode.
func buildStep(cfg *validate.Config) string {
	if cfg.MakeCommand != "" {
		return cfg.MakeCommand
	}

	mode := defaultMode
	if cfg.LinkerOnly {
		mode = linkerMode
	}

	return "make src=" + cfg.Main + " mode=" + mode
}

// Quotes a string for safe embedding in a POSIX shell command.
func shQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
