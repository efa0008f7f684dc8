package main

import (
	"errors"
	"log/slog"
	"os"

	"github.com/asmdock/asmdock/internal"
	"github.com/asmdock/asmdock/internal/cli"
	"github.com/asmdock/asmdock/internal/logging"
	"github.com/asmdock/asmdock/internal/validate"
)

// The entry point for the asmdock CLI.
//
// Initializes logging and executes the root command. Validation failures
// terminate the process with the exit code of their failure kind; any other
// error exits with 1.
func main() {
	slog.SetDefault(logger())

	slog.Debug("build", "version", internal.VersionString())

	slog.Debug("asmdock is running",
		"pid", os.Getpid(),
		"cwd", cwd(),
		"args", os.Args,
	)

	if err := cli.Execute(); err != nil {
		slog.Error(err.Error())
		os.Exit(exitCode(err))
	}
}

// Creates a logger seeded from build-time linker flags.
//
// The logger is reconfigured after flag parsing via cli.Execute.
func logger() *slog.Logger {
	handler := logging.NewHandler()
	handler.SetLevel(logLevel())
	return slog.New(handler.WithGroup(internal.Name))
}

// Returns the log level derived from build-time linker flags.
func logLevel() slog.Level {
	if internal.IsDebug() {
		return slog.LevelDebug
	}
	if internal.IsQuiet() {
		return slog.LevelWarn
	}
	return slog.LevelInfo
}

// Returns the exit code for an error: the fixed code of a validation
// failure kind, or 1 for anything else.
func exitCode(err error) int {
	var verr *validate.Error
	if errors.As(err, &verr) {
		return verr.Kind.ExitCode()
	}
	return 1
}

// Returns the current working directory or "(unknown)".
func cwd() string {
	cwd, err := os.Getwd()
	if err != nil {
		return "(unknown)"
	}
	return cwd
}
