// Package validate checks flag combinations and source file rules before
// anything touches the filesystem. Each failure kind carries a fixed exit
// code that external scripts rely on.
package validate

import (
	"log/slog"
	"os"
	"os/user"
	"path/filepath"
	"slices"
	"strings"
)

// File extension required for every source file.
const SourceExtension = ".asm"

// Group whose members may talk to the container runtime without sudo.
const runtimeGroup = "docker"

// Raw, unvalidated invocation options as collected from the CLI.
type Options struct {
	Sources     []string // Ordered source file paths. The last one is the main file.
	Args        []string // Arguments passed to the built program.
	Save        bool     // Copy the artifact back to the invocation directory.
	Sudo        bool     // Prefix the container invocation with sudo.
	LinkerOnly  bool     // Link with ld directly instead of the compiler driver.
	Makefile    string   // Custom makefile path. Empty uses the bundled recipe.
	MakeCommand string   // Custom build command, wrapped in literal double quotes.
	Image       string   // Container image.
	Docker      string   // Docker binary path.
}

// Validated, normalized configuration consumed by the build pipeline.
type Config struct {
	Sources     []string // Source file paths, all verified to exist.
	Main        string   // Base name of the last source, extension stripped.
	Args        []string // Arguments passed to the built program.
	Save        bool     // Copy the artifact back to the invocation directory.
	Sudo        bool     // Prefix the container invocation with sudo.
	LinkerOnly  bool     // Link with ld directly instead of the compiler driver.
	Makefile    string   // Custom makefile path. Empty uses the bundled recipe.
	MakeCommand string   // Custom build command with the quotes stripped.
	Image       string   // Container image.
	Docker      string   // Docker binary path.
}

// Reports whether the invoking user may talk to the container runtime
// without elevated execution.
type Capability func() (bool, error)

// Runs every validation rule against the options.
//
// Returns a normalized [Config] on success, or an [*Error] whose kind maps to
// a distinct exit code. Rules that inspect files collect every offender in
// their category before failing, so the user can fix all of them in one pass.
// Performs no filesystem mutation. Options.Sources must not be empty; the CLI
// enforces this through its required positional argument.
func Run(opts Options, capability Capability) (*Config, error) {
	if err := checkCapability(opts, capability); err != nil {
		return nil, err
	}

	if err := checkConflicts(opts); err != nil {
		return nil, err
	}

	if err := checkMakefile(opts.Makefile); err != nil {
		return nil, err
	}

	command, err := normalizeMakeCommand(opts.MakeCommand)
	if err != nil {
		return nil, err
	}

	if err := checkSources(opts.Sources); err != nil {
		return nil, err
	}

	main := mainName(opts.Sources)
	slog.Debug("options validated", "sources", len(opts.Sources), "main", main)

	return &Config{
		Sources:     opts.Sources,
		Main:        main,
		Args:        opts.Args,
		Save:        opts.Save,
		Sudo:        opts.Sudo,
		LinkerOnly:  opts.LinkerOnly,
		Makefile:    opts.Makefile,
		MakeCommand: command,
		Image:       opts.Image,
		Docker:      opts.Docker,
	}, nil
}

// Verifies the user can reach the container runtime when sudo was not
// requested.
//
// A capability that cannot be resolved (e.g. the group database is not
// available) degrades to a warning rather than a failure.
func checkCapability(opts Options, capability Capability) error {
	if opts.Sudo || capability == nil {
		return nil
	}

	allowed, err := capability()
	if err != nil {
		slog.Warn("could not resolve runtime capability, continuing", "error", err)
		return nil
	}

	if !allowed {
		slog.Debug("capability check failed", "group", runtimeGroup)
		return newError(KindPermissionDenied,
			"current user may not use the container runtime; join the "+runtimeGroup+" group or pass --sudo")
	}

	slog.Debug("capability check passed")
	return nil
}

// Rejects --ld combined with a custom build command or makefile.
func checkConflicts(opts Options) error {
	if !opts.LinkerOnly {
		return nil
	}
	if opts.MakeCommand != "" {
		return newError(KindConflictingModeAndCommand, "--ld cannot be combined with a custom make command")
	}
	if opts.Makefile != "" {
		return newError(KindConflictingModeAndMakefile, "--ld cannot be combined with a custom makefile")
	}
	return nil
}

// Verifies a custom makefile path references an existing file.
func checkMakefile(path string) error {
	if path == "" {
		return nil
	}
	if _, err := os.Stat(path); err != nil {
		return newPathsError(KindMakefileNotFound, "makefile not found", []string{path})
	}
	slog.Debug("custom makefile resolved", "path", path)
	return nil
}

// Verifies the custom make command is wrapped in literal double quotes and
// strips them.
func normalizeMakeCommand(command string) (string, error) {
	if command == "" {
		return "", nil
	}
	if len(command) < 2 || !strings.HasPrefix(command, `"`) || !strings.HasSuffix(command, `"`) {
		return "", newError(KindUnquotedMakeCommand, "custom make command must be wrapped in double quotes")
	}
	// Only the wrapper pair is removed; quotes belonging to the command
	// itself are part of the verbatim content.
	return command[1 : len(command)-1], nil
}

// Verifies every source file exists and carries the required extension.
//
// Both categories are collected exhaustively: a missing-file error enumerates
// exactly the set of non-existent paths, and only when all files exist is the
// extension rule applied, again enumerating every offender.
func checkSources(sources []string) error {
	var missing, wrongExt []string

	for _, src := range sources {
		if _, err := os.Stat(src); err != nil {
			missing = append(missing, src)
		}
		if !strings.HasSuffix(src, SourceExtension) {
			wrongExt = append(wrongExt, src)
		}
		slog.Debug("source checked", "path", src)
	}

	if len(missing) > 0 {
		slices.Sort(missing)
		return newPathsError(KindSourceNotFound, "source file(s) not found", missing)
	}

	if len(wrongExt) > 0 {
		slices.Sort(wrongExt)
		return newPathsError(KindSourceWrongExtension,
			"source file(s) missing the "+SourceExtension+" extension", wrongExt)
	}

	return nil
}

// Returns the artifact name: the base name of the last source file with the
// extension stripped.
func mainName(sources []string) string {
	last := sources[len(sources)-1]
	return strings.TrimSuffix(filepath.Base(last), SourceExtension)
}

// Default capability: the invoking user is the superuser or a member of the
// docker group.
//
// Returns an error when the group database cannot resolve the docker group or
// the current user, which callers treat as a soft warning.
func RuntimeGroupMembership() (bool, error) {
	current, err := user.Current()
	if err != nil {
		return false, err
	}

	if current.Uid == "0" {
		return true, nil
	}

	group, err := user.LookupGroup(runtimeGroup)
	if err != nil {
		return false, err
	}

	gids, err := current.GroupIds()
	if err != nil {
		return false, err
	}

	return slices.Contains(gids, group.Gid), nil
}
