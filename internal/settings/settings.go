// Optional user-level defaults for the CLI, loaded from the XDG config
// directory. Flags always override file values; a missing file is not an
// error.
package settings

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/asmdock/asmdock/internal/paths"
)

// Container image used when neither the settings file nor the --image flag
// provides one. The image must carry the assembler toolchain (nasm, gcc, ld,
// make).
const DefaultImage = "asmdock/toolchain:latest"

var ErrSettings = errors.New("invalid settings file")

// User-level defaults read from the settings file.
type Settings struct {
	Image  string `yaml:"image"`  // Container image. Empty uses [DefaultImage].
	Docker string `yaml:"docker"` // Docker binary path. Empty triggers discovery.
}

// Loads the settings file from the default location.
//
// A missing file yields built-in defaults. A file that exists but cannot be
// read or parsed is an error, since silently ignoring it would mask typos in
// user configuration.
func Load() (*Settings, error) {
	return load(paths.Settings())
}

// Loads settings from an explicit path.
func load(path string) (*Settings, error) {
	s := &Settings{}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		s.applyDefaults()
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSettings, err)
	}

	if err := yaml.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSettings, err)
	}

	slog.Debug("settings loaded", "path", path, "image", s.Image, "docker", s.Docker)

	s.applyDefaults()
	return s, nil
}

// Fills empty fields with built-in defaults.
func (s *Settings) applyDefaults() {
	if s.Image == "" {
		s.Image = DefaultImage
	}
}
