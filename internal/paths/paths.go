package paths

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
)

const (

	// Default permission mode for directories.
	DefaultDirMode os.FileMode = 0755

	// Default permission mode for files.
	DefaultFileMode os.FileMode = 0644

	// Name used for directory and file naming.
	toolName = "asmdock"
)

// Path to the settings file providing flag defaults.
//
//	Linux:   $XDG_CONFIG_HOME/asmdock/config.yaml
//	macOS:   ~/Library/Application Support/asmdock/config.yaml
func Settings() string {
	return filepath.Join(xdg.ConfigHome, toolName, "config.yaml")
}

// Parent directory for per-invocation workspaces.
//
// Workspaces are transient and exclusively owned by one invocation, so the
// system temporary directory is used rather than an XDG data path.
func WorkspaceParent() string {
	return os.TempDir()
}
