// Package bridgedir encapsulates all path knowledge for the bridge's on-disk
// home directory. It provides a Dir value object with accessors for the
// settings file and the legacy pre-1.0 location.
package bridgedir

import (
	"os"
	"path/filepath"
)

// Dir is a value object that resolves paths within the bridge directory.
type Dir struct {
	root string
}

// New creates a Dir rooted at the given path. The path is converted to an
// absolute path. No I/O is performed; use EnsureStructure to create the
// directory.
func New(root string) Dir {
	abs, err := filepath.Abs(root)
	if err != nil {
		abs = root
	}

	return Dir{root: abs}
}

// Root returns the absolute path to the bridge directory.
func (d Dir) Root() string { return d.root }

// SettingsPath returns the path to the settings file.
func (d Dir) SettingsPath() string { return filepath.Join(d.root, "settings.yaml") }

// LegacySettingsPath returns the pre-1.0 settings file location.
func (d Dir) LegacySettingsPath() string { return filepath.Join(d.root, "aibridge.yaml") }

// Exists reports whether the bridge directory exists on disk.
func (d Dir) Exists() bool {
	info, err := os.Stat(d.root)

	return err == nil && info.IsDir()
}
