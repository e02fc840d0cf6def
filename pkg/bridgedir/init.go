package bridgedir

import (
	"errors"
	"fmt"
	"os"
)

// EnsureStructure creates the bridge directory if it is missing. It is safe
// to call multiple times (idempotent).
func EnsureStructure(d Dir) error {
	if err := os.MkdirAll(d.Root(), 0o750); err != nil {
		return fmt.Errorf("bridgedir: create dir: %w", err)
	}

	return nil
}

// MigrateSettingsFile moves the settings file from its pre-1.0 location to
// the current one. The operation is idempotent: it is a no-op if the old
// file does not exist or the new file already exists.
func MigrateSettingsFile(d Dir) error {
	oldPath := d.LegacySettingsPath()
	newPath := d.SettingsPath()

	// Nothing to migrate if old file doesn't exist.
	if _, err := os.Stat(oldPath); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("bridgedir: migrate settings: stat old path: %w", err)
	}

	// Don't overwrite if new location already has a file.
	if _, err := os.Stat(newPath); err == nil {
		return nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("bridgedir: migrate settings: stat new path: %w", err)
	}

	if err := os.Rename(oldPath, newPath); err != nil {
		return fmt.Errorf("bridgedir: migrate settings: %w", err)
	}

	return nil
}
