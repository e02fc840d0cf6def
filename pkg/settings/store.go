package settings

import (
	"errors"
	"fmt"
	"os"

	"github.com/noteflow/aibridge/pkg/bridgedir"
	"gopkg.in/yaml.v3"
)

// Store abstracts the host's settings persistence pair: Load returns the
// last-saved object (found=false when nothing was ever saved), Save durably
// persists one.
type Store interface {
	Load() (s *Settings, found bool, err error)
	Save(s *Settings) error
}

// FileStore persists settings as a YAML file inside a bridge directory.
type FileStore struct {
	dir bridgedir.Dir
}

var _ Store = FileStore{}

// NewFileStore creates a FileStore rooted at the given directory. The
// directory is created lazily on first Save.
func NewFileStore(root string) FileStore {
	return FileStore{dir: bridgedir.New(root)}
}

// Load reads the settings file, moving it from the legacy location first if
// needed. A missing file is not an error.
func (f FileStore) Load() (*Settings, bool, error) {
	if err := bridgedir.MigrateSettingsFile(f.dir); err != nil {
		return nil, false, fmt.Errorf("settings: %w", err)
	}

	data, err := os.ReadFile(f.dir.SettingsPath())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}

		return nil, false, fmt.Errorf("settings: load: %w", err)
	}

	var s Settings
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, false, fmt.Errorf("settings: parse: %w", err)
	}

	return &s, true, nil
}

// Save writes the settings file, creating the bridge directory if needed.
// The file is written with owner-only permissions since it carries API keys.
func (f FileStore) Save(s *Settings) error {
	if err := bridgedir.EnsureStructure(f.dir); err != nil {
		return fmt.Errorf("settings: %w", err)
	}

	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("settings: marshal: %w", err)
	}

	if err := os.WriteFile(f.dir.SettingsPath(), data, 0o600); err != nil {
		return fmt.Errorf("settings: save: %w", err)
	}

	return nil
}

// MemStore is an in-memory Store for tests and embedding hosts that manage
// durability themselves.
type MemStore struct {
	saved *Settings
}

var _ Store = (*MemStore)(nil)

// Load returns the last saved settings, if any.
func (m *MemStore) Load() (*Settings, bool, error) {
	if m.saved == nil {
		return nil, false, nil
	}

	return m.saved, true, nil
}

// Save retains the settings object.
func (m *MemStore) Save(s *Settings) error {
	m.saved = s

	return nil
}
