// Package settings holds the bridge's persisted configuration: the enabled
// flag, the selected provider, per-provider credentials and models, the local
// server address, and the persona block. The settings object is explicitly
// owned — every operation receives the instance it works on, and persistence
// happens only through an explicit Store.Save call.
package settings

import (
	"github.com/noteflow/aibridge/pkg/persona"
	"github.com/noteflow/aibridge/pkg/providers/provider"
)

// ProviderSettings holds the per-provider credential and model override.
type ProviderSettings struct {
	APIKey string `yaml:"apiKey"`
	Model  string `yaml:"model"`
}

// PersonaSettings selects the active persona and carries the user-edited
// custom variant.
type PersonaSettings struct {
	Selected string           `yaml:"selected"`
	Custom   *persona.Persona `yaml:"custom"`
}

// Settings is the flat persisted settings object.
type Settings struct {
	Enabled       bool                              `yaml:"enabled"`
	Provider      provider.ID                       `yaml:"provider"`
	Providers     map[provider.ID]*ProviderSettings `yaml:"providers"`
	OllamaBaseURL string                            `yaml:"ollamaBaseUrl"`
	Persona       PersonaSettings                   `yaml:"persona"`

	// Legacy pre-1.0 flat fields. Kept only so Migrate can lift them into
	// the per-provider map; cleared after migration.
	LegacyAPIKey      string `yaml:"apiKey,omitempty"`
	LegacyModel       string `yaml:"model,omitempty"`
	LegacyOllamaModel string `yaml:"ollamaModel,omitempty"`
}

// Default returns a fresh settings object for a first run.
func Default() *Settings {
	def := persona.Default()
	custom := def
	custom.ID = persona.CustomID
	custom.Name = "Custom"

	return &Settings{
		Enabled:       true,
		Provider:      provider.OpenAI,
		Providers:     map[provider.ID]*ProviderSettings{},
		OllamaBaseURL: provider.Ollama.DefaultBaseURL(),
		Persona: PersonaSettings{
			Selected: def.ID,
			Custom:   &custom,
		},
	}
}

// ForProvider returns the settings slot for id, inserting an empty one if the
// map has no entry yet. This is the only place a slot is created; read paths
// never mutate the map.
func (s *Settings) ForProvider(id provider.ID) *ProviderSettings {
	if s.Providers == nil {
		s.Providers = map[provider.ID]*ProviderSettings{}
	}

	ps, ok := s.Providers[id]
	if !ok {
		ps = &ProviderSettings{}
		s.Providers[id] = ps
	}

	return ps
}

// APIKey returns the stored key for id, or the empty string when unset. It
// never returns a sentinel and never creates a map entry.
func (s *Settings) APIKey(id provider.ID) string {
	if ps, ok := s.Providers[id]; ok {
		return ps.APIKey
	}

	return ""
}

// Model returns the stored model for id, falling back to the provider's
// documented default model when no override is set.
func (s *Settings) Model(id provider.ID) string {
	if ps, ok := s.Providers[id]; ok && ps.Model != "" {
		return ps.Model
	}

	return id.DefaultModel()
}

// CurrentPersona resolves the active persona: the custom variant when
// selected, a preset when the id matches one, and the canonical default
// otherwise.
func (s *Settings) CurrentPersona() persona.Persona {
	if s.Persona.Selected == persona.CustomID && s.Persona.Custom != nil {
		return *s.Persona.Custom
	}

	if p, ok := persona.Preset(s.Persona.Selected); ok {
		return p
	}

	return persona.Default()
}
