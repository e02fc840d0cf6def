package settings

import (
	"github.com/noteflow/aibridge/pkg/persona"
	"github.com/noteflow/aibridge/pkg/providers/provider"
)

// Migrate lifts the legacy flat fields into the per-provider map and ensures
// the persona block exists. It is idempotent and safe to run unconditionally
// on every load: legacy values never overwrite an existing per-provider
// value, and a second run finds nothing left to do.
func (s *Settings) Migrate() {
	if s.Providers == nil {
		s.Providers = map[provider.ID]*ProviderSettings{}
	}

	if s.Provider == "" {
		s.Provider = provider.OpenAI
	}

	if s.OllamaBaseURL == "" {
		s.OllamaBaseURL = provider.Ollama.DefaultBaseURL()
	}

	s.migrateLegacyFields()
	s.ensurePersona()
}

// migrateLegacyFields moves the pre-1.0 single apiKey/model pair into the
// slot of the selected provider, and the legacy ollamaModel field into the
// Ollama slot. Fields are cleared once migrated.
func (s *Settings) migrateLegacyFields() {
	if s.LegacyAPIKey != "" || s.LegacyModel != "" {
		target := s.Provider
		if !provider.Known(target) || target == provider.Ollama {
			target = provider.OpenAI
		}

		slot := s.ForProvider(target)

		if s.LegacyAPIKey != "" && slot.APIKey == "" {
			slot.APIKey = s.LegacyAPIKey
		}
		if s.LegacyModel != "" && slot.Model == "" {
			slot.Model = s.LegacyModel
		}

		s.LegacyAPIKey = ""
		s.LegacyModel = ""
	}

	if s.LegacyOllamaModel != "" {
		slot := s.ForProvider(provider.Ollama)
		if slot.Model == "" {
			slot.Model = s.LegacyOllamaModel
		}

		s.LegacyOllamaModel = ""
	}
}

// ensurePersona guarantees the persona block and its custom sub-object exist,
// defaulting from the canonical default persona.
func (s *Settings) ensurePersona() {
	if s.Persona.Selected == "" {
		s.Persona.Selected = persona.Default().ID
	}

	if s.Persona.Custom == nil {
		custom := persona.Default()
		custom.ID = persona.CustomID
		custom.Name = "Custom"
		s.Persona.Custom = &custom
	}
}
