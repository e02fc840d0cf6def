package bridge

import (
	"fmt"

	"github.com/noteflow/aibridge/pkg/providers/anthropic"
	"github.com/noteflow/aibridge/pkg/providers/gemini"
	"github.com/noteflow/aibridge/pkg/providers/ollama"
	"github.com/noteflow/aibridge/pkg/providers/openai"
	"github.com/noteflow/aibridge/pkg/providers/provider"
	"github.com/noteflow/aibridge/pkg/settings"
)

// defaultFactory builds the adapter for each member of the closed provider
// set. The switch is exhaustive over the enum; anything else is rejected
// without a network call.
func defaultFactory(id provider.ID, s *settings.Settings) (provider.Sender, error) {
	switch id {
	case provider.OpenAI:
		return openai.New(id.DefaultBaseURL(), s.APIKey(id), s.Model(id)), nil
	case provider.Anthropic:
		return anthropic.New(id.DefaultBaseURL(), s.APIKey(id), s.Model(id)), nil
	case provider.Gemini:
		return gemini.New(id.DefaultBaseURL(), s.APIKey(id), s.Model(id)), nil
	case provider.Ollama:
		return ollama.New(s.OllamaBaseURL, s.Model(id)), nil
	default:
		return nil, fmt.Errorf("%w: %q", provider.ErrUnknownProvider, id)
	}
}
