// Package persona holds the fixed voice/tone presets applied to outgoing
// system prompts, plus the user-editable custom variant.
package persona

import "strings"

// Persona is a named voice configuration. Presets are immutable; the custom
// persona is user-edited through the settings surface.
type Persona struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	Icon        string `yaml:"icon"`
	Tone        string `yaml:"tone"`
	FirstPerson string `yaml:"firstPerson"`
	SpeechStyle string `yaml:"speechStyle"`
}

// CustomID is the reserved id of the user-edited persona.
const CustomID = "custom"

// presets are the five fixed personas, in display order.
var presets = []Persona{
	{
		ID:          "assistant",
		Name:        "Assistant",
		Icon:        "🤖",
		Tone:        "neutral and helpful",
		FirstPerson: "I",
		SpeechStyle: "clear, direct sentences without filler",
	},
	{
		ID:          "friendly",
		Name:        "Friendly Companion",
		Icon:        "😊",
		Tone:        "warm and encouraging",
		FirstPerson: "I",
		SpeechStyle: "casual, upbeat phrasing with light humor",
	},
	{
		ID:          "scholar",
		Name:        "Scholar",
		Icon:        "📚",
		Tone:        "precise and analytical",
		FirstPerson: "I",
		SpeechStyle: "formal register with careful qualifications",
	},
	{
		ID:          "editor",
		Name:        "Editor",
		Icon:        "✒️",
		Tone:        "constructive and exacting",
		FirstPerson: "I",
		SpeechStyle: "terse notes focused on concrete improvements",
	},
	{
		ID:          "muse",
		Name:        "Muse",
		Icon:        "🎭",
		Tone:        "playful and imaginative",
		FirstPerson: "I",
		SpeechStyle: "vivid imagery and unexpected associations",
	},
}

// Default returns the canonical default persona (the plain assistant).
func Default() Persona {
	return presets[0]
}

// Presets returns a copy of the fixed preset list.
func Presets() []Persona {
	out := make([]Persona, len(presets))
	copy(out, presets)

	return out
}

// Preset returns the preset with the given id and whether it exists.
// The custom id is not a preset.
func Preset(id string) (Persona, bool) {
	for _, p := range presets {
		if p.ID == id {
			return p, true
		}
	}

	return Persona{}, false
}

// PromptFragment renders the persona as a system-prompt fragment. Empty
// fields are skipped so a sparsely filled custom persona still reads well.
func (p Persona) PromptFragment() string {
	var b strings.Builder

	if p.Name != "" {
		b.WriteString("Adopt the voice of ")
		b.WriteString(p.Name)
		b.WriteString(".")
	}

	if p.Tone != "" {
		if b.Len() > 0 {
			b.WriteString(" ")
		}
		b.WriteString("Keep the tone ")
		b.WriteString(p.Tone)
		b.WriteString(".")
	}

	if p.FirstPerson != "" {
		if b.Len() > 0 {
			b.WriteString(" ")
		}
		b.WriteString("Refer to yourself as \"")
		b.WriteString(p.FirstPerson)
		b.WriteString("\".")
	}

	if p.SpeechStyle != "" {
		if b.Len() > 0 {
			b.WriteString(" ")
		}
		b.WriteString("Write in ")
		b.WriteString(p.SpeechStyle)
		b.WriteString(".")
	}

	return b.String()
}
