package persona_test

import (
	"testing"

	"github.com/noteflow/aibridge/pkg/persona"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPresets(t *testing.T) {
	ps := persona.Presets()
	require.Len(t, ps, 5)

	seen := map[string]bool{}
	for _, p := range ps {
		assert.NotEmpty(t, p.ID)
		assert.NotEmpty(t, p.Name)
		assert.NotEqual(t, persona.CustomID, p.ID)
		assert.False(t, seen[p.ID], "duplicate preset id %q", p.ID)
		seen[p.ID] = true
	}
}

func TestPresets_ReturnsCopy(t *testing.T) {
	ps := persona.Presets()
	ps[0].Name = "mutated"

	assert.NotEqual(t, "mutated", persona.Presets()[0].Name)
}

func TestDefault(t *testing.T) {
	d := persona.Default()

	assert.Equal(t, "assistant", d.ID)

	got, ok := persona.Preset(d.ID)
	require.True(t, ok)
	assert.Equal(t, d, got)
}

func TestPreset_Unknown(t *testing.T) {
	_, ok := persona.Preset("nonexistent")
	assert.False(t, ok)

	_, ok = persona.Preset(persona.CustomID)
	assert.False(t, ok, "custom is not a preset")
}

func TestPromptFragment(t *testing.T) {
	p := persona.Persona{
		Name:        "Scholar",
		Tone:        "precise",
		FirstPerson: "I",
		SpeechStyle: "formal register",
	}

	frag := p.PromptFragment()

	assert.Contains(t, frag, "Scholar")
	assert.Contains(t, frag, "precise")
	assert.Contains(t, frag, `"I"`)
	assert.Contains(t, frag, "formal register")
}

func TestPromptFragment_SkipsEmptyFields(t *testing.T) {
	p := persona.Persona{Tone: "dry"}

	frag := p.PromptFragment()

	assert.Equal(t, "Keep the tone dry.", frag)
}

func TestPromptFragment_Empty(t *testing.T) {
	assert.Empty(t, persona.Persona{}.PromptFragment())
}
