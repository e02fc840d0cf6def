package bridge_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/noteflow/aibridge/pkg/bridge"
	"github.com/noteflow/aibridge/pkg/persona"
	"github.com/noteflow/aibridge/pkg/providers/gemini"
	"github.com/noteflow/aibridge/pkg/providers/openai"
	"github.com/noteflow/aibridge/pkg/providers/provider"
	"github.com/noteflow/aibridge/pkg/settings"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newBridge builds a bridge over a MemStore with the given provider selected
// and its adapter pointed at a test server.
func newBridge(t *testing.T, id provider.ID, handler http.HandlerFunc) *bridge.Bridge {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	s := settings.Default()
	s.Provider = id
	s.ForProvider(id).APIKey = "sk-test-key"

	store := &settings.MemStore{}
	require.NoError(t, store.Save(s))

	factory := func(fid provider.ID, fs *settings.Settings) (provider.Sender, error) {
		switch fid {
		case provider.OpenAI:
			return openai.New(srv.URL, fs.APIKey(fid), fs.Model(fid)), nil
		case provider.Gemini:
			return gemini.New(srv.URL, fs.APIKey(fid), fs.Model(fid)), nil
		default:
			return nil, provider.ErrUnknownProvider
		}
	}

	b, err := bridge.New(store, bridge.WithSenderFactory(factory))
	require.NoError(t, err)

	return b
}

func TestSendPrompt_Success(t *testing.T) {
	b := newBridge(t, provider.OpenAI, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"the answer"},"finish_reason":"stop"}]}`))
	})

	res := b.SendPrompt(context.Background(), provider.Request{Message: "question"})

	assert.True(t, res.OK)
	assert.Equal(t, "the answer", res.Text)
	assert.Empty(t, res.Err)
}

func TestSendPrompt_Status401ExactMessage(t *testing.T) {
	b := newBridge(t, provider.OpenAI, func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"error":"invalid api key sk-test-key"}`, http.StatusUnauthorized)
	})

	res := b.SendPrompt(context.Background(), provider.Request{Message: "question"})

	assert.False(t, res.OK)
	assert.Equal(t, "Request failed, status 401", res.Err)
}

func TestSendPrompt_GeminiSafetyHint(t *testing.T) {
	b := newBridge(t, provider.Gemini, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"candidates":[],"promptFeedback":{"blockReason":"SAFETY"}}`))
	})

	res := b.SendPrompt(context.Background(), provider.Request{Message: "question"})

	assert.False(t, res.OK)
	assert.Contains(t, res.Err, "safety")
}

func TestSendPrompt_UnknownProviderNoNetworkCall(t *testing.T) {
	called := false

	s := settings.Default()
	s.Provider = "frontier-llm"

	store := &settings.MemStore{}
	require.NoError(t, store.Save(s))

	factory := func(provider.ID, *settings.Settings) (provider.Sender, error) {
		called = true
		return nil, provider.ErrUnknownProvider
	}

	b, err := bridge.New(store, bridge.WithSenderFactory(factory))
	require.NoError(t, err)

	res := b.SendPrompt(context.Background(), provider.Request{Message: "hi"})

	assert.False(t, res.OK)
	assert.Equal(t, "Unknown provider: frontier-llm", res.Err)
	assert.False(t, called, "no adapter may be built for an unknown provider")
}

func TestSendPrompt_TimeoutMessage(t *testing.T) {
	slow := func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(300 * time.Millisecond)
		_, _ = w.Write([]byte(`{}`))
	}
	b := newBridge(t, provider.OpenAI, slow)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	res := b.SendPrompt(ctx, provider.Request{Message: "question"})

	assert.False(t, res.OK)
	assert.Equal(t, "Request timed out", res.Err)
}

func TestSendPrompt_RedactsAPIKeyInErrors(t *testing.T) {
	s := settings.Default()
	s.Provider = provider.OpenAI
	s.ForProvider(provider.OpenAI).APIKey = "sk-leaky-key-9876"

	store := &settings.MemStore{}
	require.NoError(t, store.Save(s))

	factory := func(provider.ID, *settings.Settings) (provider.Sender, error) {
		return senderFunc(func(context.Context, provider.Request) (string, error) {
			return "", errors.New("auth rejected for sk-leaky-key-9876 at endpoint?key=sk-leaky-key-9876")
		}), nil
	}

	b, err := bridge.New(store, bridge.WithSenderFactory(factory))
	require.NoError(t, err)

	res := b.SendPrompt(context.Background(), provider.Request{Message: "hi"})

	assert.False(t, res.OK)
	assert.NotContains(t, res.Err, "sk-leaky-key-9876")
}

type senderFunc func(ctx context.Context, req provider.Request) (string, error)

func (f senderFunc) Send(ctx context.Context, req provider.Request) (string, error) {
	return f(ctx, req)
}

func TestIsReady(t *testing.T) {
	store := &settings.MemStore{}

	b, err := bridge.New(store)
	require.NoError(t, err)

	// Fresh settings: enabled, OpenAI selected, no key.
	assert.False(t, b.IsReady())

	b.Settings().ForProvider(provider.OpenAI).APIKey = "sk-abc"
	assert.True(t, b.IsReady())

	b.Settings().Enabled = false
	assert.False(t, b.IsReady())

	// Ollama needs no key.
	b.Settings().Enabled = true
	b.Settings().Provider = provider.Ollama
	assert.True(t, b.IsReady())

	b.Settings().Provider = "nope"
	assert.False(t, b.IsReady())
}

func TestNew_FirstRunDefaultsAndMigration(t *testing.T) {
	s := &settings.Settings{
		Enabled:      true,
		Provider:     provider.Anthropic,
		LegacyAPIKey: "sk-from-the-past",
	}
	store := &settings.MemStore{}
	require.NoError(t, store.Save(s))

	b, err := bridge.New(store)
	require.NoError(t, err)

	assert.Equal(t, "sk-from-the-past", b.Settings().APIKey(provider.Anthropic))
	assert.Empty(t, b.Settings().LegacyAPIKey)
	assert.NotNil(t, b.Settings().Persona.Custom)
}

func TestPersonaSurface(t *testing.T) {
	b, err := bridge.New(&settings.MemStore{})
	require.NoError(t, err)

	assert.Equal(t, persona.Default(), b.CurrentPersona())
	assert.NotEmpty(t, b.PersonaPromptFragment())

	b.Settings().Persona.Selected = "muse"
	assert.Equal(t, "muse", b.CurrentPersona().ID)
	assert.Contains(t, b.PersonaPromptFragment(), "Muse")
}

func TestProviderDisplayName(t *testing.T) {
	b, err := bridge.New(&settings.MemStore{})
	require.NoError(t, err)

	assert.Equal(t, "OpenAI", b.ProviderDisplayName())

	b.Settings().Provider = provider.Ollama
	assert.Equal(t, "Ollama (local)", b.ProviderDisplayName())
}

func TestSaveRoundTrip(t *testing.T) {
	store := &settings.MemStore{}

	b, err := bridge.New(store)
	require.NoError(t, err)

	b.Settings().ForProvider(provider.Gemini).APIKey = "g-key"
	require.NoError(t, b.Save())

	reloaded, err := bridge.New(store)
	require.NoError(t, err)
	assert.Equal(t, "g-key", reloaded.Settings().APIKey(provider.Gemini))
}
