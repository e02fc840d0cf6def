// Package bridge is the surface other in-host plugins consume: it owns the
// settings instance, dispatches prompt requests to the selected provider
// adapter, and normalizes every outcome into a success/failure result with
// redacted error text.
package bridge

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"github.com/noteflow/aibridge/pkg/modeladapter"
	"github.com/noteflow/aibridge/pkg/persona"
	"github.com/noteflow/aibridge/pkg/providers/provider"
	"github.com/noteflow/aibridge/pkg/redact"
	"github.com/noteflow/aibridge/pkg/settings"
	"github.com/rs/zerolog"
)

// SenderFactory builds the adapter for a provider id from the current
// settings. The default factory covers the closed provider set; tests and
// embedding hosts may substitute their own.
type SenderFactory func(id provider.ID, s *settings.Settings) (provider.Sender, error)

// Bridge owns a settings instance and exposes the prompt/persona API.
// Settings mutate only through the instance returned by Settings, followed by
// an explicit Save; there is no background sync.
type Bridge struct {
	store   settings.Store
	log     zerolog.Logger
	factory SenderFactory
	s       *settings.Settings
}

// Option configures a Bridge.
type Option func(*Bridge)

// WithLogger sets the structured logger. The default discards everything.
func WithLogger(log zerolog.Logger) Option {
	return func(b *Bridge) { b.log = log }
}

// WithSenderFactory replaces the adapter factory.
func WithSenderFactory(f SenderFactory) Option {
	return func(b *Bridge) { b.factory = f }
}

// New loads the last-saved settings from store (falling back to defaults on
// first run), migrates them, and returns a ready Bridge.
func New(store settings.Store, opts ...Option) (*Bridge, error) {
	b := &Bridge{
		store:   store,
		log:     zerolog.Nop(),
		factory: defaultFactory,
	}

	for _, opt := range opts {
		opt(b)
	}

	s, found, err := store.Load()
	if err != nil {
		return nil, fmt.Errorf("bridge: %w", err)
	}
	if !found {
		s = settings.Default()
	}

	s.Migrate()
	b.s = s

	return b, nil
}

// Settings returns the owned settings instance for reading and mutation.
func (b *Bridge) Settings() *settings.Settings { return b.s }

// Save persists the current settings through the store.
func (b *Bridge) Save() error {
	if err := b.store.Save(b.s); err != nil {
		return fmt.Errorf("bridge: %w", err)
	}

	return nil
}

// IsReady reports whether a prompt can be sent: the bridge is enabled, the
// provider is recognized, and a key is present when the provider needs one.
func (b *Bridge) IsReady() bool {
	id := b.s.Provider

	if !b.s.Enabled || !provider.Known(id) {
		return false
	}

	if id.RequiresKey() && b.s.APIKey(id) == "" {
		return false
	}

	return true
}

// ProviderDisplayName returns the human-readable name of the selected
// provider.
func (b *Bridge) ProviderDisplayName() string {
	return b.s.Provider.DisplayName()
}

// CurrentPersona returns the active persona.
func (b *Bridge) CurrentPersona() persona.Persona {
	return b.s.CurrentPersona()
}

// PersonaPromptFragment returns the active persona rendered as a
// system-prompt fragment.
func (b *Bridge) PersonaPromptFragment() string {
	return b.s.CurrentPersona().PromptFragment()
}

// SendPrompt dispatches the request to the selected provider and returns a
// normalized result. Failures never escape as errors: transport problems,
// non-2xx statuses, and empty generations all come back as a failed Result
// whose message has passed through the redactor.
func (b *Bridge) SendPrompt(ctx context.Context, req provider.Request) provider.Result {
	id := b.s.Provider

	if !provider.Known(id) {
		b.log.Warn().Str("provider", string(id)).Msg("prompt rejected: unknown provider")

		return provider.Failure(fmt.Sprintf("Unknown provider: %s", id))
	}

	sender, err := b.factory(id, b.s)
	if err != nil {
		return provider.Failure(b.redacted(err.Error()))
	}

	b.log.Debug().
		Str("provider", string(id)).
		Str("model", b.s.Model(id)).
		Int("maxTokens", req.MaxTokens).
		Msg("sending prompt")

	text, err := sender.Send(ctx, req)
	if err != nil {
		msg := b.redacted(failureMessage(err))
		b.log.Warn().Str("provider", string(id)).Str("error", msg).Msg("prompt failed")

		return provider.Failure(msg)
	}

	b.log.Debug().Str("provider", string(id)).Int("chars", len(text)).Msg("prompt completed")

	return provider.Success(text)
}

// redacted sanitizes msg with the selected provider's key as the known
// secret.
func (b *Bridge) redacted(msg string) string {
	return redact.Redact(msg, b.s.APIKey(b.s.Provider))
}

// failureMessage maps an adapter error onto the message taxonomy: exact
// status text for non-2xx, a generic line for timeouts, the assembled
// diagnostic for provider-level failures, and a short transport note
// otherwise.
func failureMessage(err error) string {
	var se *modeladapter.StatusError
	if errors.As(err, &se) {
		return se.Error()
	}

	if modeladapter.IsTimeout(err) {
		return modeladapter.TimedOutMessage
	}

	var diag *provider.Diagnostic
	if errors.As(err, &diag) {
		return diag.Msg
	}

	var ue *url.Error
	if errors.As(err, &ue) {
		// Drop the URL; the inner error ("connection refused") is enough.
		return fmt.Sprintf("Request failed: %v", ue.Err)
	}

	return err.Error()
}
