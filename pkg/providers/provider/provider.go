// Package provider defines the provider identifier enum and the generic
// request/result types shared by all provider adapters.
package provider

import (
	"context"
	"errors"
)

// ID identifies one of the supported AI backends. The set is closed: only the
// constants below are recognized, everything else fails before any network
// call is made.
type ID string

const (
	OpenAI    ID = "openai"
	Anthropic ID = "anthropic"
	Gemini    ID = "gemini"
	Ollama    ID = "ollama"
)

// ErrUnknownProvider is returned when an ID outside the closed set is used.
var ErrUnknownProvider = errors.New("provider: unknown provider")

// All returns the supported provider IDs in display order.
func All() []ID {
	return []ID{OpenAI, Anthropic, Gemini, Ollama}
}

// Known reports whether id is one of the supported providers.
func Known(id ID) bool {
	switch id {
	case OpenAI, Anthropic, Gemini, Ollama:
		return true
	default:
		return false
	}
}

// DisplayName returns the human-readable provider name.
func (id ID) DisplayName() string {
	switch id {
	case OpenAI:
		return "OpenAI"
	case Anthropic:
		return "Anthropic Claude"
	case Gemini:
		return "Google Gemini"
	case Ollama:
		return "Ollama (local)"
	default:
		return string(id)
	}
}

// RequiresKey reports whether the provider needs a non-empty API key.
// The local Ollama server is unauthenticated.
func (id ID) RequiresKey() bool {
	return id != Ollama
}

// DefaultModel returns the provider's documented default model. Ollama has no
// documented default; the model must be chosen from the installed list.
func (id ID) DefaultModel() string {
	switch id {
	case OpenAI:
		return "gpt-4o-mini"
	case Anthropic:
		return "claude-3-5-haiku-latest"
	case Gemini:
		return "gemini-1.5-flash"
	default:
		return ""
	}
}

// DefaultBaseURL returns the provider's default API base URL (no trailing
// slash).
func (id ID) DefaultBaseURL() string {
	switch id {
	case OpenAI:
		return "https://api.openai.com"
	case Anthropic:
		return "https://api.anthropic.com"
	case Gemini:
		return "https://generativelanguage.googleapis.com"
	case Ollama:
		return "http://127.0.0.1:11434"
	default:
		return ""
	}
}

// Request is a single prompt exchange. It has no identity and is constructed
// fresh for every call.
type Request struct {
	System    string // System prompt, may be empty.
	Message   string // User message.
	MaxTokens int    // Maximum output tokens; adapters apply a default when 0.
}

// Result is the normalized outcome of a prompt call. Exactly one of Text or
// Err is meaningful, discriminated by OK.
type Result struct {
	OK   bool
	Text string
	Err  string
}

// Success returns an OK result carrying text.
func Success(text string) Result {
	return Result{OK: true, Text: text}
}

// Failure returns a failed result carrying an error message.
func Failure(err string) Result {
	return Result{Err: err}
}

// Sender sends a prompt request to a provider and returns the generated text.
// Implementations bound every call with a fixed timeout.
type Sender interface {
	Send(ctx context.Context, req Request) (string, error)
}

// Diagnostic is an error assembled from provider-specific reason codes when a
// well-formed response carries no usable text (empty generation, safety
// block, truncation). Its message is meant for a human-visible surface.
type Diagnostic struct {
	Msg string
}

func (d *Diagnostic) Error() string { return d.Msg }
