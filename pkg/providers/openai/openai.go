// Package openai provides a Sender implementation for the OpenAI Chat
// Completions API.
package openai

import (
	"context"
	"fmt"
	"strings"

	"github.com/noteflow/aibridge/pkg/modeladapter"
	"github.com/noteflow/aibridge/pkg/providers/provider"
)

const (
	completionsPath  = "/v1/chat/completions"
	defaultMaxTokens = 1024
)

var _ provider.Sender = (*Adapter)(nil)

// Adapter implements provider.Sender for the OpenAI Chat Completions API.
type Adapter struct {
	modeladapter.Adapter
	Model string
}

// New creates an Adapter configured for the OpenAI API.
// The baseURL should be "https://api.openai.com" (no trailing slash).
func New(baseURL, apiKey, model string) *Adapter {
	a := &Adapter{Model: model}
	a.BaseURL = baseURL
	a.Auth = modeladapter.Auth{Key: apiKey}

	return a
}

// Send posts a system/user prompt pair and returns the generated text.
// The call is bounded by the default request timeout.
func (a *Adapter) Send(ctx context.Context, req provider.Request) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, modeladapter.DefaultTimeout)
	defer cancel()

	var resp apiResponse
	if err := a.PostJSON(ctx, completionsPath, a.buildRequest(req), &resp); err != nil {
		return "", fmt.Errorf("openai: %w", err)
	}

	return extractText(resp)
}

// --- request types ---

type apiRequest struct {
	Model     string       `json:"model"`
	Messages  []apiMessage `json:"messages"`
	MaxTokens int          `json:"max_tokens,omitempty"`
}

type apiMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// --- response types ---

type apiResponse struct {
	Choices []apiChoice `json:"choices"`
}

type apiChoice struct {
	Message      apiRespMessage `json:"message"`
	FinishReason string         `json:"finish_reason"`
}

type apiRespMessage struct {
	Content string `json:"content"`
}

// --- conversion helpers ---

func (a *Adapter) buildRequest(req provider.Request) apiRequest {
	maxTokens := req.MaxTokens
	if maxTokens <= 0 {
		maxTokens = defaultMaxTokens
	}

	out := apiRequest{
		Model:     a.Model,
		MaxTokens: maxTokens,
	}

	if req.System != "" {
		out.Messages = append(out.Messages, apiMessage{Role: "system", Content: req.System})
	}

	out.Messages = append(out.Messages, apiMessage{Role: "user", Content: req.Message})

	return out
}

func extractText(resp apiResponse) (string, error) {
	if len(resp.Choices) == 0 {
		return "", &provider.Diagnostic{Msg: "OpenAI returned no choices."}
	}

	choice := resp.Choices[0]

	text := strings.TrimSpace(choice.Message.Content)
	if text == "" {
		if choice.FinishReason == "length" {
			return "", &provider.Diagnostic{
				Msg: "OpenAI returned an empty message (finish reason: length). The response was cut off by the output token limit.",
			}
		}

		return "", &provider.Diagnostic{
			Msg: fmt.Sprintf("OpenAI returned an empty message (finish reason: %s).", reasonOrNone(choice.FinishReason)),
		}
	}

	return text, nil
}

func reasonOrNone(reason string) string {
	if reason == "" {
		return "none"
	}

	return reason
}
