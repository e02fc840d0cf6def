// Package anthropic provides a Sender implementation for the Anthropic
// Messages API.
package anthropic

import (
	"context"
	"fmt"
	"strings"

	"github.com/noteflow/aibridge/pkg/modeladapter"
	"github.com/noteflow/aibridge/pkg/providers/provider"
)

const (
	messagesPath     = "/v1/messages"
	apiVersion       = "2023-06-01"
	defaultMaxTokens = 1024
)

var _ provider.Sender = (*Adapter)(nil)

// Adapter implements provider.Sender for the Anthropic Messages API.
type Adapter struct {
	modeladapter.Adapter
	Model string
}

// New creates an Adapter configured for the Anthropic API.
// The baseURL should be "https://api.anthropic.com" (no trailing slash).
func New(baseURL, apiKey, model string) *Adapter {
	a := &Adapter{Model: model}
	a.BaseURL = baseURL
	a.Auth = modeladapter.Auth{
		Key:    apiKey,
		Header: "x-api-key",
	}
	a.Headers = map[string]string{
		"anthropic-version": apiVersion,
	}

	return a
}

// Send posts a system/user prompt pair and returns the generated text.
// The call is bounded by the default request timeout.
func (a *Adapter) Send(ctx context.Context, req provider.Request) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, modeladapter.DefaultTimeout)
	defer cancel()

	var resp apiResponse
	if err := a.PostJSON(ctx, messagesPath, a.buildRequest(req), &resp); err != nil {
		return "", fmt.Errorf("anthropic: %w", err)
	}

	return extractText(resp)
}

// --- request types ---

type apiRequest struct {
	Model     string       `json:"model"`
	MaxTokens int          `json:"max_tokens"`
	System    string       `json:"system,omitempty"`
	Messages  []apiMessage `json:"messages"`
}

type apiMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// --- response types ---

type apiResponse struct {
	Content    []apiContent `json:"content"`
	StopReason string       `json:"stop_reason"`
}

type apiContent struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// --- conversion helpers ---

func (a *Adapter) buildRequest(req provider.Request) apiRequest {
	maxTokens := req.MaxTokens
	if maxTokens <= 0 {
		maxTokens = defaultMaxTokens
	}

	return apiRequest{
		Model:     a.Model,
		MaxTokens: maxTokens,
		System:    req.System,
		Messages: []apiMessage{
			{Role: "user", Content: req.Message},
		},
	}
}

func extractText(resp apiResponse) (string, error) {
	var b strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			b.WriteString(block.Text)
		}
	}

	text := strings.TrimSpace(b.String())
	if text == "" {
		if resp.StopReason == "max_tokens" {
			return "", &provider.Diagnostic{
				Msg: "Claude returned no text (stop reason: max_tokens). The response was cut off by the output token limit.",
			}
		}

		return "", &provider.Diagnostic{
			Msg: fmt.Sprintf("Claude returned no text (stop reason: %s).", reasonOrNone(resp.StopReason)),
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
