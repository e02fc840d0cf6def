// Package ollama provides a Sender implementation for a local Ollama server,
// plus the advisory model-listing calls used to populate selection UIs.
package ollama

import (
	"context"
	"fmt"
	"strings"

	"github.com/noteflow/aibridge/pkg/modeladapter"
	"github.com/noteflow/aibridge/pkg/providers/provider"
)

const chatPath = "/api/chat"

var _ provider.Sender = (*Adapter)(nil)

// Adapter implements provider.Sender for a local Ollama server.
type Adapter struct {
	modeladapter.Adapter
	Model string
}

// New creates an Adapter for the server at baseURL (no trailing slash).
// An empty baseURL falls back to the default local address.
func New(baseURL, model string) *Adapter {
	if baseURL == "" {
		baseURL = provider.Ollama.DefaultBaseURL()
	}

	a := &Adapter{Model: model}
	a.BaseURL = strings.TrimRight(baseURL, "/")

	return a
}

// Send posts a system/user prompt pair and returns the generated text.
// The call is bounded by the default request timeout.
func (a *Adapter) Send(ctx context.Context, req provider.Request) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, modeladapter.DefaultTimeout)
	defer cancel()

	var resp chatResponse
	if err := a.PostJSON(ctx, chatPath, a.buildRequest(req), &resp); err != nil {
		return "", fmt.Errorf("ollama: %w", err)
	}

	text := strings.TrimSpace(resp.Message.Content)
	if text == "" {
		return "", &provider.Diagnostic{
			Msg: fmt.Sprintf("Ollama model %q returned an empty response.", a.Model),
		}
	}

	return text, nil
}

// --- request types ---

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
	Stream   bool          `json:"stream"`
	Options  *chatOptions  `json:"options,omitempty"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatOptions struct {
	NumPredict int `json:"num_predict,omitempty"`
}

// --- response types ---

type chatResponse struct {
	Message chatMessage `json:"message"`
	Done    bool        `json:"done"`
}

// --- conversion helpers ---

func (a *Adapter) buildRequest(req provider.Request) chatRequest {
	out := chatRequest{
		Model:  a.Model,
		Stream: false,
	}

	if req.System != "" {
		out.Messages = append(out.Messages, chatMessage{Role: "system", Content: req.System})
	}

	out.Messages = append(out.Messages, chatMessage{Role: "user", Content: req.Message})

	if req.MaxTokens > 0 {
		out.Options = &chatOptions{NumPredict: req.MaxTokens}
	}

	return out
}
