// Package gemini provides a Sender implementation for the Google Gemini API.
package gemini

import (
	"context"
	"fmt"
	"strings"

	"github.com/noteflow/aibridge/pkg/modeladapter"
	"github.com/noteflow/aibridge/pkg/providers/provider"
)

const defaultMaxTokens = 1024

var _ provider.Sender = (*Adapter)(nil)

// Adapter implements provider.Sender for the Google Gemini API.
type Adapter struct {
	modeladapter.Adapter
	Model string
}

// New creates an Adapter configured for the Gemini API.
// The baseURL should be "https://generativelanguage.googleapis.com" (no
// trailing slash).
func New(baseURL, apiKey, model string) *Adapter {
	a := &Adapter{Model: model}
	a.BaseURL = baseURL
	a.Auth = modeladapter.Auth{
		Key:    apiKey,
		Header: "x-goog-api-key",
	}

	return a
}

// Send posts a system/user prompt pair and returns the generated text.
// The call is bounded by the default request timeout.
func (a *Adapter) Send(ctx context.Context, req provider.Request) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, modeladapter.DefaultTimeout)
	defer cancel()

	path := fmt.Sprintf("/v1beta/models/%s:generateContent", a.Model)

	var resp apiResponse
	if err := a.PostJSON(ctx, path, a.buildRequest(req), &resp); err != nil {
		return "", fmt.Errorf("gemini: %w", err)
	}

	return extractText(resp)
}

// --- request types ---

type apiRequest struct {
	Contents          []apiContent     `json:"contents"`
	SystemInstruction *apiContent      `json:"systemInstruction,omitempty"`
	GenerationConfig  generationConfig `json:"generationConfig"`
}

type apiContent struct {
	Role  string    `json:"role,omitempty"`
	Parts []apiPart `json:"parts"`
}

type apiPart struct {
	Text string `json:"text"`
}

type generationConfig struct {
	MaxOutputTokens int `json:"maxOutputTokens"`
}

// --- response types ---

type apiResponse struct {
	Candidates     []apiCandidate `json:"candidates"`
	PromptFeedback apiFeedback    `json:"promptFeedback"`
}

type apiCandidate struct {
	Content      apiContent `json:"content"`
	FinishReason string     `json:"finishReason"`
}

type apiFeedback struct {
	BlockReason string `json:"blockReason"`
}

// --- conversion helpers ---

func (a *Adapter) buildRequest(req provider.Request) apiRequest {
	maxTokens := req.MaxTokens
	if maxTokens <= 0 {
		maxTokens = defaultMaxTokens
	}

	out := apiRequest{
		Contents: []apiContent{
			{Role: "user", Parts: []apiPart{{Text: req.Message}}},
		},
		GenerationConfig: generationConfig{MaxOutputTokens: maxTokens},
	}

	if req.System != "" {
		out.SystemInstruction = &apiContent{Parts: []apiPart{{Text: req.System}}}
	}

	return out
}

func extractText(resp apiResponse) (string, error) {
	if resp.PromptFeedback.BlockReason != "" {
		return "", &provider.Diagnostic{
			Msg: fmt.Sprintf("Gemini blocked the prompt by its safety filters (block reason: %s).", resp.PromptFeedback.BlockReason),
		}
	}

	if len(resp.Candidates) == 0 {
		return "", &provider.Diagnostic{Msg: "Gemini returned no candidates."}
	}

	cand := resp.Candidates[0]

	var b strings.Builder
	for _, p := range cand.Content.Parts {
		b.WriteString(p.Text)
	}

	text := strings.TrimSpace(b.String())
	if text == "" {
		switch cand.FinishReason {
		case "SAFETY":
			return "", &provider.Diagnostic{
				Msg: "Gemini returned no text (finish reason: SAFETY). The response was blocked by safety filters.",
			}
		case "MAX_TOKENS":
			return "", &provider.Diagnostic{
				Msg: "Gemini returned no text (finish reason: MAX_TOKENS). The response was cut off by the output token limit.",
			}
		default:
			return "", &provider.Diagnostic{
				Msg: fmt.Sprintf("Gemini returned no text (finish reason: %s).", reasonOrNone(cand.FinishReason)),
			}
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
