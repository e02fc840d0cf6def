// Package providers groups the AI provider adapters behind a shared contract.
//
// It is organized into sub-packages:
//   - [github.com/noteflow/aibridge/pkg/providers/provider] - provider identifiers, the Sender interface, and the request/result types hosts consume
//   - [github.com/noteflow/aibridge/pkg/providers/openai] - OpenAI chat completions adapter
//   - [github.com/noteflow/aibridge/pkg/providers/anthropic] - Anthropic messages adapter
//   - [github.com/noteflow/aibridge/pkg/providers/gemini] - Google Gemini generateContent adapter
//   - [github.com/noteflow/aibridge/pkg/providers/ollama] - local Ollama adapter plus model listing
//
// This package contains no adapter code itself; concrete adapters live in the
// sub-packages and share the HTTP base in pkg/modeladapter.
package providers
