package ollama

import (
	"context"
	"strings"

	"github.com/noteflow/aibridge/pkg/modeladapter"
	"github.com/noteflow/aibridge/pkg/providers/provider"
)

const (
	tagsPath = "/api/tags"
	showPath = "/api/show"
)

// ModelEntry describes one locally installed model. Entries are transient:
// fetched per listing call, never persisted.
type ModelEntry struct {
	Name    string        `json:"name"`
	Size    int64         `json:"size"`
	Details *ModelDetails `json:"details,omitempty"`
}

// ModelDetails is the optional metadata block the server reports per model.
type ModelDetails struct {
	ParameterSize     string `json:"parameter_size"`
	QuantizationLevel string `json:"quantization_level"`
	Family            string `json:"family"`
}

type tagsResponse struct {
	Models []ModelEntry `json:"models"`
}

type showRequest struct {
	Name string `json:"name"`
}

type showResponse struct {
	Details ModelDetails `json:"details"`
}

// ListModels returns the models installed on the server at baseURL. The call
// uses the short listing timeout and treats every failure (including a
// refused connection) as "no models installed": an absent local server is an
// expected state, not an error.
func ListModels(ctx context.Context, baseURL string) []ModelEntry {
	a := listAdapter(baseURL)

	ctx, cancel := context.WithTimeout(ctx, modeladapter.ListTimeout)
	defer cancel()

	var resp tagsResponse
	if err := a.GetJSON(ctx, tagsPath, &resp); err != nil {
		return []ModelEntry{}
	}

	if resp.Models == nil {
		return []ModelEntry{}
	}

	return resp.Models
}

// ShowModel returns the details block for a named model, or nil on any
// failure, for the same reason ListModels never errors.
func ShowModel(ctx context.Context, baseURL, name string) *ModelDetails {
	a := listAdapter(baseURL)

	ctx, cancel := context.WithTimeout(ctx, modeladapter.ListTimeout)
	defer cancel()

	var resp showResponse
	if err := a.PostJSON(ctx, showPath, showRequest{Name: name}, &resp); err != nil {
		return nil
	}

	return &resp.Details
}

func listAdapter(baseURL string) *modeladapter.Adapter {
	if baseURL == "" {
		baseURL = provider.Ollama.DefaultBaseURL()
	}

	a := modeladapter.New(strings.TrimRight(baseURL, "/"), modeladapter.Auth{}, nil)

	return &a
}
