package openai_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/noteflow/aibridge/pkg/modeladapter"
	"github.com/noteflow/aibridge/pkg/providers/openai"
	"github.com/noteflow/aibridge/pkg/providers/provider"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, handler http.HandlerFunc) *openai.Adapter {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return openai.New(srv.URL, "test-key", "gpt-test")
}

func readBody(t *testing.T, r *http.Request) map[string]any {
	t.Helper()

	body, err := io.ReadAll(r.Body)
	require.NoError(t, err)

	var req map[string]any
	require.NoError(t, json.Unmarshal(body, &req))

	return req
}

func TestSend_Success(t *testing.T) {
	adapter := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		req := readBody(t, r)
		assert.Equal(t, "gpt-test", req["model"])
		assert.EqualValues(t, 256, req["max_tokens"])

		msgs, ok := req["messages"].([]any)
		require.True(t, ok)
		require.Len(t, msgs, 2)

		first, _ := msgs[0].(map[string]any)
		assert.Equal(t, "system", first["role"])
		assert.Equal(t, "Be terse.", first["content"])

		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"Hello!"},"finish_reason":"stop"}]}`))
	})

	text, err := adapter.Send(context.Background(), provider.Request{
		System:    "Be terse.",
		Message:   "Hi",
		MaxTokens: 256,
	})
	require.NoError(t, err)
	assert.Equal(t, "Hello!", text)
}

func TestSend_NoSystemMessage(t *testing.T) {
	adapter := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		req := readBody(t, r)

		msgs, ok := req["messages"].([]any)
		require.True(t, ok)
		require.Len(t, msgs, 1)

		only, _ := msgs[0].(map[string]any)
		assert.Equal(t, "user", only["role"])

		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"ok"},"finish_reason":"stop"}]}`))
	})

	_, err := adapter.Send(context.Background(), provider.Request{Message: "Hi"})
	require.NoError(t, err)
}

func TestSend_EmptyChoices(t *testing.T) {
	adapter := newTestServer(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[]}`))
	})

	_, err := adapter.Send(context.Background(), provider.Request{Message: "Hi"})
	require.Error(t, err)

	var diag *provider.Diagnostic
	require.ErrorAs(t, err, &diag)
	assert.NotEmpty(t, diag.Msg)
}

func TestSend_EmptyContentWithLengthReason(t *testing.T) {
	adapter := newTestServer(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":""},"finish_reason":"length"}]}`))
	})

	_, err := adapter.Send(context.Background(), provider.Request{Message: "Hi"})
	require.Error(t, err)

	var diag *provider.Diagnostic
	require.ErrorAs(t, err, &diag)
	assert.Contains(t, diag.Msg, "length")
}

func TestSend_Status401(t *testing.T) {
	adapter := newTestServer(t, func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"error":"bad key"}`, http.StatusUnauthorized)
	})

	_, err := adapter.Send(context.Background(), provider.Request{Message: "Hi"})
	require.Error(t, err)

	var se *modeladapter.StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "Request failed, status 401", se.Error())
}
