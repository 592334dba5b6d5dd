package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewClient_RequiresKey(t *testing.T) {
	_, err := NewClient(Config{}, zap.NewNop())
	assert.Error(t, err)
}

func TestClient_Generate(t *testing.T) {
	var got struct {
		Model    string `json:"model"`
		Messages []struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"messages"`
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"1","object":"chat.completion","choices":[{"index":0,"finish_reason":"stop","message":{"role":"assistant","content":"MATCH (n) RETURN n"}}]}`))
	}))
	defer server.Close()

	c, err := NewClient(Config{APIKey: "secret", BaseURL: server.URL, Model: "test-model"}, zap.NewNop())
	require.NoError(t, err)

	out, err := c.Generate(context.Background(), "schema", "question")
	require.NoError(t, err)
	assert.Equal(t, "MATCH (n) RETURN n", out)

	assert.Equal(t, "test-model", got.Model)
	require.Len(t, got.Messages, 2)
	assert.Equal(t, "system", got.Messages[0].Role)
	assert.Equal(t, "schema", got.Messages[0].Content)
	assert.Equal(t, "question", got.Messages[1].Content)
}

func TestClient_NoChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"1","choices":[]}`))
	}))
	defer server.Close()

	c, err := NewClient(Config{APIKey: "secret", BaseURL: server.URL}, zap.NewNop())
	require.NoError(t, err)

	_, err = c.Generate(context.Background(), "s", "q")
	assert.ErrorIs(t, err, ErrNoChoices)
}
