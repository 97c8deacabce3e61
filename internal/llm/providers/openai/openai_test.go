// internal/llm/providers/openai/openai_test.go
package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Corphon/MangaStudioMCP/internal/llm"
)

func newTestProvider(t *testing.T, baseURL string) *Provider {
	t.Helper()
	p, err := llm.GetProvider("openai", map[string]string{
		"api_key":  "test-key",
		"base_url": baseURL,
	})
	require.NoError(t, err)
	return p.(*Provider)
}

func TestInitializeRequiresAPIKey(t *testing.T) {
	p := &Provider{}
	require.Error(t, p.Initialize(map[string]string{}))
	require.Error(t, p.Initialize(map[string]string{"api_key": ""}))
}

func TestCompleteTextRequestShape(t *testing.T) {
	var captured map[string]interface{}
	var authHeader string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader = r.Header.Get("Authorization")
		assert.Equal(t, "/chat/completions", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))

		json.NewEncoder(w).Encode(map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"content": "three ideas"}, "finish_reason": "stop"},
			},
			"usage": map[string]int{"prompt_tokens": 10, "completion_tokens": 20, "total_tokens": 30},
		})
	}))
	defer server.Close()

	p := newTestProvider(t, server.URL)
	resp, err := p.CompleteText(context.Background(), llm.CompletionRequest{
		Prompt:       "generate ideas",
		SystemPrompt: "assistant persona",
		Model:        "gpt-4o",
		Temperature:  0.7,
		MaxTokens:    4000,
		Images: []llm.ImagePart{
			{MIMEType: "image/png", Data: "cDE="},
			{MIMEType: "image/png", Data: "cDI="},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "Bearer test-key", authHeader)
	assert.Equal(t, "three ideas", resp.Text)
	assert.Equal(t, 30, resp.TokensUsed)

	assert.Equal(t, "gpt-4o", captured["model"])
	assert.InDelta(t, 0.7, captured["temperature"].(float64), 1e-6)
	assert.EqualValues(t, 4000, captured["max_tokens"])

	messages := captured["messages"].([]interface{})
	require.Len(t, messages, 2)
	system := messages[0].(map[string]interface{})
	assert.Equal(t, "system", system["role"])
	assert.Equal(t, "assistant persona", system["content"])

	// User content: prompt, then per image a page marker and a data URL.
	user := messages[1].(map[string]interface{})
	content := user["content"].([]interface{})
	require.Len(t, content, 5)
	assert.Equal(t, "generate ideas", content[0].(map[string]interface{})["text"])
	assert.Equal(t, "This is page 1.", content[1].(map[string]interface{})["text"])
	imageURL := content[2].(map[string]interface{})["image_url"].(map[string]interface{})
	assert.Equal(t, "data:image/png;base64,cDE=", imageURL["url"])
	assert.Equal(t, "This is page 2.", content[3].(map[string]interface{})["text"])
}

func TestCompleteTextAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"error": map[string]string{"message": "invalid api key"},
		})
	}))
	defer server.Close()

	p := newTestProvider(t, server.URL)
	_, err := p.CompleteText(context.Background(), llm.CompletionRequest{Prompt: "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid api key")
	assert.Contains(t, err.Error(), "401")
}

func TestCompleteTextNoChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{"choices": []interface{}{}})
	}))
	defer server.Close()

	p := newTestProvider(t, server.URL)
	_, err := p.CompleteText(context.Background(), llm.CompletionRequest{Prompt: "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no choices")
}
