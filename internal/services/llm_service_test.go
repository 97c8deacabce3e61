// internal/services/llm_service_test.go
package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Corphon/MangaStudioMCP/internal/apperrors"
	"github.com/Corphon/MangaStudioMCP/internal/llm"

	_ "github.com/Corphon/MangaStudioMCP/internal/llm/providers/google"
	_ "github.com/Corphon/MangaStudioMCP/internal/llm/providers/openai"
)

// stubProvider captures the request it receives and returns a canned
// response.
type stubProvider struct {
	name     string
	lastReq  llm.CompletionRequest
	response string
	err      error
}

func (p *stubProvider) Initialize(config map[string]string) error { return nil }
func (p *stubProvider) GetName() string                           { return p.name }
func (p *stubProvider) GetSupportedModels() []string              { return nil }

func (p *stubProvider) CompleteText(ctx context.Context, req llm.CompletionRequest) (*llm.CompletionResponse, error) {
	p.lastReq = req
	if p.err != nil {
		return nil, p.err
	}
	return &llm.CompletionResponse{Text: p.response}, nil
}

func newTestGateway() *LLMService {
	return NewLLMService(nil, zap.NewNop())
}

func TestGenerateRoutesByModelName(t *testing.T) {
	gateway := newTestGateway()
	stub := &stubProvider{name: "openai", response: "three ideas"}
	gateway.SetProvider("openai", stub)

	result, err := gateway.Generate(context.Background(), GenerateRequest{
		TemplateKey: TemplateIdea,
		Model:       "gpt-4o",
		Fields:      map[string]string{"input_content": "Genre: sports"},
	})
	require.NoError(t, err)
	assert.Equal(t, "three ideas", result)

	assert.Equal(t, "gpt-4o", stub.lastReq.Model)
	assert.Equal(t, SystemPrompt, stub.lastReq.SystemPrompt)
	assert.InDelta(t, 0.7, stub.lastReq.Temperature, 1e-6)
	assert.Equal(t, 4000, stub.lastReq.MaxTokens)
	assert.Contains(t, stub.lastReq.Prompt, "Genre: sports")
}

func TestGenerateExplicitProviderWinsOverModelName(t *testing.T) {
	gateway := newTestGateway()
	stub := &stubProvider{name: "google", response: "ok"}
	gateway.SetProvider("google", stub)

	// Model name says openai, explicit selection says google.
	_, err := gateway.Generate(context.Background(), GenerateRequest{
		TemplateKey: TemplateIdea,
		Provider:    "google",
		Model:       "gpt-4o",
	})
	require.NoError(t, err)
	assert.Equal(t, "gpt-4o", stub.lastReq.Model)
}

func TestGenerateUnrecognizedModel(t *testing.T) {
	gateway := newTestGateway()

	_, err := gateway.Generate(context.Background(), GenerateRequest{
		TemplateKey: TemplateIdea,
		Model:       "claude-3-opus",
	})
	require.Error(t, err)
	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
}

func TestGenerateUnconfiguredProvider(t *testing.T) {
	gateway := newTestGateway()

	_, err := gateway.Generate(context.Background(), GenerateRequest{
		TemplateKey: TemplateIdea,
		Model:       "gpt-4o",
	})
	require.Error(t, err)
	assert.Equal(t, apperrors.KindConfiguration, apperrors.KindOf(err))
	assert.Contains(t, err.Error(), "not set or invalid")
	assert.True(t, IsNoResult(err))
}

func TestGenerateProviderFailure(t *testing.T) {
	gateway := newTestGateway()
	gateway.SetProvider("openai", &stubProvider{
		name: "openai",
		err:  assert.AnError,
	})

	_, err := gateway.Generate(context.Background(), GenerateRequest{
		TemplateKey: TemplateIdea,
		Model:       "gpt-4o",
	})
	require.Error(t, err)
	assert.Equal(t, apperrors.KindProvider, apperrors.KindOf(err))
	assert.True(t, IsNoResult(err))
}

func TestGeneratePassesImagesThrough(t *testing.T) {
	gateway := newTestGateway()
	stub := &stubProvider{name: "google", response: "page feedback"}
	gateway.SetProvider("google", stub)

	images := []llm.ImagePart{
		{MIMEType: "image/png", Data: "aGVsbG8="},
		{MIMEType: "image/png", Data: "d29ybGQ="},
	}
	_, err := gateway.Generate(context.Background(), GenerateRequest{
		TemplateKey: TemplateManuscriptEval,
		Model:       "gemini-1.5-pro-latest",
		Images:      images,
	})
	require.NoError(t, err)
	assert.Equal(t, images, stub.lastReq.Images)
}

func TestStatusReportsConfiguredProviders(t *testing.T) {
	gateway := newTestGateway()
	gateway.SetProvider("openai", &stubProvider{name: "openai"})

	status := gateway.Status()
	assert.True(t, status["openai"])
	assert.False(t, status["google"])
}
