// internal/llm/interface.go
package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownProvider is returned when no registered provider matches.
var ErrUnknownProvider = errors.New("unknown AI provider")

// ImagePart is one base64-encoded raster image attached to a request.
// Images keep their upload order; each is preceded on the wire by a
// "This is page N." text marker.
type ImagePart struct {
	MIMEType string `json:"mime_type"`
	Data     string `json:"data"` // base64, no data-URL prefix
}

// CompletionRequest is the normalized request shape shared by all providers.
type CompletionRequest struct {
	Prompt       string      `json:"prompt"`
	SystemPrompt string      `json:"system_prompt,omitempty"`
	Model        string      `json:"model,omitempty"`
	Images       []ImagePart `json:"images,omitempty"`
	MaxTokens    int         `json:"max_tokens,omitempty"`
	Temperature  float32     `json:"temperature,omitempty"`
}

// CompletionResponse is the normalized response shape.
type CompletionResponse struct {
	Text         string `json:"text"`
	FinishReason string `json:"finish_reason,omitempty"`
	TokensUsed   int    `json:"tokens_used,omitempty"`
	PromptTokens int    `json:"prompt_tokens,omitempty"`
	OutputTokens int    `json:"output_tokens,omitempty"`
	ModelName    string `json:"model_name,omitempty"`
	ProviderName string `json:"provider_name,omitempty"`
}

// Provider is implemented by every AI backend.
type Provider interface {
	// Initialize configures the provider. Required key: "api_key".
	Initialize(config map[string]string) error

	// GetName returns the human-readable provider name.
	GetName() string

	// GetSupportedModels returns the models this provider recommends.
	GetSupportedModels() []string

	// CompleteText performs one completion request.
	CompleteText(ctx context.Context, req CompletionRequest) (*CompletionResponse, error)
}

// ProviderFactory constructs an unconfigured provider.
type ProviderFactory func() Provider

var providers = make(map[string]ProviderFactory)

// Register adds a provider factory. Called from provider init() functions.
func Register(name string, factory ProviderFactory) {
	providers[name] = factory
}

// GetProvider creates and initializes the named provider.
func GetProvider(name string, config map[string]string) (Provider, error) {
	factory, exists := providers[name]
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrUnknownProvider, name)
	}
	provider := factory()
	if err := provider.Initialize(config); err != nil {
		return nil, err
	}
	return provider, nil
}

// ListProviders returns all registered provider names.
func ListProviders() []string {
	names := make([]string, 0, len(providers))
	for name := range providers {
		names = append(names, name)
	}
	return names
}

// ResolveProvider infers a provider name from a model identifier. It exists
// as a fallback for requests that do not name a provider explicitly: "gpt"
// anywhere in the model routes to openai, "gemini" to google, anything else
// is an unrecognized model.
func ResolveProvider(model string) (string, error) {
	lower := strings.ToLower(model)
	switch {
	case strings.Contains(lower, "gpt"):
		return "openai", nil
	case strings.Contains(lower, "gemini"):
		return "google", nil
	default:
		return "", fmt.Errorf("%w: unrecognized model %q", ErrUnknownProvider, model)
	}
}
