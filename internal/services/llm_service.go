// internal/services/llm_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/Corphon/MangaStudioMCP/internal/apperrors"
	"github.com/Corphon/MangaStudioMCP/internal/llm"
)

// Gateway sampling parameters, fixed for every request.
const (
	gatewayTemperature = 0.7
	gatewayMaxTokens   = 4000
)

// GenerateRequest is one gateway call: a template key, interpolation fields,
// a model, an optional explicit provider and optional page images.
type GenerateRequest struct {
	TemplateKey string
	Provider    string // empty: resolved from the model name
	Model       string
	Fields      map[string]string
	Images      []llm.ImagePart
}

// LLMService is the AI request gateway. It renders one of the fixed prompt
// templates, routes the request to a configured provider and returns the
// single text response. Failures are uniform: the caller gets a typed error
// and no partial result, and the store is never touched from here.
type LLMService struct {
	mu        sync.RWMutex
	providers map[string]llm.Provider
	logger    *zap.Logger
}

// NewLLMService creates a gateway and configures every provider that has
// credentials. Providers whose initialization fails are skipped with a
// warning; their absence surfaces later as a configuration error.
func NewLLMService(providerConfigs map[string]map[string]string, logger *zap.Logger) *LLMService {
	s := &LLMService{
		providers: make(map[string]llm.Provider),
		logger:    logger,
	}
	for name, conf := range providerConfigs {
		if err := s.Configure(name, conf); err != nil {
			logger.Warn("provider not configured",
				zap.String("provider", name),
				zap.Error(err))
		}
	}
	return s
}

// Configure (re)initializes one provider from its settings. Used at startup
// and when credentials change through the settings endpoint.
func (s *LLMService) Configure(name string, conf map[string]string) error {
	provider, err := llm.GetProvider(name, conf)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.providers[name] = provider
	return nil
}

// SetProvider installs a provider instance directly. Used by tests.
func (s *LLMService) SetProvider(name string, p llm.Provider) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.providers[name] = p
}

// Status reports which known providers are configured.
func (s *LLMService) Status() map[string]bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	status := make(map[string]bool)
	for _, name := range llm.ListProviders() {
		_, configured := s.providers[name]
		status[name] = configured
	}
	return status
}

// Generate performs one gateway request and returns the provider's text
// response. Error kinds: validation (unknown template or unrecognized
// model), configuration (provider has no credentials), provider (any
// upstream failure). No retries are attempted.
func (s *LLMService) Generate(ctx context.Context, req GenerateRequest) (string, error) {
	prompt, err := RenderPrompt(req.TemplateKey, req.Fields)
	if err != nil {
		return "", err
	}

	providerName := req.Provider
	if providerName == "" {
		providerName, err = llm.ResolveProvider(req.Model)
		if err != nil {
			return "", apperrors.Validation(
				fmt.Sprintf("unsupported model: %s", req.Model), err)
		}
	}

	s.mu.RLock()
	provider, configured := s.providers[providerName]
	s.mu.RUnlock()

	if !configured {
		if !knownProvider(providerName) {
			return "", apperrors.Validation(
				fmt.Sprintf("unsupported provider: %s", providerName), llm.ErrUnknownProvider)
		}
		err := apperrors.Configuration(
			fmt.Sprintf("API key for %s is not set or invalid, configure it in settings", providerName), nil)
		s.logger.Warn("gateway call rejected", zap.String("provider", providerName), zap.Error(err))
		return "", err
	}

	resp, err := provider.CompleteText(ctx, llm.CompletionRequest{
		Prompt:       prompt,
		SystemPrompt: SystemPrompt,
		Model:        req.Model,
		Images:       req.Images,
		Temperature:  gatewayTemperature,
		MaxTokens:    gatewayMaxTokens,
	})
	if err != nil {
		wrapped := apperrors.Provider(
			fmt.Sprintf("AI model call failed (%s)", req.Model), err)
		s.logger.Warn("gateway call failed",
			zap.String("provider", providerName),
			zap.String("model", req.Model),
			zap.Error(err))
		return "", wrapped
	}

	s.logger.Debug("gateway call completed",
		zap.String("provider", providerName),
		zap.String("model", req.Model),
		zap.Int("tokens_used", resp.TokensUsed))
	return resp.Text, nil
}

func knownProvider(name string) bool {
	for _, registered := range llm.ListProviders() {
		if registered == name {
			return true
		}
	}
	return false
}

// IsNoResult reports whether err is one of the gateway's recoverable
// failures (configuration or provider). Handlers use it to render the
// uniform "no result" warning instead of a hard failure.
func IsNoResult(err error) bool {
	if err == nil {
		return false
	}
	if apperrors.IsKind(err, apperrors.KindConfiguration) {
		return true
	}
	if apperrors.IsKind(err, apperrors.KindProvider) {
		return true
	}
	return errors.Is(err, llm.ErrUnknownProvider)
}
