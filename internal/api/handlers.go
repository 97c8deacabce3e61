// internal/api/handlers.go
package api

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Corphon/MangaStudioMCP/internal/apperrors"
	"github.com/Corphon/MangaStudioMCP/internal/config"
	"github.com/Corphon/MangaStudioMCP/internal/ingest"
	"github.com/Corphon/MangaStudioMCP/internal/services"
	"github.com/Corphon/MangaStudioMCP/internal/store"
)

// Handler carries the service dependencies of every HTTP endpoint.
type Handler struct {
	Store      *store.Store
	Projects   *services.ProjectService
	Team       *services.TeamService
	Creative   *services.CreativeService
	Evaluation *services.EvaluationService
	Export     *services.ExportService
	Stats      *services.StatsService
	LLM        *services.LLMService
	Ingest     *ingest.Processor
	Broker     *ProgressBroker
	Logger     *zap.Logger
	Response   *ResponseHelper
}

func NewHandler(
	st *store.Store,
	projects *services.ProjectService,
	team *services.TeamService,
	creative *services.CreativeService,
	evaluation *services.EvaluationService,
	export *services.ExportService,
	stats *services.StatsService,
	llm *services.LLMService,
	ingestor *ingest.Processor,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		Store:      st,
		Projects:   projects,
		Team:       team,
		Creative:   creative,
		Evaluation: evaluation,
		Export:     export,
		Stats:      stats,
		LLM:        llm,
		Ingest:     ingestor,
		Broker:     NewProgressBroker(),
		Logger:     logger,
		Response:   NewResponseHelper(),
	}
}

// HealthCheck reports liveness plus the configured provider status.
func (h *Handler) HealthCheck(c *gin.Context) {
	h.Response.Success(c, gin.H{
		"status":    "ok",
		"providers": h.LLM.Status(),
	})
}

// GetDashboard returns the landing summary.
func (h *Handler) GetDashboard(c *gin.Context) {
	h.Response.Success(c, h.Projects.Dashboard())
}

// GetStats returns aggregate project statistics.
func (h *Handler) GetStats(c *gin.Context) {
	h.Response.Success(c, h.Stats.ProjectStats())
}

// GetSettings returns the provider configuration with API keys masked.
func (h *Handler) GetSettings(c *gin.Context) {
	cfg := config.GetCurrentConfig()
	providers := make(map[string]gin.H, len(cfg.Providers))
	for name, conf := range cfg.Providers {
		providers[name] = gin.H{
			"default_model": conf["default_model"],
			"configured":    conf["api_key"] != "",
		}
	}
	h.Response.Success(c, gin.H{
		"port":      cfg.Port,
		"debug":     cfg.DebugMode,
		"providers": providers,
	})
}

// UpdateSettings persists provider credentials and reconfigures the gateway.
func (h *Handler) UpdateSettings(c *gin.Context) {
	var req struct {
		Provider string `json:"provider"`
		APIKey   string `json:"api_key"`
		Model    string `json:"model"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Response.Error(c, apperrors.Validation("invalid request body", err))
		return
	}
	if req.Provider != config.ProviderOpenAI && req.Provider != config.ProviderGoogle {
		h.Response.Error(c, apperrors.Validation("unknown provider: "+req.Provider, nil))
		return
	}
	conf := map[string]string{"api_key": req.APIKey}
	if req.Model != "" {
		conf["default_model"] = req.Model
	}
	if err := config.UpdateProviderConfig(req.Provider, conf); err != nil {
		h.Response.Error(c, err)
		return
	}
	if err := h.LLM.Configure(req.Provider, conf); err != nil {
		h.Logger.Warn("provider reconfiguration failed", zap.String("provider", req.Provider), zap.Error(err))
	}
	h.Response.Success(c, gin.H{"provider": req.Provider, "configured": req.APIKey != ""})
}

// ResetSession wipes all in-memory state back to defaults.
func (h *Handler) ResetSession(c *gin.Context) {
	h.Store.Reset()
	h.Logger.Info("session state reset")
	h.Response.Success(c, nil, "session reset")
}
