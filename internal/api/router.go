// internal/api/router.go
package api

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Corphon/MangaStudioMCP/internal/di"
	"github.com/Corphon/MangaStudioMCP/internal/ingest"
	"github.com/Corphon/MangaStudioMCP/internal/services"
	"github.com/Corphon/MangaStudioMCP/internal/store"
)

// SetupRouter resolves the services from the container and wires every
// route. It fails fast when a required service is missing or mistyped.
func SetupRouter(container *di.Container, logger *zap.Logger, debug bool) (*gin.Engine, error) {
	st, err := resolve[*store.Store](container, "store")
	if err != nil {
		return nil, err
	}
	projects, err := resolve[*services.ProjectService](container, "project")
	if err != nil {
		return nil, err
	}
	team, err := resolve[*services.TeamService](container, "team")
	if err != nil {
		return nil, err
	}
	creative, err := resolve[*services.CreativeService](container, "creative")
	if err != nil {
		return nil, err
	}
	evaluation, err := resolve[*services.EvaluationService](container, "evaluation")
	if err != nil {
		return nil, err
	}
	export, err := resolve[*services.ExportService](container, "export")
	if err != nil {
		return nil, err
	}
	stats, err := resolve[*services.StatsService](container, "stats")
	if err != nil {
		return nil, err
	}
	llmService, err := resolve[*services.LLMService](container, "llm")
	if err != nil {
		return nil, err
	}
	ingestor, err := resolve[*ingest.Processor](container, "ingest")
	if err != nil {
		return nil, err
	}

	handler := NewHandler(st, projects, team, creative, evaluation, export, stats, llmService, ingestor, logger)
	return NewRouter(handler, logger, debug), nil
}

// NewRouter builds the gin engine around an already constructed handler.
// Split out so tests can wire a handler directly.
func NewRouter(handler *Handler, logger *zap.Logger, debug bool) *gin.Engine {
	if debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestLogger(logger))
	router.Use(corsMiddleware())

	router.GET("/health", handler.HealthCheck)
	router.GET("/ws/evaluations/:id/progress", handler.EvaluationProgressWS)

	api := router.Group("/api")
	{
		api.GET("/dashboard", handler.GetDashboard)
		api.GET("/stats", handler.GetStats)

		api.GET("/settings", handler.GetSettings)
		api.PUT("/settings", handler.UpdateSettings)
		api.POST("/session/reset", handler.ResetSession)

		projects := api.Group("/projects")
		{
			projects.GET("", handler.ListProjects)
			projects.POST("", handler.CreateProject)
			projects.GET("/:id", handler.GetProject)
			projects.DELETE("/:id", handler.DeleteProject)
			projects.GET("/:id/gantt", handler.GetGantt)
			projects.GET("/:id/progress", handler.GetProgress)
			projects.GET("/:id/triage", handler.GetTriage)
			projects.POST("/:id/tasks", handler.AddTask)
			projects.PUT("/:id/tasks/:taskId/status", handler.UpdateTaskStatus)
			projects.DELETE("/:id/tasks/:taskId", handler.DeleteTask)
		}

		team := api.Group("/team")
		{
			team.GET("/members", handler.ListMembers)
			team.POST("/members", handler.AddMember)
			team.DELETE("/members/:name", handler.RemoveMember)
			team.GET("/workload", handler.GetWorkload)
		}

		creative := api.Group("/creative")
		{
			creative.POST("/ideas/generate", handler.GenerateIdea)
			creative.POST("/ideas/generate-detailed", handler.GenerateDetailedIdea)
			creative.GET("/ideas", handler.ListIdeas)
			creative.POST("/ideas", handler.SaveIdea)
			creative.DELETE("/ideas/:id", handler.DeleteIdea)

			creative.POST("/scenarios/generate", handler.GenerateScenario)

			creative.POST("/characters/generate", handler.GenerateCharacter)
			creative.GET("/characters", handler.ListCharacters)
			creative.DELETE("/characters/:id", handler.DeleteCharacter)

			creative.POST("/worlds/generate", handler.GenerateWorld)
			creative.GET("/worlds", handler.ListWorldSettings)
			creative.POST("/worlds", handler.SaveWorldSetting)
			creative.DELETE("/worlds/:id", handler.DeleteWorldSetting)
			creative.POST("/worlds/map-guide", handler.GenerateMapGuide)
		}

		evaluations := api.Group("/evaluations")
		{
			evaluations.GET("/options", handler.GetEvaluationOptions)
			evaluations.POST("/overall", handler.EvaluateOverall)
			evaluations.POST("/pages", handler.EvaluatePages)
			evaluations.POST("/upload", handler.UploadContent)
			evaluations.GET("/history", handler.GetEvaluationHistory)
			evaluations.DELETE("/history/:id", handler.DeleteEvaluation)
			evaluations.DELETE("/history", handler.ClearEvaluations)
		}

		api.GET("/export", handler.ExportData)
	}

	return router
}

// resolve pulls a named service from the container with its concrete type.
func resolve[T any](container *di.Container, name string) (T, error) {
	var zero T
	raw := container.Get(name)
	if raw == nil {
		return zero, fmt.Errorf("service %q is not registered", name)
	}
	typed, ok := raw.(T)
	if !ok {
		return zero, fmt.Errorf("service %q has unexpected type %T", name, raw)
	}
	return typed, nil
}
