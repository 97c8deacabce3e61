// internal/app/app.go
package app

import (
	"go.uber.org/zap"

	"github.com/Corphon/MangaStudioMCP/internal/config"
	"github.com/Corphon/MangaStudioMCP/internal/di"
	"github.com/Corphon/MangaStudioMCP/internal/ingest"
	"github.com/Corphon/MangaStudioMCP/internal/services"
	"github.com/Corphon/MangaStudioMCP/internal/store"

	// Provider self-registration.
	_ "github.com/Corphon/MangaStudioMCP/internal/llm/providers/google"
	_ "github.com/Corphon/MangaStudioMCP/internal/llm/providers/openai"
)

// InitServices builds every service in dependency order and registers them
// in the container under the names the router resolves.
func InitServices(cfg *config.AppConfig, logger *zap.Logger) (*di.Container, error) {
	container := di.GetContainer()

	st := store.New()
	container.Register("store", st)

	schedule := services.NewScheduleService()
	container.Register("schedule", schedule)

	llmService := services.NewLLMService(cfg.Providers, logger)
	container.Register("llm", llmService)

	container.Register("project", services.NewProjectService(st, schedule))
	container.Register("team", services.NewTeamService(st, schedule))
	container.Register("creative", services.NewCreativeService(llmService, st, logger))
	container.Register("evaluation", services.NewEvaluationService(llmService, st, logger))
	container.Register("export", services.NewExportService(st, cfg.DataDir))
	container.Register("stats", services.NewStatsService(st))

	// PDF rasterization needs an external renderer; uploads accept text and
	// image pages without one.
	container.Register("ingest", ingest.NewProcessor(nil))

	logger.Info("services initialized", zap.Strings("services", container.GetNames()))
	return container, nil
}
