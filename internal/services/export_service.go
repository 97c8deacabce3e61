// internal/services/export_service.go
package services

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/Corphon/MangaStudioMCP/internal/apperrors"
	"github.com/Corphon/MangaStudioMCP/internal/models"
	"github.com/Corphon/MangaStudioMCP/internal/store"
)

// ExportService serializes selected session collections into a single JSON
// document with a top-level exported_at timestamp and one key per selected
// category.
type ExportService struct {
	Store   *store.Store
	DataDir string
}

func NewExportService(st *store.Store, dataDir string) *ExportService {
	return &ExportService{Store: st, DataDir: dataDir}
}

// Build assembles the export document. Unknown categories are a validation
// error; an empty selection exports every category.
func (s *ExportService) Build(categories []string) (map[string]interface{}, error) {
	if len(categories) == 0 {
		categories = models.ExportCategories
	}

	doc := map[string]interface{}{
		"exported_at": time.Now().Format(time.RFC3339),
	}

	for _, category := range categories {
		switch category {
		case models.ExportProjects:
			doc[category] = s.Store.Projects()
		case models.ExportAllTasks:
			doc[category] = s.Store.AllTasks()
		case models.ExportCharacters:
			doc[category] = s.Store.Characters()
		case models.ExportWorlds:
			doc[category] = s.Store.WorldSettings()
		case models.ExportIdeaBank:
			doc[category] = s.Store.Ideas()
		case models.ExportEvaluations:
			doc[category] = s.Store.Evaluations()
		default:
			return nil, apperrors.Validation(
				fmt.Sprintf("unknown export category %q", category), nil)
		}
	}

	return doc, nil
}

// BuildJSON renders the export document as indented JSON.
func (s *ExportService) BuildJSON(categories []string) ([]byte, error) {
	doc, err := s.Build(categories)
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(doc, "", "  ")
}

// SaveToDataDir writes the export document under <data dir>/exports and
// returns the file path and size.
func (s *ExportService) SaveToDataDir(categories []string) (string, int64, error) {
	data, err := s.BuildJSON(categories)
	if err != nil {
		return "", 0, err
	}

	exportDir := filepath.Join(s.DataDir, "exports")
	if err := os.MkdirAll(exportDir, 0755); err != nil {
		return "", 0, apperrors.Internal("failed to create export directory", err)
	}

	fileName := fmt.Sprintf("manga_studio_export_%s.json", time.Now().Format("20060102_150405"))
	filePath := filepath.Join(exportDir, fileName)
	if err := os.WriteFile(filePath, data, 0644); err != nil {
		return "", 0, apperrors.Internal("failed to write export file", err)
	}

	return filePath, int64(len(data)), nil
}
