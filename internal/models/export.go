// internal/models/export.go
package models

import "time"

// Export category keys. An export document carries one key per selected
// category plus the exported_at timestamp.
const (
	ExportProjects    = "projects"
	ExportAllTasks    = "all_tasks"
	ExportCharacters  = "characters"
	ExportWorlds      = "world_settings"
	ExportIdeaBank    = "idea_bank"
	ExportEvaluations = "evaluation_results"
)

// ExportCategories lists every exportable category.
var ExportCategories = []string{
	ExportProjects,
	ExportAllTasks,
	ExportCharacters,
	ExportWorlds,
	ExportIdeaBank,
	ExportEvaluations,
}

// ExportDocument is the typed view of an export file. Categories that were
// not selected stay at their zero value when decoding.
type ExportDocument struct {
	ExportedAt        time.Time          `json:"exported_at"`
	Projects          []Project          `json:"projects,omitempty"`
	AllTasks          []Task             `json:"all_tasks,omitempty"`
	Characters        []Character        `json:"characters,omitempty"`
	WorldSettings     []WorldSetting     `json:"world_settings,omitempty"`
	IdeaBank          []IdeaEntry        `json:"idea_bank,omitempty"`
	EvaluationResults []EvaluationResult `json:"evaluation_results,omitempty"`
}
