// internal/services/export_service_test.go
package services

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Corphon/MangaStudioMCP/internal/apperrors"
	"github.com/Corphon/MangaStudioMCP/internal/models"
	"github.com/Corphon/MangaStudioMCP/internal/store"
)

func populatedStore(t *testing.T) *store.Store {
	t.Helper()
	st := store.New()

	first, err := st.CreateProject(store.ProjectInput{Title: "Moonlit Blade", Genre: "action"}, false)
	require.NoError(t, err)
	second, err := st.CreateProject(store.ProjectInput{Title: "Cafe Terrace", Genre: "slice_of_life"}, false)
	require.NoError(t, err)

	start, err := models.ParseDate("2026-06-01")
	require.NoError(t, err)
	_, err = st.AddTask(first.ID, store.TaskInput{Name: "Name drafting", Assignee: "Writer", StartDate: start, DurationDays: 4})
	require.NoError(t, err)
	_, err = st.AddTask(first.ID, store.TaskInput{Name: "Inking", Assignee: "Artist", StartDate: start, DurationDays: 6})
	require.NoError(t, err)
	_, err = st.AddTask(second.ID, store.TaskInput{Name: "Plot", Assignee: "Writer", StartDate: start, DurationDays: 2})
	require.NoError(t, err)

	st.AddIdea("isekai cafe", "a barista reborn in another world")
	st.AddCharacter("Rin", "stoic swordswoman")
	st.AddWorldSetting("Floating Capital", "a city above the clouds")
	st.AppendEvaluation(models.EvaluationResult{Type: models.EvaluationOverall, Result: "good pacing"})
	return st
}

func TestExportRoundTrip(t *testing.T) {
	st := populatedStore(t)
	svc := NewExportService(st, t.TempDir())

	data, err := svc.BuildJSON(nil)
	require.NoError(t, err)

	var doc models.ExportDocument
	require.NoError(t, json.Unmarshal(data, &doc))

	assert.False(t, doc.ExportedAt.IsZero())

	want := st.Projects()
	require.Len(t, doc.Projects, len(want))
	for i, p := range want {
		assert.Equal(t, p.ID, doc.Projects[i].ID)
		assert.Equal(t, p.Title, doc.Projects[i].Title)
		assert.Equal(t, p.Tasks, doc.Projects[i].Tasks)
	}
	assert.Equal(t, st.AllTasks(), doc.AllTasks)
	require.Len(t, doc.IdeaBank, 1)
	assert.Equal(t, "isekai cafe", doc.IdeaBank[0].Title)
	require.Len(t, doc.Characters, 1)
	require.Len(t, doc.WorldSettings, 1)
	require.Len(t, doc.EvaluationResults, 1)
}

func TestExportSelectedCategories(t *testing.T) {
	svc := NewExportService(populatedStore(t), t.TempDir())

	doc, err := svc.Build([]string{models.ExportProjects})
	require.NoError(t, err)

	assert.Contains(t, doc, "exported_at")
	assert.Contains(t, doc, models.ExportProjects)
	assert.NotContains(t, doc, models.ExportAllTasks)
	assert.NotContains(t, doc, models.ExportIdeaBank)
}

func TestExportUnknownCategory(t *testing.T) {
	svc := NewExportService(store.New(), t.TempDir())

	_, err := svc.Build([]string{"secrets"})
	require.Error(t, err)
	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
}

func TestExportSaveToDataDir(t *testing.T) {
	dataDir := t.TempDir()
	svc := NewExportService(populatedStore(t), dataDir)

	path, size, err := svc.SaveToDataDir(nil)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dataDir, "exports"), filepath.Dir(path))
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, info.Size(), size)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var doc models.ExportDocument
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Len(t, doc.Projects, 2)
	assert.Len(t, doc.AllTasks, 3)
}
