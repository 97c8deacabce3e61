// internal/services/stats_service_test.go
package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Corphon/MangaStudioMCP/internal/models"
	"github.com/Corphon/MangaStudioMCP/internal/store"
)

func TestProjectStatsAggregation(t *testing.T) {
	st := store.New()

	_, err := st.CreateProject(store.ProjectInput{Title: "A", Genre: "action"}, false)
	require.NoError(t, err)
	_, err = st.CreateProject(store.ProjectInput{Title: "B", Genre: "action"}, false)
	require.NoError(t, err)
	withTasks, err := st.CreateProject(store.ProjectInput{
		Title: "C", Genre: "romance", Type: store.TypeOneShot,
	}, true)
	require.NoError(t, err)

	stats := NewStatsService(st).ProjectStats()

	assert.Equal(t, 3, stats.StatusCounts[models.ProjectInProgress])
	assert.Equal(t, 2, stats.GenreCounts["action"])
	assert.Equal(t, 1, stats.GenreCounts["romance"])
	assert.Equal(t, len(withTasks.Tasks), stats.TaskCount)
}

func TestProjectStatsSkipsEmptyGenre(t *testing.T) {
	st := store.New()
	_, err := st.CreateProject(store.ProjectInput{Title: "A"}, false)
	require.NoError(t, err)

	stats := NewStatsService(st).ProjectStats()
	assert.Empty(t, stats.GenreCounts)
}
