// internal/services/stats_service.go
package services

import (
	"github.com/Corphon/MangaStudioMCP/internal/models"
	"github.com/Corphon/MangaStudioMCP/internal/store"
)

// ProjectStats is the analytics view over all projects.
type ProjectStats struct {
	StatusCounts map[models.ProjectStatus]int `json:"status_counts"`
	GenreCounts  map[string]int               `json:"genre_counts"`
	TaskCount    int                          `json:"task_count"`
}

// StatsService computes analytics-and-report projections.
type StatsService struct {
	Store *store.Store
}

func NewStatsService(st *store.Store) *StatsService {
	return &StatsService{Store: st}
}

// ProjectStats aggregates project status and genre distributions.
func (s *StatsService) ProjectStats() ProjectStats {
	stats := ProjectStats{
		StatusCounts: map[models.ProjectStatus]int{},
		GenreCounts:  map[string]int{},
	}
	for _, p := range s.Store.Projects() {
		stats.StatusCounts[p.Status]++
		if p.Genre != "" {
			stats.GenreCounts[p.Genre]++
		}
		stats.TaskCount += len(p.Tasks)
	}
	return stats
}
