// internal/services/project_service.go
package services

import (
	"fmt"
	"time"

	"github.com/Corphon/MangaStudioMCP/internal/models"
	"github.com/Corphon/MangaStudioMCP/internal/store"
)

// DashboardSummary is the headline metric block of the dashboard view.
type DashboardSummary struct {
	TotalProjects     int      `json:"total_projects"`
	ActiveProjects    int      `json:"active_projects"`
	UpcomingDeadlines int      `json:"upcoming_deadlines"`
	TeamMembers       int      `json:"team_members"`
	RecentActivity    []string `json:"recent_activity"`
}

// ProjectService orchestrates project and task operations over the store
// and builds the dashboard projection.
type ProjectService struct {
	Store    *store.Store
	Schedule *ScheduleService
}

func NewProjectService(st *store.Store, schedule *ScheduleService) *ProjectService {
	return &ProjectService{Store: st, Schedule: schedule}
}

// Create creates a project, optionally expanding the task template of its
// project type.
func (s *ProjectService) Create(input store.ProjectInput, useTemplate bool) (models.Project, error) {
	return s.Store.CreateProject(input, useTemplate)
}

// List returns all projects.
func (s *ProjectService) List() []models.Project {
	return s.Store.Projects()
}

// Get returns one project by id.
func (s *ProjectService) Get(id string) (models.Project, error) {
	return s.Store.Project(id)
}

// Delete removes a project by id.
func (s *ProjectService) Delete(id string) error {
	return s.Store.DeleteProject(id)
}

// AddTask appends a task to a project.
func (s *ProjectService) AddTask(projectID string, input store.TaskInput) (models.Task, error) {
	return s.Store.AddTask(projectID, input)
}

// UpdateTaskStatus changes one task's status.
func (s *ProjectService) UpdateTaskStatus(projectID, taskID string, status models.TaskStatus) error {
	return s.Store.UpdateTaskStatus(projectID, taskID, status)
}

// DeleteTask removes one task.
func (s *ProjectService) DeleteTask(projectID, taskID string) error {
	return s.Store.DeleteTask(projectID, taskID)
}

// Gantt returns the timeline view of one project.
func (s *ProjectService) Gantt(projectID string) ([]GanttBar, error) {
	project, err := s.Store.Project(projectID)
	if err != nil {
		return nil, err
	}
	return s.Schedule.GanttBars(project), nil
}

// Progress returns the status partition of one project.
func (s *ProjectService) Progress(projectID string) (ProgressSummary, error) {
	project, err := s.Store.Project(projectID)
	if err != nil {
		return ProgressSummary{}, err
	}
	return s.Schedule.Progress(project), nil
}

// Triage returns the deadline alert view of one project as of now.
func (s *ProjectService) Triage(projectID string) (TriageReport, error) {
	project, err := s.Store.Project(projectID)
	if err != nil {
		return TriageReport{}, err
	}
	return s.Schedule.DeadlineTriage(project, models.NewDate(time.Now())), nil
}

// Dashboard assembles the headline metrics and the recent-activity feed
// (the five most recently created projects, newest first).
func (s *ProjectService) Dashboard() DashboardSummary {
	projects := s.Store.Projects()

	active := 0
	for _, p := range projects {
		if p.Status == models.ProjectInProgress {
			active++
		}
	}

	recent := []string{}
	start := len(projects) - 5
	if start < 0 {
		start = 0
	}
	for i := len(projects) - 1; i >= start; i-- {
		p := projects[i]
		recent = append(recent, fmt.Sprintf("%q created on %s",
			p.Title, p.CreatedAt.Format("2006-01-02 15:04")))
	}

	return DashboardSummary{
		TotalProjects:     len(projects),
		ActiveProjects:    active,
		UpcomingDeadlines: s.Store.UpcomingDeadlineCount(DeadlineWindowDays),
		TeamMembers:       len(s.Store.Members()),
		RecentActivity:    recent,
	}
}
