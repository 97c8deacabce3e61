// internal/services/schedule_service.go
package services

import (
	"sort"

	"github.com/Corphon/MangaStudioMCP/internal/models"
)

// DeadlineWindowDays is the "due soon" horizon for triage and dashboard
// deadline counting.
const DeadlineWindowDays = 7

// GanttBar is one timeline bar of the schedule view.
type GanttBar struct {
	TaskName string      `json:"task_name"`
	Assignee string      `json:"assignee"`
	Start    models.Date `json:"start"`
	End      models.Date `json:"end"`
}

// ProgressSummary partitions a project's tasks by status.
type ProgressSummary struct {
	Done       int     `json:"done"`
	InProgress int     `json:"in_progress"`
	NotStarted int     `json:"not_started"`
	OnHold     int     `json:"on_hold"`
	Total      int     `json:"total"`
	Ratio      float64 `json:"ratio"` // done / total, 0 when no tasks
}

// WorkloadEntry is one assignee's cross-project task counts by status.
type WorkloadEntry struct {
	Assignee   string `json:"assignee"`
	Done       int    `json:"done"`
	InProgress int    `json:"in_progress"`
	NotStarted int    `json:"not_started"`
	OnHold     int    `json:"on_hold"`
}

// TriageItem is an open task annotated with its signed day offset from
// today: negative means overdue by that many days.
type TriageItem struct {
	Task     models.Task `json:"task"`
	DaysLeft int         `json:"days_left"`
}

// TriageReport partitions a project's open tasks into overdue and due-soon.
type TriageReport struct {
	Overdue []TriageItem `json:"overdue"`
	DueSoon []TriageItem `json:"due_soon"`
}

// ScheduleService computes the derived scheduling views. Every view is a
// pure recomputation over the store's current state; nothing is cached.
type ScheduleService struct{}

func NewScheduleService() *ScheduleService {
	return &ScheduleService{}
}

// GanttBars maps each task of a project to a timeline bar. An empty task
// list yields an empty slice.
func (s *ScheduleService) GanttBars(project models.Project) []GanttBar {
	bars := make([]GanttBar, 0, len(project.Tasks))
	for _, t := range project.Tasks {
		bars = append(bars, GanttBar{
			TaskName: t.Name,
			Assignee: t.Assignee,
			Start:    t.StartDate,
			End:      t.EndDate,
		})
	}
	return bars
}

// Progress partitions a project's tasks into status counts for the stacked
// progress bar.
func (s *ScheduleService) Progress(project models.Project) ProgressSummary {
	summary := ProgressSummary{Total: len(project.Tasks)}
	for _, t := range project.Tasks {
		switch t.Status {
		case models.TaskDone:
			summary.Done++
		case models.TaskInProgress:
			summary.InProgress++
		case models.TaskOnHold:
			summary.OnHold++
		default:
			summary.NotStarted++
		}
	}
	if summary.Total > 0 {
		summary.Ratio = float64(summary.Done) / float64(summary.Total)
	}
	return summary
}

// Workload groups every task across all projects by (assignee, status).
// No tasks at all yields an empty slice. Entries are sorted by assignee
// for stable chart output.
func (s *ScheduleService) Workload(projects []models.Project) []WorkloadEntry {
	byAssignee := map[string]*WorkloadEntry{}
	for _, p := range projects {
		for _, t := range p.Tasks {
			entry, ok := byAssignee[t.Assignee]
			if !ok {
				entry = &WorkloadEntry{Assignee: t.Assignee}
				byAssignee[t.Assignee] = entry
			}
			switch t.Status {
			case models.TaskDone:
				entry.Done++
			case models.TaskInProgress:
				entry.InProgress++
			case models.TaskOnHold:
				entry.OnHold++
			default:
				entry.NotStarted++
			}
		}
	}

	entries := make([]WorkloadEntry, 0, len(byAssignee))
	for _, entry := range byAssignee {
		entries = append(entries, *entry)
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Assignee < entries[j].Assignee
	})
	return entries
}

// DeadlineTriage partitions a project's open tasks into overdue
// (days_left < 0) and due within the window (0 <= days_left <= 7), each
// annotated with the signed day offset. Done tasks and tasks without an
// end date appear in neither list.
func (s *ScheduleService) DeadlineTriage(project models.Project, today models.Date) TriageReport {
	report := TriageReport{
		Overdue: []TriageItem{},
		DueSoon: []TriageItem{},
	}
	for _, t := range project.Tasks {
		if t.Status == models.TaskDone || t.EndDate.IsZero() {
			continue
		}
		daysLeft := t.EndDate.DaysUntil(today)
		item := TriageItem{Task: t, DaysLeft: daysLeft}
		switch {
		case daysLeft < 0:
			report.Overdue = append(report.Overdue, item)
		case daysLeft <= DeadlineWindowDays:
			report.DueSoon = append(report.DueSoon, item)
		}
	}
	return report
}
