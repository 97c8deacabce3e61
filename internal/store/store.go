// internal/store/store.go
package store

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Corphon/MangaStudioMCP/internal/apperrors"
	"github.com/Corphon/MangaStudioMCP/internal/models"
)

// DefaultMembers is the team roster a fresh session starts with.
var DefaultMembers = []string{"Writer", "Artist", "Assistant", "Editor"}

// Store is the in-memory session store. It owns every session entity:
// projects with their tasks, the team roster, the idea bank, characters,
// world settings and the evaluation history. Nothing is persisted; the
// store lives and dies with the process. All records carry stable UUIDs
// assigned at creation, and every update/delete keys off the id.
type Store struct {
	mu sync.RWMutex

	projects    []models.Project
	members     []string
	ideas       []models.IdeaEntry
	characters  []models.Character
	worlds      []models.WorldSetting
	evaluations []models.EvaluationResult

	now func() time.Time
}

// New creates a store with the default team roster.
func New() *Store {
	return NewWithClock(time.Now)
}

// NewWithClock creates a store with an injected clock. Used by tests.
func NewWithClock(now func() time.Time) *Store {
	s := &Store{now: now}
	s.reset()
	return s
}

// Reset reinitializes the session to its default state.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reset()
}

func (s *Store) reset() {
	s.projects = nil
	s.ideas = nil
	s.characters = nil
	s.worlds = nil
	s.evaluations = nil
	s.members = append([]string(nil), DefaultMembers...)
}

// ---- Projects ----

// ProjectInput carries the fields of the new-project form.
type ProjectInput struct {
	Title       string          `json:"title"`
	Type        string          `json:"type"`
	Genre       string          `json:"genre"`
	Deadline    models.Date     `json:"deadline"`
	Assignee    string          `json:"assignee"`
	Priority    models.Priority `json:"priority"`
	Description string          `json:"description"`
}

// CreateProject appends a new project. Only the title is validated; duplicate
// titles are allowed since identity is the generated id. When useTemplate is
// set and the project type has a task template, the template expands into a
// chained task list starting at creation time.
func (s *Store) CreateProject(input ProjectInput, useTemplate bool) (models.Project, error) {
	if input.Title == "" {
		return models.Project{}, apperrors.Validation("project title must not be empty", nil)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	createdAt := s.now()
	priority := input.Priority
	if priority == "" {
		priority = models.PriorityMid
	}

	project := models.Project{
		ID:          uuid.NewString(),
		Title:       input.Title,
		Type:        input.Type,
		Genre:       input.Genre,
		Deadline:    input.Deadline,
		Assignee:    input.Assignee,
		Priority:    priority,
		Description: input.Description,
		Status:      models.ProjectInProgress,
		CreatedAt:   createdAt,
	}

	if useTemplate {
		if templates, ok := TaskTemplates[input.Type]; ok {
			start := models.NewDate(createdAt)
			for _, tpl := range templates {
				end := start.AddDays(tpl.DurationDays)
				project.Tasks = append(project.Tasks, models.Task{
					ID:           uuid.NewString(),
					Name:         tpl.Name,
					Assignee:     tpl.Assignee,
					StartDate:    start,
					EndDate:      end,
					Status:       models.TaskNotStarted,
					DurationDays: tpl.DurationDays,
				})
				start = end
			}
		}
	}

	s.projects = append(s.projects, project)
	return project.Clone(), nil
}

// Projects returns deep copies of every project, in insertion order.
func (s *Store) Projects() []models.Project {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Project, 0, len(s.projects))
	for _, p := range s.projects {
		out = append(out, p.Clone())
	}
	return out
}

// Project returns the project with the given id.
func (s *Store) Project(id string) (models.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, p := range s.projects {
		if p.ID == id {
			return p.Clone(), nil
		}
	}
	return models.Project{}, apperrors.NotFound(fmt.Sprintf("project %s not found", id), nil)
}

// ProjectByTitle returns the first project with the given title. Linear
// scan; convenience only, id lookup is authoritative.
func (s *Store) ProjectByTitle(title string) (models.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, p := range s.projects {
		if p.Title == title {
			return p.Clone(), nil
		}
	}
	return models.Project{}, apperrors.NotFound(fmt.Sprintf("project %q not found", title), nil)
}

// DeleteProject removes a project by id.
func (s *Store) DeleteProject(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, p := range s.projects {
		if p.ID == id {
			s.projects = append(s.projects[:i], s.projects[i+1:]...)
			return nil
		}
	}
	return apperrors.NotFound(fmt.Sprintf("project %s not found", id), nil)
}

// ---- Tasks ----

// TaskInput carries the fields of the add-task form.
type TaskInput struct {
	Name         string      `json:"name"`
	Assignee     string      `json:"assignee"`
	StartDate    models.Date `json:"start_date"`
	DurationDays int         `json:"duration"`
}

// AddTask appends a task to a project. The end date is derived from the
// start date and duration; status starts at not_started. The assignee is
// stored verbatim whether or not it names a known team member.
func (s *Store) AddTask(projectID string, input TaskInput) (models.Task, error) {
	if input.Name == "" {
		return models.Task{}, apperrors.Validation("task name must not be empty", nil)
	}
	if input.DurationDays < 0 {
		return models.Task{}, apperrors.Validation("task duration must not be negative", nil)
	}
	if input.StartDate.IsZero() {
		return models.Task{}, apperrors.Validation("task start date must be set", nil)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.projects {
		if s.projects[i].ID != projectID {
			continue
		}
		task := models.Task{
			ID:           uuid.NewString(),
			Name:         input.Name,
			Assignee:     input.Assignee,
			StartDate:    input.StartDate,
			EndDate:      input.StartDate.AddDays(input.DurationDays),
			Status:       models.TaskNotStarted,
			DurationDays: input.DurationDays,
		}
		s.projects[i].Tasks = append(s.projects[i].Tasks, task)
		return task, nil
	}
	return models.Task{}, apperrors.NotFound(fmt.Sprintf("project %s not found", projectID), nil)
}

// UpdateTaskStatus sets a task's status in place. Any status may follow any
// other; only the value itself is validated.
func (s *Store) UpdateTaskStatus(projectID, taskID string, status models.TaskStatus) error {
	if !models.ValidTaskStatus(status) {
		return apperrors.Validation(fmt.Sprintf("unknown task status %q", status), nil)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.projects {
		if s.projects[i].ID != projectID {
			continue
		}
		for j := range s.projects[i].Tasks {
			if s.projects[i].Tasks[j].ID == taskID {
				s.projects[i].Tasks[j].Status = status
				return nil
			}
		}
		return apperrors.NotFound(fmt.Sprintf("task %s not found", taskID), nil)
	}
	return apperrors.NotFound(fmt.Sprintf("project %s not found", projectID), nil)
}

// DeleteTask removes a task from its project by id.
func (s *Store) DeleteTask(projectID, taskID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.projects {
		if s.projects[i].ID != projectID {
			continue
		}
		tasks := s.projects[i].Tasks
		for j := range tasks {
			if tasks[j].ID == taskID {
				s.projects[i].Tasks = append(tasks[:j], tasks[j+1:]...)
				return nil
			}
		}
		return apperrors.NotFound(fmt.Sprintf("task %s not found", taskID), nil)
	}
	return apperrors.NotFound(fmt.Sprintf("project %s not found", projectID), nil)
}

// AllTasks returns every task across all projects, in project order.
func (s *Store) AllTasks() []models.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.Task
	for _, p := range s.projects {
		out = append(out, p.Tasks...)
	}
	return out
}

// UpcomingDeadlineCount counts open tasks whose end date falls within
// [today, today+windowDays], both ends inclusive. Tasks without an end date
// are skipped.
func (s *Store) UpcomingDeadlineCount(windowDays int) int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	today := models.NewDate(s.now())
	limit := today.AddDays(windowDays)

	count := 0
	for _, p := range s.projects {
		for _, t := range p.Tasks {
			if t.Status == models.TaskDone || t.EndDate.IsZero() {
				continue
			}
			if !t.EndDate.Before(today.Time) && !t.EndDate.After(limit.Time) {
				count++
			}
		}
	}
	return count
}

// ---- Team ----

// Members returns the team roster in insertion order.
func (s *Store) Members() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string(nil), s.members...)
}

// AddMember adds a name to the roster. Duplicates are silently ignored.
func (s *Store) AddMember(name string) error {
	if name == "" {
		return apperrors.Validation("member name must not be empty", nil)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, m := range s.members {
		if m == name {
			return nil
		}
	}
	s.members = append(s.members, name)
	return nil
}

// RemoveMember deletes a name from the roster. Tasks referencing the name
// keep their assignee verbatim; no cascading repair is attempted.
func (s *Store) RemoveMember(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, m := range s.members {
		if m == name {
			s.members = append(s.members[:i], s.members[i+1:]...)
			return nil
		}
	}
	return apperrors.NotFound(fmt.Sprintf("member %q not found", name), nil)
}

// ---- Idea bank ----

// AddIdea appends an idea bank entry.
func (s *Store) AddIdea(title, content string) models.IdeaEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry := models.IdeaEntry{
		ID:        uuid.NewString(),
		Title:     title,
		Content:   content,
		CreatedAt: s.now(),
	}
	s.ideas = append(s.ideas, entry)
	return entry
}

// Ideas returns the idea bank in insertion order.
func (s *Store) Ideas() []models.IdeaEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.IdeaEntry(nil), s.ideas...)
}

// DeleteIdea removes an idea bank entry by id.
func (s *Store) DeleteIdea(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, e := range s.ideas {
		if e.ID == id {
			s.ideas = append(s.ideas[:i], s.ideas[i+1:]...)
			return nil
		}
	}
	return apperrors.NotFound(fmt.Sprintf("idea %s not found", id), nil)
}

// ---- Characters ----

// AddCharacter appends a character sheet.
func (s *Store) AddCharacter(name, details string) models.Character {
	s.mu.Lock()
	defer s.mu.Unlock()

	char := models.Character{
		ID:        uuid.NewString(),
		Name:      name,
		Details:   details,
		CreatedAt: s.now(),
	}
	s.characters = append(s.characters, char)
	return char
}

// Characters returns all character sheets in insertion order.
func (s *Store) Characters() []models.Character {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Character(nil), s.characters...)
}

// DeleteCharacter removes a character sheet by id.
func (s *Store) DeleteCharacter(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, c := range s.characters {
		if c.ID == id {
			s.characters = append(s.characters[:i], s.characters[i+1:]...)
			return nil
		}
	}
	return apperrors.NotFound(fmt.Sprintf("character %s not found", id), nil)
}

// ---- World settings ----

// AddWorldSetting appends a world-building document.
func (s *Store) AddWorldSetting(name, content string) models.WorldSetting {
	s.mu.Lock()
	defer s.mu.Unlock()

	setting := models.WorldSetting{
		ID:        uuid.NewString(),
		Name:      name,
		Content:   content,
		CreatedAt: s.now(),
	}
	s.worlds = append(s.worlds, setting)
	return setting
}

// WorldSettings returns all saved settings in insertion order.
func (s *Store) WorldSettings() []models.WorldSetting {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.WorldSetting(nil), s.worlds...)
}

// DeleteWorldSetting removes a setting by id.
func (s *Store) DeleteWorldSetting(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, w := range s.worlds {
		if w.ID == id {
			s.worlds = append(s.worlds[:i], s.worlds[i+1:]...)
			return nil
		}
	}
	return apperrors.NotFound(fmt.Sprintf("world setting %s not found", id), nil)
}

// ---- Evaluation history ----

// AppendEvaluation stores an evaluation result, assigning its id and
// timestamp when unset. Entries are immutable afterwards.
func (s *Store) AppendEvaluation(result models.EvaluationResult) models.EvaluationResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	if result.ID == "" {
		result.ID = uuid.NewString()
	}
	if result.Timestamp.IsZero() {
		result.Timestamp = s.now()
	}
	s.evaluations = append(s.evaluations, result)
	return result
}

// Evaluations returns the history in insertion order.
func (s *Store) Evaluations() []models.EvaluationResult {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.EvaluationResult(nil), s.evaluations...)
}

// DeleteEvaluation removes one history entry by id.
func (s *Store) DeleteEvaluation(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, e := range s.evaluations {
		if e.ID == id {
			s.evaluations = append(s.evaluations[:i], s.evaluations[i+1:]...)
			return nil
		}
	}
	return apperrors.NotFound(fmt.Sprintf("evaluation %s not found", id), nil)
}

// ClearEvaluations deletes the whole evaluation history.
func (s *Store) ClearEvaluations() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.evaluations = nil
}
