// internal/store/store_test.go
package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Corphon/MangaStudioMCP/internal/apperrors"
	"github.com/Corphon/MangaStudioMCP/internal/models"
)

func fixedClock(t *testing.T, value string) func() time.Time {
	t.Helper()
	parsed, err := time.Parse("2006-01-02 15:04", value)
	require.NoError(t, err)
	return func() time.Time { return parsed }
}

func TestCreateProjectRequiresTitle(t *testing.T) {
	s := New()

	_, err := s.CreateProject(ProjectInput{}, false)
	require.Error(t, err)
	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
}

func TestCreateProjectDefaults(t *testing.T) {
	s := New()

	p, err := s.CreateProject(ProjectInput{Title: "Moonlit Blade"}, false)
	require.NoError(t, err)

	assert.NotEmpty(t, p.ID)
	assert.Equal(t, models.ProjectInProgress, p.Status)
	assert.Equal(t, models.PriorityMid, p.Priority)
	assert.Empty(t, p.Tasks)
}

func TestCreateProjectAllowsDuplicateTitles(t *testing.T) {
	s := New()

	first, err := s.CreateProject(ProjectInput{Title: "Same"}, false)
	require.NoError(t, err)
	second, err := s.CreateProject(ProjectInput{Title: "Same"}, false)
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)
	assert.Len(t, s.Projects(), 2)
}

func TestTemplateExpansionChains(t *testing.T) {
	s := NewWithClock(fixedClock(t, "2026-03-02 10:00"))

	p, err := s.CreateProject(ProjectInput{
		Title: "Serial Debut",
		Type:  TypeSerializationPrep,
	}, true)
	require.NoError(t, err)
	require.Len(t, p.Tasks, len(TaskTemplates[TypeSerializationPrep]))

	// First task starts at creation; every later task starts when the
	// previous one ends.
	assert.Equal(t, "2026-03-02", p.Tasks[0].StartDate.String())
	for i := 1; i < len(p.Tasks); i++ {
		assert.Equal(t, p.Tasks[i-1].EndDate, p.Tasks[i].StartDate,
			"task %d must start when task %d ends", i, i-1)
	}
	for _, task := range p.Tasks {
		assert.Equal(t, task.StartDate.AddDays(task.DurationDays), task.EndDate)
		assert.Equal(t, models.TaskNotStarted, task.Status)
		assert.NotEmpty(t, task.ID)
	}
}

func TestTemplateIgnoredForUnknownType(t *testing.T) {
	s := New()

	assert.False(t, HasTemplate("four_panel"))
	assert.True(t, HasTemplate(TypeOneShot))

	p, err := s.CreateProject(ProjectInput{Title: "X", Type: "four_panel"}, true)
	require.NoError(t, err)
	assert.Empty(t, p.Tasks)
}

func TestAddTaskValidation(t *testing.T) {
	s := New()
	p, err := s.CreateProject(ProjectInput{Title: "P"}, false)
	require.NoError(t, err)

	start, err := models.ParseDate("2026-04-01")
	require.NoError(t, err)

	cases := []struct {
		name  string
		input TaskInput
	}{
		{"empty name", TaskInput{StartDate: start, DurationDays: 1}},
		{"negative duration", TaskInput{Name: "n", StartDate: start, DurationDays: -1}},
		{"missing start", TaskInput{Name: "n", DurationDays: 1}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := s.AddTask(p.ID, tc.input)
			require.Error(t, err)
			assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
		})
	}
}

func TestAddTaskDerivesEndDate(t *testing.T) {
	s := New()
	p, err := s.CreateProject(ProjectInput{Title: "P"}, false)
	require.NoError(t, err)

	start, err := models.ParseDate("2026-04-01")
	require.NoError(t, err)

	task, err := s.AddTask(p.ID, TaskInput{Name: "Inking", StartDate: start, DurationDays: 5})
	require.NoError(t, err)
	assert.Equal(t, "2026-04-06", task.EndDate.String())

	// Zero duration: the task starts and ends the same day.
	sameDay, err := s.AddTask(p.ID, TaskInput{Name: "Check", StartDate: start, DurationDays: 0})
	require.NoError(t, err)
	assert.Equal(t, sameDay.StartDate, sameDay.EndDate)
}

func TestAddTaskKeepsUnknownAssignee(t *testing.T) {
	s := New()
	p, err := s.CreateProject(ProjectInput{Title: "P"}, false)
	require.NoError(t, err)

	start, err := models.ParseDate("2026-04-01")
	require.NoError(t, err)

	task, err := s.AddTask(p.ID, TaskInput{
		Name:      "Guest art",
		Assignee:  "Freelancer",
		StartDate: start,
	})
	require.NoError(t, err)
	assert.Equal(t, "Freelancer", task.Assignee)
	assert.NotContains(t, s.Members(), "Freelancer")
}

func TestUpdateTaskStatusFreeTransitions(t *testing.T) {
	s := New()
	p, err := s.CreateProject(ProjectInput{Title: "P"}, false)
	require.NoError(t, err)
	start, err := models.ParseDate("2026-04-01")
	require.NoError(t, err)
	task, err := s.AddTask(p.ID, TaskInput{Name: "T", StartDate: start, DurationDays: 1})
	require.NoError(t, err)

	// Any status may follow any other, done included.
	for _, status := range []models.TaskStatus{
		models.TaskDone, models.TaskNotStarted, models.TaskOnHold, models.TaskInProgress,
	} {
		require.NoError(t, s.UpdateTaskStatus(p.ID, task.ID, status))
	}

	err = s.UpdateTaskStatus(p.ID, task.ID, models.TaskStatus("cancelled"))
	require.Error(t, err)
	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
}

func TestDeleteTaskByID(t *testing.T) {
	s := New()
	p, err := s.CreateProject(ProjectInput{Title: "P"}, false)
	require.NoError(t, err)
	start, err := models.ParseDate("2026-04-01")
	require.NoError(t, err)

	first, err := s.AddTask(p.ID, TaskInput{Name: "Same name", StartDate: start, DurationDays: 1})
	require.NoError(t, err)
	second, err := s.AddTask(p.ID, TaskInput{Name: "Same name", StartDate: start, DurationDays: 2})
	require.NoError(t, err)

	require.NoError(t, s.DeleteTask(p.ID, first.ID))

	got, err := s.Project(p.ID)
	require.NoError(t, err)
	require.Len(t, got.Tasks, 1)
	assert.Equal(t, second.ID, got.Tasks[0].ID)

	err = s.DeleteTask(p.ID, first.ID)
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
}

func TestUpcomingDeadlineCountWindow(t *testing.T) {
	s := NewWithClock(fixedClock(t, "2026-05-01 09:00"))
	p, err := s.CreateProject(ProjectInput{Title: "P"}, false)
	require.NoError(t, err)

	addTask := func(name, start string, duration int) models.Task {
		t.Helper()
		date, err := models.ParseDate(start)
		require.NoError(t, err)
		task, err := s.AddTask(p.ID, TaskInput{Name: name, StartDate: date, DurationDays: duration})
		require.NoError(t, err)
		return task
	}

	addTask("in window", "2026-05-01", 3)       // ends 05-04
	addTask("window edge", "2026-05-01", 7)     // ends 05-08, inclusive
	addTask("outside window", "2026-05-01", 10) // ends 05-11
	addTask("past", "2026-04-01", 5)            // ended 04-06

	done := addTask("done in window", "2026-05-01", 2)
	require.NoError(t, s.UpdateTaskStatus(p.ID, done.ID, models.TaskDone))

	assert.Equal(t, 2, s.UpcomingDeadlineCount(7))
}

func TestMembersDefaultsAndDedup(t *testing.T) {
	s := New()

	assert.Equal(t, DefaultMembers, s.Members())

	require.NoError(t, s.AddMember("Letterer"))
	require.NoError(t, s.AddMember("Letterer"))
	assert.Len(t, s.Members(), len(DefaultMembers)+1)

	require.NoError(t, s.RemoveMember("Letterer"))
	err := s.RemoveMember("Letterer")
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
}

func TestRemoveMemberKeepsAssignments(t *testing.T) {
	s := New()
	p, err := s.CreateProject(ProjectInput{Title: "P"}, false)
	require.NoError(t, err)
	start, err := models.ParseDate("2026-04-01")
	require.NoError(t, err)
	_, err = s.AddTask(p.ID, TaskInput{Name: "T", Assignee: "Artist", StartDate: start, DurationDays: 1})
	require.NoError(t, err)

	require.NoError(t, s.RemoveMember("Artist"))

	got, err := s.Project(p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Artist", got.Tasks[0].Assignee)
}

func TestProjectsReturnsCopies(t *testing.T) {
	s := New()
	p, err := s.CreateProject(ProjectInput{Title: "P"}, false)
	require.NoError(t, err)

	list := s.Projects()
	list[0].Title = "mutated"

	got, err := s.Project(p.ID)
	require.NoError(t, err)
	assert.Equal(t, "P", got.Title)
}

func TestAppendEvaluationAssignsIdentity(t *testing.T) {
	s := NewWithClock(fixedClock(t, "2026-06-01 12:00"))

	stored := s.AppendEvaluation(models.EvaluationResult{
		Type:   models.EvaluationOverall,
		Result: "solid pacing",
	})
	assert.NotEmpty(t, stored.ID)
	assert.False(t, stored.Timestamp.IsZero())

	require.NoError(t, s.DeleteEvaluation(stored.ID))
	assert.Empty(t, s.Evaluations())
}

func TestResetRestoresDefaults(t *testing.T) {
	s := New()
	_, err := s.CreateProject(ProjectInput{Title: "P"}, false)
	require.NoError(t, err)
	s.AddIdea("i", "content")
	s.AddCharacter("c", "details")
	s.AddWorldSetting("w", "content")
	require.NoError(t, s.AddMember("Letterer"))

	s.Reset()

	assert.Empty(t, s.Projects())
	assert.Empty(t, s.Ideas())
	assert.Empty(t, s.Characters())
	assert.Empty(t, s.WorldSettings())
	assert.Equal(t, DefaultMembers, s.Members())
}
