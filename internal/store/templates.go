// internal/store/templates.go
package store

// TaskTemplate is one entry of a project-type task catalog.
type TaskTemplate struct {
	Name         string
	DurationDays int
	Assignee     string
}

// Project type keys with a task template attached. Other project types
// (competition, doujinshi, web serial) create with an empty task list.
const (
	TypeSerializationPrep = "serialization_prep"
	TypeOneShot           = "one_shot"
)

// TaskTemplates maps a project type to its default task chain. Tasks are
// scheduled sequentially: each task starts the day the previous one ends.
var TaskTemplates = map[string][]TaskTemplate{
	TypeSerializationPrep: {
		{Name: "Concept decision", DurationDays: 3, Assignee: "Writer"},
		{Name: "Character design", DurationDays: 7, Assignee: "Artist"},
		{Name: "World building", DurationDays: 5, Assignee: "Writer"},
		{Name: "Chapter 1 plot", DurationDays: 3, Assignee: "Writer"},
		{Name: "Chapter 1 storyboard", DurationDays: 5, Assignee: "Artist"},
		{Name: "Chapter 1 rough draft", DurationDays: 7, Assignee: "Artist"},
		{Name: "Chapter 1 inking", DurationDays: 5, Assignee: "Artist"},
		{Name: "Chapter 1 finishing", DurationDays: 3, Assignee: "Assistant"},
	},
	TypeOneShot: {
		{Name: "Plot writing", DurationDays: 2, Assignee: "Writer"},
		{Name: "Storyboard", DurationDays: 3, Assignee: "Artist"},
		{Name: "Rough draft", DurationDays: 5, Assignee: "Artist"},
		{Name: "Inking", DurationDays: 4, Assignee: "Artist"},
		{Name: "Tone and finishing", DurationDays: 2, Assignee: "Assistant"},
	},
}

// HasTemplate reports whether a project type has a task template.
func HasTemplate(projectType string) bool {
	_, ok := TaskTemplates[projectType]
	return ok
}
