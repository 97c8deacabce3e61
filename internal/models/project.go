// internal/models/project.go
package models

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// DateLayout is the wire format for calendar dates.
const DateLayout = "2006-01-02"

// Date is a calendar date with day precision. The zero value marshals to ""
// and is treated as "not set" by every consumer.
type Date struct {
	time.Time
}

// NewDate truncates t to its calendar date in UTC.
func NewDate(t time.Time) Date {
	return Date{time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses a date in the wire format.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return Date{t}, nil
}

// AddDays returns the date n days later.
func (d Date) AddDays(n int) Date {
	return Date{d.Time.AddDate(0, 0, n)}
}

// DaysUntil returns the signed number of days from "from" to d.
// Negative means d lies in the past.
func (d Date) DaysUntil(from Date) int {
	return int(d.Time.Sub(from.Time).Hours() / 24)
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(DateLayout)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if strings.TrimSpace(s) == "" {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// TaskStatus enumerates the lifecycle states of a task. The transition graph
// is deliberately free: any status may follow any other.
type TaskStatus string

const (
	TaskNotStarted TaskStatus = "not_started"
	TaskInProgress TaskStatus = "in_progress"
	TaskDone       TaskStatus = "done"
	TaskOnHold     TaskStatus = "on_hold"
)

// ValidTaskStatus reports whether s is one of the known task statuses.
func ValidTaskStatus(s TaskStatus) bool {
	switch s {
	case TaskNotStarted, TaskInProgress, TaskDone, TaskOnHold:
		return true
	}
	return false
}

// ProjectStatus enumerates the lifecycle states of a project.
type ProjectStatus string

const (
	ProjectNotStarted ProjectStatus = "not_started"
	ProjectInProgress ProjectStatus = "in_progress"
	ProjectDone       ProjectStatus = "done"
)

// Priority ranks a project.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMid    Priority = "mid"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

// Task is a scheduled unit of work owned by a project.
// Invariant: EndDate = StartDate + DurationDays, so EndDate never precedes
// StartDate and a zero duration yields EndDate == StartDate.
type Task struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	Assignee     string     `json:"assignee"`
	StartDate    Date       `json:"start_date"`
	EndDate      Date       `json:"end_date"`
	Status       TaskStatus `json:"status"`
	DurationDays int        `json:"duration"`
}

// Project is a manga production project with its ordered task list.
type Project struct {
	ID          string        `json:"id"`
	Title       string        `json:"title"`
	Type        string        `json:"type"`
	Genre       string        `json:"genre"`
	Deadline    Date          `json:"deadline"`
	Assignee    string        `json:"assignee"`
	Priority    Priority      `json:"priority"`
	Description string        `json:"description"`
	Status      ProjectStatus `json:"status"`
	CreatedAt   time.Time     `json:"created_at"`
	Tasks       []Task        `json:"tasks"`
}

// Clone returns a deep copy so callers can hand projects out of a store
// without sharing the task slice.
func (p Project) Clone() Project {
	out := p
	out.Tasks = make([]Task, len(p.Tasks))
	copy(out.Tasks, p.Tasks)
	return out
}
