// internal/models/evaluation.go
package models

import "time"

// EvaluationType distinguishes whole-work evaluations from page-by-page runs.
type EvaluationType string

const (
	EvaluationOverall EvaluationType = "overall"
	EvaluationPerPage EvaluationType = "per_page"
)

// PageResult is the outcome of evaluating a single page.
type PageResult struct {
	PageNumber int    `json:"page_number"`
	PageInfo   string `json:"page_info"`
	Result     string `json:"result"`
}

// EvaluationResult is one entry in the evaluation history. Entries are
// immutable once appended; the only mutation is whole-entry deletion by ID.
type EvaluationResult struct {
	ID               string         `json:"id"`
	Timestamp        time.Time      `json:"timestamp"`
	Type             EvaluationType `json:"type"`
	Model            string         `json:"model"`
	Provider         string         `json:"provider,omitempty"`
	ContentType      string         `json:"content_type"`
	Style            string         `json:"evaluation_style,omitempty"`
	DetailLevel      string         `json:"detail_level,omitempty"`
	EvaluationPoints []string       `json:"evaluation_points,omitempty"`
	FocusAreas       string         `json:"focus_areas,omitempty"`
	TextContent      string         `json:"text_content,omitempty"`
	Images           []string       `json:"image_data,omitempty"`
	Result           string         `json:"result,omitempty"`
	PageResults      []PageResult   `json:"page_results,omitempty"`
	EvaluatedPages   []int          `json:"evaluated_pages,omitempty"`
}
