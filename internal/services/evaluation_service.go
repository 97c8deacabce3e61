// internal/services/evaluation_service.go
package services

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/Corphon/MangaStudioMCP/internal/apperrors"
	"github.com/Corphon/MangaStudioMCP/internal/llm"
	"github.com/Corphon/MangaStudioMCP/internal/models"
	"github.com/Corphon/MangaStudioMCP/internal/store"
)

// Evaluation content types.
const (
	ContentPlotText        = "plot_text"
	ContentNameDraft       = "name_draft"
	ContentFinalManuscript = "final_manuscript"
)

// EvaluationStyles maps an evaluator style key to the persona description
// interpolated into the manuscript template.
var EvaluationStyles = map[string]string{
	"strict_editor":     "Evaluate strictly against commercial magazine standards, demanding professional quality",
	"supportive_mentor": "Find many strengths and encourage the author while giving constructive advice",
	"technique_coach":   "Point out concrete technical improvements in detail and suggest how to practice them",
	"reader_view":       "Evaluate from an ordinary reader's perspective, prioritizing fun and clarity",
	"contest_judge":     "Judge by new-artist award criteria, prioritizing potential and future growth",
}

// EvaluationOptionSet is the selectable evaluation points of one content
// type plus its defaults.
type EvaluationOptionSet struct {
	Options  []string `json:"options"`
	Defaults []string `json:"defaults"`
}

// EvaluationOptions catalogs the selectable evaluation points per content
// type.
var EvaluationOptions = map[string]EvaluationOptionSet{
	ContentPlotText: {
		Options: []string{
			"Concept appeal", "Plot construction", "Character depth and growth",
			"World originality", "Dialogue and narration quality", "Theme consistency",
			"Commercial potential", "Reader engagement", "Originality", "Logical consistency",
		},
		Defaults: []string{"Concept appeal", "Plot construction", "Character depth and growth"},
	},
	ContentNameDraft: {
		Options: []string{
			"Panel rhythm and eye guidance", "Composition dynamism and intent",
			"Character expression and emotion", "Staging originality", "Page information density",
			"Dialogue and art interplay", "Reader engagement", "Action impact",
			"Use of pauses", "Page-turn staging", "Effective background use",
		},
		Defaults: []string{"Panel rhythm and eye guidance", "Composition dynamism and intent", "Character expression and emotion"},
	},
	ContentFinalManuscript: {
		Options: []string{
			"Overall drawing quality", "Line quality and expressiveness", "Tone work and shading",
			"Background detail and world expression", "Effects and speed lines", "Character design appeal",
			"Commercial-magazine polish", "Color sense", "Lettering quality", "Print readiness",
		},
		Defaults: []string{"Overall drawing quality", "Line quality and expressiveness", "Tone work and shading"},
	},
}

// PageProgress reports per-page evaluation progress to an observer.
type PageProgress struct {
	Completed  int    `json:"completed"`
	Total      int    `json:"total"`
	PageNumber int    `json:"page_number"`
	Result     string `json:"result,omitempty"`
	Err        string `json:"error,omitempty"`
}

// ProgressFunc observes per-page evaluation progress. May be nil.
type ProgressFunc func(PageProgress)

// EvaluationService runs whole-work and per-page AI evaluations and owns
// the evaluation history.
type EvaluationService struct {
	LLM    *LLMService
	Store  *store.Store
	Logger *zap.Logger
}

func NewEvaluationService(llmService *LLMService, st *store.Store, logger *zap.Logger) *EvaluationService {
	return &EvaluationService{LLM: llmService, Store: st, Logger: logger}
}

// OverallRequest configures a whole-work evaluation.
type OverallRequest struct {
	Provider            string   `json:"provider"`
	Model               string   `json:"model"`
	ContentType         string   `json:"content_type"`
	Style               string   `json:"evaluation_style"`
	DetailLevel         string   `json:"detail_level"`
	EvaluationPoints    []string `json:"evaluation_points"`
	SpecialInstructions string   `json:"special_instructions"`
	TextContent         string   `json:"text_content"`
	Images              []string `json:"images"` // base64 PNG/JPEG pages, upload order
	ImageMIME           string   `json:"image_mime,omitempty"`
}

// EvaluateOverall runs one whole-work evaluation and appends the result to
// the history. A gateway failure leaves the history untouched.
func (s *EvaluationService) EvaluateOverall(ctx context.Context, req OverallRequest) (models.EvaluationResult, error) {
	styleText := EvaluationStyles[req.Style]
	if styleText == "" {
		styleText = req.Style
	}

	textContent := req.TextContent
	if textContent == "" {
		textContent = "none"
	}

	response, err := s.LLM.Generate(ctx, GenerateRequest{
		TemplateKey: TemplateManuscriptEval,
		Provider:    req.Provider,
		Model:       req.Model,
		Fields: map[string]string{
			"content_type":         req.ContentType,
			"evaluation_points":    strings.Join(req.EvaluationPoints, ", "),
			"detail_level":         req.DetailLevel,
			"evaluation_style":     styleText,
			"special_instructions": req.SpecialInstructions,
			"text_content":         textContent,
			"page_count":           strconv.Itoa(len(req.Images)),
			"evaluation_format": "Structure the evaluation as overall rating, " +
				"strengths, improvements, concrete suggestions and a summary.",
			"page_specific_format": "",
		},
		Images: imageParts(req.Images, req.ImageMIME),
	})
	if err != nil {
		return models.EvaluationResult{}, err
	}

	result := models.EvaluationResult{
		Type:             models.EvaluationOverall,
		Model:            req.Model,
		Provider:         req.Provider,
		ContentType:      req.ContentType,
		Style:            req.Style,
		DetailLevel:      req.DetailLevel,
		EvaluationPoints: req.EvaluationPoints,
		TextContent:      req.TextContent,
		Images:           req.Images,
		Result:           response,
	}
	return s.Store.AppendEvaluation(result), nil
}

// PageRequest configures a per-page evaluation run.
type PageRequest struct {
	Provider         string   `json:"provider"`
	Model            string   `json:"model"`
	ContentType      string   `json:"content_type"`
	EvaluationPoints []string `json:"evaluation_points"`
	FocusAreas       string   `json:"focus_areas"`
	Images           []string `json:"images"`
	PageInfos        []string `json:"page_infos,omitempty"` // display names, parallel to Images
	ImageMIME        string   `json:"image_mime,omitempty"`
	AllPages         bool     `json:"all_pages"`
	PageRange        string   `json:"page_range,omitempty"` // e.g. "1,3,5-7" when AllPages is false
}

// EvaluatePages evaluates the selected pages one at a time, reporting
// progress after each page. Pages whose gateway call fails are skipped with
// a warning; the run only fails outright when input is invalid or no page
// succeeds at all. The aggregate result is appended to the history.
func (s *EvaluationService) EvaluatePages(ctx context.Context, req PageRequest, progress ProgressFunc) (models.EvaluationResult, error) {
	if len(req.Images) == 0 {
		return models.EvaluationResult{}, apperrors.Validation("no pages to evaluate", nil)
	}

	var indices []int
	if req.AllPages {
		indices = make([]int, len(req.Images))
		for i := range req.Images {
			indices[i] = i
		}
	} else {
		var err error
		indices, err = ParsePageRange(req.PageRange, len(req.Images))
		if err != nil {
			return models.EvaluationResult{}, err
		}
	}
	if len(indices) == 0 {
		return models.EvaluationResult{}, apperrors.Validation("page selection matches no pages", nil)
	}

	focusAreas := req.FocusAreas
	if focusAreas == "" {
		focusAreas = "none"
	}

	var (
		pageResults []models.PageResult
		lastErr     error
	)
	for i, pageIdx := range indices {
		response, err := s.LLM.Generate(ctx, GenerateRequest{
			TemplateKey: TemplatePageEval,
			Provider:    req.Provider,
			Model:       req.Model,
			Fields: map[string]string{
				"page_number":       strconv.Itoa(pageIdx + 1),
				"evaluation_points": strings.Join(req.EvaluationPoints, ", "),
				"focus_areas":       focusAreas,
			},
			Images: imageParts([]string{req.Images[pageIdx]}, req.ImageMIME),
		})

		if err != nil {
			lastErr = err
			s.Logger.Warn("page evaluation failed",
				zap.Int("page", pageIdx+1),
				zap.Error(err))
			if progress != nil {
				progress(PageProgress{
					Completed:  i + 1,
					Total:      len(indices),
					PageNumber: pageIdx + 1,
					Err:        err.Error(),
				})
			}
			continue
		}

		pageResults = append(pageResults, models.PageResult{
			PageNumber: pageIdx + 1,
			PageInfo:   pageInfo(req.PageInfos, pageIdx),
			Result:     response,
		})
		if progress != nil {
			progress(PageProgress{
				Completed:  i + 1,
				Total:      len(indices),
				PageNumber: pageIdx + 1,
				Result:     response,
			})
		}
	}

	if len(pageResults) == 0 {
		if lastErr != nil {
			return models.EvaluationResult{}, lastErr
		}
		return models.EvaluationResult{}, apperrors.Provider("no page produced a result", nil)
	}

	result := models.EvaluationResult{
		Type:             models.EvaluationPerPage,
		Model:            req.Model,
		Provider:         req.Provider,
		ContentType:      req.ContentType,
		EvaluationPoints: req.EvaluationPoints,
		FocusAreas:       req.FocusAreas,
		Images:           req.Images,
		PageResults:      pageResults,
		EvaluatedPages:   indices,
	}
	return s.Store.AppendEvaluation(result), nil
}

// History returns the evaluation history, newest first.
func (s *EvaluationService) History() []models.EvaluationResult {
	results := s.Store.Evaluations()
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Timestamp.After(results[j].Timestamp)
	})
	return results
}

// Delete removes one history entry by id.
func (s *EvaluationService) Delete(id string) error {
	return s.Store.DeleteEvaluation(id)
}

// Clear deletes the whole history.
func (s *EvaluationService) Clear() {
	s.Store.ClearEvaluations()
}

// ParsePageRange parses a 1-based page selection such as "1,3,5-7" into
// sorted, de-duplicated 0-based indices. Indices outside [0, total) are
// dropped; a syntactically malformed spec is a validation error.
func ParsePageRange(spec string, total int) ([]int, error) {
	seen := map[int]bool{}
	for _, part := range strings.Split(spec, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if strings.Contains(part, "-") {
			bounds := strings.SplitN(part, "-", 2)
			start, err1 := strconv.Atoi(strings.TrimSpace(bounds[0]))
			end, err2 := strconv.Atoi(strings.TrimSpace(bounds[1]))
			if err1 != nil || err2 != nil {
				return nil, apperrors.Validation(
					fmt.Sprintf("invalid page range %q", part), nil)
			}
			for p := start; p <= end; p++ {
				if p >= 1 && p <= total {
					seen[p-1] = true
				}
			}
			continue
		}
		p, err := strconv.Atoi(part)
		if err != nil {
			return nil, apperrors.Validation(
				fmt.Sprintf("invalid page number %q", part), nil)
		}
		if p >= 1 && p <= total {
			seen[p-1] = true
		}
	}

	indices := make([]int, 0, len(seen))
	for idx := range seen {
		indices = append(indices, idx)
	}
	sort.Ints(indices)
	return indices, nil
}

func pageInfo(infos []string, idx int) string {
	if idx < len(infos) {
		return infos[idx]
	}
	return fmt.Sprintf("P.%d", idx+1)
}

func imageParts(images []string, mimeType string) []llm.ImagePart {
	if mimeType == "" {
		mimeType = "image/png"
	}
	parts := make([]llm.ImagePart, 0, len(images))
	for _, data := range images {
		parts = append(parts, llm.ImagePart{MIMEType: mimeType, Data: data})
	}
	return parts
}
