// internal/api/evaluation_handlers.go
package api

import (
	"context"
	"io"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Corphon/MangaStudioMCP/internal/apperrors"
	"github.com/Corphon/MangaStudioMCP/internal/ingest"
	"github.com/Corphon/MangaStudioMCP/internal/services"
)

// pageEvaluationTimeout bounds one background per-page run.
const pageEvaluationTimeout = 30 * time.Minute

// GetEvaluationOptions returns the selectable styles and per-content-type
// evaluation points.
func (h *Handler) GetEvaluationOptions(c *gin.Context) {
	h.Response.Success(c, gin.H{
		"styles":  services.EvaluationStyles,
		"options": services.EvaluationOptions,
	})
}

// EvaluateOverall runs one whole-work evaluation synchronously.
func (h *Handler) EvaluateOverall(c *gin.Context) {
	var req services.OverallRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Response.Error(c, apperrors.Validation("invalid request body", err))
		return
	}
	result, err := h.Evaluation.EvaluateOverall(c.Request.Context(), req)
	if err != nil {
		h.Response.Error(c, err)
		return
	}
	h.Response.Success(c, result)
}

// EvaluatePages starts a per-page evaluation in the background and returns
// a job id. Progress streams over /ws/evaluations/:id/progress.
func (h *Handler) EvaluatePages(c *gin.Context) {
	var req services.PageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Response.Error(c, apperrors.Validation("invalid request body", err))
		return
	}
	if len(req.Images) == 0 {
		h.Response.Error(c, apperrors.Validation("no pages to evaluate", nil))
		return
	}

	jobID := uuid.NewString()
	h.Broker.open(jobID)

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), pageEvaluationTimeout)
		defer cancel()
		defer h.Broker.close(jobID)

		result, err := h.Evaluation.EvaluatePages(ctx, req, func(p services.PageProgress) {
			h.Broker.publish(jobID, progressEvent{PageProgress: p})
		})
		if err != nil {
			h.Logger.Warn("page evaluation run failed",
				zap.String("job_id", jobID), zap.Error(err))
			h.Broker.publish(jobID, progressEvent{Done: true, Error: err.Error()})
			return
		}
		h.Broker.publish(jobID, progressEvent{Done: true, EvaluationID: result.ID})
	}()

	h.Response.Accepted(c, gin.H{"job_id": jobID}, "page evaluation started")
}

// GetEvaluationHistory returns the evaluation history, newest first.
func (h *Handler) GetEvaluationHistory(c *gin.Context) {
	h.Response.Success(c, h.Evaluation.History())
}

// DeleteEvaluation removes one history entry.
func (h *Handler) DeleteEvaluation(c *gin.Context) {
	if err := h.Evaluation.Delete(c.Param("id")); err != nil {
		h.Response.Error(c, err)
		return
	}
	h.Response.Success(c, nil, "evaluation deleted")
}

// ClearEvaluations deletes the whole history.
func (h *Handler) ClearEvaluations(c *gin.Context) {
	h.Evaluation.Clear()
	h.Response.Success(c, nil, "evaluation history cleared")
}

// UploadContent ingests multipart files (text, images, PDF) into the
// text-plus-pages form the evaluation endpoints consume.
func (h *Handler) UploadContent(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		h.Response.Error(c, apperrors.Validation("invalid multipart form", err))
		return
	}
	files := form.File["files"]
	if len(files) == 0 {
		h.Response.Error(c, apperrors.Validation("no files uploaded", nil))
		return
	}

	var result ingest.Result
	for _, fh := range files {
		f, err := fh.Open()
		if err != nil {
			h.Response.Error(c, apperrors.Internal("reading upload failed", err))
			return
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			h.Response.Error(c, apperrors.Internal("reading upload failed", err))
			return
		}
		if err := h.Ingest.ProcessFile(fh.Filename, data, &result); err != nil {
			h.Response.Error(c, err)
			return
		}
	}

	h.Response.Success(c, gin.H{
		"text_content": result.Text,
		"images":       result.Images(),
		"page_infos":   result.PageInfos(),
	})
}

// ExportData builds the selected export categories; ?save=true also writes
// the document under the data directory.
func (h *Handler) ExportData(c *gin.Context) {
	var categories []string
	if raw := c.Query("categories"); raw != "" {
		categories = splitCategories(raw)
	}

	if c.Query("save") == "true" {
		path, size, err := h.Export.SaveToDataDir(categories)
		if err != nil {
			h.Response.Error(c, err)
			return
		}
		h.Response.Success(c, gin.H{"path": path, "size_bytes": size}, "export saved")
		return
	}

	doc, err := h.Export.Build(categories)
	if err != nil {
		h.Response.Error(c, err)
		return
	}
	h.Response.Success(c, doc)
}

func splitCategories(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
