// internal/api/project_handlers.go
package api

import (
	"github.com/gin-gonic/gin"

	"github.com/Corphon/MangaStudioMCP/internal/apperrors"
	"github.com/Corphon/MangaStudioMCP/internal/models"
	"github.com/Corphon/MangaStudioMCP/internal/store"
)

// ListProjects returns all projects.
func (h *Handler) ListProjects(c *gin.Context) {
	h.Response.Success(c, h.Projects.List())
}

// CreateProject registers a new project, optionally expanding the task
// template bound to its type.
func (h *Handler) CreateProject(c *gin.Context) {
	var req struct {
		store.ProjectInput
		UseTemplate bool `json:"use_template"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Response.Error(c, apperrors.Validation("invalid request body", err))
		return
	}
	project, err := h.Projects.Create(req.ProjectInput, req.UseTemplate)
	if err != nil {
		h.Response.Error(c, err)
		return
	}
	h.Response.Created(c, project)
}

// GetProject returns one project by id.
func (h *Handler) GetProject(c *gin.Context) {
	project, err := h.Projects.Get(c.Param("id"))
	if err != nil {
		h.Response.Error(c, err)
		return
	}
	h.Response.Success(c, project)
}

// DeleteProject removes a project and its tasks.
func (h *Handler) DeleteProject(c *gin.Context) {
	if err := h.Projects.Delete(c.Param("id")); err != nil {
		h.Response.Error(c, err)
		return
	}
	h.Response.Success(c, nil, "project deleted")
}

// AddTask appends a task to a project.
func (h *Handler) AddTask(c *gin.Context) {
	var req store.TaskInput
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Response.Error(c, apperrors.Validation("invalid request body", err))
		return
	}
	task, err := h.Projects.AddTask(c.Param("id"), req)
	if err != nil {
		h.Response.Error(c, err)
		return
	}
	h.Response.Created(c, task)
}

// UpdateTaskStatus moves a task to a new status.
func (h *Handler) UpdateTaskStatus(c *gin.Context) {
	var req struct {
		Status models.TaskStatus `json:"status"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Response.Error(c, apperrors.Validation("invalid request body", err))
		return
	}
	if err := h.Projects.UpdateTaskStatus(c.Param("id"), c.Param("taskId"), req.Status); err != nil {
		h.Response.Error(c, err)
		return
	}
	h.Response.Success(c, nil, "task status updated")
}

// DeleteTask removes a task from a project.
func (h *Handler) DeleteTask(c *gin.Context) {
	if err := h.Projects.DeleteTask(c.Param("id"), c.Param("taskId")); err != nil {
		h.Response.Error(c, err)
		return
	}
	h.Response.Success(c, nil, "task deleted")
}

// GetGantt returns the per-task schedule bars of a project.
func (h *Handler) GetGantt(c *gin.Context) {
	bars, err := h.Projects.Gantt(c.Param("id"))
	if err != nil {
		h.Response.Error(c, err)
		return
	}
	h.Response.Success(c, bars)
}

// GetProgress returns the status breakdown of a project.
func (h *Handler) GetProgress(c *gin.Context) {
	summary, err := h.Projects.Progress(c.Param("id"))
	if err != nil {
		h.Response.Error(c, err)
		return
	}
	h.Response.Success(c, summary)
}

// GetTriage returns the overdue / due-soon report of a project.
func (h *Handler) GetTriage(c *gin.Context) {
	report, err := h.Projects.Triage(c.Param("id"))
	if err != nil {
		h.Response.Error(c, err)
		return
	}
	h.Response.Success(c, report)
}

// ListMembers returns the team roster.
func (h *Handler) ListMembers(c *gin.Context) {
	h.Response.Success(c, h.Team.Members())
}

// AddMember appends a member to the roster.
func (h *Handler) AddMember(c *gin.Context) {
	var req struct {
		Name string `json:"name"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Response.Error(c, apperrors.Validation("invalid request body", err))
		return
	}
	if err := h.Team.AddMember(req.Name); err != nil {
		h.Response.Error(c, err)
		return
	}
	h.Response.Created(c, h.Team.Members())
}

// RemoveMember drops a member from the roster.
func (h *Handler) RemoveMember(c *gin.Context) {
	if err := h.Team.RemoveMember(c.Param("name")); err != nil {
		h.Response.Error(c, err)
		return
	}
	h.Response.Success(c, h.Team.Members())
}

// GetWorkload returns the open-task count per assignee across all projects.
func (h *Handler) GetWorkload(c *gin.Context) {
	h.Response.Success(c, h.Team.Workload())
}
