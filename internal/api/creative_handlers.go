// internal/api/creative_handlers.go
package api

import (
	"github.com/gin-gonic/gin"

	"github.com/Corphon/MangaStudioMCP/internal/apperrors"
	"github.com/Corphon/MangaStudioMCP/internal/services"
)

// GenerateIdea runs the quick idea form through the gateway.
func (h *Handler) GenerateIdea(c *gin.Context) {
	var req services.IdeaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Response.Error(c, apperrors.Validation("invalid request body", err))
		return
	}
	result, err := h.Creative.GenerateIdea(c.Request.Context(), req)
	if err != nil {
		h.Response.Error(c, err)
		return
	}
	h.Response.Success(c, gin.H{"result": result})
}

// GenerateDetailedIdea runs the detailed idea form through the gateway.
func (h *Handler) GenerateDetailedIdea(c *gin.Context) {
	var req services.DetailedIdeaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Response.Error(c, apperrors.Validation("invalid request body", err))
		return
	}
	result, err := h.Creative.GenerateDetailedIdea(c.Request.Context(), req)
	if err != nil {
		h.Response.Error(c, err)
		return
	}
	h.Response.Success(c, gin.H{"result": result})
}

// ListIdeas returns the idea bank.
func (h *Handler) ListIdeas(c *gin.Context) {
	h.Response.Success(c, h.Store.Ideas())
}

// SaveIdea stores generated content in the idea bank.
func (h *Handler) SaveIdea(c *gin.Context) {
	var req struct {
		Title   string `json:"title"`
		Content string `json:"content"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Response.Error(c, apperrors.Validation("invalid request body", err))
		return
	}
	if req.Content == "" {
		h.Response.Error(c, apperrors.Validation("content is required", nil))
		return
	}
	h.Response.Created(c, h.Creative.SaveIdea(req.Title, req.Content))
}

// DeleteIdea removes an entry from the idea bank.
func (h *Handler) DeleteIdea(c *gin.Context) {
	if err := h.Store.DeleteIdea(c.Param("id")); err != nil {
		h.Response.Error(c, err)
		return
	}
	h.Response.Success(c, nil, "idea deleted")
}

// GenerateScenario runs the scenario workshop form.
func (h *Handler) GenerateScenario(c *gin.Context) {
	var req services.ScenarioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Response.Error(c, apperrors.Validation("invalid request body", err))
		return
	}
	result, err := h.Creative.GenerateScenario(c.Request.Context(), req)
	if err != nil {
		h.Response.Error(c, err)
		return
	}
	h.Response.Success(c, gin.H{"result": result})
}

// GenerateCharacter builds a character sheet and saves it.
func (h *Handler) GenerateCharacter(c *gin.Context) {
	var req services.CharacterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Response.Error(c, apperrors.Validation("invalid request body", err))
		return
	}
	character, err := h.Creative.GenerateCharacter(c.Request.Context(), req)
	if err != nil {
		h.Response.Error(c, err)
		return
	}
	h.Response.Created(c, character)
}

// ListCharacters returns the character archive.
func (h *Handler) ListCharacters(c *gin.Context) {
	h.Response.Success(c, h.Store.Characters())
}

// DeleteCharacter removes a character from the archive.
func (h *Handler) DeleteCharacter(c *gin.Context) {
	if err := h.Store.DeleteCharacter(c.Param("id")); err != nil {
		h.Response.Error(c, err)
		return
	}
	h.Response.Success(c, nil, "character deleted")
}

// GenerateWorld builds a world-setting document.
func (h *Handler) GenerateWorld(c *gin.Context) {
	var req services.WorldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Response.Error(c, apperrors.Validation("invalid request body", err))
		return
	}
	result, err := h.Creative.GenerateWorld(c.Request.Context(), req)
	if err != nil {
		h.Response.Error(c, err)
		return
	}
	h.Response.Success(c, gin.H{"result": result})
}

// SaveWorldSetting stores a generated world document.
func (h *Handler) SaveWorldSetting(c *gin.Context) {
	var req struct {
		Name    string `json:"name"`
		Content string `json:"content"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Response.Error(c, apperrors.Validation("invalid request body", err))
		return
	}
	if req.Content == "" {
		h.Response.Error(c, apperrors.Validation("content is required", nil))
		return
	}
	h.Response.Created(c, h.Creative.SaveWorldSetting(req.Name, req.Content))
}

// ListWorldSettings returns the world archive.
func (h *Handler) ListWorldSettings(c *gin.Context) {
	h.Response.Success(c, h.Store.WorldSettings())
}

// DeleteWorldSetting removes a world document from the archive.
func (h *Handler) DeleteWorldSetting(c *gin.Context) {
	if err := h.Store.DeleteWorldSetting(c.Param("id")); err != nil {
		h.Response.Error(c, err)
		return
	}
	h.Response.Success(c, nil, "world setting deleted")
}

// GenerateMapGuide turns a prose map description into design suggestions.
func (h *Handler) GenerateMapGuide(c *gin.Context) {
	var req services.MapGuideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Response.Error(c, apperrors.Validation("invalid request body", err))
		return
	}
	result, err := h.Creative.GenerateMapGuide(c.Request.Context(), req)
	if err != nil {
		h.Response.Error(c, err)
		return
	}
	h.Response.Success(c, gin.H{"result": result})
}
