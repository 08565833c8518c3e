package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	appproject "github.com/workplan/backend/internal/application/project"
)

// ProjectHandler handles project HTTP requests
type ProjectHandler struct {
	BaseHandler
	service *appproject.Service
}

// NewProjectHandler creates a new project handler
func NewProjectHandler(service *appproject.Service) *ProjectHandler {
	return &ProjectHandler{service: service}
}

// RegisterRoutes registers project routes
func (h *ProjectHandler) RegisterRoutes(rg *gin.RouterGroup) {
	projects := rg.Group("/projects")
	{
		projects.POST("", h.Create)
		projects.GET("", h.List)
		projects.GET("/:projectID", h.Get)
		projects.PATCH("/:projectID", h.Update)
		projects.DELETE("/:projectID", h.Delete)
		projects.POST("/:projectID/archive", h.Archive)
		projects.POST("/:projectID/unarchive", h.Unarchive)
	}
}

// Create handles POST /projects
func (h *ProjectHandler) Create(c *gin.Context) {
	var req appproject.CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	result, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Created(c, result)
}

// List handles GET /projects
func (h *ProjectHandler) List(c *gin.Context) {
	var filter appproject.ProjectListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindingError(c, err)
		return
	}

	result, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// Get handles GET /projects/:projectID
func (h *ProjectHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("projectID"))
	if err != nil {
		h.BadRequest(c, "invalid project ID")
		return
	}

	result, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, result)
}

// Update handles PATCH /projects/:projectID
func (h *ProjectHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("projectID"))
	if err != nil {
		h.BadRequest(c, "invalid project ID")
		return
	}

	var req appproject.UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	result, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, result)
}

// Archive handles POST /projects/:projectID/archive
func (h *ProjectHandler) Archive(c *gin.Context) {
	id, err := uuid.Parse(c.Param("projectID"))
	if err != nil {
		h.BadRequest(c, "invalid project ID")
		return
	}

	result, err := h.service.Archive(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, result)
}

// Unarchive handles POST /projects/:projectID/unarchive
func (h *ProjectHandler) Unarchive(c *gin.Context) {
	id, err := uuid.Parse(c.Param("projectID"))
	if err != nil {
		h.BadRequest(c, "invalid project ID")
		return
	}

	result, err := h.service.Unarchive(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, result)
}

// Delete handles DELETE /projects/:projectID
func (h *ProjectHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("projectID"))
	if err != nil {
		h.BadRequest(c, "invalid project ID")
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.NoContent(c)
}
