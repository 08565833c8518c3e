package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	appwp "github.com/workplan/backend/internal/application/workpackage"
)

// WorkPackageHandler handles work package HTTP requests
type WorkPackageHandler struct {
	BaseHandler
	service *appwp.Service
}

// NewWorkPackageHandler creates a new work package handler
func NewWorkPackageHandler(service *appwp.Service) *WorkPackageHandler {
	return &WorkPackageHandler{service: service}
}

// RegisterRoutes registers work package routes under a project
func (h *WorkPackageHandler) RegisterRoutes(rg *gin.RouterGroup) {
	wps := rg.Group("/projects/:projectID/work-packages")
	{
		wps.POST("", h.Create)
		wps.GET("", h.List)
		wps.GET("/tree", h.Tree)
		wps.POST("/outline", h.Outline)
		wps.GET("/:id", h.Get)
		wps.PATCH("/:id", h.Update)
		wps.DELETE("/:id", h.Delete)
		wps.POST("/:id/move", h.Move)
	}
}

func (h *WorkPackageHandler) projectID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("projectID"))
	if err != nil {
		h.BadRequest(c, "invalid project ID")
		return uuid.Nil, false
	}
	return id, true
}

func (h *WorkPackageHandler) workPackageID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "invalid work package ID")
		return uuid.Nil, false
	}
	return id, true
}

// Create handles POST /projects/:projectID/work-packages
func (h *WorkPackageHandler) Create(c *gin.Context) {
	projectID, ok := h.projectID(c)
	if !ok {
		return
	}

	var req appwp.CreateWorkPackageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	result, err := h.service.Create(c.Request.Context(), projectID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Created(c, result)
}

// List handles GET /projects/:projectID/work-packages
func (h *WorkPackageHandler) List(c *gin.Context) {
	projectID, ok := h.projectID(c)
	if !ok {
		return
	}

	var filter appwp.WorkPackageListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindingError(c, err)
		return
	}

	items, total, err := h.service.List(c.Request.Context(), projectID, filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	// Flat list is not paginated, the meta carries the project total
	pageSize := len(items)
	if pageSize == 0 {
		pageSize = 1
	}
	h.SuccessWithMeta(c, items, total, 1, pageSize)
}

// Get handles GET /projects/:projectID/work-packages/:id
func (h *WorkPackageHandler) Get(c *gin.Context) {
	projectID, ok := h.projectID(c)
	if !ok {
		return
	}
	id, ok := h.workPackageID(c)
	if !ok {
		return
	}

	result, err := h.service.GetByID(c.Request.Context(), projectID, id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, result)
}

// Update handles PATCH /projects/:projectID/work-packages/:id
func (h *WorkPackageHandler) Update(c *gin.Context) {
	projectID, ok := h.projectID(c)
	if !ok {
		return
	}
	id, ok := h.workPackageID(c)
	if !ok {
		return
	}

	var req appwp.UpdateWorkPackageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	result, err := h.service.Update(c.Request.Context(), projectID, id, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, result)
}

// Move handles POST /projects/:projectID/work-packages/:id/move
func (h *WorkPackageHandler) Move(c *gin.Context) {
	projectID, ok := h.projectID(c)
	if !ok {
		return
	}
	id, ok := h.workPackageID(c)
	if !ok {
		return
	}

	var req appwp.MoveWorkPackageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	result, err := h.service.Move(c.Request.Context(), projectID, id, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, result)
}

// Delete handles DELETE /projects/:projectID/work-packages/:id
func (h *WorkPackageHandler) Delete(c *gin.Context) {
	projectID, ok := h.projectID(c)
	if !ok {
		return
	}
	id, ok := h.workPackageID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), projectID, id); err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.NoContent(c)
}

// Tree handles GET /projects/:projectID/work-packages/tree
func (h *WorkPackageHandler) Tree(c *gin.Context) {
	projectID, ok := h.projectID(c)
	if !ok {
		return
	}

	includeArchived := c.Query("include_archived") == "true"
	result, err := h.service.GetTree(c.Request.Context(), projectID, includeArchived)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, result)
}

// Outline handles POST /projects/:projectID/work-packages/outline.
// POST because the expanded-node set can exceed query string limits.
func (h *WorkPackageHandler) Outline(c *gin.Context) {
	projectID, ok := h.projectID(c)
	if !ok {
		return
	}

	var req appwp.OutlineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	result, err := h.service.GetOutline(c.Request.Context(), projectID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, result)
}
