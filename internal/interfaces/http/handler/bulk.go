package handler

import (
	"io"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	appwp "github.com/workplan/backend/internal/application/workpackage"
)

// BulkHandler handles bulk work package operations
type BulkHandler struct {
	BaseHandler
	service *appwp.BulkService
}

// NewBulkHandler creates a new bulk operations handler
func NewBulkHandler(service *appwp.BulkService) *BulkHandler {
	return &BulkHandler{service: service}
}

// RegisterRoutes registers bulk operation routes
func (h *BulkHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/work-package-templates", h.Templates)

	wps := rg.Group("/projects/:projectID/work-packages")
	{
		wps.POST("/copy-from/:sourceID", h.CopyFromProject)
		wps.POST("/import", h.ImportCSV)
		wps.POST("/instantiate-template", h.InstantiateTemplate)
	}
}

func (h *BulkHandler) projectID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("projectID"))
	if err != nil {
		h.BadRequest(c, "invalid project ID")
		return uuid.Nil, false
	}
	return id, true
}

// CopyFromProject handles POST /projects/:projectID/work-packages/copy-from/:sourceID
func (h *BulkHandler) CopyFromProject(c *gin.Context) {
	destID, ok := h.projectID(c)
	if !ok {
		return
	}
	sourceID, err := uuid.Parse(c.Param("sourceID"))
	if err != nil {
		h.BadRequest(c, "invalid source project ID")
		return
	}

	// Options body is optional, defaults copy budgets and dates as-is
	var req appwp.CopyFromProjectRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			h.BindingError(c, err)
			return
		}
	}

	report, err := h.service.CopyFromProject(c.Request.Context(), destID, sourceID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, report)
}

// ImportCSV handles POST /projects/:projectID/work-packages/import.
// Expects a multipart form with the CSV under the "file" field.
func (h *BulkHandler) ImportCSV(c *gin.Context) {
	projectID, ok := h.projectID(c)
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		h.BadRequest(c, "missing 'file' upload field")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.BadRequest(c, "unable to read uploaded file")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		h.BadRequest(c, "unable to read uploaded file")
		return
	}

	report, err := h.service.ImportCSV(c.Request.Context(), projectID, data)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, report)
}

// InstantiateTemplate handles POST /projects/:projectID/work-packages/instantiate-template
func (h *BulkHandler) InstantiateTemplate(c *gin.Context) {
	projectID, ok := h.projectID(c)
	if !ok {
		return
	}

	var req appwp.InstantiateTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	report, err := h.service.InstantiateTemplate(c.Request.Context(), projectID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, report)
}

// Templates handles GET /work-package-templates
func (h *BulkHandler) Templates(c *gin.Context) {
	h.Success(c, h.service.Templates())
}
