package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/workplan/backend/internal/infrastructure/persistence"
	"github.com/workplan/backend/internal/interfaces/http/dto"
)

// HealthHandler handles health check endpoints
type HealthHandler struct {
	BaseHandler
	db      *persistence.Database
	version string
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(db *persistence.Database, version string) *HealthHandler {
	return &HealthHandler{db: db, version: version}
}

// RegisterRoutes registers the health endpoint
func (h *HealthHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/health", h.Check)
}

// HealthStatus represents the health check payload
type HealthStatus struct {
	Status    string            `json:"status"`
	Version   string            `json:"version"`
	Timestamp time.Time         `json:"timestamp"`
	Checks    map[string]string `json:"checks"`
}

// Check reports liveness and dependency health
func (h *HealthHandler) Check(c *gin.Context) {
	status := HealthStatus{
		Status:    "ok",
		Version:   h.version,
		Timestamp: time.Now().UTC(),
		Checks:    map[string]string{},
	}

	if h.db != nil {
		if err := h.db.Ping(); err != nil {
			status.Status = "degraded"
			status.Checks["database"] = "unreachable"
		} else {
			status.Checks["database"] = "ok"
		}
	}

	code := http.StatusOK
	if status.Status != "ok" {
		code = http.StatusServiceUnavailable
	}
	c.JSON(code, dto.NewSuccessResponse(status))
}
