package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/workplan/backend/internal/domain/shared"
	"github.com/workplan/backend/internal/infrastructure/logger"
	"github.com/workplan/backend/internal/interfaces/http/dto"
	"github.com/workplan/backend/internal/interfaces/http/middleware"
)

// BaseHandler provides common response helpers for HTTP handlers
type BaseHandler struct{}

// getRequestID extracts the request ID from the gin context
func (h *BaseHandler) getRequestID(c *gin.Context) string {
	if requestID, exists := c.Get("request_id"); exists {
		if id, ok := requestID.(string); ok {
			return id
		}
	}
	return ""
}

// Success sends a 200 response with data
func (h *BaseHandler) Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(data))
}

// SuccessWithMeta sends a 200 response with data and pagination metadata
func (h *BaseHandler) SuccessWithMeta(c *gin.Context, data interface{}, total int64, page, pageSize int) {
	c.JSON(http.StatusOK, dto.NewSuccessResponseWithMeta(data, total, page, pageSize))
}

// Created sends a 201 response with data
func (h *BaseHandler) Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, dto.NewSuccessResponse(data))
}

// NoContent sends a 204 response
func (h *BaseHandler) NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// Error sends an error response with the status derived from the code
func (h *BaseHandler) Error(c *gin.Context, code, message string) {
	status := dto.GetHTTPStatus(code)
	c.JSON(status, dto.NewErrorResponseWithRequestID(code, message, h.getRequestID(c)))
}

// ErrorWithStatus sends an error response with an explicit status
func (h *BaseHandler) ErrorWithStatus(c *gin.Context, status int, code, message string) {
	c.JSON(status, dto.NewErrorResponseWithRequestID(code, message, h.getRequestID(c)))
}

// BadRequest sends a 400 response
func (h *BaseHandler) BadRequest(c *gin.Context, message string) {
	h.ErrorWithStatus(c, http.StatusBadRequest, dto.ErrCodeBadRequest, message)
}

// BindingError sends a 400 response for a failed request binding,
// with per-field details when the error comes from the validator
func (h *BaseHandler) BindingError(c *gin.Context, err error) {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		c.JSON(http.StatusBadRequest, middleware.FormatValidationErrors(err, h.getRequestID(c)))
		return
	}
	h.BadRequest(c, err.Error())
}

// NotFound sends a 404 response
func (h *BaseHandler) NotFound(c *gin.Context, message string) {
	h.ErrorWithStatus(c, http.StatusNotFound, dto.ErrCodeNotFound, message)
}

// Conflict sends a 409 response
func (h *BaseHandler) Conflict(c *gin.Context, message string) {
	h.ErrorWithStatus(c, http.StatusConflict, dto.ErrCodeConflict, message)
}

// UnprocessableEntity sends a 422 response
func (h *BaseHandler) UnprocessableEntity(c *gin.Context, message string) {
	h.ErrorWithStatus(c, http.StatusUnprocessableEntity, dto.ErrCodeBusinessRule, message)
}

// InternalError sends a 500 response and logs the underlying error
func (h *BaseHandler) InternalError(c *gin.Context, err error) {
	logger.GetGinLogger(c).Error("Internal server error", zap.Error(err))
	h.ErrorWithStatus(c, http.StatusInternalServerError, dto.ErrCodeInternal, "internal server error")
}

// HandleDomainError maps a domain error to an HTTP response.
// Unrecognized errors become 500s.
func (h *BaseHandler) HandleDomainError(c *gin.Context, err error) {
	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		code := dto.NormalizeErrorCode(domainErr.Code)
		status := dto.GetHTTPStatus(code)
		if status == http.StatusInternalServerError && code != dto.ErrCodeInternal && code != dto.ErrCodeUnknown {
			// Domain code without a status mapping, treat as a business rule
			status = http.StatusUnprocessableEntity
		}
		c.JSON(status, dto.NewErrorResponseWithRequestID(code, domainErr.Message, h.getRequestID(c)))
		return
	}
	h.InternalError(c, err)
}
