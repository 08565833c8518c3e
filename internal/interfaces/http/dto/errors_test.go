package dto

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetHTTPStatus(t *testing.T) {
	tests := []struct {
		name     string
		code     string
		expected int
	}{
		{"not found", ErrCodeNotFound, http.StatusNotFound},
		{"already exists", ErrCodeAlreadyExists, http.StatusConflict},
		{"invalid state", ErrCodeInvalidState, http.StatusUnprocessableEntity},
		{"invalid input", ErrCodeInvalidInput, http.StatusBadRequest},
		{"internal", ErrCodeInternal, http.StatusInternalServerError},
		{"self parent", "SELF_PARENT", http.StatusUnprocessableEntity},
		{"cycle detected", "CYCLE_DETECTED", http.StatusUnprocessableEntity},
		{"date order", "DATE_ORDER", http.StatusUnprocessableEntity},
		{"invalid percent", "INVALID_PERCENT", http.StatusBadRequest},
		{"project archived", "PROJECT_ARCHIVED", http.StatusConflict},
		{"unknown template", "UNKNOWN_TEMPLATE", http.StatusNotFound},
		{"missing name column", "MISSING_NAME_COLUMN", http.StatusBadRequest},
		{"unmapped code defaults to 500", "SOMETHING_ELSE", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, GetHTTPStatus(tt.code))
		})
	}
}

func TestNormalizeErrorCode(t *testing.T) {
	t.Run("maps generic domain codes", func(t *testing.T) {
		assert.Equal(t, ErrCodeNotFound, NormalizeErrorCode("NOT_FOUND"))
		assert.Equal(t, ErrCodeAlreadyExists, NormalizeErrorCode("ALREADY_EXISTS"))
		assert.Equal(t, ErrCodeInvalidInput, NormalizeErrorCode("INVALID_INPUT"))
	})

	t.Run("keeps domain-specific codes untouched", func(t *testing.T) {
		assert.Equal(t, "CYCLE_DETECTED", NormalizeErrorCode("CYCLE_DETECTED"))
		assert.Equal(t, "SELF_PARENT", NormalizeErrorCode("SELF_PARENT"))
	})

	t.Run("keeps standardized codes untouched", func(t *testing.T) {
		assert.Equal(t, ErrCodeNotFound, NormalizeErrorCode(ErrCodeNotFound))
	})
}

func TestNewSuccessResponseWithMeta(t *testing.T) {
	t.Run("rounds total pages up", func(t *testing.T) {
		resp := NewSuccessResponseWithMeta([]string{"a"}, 21, 1, 10)
		assert.True(t, resp.Success)
		assert.Equal(t, 3, resp.Meta.TotalPages)
	})

	t.Run("exact division", func(t *testing.T) {
		resp := NewSuccessResponseWithMeta([]string{"a"}, 20, 2, 10)
		assert.Equal(t, 2, resp.Meta.TotalPages)
	})
}

func TestNewErrorResponseWithRequestID(t *testing.T) {
	resp := NewErrorResponseWithRequestID(ErrCodeNotFound, "project not found", "req-123")
	assert.False(t, resp.Success)
	assert.Equal(t, "req-123", resp.Error.RequestID)
	assert.Equal(t, ErrCodeNotFound, resp.Error.Code)
}
