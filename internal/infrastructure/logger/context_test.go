package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestWithContext(t *testing.T) {
	logger := zap.NewNop()
	ctx := WithContext(context.Background(), logger)

	retrieved := FromContext(ctx)
	assert.Same(t, logger, retrieved)
}

func TestFromContext_Missing(t *testing.T) {
	// Should return a usable no-op logger, never nil
	logger := FromContext(context.Background())
	require.NotNil(t, logger)
	logger.Info("should not panic")
}

func TestWithRequestID(t *testing.T) {
	core, recorded := observer.New(zapcore.InfoLevel)
	logger := zap.New(core)

	ctx, enriched := WithRequestID(context.Background(), logger, "req-123")

	assert.Equal(t, "req-123", GetRequestID(ctx))
	assert.Same(t, enriched, FromContext(ctx))

	enriched.Info("hello")
	logs := recorded.All()
	require.Len(t, logs, 1)

	hasRequestID := false
	for _, field := range logs[0].Context {
		if field.Key == "request_id" {
			hasRequestID = true
			assert.Equal(t, "req-123", field.String)
		}
	}
	assert.True(t, hasRequestID)
}

func TestWithProjectID(t *testing.T) {
	core, recorded := observer.New(zapcore.InfoLevel)
	logger := zap.New(core)

	ctx, enriched := WithProjectID(context.Background(), logger, "proj-42")

	assert.Equal(t, "proj-42", GetProjectID(ctx))

	enriched.Info("hello")
	logs := recorded.All()
	require.Len(t, logs, 1)

	hasProjectID := false
	for _, field := range logs[0].Context {
		if field.Key == "project_id" {
			hasProjectID = true
			assert.Equal(t, "proj-42", field.String)
		}
	}
	assert.True(t, hasProjectID)
}

func TestGetRequestID_Missing(t *testing.T) {
	assert.Equal(t, "", GetRequestID(context.Background()))
}

func TestGetProjectID_Missing(t *testing.T) {
	assert.Equal(t, "", GetProjectID(context.Background()))
}
