package correlation

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewID_Unique(t *testing.T) {
	ids := make(map[string]struct{}, 100)
	for range 100 {
		id := NewID()
		_, seen := ids[id]
		assert.False(t, seen, "duplicate ID generated: %s", id)
		ids[id] = struct{}{}
	}
}

func TestWithID_RoundTrip(t *testing.T) {
	ctx := WithID(context.Background(), "abc-123")

	id, ok := ID(ctx)
	require.True(t, ok)
	assert.Equal(t, "abc-123", id)
}

func TestID_Missing(t *testing.T) {
	_, ok := ID(context.Background())
	assert.False(t, ok)
}

func TestHandler_InjectsRequestID(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewHandler(slog.NewTextHandler(&buf, nil)))

	ctx := WithID(context.Background(), "req-42")
	logger.InfoContext(ctx, "converting")

	assert.Contains(t, buf.String(), "request_id=req-42")
}

func TestHandler_NoIDNoAttribute(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewHandler(slog.NewTextHandler(&buf, nil)))

	logger.InfoContext(context.Background(), "converting")

	assert.NotContains(t, buf.String(), "request_id")
}
