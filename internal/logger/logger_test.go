package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromContextAddsRequestFields(t *testing.T) {
	var buf bytes.Buffer
	InitWithWriter(&buf, "production", "info")

	ctx := WithUserID(WithRequestID(context.Background(), "req-1"), "user-1")
	CtxInfo(ctx, "hello", "k", "v")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "hello", entry["msg"])
	assert.Equal(t, "req-1", entry["request_id"])
	assert.Equal(t, "user-1", entry["user_id"])
	assert.Equal(t, "v", entry["k"])
}

func TestLevelOverride(t *testing.T) {
	var buf bytes.Buffer
	InitWithWriter(&buf, "production", "warn")

	Info("dropped")
	assert.Zero(t, buf.Len())

	Warn("kept")
	assert.Contains(t, buf.String(), "kept")
}
