package logger

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
)

func TestPrettyHandler_LevelFiltering(t *testing.T) {
	color.NoColor = true

	var buf bytes.Buffer
	ctx := WithLogger(context.Background(), New(&buf, false, false))

	Info(ctx, "state changed", "status", "downloading")
	assert.Empty(t, buf.String())

	Warn(ctx, "non-semver tag", "tag", "latest")
	assert.Contains(t, buf.String(), "[WARN]")
	assert.Contains(t, buf.String(), "tag=latest")
}

func TestWith_CarriesAttributes(t *testing.T) {
	color.NoColor = true

	var buf bytes.Buffer
	ctx := WithLogger(context.Background(), New(&buf, false, true))
	ctx = With(ctx, "session", "abc-123")

	Info(ctx, "checking feed")
	Error(ctx, "feed failed", errors.New("boom"))

	out := buf.String()
	assert.Contains(t, out, "[INFO]  checking feed session=abc-123")
	assert.Contains(t, out, "[ERROR] feed failed session=abc-123 error=boom")
}

func TestFromContext_DefaultsToSlogDefault(t *testing.T) {
	assert.NotNil(t, FromContext(context.Background()))
}
