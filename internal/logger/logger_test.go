package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlogAdapter_JSON(t *testing.T) {
	var buf bytes.Buffer
	l := NewSlogAdapter(SlogConfig{Writer: &buf, IsJSON: true, Level: slog.LevelDebug})

	l.WithFields(Fields{"trace_id": "abc"}).Error("store failed", errors.New("boom"), Fields{"property_id": "p1"})

	var rec map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "store failed", rec["msg"])
	assert.Equal(t, "ERROR", rec["level"])
	assert.Equal(t, "abc", rec["trace_id"])
	assert.Equal(t, "p1", rec["property_id"])
	assert.Equal(t, "boom", rec["err"])
}

func TestSlogAdapter_RespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	l := NewSlogAdapter(SlogConfig{Writer: &buf, Level: slog.LevelWarn})

	l.Info("hidden", nil)
	l.Warn("shown", nil)

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.True(t, strings.Contains(out, "shown"))
}

func TestMultiLogger_FansOut(t *testing.T) {
	var a, b bytes.Buffer
	l := NewMultiLogger(
		NewSlogAdapter(SlogConfig{Writer: &a}),
		nil,
		NewSlogAdapter(SlogConfig{Writer: &b}),
	)

	l.WithFields(Fields{"k": "v"}).Info("hello", nil)

	assert.Contains(t, a.String(), "hello")
	assert.Contains(t, b.String(), "k=v")
}

func TestFromContext(t *testing.T) {
	assert.Equal(t, Nop(), FromContext(context.Background()))

	l := NewSlogAdapter(SlogConfig{})
	ctx := ContextWithLogger(context.Background(), l)
	assert.Same(t, l, FromContext(ctx))
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warning"))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("whatever"))
}
