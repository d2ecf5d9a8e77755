package crewpram

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogger(t *testing.T) {
	t.Run("StagesAndSearch", func(t *testing.T) {
		var buf bytes.Buffer
		l := NewLogger(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

		_, err := Search(t.Context(), reference, 23, 10, WithLogger(l))
		require.NoError(t, err)

		out := buf.String()
		assert.Contains(t, out, `"msg":"stage completed"`)
		assert.Contains(t, out, `"processors":10`)
		assert.Contains(t, out, `"size":10`)
		assert.Contains(t, out, `"msg":"search completed"`)
		assert.Contains(t, out, `"position":6`)
	})

	t.Run("Failure", func(t *testing.T) {
		var buf bytes.Buffer
		l := NewLogger(slog.NewTextHandler(&buf, nil))

		_, err := Search(t.Context(), nil, 23, 10, WithLogger(l))
		require.Error(t, err)
		assert.Contains(t, buf.String(), "search failed")
	})

	t.Run("InfoLevelHidesStages", func(t *testing.T) {
		var buf bytes.Buffer
		l := NewLogger(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}))

		_, err := Search(t.Context(), reference, 23, 10, WithLogger(l))
		require.NoError(t, err)
		assert.Empty(t, buf.String())
	})

	t.Run("NilFallsBackToNoop", func(t *testing.T) {
		_, err := Search(t.Context(), reference, 23, 10, WithLogger(nil), WithMetricsCollector(nil))
		assert.NoError(t, err)
	})
}
