package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zerolog.Level
	}{
		{"trace", zerolog.TraceLevel},
		{"debug", zerolog.DebugLevel},
		{"info", zerolog.InfoLevel},
		{"WARN", zerolog.WarnLevel},
		{"warning", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"", zerolog.InfoLevel},
		{"bogus", zerolog.InfoLevel},
	}
	for _, tc := range tests {
		require.Equal(t, tc.want, ParseLevel(tc.in), "level %q", tc.in)
	}
}

func TestZerologLogger_FieldsAndLevel(t *testing.T) {
	var buf bytes.Buffer
	log := NewZerologLogger(&buf, "warn", false)

	log.Info(context.Background(), "should be filtered")
	require.Zero(t, buf.Len())

	log.With("component", "test").Warn(context.Background(), "something odd", "count", 3)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	require.Equal(t, "something odd", entry["message"])
	require.Equal(t, "test", entry["component"])
	require.EqualValues(t, 3, entry["count"])
}
