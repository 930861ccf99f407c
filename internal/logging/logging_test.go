package logging

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		raw   string
		level zerolog.Level
		ok    bool
	}{
		{"", zerolog.InfoLevel, false},
		{"debug", zerolog.DebugLevel, true},
		{" WARN ", zerolog.WarnLevel, true},
		{"warning", zerolog.WarnLevel, true},
		{"off", zerolog.Disabled, true},
		{"loud", zerolog.InfoLevel, false},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			level, ok := ParseLevel(tt.raw)
			require.Equal(t, tt.level, level)
			require.Equal(t, tt.ok, ok)
		})
	}
}

func TestConfigure_WritesComponentField(t *testing.T) {
	t.Setenv(EnvLogLevel, "")
	var buf bytes.Buffer
	logger := Configure(Options{Profile: ProfileTest, Out: &buf})

	display := Component(logger, "display")
	display.Debug().Str("path", "/a.jpg").Msg("rendered")

	out := buf.String()
	require.Contains(t, out, "rendered")
	require.Contains(t, out, "component=display")
	require.Contains(t, out, "path=/a.jpg")
}

func TestConfigure_EnvOverridesLevel(t *testing.T) {
	t.Setenv(EnvLogLevel, "error")
	var buf bytes.Buffer
	logger := Configure(Options{Profile: ProfileTest, Level: "debug", Out: &buf})

	logger.Info().Msg("hidden")
	logger.Error().Msg("shown")

	require.NotContains(t, buf.String(), "hidden")
	require.Contains(t, buf.String(), "shown")
}
