package logger_test

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/taskboard-api/internal/config"
	"github.com/phrazzld/taskboard-api/internal/platform/logger"
)

func TestSetupLevels(t *testing.T) {
	cases := []struct {
		configured string
		enabled    slog.Level
		disabled   slog.Level
	}{
		{"debug", slog.LevelDebug, slog.LevelDebug - 1},
		{"info", slog.LevelInfo, slog.LevelDebug},
		{"warn", slog.LevelWarn, slog.LevelInfo},
		{"error", slog.LevelError, slog.LevelWarn},
	}

	for _, tc := range cases {
		log := logger.Setup(config.ServerConfig{Port: 8080, LogLevel: tc.configured})
		require.NotNil(t, log)
		assert.True(t, log.Enabled(context.Background(), tc.enabled),
			"level %s should be enabled for %q", tc.enabled, tc.configured)
		assert.False(t, log.Enabled(context.Background(), tc.disabled),
			"level %s should be disabled for %q", tc.disabled, tc.configured)
	}
}

func TestSetupInvalidLevelFallsBackToInfo(t *testing.T) {
	log := logger.Setup(config.ServerConfig{Port: 8080, LogLevel: "verbose"})
	require.NotNil(t, log)
	assert.True(t, log.Enabled(context.Background(), slog.LevelInfo))
	assert.False(t, log.Enabled(context.Background(), slog.LevelDebug))
}

func TestSetupSetsDefaultLogger(t *testing.T) {
	log := logger.Setup(config.ServerConfig{Port: 8080, LogLevel: "warn"})
	assert.Equal(t, log, slog.Default())
}
