package logging_test

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keyfold/keyfold/pkg/logging"
)

func TestDefaultConfig(t *testing.T) {
	cfg := logging.DefaultConfig()
	require.NotNil(t, cfg)
	assert.Equal(t, "info", cfg.Level)
	assert.Equal(t, "auto", cfg.Format)
	assert.Equal(t, "stderr", cfg.Output)
}

func TestNewFromConfigLevels(t *testing.T) {
	// Save and restore the global level
	oldLevel := zerolog.GlobalLevel()
	defer zerolog.SetGlobalLevel(oldLevel)

	logger := logging.NewFromConfig(&logging.Config{Level: "warn", Format: "json"})
	assert.Equal(t, zerolog.WarnLevel, logger.GetLevel())

	// Invalid levels fall back to info
	logger = logging.NewFromConfig(&logging.Config{Level: "bogus", Format: "json"})
	assert.Equal(t, zerolog.InfoLevel, logger.GetLevel())
}

func TestTestLoggerCapturesOutput(t *testing.T) {
	tl := logging.NewTestLogger(t)

	tl.Info().Str("stage", "fingerprint").Msg("computed keys")
	tl.Debug().Msg("details")

	assert.True(t, tl.Contains("computed keys"))
	assert.True(t, tl.Contains("fingerprint"))
	assert.Len(t, tl.Lines(), 2)
}

func TestSetDefault(t *testing.T) {
	original := *logging.Default()
	defer logging.SetDefault(original)

	tl := logging.NewTestLogger(t)
	logging.SetDefault(*tl.Logger)

	logging.Info().Msg("routed through default")
	assert.True(t, tl.Contains("routed through default"))
}
