package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetermineLogLevel(t *testing.T) {
	tests := []struct {
		name   string
		config Config
		want   string
	}{
		{name: "default", config: Config{}, want: "info"},
		{name: "verbose", config: Config{Verbose: true}, want: "debug"},
		{name: "quiet", config: Config{Quiet: true}, want: "warn"},
		{name: "quiet wins over verbose", config: Config{Verbose: true, Quiet: true}, want: "warn"},
		{name: "explicit level wins", config: Config{LogLevel: "error", Verbose: true}, want: "error"},
		{name: "invalid level falls back", config: Config{LogLevel: "loud"}, want: "info"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, determineLogLevel(&tt.config))
		})
	}
}

func TestValidateLogLevel(t *testing.T) {
	for _, level := range []string{"trace", "debug", "info", "warn", "error"} {
		assert.Equal(t, level, validateLogLevel(level))
	}
	assert.Equal(t, "info", validateLogLevel("noisy"))
}

func TestDelimiterRune(t *testing.T) {
	assert.Equal(t, ',', (&Config{}).DelimiterRune())
	assert.Equal(t, ';', (&Config{Delimiter: ";"}).DelimiterRune())
	assert.Equal(t, '\t', (&Config{Delimiter: "\t"}).DelimiterRune())
	assert.Equal(t, ',', (&Config{Delimiter: "ab"}).DelimiterRune())
}
