package cli

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/graphsolver/internal/app"
)

func TestParse(t *testing.T) {
	t.Run("positional path and defaults", func(t *testing.T) {
		cfg, exit, err := Parse([]string{"sum.hcl"}, &bytes.Buffer{})
		require.NoError(t, err)
		require.False(t, exit)
		assert.Equal(t, &app.Config{ProblemPath: "sum.hcl", LogFormat: "text", LogLevel: "info"}, cfg)
	})

	t.Run("all flags", func(t *testing.T) {
		cfg, exit, err := Parse([]string{
			"-p", "sum.yaml",
			"-log-format", "JSON",
			"-log-level", "debug",
			"-workers", "4",
			"-max-solutions", "5",
			"-max-processed", "1000",
			"-timeout", "30s",
			"-progress-interval", "250ms",
			"-progress-url", "http://localhost:3000/socket.io/",
			"-healthcheck-port", "8080",
			"-top", "3",
			"-format", "markdown",
		}, &bytes.Buffer{})
		require.NoError(t, err)
		require.False(t, exit)
		assert.Equal(t, &app.Config{
			ProblemPath:      "sum.yaml",
			LogFormat:        "json",
			LogLevel:         "debug",
			HealthcheckPort:  8080,
			Workers:          4,
			MaxSolutions:     5,
			MaxProcessed:     1000,
			Timeout:          30 * time.Second,
			ProgressInterval: 250 * time.Millisecond,
			ProgressURL:      "http://localhost:3000/socket.io/",
			TopN:             3,
			Markdown:         true,
		}, cfg)
	})

	t.Run("problem flag wins over positional", func(t *testing.T) {
		cfg, _, err := Parse([]string{"-problem", "a.hcl", "b.hcl"}, &bytes.Buffer{})
		require.NoError(t, err)
		assert.Equal(t, "a.hcl", cfg.ProblemPath)
	})

	t.Run("no path prints usage", func(t *testing.T) {
		out := &bytes.Buffer{}
		cfg, exit, err := Parse(nil, out)
		require.NoError(t, err)
		assert.True(t, exit)
		assert.Nil(t, cfg)
		assert.Contains(t, out.String(), "Usage:")
	})

	t.Run("help", func(t *testing.T) {
		_, exit, err := Parse([]string{"-h"}, &bytes.Buffer{})
		require.NoError(t, err)
		assert.True(t, exit)
	})
}

func TestParse_Errors(t *testing.T) {
	tests := map[string][]string{
		"unknown flag":      {"-nope"},
		"bad log format":    {"-log-format", "xml", "p.hcl"},
		"bad log level":     {"-log-level", "trace", "p.hcl"},
		"bad output format": {"-format", "csv", "p.hcl"},
		"negative workers":  {"-workers", "-1", "p.hcl"},
		"bad duration":      {"-timeout", "soon", "p.hcl"},
	}
	for name, args := range tests {
		t.Run(name, func(t *testing.T) {
			_, exit, err := Parse(args, &bytes.Buffer{})
			assert.False(t, exit)
			var exitErr *ExitError
			require.ErrorAs(t, err, &exitErr)
			assert.Equal(t, 2, exitErr.Code)
		})
	}
}
