package cli

import (
	"bytes"
	"testing"

	"github.com/carloslema/lwtnn/internal/app"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_Defaults(t *testing.T) {
	t.Parallel()

	cfg, shouldExit, err := Parse(nil, &bytes.Buffer{})

	require.NoError(t, err)
	assert.False(t, shouldExit)
	assert.Empty(t, cfg.ConfigPaths)
	assert.Equal(t, app.NodeLast, cfg.Node)
	assert.False(t, cfg.EmitConfig)
	assert.Zero(t, cfg.ServePort)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, "warn", cfg.LogLevel)
}

func TestParse_Flags(t *testing.T) {
	t.Parallel()

	args := []string{
		"-c", "layers.hcl",
		"--config", "nodes.hcl",
		"-node", "3",
		"-serve-port", "8080",
		"-log-format", "JSON",
		"-log-level", "Debug",
		"extra/",
	}

	cfg, shouldExit, err := Parse(args, &bytes.Buffer{})

	require.NoError(t, err)
	assert.False(t, shouldExit)
	assert.Equal(t, []string{"layers.hcl", "nodes.hcl", "extra/"}, cfg.ConfigPaths)
	assert.Equal(t, 3, cfg.Node)
	assert.Equal(t, 8080, cfg.ServePort)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestParse_Help(t *testing.T) {
	t.Parallel()

	out := &bytes.Buffer{}
	cfg, shouldExit, err := Parse([]string{"-h"}, out)

	require.NoError(t, err)
	assert.True(t, shouldExit)
	assert.Nil(t, cfg)
	assert.Contains(t, out.String(), "Usage:")
}

func TestParse_Errors(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		args    []string
		wantMsg string
	}{
		{name: "unknown flag", args: []string{"-bogus"}, wantMsg: "flag provided but not defined"},
		{name: "bad log format", args: []string{"-log-format", "xml"}, wantMsg: "invalid log-format"},
		{name: "bad log level", args: []string{"-log-level", "trace"}, wantMsg: "invalid log-level"},
		{name: "bad node", args: []string{"-node", "-5"}, wantMsg: "invalid node -5"},
		{name: "emit and serve", args: []string{"-emit-config", "-serve-port", "9000"}, wantMsg: "cannot be used together"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, shouldExit, err := Parse(tc.args, &bytes.Buffer{})

			require.Error(t, err)
			assert.False(t, shouldExit)
			var exitErr *ExitError
			require.ErrorAs(t, err, &exitErr)
			assert.Equal(t, 2, exitErr.Code)
			assert.Contains(t, exitErr.Message, tc.wantMsg)
		})
	}
}
