package app

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/carloslema/lwtnn/internal/config"
	"github.com/carloslema/lwtnn/internal/fault"
	"github.com/carloslema/lwtnn/internal/hclconfig"
	"github.com/carloslema/lwtnn/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubLoader returns a fixed model or error.
type stubLoader struct {
	model *config.Model
	err   error
	paths []string
}

func (l *stubLoader) Load(_ context.Context, paths ...string) (*config.Model, error) {
	l.paths = paths
	return l.model, l.err
}

func setupApp(t *testing.T, cfg Config, loader config.Loader) (*App, *bytes.Buffer, *testutil.SafeBuffer) {
	t.Helper()

	appConfig, err := NewConfig(cfg)
	require.NoError(t, err)

	out := &bytes.Buffer{}
	logs := &testutil.SafeBuffer{}
	a, err := NewApp(out, logs, appConfig, loader)
	require.NoError(t, err)

	t.Cleanup(func() {
		if os.Getenv("LWTNN_TEST_LOGS") == "true" {
			t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), logs.String())
		}
	})
	return a, out, logs
}

func TestRun_DummyGraph(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	loader := &stubLoader{err: errors.New("must not be called")}
	a, out, logs := setupApp(t, Config{Node: NodeLast, LogLevel: "debug"}, loader)

	// --- Act ---
	err := a.Run(context.Background())

	// --- Assert ---
	require.NoError(t, err)
	assert.Equal(t, "1\n0\n1\n0\n", out.String())
	assert.Nil(t, loader.paths)
	assert.Contains(t, logs.String(), "dummy graph")
	assert.Contains(t, logs.String(), "mode=evaluate")
}

func TestRun_SelectedNode(t *testing.T) {
	t.Parallel()

	a, out, _ := setupApp(t, Config{Node: 2}, nil)

	require.NoError(t, a.Run(context.Background()))
	assert.Equal(t, "0\n1\n0\n1\n", out.String())
}

func TestRun_MissingNode(t *testing.T) {
	t.Parallel()

	a, out, _ := setupApp(t, Config{Node: 9}, nil)

	err := a.Run(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, fault.ErrEvaluation)
	assert.Empty(t, out.String())
}

func TestRun_EmitConfig(t *testing.T) {
	t.Parallel()

	a, out, _ := setupApp(t, Config{Node: NodeLast, EmitConfig: true}, nil)

	require.NoError(t, a.Run(context.Background()))
	assert.Contains(t, out.String(), `input "one"`)
	assert.Contains(t, out.String(), `node "concatenate"`)
	assert.Contains(t, out.String(), `layer "dense"`)

	reloaded, err := hclconfig.Parse(out.Bytes(), "emitted.hcl")
	require.NoError(t, err)
	assert.Len(t, reloaded.Nodes, len(a.Model().Nodes))
}

func TestRun_LoadsConfigurationFiles(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	dir := t.TempDir()
	path := filepath.Join(dir, "graph.hcl")
	hcl := `
node "input" {
  sources = [0]
  index   = 3
}

node "feed_forward" {
  sources = [0]
  index   = 0
}

layer "dense" {
  weights = [
    2, 0, 0,
    0, 2, 0,
    0, 0, 2,
  ]
  bias = [1, 1, 1]
}
`
	require.NoError(t, os.WriteFile(path, []byte(hcl), 0o600))
	a, out, _ := setupApp(t, Config{ConfigPaths: []string{path}, Node: NodeLast}, hclconfig.NewLoader())

	// --- Act ---
	err := a.Run(context.Background())

	// --- Assert ---
	require.NoError(t, err)
	assert.Equal(t, "1\n3\n5\n", out.String())
	assert.Equal(t, 1, a.Graph().StageCount())
}

func TestRun_RejectsOversizedInputSlot(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	loader := &stubLoader{model: &config.Model{
		Nodes: []config.Node{{Kind: config.KindInput, Sources: []int{1 << 40}, Index: 2}},
	}}
	a, out, _ := setupApp(t, Config{ConfigPaths: []string{"graph.hcl"}, Node: NodeLast}, loader)

	// --- Act ---
	err := a.Run(context.Background())

	// --- Assert ---
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to size dummy inputs")
	assert.Contains(t, err.Error(), "exceeds the limit")
	assert.Empty(t, out.String())
}

func TestNewApp_Failures(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		loader  *stubLoader
		wantErr string
		wantIs  error
	}{
		{
			name:    "load failure",
			loader:  &stubLoader{err: errors.New("disk on fire")},
			wantErr: "failed to load configuration: disk on fire",
		},
		{
			name: "cyclic graph",
			loader: &stubLoader{model: &config.Model{
				Nodes: []config.Node{
					{Kind: config.KindConcatenate, Sources: []int{1}},
					{Kind: config.KindConcatenate, Sources: []int{0}},
				},
			}},
			wantErr: "found cycle in graph",
			wantIs:  fault.ErrConfiguration,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			appConfig, err := NewConfig(Config{ConfigPaths: []string{"graph.hcl"}, Node: NodeLast})
			require.NoError(t, err)

			_, err = NewApp(&bytes.Buffer{}, &testutil.SafeBuffer{}, appConfig, tc.loader)

			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
			if tc.wantIs != nil {
				assert.ErrorIs(t, err, tc.wantIs)
			}
			assert.Equal(t, []string{"graph.hcl"}, tc.loader.paths)
		})
	}
}

func TestNewConfig_Validation(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{name: "defaults", cfg: Config{Node: NodeLast}},
		{name: "explicit node", cfg: Config{Node: 0}},
		{name: "node below last", cfg: Config{Node: -2}, wantErr: "invalid node -2"},
		{name: "negative port", cfg: Config{Node: NodeLast, ServePort: -1}, wantErr: "invalid serve port"},
		{name: "port too large", cfg: Config{Node: NodeLast, ServePort: 70000}, wantErr: "invalid serve port"},
		{name: "emit and serve", cfg: Config{Node: NodeLast, ServePort: 8080, EmitConfig: true}, wantErr: "cannot be used together"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := NewConfig(tc.cfg)
			if tc.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.cfg.Node, got.Node)
		})
	}
}

func TestNewConfig_CopiesPaths(t *testing.T) {
	paths := []string{"a.hcl"}
	got, err := NewConfig(Config{ConfigPaths: paths, Node: NodeLast})
	require.NoError(t, err)

	paths[0] = "b.hcl"
	assert.Equal(t, []string{"a.hcl"}, got.ConfigPaths)
}
