package app

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/graphsolver/internal/config"
	"github.com/vk/graphsolver/internal/environment"
	"github.com/vk/graphsolver/internal/graph"
	"github.com/vk/graphsolver/internal/hcl_adapter"
	"github.com/vk/graphsolver/internal/scheduler"
)

// safeBuffer is a thread-safe buffer for capturing log output in tests.
type safeBuffer struct {
	b  bytes.Buffer
	mu sync.Mutex
}

func (b *safeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.Write(p)
}

func (b *safeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.String()
}

const sumProblem = `
library "arithmetic" {}

problem "sum" {
  inputs  = ["Float", "Float"]
  outputs = ["Float"]

  case {
    inputs  = [3, 4]
    outputs = [7]
  }
  case {
    inputs  = [1.5, 2]
    outputs = [3.5]
  }
}

axiom "max_connections" {
  limit = 3
}

search {
  workers = 2
}
`

// setupApp writes src to a problem file and builds an app for it.
func setupApp(t *testing.T, src string, cfg Config) (*App, *safeBuffer) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "problem.hcl")
	require.NoError(t, os.WriteFile(path, []byte(src), 0o600))

	cfg.ProblemPath = path
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	out := &safeBuffer{}
	a, err := NewApp(out, &cfg, hcl_adapter.NewLoader())
	require.NoError(t, err)

	t.Cleanup(func() {
		if os.Getenv("GRAPHSOLVER_TEST_LOGS") == "true" {
			t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), out.String())
		}
	})
	return a, out
}

func TestNewConfig(t *testing.T) {
	_, err := NewConfig(Config{})
	require.Error(t, err)

	_, err = NewConfig(Config{ProblemPath: "p.hcl", Workers: -1})
	require.Error(t, err)

	_, err = NewConfig(Config{ProblemPath: "p.hcl", Timeout: -time.Second})
	require.Error(t, err)

	cfg, err := NewConfig(Config{ProblemPath: "p.hcl", Workers: 3})
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Workers)
}

func TestResolveSettings(t *testing.T) {
	search := &config.Search{Workers: 2, MaxSolutions: 5, Timeout: time.Minute}

	s := resolveSettings(&Config{Workers: 8}, search)
	assert.Equal(t, 8, s.workers, "command line wins")
	assert.Equal(t, int64(5), s.maxSolutions)
	assert.Zero(t, s.maxProcessed)
	assert.Equal(t, time.Minute, s.timeout)
	assert.Equal(t, defaultProgressInterval, s.progressInterval)
	assert.Equal(t, defaultTopN, s.topN)

	s = resolveSettings(&Config{}, nil)
	assert.Equal(t, runtime.NumCPU(), s.workers)
	assert.Zero(t, s.timeout)
}

func TestNewApp_BuildsEnvironment(t *testing.T) {
	a, _ := setupApp(t, sumProblem+`
data_type "Probability" {
  parents = ["Float"]
}

node_type "Square" {
  inputs  = ["Float"]
  outputs = ["Float"]
  body    = [in[0] * in[0]]
}
`, Config{})

	env := a.Environment()
	assert.Equal(t, []string{"arithmetic"}, env.Libraries())
	assert.True(t, env.HasFitness())

	prob, ok := env.LookupDataType("Probability")
	require.True(t, ok)
	float, _ := env.LookupDataType("Float")
	assert.True(t, prob.IsInstanceOf(float))

	sq, ok := env.NodeType("Square")
	require.True(t, ok)
	out := make([]any, 1)
	require.NoError(t, sq.Executor().Execute([]any{3.0}, out))
	assert.Equal(t, 9.0, out[0])

	in, ok := env.InputNodeType()
	require.True(t, ok)
	assert.Equal(t, 2, in.OutputCount())
	outNT, ok := env.OutputNodeType()
	require.True(t, ok)
	assert.Equal(t, 1, outNT.InputCount())
}

func TestNewApp_Errors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{
			name: "unknown library",
			src: `library "geometry" {}
problem "p" {
  inputs  = ["Float"]
  outputs = ["Float"]
}`,
			want: "unknown library 'geometry'",
		},
		{
			name: "unknown data type",
			src: `library "arithmetic" {}
problem "p" {
  inputs  = ["Vector"]
  outputs = ["Float"]
}`,
			want: `unknown data type "Vector"`,
		},
		{
			name: "cyclic data types",
			src: `library "arithmetic" {}
data_type "A" { parents = ["B"] }
data_type "B" { parents = ["A"] }
problem "p" {
  inputs  = ["Float"]
  outputs = ["Float"]
}`,
			want: "cannot extend",
		},
		{
			name: "bad axiom limit",
			src: `library "arithmetic" {}
axiom "max_connections" { limit = 0 }
problem "p" {
  inputs  = ["Float"]
  outputs = ["Float"]
}`,
			want: "limit must be positive",
		},
		{
			name: "missing problem",
			src:  `library "arithmetic" {}`,
			want: "problem",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "problem.hcl")
			require.NoError(t, os.WriteFile(path, []byte(tc.src), 0o600))
			_, err := NewApp(&safeBuffer{}, &Config{ProblemPath: path}, hcl_adapter.NewLoader())
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.want)
		})
	}

	t.Run("missing file", func(t *testing.T) {
		_, err := NewApp(&safeBuffer{}, &Config{ProblemPath: filepath.Join(t.TempDir(), "nope.hcl")}, hcl_adapter.NewLoader())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to load problem")
	})
}

func TestApp_Run_SolvesSum(t *testing.T) {
	a, out := setupApp(t, sumProblem, Config{})

	require.NoError(t, a.Run(context.Background()))

	s := out.String()
	assert.Contains(t, s, stopExhausted)
	assert.Contains(t, s, "Best solution:")
	assert.Regexp(t, regexp.MustCompile(`Float sum\(a: Float, b: Float\): \n  c = Add\((a, b|b, a)\)\n  return c\n$`), s)
}

func TestApp_Run_MaxSolutions(t *testing.T) {
	a, out := setupApp(t, `
library "arithmetic" {}

problem "grow" {
  inputs  = ["Float"]
  outputs = ["Float"]
}

search {
  max_solutions = 3
}
`, Config{Workers: 2, Markdown: true})

	require.NoError(t, a.Run(context.Background()))
	s := out.String()
	assert.Contains(t, s, stopMaxSolutions)
	assert.Contains(t, s, "| # |")
}

func TestApp_Run_DeadEnd(t *testing.T) {
	a, out := setupApp(t, `
library "arithmetic" {}

data_type "Text" {}

problem "impossible" {
  inputs  = ["Float"]
  outputs = ["Text"]
}
`, Config{Workers: 1})

	require.NoError(t, a.Run(context.Background()))
	s := out.String()
	assert.Contains(t, s, stopExhausted)
	assert.Contains(t, s, "No solutions found.")
}

func TestApp_Run_Cancelled(t *testing.T) {
	a, out := setupApp(t, `
library "arithmetic" {}

problem "grow" {
  inputs  = ["Float"]
  outputs = ["Float"]
}
`, Config{Workers: 2})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.NoError(t, a.Run(ctx))
	assert.Contains(t, out.String(), stopCancelled)
}

func TestApp_Run_Timeout(t *testing.T) {
	a, out := setupApp(t, `
library "arithmetic" {}

problem "grow" {
  inputs  = ["Float"]
  outputs = ["Float"]
}
`, Config{Workers: 2, Timeout: 50 * time.Millisecond})

	require.NoError(t, a.Run(context.Background()))
	assert.Contains(t, out.String(), stopTimeout)
}

func TestApp_StatsEndpoint(t *testing.T) {
	a, _ := setupApp(t, sumProblem, Config{})
	srv := httptest.NewServer(a.healthcheckMux())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	getStats := func() statsResponse {
		t.Helper()
		resp, err := http.Get(srv.URL + "/stats")
		require.NoError(t, err)
		defer resp.Body.Close()
		var body statsResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		return body
	}

	idle := getStats()
	assert.Equal(t, "sum", idle.Problem)
	assert.False(t, idle.Running)

	tree, err := scheduler.NewTree("sum", a.env)
	require.NoError(t, err)
	a.started = time.Now()
	a.tree.Store(tree)

	running := getStats()
	assert.True(t, running.Running)
	assert.Equal(t, 1, running.OpenGraphs)
	assert.Nil(t, running.BestScore)
}

func TestRankSolutions(t *testing.T) {
	env := environment.New()
	f := env.DataType("Float")
	in, err := graph.NewNodeType("Input", nil, nil, []*graph.DataType{f, f, f})
	require.NoError(t, err)
	out, err := graph.NewNodeType("Output", nil, []*graph.DataType{f}, nil)
	require.NoError(t, err)
	env.AddNodeType(in)
	env.AddNodeType(out)

	root, err := graph.NewGraph("pick", in, out)
	require.NoError(t, err)
	children := root.Expand(env)
	require.Len(t, children, 3)
	g1, g2, g3 := children[0], children[1], children[2]

	fitness := map[*graph.Graph]float64{g1: 1, g3: 5}
	env.AddFitnessEvaluator(environment.FitnessFunc(func(g *graph.Graph) (float64, error) {
		v, ok := fitness[g]
		if !ok {
			return 0, errors.New("no fitness")
		}
		return v, nil
	}))

	a := &App{env: env}
	results := []scheduler.Result{{Graph: g1, Score: 10}, {Graph: g2, Score: 20}, {Graph: g3, Score: 0}}

	ranked := a.rankSolutions(context.Background(), results, 0)
	require.Len(t, ranked, 3)
	assert.Same(t, g3, ranked[0].Graph)
	assert.Same(t, g1, ranked[1].Graph)
	assert.Same(t, g2, ranked[2].Graph)
	assert.Nil(t, ranked[2].Fitness)

	assert.Len(t, a.rankSolutions(context.Background(), results, 2), 2)
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger("warn", "json", &buf)
	logger.Info("hidden")
	logger.Warn("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"msg":"shown"`)

	buf.Reset()
	newLogger("loud", "text", &buf).Info("fallback")
	assert.Contains(t, buf.String(), "msg=fallback")
}
