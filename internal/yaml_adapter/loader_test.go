package yaml_adapter

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/graphsolver/internal/config"
	"github.com/zclconf/go-cty/cty"
)

const problemYAML = `
libraries: [arithmetic]
data_types:
  - name: Probability
    parents: [Float]
node_types:
  - name: Square
    inputs: [Float]
    outputs: [Float]
    body: ["in[0] * in[0]"]
problem:
  name: sum
  inputs: [Float, Float]
  outputs: [Float]
  cases:
    - inputs: [3, 4]
      outputs: [7]
axioms:
  - kind: max_connections
    limit: 6
heuristics:
  - kind: connection_count
    weight: -0.5
  - kind: min_connections
search:
  workers: 4
  max_processed: 1000
  timeout: 1m
`

func TestLoader_Load(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "problem.yaml"), []byte(problemYAML), 0o600))

	m, err := NewLoader().Load(context.Background(), dir)
	require.NoError(t, err)

	assert.Equal(t, []string{"arithmetic"}, m.Libraries)
	assert.Equal(t, []*config.DataType{{Name: "Probability", Parents: []string{"Float"}}}, m.DataTypes)
	require.Len(t, m.NodeTypes, 1)
	assert.Len(t, m.NodeTypes[0].Body, 1)

	require.NotNil(t, m.Problem)
	require.Len(t, m.Problem.Cases, 1)
	assert.True(t, m.Problem.Cases[0].Inputs[1].Equals(cty.NumberIntVal(4)).True())

	assert.Equal(t, []*config.Axiom{{Kind: "max_connections", Limit: 6}}, m.Axioms)
	assert.Equal(t, []*config.Heuristic{
		{Kind: "connection_count", Weight: -0.5},
		{Kind: "min_connections", Weight: 1},
	}, m.Heuristics)
	assert.Equal(t, &config.Search{Workers: 4, MaxProcessed: 1000, Timeout: time.Minute}, m.Search)
	require.NoError(t, m.Validate())
}

func TestLoader_Errors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"unknown key", "widgets: []", "not found in type"},
		{"bad expression", "node_types:\n  - name: X\n    body: [\"in[0] +\"]", "body 0"},
		{"bad timeout", "search:\n  timeout: soon", "invalid timeout"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewLoader().LoadBytes(context.Background(), []byte(tc.src), "test.yaml")
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.want)
		})
	}
}

func TestLoader_EmptyDocument(t *testing.T) {
	m, err := NewLoader().LoadBytes(context.Background(), nil, "empty.yaml")
	require.NoError(t, err)
	assert.Nil(t, m.Problem)
}
