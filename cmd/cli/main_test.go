package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/graphsolver/internal/hcl_adapter"
	"github.com/vk/graphsolver/internal/yaml_adapter"
)

func writeProblem(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestRun_ShouldExit(t *testing.T) {
	t.Parallel()

	out := &bytes.Buffer{}
	err := run(context.Background(), out, []string{"-h"})

	require.NoError(t, err, "run() should return a nil error when shouldExit is true")
	require.Contains(t, out.String(), "Usage:", "Expected help text to be printed to the output buffer")
}

func TestRun_ParseError(t *testing.T) {
	t.Parallel()

	err := run(context.Background(), &bytes.Buffer{}, []string{"--this-is-not-a-valid-flag"})

	require.Error(t, err, "run() should return an error when argument parsing fails")
	require.Contains(t, err.Error(), "flag provided but not defined: -this-is-not-a-valid-flag")
}

func TestRun_InvalidProblem(t *testing.T) {
	t.Parallel()

	path := writeProblem(t, "main.hcl", `
		problem "sum" {
			inputs = ["Float"]
		// Missing closing brace here
	`)
	err := run(context.Background(), &bytes.Buffer{}, []string{path})

	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to load problem")
}

func TestRun_SolvesProblem(t *testing.T) {
	t.Parallel()

	path := writeProblem(t, "identity.yaml", `
libraries: [arithmetic]
problem:
  name: identity
  inputs: [Float]
  outputs: [Float]
  cases:
    - inputs: [2]
      outputs: [2]
search:
  max_solutions: 1
`)
	out := &bytes.Buffer{}
	err := run(context.Background(), out, []string{"-workers", "1", "-log-level", "warn", path})

	require.NoError(t, err)
	assert.Contains(t, out.String(), "Best solution:")
	assert.Contains(t, out.String(), "return a")
}

func TestLoaderFor(t *testing.T) {
	assert.IsType(t, &yaml_adapter.Loader{}, loaderFor("p.yaml"))
	assert.IsType(t, &yaml_adapter.Loader{}, loaderFor("P.YML"))
	assert.IsType(t, &hcl_adapter.Loader{}, loaderFor("p.hcl"))
	assert.IsType(t, &hcl_adapter.Loader{}, loaderFor("problems/"))
}
