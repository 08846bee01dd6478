package arithmetic

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/graphsolver/internal/environment"
	"github.com/vk/graphsolver/internal/graph"
	"github.com/vk/graphsolver/internal/registry"
)

func loadEnv(t *testing.T) *environment.Environment {
	t.Helper()
	env := environment.New()
	require.NoError(t, env.LoadLibrary(Library{}))
	return env
}

// nodeType finds the node type with the given name and first input type.
func nodeType(t *testing.T, env *environment.Environment, name, input string) *graph.NodeType {
	t.Helper()
	for _, nt := range env.NodeTypes() {
		if nt.Name() == name && nt.Input(0).Name() == input {
			return nt
		}
	}
	require.FailNow(t, "node type not found", "%s(%s)", name, input)
	return nil
}

func run(t *testing.T, nt *graph.NodeType, inputs ...any) (any, error) {
	t.Helper()
	out := make([]any, nt.OutputCount())
	err := nt.Executor().Execute(inputs, out)
	return out[0], err
}

func TestRegister(t *testing.T) {
	r := registry.New()
	(&Module{}).Register(r)
	lib, ok := r.Library("arithmetic")
	require.True(t, ok)

	env := environment.New()
	require.NoError(t, env.LoadLibrary(lib))
	assert.Len(t, env.NodeTypes(), 15)

	integer := env.DataType("Integer")
	assert.True(t, integer.IsInstanceOf(env.DataType("Float")))
	assert.True(t, integer.IsInstanceOf(env.DataType("Object")))

	require.NoError(t, env.LoadLibrary(lib), "loading twice keeps the type chain valid")
	assert.Len(t, env.DataType("Float").Parents(), 1)
}

func TestFloatOps(t *testing.T) {
	env := loadEnv(t)
	tests := []struct {
		name string
		in   []any
		want any
	}{
		{"Add", []any{3.0, 4.0}, 7.0},
		{"Subtract", []any{3.0, 4.5}, -1.5},
		{"Multiply", []any{int64(3), 2.5}, 7.5},
		{"Divide", []any{1.0, 4.0}, 0.25},
		{"Power", []any{2.0, 10.0}, 1024.0},
		{"SquareRoot", []any{9.0}, 3.0},
		{"Floor", []any{2.7}, int64(2)},
		{"Ceiling", []any{2.1}, int64(3)},
		{"Round", []any{2.5}, int64(3)},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := run(t, nodeType(t, env, tc.name, "Float"), tc.in...)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestIntegerOps(t *testing.T) {
	env := loadEnv(t)
	tests := []struct {
		name string
		a, b any
		want int64
	}{
		{"Add", int64(2), int64(3), 5},
		{"Subtract", int64(2), int64(3), -1},
		{"Multiply", int64(4), 3.0, 12},
		{"Divide", int64(7), int64(2), 3},
		{"Power", int64(3), int64(3), 27},
		{"Modulus", int64(7), int64(4), 3},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := run(t, nodeType(t, env, tc.name, "Integer"), tc.a, tc.b)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}

	_, err := run(t, nodeType(t, env, "Divide", "Integer"), int64(1), int64(0))
	require.ErrorIs(t, err, ErrDivisionByZero)
	_, err = run(t, nodeType(t, env, "Modulus", "Integer"), int64(1), int64(0))
	require.ErrorIs(t, err, ErrDivisionByZero)
}

func TestConversions(t *testing.T) {
	_, err := ToFloat("x")
	require.Error(t, err)
	_, err = ToInt(true)
	require.Error(t, err)

	v, err := ToInt(-2.9)
	require.NoError(t, err)
	assert.Equal(t, int64(-2), v)

	v, err = ToInt(float64(math.MinInt64))
	require.NoError(t, err)
	assert.Equal(t, int64(math.MinInt64), v)

	for _, f := range []float64{math.NaN(), math.Inf(1), math.Inf(-1), 1e19, -1e19} {
		_, err := ToInt(f)
		assert.ErrorIs(t, err, ErrIntegerOverflow, "%g", f)
	}
}

func TestIntegerPower(t *testing.T) {
	tests := []struct {
		a, b int64
		want int64
	}{
		{2, 10, 1024},
		{-3, 3, -27},
		{5, 0, 1},
		{0, 0, 1},
		{0, 7, 0},
		{1, math.MaxInt64, 1},
		{-1, math.MaxInt64, -1},
		{-1, -4, 1},
		{2, -1, 0},
		{-2, 63, math.MinInt64},
		{2, 62, 1 << 62},
	}
	for _, tc := range tests {
		got, err := powInt(tc.a, tc.b)
		require.NoError(t, err, "%d^%d", tc.a, tc.b)
		assert.Equal(t, tc.want, got, "%d^%d", tc.a, tc.b)
	}

	for _, tc := range [][2]int64{{2, 63}, {10, 19}, {-2, 64}, {3, math.MaxInt64}} {
		_, err := powInt(tc[0], tc[1])
		assert.ErrorIs(t, err, ErrIntegerOverflow, "%d^%d", tc[0], tc[1])
	}
	_, err := powInt(0, -1)
	assert.ErrorIs(t, err, ErrDivisionByZero)

	env := loadEnv(t)
	_, err = run(t, nodeType(t, env, "Power", "Integer"), int64(10), int64(30))
	require.ErrorIs(t, err, ErrIntegerOverflow)
	_, err = run(t, nodeType(t, env, "Floor", "Float"), math.Inf(1))
	require.ErrorIs(t, err, ErrIntegerOverflow)
}
