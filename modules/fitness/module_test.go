package fitness

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/graphsolver/internal/config"
	"github.com/vk/graphsolver/internal/graph"
	"github.com/vk/graphsolver/internal/registry"
	"github.com/zclconf/go-cty/cty"
)

type catalog []*graph.NodeType

func (c catalog) NodeTypes() []*graph.NodeType { return c }

// solutions returns the two complete graphs Input.0 -> Output and
// Input.1 -> Output, and a complete graph through a failing node.
func solutions(t *testing.T) (first, second, failing *graph.Graph) {
	t.Helper()
	f := graph.NewDataType("Float")
	in, err := graph.NewNodeType("Input", nil, nil, []*graph.DataType{f, f})
	require.NoError(t, err)
	out, err := graph.NewNodeType("Output", nil, []*graph.DataType{f}, nil)
	require.NoError(t, err)
	fail, err := graph.NewNodeType("Fail", graph.ExecutorFunc(func(i, o []any) error {
		return assert.AnError
	}), []*graph.DataType{f}, []*graph.DataType{f})
	require.NoError(t, err)

	root, err := graph.NewGraph("pick", in, out)
	require.NoError(t, err)
	children := root.Expand(catalog{fail})
	require.Len(t, children, 3)
	grand := children[2].Expand(nil)
	require.NotEmpty(t, grand)
	return children[0], children[1], grand[0]
}

func TestCases_Fitness(t *testing.T) {
	first, second, failing := solutions(t)
	cases := Cases{
		{Inputs: []any{1.0, 5.0}, Outputs: []any{5.0}},
		{Inputs: []any{2.0, 3.0}, Outputs: []any{int64(3)}},
	}

	v, err := cases.Fitness(second)
	require.NoError(t, err)
	assert.Zero(t, v)

	v, err = cases.Fitness(first)
	require.NoError(t, err)
	assert.Equal(t, -5.0, v)

	v, err = cases.Fitness(failing)
	require.NoError(t, err)
	assert.True(t, math.IsInf(v, -1))

	bad := Cases{{Inputs: []any{1.0}, Outputs: []any{1.0}}}
	_, err = bad.Fitness(first)
	require.ErrorIs(t, err, graph.ErrArityMismatch)
}

func TestDistance(t *testing.T) {
	assert.Equal(t, 0.0, distance("a", "a"))
	assert.Equal(t, 1.0, distance("a", "b"))
	assert.Equal(t, 1.0, distance(1.0, "b"))
	assert.Equal(t, 0.5, distance(int64(2), 2.5))
}

func TestFromProblemAndRegister(t *testing.T) {
	r := registry.New()
	(&Module{}).Register(r)
	factory, ok := r.Fitness("cases")
	require.True(t, ok)

	p := &config.Problem{
		Name:    "sum",
		Inputs:  []string{"Float", "Float"},
		Outputs: []string{"Float"},
		Cases: []*config.Case{{
			Inputs:  []cty.Value{cty.NumberIntVal(3), cty.NumberIntVal(4)},
			Outputs: []cty.Value{cty.NumberIntVal(7)},
		}},
	}
	eval, err := factory(p)
	require.NoError(t, err)
	assert.Equal(t, Cases{{Inputs: []any{3.0, 4.0}, Outputs: []any{7.0}}}, eval)
}
