package render

import (
	"strings"

	"github.com/vk/graphsolver/internal/graph"
)

// ConnectionList renders g as its numbered node list followed by its
// connection list, one per line.
func ConnectionList(g *graph.Graph) string { return g.String() }

type variable struct {
	dataType *graph.DataType
	name     string
}

type call struct {
	node    int
	inputs  []variable
	outputs []variable
}

// function renders a graph as a small function body. Each value gets a
// generated variable name; unconnected inputs get a fresh name too.
type function struct {
	g     *graph.Graph
	calls []*call
	next  int
}

// Function renders g as a function listing, e.g.
//
//	Float sum(a: Float, b: Float):
//	  c = Add(a, b)
//	  return c
//
// Nodes that do not contribute to the output are omitted.
func Function(g *graph.Graph) string {
	f := &function{g: g}
	f.analyze(graph.InputIndex)
	out := f.analyze(graph.OutputIndex)

	var sb strings.Builder
	for _, c := range f.calls {
		nt := g.Node(c.node)
		switch {
		case c.node == graph.InputIndex:
			sb.WriteString(listVariables(out.inputs, true, false))
			sb.WriteByte(' ')
			sb.WriteString(g.Name())
			sb.WriteByte('(')
			sb.WriteString(listVariables(c.outputs, true, true))
			sb.WriteString("): ")
		case c.node == graph.OutputIndex:
			sb.WriteString("  return ")
			sb.WriteString(listVariables(c.inputs, false, true))
		default:
			sb.WriteString("  ")
			sb.WriteString(listVariables(c.outputs, false, true))
			sb.WriteString(" = ")
			sb.WriteString(nt.Name())
			sb.WriteByte('(')
			sb.WriteString(listVariables(c.inputs, false, true))
			sb.WriteByte(')')
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func (f *function) analyze(n int) *call {
	nt := f.g.Node(n)
	c := &call{node: n, inputs: make([]variable, nt.InputCount())}
	for i := range c.inputs {
		c.inputs[i] = f.variable(n, i)
	}
	c.outputs = make([]variable, nt.OutputCount())
	for i := range c.outputs {
		c.outputs[i] = variable{dataType: nt.Output(i), name: f.newName()}
	}
	f.calls = append(f.calls, c)
	return c
}

func (f *function) variable(n, in int) variable {
	conn, ok := f.g.IncomingConnection(n, in)
	if !ok {
		return variable{dataType: f.g.Node(n).Input(in), name: f.newName()}
	}
	for _, c := range f.calls {
		if c.node == conn.From {
			return c.outputs[conn.FromOutput]
		}
	}
	return f.analyze(conn.From).outputs[conn.FromOutput]
}

func (f *function) newName() string {
	name := VariableName(f.next)
	f.next++
	return name
}

// VariableName returns the generated name for the i-th variable: a, b, ...,
// z, ba, bb, ...
func VariableName(i int) string {
	const letters = "abcdefghijklmnopqrstuvwxyz"
	if i == 0 {
		return "a"
	}
	var buf []byte
	for ; i > 0; i /= len(letters) {
		buf = append([]byte{letters[i%len(letters)]}, buf...)
	}
	return string(buf)
}

func listVariables(vars []variable, types, names bool) string {
	var sb strings.Builder
	for i, v := range vars {
		if names {
			sb.WriteString(v.name)
		}
		if names && types {
			sb.WriteString(": ")
		}
		if types {
			sb.WriteString(v.dataType.Name())
		}
		if i < len(vars)-1 {
			sb.WriteString(", ")
		}
	}
	return sb.String()
}
