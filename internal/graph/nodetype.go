package graph

import (
	"fmt"
	"slices"
	"strings"
)

// Executor computes the outputs of a node from its inputs.
//
// Implementations must be pure and deterministic, safe to call from many
// goroutines at once, and must not retain or modify either slice after
// returning. outputs always has the length of the node type's output list.
type Executor interface {
	Execute(inputs, outputs []any) error
}

// ExecutorFunc adapts an ordinary function to the Executor interface.
type ExecutorFunc func(inputs, outputs []any) error

// Execute calls f(inputs, outputs).
func (f ExecutorFunc) Execute(inputs, outputs []any) error {
	return f(inputs, outputs)
}

// NodeType is an immutable typed function signature. Node types are shared by
// pointer between every graph that uses them.
type NodeType struct {
	name     string
	inputs   []*DataType
	outputs  []*DataType
	executor Executor
}

// NewNodeType creates a node type. The input and output lists are copied. It
// fails with ErrConfiguration when both lists are empty or contain a nil type.
// Input and Output role node types may have a nil executor.
func NewNodeType(name string, executor Executor, inputs, outputs []*DataType) (*NodeType, error) {
	if len(inputs) == 0 && len(outputs) == 0 {
		return nil, fmt.Errorf("%w: node type %q has no inputs or outputs", ErrConfiguration, name)
	}
	if slices.Contains(inputs, nil) || slices.Contains(outputs, nil) {
		return nil, fmt.Errorf("%w: node type %q has a nil data type", ErrConfiguration, name)
	}
	return &NodeType{
		name:     name,
		inputs:   slices.Clone(inputs),
		outputs:  slices.Clone(outputs),
		executor: executor,
	}, nil
}

// Name returns the node type name.
func (n *NodeType) Name() string { return n.name }

// IsInputRole reports whether the node type has no inputs.
func (n *NodeType) IsInputRole() bool { return len(n.inputs) == 0 }

// IsOutputRole reports whether the node type has no outputs.
func (n *NodeType) IsOutputRole() bool { return len(n.outputs) == 0 }

// InputCount returns the number of input slots.
func (n *NodeType) InputCount() int { return len(n.inputs) }

// OutputCount returns the number of output slots.
func (n *NodeType) OutputCount() int { return len(n.outputs) }

// Input returns the data type of input slot i.
func (n *NodeType) Input(i int) *DataType { return n.inputs[i] }

// Output returns the data type of output slot i.
func (n *NodeType) Output(i int) *DataType { return n.outputs[i] }

// Inputs returns a copy of the input type list.
func (n *NodeType) Inputs() []*DataType { return slices.Clone(n.inputs) }

// Outputs returns a copy of the output type list.
func (n *NodeType) Outputs() []*DataType { return slices.Clone(n.outputs) }

// Executor returns the executor, which may be nil for Input and Output roles.
func (n *NodeType) Executor() Executor { return n.executor }

// String renders the signature, e.g. "Float Add(Float, Float)" or
// "void Output(Float)".
func (n *NodeType) String() string {
	var sb strings.Builder
	if len(n.outputs) == 0 {
		sb.WriteString("void")
	} else {
		sb.WriteString(joinTypes(n.outputs))
	}
	sb.WriteByte(' ')
	sb.WriteString(n.name)
	sb.WriteByte('(')
	sb.WriteString(joinTypes(n.inputs))
	sb.WriteByte(')')
	return sb.String()
}

func joinTypes(types []*DataType) string {
	names := make([]string, len(types))
	for i, t := range types {
		names[i] = t.name
	}
	return strings.Join(names, ", ")
}
