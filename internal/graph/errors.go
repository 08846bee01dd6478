package graph

import (
	"errors"
	"fmt"
)

var (
	// ErrConfiguration is returned when a node type or graph is declared with
	// an invalid shape.
	ErrConfiguration = errors.New("invalid configuration")

	// ErrCyclicType is returned when a parent link would make the data type
	// hierarchy cyclic.
	ErrCyclicType = errors.New("cyclic data type")

	// ErrState is returned when an operation is attempted on a graph that is
	// not in the required state, e.g. executing an incomplete graph.
	ErrState = errors.New("invalid graph state")

	// ErrArityMismatch is returned when input or output buffers do not match
	// the arity of the graph's Input or Output node. It wraps ErrState.
	ErrArityMismatch = fmt.Errorf("%w: arity mismatch", ErrState)

	// ErrNoExecutor is returned when an interior node has no executor.
	ErrNoExecutor = errors.New("node type has no executor")
)
