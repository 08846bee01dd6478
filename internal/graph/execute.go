package graph

import "fmt"

// Execute evaluates the graph. inputs must have one value per output of the
// Input node and outputs one slot per input of the Output node; the results
// are copied into outputs.
//
// Every node is evaluated at most once per call, so a value consumed by
// several downstream nodes is computed once. Executors receive freshly
// allocated slices.
func (g *Graph) Execute(inputs, outputs []any) error {
	if !g.complete {
		return fmt.Errorf("%w: graph %q is not complete", ErrState, g.name)
	}
	if len(inputs) != g.InputNode().OutputCount() {
		return fmt.Errorf("%w: graph %q expects %d inputs, got %d", ErrArityMismatch, g.name, g.InputNode().OutputCount(), len(inputs))
	}
	if len(outputs) != g.OutputNode().InputCount() {
		return fmt.Errorf("%w: graph %q expects %d outputs, got %d", ErrArityMismatch, g.name, g.OutputNode().InputCount(), len(outputs))
	}

	run := &execution{
		graph:    g,
		incoming: make([][]Connection, len(g.nodes)),
		cache:    make([][]any, len(g.nodes)),
		done:     make([]bool, len(g.nodes)),
	}
	for i, n := range g.nodes {
		run.incoming[i] = make([]Connection, n.InputCount())
	}
	for _, c := range g.connections {
		run.incoming[c.To][c.ToInput] = c
	}
	run.cache[InputIndex] = inputs
	run.done[InputIndex] = true

	out, err := run.eval(OutputIndex)
	if err != nil {
		return err
	}
	copy(outputs, out)
	return nil
}

// execution is the per-call state of Execute.
type execution struct {
	graph    *Graph
	incoming [][]Connection
	cache    [][]any
	done     []bool
}

func (e *execution) eval(n int) ([]any, error) {
	if e.done[n] {
		return e.cache[n], nil
	}

	nt := e.graph.nodes[n]
	args := make([]any, nt.InputCount())
	for i, c := range e.incoming[n] {
		upstream, err := e.eval(c.From)
		if err != nil {
			return nil, err
		}
		args[i] = upstream[c.FromOutput]
	}

	if nt.IsOutputRole() {
		e.cache[n], e.done[n] = args, true
		return args, nil
	}

	if nt.Executor() == nil {
		return nil, fmt.Errorf("%w: node %d (%s)", ErrNoExecutor, n, nt.Name())
	}
	results := make([]any, nt.OutputCount())
	if err := nt.Executor().Execute(args, results); err != nil {
		return nil, fmt.Errorf("node %d (%s): %w", n, nt.Name(), err)
	}
	e.cache[n], e.done[n] = results, true
	return results, nil
}
