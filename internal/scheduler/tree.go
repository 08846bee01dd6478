package scheduler

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/vk/graphsolver/internal/environment"
	"github.com/vk/graphsolver/internal/graph"
)

// Tree is the shared state of one search: the open and solution collections,
// the environment they are explored against, and progress counters.
type Tree struct {
	env       *environment.Environment
	open      Queue
	solutions Queue
	processed atomic.Int64
	found     atomic.Int64
	// pending counts open graphs plus graphs taken but not yet finished.
	pending atomic.Int64
}

// Stats is a point-in-time snapshot of a Tree's counters.
type Stats struct {
	GraphsProcessed int64 `json:"graphs_processed"`
	SolutionsFound  int64 `json:"solutions_found"`
	OpenGraphs      int   `json:"open_graphs"`
}

// NewTree creates a tree seeded with the root graph built from env's input
// and output node types.
func NewTree(name string, env *environment.Environment) (*Tree, error) {
	in, ok := env.InputNodeType()
	if !ok {
		return nil, fmt.Errorf("%w: environment has no input node type", graph.ErrConfiguration)
	}
	out, ok := env.OutputNodeType()
	if !ok {
		return nil, fmt.Errorf("%w: environment has no output node type", graph.ErrConfiguration)
	}
	root, err := graph.NewGraph(name, in, out)
	if err != nil {
		return nil, err
	}
	return NewTreeFromRoot(env, root), nil
}

// NewTreeFromRoot creates a tree seeded with root at score zero.
func NewTreeFromRoot(env *environment.Environment, root *graph.Graph) *Tree {
	t := &Tree{env: env}
	t.PutGraph(root, 0)
	return t
}

// Environment returns the environment the tree is searched against.
func (t *Tree) Environment() *environment.Environment { return t.env }

// NextGraph takes the best open graph, blocking until one is available or ctx
// is done. Every successful take counts as one processed graph and must be
// followed by a call to FinishGraph once its children have been queued.
func (t *Tree) NextGraph(ctx context.Context) (*graph.Graph, error) {
	r, err := t.open.Take(ctx)
	if err != nil {
		return nil, err
	}
	t.processed.Add(1)
	return r.Graph, nil
}

// PutGraph queues an incomplete graph for expansion.
func (t *Tree) PutGraph(g *graph.Graph, score float64) {
	t.pending.Add(1)
	t.open.Push(g, score)
}

// FinishGraph marks a graph returned by NextGraph as fully expanded.
func (t *Tree) FinishGraph() { t.pending.Add(-1) }

// Exhausted reports whether the search space is used up: nothing is open and
// no taken graph can still produce children.
func (t *Tree) Exhausted() bool { return t.pending.Load() == 0 }

// PutSolution records a complete graph.
func (t *Tree) PutSolution(g *graph.Graph, score float64) {
	t.solutions.Push(g, score)
	t.found.Add(1)
}

// NextSolution removes and returns the best solution, blocking until one is
// available or ctx is done.
func (t *Tree) NextSolution(ctx context.Context) (Result, error) {
	return t.solutions.Take(ctx)
}

// DrainSolutions removes and returns every queued solution, best first.
func (t *Tree) DrainSolutions() []Result {
	var out []Result
	for {
		r, ok := t.solutions.TryTake()
		if !ok {
			return out
		}
		out = append(out, r)
	}
}

// PeekBestSolution returns the best solution found so far without removing it.
func (t *Tree) PeekBestSolution() (Result, bool) { return t.solutions.Peek() }

func (t *Tree) GraphsProcessed() int64 { return t.processed.Load() }
func (t *Tree) SolutionsFound() int64  { return t.found.Load() }
func (t *Tree) OpenGraphs() int        { return t.open.Len() }

// Stats returns a snapshot of the counters. The fields are read one after
// another and may be mutually inconsistent while workers are running.
func (t *Tree) Stats() Stats {
	return Stats{
		GraphsProcessed: t.GraphsProcessed(),
		SolutionsFound:  t.SolutionsFound(),
		OpenGraphs:      t.OpenGraphs(),
	}
}
