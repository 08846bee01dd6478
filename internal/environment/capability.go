package environment

import "github.com/vk/graphsolver/internal/graph"

// Axiom is a hard validity rule. A graph for which VerifyGraph returns false
// is dropped from the search together with everything that would have been
// derived from it. The graph may be incomplete.
type Axiom interface {
	VerifyGraph(g *graph.Graph) bool
}

// AxiomFunc adapts a function to the Axiom interface.
type AxiomFunc func(g *graph.Graph) bool

// VerifyGraph calls f(g).
func (f AxiomFunc) VerifyGraph(g *graph.Graph) bool { return f(g) }

// Heuristic scores a possibly incomplete graph. Higher is better.
type Heuristic interface {
	Heuristic(g *graph.Graph) float64
}

// HeuristicFunc adapts a function to the Heuristic interface.
type HeuristicFunc func(g *graph.Graph) float64

// Heuristic calls f(g).
func (f HeuristicFunc) Heuristic(g *graph.Graph) float64 { return f(g) }

// FitnessEvaluator scores a complete graph, typically by executing it.
type FitnessEvaluator interface {
	Fitness(g *graph.Graph) (float64, error)
}

// FitnessFunc adapts a function to the FitnessEvaluator interface.
type FitnessFunc func(g *graph.Graph) (float64, error)

// Fitness calls f(g).
func (f FitnessFunc) Fitness(g *graph.Graph) (float64, error) { return f(g) }

// Library is a named bundle of registrations, e.g. a set of arithmetic node
// types.
type Library interface {
	Name() string
	Register(env *Environment) error
}
