package environment

import (
	"fmt"
	"slices"

	"github.com/vk/graphsolver/internal/graph"
)

// Environment aggregates everything expansion and scoring need. The zero
// value is not usable; call New.
type Environment struct {
	nodeTypes  []*graph.NodeType
	dataTypes  map[string]*graph.DataType
	axioms     []Axiom
	heuristics []Heuristic
	fitness    []FitnessEvaluator
	libraries  []string
}

// New returns an empty environment.
func New() *Environment {
	return &Environment{dataTypes: make(map[string]*graph.DataType)}
}

// DataType returns the data type registered under name, creating it on first
// use.
func (e *Environment) DataType(name string) *graph.DataType {
	if dt, ok := e.dataTypes[name]; ok {
		return dt
	}
	dt := graph.NewDataType(name)
	e.dataTypes[name] = dt
	return dt
}

// LookupDataType returns the data type registered under name, if any.
func (e *Environment) LookupDataType(name string) (*graph.DataType, bool) {
	dt, ok := e.dataTypes[name]
	return dt, ok
}

// AddNodeType registers nt. Registering the same node type twice is a no-op.
func (e *Environment) AddNodeType(nt *graph.NodeType) {
	if nt == nil || slices.Contains(e.nodeTypes, nt) {
		return
	}
	e.nodeTypes = append(e.nodeTypes, nt)
}

// NodeTypes returns the registered node types in registration order. The
// returned slice must not be modified.
func (e *Environment) NodeTypes() []*graph.NodeType { return e.nodeTypes }

// NodeType returns the first registered node type with the given name.
func (e *Environment) NodeType(name string) (*graph.NodeType, bool) {
	for _, nt := range e.nodeTypes {
		if nt.Name() == name {
			return nt, true
		}
	}
	return nil, false
}

// InputNodeType returns the first registered node type with the input role.
func (e *Environment) InputNodeType() (*graph.NodeType, bool) {
	for _, nt := range e.nodeTypes {
		if nt.IsInputRole() {
			return nt, true
		}
	}
	return nil, false
}

// OutputNodeType returns the first registered node type with the output role.
func (e *Environment) OutputNodeType() (*graph.NodeType, bool) {
	for _, nt := range e.nodeTypes {
		if nt.IsOutputRole() {
			return nt, true
		}
	}
	return nil, false
}

func (e *Environment) AddAxiom(a Axiom)                       { e.axioms = append(e.axioms, a) }
func (e *Environment) AddHeuristic(h Heuristic)               { e.heuristics = append(e.heuristics, h) }
func (e *Environment) AddFitnessEvaluator(f FitnessEvaluator) { e.fitness = append(e.fitness, f) }

// IsValid reports whether g satisfies every axiom. It stops at the first
// axiom that rejects the graph.
func (e *Environment) IsValid(g *graph.Graph) bool {
	for _, a := range e.axioms {
		if !a.VerifyGraph(g) {
			return false
		}
	}
	return true
}

// Heuristic returns the sum of all heuristic scores for g, or 0 when no
// heuristic is registered.
func (e *Environment) Heuristic(g *graph.Graph) float64 {
	var sum float64
	for _, h := range e.heuristics {
		sum += h.Heuristic(g)
	}
	return sum
}

// Fitness returns the sum of all fitness evaluator scores for g. g must be
// complete.
func (e *Environment) Fitness(g *graph.Graph) (float64, error) {
	if !g.IsComplete() {
		return 0, fmt.Errorf("%w: fitness of incomplete graph %q", graph.ErrState, g.Name())
	}
	var sum float64
	for _, f := range e.fitness {
		v, err := f.Fitness(g)
		if err != nil {
			return 0, err
		}
		sum += v
	}
	return sum, nil
}

// HasFitness reports whether at least one fitness evaluator is registered.
func (e *Environment) HasFitness() bool { return len(e.fitness) > 0 }

// LoadLibrary registers lib into e and records its name.
func (e *Environment) LoadLibrary(lib Library) error {
	if err := lib.Register(e); err != nil {
		return fmt.Errorf("loading library %q: %w", lib.Name(), err)
	}
	e.libraries = append(e.libraries, lib.Name())
	return nil
}

// Libraries returns the names of the loaded libraries in load order.
func (e *Environment) Libraries() []string { return slices.Clone(e.libraries) }
