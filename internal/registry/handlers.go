package registry

import (
	"fmt"
	"log/slog"

	"github.com/vk/graphsolver/internal/environment"
)

// RegisterLibrary registers a node type library under its own name.
func (r *Registry) RegisterLibrary(lib environment.Library) {
	if _, exists := r.libraries[lib.Name()]; exists {
		panic(fmt.Sprintf("library with name '%s' already registered", lib.Name()))
	}
	slog.Debug("Registering library.", "name", lib.Name())
	r.libraries[lib.Name()] = lib
}

// RegisterAxiom registers the factory for an axiom kind.
func (r *Registry) RegisterAxiom(kind string, f AxiomFactory) {
	if _, exists := r.axioms[kind]; exists {
		panic(fmt.Sprintf("axiom kind '%s' already registered", kind))
	}
	slog.Debug("Registering axiom.", "kind", kind)
	r.axioms[kind] = f
}

// RegisterHeuristic registers the factory for a heuristic kind.
func (r *Registry) RegisterHeuristic(kind string, f HeuristicFactory) {
	if _, exists := r.heuristics[kind]; exists {
		panic(fmt.Sprintf("heuristic kind '%s' already registered", kind))
	}
	slog.Debug("Registering heuristic.", "kind", kind)
	r.heuristics[kind] = f
}

// RegisterFitness registers a fitness evaluator factory.
func (r *Registry) RegisterFitness(kind string, f FitnessFactory) {
	if _, exists := r.fitness[kind]; exists {
		panic(fmt.Sprintf("fitness kind '%s' already registered", kind))
	}
	slog.Debug("Registering fitness evaluator.", "kind", kind)
	r.fitness[kind] = f
}
