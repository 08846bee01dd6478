package registry

import (
	"maps"
	"slices"

	"github.com/vk/graphsolver/internal/config"
	"github.com/vk/graphsolver/internal/environment"
)

// Module is the interface that all core modules must implement to be registered.
type Module interface {
	Register(r *Registry)
}

// AxiomFactory builds an axiom from its configuration block.
type AxiomFactory func(cfg *config.Axiom) (environment.Axiom, error)

// HeuristicFactory builds a heuristic from its configuration block.
type HeuristicFactory func(cfg *config.Heuristic) (environment.Heuristic, error)

// FitnessFactory builds a fitness evaluator for a problem.
type FitnessFactory func(p *config.Problem) (environment.FitnessEvaluator, error)

// Registry holds everything the modules registered for a single application
// instance.
type Registry struct {
	libraries  map[string]environment.Library
	axioms     map[string]AxiomFactory
	heuristics map[string]HeuristicFactory
	fitness    map[string]FitnessFactory
}

// New creates and initializes a new Registry instance.
func New() *Registry {
	return &Registry{
		libraries:  make(map[string]environment.Library),
		axioms:     make(map[string]AxiomFactory),
		heuristics: make(map[string]HeuristicFactory),
		fitness:    make(map[string]FitnessFactory),
	}
}

// Library returns the library registered under name.
func (r *Registry) Library(name string) (environment.Library, bool) {
	lib, ok := r.libraries[name]
	return lib, ok
}

// Axiom returns the factory registered for kind.
func (r *Registry) Axiom(kind string) (AxiomFactory, bool) {
	f, ok := r.axioms[kind]
	return f, ok
}

// Heuristic returns the factory registered for kind.
func (r *Registry) Heuristic(kind string) (HeuristicFactory, bool) {
	f, ok := r.heuristics[kind]
	return f, ok
}

// Fitness returns the fitness factory registered for kind.
func (r *Registry) Fitness(kind string) (FitnessFactory, bool) {
	f, ok := r.fitness[kind]
	return f, ok
}

// Libraries returns the names of all registered libraries, sorted.
func (r *Registry) Libraries() []string { return slices.Sorted(maps.Keys(r.libraries)) }

// Axioms returns the registered axiom kinds, sorted.
func (r *Registry) Axioms() []string { return slices.Sorted(maps.Keys(r.axioms)) }

// Heuristics returns the registered heuristic kinds, sorted.
func (r *Registry) Heuristics() []string { return slices.Sorted(maps.Keys(r.heuristics)) }
