// Package constraints provides the built-in axioms and heuristics that only
// look at the shape of a graph.
package constraints

import (
	"fmt"

	"github.com/vk/graphsolver/internal/config"
	"github.com/vk/graphsolver/internal/environment"
	"github.com/vk/graphsolver/internal/graph"
	"github.com/vk/graphsolver/internal/registry"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers the axiom and heuristic kinds with the engine.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterAxiom("max_connections", func(cfg *config.Axiom) (environment.Axiom, error) {
		if cfg.Limit <= 0 {
			return nil, fmt.Errorf("axiom 'max_connections': limit must be positive, got %d", cfg.Limit)
		}
		return MaxConnections(cfg.Limit), nil
	})
	r.RegisterHeuristic("connection_count", func(cfg *config.Heuristic) (environment.Heuristic, error) {
		return ConnectionCount(cfg.Weight), nil
	})
	r.RegisterHeuristic("min_connections", func(*config.Heuristic) (environment.Heuristic, error) {
		return MinConnections{}, nil
	})
}

// MaxConnections rejects graphs whose nodes together have more input slots
// than the limit. Every input slot needs a connection before the graph is
// complete, so this bounds the size of any complete descendant.
type MaxConnections int

// VerifyGraph implements environment.Axiom.
func (m MaxConnections) VerifyGraph(g *graph.Graph) bool {
	slots := 0
	for i := 0; i < g.NodeCount(); i++ {
		slots += g.Node(i).InputCount()
	}
	return slots <= int(m)
}

// ConnectionCount scores a graph as its connection count times the weight.
// Positive weights favour deeper graphs, negative weights wider search.
type ConnectionCount float64

// Heuristic implements environment.Heuristic.
func (c ConnectionCount) Heuristic(g *graph.Graph) float64 {
	return float64(g.ConnectionCount()) * float64(c)
}

// MinConnections prefers graphs with fewer connections.
type MinConnections struct{}

// Heuristic implements environment.Heuristic.
func (MinConnections) Heuristic(g *graph.Graph) float64 {
	return -float64(g.ConnectionCount())
}
