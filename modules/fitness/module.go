// Package fitness provides the case-based fitness evaluator: a complete graph
// is executed on every test case of the problem and scored by how far its
// outputs are from the expected ones.
package fitness

import (
	"errors"
	"fmt"
	"math"

	"github.com/vk/graphsolver/internal/config"
	"github.com/vk/graphsolver/internal/environment"
	"github.com/vk/graphsolver/internal/exprlib"
	"github.com/vk/graphsolver/internal/graph"
	"github.com/vk/graphsolver/internal/registry"
	"github.com/vk/graphsolver/modules/arithmetic"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers the "cases" fitness kind with the engine.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterFitness("cases", func(p *config.Problem) (environment.FitnessEvaluator, error) {
		cases, err := FromProblem(p)
		if err != nil {
			return nil, err
		}
		return cases, nil
	})
}

// Case is one input vector and the outputs expected for it.
type Case struct {
	Inputs  []any
	Outputs []any
}

// Cases scores a graph by the negated total error over all cases, so a graph
// that reproduces every case exactly scores 0 and everything else scores
// less. Numeric outputs contribute their absolute difference; other values
// contribute 0 when equal and 1 otherwise. A case the graph fails to execute,
// or that yields NaN, scores -Inf.
type Cases []Case

// FromProblem converts the cases declared on p.
func FromProblem(p *config.Problem) (Cases, error) {
	out := make(Cases, len(p.Cases))
	for i, c := range p.Cases {
		inputs, err := exprlib.FromCtyList(c.Inputs)
		if err != nil {
			return nil, fmt.Errorf("problem %q, case %d inputs: %w", p.Name, i, err)
		}
		outputs, err := exprlib.FromCtyList(c.Outputs)
		if err != nil {
			return nil, fmt.Errorf("problem %q, case %d outputs: %w", p.Name, i, err)
		}
		out[i] = Case{Inputs: inputs, Outputs: outputs}
	}
	return out, nil
}

// Fitness implements environment.FitnessEvaluator. Only arity mismatches
// between the cases and the graph are reported as errors.
func (cs Cases) Fitness(g *graph.Graph) (float64, error) {
	var total float64
	for i, c := range cs {
		got := make([]any, len(c.Outputs))
		if err := g.Execute(c.Inputs, got); err != nil {
			if errors.Is(err, graph.ErrState) {
				return 0, fmt.Errorf("case %d: %w", i, err)
			}
			return math.Inf(-1), nil
		}
		for j, want := range c.Outputs {
			d := distance(got[j], want)
			if math.IsNaN(d) {
				return math.Inf(-1), nil
			}
			total += d
		}
	}
	return -total, nil
}

func distance(got, want any) float64 {
	g, gErr := arithmetic.ToFloat(got)
	w, wErr := arithmetic.ToFloat(want)
	if gErr == nil && wErr == nil {
		return math.Abs(g - w)
	}
	if got == want {
		return 0
	}
	return 1
}
