package app

import (
	"context"
	"fmt"

	"github.com/vk/graphsolver/internal/ctxlog"
	"github.com/vk/graphsolver/internal/environment"
	"github.com/vk/graphsolver/internal/exprlib"
	"github.com/vk/graphsolver/internal/graph"
)

const (
	inputNodeName  = "Input"
	outputNodeName = "Output"
	casesFitness   = "cases"
)

// buildEnvironment turns the loaded model into an environment: libraries
// first, then declared data and node types, then the problem signature and
// finally the search capabilities.
func (a *App) buildEnvironment(ctx context.Context) (*environment.Environment, error) {
	logger := ctxlog.FromContext(ctx)
	env := environment.New()

	for _, name := range a.model.Libraries {
		lib, ok := a.registry.Library(name)
		if !ok {
			return nil, fmt.Errorf("unknown library %q", name)
		}
		if err := env.LoadLibrary(lib); err != nil {
			return nil, err
		}
		logger.Debug("Library loaded.", "library", name)
	}

	// Declare every name before linking so parents may be declared later.
	for _, dt := range a.model.DataTypes {
		env.DataType(dt.Name)
	}
	for _, dt := range a.model.DataTypes {
		parents, err := resolveTypes(env, dt.Parents, "data_type "+dt.Name)
		if err != nil {
			return nil, err
		}
		for _, p := range parents {
			if err := env.DataType(dt.Name).AddParentType(p); err != nil {
				return nil, err
			}
		}
	}

	for _, nt := range a.model.NodeTypes {
		inputs, err := resolveTypes(env, nt.Inputs, "node_type "+nt.Name)
		if err != nil {
			return nil, err
		}
		outputs, err := resolveTypes(env, nt.Outputs, "node_type "+nt.Name)
		if err != nil {
			return nil, err
		}
		n, err := graph.NewNodeType(nt.Name, exprlib.NewExecutor(nt.Body), inputs, outputs)
		if err != nil {
			return nil, err
		}
		env.AddNodeType(n)
	}

	p := a.model.Problem
	inputs, err := resolveTypes(env, p.Inputs, "problem "+p.Name)
	if err != nil {
		return nil, err
	}
	outputs, err := resolveTypes(env, p.Outputs, "problem "+p.Name)
	if err != nil {
		return nil, err
	}
	in, err := graph.NewNodeType(inputNodeName, nil, nil, inputs)
	if err != nil {
		return nil, err
	}
	out, err := graph.NewNodeType(outputNodeName, nil, outputs, nil)
	if err != nil {
		return nil, err
	}
	env.AddNodeType(in)
	env.AddNodeType(out)

	for _, cfg := range a.model.Axioms {
		factory, _ := a.registry.Axiom(cfg.Kind)
		axiom, err := factory(cfg)
		if err != nil {
			return nil, err
		}
		env.AddAxiom(axiom)
	}
	for _, cfg := range a.model.Heuristics {
		factory, _ := a.registry.Heuristic(cfg.Kind)
		h, err := factory(cfg)
		if err != nil {
			return nil, fmt.Errorf("heuristic %q: %w", cfg.Kind, err)
		}
		env.AddHeuristic(h)
	}

	if len(p.Cases) > 0 {
		factory, ok := a.registry.Fitness(casesFitness)
		if !ok {
			logger.Warn("Problem has test cases but no fitness module is registered; solutions will not be evaluated.")
			return env, nil
		}
		f, err := factory(p)
		if err != nil {
			return nil, fmt.Errorf("fitness: %w", err)
		}
		env.AddFitnessEvaluator(f)
	}
	return env, nil
}

func resolveTypes(env *environment.Environment, names []string, where string) ([]*graph.DataType, error) {
	out := make([]*graph.DataType, len(names))
	for i, name := range names {
		t, ok := env.LookupDataType(name)
		if !ok {
			return nil, fmt.Errorf("%w: unknown data type %q in %s", graph.ErrConfiguration, name, where)
		}
		out[i] = t
	}
	return out, nil
}
