// This file contains the logic for translating HCL schema structs into the
// format-agnostic configuration model defined in the config package.

package hcl_adapter

import (
	"context"
	"fmt"
	"time"

	"github.com/hashicorp/hcl/v2"
	"github.com/vk/graphsolver/internal/config"
	"github.com/vk/graphsolver/internal/ctxlog"
	"github.com/zclconf/go-cty/cty"
)

func (l *Loader) translate(ctx context.Context, root *fileRoot) (*config.Model, error) {
	m := &config.Model{}
	for _, lib := range root.Libraries {
		m.Libraries = append(m.Libraries, lib.Name)
	}
	for _, dt := range root.DataTypes {
		m.DataTypes = append(m.DataTypes, &config.DataType{Name: dt.Name, Parents: dt.Parents})
	}
	for _, nt := range root.NodeTypes {
		translated, err := translateNodeType(ctx, nt)
		if err != nil {
			return nil, err
		}
		m.NodeTypes = append(m.NodeTypes, translated)
	}

	if len(root.Problems) > 1 {
		return nil, fmt.Errorf("only one problem block is allowed, found %d", len(root.Problems))
	}
	for _, p := range root.Problems {
		translated, err := translateProblem(p)
		if err != nil {
			return nil, err
		}
		m.Problem = translated
	}

	for _, a := range root.Axioms {
		axiom := &config.Axiom{Kind: a.Kind}
		if a.Limit != nil {
			axiom.Limit = *a.Limit
		}
		m.Axioms = append(m.Axioms, axiom)
	}
	for _, h := range root.Heuristics {
		heuristic := &config.Heuristic{Kind: h.Kind, Weight: 1}
		if h.Weight != nil {
			heuristic.Weight = *h.Weight
		}
		m.Heuristics = append(m.Heuristics, heuristic)
	}

	if len(root.Searches) > 1 {
		return nil, fmt.Errorf("only one search block is allowed, found %d", len(root.Searches))
	}
	for _, s := range root.Searches {
		translated, err := translateSearch(s)
		if err != nil {
			return nil, err
		}
		m.Search = translated
	}
	return m, nil
}

// translateNodeType splits the body tuple into one expression per output.
func translateNodeType(ctx context.Context, s *NodeType) (*config.NodeType, error) {
	logger := ctxlog.FromContext(ctx).With("node_type", s.Name)
	exprs, diags := hcl.ExprList(s.Body)
	if diags.HasErrors() {
		return nil, fmt.Errorf("in node_type '%s', body must be a list of expressions: %w", s.Name, diags)
	}
	logger.Debug("Translated node type.", "inputs", len(s.Inputs), "outputs", len(s.Outputs), "body", len(exprs))
	return &config.NodeType{
		Name:    s.Name,
		Inputs:  s.Inputs,
		Outputs: s.Outputs,
		Body:    exprs,
	}, nil
}

func translateProblem(s *Problem) (*config.Problem, error) {
	p := &config.Problem{Name: s.Name, Inputs: s.Inputs, Outputs: s.Outputs}
	for i, c := range s.Cases {
		inputs, err := valueList(c.Inputs)
		if err != nil {
			return nil, fmt.Errorf("in problem '%s', case %d inputs: %w", s.Name, i, err)
		}
		outputs, err := valueList(c.Outputs)
		if err != nil {
			return nil, fmt.Errorf("in problem '%s', case %d outputs: %w", s.Name, i, err)
		}
		p.Cases = append(p.Cases, &config.Case{Inputs: inputs, Outputs: outputs})
	}
	return p, nil
}

func translateSearch(s *Search) (*config.Search, error) {
	out := &config.Search{}
	if s.Workers != nil {
		out.Workers = *s.Workers
	}
	if s.MaxSolutions != nil {
		out.MaxSolutions = *s.MaxSolutions
	}
	if s.MaxProcessed != nil {
		out.MaxProcessed = *s.MaxProcessed
	}
	if s.Timeout != nil {
		d, err := time.ParseDuration(*s.Timeout)
		if err != nil {
			return nil, fmt.Errorf("in search block, invalid timeout: %w", err)
		}
		out.Timeout = d
	}
	return out, nil
}

// valueList unpacks a list or tuple value into its elements.
func valueList(v cty.Value) ([]cty.Value, error) {
	if v.IsNull() || !v.IsKnown() {
		return nil, fmt.Errorf("value must be a known list")
	}
	ty := v.Type()
	if !ty.IsListType() && !ty.IsTupleType() {
		return nil, fmt.Errorf("expected a list, got %s", ty.FriendlyName())
	}
	return v.AsValueSlice(), nil
}
