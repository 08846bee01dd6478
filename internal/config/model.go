package config

import (
	"fmt"
	"time"

	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"
)

// Model is the unified, format-agnostic representation of a problem: which
// libraries to load, which extra types to declare, the signature to
// synthesize, and how to search for it.
type Model struct {
	Libraries  []string
	DataTypes  []*DataType
	NodeTypes  []*NodeType
	Problem    *Problem
	Axioms     []*Axiom
	Heuristics []*Heuristic
	Search     *Search
}

// DataType is the format-agnostic representation of a `data_type` block.
type DataType struct {
	Name    string
	Parents []string
}

// NodeType is the format-agnostic representation of a `node_type` block. Body
// holds one expression per output; inputs are available to them as in[i].
type NodeType struct {
	Name    string
	Inputs  []string
	Outputs []string
	Body    []hcl.Expression
}

// Problem is the format-agnostic representation of the `problem` block: the
// signature of the Input and Output nodes and optional test cases.
type Problem struct {
	Name    string
	Inputs  []string
	Outputs []string
	Cases   []*Case
}

// Case is one expected input/output pair used for fitness evaluation.
type Case struct {
	Inputs  []cty.Value
	Outputs []cty.Value
}

// Axiom is the format-agnostic representation of an `axiom` block.
type Axiom struct {
	Kind  string
	Limit int
}

// Heuristic is the format-agnostic representation of a `heuristic` block.
type Heuristic struct {
	Kind   string
	Weight float64
}

// Search holds stop conditions and pool size. Zero values mean "unset".
type Search struct {
	Workers      int
	MaxSolutions int
	MaxProcessed int
	Timeout      time.Duration
}

// Merge appends everything declared in other to m. Declaring the problem or
// search block more than once across files is an error.
func (m *Model) Merge(other *Model) error {
	m.Libraries = append(m.Libraries, other.Libraries...)
	m.DataTypes = append(m.DataTypes, other.DataTypes...)
	m.NodeTypes = append(m.NodeTypes, other.NodeTypes...)
	m.Axioms = append(m.Axioms, other.Axioms...)
	m.Heuristics = append(m.Heuristics, other.Heuristics...)
	if other.Problem != nil {
		if m.Problem != nil {
			return fmt.Errorf("problem %q: only one problem block is allowed, already have %q", other.Problem.Name, m.Problem.Name)
		}
		m.Problem = other.Problem
	}
	if other.Search != nil {
		if m.Search != nil {
			return fmt.Errorf("only one search block is allowed")
		}
		m.Search = other.Search
	}
	return nil
}

// Validate checks the model for errors that do not depend on any library.
func (m *Model) Validate() error {
	if m.Problem == nil {
		return fmt.Errorf("no problem block found")
	}
	p := m.Problem
	if len(p.Inputs) == 0 {
		return fmt.Errorf("problem %q: at least one input type is required", p.Name)
	}
	if len(p.Outputs) == 0 {
		return fmt.Errorf("problem %q: at least one output type is required", p.Name)
	}
	for i, c := range p.Cases {
		if len(c.Inputs) != len(p.Inputs) {
			return fmt.Errorf("problem %q, case %d: expected %d inputs, got %d", p.Name, i, len(p.Inputs), len(c.Inputs))
		}
		if len(c.Outputs) != len(p.Outputs) {
			return fmt.Errorf("problem %q, case %d: expected %d outputs, got %d", p.Name, i, len(p.Outputs), len(c.Outputs))
		}
	}
	for _, nt := range m.NodeTypes {
		if len(nt.Inputs) == 0 || len(nt.Outputs) == 0 {
			return fmt.Errorf("node_type %q: needs at least one input and one output", nt.Name)
		}
		if len(nt.Body) != len(nt.Outputs) {
			return fmt.Errorf("node_type %q: body has %d expressions for %d outputs", nt.Name, len(nt.Body), len(nt.Outputs))
		}
	}
	return nil
}
