// This file contains the gohcl schema structs for every top-level block a
// problem file may contain.

package hcl_adapter

import (
	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"
)

// fileRoot is a struct used to decode all possible top-level blocks from any file.
type fileRoot struct {
	Libraries  []*Library   `hcl:"library,block"`
	DataTypes  []*DataType  `hcl:"data_type,block"`
	NodeTypes  []*NodeType  `hcl:"node_type,block"`
	Problems   []*Problem   `hcl:"problem,block"`
	Axioms     []*Axiom     `hcl:"axiom,block"`
	Heuristics []*Heuristic `hcl:"heuristic,block"`
	Searches   []*Search    `hcl:"search,block"`
}

// Library is a `library "<name>" {}` block.
type Library struct {
	Name string `hcl:"name,label"`
}

// DataType is a `data_type "<name>" {}` block.
type DataType struct {
	Name    string   `hcl:"name,label"`
	Parents []string `hcl:"parents,optional"`
}

// NodeType is a `node_type "<name>" {}` block. Body is a tuple expression
// with one element per output.
type NodeType struct {
	Name    string         `hcl:"name,label"`
	Inputs  []string       `hcl:"inputs"`
	Outputs []string       `hcl:"outputs"`
	Body    hcl.Expression `hcl:"body"`
}

// Problem is the `problem "<name>" {}` block.
type Problem struct {
	Name    string   `hcl:"name,label"`
	Inputs  []string `hcl:"inputs"`
	Outputs []string `hcl:"outputs"`
	Cases   []*Case  `hcl:"case,block"`
}

// Case is a `case {}` block inside a problem.
type Case struct {
	Inputs  cty.Value `hcl:"inputs"`
	Outputs cty.Value `hcl:"outputs"`
}

// Axiom is an `axiom "<kind>" {}` block.
type Axiom struct {
	Kind  string `hcl:"kind,label"`
	Limit *int   `hcl:"limit,optional"`
}

// Heuristic is a `heuristic "<kind>" {}` block.
type Heuristic struct {
	Kind   string   `hcl:"kind,label"`
	Weight *float64 `hcl:"weight,optional"`
}

// Search is the `search {}` block.
type Search struct {
	Workers      *int    `hcl:"workers,optional"`
	MaxSolutions *int    `hcl:"max_solutions,optional"`
	MaxProcessed *int    `hcl:"max_processed,optional"`
	Timeout      *string `hcl:"timeout,optional"`
}
