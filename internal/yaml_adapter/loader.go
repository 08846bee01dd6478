// Package yaml_adapter is a config.Loader for problems written in YAML. Node
// type bodies are HCL expression strings.
package yaml_adapter

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/vk/graphsolver/internal/config"
	"github.com/vk/graphsolver/internal/ctxlog"
	"github.com/vk/graphsolver/internal/exprlib"
	"github.com/vk/graphsolver/internal/fsutil"
	"github.com/zclconf/go-cty/cty"
	"gopkg.in/yaml.v3"
)

type document struct {
	Libraries  []string     `yaml:"libraries"`
	DataTypes  []dataType   `yaml:"data_types"`
	NodeTypes  []nodeType   `yaml:"node_types"`
	Problem    *problem     `yaml:"problem"`
	Axioms     []axiom      `yaml:"axioms"`
	Heuristics []heuristic  `yaml:"heuristics"`
	Search     *searchBlock `yaml:"search"`
}

type dataType struct {
	Name    string   `yaml:"name"`
	Parents []string `yaml:"parents"`
}

type nodeType struct {
	Name    string   `yaml:"name"`
	Inputs  []string `yaml:"inputs"`
	Outputs []string `yaml:"outputs"`
	Body    []string `yaml:"body"`
}

type problem struct {
	Name    string     `yaml:"name"`
	Inputs  []string   `yaml:"inputs"`
	Outputs []string   `yaml:"outputs"`
	Cases   []caseSpec `yaml:"cases"`
}

type caseSpec struct {
	Inputs  []any `yaml:"inputs"`
	Outputs []any `yaml:"outputs"`
}

type axiom struct {
	Kind  string `yaml:"kind"`
	Limit int    `yaml:"limit"`
}

type heuristic struct {
	Kind   string   `yaml:"kind"`
	Weight *float64 `yaml:"weight"`
}

type searchBlock struct {
	Workers      int    `yaml:"workers"`
	MaxSolutions int    `yaml:"max_solutions"`
	MaxProcessed int    `yaml:"max_processed"`
	Timeout      string `yaml:"timeout"`
}

// Loader is the YAML implementation of config.Loader.
type Loader struct{}

// NewLoader creates a new YAML configuration loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load parses every .yaml and .yml file under paths and merges them.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	files, err := fsutil.FindFiles(paths, ".yaml", ".yml")
	if err != nil {
		return nil, err
	}
	logger.Debug("Discovered YAML files.", "count", len(files))

	model := &config.Model{}
	for _, file := range files {
		src, err := os.ReadFile(file)
		if err != nil {
			return nil, err
		}
		part, err := l.LoadBytes(ctx, src, file)
		if err != nil {
			return nil, err
		}
		if err := model.Merge(part); err != nil {
			return nil, fmt.Errorf("in YAML file %s: %w", file, err)
		}
	}
	return model, nil
}

// LoadBytes decodes a single YAML document. Unknown keys are rejected.
func (l *Loader) LoadBytes(ctx context.Context, src []byte, filename string) (*config.Model, error) {
	dec := yaml.NewDecoder(bytes.NewReader(src))
	dec.KnownFields(true)
	var doc document
	if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse YAML file %s: %w", filename, err)
	}
	m, err := translate(&doc, filename)
	if err != nil {
		return nil, fmt.Errorf("in YAML file %s: %w", filename, err)
	}
	ctxlog.FromContext(ctx).Debug("Translated YAML file.", "file", filename, "node_types", len(m.NodeTypes))
	return m, nil
}

func translate(doc *document, filename string) (*config.Model, error) {
	m := &config.Model{Libraries: doc.Libraries}
	for _, dt := range doc.DataTypes {
		m.DataTypes = append(m.DataTypes, &config.DataType{Name: dt.Name, Parents: dt.Parents})
	}
	for _, nt := range doc.NodeTypes {
		body := make([]hcl.Expression, len(nt.Body))
		for i, src := range nt.Body {
			expr, diags := hclsyntax.ParseExpression([]byte(src), filename, hcl.InitialPos)
			if diags.HasErrors() {
				return nil, fmt.Errorf("node type %q, body %d: %w", nt.Name, i, diags)
			}
			body[i] = expr
		}
		m.NodeTypes = append(m.NodeTypes, &config.NodeType{Name: nt.Name, Inputs: nt.Inputs, Outputs: nt.Outputs, Body: body})
	}

	if p := doc.Problem; p != nil {
		m.Problem = &config.Problem{Name: p.Name, Inputs: p.Inputs, Outputs: p.Outputs}
		for i, c := range p.Cases {
			inputs, err := toCtyList(c.Inputs)
			if err != nil {
				return nil, fmt.Errorf("problem %q, case %d inputs: %w", p.Name, i, err)
			}
			outputs, err := toCtyList(c.Outputs)
			if err != nil {
				return nil, fmt.Errorf("problem %q, case %d outputs: %w", p.Name, i, err)
			}
			m.Problem.Cases = append(m.Problem.Cases, &config.Case{Inputs: inputs, Outputs: outputs})
		}
	}

	for _, a := range doc.Axioms {
		m.Axioms = append(m.Axioms, &config.Axiom{Kind: a.Kind, Limit: a.Limit})
	}
	for _, h := range doc.Heuristics {
		weight := 1.0
		if h.Weight != nil {
			weight = *h.Weight
		}
		m.Heuristics = append(m.Heuristics, &config.Heuristic{Kind: h.Kind, Weight: weight})
	}

	if s := doc.Search; s != nil {
		m.Search = &config.Search{Workers: s.Workers, MaxSolutions: s.MaxSolutions, MaxProcessed: s.MaxProcessed}
		if s.Timeout != "" {
			d, err := time.ParseDuration(s.Timeout)
			if err != nil {
				return nil, fmt.Errorf("search: invalid timeout: %w", err)
			}
			m.Search.Timeout = d
		}
	}
	return m, nil
}

func toCtyList(vals []any) ([]cty.Value, error) {
	out := make([]cty.Value, len(vals))
	for i, v := range vals {
		val, err := exprlib.ToCty(v)
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		out[i] = val
	}
	return out, nil
}
