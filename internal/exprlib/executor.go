package exprlib

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/vk/graphsolver/internal/graph"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
	"github.com/zclconf/go-cty/cty/function/stdlib"
)

// functions is shared by every evaluation; cty functions are stateless.
var functions = map[string]function.Function{
	"abs":    stdlib.AbsoluteFunc,
	"ceil":   stdlib.CeilFunc,
	"floor":  stdlib.FloorFunc,
	"max":    stdlib.MaxFunc,
	"min":    stdlib.MinFunc,
	"pow":    stdlib.PowFunc,
	"signum": stdlib.SignumFunc,
}

// Executor evaluates one expression per output. It is safe for concurrent use.
type Executor struct {
	body []hcl.Expression
}

// NewExecutor returns an executor computing output i from body[i].
func NewExecutor(body []hcl.Expression) *Executor {
	return &Executor{body: body}
}

// Execute implements graph.Executor.
func (e *Executor) Execute(inputs, outputs []any) error {
	if len(outputs) != len(e.body) {
		return fmt.Errorf("%w: expression executor has %d expressions for %d outputs", graph.ErrArityMismatch, len(e.body), len(outputs))
	}

	in := make([]cty.Value, len(inputs))
	for i, v := range inputs {
		val, err := ToCty(v)
		if err != nil {
			return fmt.Errorf("input %d: %w", i, err)
		}
		in[i] = val
	}
	evalCtx := &hcl.EvalContext{
		Variables: map[string]cty.Value{"in": cty.TupleVal(in)},
		Functions: functions,
	}

	for i, expr := range e.body {
		val, diags := expr.Value(evalCtx)
		if diags.HasErrors() {
			return fmt.Errorf("output %d: %w", i, diags)
		}
		native, err := FromCty(val)
		if err != nil {
			return fmt.Errorf("output %d: %w", i, err)
		}
		outputs[i] = native
	}
	return nil
}

var _ graph.Executor = (*Executor)(nil)
