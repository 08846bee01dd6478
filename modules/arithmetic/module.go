// Package arithmetic provides the built-in "arithmetic" library: the
// Object > Float > Integer type chain and the usual operators on both numeric
// types.
package arithmetic

import (
	"errors"
	"fmt"
	"math"

	"github.com/vk/graphsolver/internal/environment"
	"github.com/vk/graphsolver/internal/graph"
	"github.com/vk/graphsolver/internal/registry"
)

var (
	// ErrDivisionByZero is returned by integer Divide and Modulus, and by
	// Power for zero raised to a negative exponent.
	ErrDivisionByZero = errors.New("integer division by zero")
	// ErrIntegerOverflow is returned when a result does not fit in an int64.
	ErrIntegerOverflow = errors.New("integer overflow")
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers the library with the engine.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterLibrary(Library{})
}

// Library is the environment.Library for arithmetic.
type Library struct{}

func (Library) Name() string { return "arithmetic" }

type floatOp func(a, b float64) float64

type intOp func(a, b int64) (int64, error)

// Register adds the data types and node types to env.
func (Library) Register(env *environment.Environment) error {
	object := env.DataType("Object")
	float := env.DataType("Float")
	integer := env.DataType("Integer")
	if err := float.AddParentType(object); err != nil {
		return err
	}
	if err := integer.AddParentType(float); err != nil {
		return err
	}

	ff := []*graph.DataType{float, float}
	f := []*graph.DataType{float}
	ii := []*graph.DataType{integer, integer}
	i := []*graph.DataType{integer}

	defs := []struct {
		name    string
		exec    graph.Executor
		inputs  []*graph.DataType
		outputs []*graph.DataType
	}{
		{"Add", binaryFloat(func(a, b float64) float64 { return a + b }), ff, f},
		{"Subtract", binaryFloat(func(a, b float64) float64 { return a - b }), ff, f},
		{"Multiply", binaryFloat(func(a, b float64) float64 { return a * b }), ff, f},
		{"Divide", binaryFloat(func(a, b float64) float64 { return a / b }), ff, f},
		{"Power", binaryFloat(math.Pow), ff, f},
		{"Floor", roundFloat(math.Floor), f, i},
		{"Ceiling", roundFloat(math.Ceil), f, i},
		{"Round", roundFloat(math.Round), f, i},
		{"SquareRoot", unaryFloat(math.Sqrt), f, f},

		{"Add", binaryInt(func(a, b int64) (int64, error) { return a + b, nil }), ii, i},
		{"Subtract", binaryInt(func(a, b int64) (int64, error) { return a - b, nil }), ii, i},
		{"Multiply", binaryInt(func(a, b int64) (int64, error) { return a * b, nil }), ii, i},
		{"Divide", binaryInt(func(a, b int64) (int64, error) {
			if b == 0 {
				return 0, ErrDivisionByZero
			}
			return a / b, nil
		}), ii, i},
		{"Power", binaryInt(powInt), ii, i},
		{"Modulus", binaryInt(func(a, b int64) (int64, error) {
			if b == 0 {
				return 0, ErrDivisionByZero
			}
			return a % b, nil
		}), ii, i},
	}

	for _, d := range defs {
		nt, err := graph.NewNodeType(d.name, d.exec, d.inputs, d.outputs)
		if err != nil {
			return err
		}
		env.AddNodeType(nt)
	}
	return nil
}

func binaryFloat(op floatOp) graph.ExecutorFunc {
	return func(inputs, outputs []any) error {
		a, err := ToFloat(inputs[0])
		if err != nil {
			return err
		}
		b, err := ToFloat(inputs[1])
		if err != nil {
			return err
		}
		outputs[0] = op(a, b)
		return nil
	}
}

func unaryFloat(op func(float64) float64) graph.ExecutorFunc {
	return func(inputs, outputs []any) error {
		a, err := ToFloat(inputs[0])
		if err != nil {
			return err
		}
		outputs[0] = op(a)
		return nil
	}
}

func roundFloat(op func(float64) float64) graph.ExecutorFunc {
	return func(inputs, outputs []any) error {
		a, err := ToFloat(inputs[0])
		if err != nil {
			return err
		}
		v, err := ToInt(op(a))
		if err != nil {
			return err
		}
		outputs[0] = v
		return nil
	}
}

func binaryInt(op intOp) graph.ExecutorFunc {
	return func(inputs, outputs []any) error {
		a, err := ToInt(inputs[0])
		if err != nil {
			return err
		}
		b, err := ToInt(inputs[1])
		if err != nil {
			return err
		}
		v, err := op(a, b)
		if err != nil {
			return err
		}
		outputs[0] = v
		return nil
	}
}

// powInt raises a to the power b. Negative exponents truncate toward zero
// like integer division does.
func powInt(a, b int64) (int64, error) {
	switch {
	case a == 0 && b < 0:
		return 0, ErrDivisionByZero
	case b == 0 || a == 1:
		return 1, nil
	case a == -1:
		if b%2 == 0 {
			return 1, nil
		}
		return -1, nil
	case b < 0 || a == 0:
		return 0, nil
	}

	// |a| >= 2 here, so the loop overflows within 63 rounds.
	result := int64(1)
	for ; b > 0; b-- {
		next := result * a
		if next/a != result {
			return 0, fmt.Errorf("%w: power result out of range", ErrIntegerOverflow)
		}
		result = next
	}
	return result, nil
}

// ToFloat converts any numeric value produced by this library or by a
// problem file to float64.
func ToFloat(v any) (float64, error) {
	switch x := v.(type) {
	case float64:
		return x, nil
	case float32:
		return float64(x), nil
	case int64:
		return float64(x), nil
	case int:
		return float64(x), nil
	case int32:
		return float64(x), nil
	}
	return 0, fmt.Errorf("expected a number, got %T", v)
}

// ToInt converts a numeric value to int64, truncating floats toward zero.
// NaN and floats outside the int64 range fail with ErrIntegerOverflow.
func ToInt(v any) (int64, error) {
	switch x := v.(type) {
	case int64:
		return x, nil
	case int:
		return int64(x), nil
	case int32:
		return int64(x), nil
	case float64:
		return floatToInt(x)
	case float32:
		return floatToInt(float64(x))
	}
	return 0, fmt.Errorf("expected an integer, got %T", v)
}

func floatToInt(x float64) (int64, error) {
	// -2^63 is exact in float64; 2^63 is the first value past MaxInt64.
	if math.IsNaN(x) || x < math.MinInt64 || x >= -math.MinInt64 {
		return 0, fmt.Errorf("%w: %g does not fit in an integer", ErrIntegerOverflow, x)
	}
	return int64(x), nil
}
