package graph

import (
	"fmt"
	"slices"
)

// DataType is a named tag for the values flowing through a graph. Data types
// form a DAG through their parent links; a value of a child type may be used
// wherever a parent type is expected.
//
// Parent links are only added while an environment is being assembled. After
// that a DataType is shared read-only between all graphs and workers.
type DataType struct {
	name    string
	parents []*DataType
}

// NewDataType creates a data type with no parents.
func NewDataType(name string) *DataType {
	return &DataType{name: name}
}

// Name returns the name of the data type.
func (t *DataType) Name() string {
	return t.name
}

// String implements fmt.Stringer.
func (t *DataType) String() string {
	return t.name
}

// Parents returns a copy of the direct parent types, in the order they were added.
func (t *DataType) Parents() []*DataType {
	return slices.Clone(t.parents)
}

// AddParentType makes parent a direct parent of t. It fails with
// ErrCyclicType, and leaves t untouched, if parent is t or if t is already one
// of parent's ancestors. Adding an existing direct parent again is a no-op.
func (t *DataType) AddParentType(parent *DataType) error {
	if parent == nil {
		return fmt.Errorf("%w: nil parent for data type %q", ErrConfiguration, t.name)
	}
	if parent.IsInstanceOf(t) {
		return fmt.Errorf("%w: %q cannot extend %q", ErrCyclicType, t.name, parent.name)
	}
	if slices.Contains(t.parents, parent) {
		return nil
	}
	t.parents = append(t.parents, parent)
	return nil
}

// IsInstanceOf reports whether t is other or one of its descendants. An output
// of type t may be connected to an input of type other exactly when this
// returns true.
func (t *DataType) IsInstanceOf(other *DataType) bool {
	if t == other {
		return true
	}
	for _, p := range t.parents {
		if p.IsInstanceOf(other) {
			return true
		}
	}
	return false
}
