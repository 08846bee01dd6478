// Package graph holds the typed dataflow model the solver searches over.
//
// # Types
//
// A DataType is a named tag organised in a subtype DAG. A NodeType is an
// immutable function signature: an ordered list of input data types, an
// ordered list of output data types and an Executor. A node type with no
// inputs plays the Input role, one with no outputs plays the Output role.
//
// # Graphs
//
// A Graph is a slice of node types (index 0 is the Output node, index 1 the
// Input node, everything after that is an interior node in creation order)
// plus a slice of Connections between node indices. Node indices are stable
// across cloning, so a position in a parent graph is the same position in
// every child.
//
// Once a graph has been handed to another goroutine it is never mutated.
// Expand produces fully independent clones, each with exactly one extra
// connection and at most one extra node.
//
// # Execution
//
// Execute evaluates a complete graph against concrete input values using a
// memoised post-order walk rooted at the Output node.
package graph
