// Package exprlib builds node type executors from HCL expressions, so
// problem files can declare their own operations:
//
//	node_type "Square" {
//	  inputs  = ["Float"]
//	  outputs = ["Float"]
//	  body    = [in[0] * in[0]]
//	}
//
// The inputs of a node are visible to its body as the tuple `in`. A small set
// of numeric functions (abs, ceil, floor, max, min, pow, signum) is available.
package exprlib
