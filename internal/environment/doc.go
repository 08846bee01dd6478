// Package environment holds the registry a search runs against: node types,
// interned data types, axioms, heuristics and fitness evaluators.
//
// An Environment is assembled once, before any search starts, and is only
// read afterwards. Registration while workers are running is not supported
// and is not guarded against.
package environment
