// Package registry provides the central "glue" for the module system.
//
// The Registry maps the names used in problem files (library names, axiom
// and heuristic kinds) to the compiled Go code that implements them. Modules
// populate it at startup, and a loaded model is validated against it before
// any environment is built, so a typo in a problem file is reported up front
// instead of halfway through a search.
package registry
