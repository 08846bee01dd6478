// Package config defines the format-agnostic problem model and the Loader
// interface that turns files into it.
//
// The `config.Model` is the single source of truth for building an
// environment and a search. Concrete loaders for HCL and YAML live in
// separate packages.
package config
