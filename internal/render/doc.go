// Package render turns graphs into text for people to read. Nothing here
// affects the search.
package render
