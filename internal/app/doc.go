// Package app contains the core application logic. It loads a problem,
// assembles the environment it describes, runs the parallel search until a
// stop condition fires and prints the ranked solutions. It is decoupled from
// any specific entrypoint like a CLI or server.
package app
