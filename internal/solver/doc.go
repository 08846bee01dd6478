// Package solver runs a pool of workers over a scheduler.Tree.
//
// A Worker is a single loop: take the best open graph, expand it, drop the
// children the environment's axioms reject, score the rest, and hand complete
// children to the solution collection and incomplete ones back to the open
// collection. A Solver starts a fixed number of workers on one tree and stops
// them all.
package solver
