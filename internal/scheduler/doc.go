// Package scheduler holds the shared state of a best-first graph search.
//
// # Why Scheduler Exists
//
// Workers exploring the search space need one place to take work from and
// one place to put results into. The Tree is that place: an open collection
// of incomplete graphs waiting to be expanded and a solution collection of
// complete graphs, both ordered by score, plus progress counters.
//
// # How It Works
//
// A Tree is seeded with a single root graph (only the Input and Output nodes)
// at score zero. Workers repeatedly:
//  1. Take the best open graph with NextGraph (blocking while none is open)
//  2. Expand it and score the surviving children
//  3. Put complete children with PutSolution and the rest with PutGraph
//  4. Call FinishGraph
//
// The tree is Exhausted once nothing is open and no taken graph is still
// between steps 1 and 4.
//
// Consumers either block on NextSolution or inspect the best solution so far
// with PeekBestSolution.
//
// # Ordering
//
// Both collections are max-first: the highest score is returned next. Equal
// scores are returned in insertion order, so a run with one worker is fully
// reproducible. Graphs that are isomorphic but were reached along different
// expansion paths are not merged and are searched once per path.
//
// # Thread-Safety
//
// All Tree and Queue methods are safe for concurrent use. Graphs handed to a
// Tree must not be modified afterwards.
package scheduler
