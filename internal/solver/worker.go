package solver

import (
	"context"
	"errors"
	"sync/atomic"

	"github.com/vk/graphsolver/internal/ctxlog"
	"github.com/vk/graphsolver/internal/graph"
	"github.com/vk/graphsolver/internal/scheduler"
)

// Worker expands graphs taken from one tree.
type Worker struct {
	id       int
	tree     *scheduler.Tree
	stopping atomic.Bool
	children []*graph.Graph
}

// NewWorker returns a worker bound to tree. id only appears in logs.
func NewWorker(id int, tree *scheduler.Tree) *Worker {
	return &Worker{id: id, tree: tree}
}

// Step processes one open graph. It blocks until a graph is available and
// returns ctx.Err() if ctx is done first. A step whose ctx is already done
// takes nothing.
func (w *Worker) Step(ctx context.Context) error {
	// Take returns queued graphs even after cancellation, so a done ctx has
	// to be checked here or a non-empty tree would keep the worker busy.
	if err := ctx.Err(); err != nil {
		return err
	}
	g, err := w.tree.NextGraph(ctx)
	if err != nil {
		return err
	}
	defer w.tree.FinishGraph()

	env := w.tree.Environment()
	w.children = g.AppendChildren(w.children[:0], env)
	for i, child := range w.children {
		w.children[i] = nil
		if !env.IsValid(child) {
			continue
		}
		score := env.Heuristic(child)
		if child.IsComplete() {
			w.tree.PutSolution(child, score)
		} else {
			w.tree.PutGraph(child, score)
		}
	}
	return nil
}

// Run calls Step until Stop is called or ctx is done. Cancellation is the
// normal way out and is not reported as an error.
func (w *Worker) Run(ctx context.Context) error {
	ctx, logger := ctxlog.With(ctx, "workerID", w.id)
	logger.Debug("Worker started.")
	defer logger.Debug("Worker finished.")

	for !w.stopping.Load() && ctx.Err() == nil {
		if err := w.Step(ctx); err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return nil
			}
			logger.Error("Worker step failed.", "error", err)
			return err
		}
	}
	return nil
}

// Stop asks the worker to exit after its current step. A worker blocked on an
// empty tree only notices once its context is cancelled.
func (w *Worker) Stop() { w.stopping.Store(true) }
