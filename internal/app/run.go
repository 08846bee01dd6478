package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/vk/graphsolver/internal/ctxlog"
	"github.com/vk/graphsolver/internal/progress"
	"github.com/vk/graphsolver/internal/render"
	"github.com/vk/graphsolver/internal/scheduler"
	"github.com/vk/graphsolver/internal/solver"
)

// pollInterval is how often stop conditions are checked.
const pollInterval = 5 * time.Millisecond

// Stop reasons, as logged and returned by search.
const (
	stopMaxSolutions = "max solutions reached"
	stopMaxProcessed = "max processed graphs reached"
	stopExhausted    = "search space exhausted"
	stopTimeout      = "timeout"
	stopCancelled    = "cancelled"
	stopWorkers      = "all workers exited"
)

// Run executes the search and prints the ranked solutions to the output
// writer. It returns once a stop condition fires or ctx is cancelled; in both
// cases the solutions found so far are printed.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	a.startHealthcheckServer(ctx)
	defer a.closeHealthcheckServer(ctx)

	reporter, err := a.newReporter(ctx)
	if err != nil {
		return err
	}
	defer reporter.Close()

	tree, err := scheduler.NewTree(a.model.Problem.Name, a.env)
	if err != nil {
		return fmt.Errorf("failed to create search tree: %w", err)
	}
	a.started = time.Now()
	a.tree.Store(tree)
	defer a.tree.Store(nil)

	searchCtx := ctx
	if a.settings.timeout > 0 {
		var cancel context.CancelFunc
		searchCtx, cancel = context.WithTimeout(ctx, a.settings.timeout)
		defer cancel()
	}

	s := solver.New(tree, a.settings.workers)
	a.logger.Info("🚀 Starting search...",
		"problem", a.model.Problem.Name,
		"workers", s.Workers(),
		"max_solutions", a.settings.maxSolutions,
		"max_processed", a.settings.maxProcessed,
		"timeout", a.settings.timeout.String(),
	)
	if err := s.Start(searchCtx); err != nil {
		return err
	}

	reason := a.search(searchCtx, tree, s, reporter)
	workerErr := s.Stop()
	a.logger.Info("🏁 Search finished.", "reason", reason, "graphs_processed", tree.GraphsProcessed(), "solutions_found", tree.SolutionsFound())

	if err := reporter.Report(ctx, a.update(tree, true)); err != nil {
		a.logger.Warn("Failed to report progress.", "error", err)
	}
	if workerErr != nil {
		return fmt.Errorf("search failed: %w", workerErr)
	}

	solutions := a.rankSolutions(ctx, tree.DrainSolutions(), a.settings.topN)
	a.printSolutions(solutions)

	a.logger.Debug("App.Run method finished.")
	return nil
}

// search blocks until a stop condition fires and returns its reason. The
// stop conditions are checked in a fixed order on every poll.
func (a *App) search(ctx context.Context, tree *scheduler.Tree, s *solver.Solver, reporter progress.Reporter) string {
	poll := time.NewTicker(pollInterval)
	defer poll.Stop()
	report := time.NewTicker(a.settings.progressInterval)
	defer report.Stop()

	for {
		select {
		case <-ctx.Done():
			if errors.Is(ctx.Err(), context.DeadlineExceeded) {
				return stopTimeout
			}
			return stopCancelled
		case <-report.C:
			if err := reporter.Report(ctx, a.update(tree, false)); err != nil {
				a.logger.Warn("Failed to report progress.", "error", err)
			}
		case <-poll.C:
			if reason := a.stopReason(tree, s); reason != "" {
				return reason
			}
		}
	}
}

func (a *App) stopReason(tree *scheduler.Tree, s *solver.Solver) string {
	switch {
	case a.settings.maxSolutions > 0 && tree.SolutionsFound() >= a.settings.maxSolutions:
		return stopMaxSolutions
	case a.settings.maxProcessed > 0 && tree.GraphsProcessed() >= a.settings.maxProcessed:
		return stopMaxProcessed
	case tree.Exhausted():
		return stopExhausted
	case s.Active() == 0:
		return stopWorkers
	}
	return ""
}

func (a *App) update(tree *scheduler.Tree, done bool) progress.Update {
	u := progress.Update{
		Problem: a.model.Problem.Name,
		Elapsed: time.Since(a.started),
		Stats:   tree.Stats(),
		Done:    done,
	}
	if best, ok := tree.PeekBestSolution(); ok {
		u.HasBest = true
		u.BestScore = best.Score
		u.Best = render.Function(best.Graph)
	}
	return u
}

// newReporter always logs progress and additionally streams it over
// socket.io when a progress URL is configured.
func (a *App) newReporter(ctx context.Context) (progress.Reporter, error) {
	reporters := progress.Multi{progress.LogReporter{}}
	if a.config.ProgressURL != "" {
		sio, err := progress.NewSocketIOReporter(ctx, progress.SocketIOOptions{URL: a.config.ProgressURL})
		if err != nil {
			return nil, fmt.Errorf("failed to connect progress reporter: %w", err)
		}
		reporters = append(reporters, sio)
	}
	return reporters, nil
}

func (a *App) printSolutions(solutions []render.Solution) {
	if len(solutions) == 0 {
		fmt.Fprintln(a.outW, "No solutions found.")
		return
	}
	mode := render.ASCII
	if a.config.Markdown {
		mode = render.Markdown
	}
	fmt.Fprintln(a.outW, render.SolutionsTable(solutions, mode))
	fmt.Fprintf(a.outW, "\nBest solution:\n%s", render.Function(solutions[0].Graph))
}
