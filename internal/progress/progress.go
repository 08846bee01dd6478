// Package progress publishes periodic search progress updates.
package progress

import (
	"context"
	"errors"
	"time"

	"github.com/vk/graphsolver/internal/ctxlog"
	"github.com/vk/graphsolver/internal/scheduler"
)

// Update is a snapshot of a running search.
type Update struct {
	Problem string
	Elapsed time.Duration
	Stats   scheduler.Stats
	// HasBest is false until the first solution is found.
	HasBest   bool
	BestScore float64
	// Best is the function listing of the best solution so far.
	Best string
	Done bool
}

// Payload returns the update as a plain map, the shape sent over the wire.
func (u Update) Payload() map[string]any {
	p := map[string]any{
		"problem":          u.Problem,
		"elapsed_ms":       u.Elapsed.Milliseconds(),
		"graphs_processed": u.Stats.GraphsProcessed,
		"solutions_found":  u.Stats.SolutionsFound,
		"open_graphs":      u.Stats.OpenGraphs,
		"done":             u.Done,
	}
	if u.HasBest {
		p["best_score"] = u.BestScore
		p["best"] = u.Best
	}
	return p
}

// Reporter receives progress updates.
type Reporter interface {
	Report(ctx context.Context, u Update) error
	Close() error
}

// LogReporter writes every update to the context logger.
type LogReporter struct{}

// Report implements Reporter.
func (LogReporter) Report(ctx context.Context, u Update) error {
	args := []any{
		"problem", u.Problem,
		"elapsed", u.Elapsed.Round(time.Millisecond).String(),
		"graphs_processed", u.Stats.GraphsProcessed,
		"solutions_found", u.Stats.SolutionsFound,
		"open_graphs", u.Stats.OpenGraphs,
	}
	if u.HasBest {
		args = append(args, "best_score", u.BestScore)
	}
	msg := "Search progress."
	if u.Done {
		msg = "Search finished."
	}
	ctxlog.FromContext(ctx).Info(msg, args...)
	return nil
}

// Close implements Reporter.
func (LogReporter) Close() error { return nil }

// Multi fans updates out to several reporters.
type Multi []Reporter

// Report sends u to every reporter and joins their errors.
func (m Multi) Report(ctx context.Context, u Update) error {
	var errs []error
	for _, r := range m {
		errs = append(errs, r.Report(ctx, u))
	}
	return errors.Join(errs...)
}

// Close closes every reporter and joins their errors.
func (m Multi) Close() error {
	var errs []error
	for _, r := range m {
		errs = append(errs, r.Close())
	}
	return errors.Join(errs...)
}
