package app

import (
	"cmp"
	"context"
	"slices"

	"github.com/vk/graphsolver/internal/ctxlog"
	"github.com/vk/graphsolver/internal/render"
	"github.com/vk/graphsolver/internal/scheduler"
)

// rankSolutions evaluates fitness where available and orders solutions by
// fitness, then heuristic score, both descending. Solutions without a
// fitness value sort after those with one. At most n are returned.
func (a *App) rankSolutions(ctx context.Context, results []scheduler.Result, n int) []render.Solution {
	logger := ctxlog.FromContext(ctx)
	out := make([]render.Solution, 0, len(results))
	for _, r := range results {
		s := render.Solution{Graph: r.Graph, Score: r.Score}
		if a.env.HasFitness() {
			f, err := a.env.Fitness(r.Graph)
			if err != nil {
				logger.Warn("Fitness evaluation failed.", "graph", r.Graph.String(), "error", err)
			} else {
				s.Fitness = &f
			}
		}
		out = append(out, s)
	}

	slices.SortStableFunc(out, func(x, y render.Solution) int {
		switch {
		case x.Fitness != nil && y.Fitness != nil:
			if c := cmp.Compare(*y.Fitness, *x.Fitness); c != 0 {
				return c
			}
		case x.Fitness != nil:
			return -1
		case y.Fitness != nil:
			return 1
		}
		return cmp.Compare(y.Score, x.Score)
	})
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}
