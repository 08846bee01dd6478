package solver

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"github.com/vk/graphsolver/internal/ctxlog"
	"github.com/vk/graphsolver/internal/scheduler"
	"golang.org/x/sync/errgroup"
)

// ErrAlreadyStarted is returned by Start when the solver is running.
var ErrAlreadyStarted = errors.New("solver already started")

// Solver owns a fixed-size pool of workers sharing one tree.
type Solver struct {
	tree    *scheduler.Tree
	workers []*Worker

	mu     sync.Mutex
	cancel context.CancelFunc
	group  *errgroup.Group
	active atomic.Int32
}

// New creates a solver with n workers, at least one.
func New(tree *scheduler.Tree, n int) *Solver {
	n = max(n, 1)
	s := &Solver{tree: tree, workers: make([]*Worker, n)}
	for i := range s.workers {
		s.workers[i] = NewWorker(i, tree)
	}
	return s
}

// Tree returns the tree the workers run on.
func (s *Solver) Tree() *scheduler.Tree { return s.tree }

// Workers returns the pool size.
func (s *Solver) Workers() int { return len(s.workers) }

// Active returns the number of worker goroutines that have not yet exited.
func (s *Solver) Active() int { return int(s.active.Load()) }

// Start launches every worker. The workers run until Stop is called or ctx
// is done.
func (s *Solver) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.group != nil {
		return ErrAlreadyStarted
	}

	ctx, s.cancel = context.WithCancel(ctx)
	s.group, ctx = errgroup.WithContext(ctx)
	ctxlog.FromContext(ctx).Info("Starting solver.", "workers", len(s.workers))

	for _, w := range s.workers {
		w.stopping.Store(false)
		s.active.Add(1)
		s.group.Go(func() error {
			defer s.active.Add(-1)
			return w.Run(ctx)
		})
	}
	return nil
}

// Stop signals every worker and waits for all of them to exit. It returns the
// first error a worker failed with, if any. Calling Stop on a solver that is
// not running is a no-op. A stopped solver may be started again.
func (s *Solver) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.group == nil {
		return nil
	}
	for _, w := range s.workers {
		w.Stop()
	}
	s.cancel()
	err := s.group.Wait()
	s.group, s.cancel = nil, nil
	return err
}

// Wait blocks until every worker has exited on its own, e.g. because the
// context passed to Start was cancelled.
func (s *Solver) Wait() error {
	s.mu.Lock()
	g := s.group
	s.mu.Unlock()
	if g == nil {
		return nil
	}
	return g.Wait()
}
