package scheduler

import (
	"container/heap"
	"context"
	"sync"

	"github.com/vk/graphsolver/internal/graph"
)

// Result is a graph together with the score it was queued under.
type Result struct {
	Graph *graph.Graph
	Score float64
}

type entry struct {
	Result
	seq uint64
}

// entries implements heap.Interface, highest score first and ties by seq.
type entries []entry

func (h entries) Len() int { return len(h) }

func (h entries) Less(i, j int) bool {
	if h[i].Score != h[j].Score {
		return h[i].Score > h[j].Score
	}
	return h[i].seq < h[j].seq
}

func (h entries) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *entries) Push(x any) { *h = append(*h, x.(entry)) }

func (h *entries) Pop() any {
	old := *h
	n := len(old)
	e := old[n-1]
	old[n-1] = entry{}
	*h = old[:n-1]
	return e
}

// Queue is a concurrency-safe blocking priority queue of scored graphs.
// The zero value is ready to use.
type Queue struct {
	mu    sync.Mutex
	cond  *sync.Cond
	items entries
	seq   uint64
}

func (q *Queue) init() {
	if q.cond == nil {
		q.cond = sync.NewCond(&q.mu)
	}
}

// Push adds g with the given score and wakes one waiting taker.
func (q *Queue) Push(g *graph.Graph, score float64) {
	q.mu.Lock()
	q.init()
	heap.Push(&q.items, entry{Result: Result{Graph: g, Score: score}, seq: q.seq})
	q.seq++
	q.mu.Unlock()
	q.cond.Signal()
}

// Take removes and returns the best entry, blocking until one is available
// or ctx is done. On cancellation it returns ctx.Err(). An entry that is
// already queued is returned even if ctx is done; callers that must not
// take work after cancellation check ctx themselves.
func (q *Queue) Take(ctx context.Context) (Result, error) {
	q.mu.Lock()
	q.init()
	defer q.mu.Unlock()

	if len(q.items) == 0 {
		stop := context.AfterFunc(ctx, func() {
			q.mu.Lock()
			defer q.mu.Unlock()
			q.cond.Broadcast()
		})
		defer stop()
	}
	for len(q.items) == 0 {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}
		q.cond.Wait()
	}
	return heap.Pop(&q.items).(entry).Result, nil
}

// TryTake removes and returns the best entry without blocking.
func (q *Queue) TryTake() (Result, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.items) == 0 {
		return Result{}, false
	}
	return heap.Pop(&q.items).(entry).Result, true
}

// Peek returns the best entry without removing it.
func (q *Queue) Peek() (Result, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.items) == 0 {
		return Result{}, false
	}
	return q.items[0].Result, true
}

// Len returns the number of queued entries.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}
