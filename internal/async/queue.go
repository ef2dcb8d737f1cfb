// Package async funnels completions of background work back onto the frame loop.
//
// Platform negotiation and asset loads run on worker goroutines; their continuations are posted
// to a Queue and only run when the frame loop calls Drain. All application state is therefore
// mutated from a single goroutine.
package async

import (
	"context"
	"sync"
)

// Queue holds continuations posted from any goroutine until the owner drains them.
type Queue struct {
	mu      sync.Mutex
	pending []func()
	tasks   sync.WaitGroup
}

// NewQueue returns an empty queue.
func NewQueue() *Queue {
	return &Queue{}
}

// Post schedules fn to run on the next Drain. Safe from any goroutine.
func (q *Queue) Post(fn func()) {
	q.mu.Lock()
	q.pending = append(q.pending, fn)
	q.mu.Unlock()
}

// Len returns the number of continuations waiting to run.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}

// Drain runs every continuation queued so far, in post order, on the calling goroutine.
// Continuations posted while draining run on the next Drain. Returns how many ran.
func (q *Queue) Drain() int {
	q.mu.Lock()
	batch := q.pending
	q.pending = nil
	q.mu.Unlock()
	for _, fn := range batch {
		fn()
	}
	return len(batch)
}

// Settle waits for every task started with Go and drains until nothing is left, including
// continuations that start further tasks. Must be called from the goroutine that calls Go.
func (q *Queue) Settle() {
	for {
		q.tasks.Wait()
		if q.Drain() == 0 && q.Len() == 0 {
			return
		}
	}
}

// Go runs work on a new goroutine and posts done(result, err) to q when it returns.
// Call from the draining goroutine.
func Go[T any](ctx context.Context, q *Queue, work func(context.Context) (T, error), done func(T, error)) {
	q.tasks.Add(1)
	go func() {
		defer q.tasks.Done()
		v, err := work(ctx)
		q.Post(func() { done(v, err) })
	}()
}
