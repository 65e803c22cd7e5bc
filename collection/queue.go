package collection

import (
	"iter"
	"sync"

	"github.com/emirpasic/gods/queues/linkedlistqueue"
)

var _ Queue[any] = (*ConcurrentQueue[any])(nil)

// ConcurrentQueue is an unbounded FIFO queue that is safe for concurrent
// producers and consumers. Iteration works on a snapshot taken when it starts.
type ConcurrentQueue[E any] struct {
	mu    sync.Mutex
	queue *linkedlistqueue.Queue
}

func NewConcurrentQueue[E any](values ...E) *ConcurrentQueue[E] {
	q := &ConcurrentQueue[E]{queue: linkedlistqueue.New()}
	q.AddAll(values...)
	return q
}

// Add is Offer.
func (q *ConcurrentQueue[E]) Add(e E) bool {
	return q.Offer(e)
}

func (q *ConcurrentQueue[E]) AddAll(es ...E) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	for _, e := range es {
		q.queue.Enqueue(e)
	}
	return len(es) > 0
}

func (q *ConcurrentQueue[E]) Offer(e E) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.queue.Enqueue(e)
	return true
}

func (q *ConcurrentQueue[E]) Poll() (E, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	v, ok := q.queue.Dequeue()
	if !ok {
		var zero E
		return zero, false
	}
	return cast[E](v), true
}

func (q *ConcurrentQueue[E]) Peek() (E, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	v, ok := q.queue.Peek()
	if !ok {
		var zero E
		return zero, false
	}
	return cast[E](v), true
}

// Remove removes the first occurrence of e, keeping the order of the rest.
func (q *ConcurrentQueue[E]) Remove(e E) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	values := q.queue.Values()
	removed := false
	q.queue.Clear()
	for _, v := range values {
		if !removed && v == any(e) {
			removed = true
			continue
		}
		q.queue.Enqueue(v)
	}
	return removed
}

func (q *ConcurrentQueue[E]) Contains(e E) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	for _, v := range q.queue.Values() {
		if v == any(e) {
			return true
		}
	}
	return false
}

func (q *ConcurrentQueue[E]) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.queue.Size()
}

func (q *ConcurrentQueue[E]) IsEmpty() bool {
	return q.Len() == 0
}

func (q *ConcurrentQueue[E]) Clear() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.queue.Clear()
}

func (q *ConcurrentQueue[E]) Values() []E {
	q.mu.Lock()
	values := q.queue.Values()
	q.mu.Unlock()

	out := make([]E, len(values))
	for i, v := range values {
		out[i] = cast[E](v)
	}
	return out
}

func (q *ConcurrentQueue[E]) All() iter.Seq[E] {
	return func(yield func(E) bool) {
		for _, e := range q.Values() {
			if !yield(e) {
				return
			}
		}
	}
}
