// Package queue provides the capacity-bounded blocking queue between the
// candidate reader and the scoring workers. The bound is what gives the
// pipeline backpressure: a slow pool stalls the reader instead of letting
// buffered candidates grow without limit.
package queue

import "sync"

// Bounded is a fixed-capacity, multi-producer multi-consumer FIFO queue.
// Push blocks while the queue is full; Pop blocks while it is empty.
// FIFO order is guaranteed relative to each producer's own pushes.
type Bounded[T any] struct {
	mu       sync.Mutex
	notFull  *sync.Cond
	notEmpty *sync.Cond
	items    []T
	capacity int
}

// NewBounded creates a queue holding at most capacity items. Capacity must
// be at least 1.
func NewBounded[T any](capacity int) *Bounded[T] {
	if capacity < 1 {
		capacity = 1
	}
	q := &Bounded[T]{
		items:    make([]T, 0, capacity),
		capacity: capacity,
	}
	q.notFull = sync.NewCond(&q.mu)
	q.notEmpty = sync.NewCond(&q.mu)
	return q
}

// Push appends item, blocking until the queue has room.
func (q *Bounded[T]) Push(item T) {
	q.mu.Lock()
	for len(q.items) >= q.capacity {
		q.notFull.Wait()
	}
	q.items = append(q.items, item)
	q.mu.Unlock()
	q.notEmpty.Signal()
}

// Pop removes and returns the oldest item, blocking until one is available.
func (q *Bounded[T]) Pop() T {
	q.mu.Lock()
	for len(q.items) == 0 {
		q.notEmpty.Wait()
	}
	item := q.items[0]
	q.items = q.items[1:]
	if len(q.items) == 0 {
		// Reset the backing array so consumed items do not pin memory.
		q.items = make([]T, 0, q.capacity)
	}
	q.mu.Unlock()
	q.notFull.Signal()
	return item
}

// Len returns the number of buffered items.
func (q *Bounded[T]) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

// Cap returns the fixed capacity.
func (q *Bounded[T]) Cap() int {
	return q.capacity
}
