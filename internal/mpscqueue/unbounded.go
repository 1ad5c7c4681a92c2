// (c) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package mpscqueue provides an unbounded multi-producer, single-consumer
// channel. Go channels are always bounded (buffered or not); the mempool
// loop needs a truly non-blocking Send so that its self-posted
// ProcessBatch event (spec §4.3, §9 "Self-posted ProcessBatch") can never
// deadlock against its own backlog. No library in the retrieval pack
// offers this primitive — channels are a language feature, not something
// an ecosystem package replaces — so this is the one piece of plumbing
// built directly on the standard library's sync primitives.
package mpscqueue

import (
	"sync"
	"sync/atomic"

	"github.com/ethereum/go-ethereum/log"
)

// Unbounded is an unbounded FIFO queue of T exposed as a channel-like
// Send/Recv pair. Send never blocks. Recv blocks until an item is
// available or the queue is closed.
type Unbounded[T any] struct {
	mu            sync.Mutex
	cond          *sync.Cond
	buf           []T
	closed        bool
	warnThreshold int
	lastWarnLen   atomic.Int64
}

// New returns a ready-to-use unbounded queue with backlog warnings disabled.
func New[T any]() *Unbounded[T] {
	q := &Unbounded[T]{}
	q.cond = sync.NewCond(&q.mu)
	return q
}

// SetWarnThreshold arms a one-shot-per-crossing log.Warn whenever Send
// leaves the backlog at or above n items. A non-positive n disables the
// warning. It does not bound or reject sends — the queue stays unbounded.
func (q *Unbounded[T]) SetWarnThreshold(n int) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.warnThreshold = n
}

// Send enqueues v. It never blocks and never fails unless the queue has
// been closed, in which case it panics — sending after Close indicates a
// programming error in the caller.
func (q *Unbounded[T]) Send(v T) {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		panic("mpscqueue: send on closed queue")
	}
	q.buf = append(q.buf, v)
	backlog := len(q.buf)
	threshold := q.warnThreshold
	q.cond.Signal()
	q.mu.Unlock()

	if threshold > 0 && backlog >= threshold && q.lastWarnLen.Swap(int64(backlog)) < int64(threshold) {
		log.Warn("mpscqueue: backlog crossed warning threshold", "len", backlog, "threshold", threshold)
	}
}

// Recv blocks until an item is available, returning it with ok=true, or
// until the queue is closed and drained, returning ok=false.
func (q *Unbounded[T]) Recv() (v T, ok bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	for len(q.buf) == 0 && !q.closed {
		q.cond.Wait()
	}
	if len(q.buf) == 0 {
		return v, false
	}
	v = q.buf[0]
	q.buf = q.buf[1:]
	if q.warnThreshold > 0 && len(q.buf) < q.warnThreshold {
		q.lastWarnLen.Store(0)
	}
	return v, true
}

// Len returns the current backlog size.
func (q *Unbounded[T]) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.buf)
}

// Close marks the queue closed. Already-enqueued items can still be
// drained by Recv; once drained, Recv returns ok=false.
func (q *Unbounded[T]) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.closed = true
	q.cond.Broadcast()
}
