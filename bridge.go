// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package coop

import (
	"errors"

	"code.hybscloud.com/atomix"
	"code.hybscloud.com/lfq"
)

// ErrClosed is returned by [Inbox.Push] after [Inbox.Close].
var ErrClosed = errors.New("coop: inbox closed")

// Inbox bridges one host goroutine into the cooperative world: the
// producer pushes scalar events (button edges, sensor readings, bytes
// off a wire) and task code consumes them with [Recv] or polls
// [Inbox.Pending] from an [Await] predicate.
//
// Transport is a bounded lock-free SPSC queue from lfq: exactly one
// producer goroutine and one consuming driver goroutine. Push is
// non-blocking and returns iox.ErrWouldBlock on backpressure.
type Inbox[T any] struct {
	q       lfq.SPSC[T]
	pending atomix.Uint32
	closed  atomix.Uint32
}

// NewInbox creates an inbox with the given queue capacity.
func NewInbox[T any](capacity int) *Inbox[T] {
	in := &Inbox[T]{}
	in.q.Init(capacity)
	return in
}

// Push delivers v to the consumer. Returns iox.ErrWouldBlock when the
// queue is full and [ErrClosed] after Close. Producer side only.
func (in *Inbox[T]) Push(v T) error {
	if in.closed.Load() != 0 {
		return ErrClosed
	}
	if err := in.q.Enqueue(&v); err != nil {
		return err
	}
	in.pending.Add(1)
	return nil
}

// TryRecv pops the next value without waiting. Returns
// iox.ErrWouldBlock when the queue is empty. Consumer side only.
func (in *Inbox[T]) TryRecv() (T, error) {
	v, err := in.q.Dequeue()
	if err != nil {
		var zero T
		return zero, err
	}
	in.pending.Add(^uint32(0))
	return v, nil
}

// Close marks the inbox closed. Values already queued remain
// receivable; a [Recv] step on a closed, drained inbox falls through.
func (in *Inbox[T]) Close() {
	in.closed.Add(1)
}

// Closed reports whether Close has been called.
func (in *Inbox[T]) Closed() bool {
	return in.closed.Load() != 0
}

// Pending reports whether a value is queued. Pure; usable from an
// [Await] predicate.
func (in *Inbox[T]) Pending() bool {
	return in.pending.Load() != 0
}

// recvStep suspends the task until the inbox yields a value.
type recvStep[T any] struct {
	span
	in   *Inbox[T]
	into func(c *Call, v T)
}

// Recv waits for the next inbox value and passes it to into, then
// falls through. On a closed inbox it drains the remaining values and
// then falls through without calling into.
func Recv[T any](in *Inbox[T], into func(c *Call, v T)) Step {
	return &recvStep[T]{in: in, into: into}
}

func (s *recvStep[T]) number(next *uint16) {
	s.lo = *next
	*next++
	s.hi = *next
}

func (s *recvStep[T]) enter(c *Call) Status {
	c.fr.pc = s.lo
	return s.resume(c)
}

func (s *recvStep[T]) resume(c *Call) Status {
	v, err := s.in.TryRecv()
	if err != nil {
		if !s.in.Closed() {
			return Cont
		}
		// a push sequenced before Close can become visible after the
		// failed dequeue; retry once under the closed flag
		if v, err = s.in.TryRecv(); err != nil {
			return Done
		}
	}
	if s.into != nil {
		s.into(c, v)
	}
	return Done
}
