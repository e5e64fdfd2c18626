// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package coop

// alternateStep interleaves two subtasks as a coroutine pair.
type alternateStep struct {
	span
	f, g *Task
}

// Alternate runs f and g as peers: f runs first and keeps running
// until it yields with [YieldToPeer], then g runs until it yields
// back, and so on. A peer that merely suspends (Delay, Await) keeps
// its turn. The alternation falls through as soon as either peer
// completes.
//
// The peers exchange scalars through the alternation's mailbox:
// YieldToPeer writes it, [Call.PeerValue] reads it.
func Alternate(f, g *Task) Step {
	return &alternateStep{f: f, g: g}
}

func (s *alternateStep) number(next *uint16) {
	s.lo = *next
	*next++
	s.hi = *next
}

func (s *alternateStep) enter(c *Call) Status {
	c.resetChild(1, s.f)
	c.resetChild(2, s.g)
	c.fr.cond = true // f's turn
	c.fr.pc = s.lo
	return s.resume(c)
}

func (s *alternateStep) resume(c *Call) Status {
	var st Status
	if c.fr.cond {
		st = c.evalChild(1, s.f)
	} else {
		st = c.evalChild(2, s.g)
	}
	switch st {
	case Done:
		return Done
	case Yield:
		c.fr.cond = !c.fr.cond
		return Cont
	default:
		return Cont
	}
}

// yieldStep hands the turn to the alternation peer.
type yieldStep struct {
	span
	fn func(*Call) int64
}

// YieldToPeer deposits fn's value in the alternation mailbox and hands
// the turn to the peer; the task resumes after this step once the peer
// yields back. Outside an [Alternate] turn there is no peer: the
// yielded status is coerced to plain suspension by whichever
// combinator sees it, and the value lands in the caller's mailbox
// unread.
func YieldToPeer(fn func(*Call) int64) Step {
	return &yieldStep{fn: fn}
}

// YieldValue is YieldToPeer with a constant.
func YieldValue(v int64) Step {
	return YieldToPeer(func(*Call) int64 { return v })
}

func (s *yieldStep) number(next *uint16) {
	s.lo = *next
	*next++
	s.hi = *next
}

func (s *yieldStep) enter(c *Call) Status {
	c.mailbox().val = s.fn(c)
	c.fr.pc = s.lo
	return Yield
}

func (s *yieldStep) resume(*Call) Status {
	return Done
}
