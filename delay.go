// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package coop

// delayStep parks the task on an absolute deadline.
type delayStep struct {
	span
	ms uint32
}

// Delay suspends the task for ms milliseconds. The deadline is
// captured once, on arrival; Delay(0) still suspends for one pass, so
// the host gets at least one yield per delay.
func Delay(ms uint32) Step {
	return &delayStep{ms: ms}
}

func (s *delayStep) number(next *uint16) {
	s.lo = *next
	*next++
	s.hi = *next
}

func (s *delayStep) enter(c *Call) Status {
	c.fr.wait = c.d.now + s.ms
	c.fr.pc = s.lo
	return Cont
}

func (s *delayStep) resume(c *Call) Status {
	if reached(c.d.now, c.fr.wait) {
		return Done
	}
	return Cont
}

// awaitStep polls a predicate.
type awaitStep struct {
	span
	pred func(*Call) bool
}

// Await suspends the task until pred reports true. pred is evaluated
// on every pass, including the arrival pass — a predicate that is
// already true does not suspend. It must be pure: the runtime gives no
// bound on how many times it runs.
func Await(pred func(*Call) bool) Step {
	return &awaitStep{pred: pred}
}

func (s *awaitStep) number(next *uint16) {
	s.lo = *next
	*next++
	s.hi = *next
}

func (s *awaitStep) enter(c *Call) Status {
	c.fr.pc = s.lo
	return s.resume(c)
}

func (s *awaitStep) resume(c *Call) Status {
	if s.pred(c) {
		return Done
	}
	return Cont
}
