// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package coop

// thenStep calls a subtask to completion on the first child slot.
type thenStep struct {
	span
	sub *Task
}

// Then runs the subtask f until it completes, then falls through. The
// child frame is reinitialized on arrival, so each time the body
// reaches this step f starts fresh. A Yield from f with no enclosing
// [Alternate] turn is plain suspension and surfaces as Cont.
func Then(f *Task) Step {
	return &thenStep{sub: f}
}

func (s *thenStep) number(next *uint16) {
	s.lo = *next
	*next++
	s.hi = *next
}

func (s *thenStep) enter(c *Call) Status {
	c.resetChild(1, s.sub)
	c.fr.pc = s.lo
	return s.resume(c)
}

func (s *thenStep) resume(c *Call) Status {
	if st := c.evalChild(1, s.sub); st == Done {
		return Done
	}
	return Cont
}
