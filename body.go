// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package coop

// seqStep runs its children in order, resuming at the child that owns
// the frame's pc and entering the rest as each falls through.
type seqStep struct {
	span
	steps []Step
}

// Seq groups steps into one. Useful for the branch arguments of [Race]
// and [Timeout]; [Proc] and [Forever] group their arguments already.
func Seq(steps ...Step) Step {
	if len(steps) == 1 {
		return steps[0]
	}
	return &seqStep{steps: steps}
}

func (s *seqStep) number(next *uint16) {
	s.lo = *next
	for _, st := range s.steps {
		st.number(next)
	}
	s.hi = *next
}

func (s *seqStep) enter(c *Call) Status {
	return s.runFrom(c, 0)
}

func (s *seqStep) resume(c *Call) Status {
	for i, st := range s.steps {
		if st.owns(c.fr.pc) {
			if r := st.resume(c); r != Done {
				return r
			}
			return s.runFrom(c, i+1)
		}
	}
	panic("coop: resume token outside task body")
}

func (s *seqStep) runFrom(c *Call, from int) Status {
	for _, st := range s.steps[from:] {
		if r := st.enter(c); r != Done {
			return r
		}
	}
	return Done
}

// foreverStep restarts its body each time it falls through.
type foreverStep struct {
	body Step
}

// Forever loops the steps endlessly. The body must contain at least
// one suspension point per iteration; a body that falls through
// without suspending never returns control to the host.
func Forever(steps ...Step) Step {
	return &foreverStep{body: Seq(steps...)}
}

func (f *foreverStep) number(next *uint16) { f.body.number(next) }
func (f *foreverStep) owns(pc uint16) bool { return f.body.owns(pc) }

func (f *foreverStep) enter(c *Call) Status {
	for {
		if st := f.body.enter(c); st != Done {
			return st
		}
	}
}

func (f *foreverStep) resume(c *Call) Status {
	if st := f.body.resume(c); st != Done {
		return st
	}
	return f.enter(c)
}

// doStep is straight-line code between suspension points. It owns no
// tokens and runs to completion within the pass that reaches it.
type doStep struct {
	span
	fn func(*Call)
}

// Do runs fn when the body reaches it. fn must not block; it runs on
// the host thread inside the pass.
func Do(fn func(*Call)) Step {
	return &doStep{fn: fn}
}

func (s *doStep) number(next *uint16) { s.lo, s.hi = *next, *next }

func (s *doStep) enter(c *Call) Status {
	s.fn(c)
	return Done
}

func (s *doStep) resume(*Call) Status {
	panic("coop: resume of a non-suspending step")
}
