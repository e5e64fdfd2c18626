// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package coop

// bothStep races two subtasks for both completions.
type bothStep struct {
	span
	f, g *Task
}

// Both runs f and g concurrently until both have completed. Within a
// pass f is always evaluated before g; a child that finishes early
// keeps reporting Done without running user code while its sibling
// catches up.
func Both(f, g *Task) Step {
	return &bothStep{f: f, g: g}
}

func (s *bothStep) number(next *uint16) {
	s.lo = *next
	*next++
	s.hi = *next
}

func (s *bothStep) enter(c *Call) Status {
	c.resetChild(1, s.f)
	c.resetChild(2, s.g)
	c.fr.pc = s.lo
	return s.resume(c)
}

func (s *bothStep) resume(c *Call) Status {
	fs := c.evalChild(1, s.f)
	gs := c.evalChild(2, s.g)
	if fs == Done && gs == Done {
		return Done
	}
	return Cont
}

// untilStep runs g for as long as f is running.
type untilStep struct {
	span
	f, g *Task
}

// Until runs g while f runs and falls through as soon as f completes.
// g is abandoned where it stands — no cleanup notification; a task
// that needs teardown should carry its own completion path (or a
// [Task.Finally]). Re-entering the step reinitializes both children.
func Until(f, g *Task) Step {
	return &untilStep{f: f, g: g}
}

func (s *untilStep) number(next *uint16) {
	s.lo = *next
	*next++
	s.hi = *next
}

func (s *untilStep) enter(c *Call) Status {
	c.resetChild(1, s.f)
	c.resetChild(2, s.g)
	c.fr.pc = s.lo
	return s.resume(c)
}

func (s *untilStep) resume(c *Call) Status {
	fs := c.evalChild(1, s.f)
	c.evalChild(2, s.g)
	if fs == Done {
		return Done
	}
	return Cont
}
