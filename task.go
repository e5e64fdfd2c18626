// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package coop

// Step is one element of a task body. Steps are built once, by the
// constructors in this package, and evaluated in place on every pass;
// construction assigns each suspension point a resume token unique
// within the task.
type Step interface {
	// number assigns this step's resume tokens from *next, advancing
	// it past every token the step owns.
	number(next *uint16)
	// enter begins the step: arrival actions run exactly once per
	// invocation here (deadline capture, child reinitialization), and
	// the frame's pc is set to the step's first token before any
	// suspension. Returns Done when the step fell through on arrival.
	enter(c *Call) Status
	// resume continues the step at the frame's current pc on a later
	// pass. Returns Done when the step has fallen through.
	resume(c *Call) Status
	// owns reports whether pc belongs to this step.
	owns(pc uint16) bool
}

// span is the half-open token range [lo, hi) a step owns. Steps with
// lo == hi never suspend and are never resume targets.
type span struct {
	lo, hi uint16
}

func (s *span) owns(pc uint16) bool {
	return pc >= s.lo && pc < s.hi
}

// A Task is a resumable procedure: a body of steps plus an optional
// locals factory and an optional finally task. Tasks are built once —
// the combinator tree is fixed at construction — and may be invoked
// from any number of driver sites; all per-invocation state lives in
// the frame of the slot the task occupies there.
type Task struct {
	name       string
	body       Step
	fin        *Task
	tokens     uint16
	newLocals  func() any
	zeroLocals func(any)
}

// Proc builds a task from a body of steps, run in sequence.
func Proc(steps ...Step) *Task {
	t := &Task{body: Seq(steps...)}
	next := uint16(1) // 0 marks an unentered frame
	t.body.number(&next)
	t.tokens = next
	return t
}

// ProcWith builds a task whose frame carries a persistent-locals
// record of type L, allocated with the frame and zeroed on each fresh
// invocation. Access it inside steps with [Locals].
func ProcWith[L any](steps ...Step) *Task {
	t := Proc(steps...)
	t.newLocals = func() any { return new(L) }
	t.zeroLocals = func(p any) {
		var zero L
		*(p.(*L)) = zero
	}
	return t
}

// Named sets the task's name for trace records and returns the task.
func (t *Task) Named(name string) *Task {
	t.name = name
	return t
}

// Finally attaches a task that runs whenever t completes, for any
// reason — falling off the end of the body or an explicit [Finish].
// It runs on t's first child slot, to completion, before t reports
// Done. Returns t.
func (t *Task) Finally(f *Task) *Task {
	t.fin = f
	return t
}

// step evaluates the task at slot for one pass. The frame is created
// on first touch; a frame already at its epilogue reports Done without
// running user code.
func (t *Task) step(d *Driver, slot int) Status {
	fr := d.st.frameAt(slot, t)
	c := Call{d: d, task: t, fr: fr, slot: slot}

	var st Status
	switch {
	case fr.pc == pcFinally:
		st = Done
	case fr.pc == pcFinalize:
		st = t.runFinally(&c)
	case fr.pc == pcTop:
		st = t.body.enter(&c)
		if st == Done {
			st = t.complete(&c)
		}
	default:
		st = t.body.resume(&c)
		if st == Done {
			st = t.complete(&c)
		}
	}
	d.trace(slot, t.name, fr.pc, st)
	return st
}

// complete runs the epilogue after the body fell through this pass.
func (t *Task) complete(c *Call) Status {
	if t.fin == nil {
		c.fr.pc = pcFinally
		return Done
	}
	c.resetChild(1, t.fin)
	c.fr.pc = pcFinalize
	return t.runFinally(c)
}

// runFinally drives the finally task; the epilogue is reached only
// once it completes.
func (t *Task) runFinally(c *Call) Status {
	if st := c.evalChild(1, t.fin); st != Done {
		return Cont
	}
	c.fr.pc = pcFinally
	return Done
}
