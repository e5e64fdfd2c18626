// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package coop

// Call is the evaluation context handed to user code inside [Do],
// [Await] and [YieldToPeer] steps. It is valid only for the duration
// of the call and must not be retained.
type Call struct {
	d    *Driver
	task *Task
	fr   *frame
	slot int
}

// Now returns the driver's clock reading for this pass, in monotonic
// milliseconds.
func (c *Call) Now() uint32 {
	return c.d.now
}

// PeerValue returns the scalar last deposited by the peer's
// [YieldToPeer] in an [Alternate] pair. The mailbox lives in the
// alternation's own frame, one level up the tree; both peers read and
// write the same cell, so a value is observable from the peer's next
// resumption until overwritten.
func (c *Call) PeerValue() int64 {
	return c.mailbox().val
}

// mailbox returns the frame holding this task's alternation mailbox:
// the parent frame, or the task's own frame at the root (a task with
// no caller has no peer; reads then see its own yields).
func (c *Call) mailbox() *frame {
	if c.slot == 0 {
		return c.fr
	}
	return c.d.st.slots[parentSlot(c.slot)]
}

// Locals returns the persistent-locals record of the running task,
// declared with [ProcWith]. The record survives suspension points and
// is zeroed when the task is reinitialized for a fresh invocation.
// Panics when the task was built without locals or with a different
// locals type.
func Locals[L any](c *Call) *L {
	l, ok := c.fr.locals.(*L)
	if !ok {
		panic("coop: task has no locals of the requested type")
	}
	return l
}

// resetChild reinitializes child n (1 or 2) for a fresh invocation of t.
func (c *Call) resetChild(n int, t *Task) {
	c.d.st.reset(childSlot(c.slot, n), t)
}

// evalChild evaluates t on child slot n, moving the cursor there for
// the duration of the call. The cursor is restored before returning,
// so moves made by nested combinators do not outlive the call.
func (c *Call) evalChild(n int, t *Task) Status {
	child := childSlot(c.slot, n)
	saved := c.d.st.cur
	c.d.st.cur = child
	st := t.step(c.d, child)
	c.d.st.cur = saved
	return st
}
