// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package coop

// DefaultDepth bounds the task tree of a driver site: a tree of depth
// D holds 2^D − 1 slots. Nested combinator use is statically visible
// at the call site, so the required depth is known when the site is
// written; exceeding it panics on the first overflowing access.
const DefaultDepth = 5

// stack is the tree of activation records for one driver site.
//
// The tree is a complete binary tree stored as a heap: slot 0 is the
// root and slot i's children are 2i+1 and 2i+2. Concurrency is
// fork-join shaped, so two children per task suffice, and child
// addressing is a shift and an add. Slots hold nil until first touch;
// a frame, once allocated, is reused for the driver's lifetime.
//
// The stack is a single-writer structure: one goroutine drives the
// whole tree.
type stack struct {
	slots []*frame
	// cur is the cursor: the slot being evaluated. Combinators set it
	// to a child index before descending and must not rely on it after
	// the child returns.
	cur int
}

func newStack(depth int) stack {
	if depth < 1 {
		panic("coop: tree depth must be at least 1")
	}
	return stack{slots: make([]*frame, 1<<depth-1)}
}

// childSlot returns the slot of child c (1 or 2) of slot i.
func childSlot(i, c int) int {
	return i<<1 + c
}

// parentSlot returns the slot of the parent of slot i.
func parentSlot(i int) int {
	return (i - 1) / 2
}

// frameAt returns the frame at slot i, creating it on first touch.
// The locals record follows the owning task: a slot shared by more
// than one call site (sequential Then steps, a body subtask and a
// Finally) gets a fresh record when ownership changes, which happens
// on reinitialization, never mid-invocation. Panics when i is outside
// the tree, which means the combinator nesting at this call site
// exceeds the driver's depth.
func (s *stack) frameAt(i int, t *Task) *frame {
	if i >= len(s.slots) {
		panic("coop: task tree depth exceeded; raise WithDepth at this driver site")
	}
	fr := s.slots[i]
	if fr == nil {
		fr = &frame{}
		s.slots[i] = fr
	}
	if fr.owner != t {
		fr.owner = t
		fr.locals = nil
		if t.newLocals != nil {
			fr.locals = t.newLocals()
		}
	}
	return fr
}

// reset reinitializes slot i for a fresh invocation of t, allocating
// the frame if the slot has never been touched.
func (s *stack) reset(i int, t *Task) {
	s.frameAt(i, t).reinit(t)
}
