// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package coop

// Resume token sentinels. User step tokens are numbered from 1 at task
// construction; 0 marks a frame that has not entered its body yet.
const (
	pcTop      uint16 = 0
	pcFinalize uint16 = ^uint16(0) - 1 // body complete, finally task running
	pcFinally  uint16 = ^uint16(0)     // task complete
)

// frame is the activation record of one task invocation. It is
// allocated at most once per tree slot per driver lifetime; its address
// is stable while it lives.
type frame struct {
	// pc is the resume token: the step at which evaluation picks up
	// on the next pass. pcTop on first entry, pcFinally once complete.
	pc uint16
	// wait is an absolute deadline in monotonic milliseconds.
	// Meaningful only while a Delay or Timeout has parked the task.
	wait uint32
	// val is the scalar mailbox carrying a value across an Alternate
	// yield. Written by a child's YieldToPeer, read by the peer via
	// Call.PeerValue.
	val int64
	// cond latches a decision taken on a prior pass: which side of a
	// Race won, whose turn it is in an Alternate.
	cond bool
	// locals is the task's persistent-locals record, created by the
	// task's locals factory and zeroed on reinitialization.
	locals any
	// owner is the task whose locals record the frame currently
	// holds. Two call sites can legitimately map to one slot — two
	// sequential Then steps, or a body subtask and the task's Finally
	// — and each must see its own record.
	owner *Task
}

// reinit returns the frame to its initial state for a fresh invocation
// of the slot's task. Storage is retained; only contents reset.
func (fr *frame) reinit(t *Task) {
	fr.pc = pcTop
	fr.wait = 0
	fr.val = 0
	fr.cond = false
	if fr.locals != nil && t.zeroLocals != nil {
		t.zeroLocals(fr.locals)
	}
}
