// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package coop

// finishStep jumps the task straight to its epilogue.
type finishStep struct {
	span
}

// Finish ends the task immediately. The caller observes suspension on
// the departing pass and completion on the next one; this one-pass
// latency is part of the contract. A [Task.Finally] task still runs
// before completion is reported.
func Finish() Step {
	return &finishStep{}
}

func (s *finishStep) number(next *uint16) { s.lo, s.hi = *next, *next }

func (s *finishStep) enter(c *Call) Status {
	if c.task.fin != nil {
		c.resetChild(1, c.task.fin)
		c.fr.pc = pcFinalize
	} else {
		c.fr.pc = pcFinally
	}
	return Cont
}

func (s *finishStep) resume(*Call) Status {
	panic("coop: resume of a non-suspending step")
}
