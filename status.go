// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package coop

// Status is the result of evaluating a task for one pass.
type Status uint8

const (
	// None is the zero value. A well-formed task never returns it.
	None Status = iota
	// Done reports normal completion. Re-entering a completed task
	// returns Done again without running any user code.
	Done
	// Cont reports suspension: the task wants to be resumed on a
	// later pass.
	Cont
	// Yield reports a voluntary handoff to the peer of an [Alternate]
	// pair. Combinators other than Alternate coerce Yield to Cont.
	Yield
)

// String implements fmt.Stringer for trace output.
func (s Status) String() string {
	switch s {
	case None:
		return "none"
	case Done:
		return "done"
	case Cont:
		return "cont"
	case Yield:
		return "yield"
	}
	return "invalid"
}
