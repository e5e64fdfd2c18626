// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package coop

import (
	"log/slog"

	"code.hybscloud.com/atomix"
)

type driverMode uint8

const (
	modeOnce driverMode = iota
	modeRepeat
	modeEvery
)

// Driver is one top-level task site. It owns an independent task tree
// and is invoked from the host idle loop via [Driver.Pass]; several
// sites in one loop share the host's time axis and nothing else.
//
// A Driver is single-threaded: Pass must always be called from the
// same goroutine, and never from an interrupt-style context.
type Driver struct {
	serial Serial
	mode   driverMode
	period uint32
	ref    uint32
	refSet bool
	root   *Task
	st     stack
	depth  int
	clock  Clock
	log    *slog.Logger
	// now is the clock reading for the pass in progress; one reading
	// per pass keeps every deadline comparison within a pass coherent.
	now uint32
}

// Option configures a driver site.
type Option func(*Driver)

// WithDepth sets the task tree depth (default [DefaultDepth]). A tree
// of depth d holds 2^d − 1 slots; combinator nesting beyond it panics
// on first overflowing access.
func WithDepth(depth int) Option {
	return func(d *Driver) { d.depth = depth }
}

// WithClock replaces the monotonic millisecond clock (default [Wall]).
func WithClock(clock Clock) Option {
	return func(d *Driver) { d.clock = clock }
}

// WithTrace installs a debug sink. One record per task step, at
// [slog.LevelDebug], carrying the driver serial, slot, task name,
// resume token and status. A nil logger (the default) costs one
// branch per step.
func WithTrace(log *slog.Logger) Option {
	return func(d *Driver) { d.log = log }
}

// Once builds a driver site that runs f to completion. Passes after
// completion are no-ops reporting Done.
func Once(f *Task, opts ...Option) *Driver {
	return newDriver(modeOnce, 0, f, opts)
}

// Repeat builds a driver site that restarts f on the pass after each
// completion.
func Repeat(f *Task, opts ...Option) *Driver {
	return newDriver(modeRepeat, 0, f, opts)
}

// Every builds a driver site that restarts f once it has completed and
// at least periodMillis have elapsed since the reference time. The
// reference starts at the first pass and advances to the clock reading
// of each restart.
func Every(periodMillis uint32, f *Task, opts ...Option) *Driver {
	return newDriver(modeEvery, periodMillis, f, opts)
}

func newDriver(m driverMode, period uint32, root *Task, opts []Option) *Driver {
	d := &Driver{
		serial: serials.Add(1),
		mode:   m,
		period: period,
		root:   root,
		depth:  DefaultDepth,
		clock:  Wall,
	}
	for _, opt := range opts {
		opt(d)
	}
	d.st = newStack(d.depth)
	return d
}

// Pass advances every live task in this site's tree to its next
// suspension point and returns the root status. Work per pass is
// bounded by the number of live tasks; the host idle loop should call
// Pass often enough that one pass of latency is acceptable.
func (d *Driver) Pass() Status {
	d.now = d.clock()
	if !d.refSet {
		d.ref, d.refSet = d.now, true
	}
	d.st.cur = 0
	st := d.root.step(d, 0)
	if st == Yield {
		// a yield with no enclosing alternation is plain suspension
		st = Cont
	}
	if st == Done {
		switch d.mode {
		case modeRepeat:
			d.st.reset(0, d.root)
		case modeEvery:
			if elapsed(d.now, d.ref) >= d.period {
				d.ref = d.now
				d.st.reset(0, d.root)
			}
		}
	}
	return st
}

// Done reports whether this site will never run its task again: the
// root frame is at its epilogue and the driver has no restart rule.
// Repeat and Every sites always restart — a completed Every body is
// merely waiting out its period — so Done reports false for them.
func (d *Driver) Done() bool {
	if d.mode != modeOnce {
		return false
	}
	fr := d.st.slots[0]
	return fr != nil && fr.pc == pcFinally
}

// Serial is a monotonically increasing driver-site identifier.
// Construction of a site assigns the next value; trace records carry
// it so interleaved sites can be told apart.
type Serial = uint32

// serials is the global counter behind Serial assignment.
var serials atomix.Uint32

// Serial returns the serial number assigned to this driver site.
func (d *Driver) Serial() Serial {
	return d.serial
}
