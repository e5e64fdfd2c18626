// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package coop_test

import (
	"testing"

	"code.hybscloud.com/coop"
)

// fakeClock is a hand-advanced millisecond clock for deterministic
// schedules.
type fakeClock struct {
	ms uint32
}

func (f *fakeClock) now() uint32 {
	return f.ms
}

func (f *fakeClock) advance(ms uint32) {
	f.ms += ms
}

// drive runs passes passes on the sites, advancing the clock stepMs
// after each sweep. The first pass runs at the clock's current time.
func drive(clk *fakeClock, passes int, stepMs uint32, sites ...*coop.Driver) {
	for range passes {
		for _, d := range sites {
			d.Pass()
		}
		clk.advance(stepMs)
	}
}

// edge is one recorded pin transition.
type edge struct {
	at   uint32
	high bool
}

// pin records level transitions with the fake clock's timestamps.
type pin struct {
	clk   *fakeClock
	edges []edge
}

func (p *pin) set(high bool) {
	p.edges = append(p.edges, edge{at: p.clk.ms, high: high})
}

// wantEdges fails the test unless the recorded transitions match,
// tolerating one pass (tol ms) of jitter on each timestamp.
func wantEdges(t *testing.T, got []edge, want []edge, tol uint32) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %d transitions %v, want %d %v", len(got), got, len(want), want)
	}
	for i, w := range want {
		g := got[i]
		if g.high != w.high {
			t.Fatalf("transition %d: got high=%v, want high=%v", i, g.high, w.high)
		}
		lo, hi := w.at, w.at+tol
		if g.at < lo || g.at > hi {
			t.Fatalf("transition %d: at %d ms, want within [%d, %d]", i, g.at, lo, hi)
		}
	}
}

// blinkTask toggles p forever with the given half-period.
func blinkTask(p *pin, period uint32) *coop.Task {
	return coop.Proc(
		coop.Forever(
			coop.Do(func(*coop.Call) { p.set(true) }),
			coop.Delay(period),
			coop.Do(func(*coop.Call) { p.set(false) }),
			coop.Delay(period),
		),
	).Named("blink")
}

// marks collects labeled events with timestamps, for ordering checks.
type marks struct {
	clk     *fakeClock
	entries []mark
}

type mark struct {
	label string
	at    uint32
}

func (m *marks) add(label string) {
	var at uint32
	if m.clk != nil {
		at = m.clk.ms
	}
	m.entries = append(m.entries, mark{label: label, at: at})
}

func (m *marks) labels() []string {
	s := make([]string, len(m.entries))
	for i, e := range m.entries {
		s[i] = e.label
	}
	return s
}
