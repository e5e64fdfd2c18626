// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package coop_test

import (
	"testing"

	"code.hybscloud.com/coop"
)

// BenchmarkBlinkPass measures one steady-state pass over a single
// blink task. Frames are allocated on the first pass; the measured
// loop must stay allocation-free.
func BenchmarkBlinkPass(b *testing.B) {
	clk := &fakeClock{}
	p := &pin{clk: clk}
	site := coop.Repeat(blinkTask(p, 500), coop.WithClock(clk.now))
	site.Pass()
	p.edges = p.edges[:0]

	b.ReportAllocs()
	for b.Loop() {
		site.Pass()
		clk.advance(1)
		if len(p.edges) > 0 {
			p.edges = p.edges[:0]
		}
	}
}

// BenchmarkJoinPass measures one pass over a three-frame tree.
func BenchmarkJoinPass(b *testing.B) {
	clk := &fakeClock{}
	a := &pin{clk: clk}
	c := &pin{clk: clk}
	site := coop.Once(coop.Proc(
		coop.Both(blinkTask(a, 500), blinkTask(c, 300)),
	), coop.WithClock(clk.now))
	site.Pass()
	a.edges, c.edges = a.edges[:0], c.edges[:0]

	b.ReportAllocs()
	for b.Loop() {
		site.Pass()
		clk.advance(1)
		a.edges = a.edges[:0]
		c.edges = c.edges[:0]
	}
}

// BenchmarkAlternatePass measures the yield handoff between peers.
func BenchmarkAlternatePass(b *testing.B) {
	clk := &fakeClock{}
	f := coop.Proc(coop.Forever(coop.YieldValue(1)))
	g := coop.Proc(coop.Forever(coop.YieldValue(2)))
	site := coop.Once(coop.Proc(
		coop.Alternate(f, g),
	), coop.WithClock(clk.now))
	site.Pass()

	b.ReportAllocs()
	for b.Loop() {
		site.Pass()
	}
}

// BenchmarkDriverConstruction measures site setup, which allocates the
// tree but no frames.
func BenchmarkDriverConstruction(b *testing.B) {
	task := coop.Proc(coop.Delay(1))
	b.ReportAllocs()
	for b.Loop() {
		coop.Once(task)
	}
}
