// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package coop_test

import (
	"log/slog"
	"testing"

	"code.hybscloud.com/coop"
)

func TestOnceIdempotentCompletion(t *testing.T) {
	clk := &fakeClock{}
	runs := 0
	site := coop.Once(coop.Proc(
		coop.Do(func(*coop.Call) { runs++ }),
		coop.Delay(10),
	), coop.WithClock(clk.now))

	drive(clk, 10, 10, site)
	if runs != 1 {
		t.Fatalf("body ran %d times under Once, want 1", runs)
	}
	for range 5 {
		if st := site.Pass(); st != coop.Done {
			t.Fatalf("pass after completion got %v, want done", st)
		}
	}
	if runs != 1 {
		t.Fatalf("completed task re-ran: %d", runs)
	}
}

func TestRepeatRestarts(t *testing.T) {
	clk := &fakeClock{}
	runs := 0
	site := coop.Repeat(coop.Proc(
		coop.Do(func(*coop.Call) { runs++ }),
		coop.Delay(20),
	), coop.WithClock(clk.now))

	drive(clk, 10, 10, site) // each cycle: enter pass + 2 waiting passes
	if runs < 3 {
		t.Fatalf("body ran %d times under Repeat over 10 passes, want several", runs)
	}
}

func TestEveryGatesRestartOnPeriod(t *testing.T) {
	// The body takes ~10 ms; restarts are still spaced 100 ms apart.
	clk := &fakeClock{}
	var starts []uint32
	site := coop.Every(100, coop.Proc(
		coop.Do(func(c *coop.Call) { starts = append(starts, c.Now()) }),
		coop.Delay(10),
	), coop.WithClock(clk.now))

	drive(clk, 35, 10, site)

	if len(starts) < 3 {
		t.Fatalf("got %d starts over 350 ms with period 100, want at least 3", len(starts))
	}
	for i := 1; i < len(starts); i++ {
		if gap := starts[i] - starts[i-1]; gap < 100 {
			t.Fatalf("starts %d ms apart, want at least 100: %v", gap, starts)
		}
	}
}

func TestEverySlowBodyRestartsImmediately(t *testing.T) {
	// A body slower than the period restarts on the completing pass's
	// successor: completion is the gate once the period has elapsed.
	clk := &fakeClock{}
	var starts []uint32
	site := coop.Every(50, coop.Proc(
		coop.Do(func(c *coop.Call) { starts = append(starts, c.Now()) }),
		coop.Delay(200),
	), coop.WithClock(clk.now))

	drive(clk, 50, 10, site)

	if len(starts) < 2 {
		t.Fatalf("got %d starts, want at least 2", len(starts))
	}
	if gap := starts[1] - starts[0]; gap < 200 || gap > 220 {
		t.Fatalf("second start %d ms after first, want ~200-210", gap)
	}
}

func TestEveryNotDoneMidPeriod(t *testing.T) {
	// A completed Every body waiting out its period is not Done: the
	// site restarts once the period elapses, so loops keyed on Done
	// (Run among them) must keep passing it.
	clk := &fakeClock{}
	runs := 0
	site := coop.Every(100, coop.Proc(
		coop.Do(func(*coop.Call) { runs++ }),
		coop.Delay(10),
	), coop.WithClock(clk.now))

	drive(clk, 3, 10, site) // body completes at 10 ms, period pending
	if runs != 1 {
		t.Fatalf("body ran %d times, want 1 before the period elapses", runs)
	}
	if site.Done() {
		t.Fatal("Every site reported Done while waiting out its period")
	}
	drive(clk, 10, 10, site)
	if runs < 2 {
		t.Fatal("Every site never restarted after the period elapsed")
	}
}

func TestRepeatNeverReportsDone(t *testing.T) {
	clk := &fakeClock{}
	site := coop.Repeat(coop.Proc(
		coop.Delay(10),
	), coop.WithClock(clk.now))

	for range 6 {
		if site.Done() {
			t.Fatal("Repeat site reported Done")
		}
		site.Pass()
		clk.advance(10)
	}
}

func TestIndependentSites(t *testing.T) {
	// Driver sites share the clock and nothing else.
	clk := &fakeClock{}
	a := &pin{clk: clk}
	b := &pin{clk: clk}
	siteA := coop.Once(blinkTask(a, 100), coop.WithClock(clk.now))
	siteB := coop.Once(blinkTask(b, 100), coop.WithClock(clk.now))

	drive(clk, 25, 10, siteA, siteB)

	if len(a.edges) == 0 || len(a.edges) != len(b.edges) {
		t.Fatalf("sites diverged: %v vs %v", a.edges, b.edges)
	}
}

func TestSerialsMonotonic(t *testing.T) {
	d1 := coop.Once(coop.Proc())
	d2 := coop.Repeat(coop.Proc())
	d3 := coop.Every(10, coop.Proc())

	if d1.Serial() >= d2.Serial() {
		t.Fatalf("serials not increasing: %d >= %d", d1.Serial(), d2.Serial())
	}
	if d2.Serial() >= d3.Serial() {
		t.Fatalf("serials not increasing: %d >= %d", d2.Serial(), d3.Serial())
	}
}

func TestDepthOverflowPanics(t *testing.T) {
	// Depth 2 holds three slots; three nested subtask calls walk past
	// the leaves.
	leaf := coop.Proc(coop.Delay(1))
	nested := coop.Proc(coop.Then(coop.Proc(coop.Then(coop.Proc(coop.Then(leaf))))))
	site := coop.Once(nested, coop.WithDepth(2))

	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on first overflowing access")
		}
	}()
	site.Pass()
}

func TestWithDepthAllowsDeepNesting(t *testing.T) {
	clk := &fakeClock{}
	leaf := coop.Proc(coop.Delay(1))
	nested := coop.Proc(coop.Then(coop.Proc(coop.Then(coop.Proc(coop.Then(leaf))))))
	site := coop.Once(nested, coop.WithDepth(4), coop.WithClock(clk.now))

	drive(clk, 5, 10, site)
	if !site.Done() {
		t.Fatal("nested task did not complete at sufficient depth")
	}
}

func TestTraceWithSinkInstalled(t *testing.T) {
	// A driver with a WithTrace sink runs its passes as usual; the
	// records go to a discarding handler and are not inspected here.
	clk := &fakeClock{}
	site := coop.Once(coop.Proc(coop.Delay(10)).Named("traced"),
		coop.WithClock(clk.now),
		coop.WithTrace(slog.New(slog.DiscardHandler)),
	)
	drive(clk, 3, 10, site)
}
