// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package coop is a cooperative concurrency runtime for
// microcontroller-style hosts.
//
// Ordinary procedural control flow — blink an LED, debounce a button,
// play a tone sequence — is written as a [Task] built from step
// combinators and multiplexed with other tasks on a single thread.
// There is no preemption, no time slicing and no operating system: the
// host idle loop calls a driver site once per pass, every live task
// advances to its next suspension point, and control returns to the
// host within bounded work.
//
// # Architecture
//
//   - Frames: per-task activation records (resume token, wait deadline,
//     value mailbox, condition latch, typed locals) allocated lazily,
//     once per tree slot, and reused for the driver's lifetime.
//   - Tree: frames live in a complete binary tree addressed as a heap,
//     so a combinator locates its children in O(1) and its parent by
//     halving. Depth is bounded per driver site ([WithDepth], default
//     [DefaultDepth]).
//   - Steps: task bodies are defunctionalized — [Do], [Delay], [Await],
//     [Then], [Both], [Until], [Race], [Timeout], [Alternate],
//     [YieldToPeer] and [Finish] are tagged steps evaluated by a loop,
//     with resume tokens assigned at construction.
//   - Drivers: [Once], [Repeat] and [Every] own one tree each and are
//     invoked from the host idle loop via [Driver.Pass]. Several sites
//     in the same loop share the clock and nothing else.
//
// # Integration
//
//   - Clock: drivers read a monotonic millisecond [Clock]; deadline
//     comparison uses unsigned subtraction, so wraparound at 2³² ms is
//     harmless.
//   - Host goroutines: an [Inbox] carries scalar events (button edges,
//     sensor readings) into task code over a bounded lock-free SPSC
//     queue from [code.hybscloud.com/lfq]; pushes return
//     [code.hybscloud.com/iox.ErrWouldBlock] on backpressure.
//   - Blocking: [Run] interleaves several driver sites on the calling
//     goroutine until all complete, backing off adaptively between
//     sweeps that make no progress.
//   - Tracing: a driver with [WithTrace] emits one debug record per
//     task step (serial, slot, task name, resume token); nil logger
//     costs one branch per step.
//
// # Example
//
//	blink := coop.Proc(
//		coop.Forever(
//			coop.Do(func(*coop.Call) { led.High() }),
//			coop.Delay(500),
//			coop.Do(func(*coop.Call) { led.Low() }),
//			coop.Delay(500),
//		),
//	).Named("blink")
//
//	site := coop.Once(blink)
//	for {
//		site.Pass() // host idle loop
//	}
package coop
