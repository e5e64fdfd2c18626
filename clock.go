// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package coop

import "time"

// Clock returns monotonic milliseconds. The counter may wrap at 2³²;
// all deadline arithmetic in the runtime uses unsigned subtraction, so
// wraparound is harmless as long as no single wait exceeds 2³¹ ms.
type Clock func() uint32

// epoch anchors the default clock to process start.
var epoch = time.Now()

// Wall is the default Clock: milliseconds of monotonic time since
// process start.
func Wall() uint32 {
	return uint32(time.Since(epoch) / time.Millisecond)
}

// reached reports whether now has passed deadline, wrap-safe.
// Unsigned subtraction then a sign test: correct across wraparound
// for waits under half the counter range.
func reached(now, deadline uint32) bool {
	return int32(now-deadline) >= 0
}

// elapsed returns now-since, wrap-safe.
func elapsed(now, since uint32) uint32 {
	return now - since
}
