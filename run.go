// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package coop

import "code.hybscloud.com/iox"

// Run interleaves the driver sites on the calling goroutine until
// every one reports Done, backing off adaptively (iox.Backoff) between
// sweeps in which no site completed. Does not spawn goroutines or
// create channels.
//
// Run suits [Once] sites with bounded programs; a [Repeat] or [Every]
// site never reports Done — Run keeps passing it, restarts included,
// and never returns. Backoff adds
// up to a few milliseconds of pass latency; hosts with tighter bounds
// should call [Driver.Pass] from their own loop.
func Run(sites ...*Driver) {
	var bo iox.Backoff
	for {
		allDone := true
		progress := false
		for _, d := range sites {
			if d.Done() {
				continue
			}
			allDone = false
			if d.Pass() == Done {
				progress = true
			}
		}
		if allDone {
			return
		}
		if progress {
			bo.Reset()
		} else {
			bo.Wait()
		}
	}
}

// RunFor sweeps the driver sites a fixed number of passes, in order,
// with no waiting between sweeps. Simulation and test harness.
func RunFor(passes int, sites ...*Driver) {
	for range passes {
		for _, d := range sites {
			d.Pass()
		}
	}
}
