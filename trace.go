// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package coop

import (
	"context"
	"log/slog"
)

// trace emits one debug record per task step when a sink is installed.
func (d *Driver) trace(slot int, task string, pc uint16, st Status) {
	if d.log == nil {
		return
	}
	d.log.LogAttrs(context.Background(), slog.LevelDebug, "step",
		slog.Uint64("serial", uint64(d.serial)),
		slog.Int("slot", slot),
		slog.String("task", task),
		slog.Uint64("pc", uint64(pc)),
		slog.String("status", st.String()),
	)
}
