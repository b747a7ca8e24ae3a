package sprig

import "time"

// debugStats holds per-frame timing. Only populated when View.debug is true.
type debugStats struct {
	inputTime   time.Duration
	resolveTime time.Duration
	hitTime     time.Duration
	animateTime time.Duration
	events      int
	clicks      int
	springs     int
}

// debugLog reports the frame stats at debug level.
func (v *View) debugLog(stats debugStats) {
	if !v.debug {
		return
	}
	total := stats.inputTime + stats.resolveTime + stats.hitTime + stats.animateTime
	Logger().Debug("frame",
		"n", v.frames,
		"input", stats.inputTime,
		"resolve", stats.resolveTime,
		"hit", stats.hitTime,
		"animate", stats.animateTime,
		"total", total)
	Logger().Debug("frame counts",
		"events", stats.events,
		"clicks", stats.clicks,
		"springs", stats.springs,
		"version", v.layouts.Version())
}

// debugMaxLayoutDepth is the nesting depth above which debugCheckLayouts
// warns.
const debugMaxLayoutDepth = 32

// debugMaxClickables is the clickable count above which debugCheckLayouts
// warns; hit testing is linear in it.
const debugMaxClickables = 1000

// debugCheckLayouts warns about registries that will be slow to resolve or
// hit test.
func debugCheckLayouts(m *LayoutMachine) {
	for i := range m.layouts {
		if d := m.layouts[i].Depth(); d > debugMaxLayoutDepth {
			Logger().Warn("layout nesting too deep", "id", m.layouts[i].ID, "depth", d, "threshold", debugMaxLayoutDepth)
		}
	}
	if n := len(m.clickables); n > debugMaxClickables {
		Logger().Warn("too many clickables", "count", n, "threshold", debugMaxClickables)
	}
}

// debugTimer measures a phase when debug mode is on.
func (v *View) debugTimer() func() time.Duration {
	if !v.debug {
		return func() time.Duration { return 0 }
	}
	t0 := time.Now()
	return func() time.Duration { return time.Since(t0) }
}
