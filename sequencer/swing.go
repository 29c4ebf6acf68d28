package sequencer

// MaxSwingTicks caps swing at one sixteenth.
const MaxSwingTicks = TicksPerSixteenth

// SwingTicks converts a swing percentage (0-100) to a delay in ticks:
// floor(pct / (100/6)), capped at one sixteenth.
func SwingTicks(pct int) int {
	pct = clamp(pct, 0, 100)
	return min(pct*TicksPerSixteenth/100, MaxSwingTicks)
}

// evenSixteenth reports whether tick is the second sixteenth of an eighth
// note (ticks 6, 18, 30 ... in each bar), the ones swing delays.
func evenSixteenth(tick int) bool {
	return mod(mod(tick-TicksPerSixteenth, TicksPerBar), 2*TicksPerSixteenth) == 0
}

// Swing returns gen's events for tick with every even sixteenth delayed by
// swingTicks. It looks back to the even sixteenth swingTicks earlier
// instead of buffering, so the result depends only on (gen, tick).
//
// The delayed events are played alongside the target tick's own events.
func Swing(gen Generator, tick, swingTicks int) []Event {
	if swingTicks <= 0 {
		return gen.EventsForTick(tick)
	}
	if evenSixteenth(tick) {
		return nil
	}

	events := gen.EventsForTick(tick)
	if source := tick - swingTicks; evenSixteenth(source) {
		events = append(gen.EventsForTick(source), events...)
	}
	return events
}
