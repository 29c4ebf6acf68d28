package sequencer

// OneShot is a note scheduled to fire once at Tick.
type OneShot struct {
	Note int
	Tick int
}

// OneShotSequencer plays notes pressed live. Entries fire when the tick
// matches exactly and are pruned once the tick has passed.
type OneShotSequencer struct {
	shots []OneShot
}

// AddOneShot schedules note at tick. Anything pending for a different tick
// is dropped; notes already scheduled for the same tick are kept, so two
// pads pressed within one tick both sound.
func (o OneShotSequencer) AddOneShot(note, tick int) OneShotSequencer {
	kept := make([]OneShot, 0, len(o.shots)+1)
	for _, s := range o.shots {
		if s.Tick == tick {
			kept = append(kept, s)
		}
	}
	return OneShotSequencer{shots: append(kept, OneShot{Note: note, Tick: tick})}
}

// EventsForTick returns every one-shot scheduled exactly at tick.
func (o OneShotSequencer) EventsForTick(tick int) []Event {
	var events []Event
	for _, s := range o.shots {
		if s.Tick == tick {
			events = append(events, Event{Note: s.Note})
		}
	}
	return events
}

// Prune drops entries scheduled before current.
func (o OneShotSequencer) Prune(current int) OneShotSequencer {
	stale := 0
	for _, s := range o.shots {
		if s.Tick < current {
			stale++
		}
	}
	if stale == 0 {
		return o
	}

	kept := make([]OneShot, 0, len(o.shots)-stale)
	for _, s := range o.shots {
		if s.Tick >= current {
			kept = append(kept, s)
		}
	}
	return OneShotSequencer{shots: kept}
}

// Pending returns a copy of the scheduled entries.
func (o OneShotSequencer) Pending() []OneShot {
	return append([]OneShot(nil), o.shots...)
}

func (o OneShotSequencer) Len() int { return len(o.shots) }
