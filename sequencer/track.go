package sequencer

import "sort"

// Sequence length bounds, in sixteenth steps.
const (
	MinLength     = 2
	MaxLength     = 16
	DefaultLength = 16
)

// Trigger fires Note at Offset ticks (0-5) into a step. Offsets above zero
// give flams and other sub-sixteenth placements.
type Trigger struct {
	Note   int
	Offset int
}

// Sequence is one voice's track: a cyclic grid of Length steps, each
// holding a set of triggers. Steps are numbered from 1.
//
// A Sequence is immutable. Every operation returns a new value and never
// touches the receiver's step map.
type Sequence struct {
	steps  map[int][]Trigger
	length int
	muted  bool
	root   int
}

// NewSequence returns an empty, unmuted 16 step sequence for root.
func NewSequence(root int) Sequence {
	return Sequence{
		steps:  map[int][]Trigger{},
		length: DefaultLength,
		root:   root,
	}
}

func (s Sequence) Length() int {
	if s.length == 0 {
		return DefaultLength
	}
	return s.length
}

// Muted reports whether the sequence is silenced.
func (s Sequence) Muted() bool { return s.muted }

// Root is the note toggled steps trigger.
func (s Sequence) Root() int { return s.root }

// Triggers returns a copy of the triggers at step.
func (s Sequence) Triggers(step int) []Trigger {
	return append([]Trigger(nil), s.steps[step]...)
}

func (s Sequence) HasTrigger(step int, t Trigger) bool {
	for _, existing := range s.steps[step] {
		if existing == t {
			return true
		}
	}
	return false
}

// ActiveSteps lists steps holding at least one trigger, ascending.
func (s Sequence) ActiveSteps() []int {
	steps := make([]int, 0, len(s.steps))
	for step, triggers := range s.steps {
		if len(triggers) > 0 {
			steps = append(steps, step)
		}
	}
	sort.Ints(steps)
	return steps
}

func (s Sequence) withSteps(steps map[int][]Trigger) Sequence {
	s.steps = steps
	return s
}

func (s Sequence) copySteps() map[int][]Trigger {
	steps := make(map[int][]Trigger, len(s.steps))
	for step, triggers := range s.steps {
		steps[step] = triggers
	}
	return steps
}

// ToggleStep adds a root note trigger at step, or removes it if present.
// Toggling twice restores the original sequence.
func (s Sequence) ToggleStep(step int) Sequence {
	return s.ToggleTrigger(step, Trigger{Note: s.root})
}

// ToggleTrigger adds t at step or removes it if already there. Steps outside
// 1..Length are ignored.
func (s Sequence) ToggleTrigger(step int, t Trigger) Sequence {
	if step < 1 || step > s.Length() {
		return s
	}
	t.Offset = clamp(t.Offset, 0, TicksPerSixteenth-1)
	if s.HasTrigger(step, t) {
		return s.removeTrigger(step, t)
	}
	return s.AddTrigger(step, t)
}

// AddTrigger places t at step. Adding a trigger that is already there is a
// no-op.
func (s Sequence) AddTrigger(step int, t Trigger) Sequence {
	t.Offset = clamp(t.Offset, 0, TicksPerSixteenth-1)
	if step < 1 || step > s.Length() || s.HasTrigger(step, t) {
		return s
	}

	triggers := append(s.Triggers(step), t)
	sort.Slice(triggers, func(i, j int) bool {
		if triggers[i].Offset != triggers[j].Offset {
			return triggers[i].Offset < triggers[j].Offset
		}
		return triggers[i].Note < triggers[j].Note
	})

	steps := s.copySteps()
	steps[step] = triggers
	return s.withSteps(steps)
}

func (s Sequence) removeTrigger(step int, t Trigger) Sequence {
	var kept []Trigger
	for _, existing := range s.steps[step] {
		if existing != t {
			kept = append(kept, existing)
		}
	}

	steps := s.copySteps()
	if len(kept) == 0 {
		delete(steps, step)
	} else {
		steps[step] = kept
	}
	return s.withSteps(steps)
}

// SetLength resizes the sequence to n steps (clamped to 2-16). Steps that
// survive keep their triggers; steps past the new length are discarded.
func (s Sequence) SetLength(n int) Sequence {
	n = clamp(n, MinLength, MaxLength)
	steps := make(map[int][]Trigger, len(s.steps))
	for step, triggers := range s.steps {
		if step <= n {
			steps[step] = triggers
		}
	}
	s.length = n
	return s.withSteps(steps)
}

func (s Sequence) IncrementLength() Sequence { return s.SetLength(s.Length() + 1) }
func (s Sequence) DecrementLength() Sequence { return s.SetLength(s.Length() - 1) }

// EuclideanFill replaces every trigger with a Euclidean distribution of
// onsets notes over the current length.
func (s Sequence) EuclideanFill(note, onsets int) Sequence {
	bits := NewPattern(onsets, s.Length(), 0).Bits()
	steps := make(map[int][]Trigger, len(bits))
	for i, b := range bits {
		if b == 1 {
			steps[i+1] = []Trigger{{Note: note}}
		}
	}
	return s.withSteps(steps)
}

// IncrementFill refills with one more onset than there are active steps.
func (s Sequence) IncrementFill() Sequence {
	return s.EuclideanFill(s.root, len(s.ActiveSteps())+1)
}

func (s Sequence) DecrementFill() Sequence {
	return s.EuclideanFill(s.root, len(s.ActiveSteps())-1)
}

// Rotate shifts every step by k, wrapping at the sequence length. k may be
// negative.
func (s Sequence) Rotate(k int) Sequence {
	length := s.Length()
	steps := make(map[int][]Trigger, len(s.steps))
	for step, triggers := range s.steps {
		steps[mod(step-1+k, length)+1] = triggers
	}
	return s.withSteps(steps)
}

func (s Sequence) IncrementRotate() Sequence { return s.Rotate(1) }
func (s Sequence) DecrementRotate() Sequence { return s.Rotate(-1) }

func (s Sequence) ToggleMute() Sequence {
	s.muted = !s.muted
	return s
}

// CurrentStep is the step under the playhead at tick.
func (s Sequence) CurrentStep(tick int) int {
	return mod(tick, TicksPerSixteenth*s.Length())/TicksPerSixteenth + 1
}

// NearestStep is the step closest to tick, rounding half a sixteenth up.
func (s Sequence) NearestStep(tick int) int {
	return s.CurrentStep(tick + TicksPerSixteenth/2)
}

// TriggersForTick returns the events whose step and offset land exactly on
// tick. A muted sequence returns nothing.
func (s Sequence) TriggersForTick(tick int) []Event {
	if s.muted {
		return nil
	}
	offset := mod(tick, TicksPerSixteenth*s.Length())
	step := offset/TicksPerSixteenth + 1
	sub := offset % TicksPerSixteenth

	var events []Event
	for _, t := range s.steps[step] {
		if t.Offset == sub {
			events = append(events, Event{Note: t.Note})
		}
	}
	return events
}

func (s Sequence) EventsForTick(tick int) []Event {
	return s.TriggersForTick(tick)
}

// Equal compares observable state: length, mute, root and triggers.
func (s Sequence) Equal(o Sequence) bool {
	if s.Length() != o.Length() || s.muted != o.muted || s.root != o.root {
		return false
	}
	a, b := s.ActiveSteps(), o.ActiveSteps()
	if len(a) != len(b) {
		return false
	}
	for i, step := range a {
		if step != b[i] {
			return false
		}
		ta, tb := s.steps[step], o.steps[step]
		if len(ta) != len(tb) {
			return false
		}
		for j := range ta {
			if ta[j] != tb[j] {
				return false
			}
		}
	}
	return true
}
