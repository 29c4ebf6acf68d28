package sequencer

import "sort"

// MaxPulses is the longest Euclidean pattern, one bar of sixteenths.
const MaxPulses = 16

// Pattern distributes Onsets as evenly as possible over Pulses sixteenths,
// rotated right by Rotate.
//
// Invariants: 0 <= Onsets <= Pulses, 1 <= Pulses <= MaxPulses,
// 0 <= Rotate < Pulses. Every mutator returns a pattern that holds them.
type Pattern struct {
	Onsets int
	Pulses int
	Rotate int
}

// DefaultPattern is an empty bar: no onsets over sixteen pulses.
func DefaultPattern() Pattern {
	return Pattern{Onsets: 0, Pulses: MaxPulses, Rotate: 0}
}

// NewPattern clamps its arguments into a valid pattern.
func NewPattern(onsets, pulses, rotate int) Pattern {
	return Pattern{Onsets: onsets, Pulses: pulses, Rotate: rotate}.clamp()
}

func (p Pattern) clamp() Pattern {
	p.Pulses = clamp(p.Pulses, 1, MaxPulses)
	p.Onsets = clamp(p.Onsets, 0, p.Pulses)
	p.Rotate = clamp(p.Rotate, 0, p.Pulses-1)
	return p
}

// Bits returns the pattern as a slice of 0/1 of length Pulses.
//
// Slope method: index i is an onset when floor(i*onsets/pulses) differs
// from the value at i-1. The value before index 0 is taken as 1, so the
// first index is always an onset when there are any.
func (p Pattern) Bits() []int {
	p = p.clamp()
	bits := make([]int, p.Pulses)
	if p.Onsets == 0 {
		return bits
	}

	previous := 1
	for i := range bits {
		current := i * p.Onsets / p.Pulses
		if current != previous {
			bits[i] = 1
		}
		previous = current
	}
	return rotateRight(bits, p.Rotate)
}

func rotateRight(bits []int, n int) []int {
	out := make([]int, len(bits))
	for i, b := range bits {
		out[mod(i+n, len(bits))] = b
	}
	return out
}

// HasEventAtTick reports whether tick falls exactly on a sixteenth whose
// bit is set. The pattern loops every Pulses sixteenths.
func (p Pattern) HasEventAtTick(tick int) bool {
	p = p.clamp()
	offset := mod(tick, TicksPerSixteenth*p.Pulses)
	if offset%TicksPerSixteenth != 0 {
		return false
	}
	return p.Bits()[offset/TicksPerSixteenth] == 1
}

// Playhead is the 1-based sixteenth of the pattern under tick.
func (p Pattern) Playhead(tick int) int {
	p = p.clamp()
	return mod(tick, TicksPerSixteenth*p.Pulses)/TicksPerSixteenth + 1
}

// IncrementOnsets adds an onset, up to Pulses.
func (p Pattern) IncrementOnsets() Pattern {
	p.Onsets++
	return p.clamp()
}

// DecrementOnsets removes an onset, down to zero.
func (p Pattern) DecrementOnsets() Pattern {
	p.Onsets--
	return p.clamp()
}

// IncrementPulses lengthens the pattern by one sixteenth, up to MaxPulses.
func (p Pattern) IncrementPulses() Pattern {
	return p.WithPulses(p.Pulses + 1)
}

// DecrementPulses shortens the pattern by one sixteenth, pulling Onsets
// and Rotate down with it.
func (p Pattern) DecrementPulses() Pattern {
	return p.WithPulses(p.Pulses - 1)
}

// WithPulses resizes the pattern. Onsets and rotation are clamped down
// when they no longer fit.
func (p Pattern) WithPulses(n int) Pattern {
	p.Pulses = n
	return p.clamp()
}

// IncrementRotate and DecrementRotate wrap around the pattern length.
func (p Pattern) IncrementRotate() Pattern {
	p = p.clamp()
	p.Rotate = mod(p.Rotate+1, p.Pulses)
	return p
}

func (p Pattern) DecrementRotate() Pattern {
	p = p.clamp()
	p.Rotate = mod(p.Rotate-1, p.Pulses)
	return p
}

// EuclidGenerator holds one Pattern per voice. The zero value is empty and
// ready to use; every change returns a new generator.
type EuclidGenerator struct {
	patterns map[int]Pattern
}

// NewEuclidGenerator returns a generator with no patterns.
func NewEuclidGenerator() EuclidGenerator {
	return EuclidGenerator{patterns: map[int]Pattern{}}
}

// Pattern returns the voice's pattern or DefaultPattern if it has none.
func (g EuclidGenerator) Pattern(note int) Pattern {
	if p, ok := g.patterns[note]; ok {
		return p
	}
	return DefaultPattern()
}

func (g EuclidGenerator) Has(note int) bool {
	_, ok := g.patterns[note]
	return ok
}

func (g EuclidGenerator) WithPattern(note int, p Pattern) EuclidGenerator {
	patterns := make(map[int]Pattern, len(g.patterns)+1)
	for n, existing := range g.patterns {
		patterns[n] = existing
	}
	patterns[note] = p.clamp()
	return EuclidGenerator{patterns: patterns}
}

// Update applies fn to the voice's current (or default) pattern.
func (g EuclidGenerator) Update(note int, fn func(Pattern) Pattern) EuclidGenerator {
	return g.WithPattern(note, fn(g.Pattern(note)))
}

// Notes lists voices with a pattern, ascending.
func (g EuclidGenerator) Notes() []int {
	notes := make([]int, 0, len(g.patterns))
	for n := range g.patterns {
		notes = append(notes, n)
	}
	sort.Ints(notes)
	return notes
}

func (g EuclidGenerator) EventsForTick(tick int) []Event {
	var events []Event
	for _, note := range g.Notes() {
		if g.patterns[note].HasEventAtTick(tick) {
			events = append(events, Event{Note: note})
		}
	}
	return events
}
