package sequencer

import "time"

// Tick resolution. 24 ticks per quarter matches MIDI clock.
const (
	TicksPerBar       = 96
	TicksPerQuarter   = TicksPerBar / 4
	TicksPerSixteenth = TicksPerBar / 16
)

// Measure is a musical position or duration as a fraction of one 4/4 bar.
// Two measures are equal when their reduced values are equal, so 1/4 and
// 2/8 compare equal even though the representation differs.
type Measure struct {
	Num, Den int
}

// NewMeasure builds a measure with a positive denominator. A zero
// denominator is treated as 1.
func NewMeasure(num, den int) Measure {
	if den == 0 {
		den = 1
	}
	if den < 0 {
		num, den = -num, -den
	}
	return Measure{Num: num, Den: den}
}

// MeasureFromTicks converts a tick count into a fraction of a bar.
func MeasureFromTicks(ticks int) Measure {
	return NewMeasure(ticks, TicksPerBar)
}

func (m Measure) norm() (int, int) {
	n := NewMeasure(m.Num, m.Den)
	return n.Num, n.Den
}

// Reduce returns the measure in lowest terms.
func (m Measure) Reduce() Measure {
	num, den := m.norm()
	g := gcd(abs(num), den)
	if g == 0 {
		return Measure{Num: 0, Den: 1}
	}
	return Measure{Num: num / g, Den: den / g}
}

// Add is exact rational addition.
func (m Measure) Add(o Measure) Measure {
	an, ad := m.norm()
	bn, bd := o.norm()
	return Measure{Num: an*bd + bn*ad, Den: ad * bd}.Reduce()
}

// Equal compares the reduced fractions.
func (m Measure) Equal(o Measure) bool {
	an, ad := m.norm()
	bn, bd := o.norm()
	return an*bd == bn*ad
}

// Less reports whether m comes before o.
func (m Measure) Less(o Measure) bool {
	an, ad := m.norm()
	bn, bd := o.norm()
	return an*bd < bn*ad
}

// Float is for ordering and display only. Timing uses Ticks or ToDuration.
func (m Measure) Float() float64 {
	num, den := m.norm()
	return float64(num) / float64(den)
}

// ReduceToOneBar folds the position into [0,1) of a bar, keeping the
// denominator: 5/4 becomes 1/4, 17/16 becomes 1/16.
func (m Measure) ReduceToOneBar() Measure {
	num, den := m.norm()
	return Measure{Num: mod(num, den), Den: den}
}

// Ticks returns the position in ticks, truncated toward zero.
func (m Measure) Ticks() int {
	num, den := m.norm()
	return num * TicksPerBar / den
}

// ToDuration converts the measure to wall-clock time at bpm quarter notes
// per minute. Non-positive tempos yield zero.
func (m Measure) ToDuration(bpm int) time.Duration {
	if bpm <= 0 {
		return 0
	}
	num, den := m.norm()
	return time.Duration(int64(num) * 4 * int64(time.Minute) / (int64(den) * int64(bpm)))
}

// TickDuration is the length of a single tick at bpm.
func TickDuration(bpm int) time.Duration {
	return MeasureFromTicks(1).ToDuration(bpm)
}

func gcd(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// mod is the non-negative remainder of n / m.
func mod(n, m int) int {
	if m == 0 {
		return 0
	}
	r := n % m
	if r < 0 {
		r += abs(m)
	}
	return r
}

func clamp(n, lo, hi int) int {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}
