package sequencer

import (
	"reflect"
	"testing"
)

func TestPatternBits(t *testing.T) {
	tests := []struct {
		name                   string
		onsets, pulses, rotate int
		want                   []int
	}{
		{"four on the floor", 4, 16, 0, []int{1, 0, 0, 0, 1, 0, 0, 0, 1, 0, 0, 0, 1, 0, 0, 0}},
		{"5 of 12 rotated", 5, 12, 1, []int{0, 1, 0, 0, 1, 0, 1, 0, 0, 1, 0, 1}},
		{"tresillo", 3, 8, 0, []int{1, 0, 0, 1, 0, 0, 1, 0}},
		{"tresillo rotated", 3, 8, 1, []int{0, 1, 0, 0, 1, 0, 0, 1}},
		{"cinquillo", 5, 8, 0, []int{1, 0, 1, 0, 1, 1, 0, 1}},
		{"no onsets", 0, 5, 0, []int{0, 0, 0, 0, 0}},
		{"all onsets", 6, 6, 2, []int{1, 1, 1, 1, 1, 1}},
		{"single pulse", 1, 1, 0, []int{1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewPattern(tt.onsets, tt.pulses, tt.rotate).Bits()
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Bits() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNewPatternClamps(t *testing.T) {
	tests := []struct {
		onsets, pulses, rotate int
		want                   Pattern
	}{
		{20, 30, 40, Pattern{16, 16, 15}},
		{-1, 0, -3, Pattern{0, 1, 0}},
		{9, 8, 8, Pattern{8, 8, 7}},
	}
	for _, tt := range tests {
		got := NewPattern(tt.onsets, tt.pulses, tt.rotate)
		if got != tt.want {
			t.Errorf("NewPattern(%d, %d, %d) = %+v, want %+v", tt.onsets, tt.pulses, tt.rotate, got, tt.want)
		}
	}
}

func TestPatternMutatorsHoldInvariants(t *testing.T) {
	p := NewPattern(8, 16, 10).WithPulses(4)
	if p != (Pattern{Onsets: 4, Pulses: 4, Rotate: 3}) {
		t.Errorf("shrinking pulses = %+v, want onsets and rotate clamped", p)
	}

	p = NewPattern(0, 1, 0).DecrementPulses().DecrementOnsets()
	if p != (Pattern{Onsets: 0, Pulses: 1, Rotate: 0}) {
		t.Errorf("decrement at floor = %+v", p)
	}

	p = NewPattern(16, 16, 0).IncrementPulses().IncrementOnsets()
	if p != (Pattern{Onsets: 16, Pulses: 16, Rotate: 0}) {
		t.Errorf("increment at ceiling = %+v", p)
	}
}

func TestPatternRotateWraps(t *testing.T) {
	p := NewPattern(1, 4, 3)
	if got := p.IncrementRotate().Rotate; got != 0 {
		t.Errorf("IncrementRotate from 3 of 4 = %d, want 0", got)
	}
	if got := NewPattern(1, 4, 0).DecrementRotate().Rotate; got != 3 {
		t.Errorf("DecrementRotate from 0 of 4 = %d, want 3", got)
	}
}

func TestHasEventAtTick(t *testing.T) {
	four := NewPattern(4, 16, 0)
	tresillo := NewPattern(3, 8, 0)
	tests := []struct {
		name string
		p    Pattern
		tick int
		want bool
	}{
		{"downbeat", four, 0, true},
		{"between sixteenths", four, 1, false},
		{"off sixteenth", four, 6, false},
		{"second beat", four, 24, true},
		{"next bar", four, 96, true},
		{"tresillo third sixteenth", tresillo, 18, true},
		{"tresillo sixth sixteenth", tresillo, 30, false},
		{"tresillo seventh sixteenth", tresillo, 36, true},
		{"tresillo loops after 8", tresillo, 48, true},
		{"negative tick", four, -24, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.p.HasEventAtTick(tt.tick); got != tt.want {
				t.Errorf("HasEventAtTick(%d) = %v, want %v", tt.tick, got, tt.want)
			}
		})
	}
}

func TestPatternPlayhead(t *testing.T) {
	p := NewPattern(3, 8, 0)
	tests := []struct{ tick, want int }{
		{0, 1}, {5, 1}, {6, 2}, {47, 8}, {48, 1},
	}
	for _, tt := range tests {
		if got := p.Playhead(tt.tick); got != tt.want {
			t.Errorf("Playhead(%d) = %d, want %d", tt.tick, got, tt.want)
		}
	}
}

func TestEuclidGenerator(t *testing.T) {
	g := NewEuclidGenerator()
	g2 := g.WithPattern(3, NewPattern(4, 16, 0)).WithPattern(1, NewPattern(1, 4, 0))

	if g.Has(3) {
		t.Error("WithPattern changed the receiver")
	}
	if got := g2.Notes(); !reflect.DeepEqual(got, []int{1, 3}) {
		t.Errorf("Notes() = %v, want [1 3]", got)
	}

	want := []Event{{Note: 1}, {Note: 3}}
	if got := g2.EventsForTick(0); !reflect.DeepEqual(got, want) {
		t.Errorf("EventsForTick(0) = %v, want %v", got, want)
	}
	if got := g2.EventsForTick(6); len(got) != 0 {
		t.Errorf("EventsForTick(6) = %v, want none", got)
	}

	g3 := g2.Update(5, Pattern.IncrementOnsets)
	if p := g3.Pattern(5); p != (Pattern{Onsets: 1, Pulses: 16}) {
		t.Errorf("Update on unset voice = %+v, want default plus one onset", p)
	}
	if g2.Has(5) {
		t.Error("Update changed the receiver")
	}
}

func TestEuclidGeneratorZeroValue(t *testing.T) {
	var g EuclidGenerator
	if got := g.EventsForTick(0); got != nil {
		t.Errorf("zero generator events = %v", got)
	}
	if p := g.Pattern(1); p != DefaultPattern() {
		t.Errorf("zero generator pattern = %+v", p)
	}
	if !g.WithPattern(1, NewPattern(1, 1, 0)).Has(1) {
		t.Error("WithPattern on zero generator lost the pattern")
	}
}

func TestPatternBitsOnsetCount(t *testing.T) {
	for pulses := 1; pulses <= MaxPulses; pulses++ {
		for onsets := 0; onsets <= pulses; onsets++ {
			for rotate := 0; rotate < pulses; rotate++ {
				bits := NewPattern(onsets, pulses, rotate).Bits()
				if len(bits) != pulses {
					t.Fatalf("E(%d,%d,r%d) has length %d", onsets, pulses, rotate, len(bits))
				}
				n := 0
				for _, b := range bits {
					n += b
				}
				if n != onsets {
					t.Errorf("E(%d,%d,r%d) has %d onsets", onsets, pulses, rotate, n)
				}
			}
		}
	}
}

func TestDecrementPulsesKeepsOnsetsAndRotateInRange(t *testing.T) {
	for pulses := 1; pulses <= MaxPulses; pulses++ {
		for onsets := 0; onsets <= pulses; onsets++ {
			for rotate := 0; rotate < pulses; rotate++ {
				p := Pattern{Onsets: onsets, Pulses: pulses, Rotate: rotate}.DecrementPulses()
				if p.Pulses < 1 || p.Onsets > p.Pulses || p.Rotate >= p.Pulses || p.Rotate < 0 {
					t.Errorf("DecrementPulses(E(%d,%d,r%d)) = %+v", onsets, pulses, rotate, p)
				}
			}
		}
	}
}
