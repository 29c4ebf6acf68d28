package sequencer

// Voices is the number of performable voices, one per controller pad.
const Voices = 16

// StepGrid is the step sequencer: one Sequence per voice, each looping at
// its own length so tracks drift against each other as polymeters.
type StepGrid struct {
	tracks [Voices]Sequence
}

// NewStepGrid returns a grid of empty 16 step sequences. Voice n plays
// note n.
func NewStepGrid() StepGrid {
	var g StepGrid
	for i := range g.tracks {
		g.tracks[i] = NewSequence(i + 1)
	}
	return g
}

func validVoice(voice int) bool {
	return voice >= 1 && voice <= Voices
}

// Sequence returns the voice's track. Out of range voices get an empty
// sequence.
func (g StepGrid) Sequence(voice int) Sequence {
	if !validVoice(voice) {
		return NewSequence(voice)
	}
	s := g.tracks[voice-1]
	if s.root == 0 {
		return NewSequence(voice)
	}
	return s
}

// Update replaces the voice's track with fn applied to it.
func (g StepGrid) Update(voice int, fn func(Sequence) Sequence) StepGrid {
	if !validVoice(voice) {
		return g
	}
	g.tracks[voice-1] = fn(g.Sequence(voice))
	return g
}

// EventsForTick collects every voice's triggers in voice order.
func (g StepGrid) EventsForTick(tick int) []Event {
	var events []Event
	for voice := 1; voice <= Voices; voice++ {
		events = append(events, g.Sequence(voice).TriggersForTick(tick)...)
	}
	return events
}

func (g StepGrid) Equal(o StepGrid) bool {
	for voice := 1; voice <= Voices; voice++ {
		if !g.Sequence(voice).Equal(o.Sequence(voice)) {
			return false
		}
	}
	return true
}
