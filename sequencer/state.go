package sequencer

// Snapshot is a read-only copy of what the monitor displays. It holds no
// maps, so it can cross goroutines freely.
type Snapshot struct {
	Tick    int
	BPM     int
	Swing   int
	Mode    Mode
	Voice   int
	Shift   bool
	Select  bool
	Pads    [Voices]bool // lit pads
	Muted   [Voices]bool
	Steps   [Voices]bool // active steps of the selected voice
	Step    int          // playhead step of the selected voice
	Length  int
	Pattern Pattern
	Beat    bool
}

func NewSnapshot(c Context) Snapshot {
	seq := c.SelectedSequence()
	s := Snapshot{
		Tick:    c.Tick,
		BPM:     c.BPM,
		Swing:   c.Swing,
		Mode:    c.Mode,
		Voice:   c.Voice,
		Shift:   c.Shift,
		Select:  c.Select,
		Step:    seq.CurrentStep(c.Tick),
		Length:  seq.Length(),
		Pattern: c.SelectedPattern(),
	}

	for _, p := range ActivePads(c) {
		s.Pads[p-1] = true
	}
	for _, step := range seq.ActiveSteps() {
		s.Steps[step-1] = true
	}
	for voice := 1; voice <= Voices; voice++ {
		s.Muted[voice-1] = c.Grid.Sequence(voice).Muted()
	}
	for _, l := range Indicators(c.Mode, c.Tick) {
		if l.Kind == BeatLight {
			s.Beat = true
		}
	}
	return s
}
