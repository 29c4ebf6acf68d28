package sequencer

// Tempo and swing bounds.
const (
	MinBPM     = 30
	MaxBPM     = 240
	DefaultBPM = 120
	MaxSwing   = 100
)

// Context is the complete sequencer state at one tick. It is a value:
// every transition returns a new Context and leaves the receiver alone,
// so the scheduler can diff the old and new states after each step.
type Context struct {
	Grid     StepGrid
	Euclid   EuclidGenerator
	OneShots OneShotSequencer

	Mode  Mode
	Voice int // selected voice, 1-16
	Tick  int
	BPM   int
	Swing int // percent, 0-100

	Shift  bool
	Select bool

	// previous is the mode SequenceSelect returns to.
	previous Mode
}

func NewContext() Context {
	return Context{
		Grid:   NewStepGrid(),
		Euclid: NewEuclidGenerator(),
		Mode:   Perform,
		Voice:  1,
		BPM:    DefaultBPM,
	}
}

// ProcessMessages applies msgs strictly in order, each seeing the result
// of the one before.
func (c Context) ProcessMessages(msgs []Message) Context {
	for _, m := range msgs {
		c = c.ProcessMessage(m)
	}
	return c
}

// Events returns everything due at the current tick: the swung step grid,
// then Euclidean patterns and one-shots at the raw tick. Swing applies to
// the grid only.
func (c Context) Events() []Event {
	events := Swing(c.Grid, c.Tick, SwingTicks(c.Swing))
	for _, e := range c.Euclid.EventsForTick(c.Tick) {
		if !c.Grid.Sequence(e.Note).Muted() {
			events = append(events, e)
		}
	}
	return append(events, c.OneShots.EventsForTick(c.Tick)...)
}

// AdvanceTick moves to the next tick. The counter is never reset; each
// generator wraps on its own cycle.
func (c Context) AdvanceTick() Context {
	c.Tick++
	c.OneShots = c.OneShots.Prune(c.Tick)
	return c
}

func (c Context) WithBPM(bpm int) Context {
	c.BPM = clamp(bpm, MinBPM, MaxBPM)
	return c
}

func (c Context) WithSwing(pct int) Context {
	c.Swing = clamp(pct, 0, MaxSwing)
	return c
}

func (c Context) WithVoice(voice int) Context {
	c.Voice = clamp(voice, 1, Voices)
	return c
}

func (c Context) WithMode(m Mode) Context {
	if !m.valid() {
		return c
	}
	c.Mode = m
	return c
}

// SelectedSequence is the selected voice's track.
func (c Context) SelectedSequence() Sequence {
	return c.Grid.Sequence(c.Voice)
}

// SelectedPattern is the selected voice's Euclidean pattern.
func (c Context) SelectedPattern() Pattern {
	return c.Euclid.Pattern(c.Voice)
}

func (c Context) updateSelected(fn func(Sequence) Sequence) Context {
	c.Grid = c.Grid.Update(c.Voice, fn)
	return c
}

func (c Context) updatePattern(fn func(Pattern) Pattern) Context {
	c.Euclid = c.Euclid.Update(c.Voice, fn)
	return c
}

// Equal compares every observable field.
func (c Context) Equal(o Context) bool {
	if c.Mode != o.Mode || c.previous != o.previous || c.Voice != o.Voice ||
		c.Tick != o.Tick || c.BPM != o.BPM || c.Swing != o.Swing ||
		c.Shift != o.Shift || c.Select != o.Select {
		return false
	}
	if !c.Grid.Equal(o.Grid) {
		return false
	}

	notes := c.Euclid.Notes()
	if len(notes) != len(o.Euclid.Notes()) {
		return false
	}
	for _, n := range notes {
		if !o.Euclid.Has(n) || c.Euclid.Pattern(n) != o.Euclid.Pattern(n) {
			return false
		}
	}

	a, b := c.OneShots.Pending(), o.OneShots.Pending()
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
