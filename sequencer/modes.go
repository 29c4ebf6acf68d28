package sequencer

import "fmt"

// Mode selects how controller input is interpreted.
type Mode int

const (
	// Perform plays voices live from the pads.
	Perform Mode = iota
	// StepEdit toggles steps of the selected voice.
	StepEdit
	// EuclideanEdit shapes the selected voice's Euclidean pattern.
	EuclideanEdit
	// SequenceSelect is held with the select button to pick a voice.
	SequenceSelect
	// MuteAssign toggles voice mutes from the pads.
	MuteAssign
)

var modeNames = []string{"perform", "step-edit", "euclidean-edit", "sequence-select", "mute-assign"}

func (m Mode) valid() bool {
	return m >= Perform && m <= MuteAssign
}

func (m Mode) String() string {
	if m.valid() {
		return modeNames[m]
	}
	return fmt.Sprintf("mode(%d)", int(m))
}

// ParseMode is the inverse of Mode.String.
func ParseMode(s string) (Mode, error) {
	for i, name := range modeNames {
		if name == s {
			return Mode(i), nil
		}
	}
	return Perform, fmt.Errorf("unknown mode %q", s)
}

// next is the mode the up button cycles to.
func (m Mode) next() Mode {
	switch m {
	case Perform:
		return StepEdit
	case StepEdit:
		return EuclideanEdit
	default:
		return Perform
	}
}

// ProcessMessage is the transition function. Every (mode, message) pair
// has a defined result; combinations without a meaning return c unchanged.
func (c Context) ProcessMessage(m Message) Context {
	switch m.Kind {
	case ShiftOn:
		c.Shift = true
		return c
	case ShiftOff:
		c.Shift = false
		return c
	case SelectOn:
		if c.Mode != SequenceSelect {
			c.previous = c.Mode
			c.Mode = SequenceSelect
		}
		c.Select = true
		return c
	case SelectOff:
		if c.Mode == SequenceSelect {
			c.Mode = c.previous
		}
		c.Select = false
		return c
	case KnobIncrement:
		return c.turnKnob(m.Number, 1)
	case KnobDecrement:
		return c.turnKnob(m.Number, -1)
	}

	switch c.Mode {
	case Perform:
		return c.perform(m)
	case StepEdit:
		return c.stepEdit(m)
	case EuclideanEdit:
		return c.euclideanEdit(m)
	case SequenceSelect:
		return c.sequenceSelect(m)
	case MuteAssign:
		return c.muteAssign(m)
	}
	return c
}

func (c Context) cycleMode() Context {
	if c.Shift {
		c.Mode = MuteAssign
	} else {
		c.Mode = c.Mode.next()
	}
	return c
}

func (c Context) perform(m Message) Context {
	switch m.Kind {
	case NoteOn:
		pad, ok := PadForNote(m.Number)
		if !ok {
			return c
		}
		if c.Shift {
			// live record onto the nearest step
			c.Grid = c.Grid.Update(pad, func(s Sequence) Sequence {
				return s.AddTrigger(s.NearestStep(c.Tick), Trigger{Note: s.Root()})
			})
			return c
		}
		c.OneShots = c.OneShots.AddOneShot(pad, c.Tick+1)
	case Up:
		return c.cycleMode()
	}
	return c
}

func (c Context) stepEdit(m Message) Context {
	switch m.Kind {
	case NoteOn:
		if pad, ok := PadForNote(m.Number); ok {
			return c.updateSelected(func(s Sequence) Sequence { return s.ToggleStep(pad) })
		}
	case Left:
		return c.WithVoice(c.Voice - 1)
	case Right:
		return c.WithVoice(c.Voice + 1)
	case Up:
		return c.cycleMode()
	}
	return c
}

func (c Context) euclideanEdit(m Message) Context {
	switch m.Kind {
	case NoteOn:
		if pad, ok := PadForNote(m.Number); ok {
			return c.updatePattern(func(p Pattern) Pattern { return p.WithPulses(pad) })
		}
	case Left:
		return c.WithVoice(c.Voice - 1)
	case Right:
		return c.WithVoice(c.Voice + 1)
	case Up:
		return c.cycleMode()
	}
	return c
}

func (c Context) sequenceSelect(m Message) Context {
	if m.Kind == NoteOn {
		if pad, ok := PadForNote(m.Number); ok {
			return c.WithVoice(pad)
		}
	}
	return c
}

func (c Context) muteAssign(m Message) Context {
	switch m.Kind {
	case NoteOn:
		if pad, ok := PadForNote(m.Number); ok {
			c.Grid = c.Grid.Update(pad, Sequence.ToggleMute)
		}
	case Up:
		c.Mode = Perform
	}
	return c
}

// turnKnob handles the four relative encoders. With shift held, or while
// performing, knobs 1 and 2 set tempo and swing. The edit modes give each
// knob a parameter of the selected voice, with swing on knob 4.
func (c Context) turnKnob(knob, delta int) Context {
	if c.Shift || c.Mode == Perform {
		switch knob {
		case 1:
			return c.WithBPM(c.BPM + delta)
		case 2:
			return c.WithSwing(c.Swing + delta)
		}
		return c
	}

	up := delta > 0
	switch c.Mode {
	case StepEdit:
		switch knob {
		case 1:
			return c.updateSelected(pick(up, Sequence.IncrementLength, Sequence.DecrementLength))
		case 2:
			return c.updateSelected(pick(up, Sequence.IncrementFill, Sequence.DecrementFill))
		case 3:
			return c.updateSelected(pick(up, Sequence.IncrementRotate, Sequence.DecrementRotate))
		case 4:
			return c.WithSwing(c.Swing + delta)
		}
	case EuclideanEdit:
		switch knob {
		case 1:
			return c.updatePattern(pick(up, Pattern.IncrementOnsets, Pattern.DecrementOnsets))
		case 2:
			return c.updatePattern(pick(up, Pattern.IncrementPulses, Pattern.DecrementPulses))
		case 3:
			return c.updatePattern(pick(up, Pattern.IncrementRotate, Pattern.DecrementRotate))
		case 4:
			return c.WithSwing(c.Swing + delta)
		}
	}
	return c
}

func pick[T any](up bool, inc, dec func(T) T) func(T) T {
	if up {
		return inc
	}
	return dec
}
