package sequencer

// ButtonPressed and ButtonReleased are the CC values buttons send.
const (
	ButtonPressed  = 127
	ButtonReleased = 0
)

// ControlMap assigns controller CC numbers to navigation, modifiers and
// knobs. Knobs are relative encoders: KnobIncrement and KnobDecrement are
// the values sent for one detent clockwise and counter-clockwise.
type ControlMap struct {
	Left          int   `yaml:"left"`
	Right         int   `yaml:"right"`
	Up            int   `yaml:"up"`
	Select        int   `yaml:"select"`
	Shift         int   `yaml:"shift"`
	Knobs         []int `yaml:"knobs"`
	KnobIncrement int   `yaml:"knob_increment"`
	KnobDecrement int   `yaml:"knob_decrement"`
}

// DefaultControlMap is the PreSonus ATOM layout.
func DefaultControlMap() ControlMap {
	return ControlMap{
		Left:          90,
		Right:         102,
		Up:            87,
		Select:        103,
		Shift:         32,
		Knobs:         []int{14, 15, 16, 17},
		KnobIncrement: 1,
		KnobDecrement: 65,
	}
}

// Decode maps a control change to a Message. Anything not in the map,
// including known controls with unexpected values, is Unhandled.
func (c ControlMap) Decode(cc, value int) Message {
	switch {
	case cc == c.Left && value == ButtonPressed:
		return Message{Kind: Left}
	case cc == c.Right && value == ButtonPressed:
		return Message{Kind: Right}
	case cc == c.Up && value == ButtonPressed:
		return Message{Kind: Up}
	case cc == c.Select && value == ButtonPressed:
		return Message{Kind: SelectOn}
	case cc == c.Select && value == ButtonReleased:
		return Message{Kind: SelectOff}
	case cc == c.Shift && value == ButtonPressed:
		return Message{Kind: ShiftOn}
	case cc == c.Shift && value == ButtonReleased:
		return Message{Kind: ShiftOff}
	}

	for i, knob := range c.Knobs {
		if cc != knob {
			continue
		}
		switch value {
		case c.KnobIncrement:
			return Message{Kind: KnobIncrement, Number: i + 1}
		case c.KnobDecrement:
			return Message{Kind: KnobDecrement, Number: i + 1}
		}
	}
	return Message{Kind: Unhandled}
}

// DecodeNote maps a note message. Velocity zero is a release, as MIDI
// running status sends it.
func DecodeNote(note, velocity int, on bool) Message {
	if note < 0 || note > 127 {
		return Message{Kind: Unhandled}
	}
	if on && velocity != 0 {
		return Message{Kind: NoteOn, Number: note}
	}
	return Message{Kind: NoteOff, Number: note}
}
