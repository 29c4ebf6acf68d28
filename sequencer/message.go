package sequencer

import "fmt"

// MessageKind identifies a decoded controller input.
type MessageKind int

const (
	Unhandled MessageKind = iota
	NoteOn
	NoteOff
	Left
	Right
	Up
	SelectOn
	SelectOff
	ShiftOn
	ShiftOff
	KnobIncrement
	KnobDecrement
)

var messageKindNames = map[MessageKind]string{
	Unhandled:     "unhandled",
	NoteOn:        "note_on",
	NoteOff:       "note_off",
	Left:          "left",
	Right:         "right",
	Up:            "up",
	SelectOn:      "select_on",
	SelectOff:     "select_off",
	ShiftOn:       "shift_on",
	ShiftOff:      "shift_off",
	KnobIncrement: "knob_increment",
	KnobDecrement: "knob_decrement",
}

func (k MessageKind) String() string {
	if name, ok := messageKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Message is one controller input. Number is the note for NoteOn/NoteOff
// and the knob (1-4) for KnobIncrement/KnobDecrement; other kinds ignore it.
// The zero Message is Unhandled.
type Message struct {
	Kind   MessageKind
	Number int
}

func (m Message) String() string {
	switch m.Kind {
	case NoteOn, NoteOff, KnobIncrement, KnobDecrement:
		return fmt.Sprintf("%s(%d)", m.Kind, m.Number)
	}
	return m.Kind.String()
}

// Pads 1-16 sit on notes 36-51.
const (
	FirstPadNote = 36
	LastPadNote  = FirstPadNote + Voices - 1
)

// PadForNote maps a controller note to its pad number.
func PadForNote(note int) (int, bool) {
	if note < FirstPadNote || note > LastPadNote {
		return 0, false
	}
	return note - FirstPadNote + 1, true
}

// NoteForPad is the inverse of PadForNote.
func NoteForPad(pad int) int {
	return pad + FirstPadNote - 1
}
