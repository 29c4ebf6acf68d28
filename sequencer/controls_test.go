package sequencer

import "testing"

func TestControlMapDecode(t *testing.T) {
	c := DefaultControlMap()
	tests := []struct {
		name      string
		cc, value int
		want      Message
	}{
		{"left", 90, 127, Message{Kind: Left}},
		{"left release", 90, 0, Message{}},
		{"right", 102, 127, Message{Kind: Right}},
		{"up", 87, 127, Message{Kind: Up}},
		{"select on", 103, 127, Message{Kind: SelectOn}},
		{"select off", 103, 0, Message{Kind: SelectOff}},
		{"shift on", 32, 127, Message{Kind: ShiftOn}},
		{"shift off", 32, 0, Message{Kind: ShiftOff}},
		{"knob 1 up", 14, 1, Message{Kind: KnobIncrement, Number: 1}},
		{"knob 4 down", 17, 65, Message{Kind: KnobDecrement, Number: 4}},
		{"knob odd value", 15, 3, Message{}},
		{"unknown cc", 7, 127, Message{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.Decode(tt.cc, tt.value); got != tt.want {
				t.Errorf("Decode(%d, %d) = %v, want %v", tt.cc, tt.value, got, tt.want)
			}
		})
	}
}

func TestDecodeNote(t *testing.T) {
	tests := []struct {
		note, velocity int
		on             bool
		want           Message
	}{
		{36, 100, true, Message{Kind: NoteOn, Number: 36}},
		{36, 0, true, Message{Kind: NoteOff, Number: 36}},
		{40, 64, false, Message{Kind: NoteOff, Number: 40}},
		{128, 100, true, Message{}},
		{-1, 100, true, Message{}},
	}
	for _, tt := range tests {
		if got := DecodeNote(tt.note, tt.velocity, tt.on); got != tt.want {
			t.Errorf("DecodeNote(%d, %d, %v) = %v, want %v", tt.note, tt.velocity, tt.on, got, tt.want)
		}
	}
}

func TestPadForNote(t *testing.T) {
	tests := []struct {
		note, pad int
		ok        bool
	}{
		{35, 0, false},
		{36, 1, true},
		{51, 16, true},
		{52, 0, false},
	}
	for _, tt := range tests {
		pad, ok := PadForNote(tt.note)
		if pad != tt.pad || ok != tt.ok {
			t.Errorf("PadForNote(%d) = %d, %v", tt.note, pad, ok)
		}
		if ok && NoteForPad(pad) != tt.note {
			t.Errorf("NoteForPad(%d) = %d", pad, NoteForPad(pad))
		}
	}
}

func TestMessageString(t *testing.T) {
	tests := []struct {
		m    Message
		want string
	}{
		{Message{Kind: NoteOn, Number: 36}, "note_on(36)"},
		{Message{Kind: KnobDecrement, Number: 2}, "knob_decrement(2)"},
		{Message{Kind: SelectOff}, "select_off"},
		{Message{}, "unhandled"},
	}
	for _, tt := range tests {
		if got := tt.m.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}
