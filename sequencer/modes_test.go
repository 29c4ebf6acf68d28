package sequencer

import (
	"reflect"
	"testing"
)

func press(pad int) Message  { return Message{Kind: NoteOn, Number: NoteForPad(pad)} }
func knobUp(n int) Message   { return Message{Kind: KnobIncrement, Number: n} }
func knobDown(n int) Message { return Message{Kind: KnobDecrement, Number: n} }

var (
	up        = Message{Kind: Up}
	left      = Message{Kind: Left}
	right     = Message{Kind: Right}
	shiftOn   = Message{Kind: ShiftOn}
	shiftOff  = Message{Kind: ShiftOff}
	selectOn  = Message{Kind: SelectOn}
	selectOff = Message{Kind: SelectOff}
)

func TestModeCycle(t *testing.T) {
	tests := []struct {
		name string
		msgs []Message
		want Mode
	}{
		{"perform to step edit", []Message{up}, StepEdit},
		{"to euclidean edit", []Message{up, up}, EuclideanEdit},
		{"back to perform", []Message{up, up, up}, Perform},
		{"shift up is mute assign", []Message{shiftOn, up}, MuteAssign},
		{"up leaves mute assign", []Message{shiftOn, up, shiftOff, up}, Perform},
		{"select holds sequence select", []Message{up, selectOn}, SequenceSelect},
		{"select release restores", []Message{up, selectOn, selectOff}, StepEdit},
		{"up ignored in sequence select", []Message{selectOn, up}, SequenceSelect},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NewContext().ProcessMessages(tt.msgs).Mode; got != tt.want {
				t.Errorf("mode = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestProcessMessagesOrderMatters(t *testing.T) {
	c := NewContext().ProcessMessage(up)

	twice := c.ProcessMessages([]Message{press(3), press(3)})
	if !twice.Equal(c) {
		t.Errorf("toggle-toggle left steps %v", twice.SelectedSequence().ActiveSteps())
	}

	// voice change before the toggle edits voice 2, after it edits voice 1
	a := c.ProcessMessages([]Message{right, press(1)})
	b := c.ProcessMessages([]Message{press(1), right})
	if len(a.Grid.Sequence(2).ActiveSteps()) != 1 || len(a.Grid.Sequence(1).ActiveSteps()) != 0 {
		t.Error("right then pad should edit voice 2")
	}
	if len(b.Grid.Sequence(1).ActiveSteps()) != 1 || len(b.Grid.Sequence(2).ActiveSteps()) != 0 {
		t.Error("pad then right should edit voice 1")
	}
}

func TestProcessMessageDoesNotMutate(t *testing.T) {
	c := NewContext().ProcessMessages([]Message{up, press(1)})
	before := c

	_ = c.ProcessMessages([]Message{press(2), knobUp(1), knobUp(3), shiftOn, up, press(4)})
	if !c.Equal(before) {
		t.Error("processing changed the receiver")
	}
	if got := c.SelectedSequence().ActiveSteps(); !reflect.DeepEqual(got, []int{1}) {
		t.Errorf("receiver steps = %v", got)
	}
}

func TestUnhandledIsNoOp(t *testing.T) {
	msgs := []Message{
		{},
		{Kind: NoteOff, Number: 40},
		{Kind: NoteOn, Number: 10},
		{Kind: MessageKind(99)},
		knobUp(9),
	}
	for _, mode := range []Mode{Perform, StepEdit, EuclideanEdit, SequenceSelect, MuteAssign} {
		c := NewContext().WithMode(mode)
		for _, m := range msgs {
			if got := c.ProcessMessage(m); !got.Equal(c) {
				t.Errorf("%v: %v changed the context", mode, m)
			}
		}
	}
}

func TestStepEdit(t *testing.T) {
	c := NewContext().ProcessMessages([]Message{up, press(1), press(5), right, press(2)})

	if got := c.Grid.Sequence(1).ActiveSteps(); !reflect.DeepEqual(got, []int{1, 5}) {
		t.Errorf("voice 1 steps = %v, want [1 5]", got)
	}
	if got := c.Grid.Sequence(2).ActiveSteps(); !reflect.DeepEqual(got, []int{2}) {
		t.Errorf("voice 2 steps = %v, want [2]", got)
	}

	c = c.ProcessMessages([]Message{left, left, left})
	if c.Voice != 1 {
		t.Errorf("voice = %d, want clamped to 1", c.Voice)
	}

	c = c.ProcessMessages([]Message{knobDown(1), knobDown(1), knobUp(3)})
	seq := c.SelectedSequence()
	if seq.Length() != 14 {
		t.Errorf("length = %d, want 14", seq.Length())
	}
	if got := seq.ActiveSteps(); !reflect.DeepEqual(got, []int{2, 6}) {
		t.Errorf("rotated steps = %v, want [2 6]", got)
	}

	c = c.ProcessMessage(knobUp(2))
	if got := len(c.SelectedSequence().ActiveSteps()); got != 3 {
		t.Errorf("fill onsets = %d, want 3", got)
	}

	c = c.ProcessMessages([]Message{knobUp(4), knobUp(4)})
	if c.Swing != 2 {
		t.Errorf("swing = %d, want 2", c.Swing)
	}
}

func TestEuclideanEdit(t *testing.T) {
	c := NewContext().ProcessMessages([]Message{up, up, press(8), knobUp(1), knobUp(1), knobUp(1), knobUp(3)})

	want := Pattern{Onsets: 3, Pulses: 8, Rotate: 1}
	if got := c.SelectedPattern(); got != want {
		t.Errorf("pattern = %+v, want %+v", got, want)
	}

	c = c.ProcessMessages([]Message{knobDown(2), knobDown(2), knobDown(2), knobDown(2), knobDown(2), knobDown(2)})
	if got := c.SelectedPattern(); got != (Pattern{Onsets: 2, Pulses: 2, Rotate: 1}) {
		t.Errorf("after shrinking = %+v", got)
	}

	if c.Euclid.Has(2) {
		t.Error("editing voice 1 created a pattern for voice 2")
	}
}

func TestTempoAndSwingBounds(t *testing.T) {
	c := NewContext().WithBPM(MaxBPM).ProcessMessage(knobUp(1))
	if c.BPM != MaxBPM {
		t.Errorf("bpm = %d, want %d", c.BPM, MaxBPM)
	}
	c = NewContext().WithBPM(MinBPM).ProcessMessage(knobDown(1))
	if c.BPM != MinBPM {
		t.Errorf("bpm = %d, want %d", c.BPM, MinBPM)
	}
	c = NewContext().ProcessMessage(knobDown(2))
	if c.Swing != 0 {
		t.Errorf("swing = %d, want 0", c.Swing)
	}
	c = NewContext().WithSwing(MaxSwing).ProcessMessage(knobUp(2))
	if c.Swing != MaxSwing {
		t.Errorf("swing = %d, want %d", c.Swing, MaxSwing)
	}

	// shift turns the edit knobs back into tempo
	c = NewContext().ProcessMessages([]Message{up, shiftOn, knobUp(1)})
	if c.BPM != DefaultBPM+1 || c.SelectedSequence().Length() != DefaultLength {
		t.Errorf("shift knob 1: bpm=%d length=%d", c.BPM, c.SelectedSequence().Length())
	}
}

func TestSequenceSelectPicksVoice(t *testing.T) {
	c := NewContext().ProcessMessages([]Message{up, selectOn, press(9), selectOff})
	if c.Voice != 9 || c.Mode != StepEdit {
		t.Errorf("voice=%d mode=%v, want 9 step-edit", c.Voice, c.Mode)
	}
	if len(c.Grid.Sequence(9).ActiveSteps()) != 0 {
		t.Error("selecting a voice toggled a step")
	}
}

func TestMuteAssign(t *testing.T) {
	c := NewContext().
		ProcessMessages([]Message{up, press(1)}).
		WithMode(Perform).
		ProcessMessages([]Message{shiftOn, up, shiftOff, press(1)})

	if !c.Grid.Sequence(1).Muted() {
		t.Fatal("voice 1 not muted")
	}
	c.Euclid = c.Euclid.WithPattern(1, NewPattern(1, 1, 0))
	if got := c.Events(); len(got) != 0 {
		t.Errorf("muted voice played %v", got)
	}

	c = c.ProcessMessage(press(1))
	if got := c.Events(); !reflect.DeepEqual(got, []Event{{Note: 1}, {Note: 1}}) {
		t.Errorf("unmuted events = %v, want grid and euclid", got)
	}
}

func TestPerformLiveRecord(t *testing.T) {
	c := NewContext()
	c.Tick = 13
	c = c.ProcessMessages([]Message{shiftOn, press(4)})

	if got := c.Grid.Sequence(4).ActiveSteps(); !reflect.DeepEqual(got, []int{3}) {
		t.Errorf("recorded steps = %v, want [3]", got)
	}
	if c.OneShots.Len() != 0 {
		t.Error("recording also scheduled a one-shot")
	}

	again := c.ProcessMessage(press(4))
	if !again.Grid.Equal(c.Grid) {
		t.Error("recording the same step twice removed it")
	}
}

func TestPerformSchedulesOneShot(t *testing.T) {
	c := NewContext()
	c.Tick = 40
	c = c.ProcessMessages([]Message{press(2), press(6), {Kind: NoteOff, Number: NoteForPad(2)}})

	want := []OneShot{{Note: 2, Tick: 41}, {Note: 6, Tick: 41}}
	if got := c.OneShots.Pending(); !reflect.DeepEqual(got, want) {
		t.Errorf("pending = %v, want %v", got, want)
	}
}

func TestAdvanceTick(t *testing.T) {
	c := NewContext()
	for i := 0; i < 200; i++ {
		c = c.AdvanceTick()
	}
	if c.Tick != 200 {
		t.Errorf("tick = %d, want 200", c.Tick)
	}
}

func TestEventsOrder(t *testing.T) {
	c := NewContext()
	c.Grid = c.Grid.Update(3, func(s Sequence) Sequence { return s.ToggleStep(1) })
	c.Euclid = c.Euclid.WithPattern(2, NewPattern(1, 4, 0))
	c.OneShots = c.OneShots.AddOneShot(9, 0)

	want := []Event{{Note: 3}, {Note: 2}, {Note: 9}}
	if got := c.Events(); !reflect.DeepEqual(got, want) {
		t.Errorf("Events() = %v, want grid, euclid, one-shots: %v", got, want)
	}
}

func TestEuclidIgnoresSwing(t *testing.T) {
	c := NewContext().WithSwing(50)
	c.Euclid = c.Euclid.WithPattern(1, NewPattern(16, 16, 0))
	c.Tick = 6
	if got := c.Events(); !reflect.DeepEqual(got, []Event{{Note: 1}}) {
		t.Errorf("euclid at even sixteenth = %v, want unswung", got)
	}
}

func TestParseMode(t *testing.T) {
	for _, m := range []Mode{Perform, StepEdit, EuclideanEdit, SequenceSelect, MuteAssign} {
		got, err := ParseMode(m.String())
		if err != nil || got != m {
			t.Errorf("ParseMode(%q) = %v, %v", m.String(), got, err)
		}
	}
	if _, err := ParseMode("jam"); err == nil {
		t.Error("ParseMode accepted an unknown mode")
	}
	if got := Mode(42).String(); got != "mode(42)" {
		t.Errorf("String() = %q", got)
	}
}

func TestProcessEmptyBatch(t *testing.T) {
	contexts := []Context{
		NewContext(),
		NewContext().ProcessMessages([]Message{up, press(1), knobUp(3), shiftOn}),
		NewContext().WithMode(MuteAssign).WithBPM(90).WithSwing(40).WithVoice(7),
	}
	for i, c := range contexts {
		if !c.ProcessMessages(nil).Equal(c) {
			t.Errorf("context %d: nil batch changed it", i)
		}
		if !c.ProcessMessages([]Message{}).Equal(c) {
			t.Errorf("context %d: empty batch changed it", i)
		}
	}
}
