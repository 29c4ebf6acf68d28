package sequencer

import (
	"errors"
	"testing"
)

func TestMultiSinkCallsEverySink(t *testing.T) {
	failing := &recordingSink{err: errors.New("boom")}
	ok := &recordingSink{}
	m := MultiSink{failing, ok, Discard{}}

	if err := m.Trigger(Event{Note: 3}); err == nil {
		t.Error("Trigger() lost the error")
	}
	if len(ok.triggers) != 1 || len(failing.triggers) != 1 {
		t.Error("a failing sink stopped the fan out")
	}
	if err := (MultiSink{ok, Discard{}}).Light(LightCommand{Light: Pad(1), On: true}); err != nil {
		t.Errorf("Light() = %v", err)
	}
	if err := (MultiSink{ok}).Clock(); err != nil || ok.clocks != 1 {
		t.Errorf("Clock() = %v, clocks %d", err, ok.clocks)
	}
}

func TestMultiSinkTempo(t *testing.T) {
	a, b := &recordingSink{}, &recordingSink{}
	m := MultiSink{a, Discard{}, b}

	if err := m.SetTempo(96); err != nil {
		t.Fatal(err)
	}
	if len(a.tempos) != 1 || len(b.tempos) != 1 || a.tempos[0] != 96 {
		t.Errorf("tempos = %v %v", a.tempos, b.tempos)
	}

	var _ TempoSink = m
}
