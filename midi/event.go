package midi

import (
	gomidi "gitlab.com/gomidi/midi/v2"

	"padseq/sequencer"
)

// Decode maps a controller message to a sequencer message: notes by
// number, control changes through controls. Everything else is Unhandled.
func Decode(msg gomidi.Message, controls sequencer.ControlMap) sequencer.Message {
	var channel, key, velocity, cc, value uint8

	switch {
	case msg.GetNoteOn(&channel, &key, &velocity):
		return sequencer.DecodeNote(int(key), int(velocity), true)
	case msg.GetNoteOff(&channel, &key, &velocity):
		return sequencer.DecodeNote(int(key), 0, false)
	case msg.GetControlChange(&channel, &cc, &value):
		return controls.Decode(int(cc), int(value))
	}
	return sequencer.Message{}
}

func velocityFor(on bool) uint8 {
	if on {
		return sequencer.ButtonPressed
	}
	return sequencer.ButtonReleased
}
