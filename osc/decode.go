// Package osc connects the sequencer to an OSC/MIDI bridge: controller input
// arrives as OSC messages named after the MIDI message they carry, and
// lights, sampler triggers and clock are sent back the same way.
package osc

import (
	"strings"

	goosc "github.com/hypebeast/go-osc/osc"

	"padseq/sequencer"
)

// Decode maps an incoming bridge message to a sequencer message. The
// address only needs to contain note_on, note_off or control_change, so
// "/midi/atom/1/10/note_on" and "/atom/note_on" both work.
//
// note_on and note_off carry the note first and an optional velocity;
// control_change carries exactly [cc, value]. Anything else, including
// arguments of the wrong type, decodes to Unhandled.
func Decode(msg *goosc.Message, controls sequencer.ControlMap) sequencer.Message {
	if msg == nil {
		return sequencer.Message{}
	}

	switch {
	case strings.Contains(msg.Address, "note_on"):
		note, ok := intArg(msg.Arguments, 0)
		if !ok {
			return sequencer.Message{}
		}
		velocity, ok := intArg(msg.Arguments, 1)
		if !ok {
			velocity = sequencer.ButtonPressed
		}
		return sequencer.DecodeNote(note, velocity, true)

	case strings.Contains(msg.Address, "note_off"):
		note, ok := intArg(msg.Arguments, 0)
		if !ok {
			return sequencer.Message{}
		}
		return sequencer.DecodeNote(note, 0, false)

	case strings.Contains(msg.Address, "control_change"):
		if len(msg.Arguments) != 2 {
			return sequencer.Message{}
		}
		cc, ok1 := intArg(msg.Arguments, 0)
		value, ok2 := intArg(msg.Arguments, 1)
		if !ok1 || !ok2 {
			return sequencer.Message{}
		}
		return controls.Decode(cc, value)
	}
	return sequencer.Message{}
}

func intArg(args []interface{}, i int) (int, bool) {
	if i >= len(args) {
		return 0, false
	}
	switch v := args[i].(type) {
	case int32:
		return int(v), true
	case int64:
		return int(v), true
	}
	return 0, false
}

// messages flattens a packet into its messages, depth first.
func messages(p goosc.Packet) []*goosc.Message {
	switch p := p.(type) {
	case *goosc.Message:
		return []*goosc.Message{p}
	case *goosc.Bundle:
		out := append([]*goosc.Message(nil), p.Messages...)
		for _, b := range p.Bundles {
			out = append(out, messages(b)...)
		}
		return out
	}
	return nil
}
