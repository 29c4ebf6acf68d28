package tui

import (
	"padseq/sequencer"
	"padseq/widgets"
)

// padKeys lays the 16 pads out on the keyboard as a 4x4 block: the bottom
// row of pads on z-v, the top row on 1-4.
var padKeys = map[string]int{
	"z": 1, "x": 2, "c": 3, "v": 4,
	"a": 5, "s": 6, "d": 7, "f": 8,
	"q": 9, "w": 10, "e": 11, "r": 12,
	"1": 13, "2": 14, "3": 15, "4": 16,
}

// knobKeys maps key -> (knob, direction).
var knobKeys = map[string]struct {
	knob int
	up   bool
}{
	"[": {1, false}, "]": {1, true},
	";": {2, false}, "'": {2, true},
	",": {3, false}, ".": {3, true},
	"-": {4, false}, "=": {4, true},
}

// keymap turns key presses into controller messages. A terminal reports
// no key releases, so shift and select latch: one press holds, the next
// releases.
type keymap struct {
	shift bool
	sel   bool
}

func (k *keymap) messages(key string) []sequencer.Message {
	if pad, ok := padKeys[key]; ok {
		note := sequencer.NoteForPad(pad)
		return []sequencer.Message{
			{Kind: sequencer.NoteOn, Number: note},
			{Kind: sequencer.NoteOff, Number: note},
		}
	}
	if kn, ok := knobKeys[key]; ok {
		kind := sequencer.KnobDecrement
		if kn.up {
			kind = sequencer.KnobIncrement
		}
		return []sequencer.Message{{Kind: kind, Number: kn.knob}}
	}

	switch key {
	case "left":
		return []sequencer.Message{{Kind: sequencer.Left}}
	case "right":
		return []sequencer.Message{{Kind: sequencer.Right}}
	case "up":
		return []sequencer.Message{{Kind: sequencer.Up}}
	case "`":
		k.shift = !k.shift
		if k.shift {
			return []sequencer.Message{{Kind: sequencer.ShiftOn}}
		}
		return []sequencer.Message{{Kind: sequencer.ShiftOff}}
	case "tab":
		k.sel = !k.sel
		if k.sel {
			return []sequencer.Message{{Kind: sequencer.SelectOn}}
		}
		return []sequencer.Message{{Kind: sequencer.SelectOff}}
	}
	return nil
}

var keyHelp = []widgets.KeySection{
	{
		Title: "keys",
		Keys: []widgets.KeyBinding{
			{Key: "1-4 q-r a-f z-v", Desc: "pads (z = pad 1)"},
			{Key: "arrows", Desc: "left/right voice, up mode"},
			{Key: "tab", Desc: "hold/release select"},
			{Key: "`", Desc: "hold/release shift"},
			{Key: "[ ] ; ' , . - =", Desc: "knobs 1-4 down/up"},
			{Key: "esc ctrl+c", Desc: "quit"},
		},
	},
}
