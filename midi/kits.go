package midi

import "sort"

// DrumKit maps the 16 voices to the notes a drum machine or sampler
// expects. Voice n plays Notes[n-1].
type DrumKit struct {
	Name  string
	Notes [16]uint8
}

// Voice order shared by the kits:
// kick, snare, closed hat, open hat, low/mid/high tom, crash,
// ride, clap, rimshot, cowbell, clave, maracas, low/high conga.
var Kits = map[string]DrumKit{
	"gm": {
		Name:  "General MIDI",
		Notes: [16]uint8{36, 38, 42, 46, 41, 43, 45, 49, 51, 39, 37, 56, 75, 70, 64, 63},
	},
	"rd8": {
		// RD-8 puts the snare on 40, not 38
		Name:  "Behringer RD-8",
		Notes: [16]uint8{36, 40, 42, 46, 45, 48, 50, 49, 51, 39, 37, 56, 75, 70, 64, 63},
	},
	"tr8s": {
		Name:  "Roland TR-8S",
		Notes: [16]uint8{36, 38, 42, 46, 41, 43, 45, 49, 51, 39, 37, 56, 75, 70, 62, 63},
	},
	// Sampler slots addressed by voice number directly.
	"chromatic": {
		Name:  "Chromatic from C2",
		Notes: [16]uint8{36, 37, 38, 39, 40, 41, 42, 43, 44, 45, 46, 47, 48, 49, 50, 51},
	},
}

// DefaultKit is the default kit name
const DefaultKit = "gm"

// KitNames returns the available kit names, sorted.
func KitNames() []string {
	names := make([]string, 0, len(Kits))
	for name := range Kits {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GetKit returns a kit by name, defaulting to GM if not found
func GetKit(name string) DrumKit {
	if kit, ok := Kits[name]; ok {
		return kit
	}
	return Kits[DefaultKit]
}

// Note returns the kit note for a voice, and false for voices outside
// 1-16.
func (k DrumKit) Note(voice int) (uint8, bool) {
	if voice < 1 || voice > len(k.Notes) {
		return 0, false
	}
	return k.Notes[voice-1], true
}
