package sequencer

import "sort"

// LightKind separates pad lights from the controller's button indicators.
type LightKind int

const (
	PadLight LightKind = iota
	SelectLight
	BeatLight
)

func (k LightKind) String() string {
	switch k {
	case PadLight:
		return "pad"
	case SelectLight:
		return "select"
	case BeatLight:
		return "beat"
	}
	return "unknown"
}

// Light addresses one light. Index is the pad number for PadLight and zero
// for indicators.
type Light struct {
	Kind  LightKind
	Index int
}

func Pad(n int) Light { return Light{Kind: PadLight, Index: n} }

// LightCommand turns a light on or off.
type LightCommand struct {
	Light Light
	On    bool
}

// LightSet is the set of lit lights.
type LightSet map[Light]struct{}

func (s LightSet) Has(l Light) bool {
	_, ok := s[l]
	return ok
}

// Indicator timing. The select button blinks on a 12 tick period while
// held; the beat indicator is lit for the first sixteenth of each quarter.
const (
	selectBlinkPeriod = 2 * TicksPerSixteenth
	beatPeriod        = TicksPerQuarter
)

// ActivePads lists the lit pads for the context's mode, ascending.
//
//	Perform         voices sounding this tick
//	StepEdit        selected voice's steps plus the playhead
//	EuclideanEdit   selected voice's pattern plus its playhead
//	SequenceSelect  playhead only
//	MuteAssign      unmuted voices
func ActivePads(c Context) []int {
	pads := map[int]bool{}

	switch c.Mode {
	case Perform:
		for _, e := range c.Events() {
			if validVoice(e.Note) {
				pads[e.Note] = true
			}
		}
	case StepEdit:
		seq := c.SelectedSequence()
		for _, step := range seq.ActiveSteps() {
			pads[step] = true
		}
		pads[seq.CurrentStep(c.Tick)] = true
	case EuclideanEdit:
		p := c.SelectedPattern()
		for i, b := range p.Bits() {
			if b == 1 {
				pads[i+1] = true
			}
		}
		pads[p.Playhead(c.Tick)] = true
	case SequenceSelect:
		pads[mod(c.Tick/TicksPerSixteenth, Voices)+1] = true
	case MuteAssign:
		for voice := 1; voice <= Voices; voice++ {
			if !c.Grid.Sequence(voice).Muted() {
				pads[voice] = true
			}
		}
	}

	out := make([]int, 0, len(pads))
	for p := range pads {
		out = append(out, p)
	}
	sort.Ints(out)
	return out
}

// Indicators returns the button lights lit for (mode, tick).
func Indicators(mode Mode, tick int) []Light {
	var lit []Light
	if mode == SequenceSelect && mod(tick, selectBlinkPeriod) < selectBlinkPeriod/2 {
		lit = append(lit, Light{Kind: SelectLight})
	}
	if mod(tick, beatPeriod) < TicksPerSixteenth {
		lit = append(lit, Light{Kind: BeatLight})
	}
	return lit
}

// Lights is everything lit for c: pads and indicators.
func Lights(c Context) LightSet {
	set := LightSet{}
	for _, p := range ActivePads(c) {
		set[Pad(p)] = struct{}{}
	}
	for _, l := range Indicators(c.Mode, c.Tick) {
		set[l] = struct{}{}
	}
	return set
}

// Diff returns the commands that take the lights from prev to next.
func Diff(prev, next Context) []LightCommand {
	return DiffLights(Lights(prev), Lights(next))
}

// DiffLights emits on for next-prev and off for prev-next. Lights in both
// sets get no command. The result is sorted by kind then index.
func DiffLights(prev, next LightSet) []LightCommand {
	var cmds []LightCommand
	for l := range next {
		if !prev.Has(l) {
			cmds = append(cmds, LightCommand{Light: l, On: true})
		}
	}
	for l := range prev {
		if !next.Has(l) {
			cmds = append(cmds, LightCommand{Light: l, On: false})
		}
	}
	sort.Slice(cmds, func(i, j int) bool {
		a, b := cmds[i].Light, cmds[j].Light
		if a.Kind != b.Kind {
			return a.Kind < b.Kind
		}
		return a.Index < b.Index
	})
	return cmds
}
