package theme

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

type Theme struct {
	Palette *Palette
	Symbols Symbols
}

type Symbols struct {
	Pad      rune // ■ lit pad
	PadOff   rune // □ dark pad
	Step     rune // ● active step
	Empty    rune // · empty step
	Playhead rune // ▶ step under the playhead
	Beyond   rune // - past sequence length
}

func New(palette *Palette) *Theme {
	if palette == nil {
		palette = Plasma()
	}
	return &Theme{
		Palette: palette,
		Symbols: Symbols{
			Pad:      '■',
			PadOff:   '□',
			Step:     '●',
			Empty:    '·',
			Playhead: '▶',
			Beyond:   '-',
		},
	}
}

// Color roles mapped to palette positions (0-1)
const (
	RoleMuted  = 0.2
	RoleFG     = 0.45
	RoleAccent = 0.55
	RoleActive = 0.7
	RoleBeat   = 0.85
	RoleLit    = 1.0
)

func (t *Theme) FG() lipgloss.Color     { return t.Color(RoleFG) }
func (t *Theme) Accent() lipgloss.Color { return t.Color(RoleAccent) }
func (t *Theme) Muted() lipgloss.Color  { return t.Color(RoleMuted) }
func (t *Theme) Active() lipgloss.Color { return t.Color(RoleActive) }
func (t *Theme) Beat() lipgloss.Color   { return t.Color(RoleBeat) }
func (t *Theme) Lit() lipgloss.Color    { return t.Color(RoleLit) }

// Color returns lipgloss color for any normalized value 0-1
func (t *Theme) Color(norm float64) lipgloss.Color {
	return rgbToLipgloss(t.Palette.Lookup(norm))
}

// RGB returns raw RGB for any normalized value
func (t *Theme) RGB(norm float64) RGB {
	return t.Palette.Lookup(norm)
}

func rgbToLipgloss(c RGB) lipgloss.Color {
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", c[0], c[1], c[2]))
}
