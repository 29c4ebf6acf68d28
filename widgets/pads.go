package widgets

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// PadRows and PadCols describe the 4x4 pad block. Pad 1 is bottom left,
// pad 16 top right, matching the controller.
const (
	PadRows = 4
	PadCols = 4
)

// RenderCell renders one symbol in a color.
func RenderCell(color lipgloss.Color, symbol rune) string {
	return lipgloss.NewStyle().Foreground(color).Render(string(symbol))
}

// RenderPadGrid draws 16 pads as a 4x4 block, top row first. cell renders
// pad n (1-16).
func RenderPadGrid(cell func(pad int) string) string {
	var lines []string
	for row := PadRows - 1; row >= 0; row-- {
		var line strings.Builder
		for col := 0; col < PadCols; col++ {
			if col > 0 {
				line.WriteString(" ")
			}
			line.WriteString(cell(row*PadCols + col + 1))
		}
		lines = append(lines, line.String())
	}
	return strings.Join(lines, "\n")
}

// RenderStepRow draws steps 1..n on one line with a space every four
// steps.
func RenderStepRow(n int, cell func(step int) string) string {
	var out strings.Builder
	for step := 1; step <= n; step++ {
		if step > 1 && (step-1)%4 == 0 {
			out.WriteString(" ")
		}
		out.WriteString(cell(step))
	}
	return out.String()
}

// RenderKeyHelp formats key bindings in a friendly way
func RenderKeyHelp(sections []KeySection) string {
	var lines []string
	for _, sec := range sections {
		if sec.Title != "" {
			lines = append(lines, sec.Title)
		}
		for _, k := range sec.Keys {
			lines = append(lines, fmt.Sprintf("  %-12s %s", k.Key, k.Desc))
		}
	}
	return strings.Join(lines, "\n")
}

// KeySection groups related key bindings
type KeySection struct {
	Title string
	Keys  []KeyBinding
}

// KeyBinding is a single key and its description
type KeyBinding struct {
	Key  string
	Desc string
}
