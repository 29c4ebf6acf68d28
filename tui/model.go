package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"padseq/sequencer"
	"padseq/theme"
	"padseq/widgets"
)

// Model is the terminal monitor. It mirrors the pads and transport state
// from scheduler snapshots, and doubles as an input source: keys are
// pushed to the same inbox as the controller.
type Model struct {
	snapshots <-chan sequencer.Snapshot
	inbox     *sequencer.Inbox
	Theme     *theme.Theme

	snap     sequencer.Snapshot
	keys     keymap
	showHelp bool
	quitting bool
}

type SnapshotMsg sequencer.Snapshot

func NewModel(snapshots <-chan sequencer.Snapshot, inbox *sequencer.Inbox, th *theme.Theme) Model {
	if th == nil {
		th = theme.New(nil)
	}
	return Model{
		snapshots: snapshots,
		inbox:     inbox,
		Theme:     th,
		snap:      sequencer.NewSnapshot(sequencer.NewContext()),
	}
}

// ListenForSnapshots waits for the next scheduler snapshot.
func ListenForSnapshots(ch <-chan sequencer.Snapshot) tea.Cmd {
	return func() tea.Msg {
		s, ok := <-ch
		if !ok {
			return tea.Quit()
		}
		return SnapshotMsg(s)
	}
}

func (m Model) Init() tea.Cmd {
	return ListenForSnapshots(m.snapshots)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch key := msg.String(); key {
		case "esc", "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		case "?":
			m.showHelp = !m.showHelp
		default:
			for _, out := range m.keys.messages(key) {
				m.inbox.Push(out)
			}
		}

	case SnapshotMsg:
		m.snap = sequencer.Snapshot(msg)
		return m, ListenForSnapshots(m.snapshots)
	}

	return m, nil
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	s := m.snap
	headerStyle := lipgloss.NewStyle().Foreground(m.Theme.Accent())
	dimStyle := lipgloss.NewStyle().Foreground(m.Theme.Muted())

	beat := dimStyle.Render("○")
	if s.Beat {
		beat = lipgloss.NewStyle().Foreground(m.Theme.Beat()).Render("●")
	}

	var mods []string
	if s.Shift {
		mods = append(mods, "SHIFT")
	}
	if s.Select {
		mods = append(mods, "SELECT")
	}

	header := headerStyle.Render(fmt.Sprintf("padseq  %-15s %3dbpm  swing %3d%%  voice %02d",
		strings.ToUpper(s.Mode.String()), s.BPM, s.Swing, s.Voice))
	header += " " + beat
	if len(mods) > 0 {
		header += "  " + dimStyle.Render(strings.Join(mods, " "))
	}

	var out strings.Builder
	out.WriteString("\n")
	out.WriteString(header)
	out.WriteString("\n\n")
	out.WriteString(widgets.RenderPadGrid(m.renderPad))
	out.WriteString("\n\n")
	out.WriteString(fmt.Sprintf("steps  %s  %02d/%02d\n", widgets.RenderStepRow(sequencer.MaxLength, m.renderStep), s.Step, s.Length))
	p := s.Pattern
	out.WriteString(dimStyle.Render(fmt.Sprintf("euclid %d/%d rotate %d", p.Onsets, p.Pulses, p.Rotate)))
	out.WriteString("\n\n")

	if m.showHelp {
		out.WriteString(dimStyle.Render(widgets.RenderKeyHelp(keyHelp)))
	} else {
		out.WriteString(dimStyle.Render("?:keys  esc:quit"))
	}
	return out.String()
}

func (m Model) renderPad(pad int) string {
	sym := m.Theme.Symbols
	switch {
	case m.snap.Pads[pad-1]:
		return widgets.RenderCell(m.Theme.Lit(), sym.Pad)
	case m.snap.Muted[pad-1]:
		return widgets.RenderCell(m.Theme.Muted(), sym.PadOff)
	}
	return widgets.RenderCell(m.Theme.FG(), sym.PadOff)
}

func (m Model) renderStep(step int) string {
	sym := m.Theme.Symbols
	switch {
	case step > m.snap.Length:
		return widgets.RenderCell(m.Theme.Muted(), sym.Beyond)
	case step == m.snap.Step:
		return widgets.RenderCell(m.Theme.Lit(), sym.Playhead)
	case m.snap.Steps[step-1]:
		return widgets.RenderCell(m.Theme.Active(), sym.Step)
	}
	return widgets.RenderCell(m.Theme.FG(), sym.Empty)
}
