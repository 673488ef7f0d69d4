package viz

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/rampsim/internal/sim"
)

var presetInfo = map[string]string{
	"default": "curb, ramp and a 70 cm descent",
	"steep":   "short drop of 1.5 m",
	"flat":    "level track after the ramp",
	"jump":    "kicker into a vertical drop",
	"moon":    "default track, lunar gravity",
}

const (
	stateMenu = iota
	stateSim
)

// Launcher builds a simulation for the named preset.
type Launcher func(preset string) (*sim.Context, error)

type menu struct {
	state, cursor int
	presets       []string
	launch        Launcher
	err           error
	width, height int
	live          Model
}

func NewMenu(presets []string, launch Launcher) tea.Model {
	return menu{presets: presets, launch: launch}
}

func (m menu) Init() tea.Cmd { return nil }

func (m menu) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if size, ok := msg.(tea.WindowSizeMsg); ok {
		m.width, m.height = size.Width, size.Height
	}
	if m.state == stateSim {
		next, cmd := m.live.Update(msg)
		m.live = next.(Model)
		return m, cmd
	}
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.presets)-1 {
			m.cursor++
		}
	case "enter", " ":
		ctx, err := m.launch(m.presets[m.cursor])
		if err != nil {
			m.err = err
			return m, nil
		}
		m.live = NewModel(ctx)
		if m.width > 0 {
			next, _ := m.live.Update(tea.WindowSizeMsg{Width: m.width, Height: m.height})
			m.live = next.(Model)
		}
		m.state = stateSim
		return m, m.live.Init()
	}
	return m, nil
}

func (m menu) View() string {
	if m.state == stateSim {
		return m.live.View()
	}
	title := lipgloss.NewStyle().Foreground(lipgloss.Color("#1ecf7c")).Bold(true)
	sub := lipgloss.NewStyle().Foreground(lipgloss.Color("#6b7794"))
	pick := lipgloss.NewStyle().Foreground(lipgloss.Color("#ffffff")).Bold(true)
	key := lipgloss.NewStyle().Foreground(lipgloss.Color("#8fa6d9")).Bold(true)

	var b strings.Builder
	b.WriteString("\n\n    " + title.Render("RAMPSIM") + "\n    " + sub.Render("2d vehicle physics") + "\n    " + sub.Render(strings.Repeat("─", 25)) + "\n\n")
	for i, name := range m.presets {
		line := fmt.Sprintf("%-10s", name)
		if i == m.cursor {
			b.WriteString("    " + title.Render("▸ ") + pick.Render(line) + "  " + sub.Render(presetInfo[name]) + "\n")
		} else {
			b.WriteString("      " + sub.Render(line) + "\n")
		}
	}
	if m.err != nil {
		b.WriteString("\n    " + lipgloss.NewStyle().Foreground(lipgloss.Color("#ff4444")).Render(m.err.Error()) + "\n")
	}
	b.WriteString("\n    " + key.Render("j/k") + sub.Render(" navigate  ") + key.Render("enter") + sub.Render(" drive  ") + key.Render("q") + sub.Render(" quit") + "\n")
	return b.String()
}

// Run starts the live view on ctx in the alternate screen.
func Run(ctx *sim.Context) error {
	_, err := tea.NewProgram(NewModel(ctx), tea.WithAltScreen()).Run()
	return err
}

// RunInteractive starts at the preset menu.
func RunInteractive(presets []string, launch Launcher) error {
	_, err := tea.NewProgram(NewMenu(presets, launch), tea.WithAltScreen()).Run()
	return err
}
