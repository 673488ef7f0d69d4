package viz

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/rampsim/internal/render"
)

// Theme pairs a scene palette with panel colours. Terminal backgrounds are
// usually dark, so the default theme lifts the terrain edge colour.
type Theme struct {
	Name    string
	Palette render.Palette
	Accent  lipgloss.Color
	Text    lipgloss.Color
	Muted   lipgloss.Color
	Warning lipgloss.Color
}

var (
	ThemeDusk = Theme{
		Name: "dusk",
		Palette: func() render.Palette {
			p := render.DefaultPalette()
			p.TerrainEdge = render.Hex("#8fa6d9")
			p.TerrainFill = render.Hex("#3b4a6e")
			p.WheelRing = render.Hex("#aaaaaa")
			return p
		}(),
		Accent:  lipgloss.Color("#1ecf7c"),
		Text:    lipgloss.Color("#e6ecff"),
		Muted:   lipgloss.Color("#6b7794"),
		Warning: lipgloss.Color("#ffaa00"),
	}

	ThemePaper = Theme{
		Name:    "paper",
		Palette: render.DefaultPalette(),
		Accent:  lipgloss.Color("#0a7d45"),
		Text:    lipgloss.Color("#2f3d5b"),
		Muted:   lipgloss.Color("#8890a0"),
		Warning: lipgloss.Color("#c0392b"),
	}

	ThemePhosphor = Theme{
		Name: "phosphor",
		Palette: render.Palette{
			Background:  render.Hex("#001100"),
			TerrainEdge: render.Hex("#00ff00"),
			TerrainFill: render.Hex("#005500"),
			ChassisFill: render.Hex("#88ff88"),
			ChassisEdge: render.Hex("#00cc00"),
			WheelFill:   render.Hex("#003300"),
			WheelRing:   render.Hex("#00ff00"),
			Spoke:       render.Hex("#88ff88"),
		},
		Accent:  lipgloss.Color("#88ff88"),
		Text:    lipgloss.Color("#00ff00"),
		Muted:   lipgloss.Color("#007700"),
		Warning: lipgloss.Color("#ffff00"),
	}

	Themes = []Theme{ThemeDusk, ThemePaper, ThemePhosphor}
)

// GetTheme returns the named theme, or the first one.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return Themes[0]
}

// NextTheme cycles through Themes.
func NextTheme(current string) Theme {
	for i, t := range Themes {
		if t.Name == current {
			return Themes[(i+1)%len(Themes)]
		}
	}
	return Themes[0]
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}
