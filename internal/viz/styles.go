package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type styles struct {
	canvas   lipgloss.Style
	panel    lipgloss.Style
	header   lipgloss.Style
	label    lipgloss.Style
	value    lipgloss.Style
	active   lipgloss.Style
	graph    lipgloss.Style
	help     lipgloss.Style
	warning  lipgloss.Style
	selected lipgloss.Style
}

func newStyles(t Theme) styles {
	return styles{
		canvas:   lipgloss.NewStyle().Padding(1, 1),
		panel:    lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(t.Muted).Padding(1, 2).Width(panelWidth),
		header:   lipgloss.NewStyle().Foreground(t.Accent).Bold(true).MarginBottom(1),
		label:    lipgloss.NewStyle().Foreground(t.Muted).Width(10),
		value:    lipgloss.NewStyle().Foreground(t.Text),
		active:   lipgloss.NewStyle().Foreground(t.Accent).Bold(true),
		graph:    lipgloss.NewStyle().Foreground(t.Accent),
		help:     lipgloss.NewStyle().Foreground(t.Muted).MarginTop(1),
		warning:  lipgloss.NewStyle().Foreground(t.Warning).Bold(true),
		selected: lipgloss.NewStyle().Foreground(t.Text).Background(t.Muted).Bold(true),
	}
}

// Gauge renders a bar for v in [-1, 1] centred on zero.
func Gauge(v float64, width int) string {
	half := width / 2
	n := int(clamp(v, -1, 1) * float64(half))
	left := strings.Repeat("─", half)
	right := strings.Repeat("─", half)
	if n > 0 {
		right = strings.Repeat("█", n) + strings.Repeat("─", half-n)
	} else if n < 0 {
		left = strings.Repeat("─", half+n) + strings.Repeat("█", -n)
	}
	return left + "│" + right
}

// Sparkline squeezes values into width block characters, sampling the most
// recent ones.
func Sparkline(values []float64, width int) string {
	if len(values) == 0 || width <= 0 {
		return strings.Repeat(" ", max(width, 0))
	}
	if len(values) > width {
		values = values[len(values)-width:]
	}
	chars := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}
	lo, hi := values[0], values[0]
	for _, v := range values {
		lo, hi = min(lo, v), max(hi, v)
	}
	span := hi - lo
	if span == 0 {
		span = 1
	}
	var b strings.Builder
	for _, v := range values {
		idx := int((v - lo) / span * float64(len(chars)-1))
		b.WriteRune(chars[idx])
	}
	return b.String()
}

func clamp(v, lo, hi float64) float64 {
	return max(lo, min(hi, v))
}
