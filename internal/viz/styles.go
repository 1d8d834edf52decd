package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Styles are the lipgloss styles derived from a Theme.
type Styles struct {
	Header      lipgloss.Style
	Status      lipgloss.Style
	Paused      lipgloss.Style
	Panel       lipgloss.Style
	Graph       lipgloss.Style
	MetricLabel lipgloss.Style
	MetricValue lipgloss.Style
	KeyHint     lipgloss.Style
	Notice      lipgloss.Style

	Agent   lipgloss.Style
	Attract lipgloss.Style
	Repel   lipgloss.Style

	SparkHigh lipgloss.Style
	SparkMid  lipgloss.Style
	SparkLow  lipgloss.Style
}

func NewStyles(t Theme) Styles {
	return Styles{
		Header: lipgloss.NewStyle().Bold(true).Foreground(t.Primary),
		Status: lipgloss.NewStyle().Bold(true).Foreground(t.Success),
		Paused: lipgloss.NewStyle().Bold(true).Foreground(t.Warning),
		Panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Muted).
			Padding(0, 2).
			Width(40),
		Graph:       lipgloss.NewStyle().Foreground(t.Accent).Padding(1, 0),
		MetricLabel: lipgloss.NewStyle().Foreground(t.Muted).Width(12),
		MetricValue: lipgloss.NewStyle().Foreground(t.Text).Bold(true),
		KeyHint:     lipgloss.NewStyle().Foreground(t.Muted).Italic(true),
		Notice:      lipgloss.NewStyle().Foreground(t.Accent),

		Agent:   lipgloss.NewStyle().Foreground(t.Secondary),
		Attract: lipgloss.NewStyle().Bold(true).Foreground(t.Success),
		Repel:   lipgloss.NewStyle().Bold(true).Foreground(t.Error),

		SparkHigh: lipgloss.NewStyle().Foreground(t.Success),
		SparkMid:  lipgloss.NewStyle().Foreground(t.Warning),
		SparkLow:  lipgloss.NewStyle().Foreground(t.Error),
	}
}

func (s Styles) cell(kind cellKind, text string) string {
	switch kind {
	case cellAgent:
		return s.Agent.Render(text)
	case cellAttract:
		return s.Attract.Render(text)
	case cellRepel:
		return s.Repel.Render(text)
	}
	return text
}

// ProgressBar renders a fraction in [0,1] as a filled bar, colored by level.
func (s Styles) ProgressBar(percent float64, width int) string {
	filled := int(percent * float64(width))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}

	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)

	if percent > 0.8 {
		return s.SparkHigh.Render(bar)
	} else if percent > 0.4 {
		return s.SparkMid.Render(bar)
	}
	return s.SparkLow.Render(bar)
}

// Sparkline renders the last width values as block characters scaled to
// their own range.
func (s Styles) Sparkline(values []float64, width int) string {
	if len(values) == 0 {
		return strings.Repeat("─", width)
	}
	if len(values) > width {
		values = values[len(values)-width:]
	}

	chars := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

	lo, hi := values[0], values[0]
	for _, v := range values {
		lo = min(lo, v)
		hi = max(hi, v)
	}
	rng := hi - lo
	if rng == 0 {
		rng = 1
	}

	var result strings.Builder
	for _, v := range values {
		norm := (v - lo) / rng
		idx := int(norm * float64(len(chars)-1))
		idx = max(0, min(idx, len(chars)-1))

		c := string(chars[idx])
		switch {
		case norm > 0.7:
			result.WriteString(s.SparkHigh.Render(c))
		case norm > 0.3:
			result.WriteString(s.SparkMid.Render(c))
		default:
			result.WriteString(s.SparkLow.Render(c))
		}
	}
	return result.String()
}
