package report

import (
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

type styles struct {
	hours    lipgloss.Style
	minutes  lipgloss.Style
	seconds  lipgloss.Style
	heading  lipgloss.Style
	day      lipgloss.Style
	empty    lipgloss.Style
	warning  lipgloss.Style
	comment  lipgloss.Style
	index    lipgloss.Style
	dimmed   lipgloss.Style
	tracking lipgloss.Style
	paused   lipgloss.Style
	stopped  lipgloss.Style
}

func newStyles(r *lipgloss.Renderer) styles {
	return styles{
		hours:    r.NewStyle().Foreground(lipgloss.Color("42")),
		minutes:  r.NewStyle().Foreground(lipgloss.Color("51")),
		seconds:  r.NewStyle().Foreground(lipgloss.Color("201")),
		heading:  r.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		day:      r.NewStyle().Bold(true),
		empty:    r.NewStyle().Foreground(lipgloss.Color("196")),
		warning:  r.NewStyle().Foreground(lipgloss.Color("196")),
		comment:  r.NewStyle().Foreground(lipgloss.Color("205")),
		index:    r.NewStyle().Bold(true).Foreground(lipgloss.Color("214")),
		dimmed:   r.NewStyle().Foreground(lipgloss.Color("244")),
		tracking: r.NewStyle().Bold(true).Foreground(lipgloss.Color("42")),
		paused:   r.NewStyle().Bold(true).Foreground(lipgloss.Color("214")),
		stopped:  r.NewStyle().Bold(true).Foreground(lipgloss.Color("244")),
	}
}

func newRenderer(w io.Writer, color bool) *lipgloss.Renderer {
	r := lipgloss.NewRenderer(w)
	if !color {
		r.SetColorProfile(termenv.Ascii)
	}
	return r
}
