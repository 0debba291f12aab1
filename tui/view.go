package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/hochfrequenz/shift-tracker/internal/domain"
	"github.com/hochfrequenz/shift-tracker/internal/week"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205")).
			Padding(0, 1)

	sectionStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)

	trackingStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("42"))

	pausedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("214"))

	stoppedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("244"))

	todayStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39"))

	barStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	dimmedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))
)

// maxBarHours is the day length drawn as a full bar
const maxBarHours = 10

// View renders the dashboard
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("work"))
	b.WriteString("\n\n")
	b.WriteString(sectionStyle.Render(m.renderStatus()))
	b.WriteString("\n")
	b.WriteString(sectionStyle.Render(m.renderWeek()))
	b.WriteString("\n")

	if m.err != nil {
		b.WriteString(errorStyle.Render("reload failed: " + m.err.Error()))
		b.WriteString("\n")
	}

	b.WriteString(dimmedStyle.Render("h/← previous week • l/→ next week • 0 current week • r reload • q quit"))
	return b.String()
}

func (m Model) renderStatus() string {
	var state string
	switch m.status.State {
	case domain.StateTracking:
		state = trackingStyle.Render("● tracking")
	case domain.StatePaused:
		state = pausedStyle.Render("❚❚ paused")
	default:
		state = stoppedStyle.Render("■ stopped")
	}

	if !m.status.Active {
		return state
	}
	return fmt.Sprintf("%s  %s  %s",
		state,
		domain.FormatDuration(m.status.Elapsed),
		dimmedStyle.Render("since "+m.status.StartedAt.Local().Format("Mon 15:04")))
}

func (m Model) renderWeek() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Week starting %s\n\n", m.weekStart.Format("2 Jan 2006"))

	today := m.lastRefresh.In(m.weekStart.Location())
	for _, day := range m.days {
		name := fmt.Sprintf("%-9s %s", day.WeekdayName(), day.Date.Format("01-02"))
		if week.SameDay(day.Date, today, m.weekStart.Location()) {
			name = todayStyle.Render(name)
		}
		fmt.Fprintf(&b, "%s  %s  %s\n", name, domain.FormatDuration(day.Total), renderBar(day.Total))
	}

	fmt.Fprintf(&b, "\n%-15s  %s", "Total", domain.FormatDuration(week.Total(m.days)))
	return b.String()
}

func renderBar(d time.Duration) string {
	width := int(d / (time.Hour / 2))
	if width > maxBarHours*2 {
		width = maxBarHours * 2
	}
	if width <= 0 {
		return ""
	}
	return barStyle.Render(strings.Repeat("█", width))
}
