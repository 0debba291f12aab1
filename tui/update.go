package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "r":
			return m, m.reloadCmd()
		case "h", "left":
			m.weekOffset++
			m.refresh()
		case "l", "right":
			m.weekOffset--
			m.refresh()
		case "0", "home":
			m.weekOffset = 0
			m.refresh()
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case TickMsg:
		m.refresh()
		return m, tickCmd()

	case RecordChangedMsg:
		return m, tea.Batch(m.reloadCmd(), waitForChange(m.changes))

	case RecordLoadedMsg:
		m.err = msg.Err
		if msg.Err == nil && msg.Record != nil {
			m.record = msg.Record
		}
		m.refresh()
	}

	return m, nil
}
