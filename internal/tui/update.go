package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Update handles Bubbletea messages and updates model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil
	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	}
	return m, nil
}

// handleKeyPress handles keyboard input based on current view mode.
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.viewMode {
	case ViewList:
		return m.handleListKeys(msg)
	case ViewDetail:
		return m.handleDetailKeys(msg)
	case ViewHelp:
		return m.handleHelpKeys(msg)
	default:
		return m, nil
	}
}

func (m Model) handleListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Up):
		m.MoveCursorUp()
	case key.Matches(msg, m.keys.Down):
		m.MoveCursorDown()
	case key.Matches(msg, m.keys.Jump):
		m.SetCursor(int(msg.String()[0] - '1'))
	case key.Matches(msg, m.keys.Select):
		if _, ok := m.Selected(); ok {
			m.viewMode = ViewDetail
		}
	case key.Matches(msg, m.keys.Help):
		m.previous = ViewList
		m.viewMode = ViewHelp
	}
	return m, nil
}

// In the detail view up and down switch the stage being shown.
func (m Model) handleDetailKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Back):
		m.viewMode = ViewList
	case key.Matches(msg, m.keys.Up):
		m.MoveCursorUp()
	case key.Matches(msg, m.keys.Down):
		m.MoveCursorDown()
	case key.Matches(msg, m.keys.Help):
		m.previous = ViewDetail
		m.viewMode = ViewHelp
	}
	return m, nil
}

func (m Model) handleHelpKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "?", "esc", "q":
		m.viewMode = m.previous
	}
	return m, nil
}
