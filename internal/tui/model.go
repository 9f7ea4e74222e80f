// Package tui implements the interactive plan explorer.
package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/pmehra7/summingbird/internal/render"
)

// ViewMode determines which screen to render.
type ViewMode int

const (
	ViewList ViewMode = iota
	ViewDetail
	ViewHelp
)

// Model is the explorer state: a plan document and a cursor over its stages.
type Model struct {
	doc       render.Document
	operators int

	viewMode ViewMode
	// previous is the mode the help screen returns to.
	previous ViewMode
	cursor   int

	keys keyMap
	help help.Model
	bar  progress.Model

	width  int
	height int
}

// NewModel creates an explorer for doc.
func NewModel(doc render.Document) Model {
	bar := progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage())
	bar.Width = 30

	m := Model{
		doc:  doc,
		keys: defaultKeyMap(),
		help: help.New(),
		bar:  bar,
	}
	for _, stage := range doc.Stages {
		m.operators += len(stage.Members)
	}
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// ViewMode returns the current screen.
func (m Model) ViewMode() ViewMode {
	return m.viewMode
}

// Cursor returns the index of the highlighted stage.
func (m Model) Cursor() int {
	return m.cursor
}

// Selected returns the highlighted stage.
func (m Model) Selected() (render.StageDoc, bool) {
	if m.cursor < 0 || m.cursor >= len(m.doc.Stages) {
		return render.StageDoc{}, false
	}
	return m.doc.Stages[m.cursor], true
}

// SetCursor moves the cursor to index when it names a stage.
func (m *Model) SetCursor(index int) {
	if index >= 0 && index < len(m.doc.Stages) {
		m.cursor = index
	}
}

// MoveCursorUp moves the cursor to the previous stage.
func (m *Model) MoveCursorUp() {
	if m.cursor > 0 {
		m.cursor--
	}
}

// MoveCursorDown moves the cursor to the next stage.
func (m *Model) MoveCursorDown() {
	if m.cursor < len(m.doc.Stages)-1 {
		m.cursor++
	}
}

// Run starts the explorer and blocks until the user quits or ctx is done.
func Run(ctx context.Context, doc render.Document, opts ...tea.ProgramOption) error {
	opts = append([]tea.ProgramOption{tea.WithContext(ctx), tea.WithAltScreen()}, opts...)
	_, err := tea.NewProgram(NewModel(doc), opts...).Run()
	return err
}
