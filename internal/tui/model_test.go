package tui

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/pmehra7/summingbird/internal/render"
)

func sampleDocument() render.Document {
	return render.Document{
		Name:        "clicks",
		Terminal:    "totals",
		Fingerprint: "00000000deadbeef",
		StageCount:  3,
		Stages: []render.StageDoc{
			{
				ID: 0, Name: "Summer-0", Kind: "aggregate",
				Members:   []render.MemberDoc{{ID: "totals", Name: "totals", Type: "aggregate", Store: "counts"}},
				DependsOn: []string{"FlatMap-1"},
			},
			{
				ID: 1, Name: "FlatMap-1", Kind: "transform",
				Members:   []render.MemberDoc{{ID: "expand", Name: "expand", Type: "transform", Kind: "flat_map"}},
				DependsOn: []string{"Source-2"},
				Feeds:     []string{"Summer-0"},
			},
			{
				ID: 2, Name: "Source-2", Kind: "source",
				Members: []render.MemberDoc{
					{ID: "clicks", Name: "click-stream", Type: "source"},
					{ID: "named", Name: "named", Type: "passthrough", Kind: "name"},
				},
				Feeds: []string{"FlatMap-1"},
			},
		},
		Unreachable: []string{"audit"},
	}
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(t *testing.T, m Model, msgs ...tea.Msg) (Model, tea.Cmd) {
	t.Helper()

	var cmd tea.Cmd
	for _, msg := range msgs {
		var updated tea.Model
		updated, cmd = m.Update(msg)
		m = updated.(Model)
	}
	return m, cmd
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

func TestNewModelInitialisesState(t *testing.T) {
	t.Parallel()

	m := NewModel(sampleDocument())
	require.Equal(t, ViewList, m.ViewMode())
	require.Zero(t, m.Cursor())
	require.Equal(t, 4, m.operators)
	require.Nil(t, m.Init())

	stage, ok := m.Selected()
	require.True(t, ok)
	require.Equal(t, "Summer-0", stage.Name)
}

func TestListNavigation(t *testing.T) {
	t.Parallel()

	m := NewModel(sampleDocument())

	m, _ = press(t, m, runes("j"), tea.KeyMsg{Type: tea.KeyDown})
	require.Equal(t, 2, m.Cursor())

	m, _ = press(t, m, runes("j"))
	require.Equal(t, 2, m.Cursor(), "cursor stops at the last stage")

	m, _ = press(t, m, runes("k"), tea.KeyMsg{Type: tea.KeyUp}, tea.KeyMsg{Type: tea.KeyUp})
	require.Zero(t, m.Cursor())

	m, _ = press(t, m, runes("3"))
	require.Equal(t, 2, m.Cursor())

	m, _ = press(t, m, runes("9"))
	require.Equal(t, 2, m.Cursor(), "out of range jumps are ignored")
}

func TestDetailViewFlow(t *testing.T) {
	t.Parallel()

	m := NewModel(sampleDocument())
	m, _ = press(t, m, runes("2"), tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, ViewDetail, m.ViewMode())

	view := m.View()
	require.Contains(t, view, "FlatMap-1 (transform)")
	require.Contains(t, view, "1. expand transform/flat_map")
	require.Contains(t, view, "Source-2")
	require.Contains(t, view, "Summer-0")
	require.Contains(t, view, "1/4 operators")

	m, _ = press(t, m, runes("j"))
	require.Equal(t, ViewDetail, m.ViewMode())
	require.Contains(t, m.View(), "2. named passthrough/name")
	require.Contains(t, m.View(), "external input")

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	require.Equal(t, ViewList, m.ViewMode())
	require.Equal(t, 2, m.Cursor())
}

func TestHelpReturnsToPreviousView(t *testing.T) {
	t.Parallel()

	m := NewModel(sampleDocument())

	m, _ = press(t, m, runes("?"))
	require.Equal(t, ViewHelp, m.ViewMode())
	require.Contains(t, m.View(), "Keyboard shortcuts")
	require.Contains(t, m.View(), "jump to stage")

	m, _ = press(t, m, runes("q"))
	require.Equal(t, ViewList, m.ViewMode())

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEnter}, runes("?"), tea.KeyMsg{Type: tea.KeyEsc})
	require.Equal(t, ViewDetail, m.ViewMode())
}

func TestQuitKeys(t *testing.T) {
	t.Parallel()

	cases := map[string][]tea.Msg{
		"q in list":        {runes("q")},
		"ctrl+c in list":   {tea.KeyMsg{Type: tea.KeyCtrlC}},
		"q in detail":      {tea.KeyMsg{Type: tea.KeyEnter}, runes("q")},
		"ctrl+c from help": {runes("?"), tea.KeyMsg{Type: tea.KeyCtrlC}},
	}

	for name, msgs := range cases {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			_, cmd := press(t, NewModel(sampleDocument()), msgs...)
			require.True(t, isQuit(cmd))
		})
	}
}

func TestListViewRendersStages(t *testing.T) {
	t.Parallel()

	m := NewModel(sampleDocument())
	m, _ = press(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})
	require.Equal(t, 100, m.width)

	view := m.View()
	require.Contains(t, view, "Summingbird • clicks")
	require.Contains(t, view, "3 stages, 4 operators, fingerprint 00000000deadbeef")
	require.Contains(t, view, "> Summer-0")
	require.Contains(t, view, "  FlatMap-1")
	require.Contains(t, view, "audit")
	require.Contains(t, view, "quit")
}

func TestEmptyDocument(t *testing.T) {
	t.Parallel()

	m := NewModel(render.Document{})
	_, ok := m.Selected()
	require.False(t, ok)

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEnter}, runes("j"))
	require.Equal(t, ViewList, m.ViewMode())
	require.Contains(t, m.View(), "No stages.")
	require.Contains(t, m.View(), "Summingbird • Plan")
}

func TestRunQuitsOnKey(t *testing.T) {
	err := Run(context.Background(), sampleDocument(),
		tea.WithInput(strings.NewReader("q")),
		tea.WithOutput(io.Discard),
		tea.WithoutSignalHandler(),
	)
	require.NoError(t, err)
}

func TestRunStopsWhenContextIsCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := Run(ctx, sampleDocument(),
		tea.WithInput(strings.NewReader("")),
		tea.WithOutput(io.Discard),
		tea.WithoutSignalHandler(),
	)
	require.True(t, errors.Is(err, tea.ErrProgramKilled))
}
