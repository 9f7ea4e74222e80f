package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/pmehra7/summingbird/internal/render"
)

// View renders the current model state.
func (m Model) View() string {
	switch m.viewMode {
	case ViewDetail:
		return m.renderDetailView()
	case ViewHelp:
		return m.renderHelpView()
	default:
		return m.renderListView()
	}
}

func (m Model) renderHeader() string {
	title := titleStyle.Render(fmt.Sprintf("Summingbird • %s", m.title()))
	summary := mutedStyle.Render(fmt.Sprintf("%d stages, %d operators, fingerprint %s",
		m.doc.StageCount, m.operators, m.doc.Fingerprint))
	return lipgloss.JoinVertical(lipgloss.Left, title, summary)
}

func (m Model) title() string {
	if strings.TrimSpace(m.doc.Name) != "" {
		return m.doc.Name
	}
	return "Plan"
}

func (m Model) renderListView() string {
	var content strings.Builder
	content.WriteString(m.renderHeader())
	content.WriteString("\n\n")

	if len(m.doc.Stages) == 0 {
		content.WriteString(mutedStyle.Render("No stages."))
	}
	for i, stage := range m.doc.Stages {
		line := fmt.Sprintf("%-12s %s  %d member(s)", stage.Name, kindStyle(stage.Kind).Render(fmt.Sprintf("%-9s", stage.Kind)), len(stage.Members))
		if i == m.cursor {
			content.WriteString(selectedStyle.Render("> " + line))
		} else {
			content.WriteString("  " + line)
		}
		content.WriteString("\n")
	}

	if len(m.doc.Unreachable) > 0 {
		content.WriteString(sectionStyle.Render("Unreachable"))
		content.WriteString("\n")
		content.WriteString(mutedStyle.Render(strings.Join(m.doc.Unreachable, ", ")))
		content.WriteString("\n")
	}

	content.WriteString(footerStyle.Render(m.help.ShortHelpView(m.keys.ShortHelp())))
	return content.String()
}

func (m Model) renderDetailView() string {
	stage, ok := m.Selected()
	if !ok {
		return m.renderListView()
	}

	var content strings.Builder
	content.WriteString(titleStyle.Render(fmt.Sprintf("%s (%s)", stage.Name, stage.Kind)))
	content.WriteString("\n")

	share := 0.0
	if m.operators > 0 {
		share = float64(len(stage.Members)) / float64(m.operators)
	}
	content.WriteString(fmt.Sprintf("%s %d/%d operators\n", m.bar.ViewAs(share), len(stage.Members), m.operators))

	content.WriteString(sectionStyle.Render("Members"))
	content.WriteString("\n")
	for i, member := range stage.Members {
		content.WriteString(fmt.Sprintf("  %d. %s\n", i+1, render.DescribeMember(member)))
	}

	content.WriteString(sectionStyle.Render("Reads from"))
	content.WriteString("\n")
	content.WriteString(stageList(stage.DependsOn, "external input"))

	content.WriteString(sectionStyle.Render("Feeds"))
	content.WriteString("\n")
	content.WriteString(stageList(stage.Feeds, "plan output"))

	content.WriteString(footerStyle.Render(m.help.ShortHelpView([]key.Binding{m.keys.Up, m.keys.Down, m.keys.Back, m.keys.Help, m.keys.Quit})))
	return content.String()
}

func stageList(names []string, empty string) string {
	if len(names) == 0 {
		return "  " + mutedStyle.Render(empty) + "\n"
	}
	var b strings.Builder
	for _, name := range names {
		b.WriteString("  " + name + "\n")
	}
	return b.String()
}

func (m Model) renderHelpView() string {
	var content strings.Builder
	content.WriteString(titleStyle.Render("Keyboard shortcuts"))
	content.WriteString("\n")
	content.WriteString(m.help.FullHelpView(m.keys.FullHelp()))
	content.WriteString("\n")
	content.WriteString(footerStyle.Render(mutedStyle.Render("Press ? or esc to return")))
	return content.String()
}
