package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// TextOptions controls the human-readable output.
type TextOptions struct {
	// Color enables lipgloss styling. Callers usually set it when the
	// destination is a terminal.
	Color bool
}

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	stageStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	sourceStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	summerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
)

type painter struct {
	color bool
}

func (p painter) paint(style lipgloss.Style, s string) string {
	if !p.color {
		return s
	}
	return style.Render(s)
}

func (p painter) kind(kind string) string {
	switch kind {
	case "source":
		return p.paint(sourceStyle, kind)
	case "aggregate":
		return p.paint(summerStyle, kind)
	default:
		return p.paint(mutedStyle, kind)
	}
}

// Text writes doc as an indented stage listing.
func Text(w io.Writer, doc Document, opts TextOptions) error {
	p := painter{color: opts.Color}
	var b strings.Builder

	fmt.Fprintf(&b, "%s %s\n", p.paint(titleStyle, "Plan"), doc.Name)
	fmt.Fprintf(&b, "  terminal: %s\n", doc.Terminal)
	fmt.Fprintf(&b, "  stages: %d\n", doc.StageCount)
	fmt.Fprintf(&b, "  fingerprint: %s\n", p.paint(mutedStyle, doc.Fingerprint))

	for _, stage := range doc.Stages {
		fmt.Fprintf(&b, "\n%s (%s)\n", p.paint(stageStyle, stage.Name), p.kind(stage.Kind))
		for i, m := range stage.Members {
			fmt.Fprintf(&b, "  %d. %s\n", i+1, DescribeMember(m))
		}
		if len(stage.DependsOn) > 0 {
			fmt.Fprintf(&b, "  %s %s\n", p.paint(mutedStyle, "reads from:"), strings.Join(stage.DependsOn, ", "))
		}
		if len(stage.Feeds) > 0 {
			fmt.Fprintf(&b, "  %s %s\n", p.paint(mutedStyle, "feeds:"), strings.Join(stage.Feeds, ", "))
		}
	}

	if len(doc.Unreachable) > 0 {
		fmt.Fprintf(&b, "\n%s %s\n", p.paint(warningStyle, "unreachable:"), strings.Join(doc.Unreachable, ", "))
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// DescribeMember renders a member as "label type[/kind] [store=x]".
func DescribeMember(m MemberDoc) string {
	label := m.label()
	if m.ID != "" && m.Name != m.ID {
		label = fmt.Sprintf("%s (%s)", m.ID, m.Name)
	}

	kind := m.Type
	if m.Kind != "" {
		kind += "/" + m.Kind
	}

	out := fmt.Sprintf("%s %s", label, kind)
	if m.Store != "" {
		out += " store=" + m.Store
	}
	return out
}
