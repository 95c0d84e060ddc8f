package render

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vango-dev/vtree/pkg/host"
)

var (
	tagStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#7D56F4"))

	classStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	styleHintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

// TerminalConfig configures the terminal renderer.
type TerminalConfig struct {
	// Indent is the string used for each nesting level. Defaults to two
	// spaces.
	Indent string

	// ShowStyle appends each element's style declarations to its line.
	ShowStyle bool
}

// Terminal draws host trees as an indented outline, one element per line.
// Text is coloured with the element's own color and background styles.
type Terminal struct {
	config TerminalConfig
}

// NewTerminal creates a Terminal with the given configuration.
func NewTerminal(config TerminalConfig) *Terminal {
	if config.Indent == "" {
		config.Indent = "  "
	}
	return &Terminal{config: config}
}

// Render returns the outline of the tree rooted at el.
func (t *Terminal) Render(el *host.Element) string {
	if el == nil {
		return ""
	}
	var lines []string
	t.renderElement(&lines, el, 0)
	return strings.Join(lines, "\n")
}

// RenderTerminal renders el with the default terminal configuration.
func RenderTerminal(el *host.Element) string {
	return NewTerminal(TerminalConfig{}).Render(el)
}

func (t *Terminal) renderElement(lines *[]string, el *host.Element, depth int) {
	var b strings.Builder
	b.WriteString(strings.Repeat(t.config.Indent, depth))
	b.WriteString(tagStyle.Render(el.Tag))
	if el.Class != "" {
		b.WriteString(classStyle.Render("." + strings.Join(strings.Fields(el.Class), ".")))
	}
	if el.Text != "" {
		b.WriteString("  ")
		b.WriteString(textStyle(el).Render(el.Text))
	}
	if t.config.ShowStyle && len(el.Style) > 0 {
		b.WriteString("  ")
		b.WriteString(styleHintStyle.Render("{" + styleString(el.Style) + "}"))
	}
	*lines = append(*lines, b.String())

	for _, child := range el.Children {
		t.renderElement(lines, child, depth+1)
	}
}

// textStyle maps an element's color and background styles onto a lipgloss
// style.
func textStyle(el *host.Element) lipgloss.Style {
	s := lipgloss.NewStyle()
	if v, ok := el.StyleValue("color"); ok && v != "" {
		s = s.Foreground(lipgloss.Color(v))
	}
	if v, ok := el.StyleValue("background"); ok && v != "" {
		s = s.Background(lipgloss.Color(v))
	} else if v, ok := el.StyleValue("background-color"); ok && v != "" {
		s = s.Background(lipgloss.Color(v))
	}
	if v, ok := el.StyleValue("font-weight"); ok && v == "bold" {
		s = s.Bold(true)
	}
	return s
}
