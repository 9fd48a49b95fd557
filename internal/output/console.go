package output

import (
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// RuleWidth is the width of the '=' rules framing the analysis.
const RuleWidth = 80

// Console prints run progress and the analysis for a person to read. Styles
// degrade to plain text when out is not a color terminal.
type Console struct {
	out    io.Writer
	title  lipgloss.Style
	muted  lipgloss.Style
	rule   lipgloss.Style
	ok     lipgloss.Style
	errSty lipgloss.Style
}

// NewConsole creates a Console writing to out.
func NewConsole(out io.Writer) *Console {
	r := lipgloss.NewRenderer(out)
	return &Console{
		out:    out,
		title:  r.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		muted:  r.NewStyle().Foreground(lipgloss.Color("245")),
		rule:   r.NewStyle().Foreground(lipgloss.Color("245")),
		ok:     r.NewStyle().Foreground(lipgloss.Color("42")),
		errSty: r.NewStyle().Foreground(lipgloss.Color("196")),
	}
}

// Banner introduces the tool.
func (c *Console) Banner() error {
	ew := &errWriter{w: c.out}
	ew.println(c.title.Render("Project Analyzer"))
	ew.println(c.title.Render(strings.Repeat("=", 15)))
	ew.println("This tool will analyze your project structure and get architectural insights from Claude AI.")
	return ew.err
}

// Analyzing announces the project root.
func (c *Console) Analyzing(root string) error {
	ew := &errWriter{w: c.out}
	ew.printf("\nAnalyzing project at: %s\n", root)
	return ew.err
}

// Info prints a secondary line.
func (c *Console) Info(msg string) error {
	ew := &errWriter{w: c.out}
	ew.println(c.muted.Render(msg))
	return ew.err
}

// Analysis prints the analysis between two rules.
func (c *Console) Analysis(text string, failed bool) error {
	ew := &errWriter{w: c.out}
	rule := c.rule.Render(strings.Repeat("=", RuleWidth))
	ew.println("\n" + c.title.Render("Claude's Analysis:"))
	ew.println(rule)
	if failed {
		ew.println(c.errSty.Render(text))
	} else {
		ew.println(text)
	}
	ew.println(rule)
	return ew.err
}

// Saved reports where a file was written.
func (c *Console) Saved(what, path string) error {
	ew := &errWriter{w: c.out}
	ew.printf("\n%s saved to: %s\n", what, c.ok.Render(path))
	return ew.err
}
