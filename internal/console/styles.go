// Package console renders the command-line output of fractalgen: status
// lines, the selection summary and the render progress bar.
package console

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Colours
var (
	accentFg  = lipgloss.Color("#7C3AED")
	successFg = lipgloss.Color("#10B981")
	warnFg    = lipgloss.Color("#F59E0B")
	errorFg   = lipgloss.Color("#EF4444")
	dimFg     = lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#9CA3AF"}
	borderCol = lipgloss.Color("#243141")
)

// Printer writes styled status lines. Info and summary output is dropped
// when the printer is quiet; warnings and errors are always written.
type Printer struct {
	out   io.Writer
	quiet bool

	title   lipgloss.Style
	key     lipgloss.Style
	dim     lipgloss.Style
	success lipgloss.Style
	warn    lipgloss.Style
	err     lipgloss.Style
	box     lipgloss.Style
}

// NewPrinter returns a Printer writing to out. Colours are chosen for out's
// terminal capabilities and disabled when out is not a terminal.
func NewPrinter(out io.Writer, quiet bool) *Printer {
	r := lipgloss.NewRenderer(out)
	return &Printer{
		out:     out,
		quiet:   quiet,
		title:   r.NewStyle().Foreground(accentFg).Bold(true),
		key:     r.NewStyle().Foreground(accentFg),
		dim:     r.NewStyle().Foreground(dimFg),
		success: r.NewStyle().Foreground(successFg).Bold(true),
		warn:    r.NewStyle().Foreground(warnFg).Bold(true),
		err:     r.NewStyle().Foreground(errorFg).Bold(true),
		box:     r.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(borderCol).Padding(0, 1),
	}
}

// Quiet reports whether informational output is suppressed.
func (p *Printer) Quiet() bool { return p.quiet }

// Infof prints a dimmed informational line.
func (p *Printer) Infof(format string, args ...any) {
	if p.quiet {
		return
	}
	fmt.Fprintln(p.out, p.dim.Render(fmt.Sprintf(format, args...)))
}

// Successf prints a highlighted completion line.
func (p *Printer) Successf(format string, args ...any) {
	if p.quiet {
		return
	}
	fmt.Fprintln(p.out, p.success.Render("✓ ")+fmt.Sprintf(format, args...))
}

// Warnf prints a warning line.
func (p *Printer) Warnf(format string, args ...any) {
	fmt.Fprintln(p.out, p.warn.Render("warning: ")+fmt.Sprintf(format, args...))
}

// Errorf prints an error line.
func (p *Printer) Errorf(format string, args ...any) {
	fmt.Fprintln(p.out, p.err.Render("error: ")+fmt.Sprintf(format, args...))
}

// Field is one row of a summary box.
type Field struct {
	Name  string
	Value string
}

// Summary prints fields as an aligned key/value table inside a box.
func (p *Printer) Summary(title string, fields []Field) {
	if p.quiet {
		return
	}
	width := 0
	for _, f := range fields {
		width = max(width, len(f.Name))
	}

	lines := make([]string, 0, len(fields)+1)
	lines = append(lines, p.title.Render(title))
	for _, f := range fields {
		name := f.Name + strings.Repeat(" ", width-len(f.Name))
		lines = append(lines, p.key.Render(name)+"  "+f.Value)
	}
	fmt.Fprintln(p.out, p.box.Render(strings.Join(lines, "\n")))
}
