// Package ui styles picograd CLI output for the terminal.
package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// Palette.
var (
	ColorTitle = lipgloss.Color("#2CD7C7")
	ColorOK    = lipgloss.Color("#2CD7C7")
	ColorFail  = lipgloss.Color("#E74C3C")
	ColorMuted = lipgloss.Color("#6C8A94")
)

// Printer writes optionally styled lines to w.
type Printer struct {
	w     io.Writer
	color bool

	title lipgloss.Style
	ok    lipgloss.Style
	fail  lipgloss.Style
	muted lipgloss.Style
	box   lipgloss.Style
}

// UseColor resolves a color mode (auto, always, never) for w. auto colors
// only when w is a terminal.
func UseColor(mode string, w io.Writer) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// NewPrinter returns a Printer for w. Without color text is written as is.
func NewPrinter(w io.Writer, color bool) *Printer {
	return &Printer{
		w:     w,
		color: color,
		title: lipgloss.NewStyle().Bold(true).Foreground(ColorTitle),
		ok:    lipgloss.NewStyle().Foreground(ColorOK),
		fail:  lipgloss.NewStyle().Bold(true).Foreground(ColorFail),
		muted: lipgloss.NewStyle().Foreground(ColorMuted),
		box:   lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(ColorMuted).Padding(0, 1),
	}
}

func (p *Printer) render(style lipgloss.Style, s string) string {
	if !p.color {
		return s
	}
	return style.Render(s)
}

// Title writes a heading line.
func (p *Printer) Title(format string, args ...any) {
	fmt.Fprintln(p.w, p.render(p.title, fmt.Sprintf(format, args...)))
}

// Muted writes a de-emphasized line.
func (p *Printer) Muted(format string, args ...any) {
	fmt.Fprintln(p.w, p.render(p.muted, fmt.Sprintf(format, args...)))
}

// Status writes an indented line prefixed with a pass or fail marker.
func (p *Printer) Status(pass bool, format string, args ...any) {
	mark := p.render(p.ok, "ok  ")
	if !pass {
		mark = p.render(p.fail, "FAIL")
	}
	fmt.Fprintf(p.w, "  %s %s\n", mark, fmt.Sprintf(format, args...))
}

// Block writes preformatted text, boxed when color is on.
func (p *Printer) Block(text string) {
	if !p.color {
		fmt.Fprint(p.w, text)
		return
	}
	fmt.Fprintln(p.w, p.box.Render(text))
}
