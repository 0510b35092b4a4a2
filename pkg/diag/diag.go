// Package diag renders compilation failures for a terminal.
package diag

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"cern/pkg/compiler"
)

var (
	colorError = lipgloss.Color("#EF4444") // Red
	colorMuted = lipgloss.Color("#6B7280") // Gray
	colorFile  = lipgloss.Color("#06B6D4") // Cyan
)

// Printer writes diagnostics to w. Colors are only emitted when w is a
// terminal that supports them.
type Printer struct {
	w       io.Writer
	label   lipgloss.Style
	file    lipgloss.Style
	snippet lipgloss.Style
}

// NewPrinter returns a Printer for w, detecting its color support once.
func NewPrinter(w io.Writer) *Printer {
	r := lipgloss.NewRenderer(w)
	return &Printer{
		w:       w,
		label:   r.NewStyle().Foreground(colorError).Bold(true),
		file:    r.NewStyle().Foreground(colorFile),
		snippet: r.NewStyle().Foreground(colorMuted),
	}
}

// Print writes err. A *compiler.Diagnostic anywhere in the chain is shown as
//
//	file.ce:3: [Parse Error] missing expression (found '}') on line 3
//	  |> var x =
//
// Any other error is shown as "error: <message>".
func (p *Printer) Print(fileName string, err error) {
	var d *compiler.Diagnostic
	if !errors.As(err, &d) {
		fmt.Fprintf(p.w, "%s %v\n", p.label.Render("error:"), err)
		return
	}

	loc := fmt.Sprintf("line %d:", d.Line)
	if fileName != "" {
		loc = fmt.Sprintf("%s:%d:", fileName, d.Line)
	}
	fmt.Fprintf(p.w, "%s %s %s\n",
		p.file.Render(loc),
		p.label.Render("["+string(d.Stage)+"]"),
		fmt.Sprintf("%s on line %d", d.Message, d.Line))
	if d.Snippet != "" {
		fmt.Fprintln(p.w, p.snippet.Render("  |> "+d.Snippet))
	}
}
