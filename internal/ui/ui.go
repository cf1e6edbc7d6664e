// Package ui prints the human-facing report of a command.
package ui

import (
	"fmt"
	"io"
	"os"
)

var (
	// ANSI Colors
	ColorReset  = "\033[0m"
	ColorRed    = "\033[31m"
	ColorGreen  = "\033[32m"
	ColorYellow = "\033[33m"
	ColorBold   = "\033[1m"
)

// Printer writes status lines to w, coloured when enabled.
type Printer struct {
	w     io.Writer
	color bool
}

// New returns a Printer writing to w.
func New(w io.Writer, color bool) *Printer {
	return &Printer{w: w, color: color}
}

// ColorEnabled reports whether w should receive ANSI colours: only the
// process stdout or stderr, and only when NO_COLOR is unset.
func ColorEnabled(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && (f == os.Stdout || f == os.Stderr) && os.Getenv("NO_COLOR") == ""
}

func (p *Printer) paint(color, s string) string {
	if !p.color {
		return s
	}
	return color + s + ColorReset
}

// Header prints a bold section title.
func (p *Printer) Header(msg string) {
	fmt.Fprintf(p.w, "\n%s\n", p.paint(ColorBold, msg))
}

// Success prints a ticked label/detail line.
func (p *Printer) Success(label, detail string) {
	p.line(ColorGreen, "✔", label, detail)
}

// Error prints a crossed label/detail line.
func (p *Printer) Error(label, detail string) {
	p.line(ColorRed, "✘", label, detail)
}

// Warning prints a flagged label/detail line.
func (p *Printer) Warning(label, detail string) {
	p.line(ColorYellow, "!", label, detail)
}

func (p *Printer) line(color, mark, label, detail string) {
	fmt.Fprintf(p.w, "  %s %-15s %s\n", p.paint(color, mark), label, p.paint(color, detail))
}
