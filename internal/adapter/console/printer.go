package console

import (
	"io"

	"github.com/fatih/color"
)

// Printer writes user facing messages: progress notes in green, results in
// blue, failures in bold red.
type Printer struct {
	w      io.Writer
	note   *color.Color
	result *color.Color
	fail   *color.Color
}

func NewPrinter(w io.Writer) *Printer {
	return &Printer{
		w:      w,
		note:   color.New(color.FgGreen),
		result: color.New(color.FgBlue),
		fail:   color.New(color.FgRed, color.Bold),
	}
}

func (p *Printer) Note(msg string) {
	p.note.Fprintln(p.w, msg)
}

func (p *Printer) Result(msg string) {
	p.result.Fprintln(p.w, msg)
}

func (p *Printer) Error(msg string) {
	p.fail.Fprintln(p.w, msg)
}
