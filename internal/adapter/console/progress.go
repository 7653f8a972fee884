package console

import (
	"fmt"
	"io"

	"github.com/schollz/progressbar/v3"
)

// ProgressBar reports batch progress on a terminal. When disabled every
// method is a no-op.
type ProgressBar struct {
	w       io.Writer
	enabled bool
	bar     *progressbar.ProgressBar
}

func NewProgressBar(w io.Writer, enabled bool) *ProgressBar {
	return &ProgressBar{w: w, enabled: enabled}
}

func (p *ProgressBar) Start(total int, description string) {
	if !p.enabled {
		return
	}
	p.bar = progressbar.NewOptions(total,
		progressbar.OptionSetWriter(p.w),
		progressbar.OptionSetDescription(description),
		progressbar.OptionShowCount(),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
		progressbar.OptionOnCompletion(func() { fmt.Fprintln(p.w) }),
	)
}

func (p *ProgressBar) Advance() {
	if p.bar == nil {
		return
	}
	p.bar.Add(1)
}

func (p *ProgressBar) Finish() {
	if p.bar == nil {
		return
	}
	p.bar.Finish()
	p.bar = nil
}
