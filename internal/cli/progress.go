package cli

import (
	"io"

	"github.com/schollz/progressbar/v3"
)

// progressBar reports per-horse form fetching on a terminal
type progressBar struct {
	w   io.Writer
	bar *progressbar.ProgressBar
}

func newProgressBar(w io.Writer) *progressBar {
	return &progressBar{w: w}
}

func (p *progressBar) Start(total int) {
	p.bar = progressbar.NewOptions(total,
		progressbar.OptionSetWriter(p.w),
		progressbar.OptionSetDescription("Fetching form"),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(30),
		progressbar.OptionClearOnFinish(),
	)
}

func (p *progressBar) Advance(horse string) {
	if p.bar == nil {
		return
	}
	p.bar.Describe(horse)
	_ = p.bar.Add(1)
}

func (p *progressBar) Finish() {
	if p.bar == nil {
		return
	}
	_ = p.bar.Finish()
	p.bar = nil
}
