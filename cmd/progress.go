package cmd

import (
	"fmt"
	"io"
	"strings"
)

const progressWidth = 30

// progressPrinter renders stage-weighted progress as a single rewritten line
type progressPrinter struct {
	w     io.Writer
	label string
	last  int
}

func newProgressPrinter(w io.Writer, label string) *progressPrinter {
	return &progressPrinter{w: w, label: label, last: -1}
}

// Update receives fractions in [0,1]; repeated percentages are not redrawn
func (p *progressPrinter) Update(f float64) {
	pct := int(f*100 + 0.5)
	if pct == p.last {
		return
	}
	p.last = pct
	filled := pct * progressWidth / 100
	fmt.Fprintf(p.w, "\r%s [%s%s] %3d%%", p.label, strings.Repeat("#", filled), strings.Repeat(" ", progressWidth-filled), pct)
}

// Done ends the progress line
func (p *progressPrinter) Done() {
	if p.last >= 0 {
		fmt.Fprintln(p.w)
	}
}
