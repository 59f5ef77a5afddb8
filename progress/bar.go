package progress

import (
	"strings"

	"github.com/tomfleet/glint"
)

const barRune = "━"

// Bar renders a determinate task's completion as a solid horizontal bar,
// the finished portion in one style and the rest in another.
type Bar struct {
	Complete  glint.Style
	Remaining glint.Style
}

// DefaultBar styles the finished portion green and the rest bright black.
func DefaultBar() Bar {
	return Bar{
		Complete:  mustStyle("green"),
		Remaining: mustStyle("bright_black"),
	}
}

// Render produces a bar of exactly width cells for the given completion
// fraction, clamped to [0, 1].
func (b Bar) Render(fraction float64, width int) *glint.Text {
	if width < 1 {
		return glint.NewText("")
	}
	if fraction < 0 {
		fraction = 0
	}
	if fraction > 1 {
		fraction = 1
	}
	filled := int(fraction * float64(width))

	t := glint.NewText("")
	if filled > 0 {
		t.AppendStyled(strings.Repeat(barRune, filled), b.Complete)
	}
	if filled < width {
		t.AppendStyled(strings.Repeat(barRune, width-filled), b.Remaining)
	}
	return t
}

func mustStyle(s string) glint.Style {
	st, err := glint.ParseStyle(s)
	if err != nil {
		panic(err)
	}
	return st
}
