package glint

import (
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// displayWidth sums per-grapheme-cluster display widths: combining and
// zero-width clusters contribute 0 columns, narrow clusters 1, and wide
// clusters (most CJK ideographs, emoji) 2.
func displayWidth(s string) int {
	w := 0
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		w += runewidth.StringWidth(g.Str())
	}
	return w
}

// CellWidth returns the display width of a string in terminal columns.
func CellWidth(s string) int {
	return displayWidth(s)
}

// MaxLineWidth returns the widest line of a multi-line string.
func MaxLineWidth(s string) int {
	max := 0
	for _, line := range strings.Split(s, "\n") {
		if w := displayWidth(line); w > max {
			max = w
		}
	}
	return max
}

// MinWidth returns the narrowest width the string can wrap into without
// hard-breaking a token: the width of its widest whitespace-separated token.
func MinWidth(s string) int {
	max := 0
	for _, tok := range strings.Fields(s) {
		if w := displayWidth(tok); w > max {
			max = w
		}
	}
	return max
}

// Measurement is the width range a piece of content can render into.
type Measurement struct {
	// Minimum is the narrowest width that avoids hard token breaks.
	Minimum int
	// Maximum is the preferred width: the widest unwrapped line.
	Maximum int
}

// Measure returns the measurement of a Text's content.
func Measure(t *Text) Measurement {
	return Measurement{Minimum: MinWidth(t.Plain()), Maximum: MaxLineWidth(t.Plain())}
}

// Union widens the measurement to cover another.
func (m Measurement) Union(other Measurement) Measurement {
	if other.Minimum > m.Minimum {
		m.Minimum = other.Minimum
	}
	if other.Maximum > m.Maximum {
		m.Maximum = other.Maximum
	}
	return m
}

// ClampMax caps the measurement at a maximum width.
func (m Measurement) ClampMax(width int) Measurement {
	if m.Maximum > width {
		m.Maximum = width
	}
	if m.Minimum > m.Maximum {
		m.Minimum = m.Maximum
	}
	return m
}

// ExpandMin raises the minimum to at least the given width.
func (m Measurement) ExpandMin(width int) Measurement {
	if m.Minimum < width {
		m.Minimum = width
	}
	if m.Maximum < m.Minimum {
		m.Maximum = m.Minimum
	}
	return m
}
