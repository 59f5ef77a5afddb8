package glint

import (
	"fmt"
	"sort"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// Span annotates a byte range of a Text's content with a style. Offsets
// must fall on rune boundaries and satisfy Start < End. Spans may overlap
// arbitrarily; overlap is resolved at render time, not at insertion time.
type Span struct {
	Start int
	End   int
	Style Style
}

// Text is a plain string plus an ordered list of style spans. Insertion
// order encodes application order: later-inserted spans win ties at equal
// ranges, matching nested-markup semantics where inner tags override outer
// tags.
type Text struct {
	content string
	spans   []Span
}

// NewText returns a Text holding plain unstyled content.
func NewText(content string) *Text {
	return &Text{content: content}
}

// NewStyledText returns a Text with one style applied to all of it.
func NewStyledText(content string, style Style) *Text {
	t := &Text{content: content}
	if !style.IsZero() && len(content) > 0 {
		t.spans = append(t.spans, Span{Start: 0, End: len(content), Style: style})
	}
	return t
}

// Plain returns the unstyled content.
func (t *Text) Plain() string { return t.content }

// Len returns the content length in bytes.
func (t *Text) Len() int { return len(t.content) }

// Spans returns a copy of the span list in insertion order.
func (t *Text) Spans() []Span {
	out := make([]Span, len(t.spans))
	copy(out, t.spans)
	return out
}

// Append adds plain content to the end of the text.
func (t *Text) Append(s string) {
	t.content += s
}

// AppendStyled adds content covered by one new span.
func (t *Text) AppendStyled(s string, style Style) {
	start := len(t.content)
	t.content += s
	if !style.IsZero() && len(s) > 0 {
		t.spans = append(t.spans, Span{Start: start, End: len(t.content), Style: style})
	}
}

// AppendText adds another text, shifting its spans onto this one.
func (t *Text) AppendText(other *Text) {
	offset := len(t.content)
	t.content += other.content
	for _, sp := range other.spans {
		t.spans = append(t.spans, Span{Start: sp.Start + offset, End: sp.End + offset, Style: sp.Style})
	}
}

// Stylize applies a style to the byte range [start, end). The range must
// be ordered, in bounds, and on rune boundaries.
func (t *Text) Stylize(start, end int, style Style) error {
	if start < 0 || end > len(t.content) || start >= end {
		return fmt.Errorf("%w: range [%d, %d) over %d bytes", ErrInvalidSpan, start, end, len(t.content))
	}
	if !t.runeBoundary(start) || !t.runeBoundary(end) {
		return fmt.Errorf("%w: range [%d, %d) splits a UTF-8 sequence", ErrInvalidSpan, start, end)
	}
	t.spans = append(t.spans, Span{Start: start, End: end, Style: style})
	return nil
}

func (t *Text) runeBoundary(off int) bool {
	if off == 0 || off == len(t.content) {
		return true
	}
	return utf8.RuneStart(t.content[off])
}

// Run is a maximal sub-range of text sharing one resolved effective style.
type Run struct {
	Text  string
	Style Style
}

// Width returns the run's display width in terminal columns.
func (r Run) Width() int {
	return displayWidth(r.Text)
}

// Resolve flattens overlapping spans into the ordered run list: for each
// maximal range of offsets covered by an identical span set, the effective
// style is the zero style combined with every covering span in insertion
// order. Boundaries fall only on span starts and ends, so resolution cost
// scales with the span count, not the content length. Empty content
// resolves to no runs.
func (t *Text) Resolve() []Run {
	var runs []Run
	for _, rr := range t.resolve() {
		runs = append(runs, Run{Text: t.content[rr.start:rr.end], Style: rr.style})
	}
	return runs
}

// StyleAt returns the effective style at a byte offset.
func (t *Text) StyleAt(offset int) Style {
	var style Style
	for _, sp := range t.spans {
		if sp.Start <= offset && offset < sp.End {
			style = style.Combine(sp.Style)
		}
	}
	return style
}

// resolvedRun keeps byte offsets alongside the style so wrapping can slice
// runs at arbitrary break points.
type resolvedRun struct {
	start, end int
	style      Style
}

func (t *Text) resolve() []resolvedRun {
	if len(t.content) == 0 {
		return nil
	}

	bounds := make([]int, 0, 2*len(t.spans)+2)
	bounds = append(bounds, 0, len(t.content))
	for _, sp := range t.spans {
		bounds = append(bounds, clamp(sp.Start, 0, len(t.content)), clamp(sp.End, 0, len(t.content)))
	}
	sort.Ints(bounds)

	var runs []resolvedRun
	for i := 0; i+1 < len(bounds); i++ {
		a, b := bounds[i], bounds[i+1]
		if a == b {
			continue
		}
		var style Style
		for _, sp := range t.spans {
			if sp.Start <= a && b <= sp.End {
				style = style.Combine(sp.Style)
			}
		}
		runs = append(runs, resolvedRun{start: a, end: b, style: style})
	}
	return runs
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Truncate returns a copy cut to at most width display columns, never
// splitting a grapheme cluster. When the content is cut and a suffix is
// given, the suffix is appended unstyled and its width reserved.
func (t *Text) Truncate(width int, suffix string) *Text {
	if displayWidth(t.content) <= width {
		out := &Text{content: t.content}
		out.spans = append(out.spans, t.spans...)
		return out
	}

	target := width - displayWidth(suffix)
	cut := 0
	w := 0
	g := uniseg.NewGraphemes(t.content)
	for g.Next() {
		cw := runewidth.StringWidth(g.Str())
		if w+cw > target {
			break
		}
		w += cw
		_, cut = g.Positions()
	}

	out := &Text{content: t.content[:cut]}
	for _, sp := range t.spans {
		if sp.Start >= cut {
			continue
		}
		end := sp.End
		if end > cut {
			end = cut
		}
		out.spans = append(out.spans, Span{Start: sp.Start, End: end, Style: sp.Style})
	}
	out.Append(suffix)
	return out
}
