package glint

import (
	"io"
	"strings"
)

// Segment is the atomic (text, style) unit handed to escape-sequence
// emission. Segment styles are already downsampled to the render's color
// system.
type Segment struct {
	Text  string
	Style Style
}

// EmitPolicy selects how style transitions become escape codes. Both
// policies produce visually identical output; they differ only in how many
// bytes they spend doing it.
type EmitPolicy uint8

const (
	// EmitMinimal emits only the SGR codes that changed versus the
	// previously emitted segment, and a single reset when transitioning to
	// the zero style.
	EmitMinimal EmitPolicy = iota
	// EmitFullReset emits a full reset followed by the complete style
	// before every styled segment. Used as the reference policy in
	// equivalence tests.
	EmitFullReset
)

// LineSegments coalesces a line's runs into segments: styles are
// downsampled to the target color system first, then adjacent runs whose
// normalized styles are identical merge into one segment.
func LineSegments(l Line, system ColorSystem) []Segment {
	var segs []Segment
	for _, r := range l.Runs {
		style := r.Style.normalized(system)
		if n := len(segs); n > 0 && segs[n-1].Style == style {
			segs[n-1].Text += r.Text
			continue
		}
		segs = append(segs, Segment{Text: r.Text, Style: style})
	}
	return segs
}

// Emitter converts segments to SGR escape sequences, tracking the
// previously emitted style so repeated codes are elided. The tracker is
// the only mutable state in the render pipeline; create one Emitter per
// top-level render call (or call Reset between calls) and do not share it
// across goroutines.
type Emitter struct {
	system ColorSystem
	policy EmitPolicy
	prev   Style
}

// NewEmitter returns an emitter targeting the given color system. The
// system should come from the terminal's capability query, made once per
// render.
func NewEmitter(system ColorSystem, policy EmitPolicy) *Emitter {
	return &Emitter{system: system, policy: policy}
}

// Reset clears the previous-style tracker, as at the start of a top-level
// render call.
func (e *Emitter) Reset() {
	e.prev = Style{}
}

// EmitLine writes one wrapped line's segments to w, leaving the terminal
// in the default style afterwards so styling never bleeds across lines.
// No trailing newline is written.
func (e *Emitter) EmitLine(w io.Writer, l Line) error {
	var b strings.Builder
	for _, seg := range LineSegments(l, e.system) {
		b.WriteString(e.transition(seg.Style))
		b.WriteString(seg.Text)
	}
	b.WriteString(e.transition(Style{}))
	_, err := io.WriteString(w, b.String())
	return err
}

// EmitFrame writes a frame's lines joined by newlines, with a trailing
// newline after the last line.
func (e *Emitter) EmitFrame(w io.Writer, f Frame) error {
	for _, l := range f.Lines {
		if err := e.EmitLine(w, l); err != nil {
			return err
		}
		if _, err := io.WriteString(w, "\n"); err != nil {
			return err
		}
	}
	return nil
}

// transition returns the escape sequence moving the stream from the
// previously emitted style to next, and records next as current.
func (e *Emitter) transition(next Style) string {
	prev := e.prev
	e.prev = next

	if e.policy == EmitFullReset {
		if next.IsZero() {
			if prev.IsZero() {
				return ""
			}
			return sgr([]string{"0"})
		}
		return sgr(append([]string{"0"}, next.sgrParams()...))
	}

	if next == prev {
		return ""
	}
	if next.IsZero() {
		return sgr([]string{"0"})
	}

	// Anything that must be turned off forces a reset first, since SGR
	// disable codes vary in terminal support and a reset is always safe.
	needReset := prev.attrs&^next.attrs != 0 ||
		(prev.fgSet && !next.fgSet) ||
		(prev.bgSet && !next.bgSet)

	var params []string
	if needReset {
		params = append(params, "0")
		prev = Style{}
	}
	for _, ac := range attrCodes {
		if next.attrs.Has(ac.attr) && !prev.attrs.Has(ac.attr) {
			params = append(params, ac.code)
		}
	}
	if next.fgSet && (!prev.fgSet || next.fg != prev.fg) {
		params = append(params, next.fg.fgParams()...)
	}
	if next.bgSet && (!prev.bgSet || next.bg != prev.bg) {
		params = append(params, next.bg.bgParams()...)
	}
	if len(params) == 0 {
		return ""
	}
	return sgr(params)
}

func sgr(params []string) string {
	return "\x1b[" + strings.Join(params, ";") + "m"
}

// RenderMarkup is the one-call path from markup to escape-coded bytes:
// parse, wrap, emit. Width applies per the wrapping rules in Wrap.
func RenderMarkup(w io.Writer, markup string, width int, system ColorSystem) error {
	t, err := ParseMarkup(markup)
	if err != nil {
		return err
	}
	frame, err := WrapFrame(t, width)
	if err != nil {
		return err
	}
	return NewEmitter(system, EmitMinimal).EmitFrame(w, frame)
}
