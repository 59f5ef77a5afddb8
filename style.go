package glint

import (
	"fmt"
	"strings"
)

// Attribute is a bitset of text attributes.
type Attribute uint8

const (
	// AttrBold renders bold/bright text (SGR 1).
	AttrBold Attribute = 1 << iota
	// AttrDim renders faint text (SGR 2).
	AttrDim
	// AttrItalic renders italic text (SGR 3).
	AttrItalic
	// AttrUnderline renders underlined text (SGR 4).
	AttrUnderline
	// AttrBlink renders blinking text (SGR 5).
	AttrBlink
	// AttrReverse swaps foreground and background (SGR 7).
	AttrReverse
	// AttrConceal hides text (SGR 8).
	AttrConceal
	// AttrStrike renders struck-through text (SGR 9).
	AttrStrike
)

// attrCodes lists attributes in SGR code order for deterministic emission.
var attrCodes = []struct {
	attr Attribute
	code string
	name string
}{
	{AttrBold, "1", "bold"},
	{AttrDim, "2", "dim"},
	{AttrItalic, "3", "italic"},
	{AttrUnderline, "4", "underline"},
	{AttrBlink, "5", "blink"},
	{AttrReverse, "7", "reverse"},
	{AttrConceal, "8", "conceal"},
	{AttrStrike, "9", "strike"},
}

// Has reports whether the set contains attr.
func (a Attribute) Has(attr Attribute) bool {
	return a&attr != 0
}

// Style is an immutable set of foreground color, background color, and
// attribute flags. The zero value carries nothing and leaves the terminal
// untouched. New styles are produced by the With* builders and by Combine,
// never by mutation.
type Style struct {
	fg, bg       Color
	fgSet, bgSet bool
	attrs        Attribute
	// reset marks a style parsed from "none"/"default": when combined as
	// an overlay it clears accumulated attributes before the union.
	reset bool
}

// NewStyle returns the zero style.
func NewStyle() Style {
	return Style{}
}

// WithForeground returns a copy with the foreground color set.
func (s Style) WithForeground(c Color) Style {
	s.fg, s.fgSet = c, true
	return s
}

// WithBackground returns a copy with the background color set.
func (s Style) WithBackground(c Color) Style {
	s.bg, s.bgSet = c, true
	return s
}

// WithAttrs returns a copy with the given attributes added.
func (s Style) WithAttrs(attrs Attribute) Style {
	s.attrs |= attrs
	return s
}

// Bold returns a copy with the bold attribute added.
func (s Style) Bold() Style { return s.WithAttrs(AttrBold) }

// Dim returns a copy with the dim attribute added.
func (s Style) Dim() Style { return s.WithAttrs(AttrDim) }

// Italic returns a copy with the italic attribute added.
func (s Style) Italic() Style { return s.WithAttrs(AttrItalic) }

// Underline returns a copy with the underline attribute added.
func (s Style) Underline() Style { return s.WithAttrs(AttrUnderline) }

// Foreground returns the foreground color and whether one is set.
func (s Style) Foreground() (Color, bool) { return s.fg, s.fgSet }

// Background returns the background color and whether one is set.
func (s Style) Background() (Color, bool) { return s.bg, s.bgSet }

// Attrs returns the attribute set.
func (s Style) Attrs() Attribute { return s.attrs }

// IsZero reports whether the style carries no colors, attributes, or
// reset marker.
func (s Style) IsZero() bool {
	return s == Style{}
}

// Combine overlays another style on top of this one. Colors present in the
// overlay replace the base colors; attributes are unioned unless the
// overlay carries a reset marker, which clears the accumulated attributes
// first. This asymmetric rule is what gives nested markup its inheritance
// semantics.
func (s Style) Combine(overlay Style) Style {
	out := s
	if overlay.fgSet {
		out.fg, out.fgSet = overlay.fg, true
	}
	if overlay.bgSet {
		out.bg, out.bgSet = overlay.bg, true
	}
	if overlay.reset {
		out.attrs = 0
	}
	out.attrs |= overlay.attrs
	out.reset = s.reset || overlay.reset
	return out
}

// attrTokens maps style-string tokens to attributes. Single-letter aliases
// match the original markup dialect.
var attrTokens = map[string]Attribute{
	"bold": AttrBold, "b": AttrBold,
	"dim": AttrDim, "d": AttrDim,
	"italic": AttrItalic, "i": AttrItalic,
	"underline": AttrUnderline, "u": AttrUnderline,
	"blink":   AttrBlink,
	"reverse": AttrReverse, "r": AttrReverse,
	"conceal": AttrConceal,
	"strike":  AttrStrike, "s": AttrStrike,
}

// ParseStyle parses a whitespace-separated style string such as
// "bold red on white". Tokens are attribute names, color tokens (see
// ParseColor), an "on <color>" pair selecting the background, and the
// literals "none"/"default" which reset accumulated attributes when the
// parsed style is later combined. Unknown tokens fail with
// ErrInvalidStyleToken.
func ParseStyle(s string) (Style, error) {
	var style Style

	tokens := splitStyleTokens(s)
	expectBG := false
	for _, tok := range tokens {
		lower := strings.ToLower(tok)

		if expectBG {
			c, err := ParseColor(lower)
			if err != nil {
				return Style{}, err
			}
			style = style.WithBackground(c)
			expectBG = false
			continue
		}

		if lower == "on" {
			expectBG = true
			continue
		}
		if lower == "none" || lower == "default" {
			style.reset = true
			continue
		}
		if attr, ok := attrTokens[lower]; ok {
			style.attrs |= attr
			continue
		}

		c, err := ParseColor(lower)
		if err != nil {
			// Color-shaped tokens surface the color error; bare words are
			// unknown style tokens.
			if looksLikeColor(lower) {
				return Style{}, err
			}
			return Style{}, fmt.Errorf("%w: %q", ErrInvalidStyleToken, tok)
		}
		style = style.WithForeground(c)
	}

	if expectBG {
		return Style{}, fmt.Errorf("%w: %q ('on' must be followed by a color)", ErrInvalidStyleToken, "on")
	}
	return style, nil
}

// looksLikeColor reports whether a token uses one of the explicit color
// literal forms, so that range errors inside them surface as ErrInvalidColor.
func looksLikeColor(tok string) bool {
	return strings.HasPrefix(tok, "#") ||
		strings.HasPrefix(tok, "color(") ||
		strings.HasPrefix(tok, "rgb(")
}

// splitStyleTokens splits on whitespace but keeps parenthesized forms like
// "rgb(1, 2, 3)" together as a single token.
func splitStyleTokens(s string) []string {
	var tokens []string
	rest := strings.TrimSpace(s)
	for rest != "" {
		if strings.HasPrefix(rest, "rgb(") || strings.HasPrefix(rest, "color(") {
			if end := strings.IndexByte(rest, ')'); end >= 0 {
				tokens = append(tokens, rest[:end+1])
				rest = strings.TrimSpace(rest[end+1:])
				continue
			}
		}
		end := strings.IndexFunc(rest, func(r rune) bool { return r == ' ' || r == '\t' })
		if end < 0 {
			tokens = append(tokens, rest)
			break
		}
		tokens = append(tokens, rest[:end])
		rest = strings.TrimSpace(rest[end:])
	}
	return tokens
}

// String renders the style in the token syntax ParseStyle accepts.
func (s Style) String() string {
	var parts []string
	if s.reset {
		parts = append(parts, "none")
	}
	for _, ac := range attrCodes {
		if s.attrs.Has(ac.attr) {
			parts = append(parts, ac.name)
		}
	}
	if s.fgSet {
		parts = append(parts, s.fg.String())
	}
	if s.bgSet {
		parts = append(parts, "on "+s.bg.String())
	}
	return strings.Join(parts, " ")
}

// normalized returns the style with colors downsampled to the target
// system and the reset marker cleared. Segment construction uses this so
// that equal-looking styles coalesce and compare equal.
func (s Style) normalized(target ColorSystem) Style {
	if target == ColorSystemNone {
		// Monochrome output drops colors entirely; attributes such as
		// bold and underline still render.
		s.fg, s.fgSet = Color{}, false
		s.bg, s.bgSet = Color{}, false
		s.reset = false
		return s
	}
	if s.fgSet {
		s.fg = s.fg.Downsample(target)
	}
	if s.bgSet {
		s.bg = s.bg.Downsample(target)
	}
	s.reset = false
	return s
}

// sgrParams returns the full SGR parameter list applying this style from a
// clean (default) state.
func (s Style) sgrParams() []string {
	var params []string
	for _, ac := range attrCodes {
		if s.attrs.Has(ac.attr) {
			params = append(params, ac.code)
		}
	}
	if s.fgSet {
		params = append(params, s.fg.fgParams()...)
	}
	if s.bgSet {
		params = append(params, s.bg.bgParams()...)
	}
	return params
}
