package glint

import (
	"fmt"
	"strings"
)

// openTag is one entry of the markup parser's open-tag stack.
type openTag struct {
	token   string // original token string, for named-close matching
	spanIdx int    // index of the span reserved for this tag
}

// ParseMarkup parses bracketed markup into a Text. Tags open with
// "[<style>]" and close with "[/]" (innermost) or "[/<style>]" (which must
// repeat the innermost open tag's token string). Literal brackets are
// escaped as "\[" and "\]". Each tag instance becomes one span covering
// the bytes it enclosed, carrying that tag's standalone-parsed style;
// nested styles are combined later at render time, so a parsed Text means
// the same thing however it is later measured or wrapped.
//
// Unclosed tags fail with ErrUnclosedTag and a close with nothing open or
// a non-matching name fails with ErrMismatchedCloseTag: authoring mistakes
// are hard errors, never silently repaired.
func ParseMarkup(s string) (*Text, error) {
	return ParseMarkupWith(s, nil)
}

// ParseMarkupWith parses markup, resolving tag contents against theme
// first: a tag whose whole content names a theme style uses that style;
// anything else parses as a style string. A nil theme behaves like
// ParseMarkup.
func ParseMarkupWith(s string, theme *Theme) (*Text, error) {
	text := &Text{}
	var stack []openTag

	// Spans are reserved at tag-open time so that inner (later-opened)
	// tags are inserted later and win ties during resolution.
	var pending []Span

	i := 0
	for i < len(s) {
		switch {
		case s[i] == '\\' && i+1 < len(s) && (s[i+1] == '[' || s[i+1] == ']'):
			text.Append(string(s[i+1]))
			i += 2

		case s[i] == '[':
			end := strings.IndexByte(s[i:], ']')
			if end < 0 {
				// No closing bracket: literal text, matching the original
				// markup dialect.
				text.Append(s[i:])
				i = len(s)
				continue
			}
			body := s[i+1 : i+end]
			i += end + 1

			if closing, ok := strings.CutPrefix(body, "/"); ok {
				if len(stack) == 0 {
					return nil, fmt.Errorf("%w: %q with no open tag", ErrMismatchedCloseTag, "["+body+"]")
				}
				top := stack[len(stack)-1]
				if name := strings.TrimSpace(closing); name != "" && name != top.token {
					return nil, fmt.Errorf("%w: [/%s] does not close [%s]", ErrMismatchedCloseTag, name, top.token)
				}
				stack = stack[:len(stack)-1]
				pending[top.spanIdx].End = text.Len()
				continue
			}

			token := strings.TrimSpace(body)
			if token == "" {
				// "[ ]" and friends are literal text, not tags.
				text.Append("[" + body + "]")
				continue
			}
			style, err := parseTagStyle(token, theme)
			if err != nil {
				return nil, err
			}
			stack = append(stack, openTag{token: token, spanIdx: len(pending)})
			pending = append(pending, Span{Start: text.Len(), End: -1, Style: style})

		default:
			next := strings.IndexAny(s[i:], "[\\")
			if next < 0 {
				text.Append(s[i:])
				i = len(s)
				continue
			}
			if next == 0 { // lone backslash, not an escape
				text.Append(string(s[i]))
				i++
				continue
			}
			text.Append(s[i : i+next])
			i += next
		}
	}

	if len(stack) > 0 {
		return nil, fmt.Errorf("%w: [%s]", ErrUnclosedTag, stack[len(stack)-1].token)
	}

	for _, sp := range pending {
		if sp.End > sp.Start {
			text.spans = append(text.spans, sp)
		}
	}
	return text, nil
}

func parseTagStyle(token string, theme *Theme) (Style, error) {
	if theme != nil {
		if style, ok := theme.Style(token); ok {
			return style, nil
		}
	}
	return ParseStyle(token)
}

// EscapeMarkup escapes brackets so that arbitrary text round-trips through
// ParseMarkup unchanged.
func EscapeMarkup(s string) string {
	s = strings.ReplaceAll(s, "[", `\[`)
	return strings.ReplaceAll(s, "]", `\]`)
}
