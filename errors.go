package glint

import "errors"

// ErrInvalidColor reports a color name, index, or literal that does not
// resolve to any color space.
var ErrInvalidColor = errors.New("invalid color")

// ErrInvalidStyleToken reports an unrecognized token in a style string.
var ErrInvalidStyleToken = errors.New("invalid style token")

// ErrUnclosedTag reports markup that reached end of input with one or more
// tags still open. Unclosed tags are a hard failure rather than being
// auto-closed so that authoring mistakes surface immediately.
var ErrUnclosedTag = errors.New("unclosed markup tag")

// ErrMismatchedCloseTag reports a named close tag that does not match the
// innermost open tag, or a close tag with no open tag to close.
var ErrMismatchedCloseTag = errors.New("mismatched close tag")

// ErrInvalidWidth reports a wrap width below the minimum of one column.
var ErrInvalidWidth = errors.New("invalid width")

// ErrInvalidSpan reports a span whose offsets are out of range, reversed,
// or not on rune boundaries.
var ErrInvalidSpan = errors.New("invalid span")
