package glint

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// Line is one wrapped line of resolved style runs. Lines are produced
// fresh per Wrap call and never mutated afterwards.
type Line struct {
	Runs  []Run
	Width int
}

// Plain returns the line's text without styling.
func (l Line) Plain() string {
	var b strings.Builder
	for _, r := range l.Runs {
		b.WriteString(r.Text)
	}
	return b.String()
}

// Frame is one complete renderable snapshot, used by live displays to know
// how much prior output to erase.
type Frame struct {
	Lines []Line
}

// Height returns the number of lines in the frame.
func (f Frame) Height() int { return len(f.Lines) }

// cluster is one grapheme cluster of a paragraph with its byte range.
type cluster struct {
	start, end int
	width      int
	ws         bool
}

// Wrap breaks a Text into lines no wider than width columns. Hard newlines
// always break. Within a paragraph the break falls at the last whitespace
// boundary at or before exceeding the width; a single token wider than the
// line hard-breaks at the last grapheme cluster boundary that fits, never
// mid-cluster. Whitespace consumed by a break is dropped from the emitted
// line. A style run is never split except at a line break. Empty input
// produces one empty line.
func Wrap(t *Text, width int) ([]Line, error) {
	if width < 1 {
		return nil, fmt.Errorf("%w: %d (must be >= 1)", ErrInvalidWidth, width)
	}

	content := t.Plain()
	runs := t.resolve()

	var lines []Line
	paraStart := 0
	for {
		nl := strings.IndexByte(content[paraStart:], '\n')
		paraEnd := len(content)
		if nl >= 0 {
			paraEnd = paraStart + nl
		}

		lines = append(lines, wrapParagraph(content, runs, paraStart, paraEnd, width)...)

		if nl < 0 {
			break
		}
		paraStart = paraEnd + 1
	}
	return lines, nil
}

// WrapFrame wraps a Text and packages the lines as a Frame.
func WrapFrame(t *Text, width int) (Frame, error) {
	lines, err := Wrap(t, width)
	if err != nil {
		return Frame{}, err
	}
	return Frame{Lines: lines}, nil
}

func wrapParagraph(content string, runs []resolvedRun, start, end, width int) []Line {
	if start == end {
		return []Line{{}}
	}

	clusters := splitClusters(content[start:end], start)

	var lines []Line
	i := 0
	lineStart := clusters[0].start
	lineWidth := 0
	// Most recent whitespace run inside the current line: break point,
	// width up to it, and the cluster index to resume from.
	breakAt, breakWidth, resumeIdx := -1, 0, -1

	flush := func(to, w, resume int) {
		lines = append(lines, sliceLine(content, runs, lineStart, to, w))
		i = resume
		if i < len(clusters) {
			lineStart = clusters[i].start
		} else {
			lineStart = end // nothing left but consumed whitespace
		}
		lineWidth = 0
		breakAt, breakWidth, resumeIdx = -1, 0, -1
	}

	for i < len(clusters) {
		c := clusters[i]

		if lineWidth+c.width > width {
			switch {
			case c.ws:
				// The overflowing cluster is whitespace: break here and
				// swallow the contiguous whitespace run.
				cut, w := c.start, lineWidth
				if resumeIdx == i { // line already ends in whitespace
					cut, w = breakAt, breakWidth
				}
				j := i
				for j < len(clusters) && clusters[j].ws {
					j++
				}
				flush(cut, w, j)
			case breakAt > lineStart:
				// Go back to the last whitespace boundary.
				flush(breakAt, breakWidth, resumeIdx)
			case c.start == lineStart:
				// Single cluster wider than the line; emit it alone rather
				// than splitting it.
				flush(c.end, c.width, i+1)
			default:
				// No whitespace in the line: hard-break before this cluster.
				flush(c.start, lineWidth, i)
			}
			continue
		}

		lineWidth += c.width
		if c.ws {
			if resumeIdx != i { // start of a new whitespace run
				breakAt = c.start
				breakWidth = lineWidth - c.width
			}
			resumeIdx = i + 1
		}
		i++
	}

	if i > 0 && lineStart < end {
		lines = append(lines, sliceLine(content, runs, lineStart, end, lineWidth))
	} else if len(lines) == 0 {
		lines = append(lines, Line{})
	}
	return lines
}

// splitClusters breaks a paragraph into grapheme clusters with absolute
// byte offsets and display widths.
func splitClusters(s string, offset int) []cluster {
	var out []cluster
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		a, b := g.Positions()
		str := g.Str()
		first, _ := utf8.DecodeRuneInString(str)
		out = append(out, cluster{
			start: offset + a,
			end:   offset + b,
			width: runewidth.StringWidth(str),
			ws:    unicode.IsSpace(first),
		})
	}
	return out
}

// sliceLine cuts the resolved runs down to the byte range [start, end).
func sliceLine(content string, runs []resolvedRun, start, end, width int) Line {
	if start >= end {
		return Line{}
	}
	line := Line{Width: width}
	for _, rr := range runs {
		if rr.end <= start || rr.start >= end {
			continue
		}
		a, b := rr.start, rr.end
		if a < start {
			a = start
		}
		if b > end {
			b = end
		}
		line.Runs = append(line.Runs, Run{Text: content[a:b], Style: rr.style})
	}
	return line
}
