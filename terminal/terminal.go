// Package terminal provides the terminal collaborator the rendering
// pipeline writes to: byte output, width and color-capability queries, and
// the cursor-control primitives that live displays need to overwrite prior
// output in place.
package terminal

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
	"golang.org/x/term"

	"github.com/tomfleet/glint"
)

// Terminal is the single shared resource the rendering pipeline writes to.
// Implementations are not required to be safe for concurrent use; callers
// serialize access (the live coordinator does so with its cycle lock).
type Terminal interface {
	io.Writer

	// Width returns the terminal width in columns.
	Width() int
	// ColorSystem returns the richest color system the terminal displays.
	// Emitters query this once per render and downsample every color to it.
	ColorSystem() glint.ColorSystem
	// MoveUp moves the cursor up n lines and to column one.
	MoveUp(n int) error
	// ClearLine erases the line under the cursor.
	ClearLine() error
	// HideCursor hides the cursor while a live display is running.
	HideCursor() error
	// ShowCursor restores the cursor.
	ShowCursor() error
}

const defaultWidth = 80

// ANSI is a Terminal over any io.Writer speaking standard escape
// sequences. Capabilities are detected once at construction: color via
// termenv's environment-aware profile (honoring NO_COLOR), width via the
// underlying file descriptor when the writer is a tty.
type ANSI struct {
	w      io.Writer
	file   *os.File // nil when w is not an *os.File
	system glint.ColorSystem
	width  int
}

// NewANSI wraps a writer. Non-tty writers get no color and the default
// 80-column width, which keeps piped output free of escape noise.
func NewANSI(w io.Writer) *ANSI {
	t := &ANSI{w: w, system: glint.ColorSystemNone, width: defaultWidth}

	f, ok := w.(*os.File)
	if !ok || !isatty.IsTerminal(f.Fd()) {
		return t
	}
	t.file = f
	t.system = fromProfile(termenv.NewOutput(f).EnvColorProfile())
	return t
}

// fromProfile maps a termenv color profile onto the rendering pipeline's
// color systems.
func fromProfile(p termenv.Profile) glint.ColorSystem {
	switch p {
	case termenv.TrueColor:
		return glint.ColorSystemTrueColor
	case termenv.ANSI256:
		return glint.ColorSystemEightBit
	case termenv.ANSI:
		return glint.ColorSystemStandard
	default:
		return glint.ColorSystemNone
	}
}

// Write sends bytes to the underlying writer.
func (t *ANSI) Write(p []byte) (int, error) {
	return t.w.Write(p)
}

// Width queries the current terminal width on every call so live displays
// track interactive resizes; non-ttys report the default width.
func (t *ANSI) Width() int {
	if t.file != nil {
		if w, _, err := term.GetSize(int(t.file.Fd())); err == nil && w > 0 {
			return w
		}
	}
	return t.width
}

// ColorSystem reports the capability detected at construction.
func (t *ANSI) ColorSystem() glint.ColorSystem {
	return t.system
}

// MoveUp moves the cursor up n lines and back to column one.
func (t *ANSI) MoveUp(n int) error {
	if n <= 0 {
		return nil
	}
	_, err := fmt.Fprintf(t.w, "\x1b[%dA\r", n)
	return err
}

// ClearLine erases the whole line under the cursor.
func (t *ANSI) ClearLine() error {
	_, err := io.WriteString(t.w, "\x1b[2K")
	return err
}

// HideCursor hides the cursor.
func (t *ANSI) HideCursor() error {
	_, err := io.WriteString(t.w, "\x1b[?25l")
	return err
}

// ShowCursor shows the cursor.
func (t *ANSI) ShowCursor() error {
	_, err := io.WriteString(t.w, "\x1b[?25h")
	return err
}

// NoColor wraps a Terminal, reporting no color support while passing every
// other operation through. Used for --no-color style overrides.
func NoColor(t Terminal) Terminal {
	return noColor{t}
}

type noColor struct {
	Terminal
}

func (noColor) ColorSystem() glint.ColorSystem {
	return glint.ColorSystemNone
}
