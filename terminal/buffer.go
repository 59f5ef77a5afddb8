package terminal

import (
	"bytes"
	"sync"

	"github.com/tomfleet/glint"
)

// Buffer is an in-memory Terminal with fixed capabilities. It records
// every write and cursor operation, which makes render output observable
// in tests and lets callers capture styled output without a tty. Unlike
// ANSI it is safe for concurrent use, so tests may inspect it while a
// live display goroutine is still writing.
type Buffer struct {
	mu     sync.Mutex
	buf    bytes.Buffer
	system glint.ColorSystem
	width  int

	moveUps     int
	clearLines  int
	cursorHides int
	cursorShows int
}

// NewBuffer returns a Buffer reporting the given width and color system.
func NewBuffer(width int, system glint.ColorSystem) *Buffer {
	return &Buffer{system: system, width: width}
}

func (b *Buffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *Buffer) Width() int { return b.width }

func (b *Buffer) ColorSystem() glint.ColorSystem { return b.system }

// MoveUp records the motion; cursor operations are counted rather than
// spliced into the transcript.
func (b *Buffer) MoveUp(n int) error {
	if n <= 0 {
		return nil
	}
	b.mu.Lock()
	b.moveUps += n
	b.mu.Unlock()
	return nil
}

func (b *Buffer) ClearLine() error {
	b.mu.Lock()
	b.clearLines++
	b.mu.Unlock()
	return nil
}

func (b *Buffer) HideCursor() error {
	b.mu.Lock()
	b.cursorHides++
	b.mu.Unlock()
	return nil
}

func (b *Buffer) ShowCursor() error {
	b.mu.Lock()
	b.cursorShows++
	b.mu.Unlock()
	return nil
}

// String returns everything written so far.
func (b *Buffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

// MoveUps returns the total lines moved up.
func (b *Buffer) MoveUps() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.moveUps
}

// ClearLines returns the number of ClearLine calls.
func (b *Buffer) ClearLines() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.clearLines
}

// CursorHides returns the number of HideCursor calls.
func (b *Buffer) CursorHides() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.cursorHides
}

// CursorShows returns the number of ShowCursor calls.
func (b *Buffer) CursorShows() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.cursorShows
}

// Reset discards the transcript and counters.
func (b *Buffer) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.buf.Reset()
	b.moveUps = 0
	b.clearLines = 0
	b.cursorHides = 0
	b.cursorShows = 0
}
