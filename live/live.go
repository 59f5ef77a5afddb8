// Package live coordinates an auto-refreshing region at the bottom of a
// terminal. A single background goroutine repaints the region in place on
// a fixed cadence until the display is stopped, at which point the final
// frame is left on screen and normal writing resumes below it.
package live

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/tomfleet/glint"
	"github.com/tomfleet/glint/terminal"
)

// ErrNotRunning is returned by operations that require a started display.
var ErrNotRunning = errors.New("live: display not running")

// Renderable produces the current frame for a live region. Frame is called
// from the refresh goroutine, so implementations guard their own state.
type Renderable interface {
	Frame(width int) (glint.Frame, error)
}

// DefaultRefresh is the repaint cadence used when none is configured.
const DefaultRefresh = 100 * time.Millisecond

type state int

const (
	stateIdle state = iota
	stateRunning
	stateStopping
	stateStopped
	stateErrored
)

// Coordinator owns the live region. It serializes every repaint cycle, so
// at most one erase-and-redraw is in flight at a time and renderables may
// be mutated freely between cycles.
type Coordinator struct {
	term    terminal.Terminal
	refresh time.Duration

	mu        sync.Mutex
	st        state
	r         Renderable
	emitter   *glint.Emitter
	prevLines int
	err       error // first write or render failure, surfaced at Stop

	stop chan struct{}
	done chan struct{}
}

// Option configures a Coordinator.
type Option func(*Coordinator)

// WithRefresh sets the repaint cadence. Non-positive values keep the
// default.
func WithRefresh(d time.Duration) Option {
	return func(c *Coordinator) {
		if d > 0 {
			c.refresh = d
		}
	}
}

// New returns an idle Coordinator writing to term.
func New(term terminal.Terminal, opts ...Option) *Coordinator {
	c := &Coordinator{
		term:    term,
		refresh: DefaultRefresh,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Start begins refreshing r. The first frame paints immediately; later
// frames paint on the refresh cadence. Starting a running or finished
// display is an error.
func (c *Coordinator) Start(r Renderable) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.st != stateIdle {
		return fmt.Errorf("live: display already started")
	}
	c.st = stateRunning
	c.r = r
	c.emitter = glint.NewEmitter(c.term.ColorSystem(), glint.EmitMinimal)
	c.stop = make(chan struct{})
	c.done = make(chan struct{})

	if err := c.term.HideCursor(); err != nil {
		c.recordErr(err)
	}
	c.renderCycle()

	go c.loop(c.stop)
	return nil
}

func (c *Coordinator) loop(stop <-chan struct{}) {
	defer close(c.done)
	ticker := time.NewTicker(c.refresh)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			c.mu.Lock()
			if c.st == stateRunning {
				c.renderCycle()
			}
			c.mu.Unlock()
		}
	}
}

// Refresh forces an immediate repaint outside the ticker cadence. On a
// display that has already failed it returns the recorded error instead.
func (c *Coordinator) Refresh() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.st == stateErrored {
		return c.err
	}
	if c.st != stateRunning {
		return ErrNotRunning
	}
	c.renderCycle()
	return nil
}

// Stop halts refreshing, paints one final frame that stays on screen,
// restores the cursor, and returns the first error recorded during the
// display's lifetime. A display that failed mid-run can still be stopped;
// the final paint is skipped since the terminal is already broken. Stopping
// a cleanly stopped display again returns ErrNotRunning; stopping a failed
// one again repeats the recorded error.
func (c *Coordinator) Stop() error {
	c.mu.Lock()
	active := c.st == stateRunning || (c.st == stateErrored && c.stop != nil)
	if !active {
		err := c.err
		c.mu.Unlock()
		if err != nil {
			return err
		}
		return ErrNotRunning
	}
	c.st = stateStopping
	stop := c.stop
	c.stop = nil
	close(stop)
	c.mu.Unlock()
	<-c.done

	c.mu.Lock()
	defer c.mu.Unlock()
	c.renderCycle()
	if err := c.term.ShowCursor(); err != nil {
		c.recordErr(err)
	}
	if c.err != nil {
		c.st = stateErrored
		return c.err
	}
	c.st = stateStopped
	return nil
}

// renderCycle erases the previous frame and paints the current one. It is
// a no-op once an error has been recorded; a broken terminal gets no
// further writes. Callers hold c.mu.
func (c *Coordinator) renderCycle() {
	if c.err != nil {
		return
	}
	for i := 0; i < c.prevLines; i++ {
		if err := c.term.MoveUp(1); err != nil {
			c.recordErr(err)
			return
		}
		if err := c.term.ClearLine(); err != nil {
			c.recordErr(err)
			return
		}
	}
	c.prevLines = 0

	frame, err := c.r.Frame(c.term.Width())
	if err != nil {
		c.recordErr(err)
		return
	}
	c.emitter.Reset()
	if err := c.emitter.EmitFrame(c.term, frame); err != nil {
		c.recordErr(err)
		return
	}
	c.prevLines = frame.Height()
}

// recordErr keeps the first failure and moves a running display to the
// errored state, which halts further refresh cycles.
func (c *Coordinator) recordErr(err error) {
	if c.err == nil {
		c.err = fmt.Errorf("live: %w", err)
	}
	if c.st == stateRunning {
		c.st = stateErrored
	}
}
