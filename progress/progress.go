package progress

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/tomfleet/glint"
	"github.com/tomfleet/glint/live"
	"github.com/tomfleet/glint/terminal"
)

// Progress is a thread-safe registry of tasks displayed as a live block
// of bars and spinners. Tasks may be advanced from any goroutine; each
// refresh cycle renders one coherent snapshot of the whole registry.
type Progress struct {
	coord   *live.Coordinator
	bar     Bar
	spinner Spinner

	mu      sync.Mutex
	order   []TaskID
	tasks   map[TaskID]*Task
	nextID  TaskID
	stopped bool
}

// Option configures a Progress display.
type Option func(*Progress)

// WithBar replaces the bar used for determinate tasks.
func WithBar(b Bar) Option {
	return func(p *Progress) { p.bar = b }
}

// WithSpinner replaces the spinner used for indeterminate tasks.
func WithSpinner(s Spinner) Option {
	return func(p *Progress) { p.spinner = s }
}

// New returns a Progress writing to term. It is also a live.Renderable,
// so callers with their own coordinator can skip Start/Stop and drive
// rendering themselves.
func New(term terminal.Terminal, opts ...Option) *Progress {
	p := &Progress{
		coord:   live.New(term),
		bar:     DefaultBar(),
		spinner: DefaultSpinner(),
		tasks:   make(map[TaskID]*Task),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Start begins live rendering of the registry.
func (p *Progress) Start() error {
	return p.coord.Start(p)
}

// Stop halts rendering, leaves the final frame on screen, and rejects
// further task mutations. Stopping a registry that was never started
// leaves it mutable.
func (p *Progress) Stop() error {
	err := p.coord.Stop()
	if errors.Is(err, live.ErrNotRunning) {
		return err
	}
	p.mu.Lock()
	p.stopped = true
	p.mu.Unlock()
	return err
}

// Add registers a determinate task with the given total and returns its
// ID. Tasks render in registration order.
func (p *Progress) Add(description string, total float64) TaskID {
	return p.add(description, &total)
}

// AddIndeterminate registers a task with no known total; it renders as a
// spinner until finished.
func (p *Progress) AddIndeterminate(description string) TaskID {
	return p.add(description, nil)
}

func (p *Progress) add(description string, total *float64) TaskID {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.nextID++
	id := p.nextID
	p.tasks[id] = &Task{
		ID:          id,
		Description: description,
		Total:       total,
		StartedAt:   time.Now(),
	}
	p.order = append(p.order, id)
	return id
}

// Advance adds amount to the task's completed count. Reaching the total
// finishes the task. Advancing after Stop fails with live.ErrNotRunning.
func (p *Progress) Advance(id TaskID, amount float64) error {
	return p.mutate(id, func(t *Task) {
		t.Completed += amount
	})
}

// Update sets the task's completed count outright.
func (p *Progress) Update(id TaskID, completed float64) error {
	return p.mutate(id, func(t *Task) {
		t.Completed = completed
	})
}

// SetTotal gives or changes a task's total, making it determinate.
func (p *Progress) SetTotal(id TaskID, total float64) error {
	return p.mutate(id, func(t *Task) {
		t.Total = &total
	})
}

// Finish marks the task done regardless of its completed count.
func (p *Progress) Finish(id TaskID) error {
	return p.mutate(id, func(t *Task) {
		if t.Total != nil && t.Completed < *t.Total {
			t.Completed = *t.Total
		}
		t.Finished = true
		t.FinishedAt = time.Now()
	})
}

func (p *Progress) mutate(id TaskID, fn func(*Task)) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.stopped {
		return live.ErrNotRunning
	}
	t, ok := p.tasks[id]
	if !ok {
		return fmt.Errorf("progress: unknown task %d", id)
	}
	fn(t)
	if !t.Finished && t.Total != nil && t.Completed >= *t.Total {
		t.Finished = true
		t.FinishedAt = time.Now()
	}
	return nil
}

// Task returns a copy of the task's current state.
func (p *Progress) Task(id TaskID) (Task, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	t, ok := p.tasks[id]
	if !ok {
		return Task{}, false
	}
	return *t, true
}

// snapshot copies every task under the lock so one frame reflects a single
// point in time even while other goroutines keep advancing.
func (p *Progress) snapshot() []Task {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]Task, 0, len(p.order))
	for _, id := range p.order {
		out = append(out, *p.tasks[id])
	}
	return out
}

// Frame renders the whole registry as one frame, a line per task.
func (p *Progress) Frame(width int) (glint.Frame, error) {
	var frame glint.Frame
	for _, t := range p.snapshot() {
		text := p.taskText(t, width)
		f, err := glint.WrapFrame(text, width)
		if err != nil {
			return glint.Frame{}, err
		}
		frame.Lines = append(frame.Lines, f.Lines...)
	}
	return frame, nil
}

// The trailing columns after the bar: " 100% 0:00:00".
const tailWidth = 13

func (p *Progress) taskText(t Task, width int) *glint.Text {
	out := glint.NewText(t.Description)
	out.Append(" ")

	if pct, ok := t.Percentage(); ok {
		barWidth := width - glint.CellWidth(t.Description) - 1 - tailWidth
		if barWidth < 4 {
			barWidth = 4
		}
		out.AppendText(p.bar.Render(pct/100, barWidth))
		out.Append(fmt.Sprintf(" %3.0f%%", pct))
	} else {
		out.AppendText(p.spinner.Frame(t.Elapsed()))
	}

	out.Append(" " + formatElapsed(t.Elapsed()))
	return out
}

// formatElapsed renders a duration as h:mm:ss with whole-second
// resolution.
func formatElapsed(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	secs := int(d.Seconds())
	return fmt.Sprintf("%d:%02d:%02d", secs/3600, secs/60%60, secs%60)
}
