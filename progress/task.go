// Package progress tracks a set of long-running tasks and renders them as
// live-updating bars and spinners. The registry is safe for concurrent
// advancement from many goroutines; each rendered frame reflects one
// coherent snapshot of every task.
package progress

import "time"

// TaskID identifies a task within one Progress registry.
type TaskID int64

// Task is the tracked state of one unit of work. Total is nil for
// indeterminate tasks, which render as a spinner instead of a bar.
type Task struct {
	ID          TaskID
	Description string
	Completed   float64
	Total       *float64
	StartedAt   time.Time
	FinishedAt  time.Time
	Finished    bool
}

// Percentage returns completion in the range [0, 100]. Indeterminate
// tasks report ok=false.
func (t Task) Percentage() (pct float64, ok bool) {
	if t.Total == nil || *t.Total <= 0 {
		return 0, false
	}
	pct = t.Completed / *t.Total * 100
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}
	return pct, true
}

// Elapsed returns time spent on the task so far, frozen once finished.
func (t Task) Elapsed() time.Duration {
	if t.Finished {
		return t.FinishedAt.Sub(t.StartedAt)
	}
	return time.Since(t.StartedAt)
}

// Speed returns completed units per second, or ok=false before any time
// has passed.
func (t Task) Speed() (perSec float64, ok bool) {
	secs := t.Elapsed().Seconds()
	if secs <= 0 {
		return 0, false
	}
	return t.Completed / secs, true
}

// Remaining estimates time left assuming the current speed holds.
// Indeterminate, finished, and zero-speed tasks report ok=false.
func (t Task) Remaining() (d time.Duration, ok bool) {
	if t.Total == nil || t.Finished {
		return 0, false
	}
	speed, ok := t.Speed()
	if !ok || speed <= 0 {
		return 0, false
	}
	left := *t.Total - t.Completed
	if left < 0 {
		left = 0
	}
	return time.Duration(left / speed * float64(time.Second)), true
}
