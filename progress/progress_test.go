package progress_test

import (
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomfleet/glint"
	"github.com/tomfleet/glint/live"
	"github.com/tomfleet/glint/progress"
	"github.com/tomfleet/glint/terminal"
)

func newTestProgress(t *testing.T) *progress.Progress {
	t.Helper()
	return progress.New(terminal.NewBuffer(60, glint.ColorSystemNone))
}

func TestProgress_AddAndAdvance(t *testing.T) {
	t.Parallel()

	p := newTestProgress(t)
	id := p.Add("download", 100)

	require.NoError(t, p.Advance(id, 30))
	require.NoError(t, p.Advance(id, 20))

	task, ok := p.Task(id)
	require.True(t, ok)
	assert.Equal(t, 50.0, task.Completed)
	assert.False(t, task.Finished)
}

func TestProgress_AutoFinishAtTotal(t *testing.T) {
	t.Parallel()

	p := newTestProgress(t)
	id := p.Add("copy", 10)

	require.NoError(t, p.Advance(id, 10))
	task, ok := p.Task(id)
	require.True(t, ok)
	assert.True(t, task.Finished)
	assert.False(t, task.FinishedAt.IsZero())
}

func TestProgress_UpdateAndSetTotal(t *testing.T) {
	t.Parallel()

	p := newTestProgress(t)
	id := p.AddIndeterminate("index")

	task, ok := p.Task(id)
	require.True(t, ok)
	assert.Nil(t, task.Total)

	require.NoError(t, p.Update(id, 40))
	require.NoError(t, p.SetTotal(id, 80))

	task, ok = p.Task(id)
	require.True(t, ok)
	require.NotNil(t, task.Total)
	pct, ok := task.Percentage()
	require.True(t, ok)
	assert.InDelta(t, 50.0, pct, 0.001)
}

func TestProgress_Finish(t *testing.T) {
	t.Parallel()

	p := newTestProgress(t)
	id := p.Add("verify", 100)
	require.NoError(t, p.Advance(id, 10))
	require.NoError(t, p.Finish(id))

	task, ok := p.Task(id)
	require.True(t, ok)
	assert.True(t, task.Finished)
	assert.Equal(t, 100.0, task.Completed, "finishing tops up the count")
}

func TestProgress_UnknownTask(t *testing.T) {
	t.Parallel()

	p := newTestProgress(t)
	err := p.Advance(progress.TaskID(42), 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown task")
}

func TestProgress_AdvanceAfterStop(t *testing.T) {
	t.Parallel()

	p := newTestProgress(t)
	id := p.Add("job", 10)

	require.NoError(t, p.Start())
	require.NoError(t, p.Advance(id, 1))
	require.NoError(t, p.Stop())

	assert.ErrorIs(t, p.Advance(id, 1), live.ErrNotRunning)
	assert.ErrorIs(t, p.Finish(id), live.ErrNotRunning)
}

func TestProgress_StopBeforeStartKeepsRegistryMutable(t *testing.T) {
	t.Parallel()

	p := newTestProgress(t)
	id := p.Add("job", 10)

	assert.ErrorIs(t, p.Stop(), live.ErrNotRunning)
	require.NoError(t, p.Advance(id, 1), "a display that never ran does not lock the registry")

	require.NoError(t, p.Start())
	require.NoError(t, p.Stop())
	assert.ErrorIs(t, p.Advance(id, 1), live.ErrNotRunning)
}

func TestProgress_ConcurrentAdvance(t *testing.T) {
	t.Parallel()

	p := newTestProgress(t)
	id := p.Add("shared", 100000)

	const goroutines = 8
	const perGoroutine = 1000

	var wg sync.WaitGroup
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perGoroutine; j++ {
				assert.NoError(t, p.Advance(id, 1))
			}
		}()
	}
	wg.Wait()

	task, ok := p.Task(id)
	require.True(t, ok)
	assert.Equal(t, float64(goroutines*perGoroutine), task.Completed, "no lost updates")
}

func TestProgress_Frame(t *testing.T) {
	t.Parallel()

	p := newTestProgress(t)
	half := p.Add("halfway", 100)
	require.NoError(t, p.Advance(half, 50))
	p.AddIndeterminate("scanning")

	frame, err := p.Frame(60)
	require.NoError(t, err)
	require.Equal(t, 2, frame.Height(), "one line per task, in registration order")

	first := frame.Lines[0].Plain()
	assert.Contains(t, first, "halfway")
	assert.Contains(t, first, "50%")
	assert.Contains(t, first, "0:00:0")
	assert.Contains(t, first, "━")

	second := frame.Lines[1].Plain()
	assert.Contains(t, second, "scanning")
	assert.NotContains(t, second, "%", "indeterminate tasks show no percentage")
}

func TestProgress_LiveEndToEnd(t *testing.T) {
	t.Parallel()

	buf := terminal.NewBuffer(60, glint.ColorSystemNone)
	p := progress.New(buf)
	id := p.Add("work", 4)

	require.NoError(t, p.Start())
	for i := 0; i < 4; i++ {
		require.NoError(t, p.Advance(id, 1))
	}
	require.NoError(t, p.Stop())

	out := buf.String()
	assert.Contains(t, out, "work")
	assert.True(t, strings.Contains(out, "100%"), "final frame shows completion: %q", out)
	assert.Equal(t, 1, buf.CursorShows())
}

func TestBar_Render(t *testing.T) {
	t.Parallel()

	bar := progress.DefaultBar()

	full := bar.Render(1.0, 10)
	assert.Equal(t, strings.Repeat("━", 10), full.Plain())
	assert.Equal(t, 10, glint.CellWidth(full.Plain()))

	empty := bar.Render(0.0, 10)
	assert.Equal(t, strings.Repeat("━", 10), empty.Plain(), "unfilled cells still occupy the width")

	half := bar.Render(0.5, 10)
	runs := half.Resolve()
	require.Len(t, runs, 2)
	assert.Equal(t, strings.Repeat("━", 5), runs[0].Text)
	assert.Equal(t, strings.Repeat("━", 5), runs[1].Text)

	clamped := bar.Render(7.0, 4)
	assert.Equal(t, strings.Repeat("━", 4), clamped.Plain())

	assert.Empty(t, bar.Render(0.5, 0).Plain())
}

func TestSpinner(t *testing.T) {
	t.Parallel()

	s, err := progress.NewSpinner("dots")
	require.NoError(t, err)

	first := s.Frame(0).Plain()
	assert.NotEmpty(t, first)

	// 80ms per frame: the second frame differs from the first.
	second := s.Frame(80 * time.Millisecond).Plain()
	assert.NotEqual(t, first, second)

	// The cycle wraps around.
	wrapped := s.Frame(10 * 80 * time.Millisecond).Plain()
	assert.Equal(t, first, wrapped)

	_, err = progress.NewSpinner("nope")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown spinner")
}
