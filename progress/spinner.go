package progress

import (
	"fmt"
	"sync"
	"time"

	"github.com/tomfleet/glint"
)

// Spinner animates a fixed cycle of frames for indeterminate tasks. The
// frame shown depends only on elapsed time, so concurrent renders of the
// same spinner agree without shared mutable state.
type Spinner struct {
	frames   []string
	interval time.Duration
	style    glint.Style
}

var (
	spinnerOnce sync.Once
	spinnerSets map[string]Spinner
)

// Named frame sets, matching the common cli-spinners definitions.
func spinners() map[string]Spinner {
	spinnerOnce.Do(func() {
		cyan := mustStyle("cyan")
		spinnerSets = map[string]Spinner{
			"dots": {
				frames:   []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"},
				interval: 80 * time.Millisecond,
				style:    cyan,
			},
			"line": {
				frames:   []string{"-", "\\", "|", "/"},
				interval: 130 * time.Millisecond,
				style:    cyan,
			},
			"arc": {
				frames:   []string{"◜", "◠", "◝", "◞", "◡", "◟"},
				interval: 100 * time.Millisecond,
				style:    cyan,
			},
			"bouncingBar": {
				frames: []string{
					"[    ]", "[=   ]", "[==  ]", "[=== ]", "[ ===]",
					"[  ==]", "[   =]", "[    ]", "[   =]", "[  ==]",
					"[ ===]", "[====]", "[=== ]", "[==  ]", "[=   ]",
				},
				interval: 80 * time.Millisecond,
				style:    cyan,
			},
			"simpleDots": {
				frames:   []string{".  ", ".. ", "...", "   "},
				interval: 400 * time.Millisecond,
				style:    cyan,
			},
		}
	})
	return spinnerSets
}

// NewSpinner returns the named spinner, or an error naming the unknown set.
func NewSpinner(name string) (Spinner, error) {
	s, ok := spinners()[name]
	if !ok {
		return Spinner{}, fmt.Errorf("progress: unknown spinner %q", name)
	}
	return s, nil
}

// DefaultSpinner is the dots spinner.
func DefaultSpinner() Spinner {
	return spinners()["dots"]
}

// Frame returns the styled frame for the given elapsed time.
func (s Spinner) Frame(elapsed time.Duration) *glint.Text {
	if len(s.frames) == 0 {
		return glint.NewText("")
	}
	idx := int(elapsed/s.interval) % len(s.frames)
	return glint.NewStyledText(s.frames[idx], s.style)
}
