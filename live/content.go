package live

import (
	"sync"

	"github.com/tomfleet/glint"
)

// Content is the simplest Renderable: a mutex-guarded Text that callers
// swap between refresh cycles. The coordinator always paints a coherent
// snapshot, never a half-updated one.
type Content struct {
	mu   sync.Mutex
	text *glint.Text
}

// NewContent returns a Content holding t.
func NewContent(t *glint.Text) *Content {
	return &Content{text: t}
}

// Set replaces the displayed text. The change appears on the next cycle.
func (c *Content) Set(t *glint.Text) {
	c.mu.Lock()
	c.text = t
	c.mu.Unlock()
}

// SetMarkup parses markup and replaces the displayed text.
func (c *Content) SetMarkup(markup string) error {
	t, err := glint.ParseMarkup(markup)
	if err != nil {
		return err
	}
	c.Set(t)
	return nil
}

// Frame wraps the current text to width.
func (c *Content) Frame(width int) (glint.Frame, error) {
	c.mu.Lock()
	t := c.text
	c.mu.Unlock()
	return glint.WrapFrame(t, width)
}
