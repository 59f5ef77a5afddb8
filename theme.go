package glint

import (
	"fmt"
	"sort"

	"github.com/BurntSushi/toml"
)

// Theme is a set of named styles that markup tags can reference, e.g.
// "[warning]disk almost full[/]". Themes are built once and read-only
// afterwards; they need no synchronization.
type Theme struct {
	styles map[string]Style
}

// NewTheme returns an empty theme.
func NewTheme() *Theme {
	return &Theme{styles: make(map[string]Style)}
}

// DefaultTheme returns the built-in named styles.
func DefaultTheme() *Theme {
	t := NewTheme()
	mustDefine := func(name, spec string) {
		style, err := ParseStyle(spec)
		if err != nil {
			panic(fmt.Sprintf("glint: built-in theme style %q: %v", name, err))
		}
		t.styles[name] = style
	}
	mustDefine("info", "cyan")
	mustDefine("warning", "bold yellow")
	mustDefine("error", "bold red")
	mustDefine("success", "bold green")
	return t
}

// Define adds or replaces a named style. Names must start with a lowercase
// letter. Theme names shadow color and attribute tokens during markup
// parsing, so a name like "red" is legal but best avoided.
func (t *Theme) Define(name string, style Style) error {
	if name == "" || name[0] < 'a' || name[0] > 'z' {
		return fmt.Errorf("%w: theme style name %q must start with a lowercase letter", ErrInvalidStyleToken, name)
	}
	t.styles[name] = style
	return nil
}

// Style looks up a named style.
func (t *Theme) Style(name string) (Style, bool) {
	s, ok := t.styles[name]
	return s, ok
}

// Names returns the defined style names, sorted.
func (t *Theme) Names() []string {
	names := make([]string, 0, len(t.styles))
	for name := range t.styles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// themeFile is the TOML shape of a theme file:
//
//	[styles]
//	warning = "bold yellow"
//	heading = "bold underline #5f87ff"
type themeFile struct {
	Styles map[string]string `toml:"styles"`
}

// LoadTheme reads a TOML theme file. Each entry under [styles] is parsed
// with ParseStyle; the first invalid entry fails the whole load.
func LoadTheme(path string) (*Theme, error) {
	var file themeFile
	if _, err := toml.DecodeFile(path, &file); err != nil {
		return nil, fmt.Errorf("loading theme %q: %w", path, err)
	}

	t := NewTheme()
	for name, spec := range file.Styles {
		style, err := ParseStyle(spec)
		if err != nil {
			return nil, fmt.Errorf("theme %q style %q: %w", path, name, err)
		}
		if err := t.Define(name, style); err != nil {
			return nil, fmt.Errorf("theme %q: %w", path, err)
		}
	}
	return t, nil
}
