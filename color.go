package glint

import (
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/lucasb-eyer/go-colorful"
)

// ColorSystem identifies how many colors a terminal can display. Systems
// are ordered: a terminal supporting a richer system can always display
// colors downsampled from a poorer one.
type ColorSystem uint8

const (
	// ColorSystemNone renders no color at all (monochrome output).
	ColorSystemNone ColorSystem = iota
	// ColorSystemStandard is the 16-color ANSI palette.
	ColorSystemStandard
	// ColorSystemEightBit is the 256-color palette.
	ColorSystemEightBit
	// ColorSystemTrueColor is full 24-bit RGB.
	ColorSystemTrueColor
)

// String returns a human-readable name for the color system.
func (cs ColorSystem) String() string {
	switch cs {
	case ColorSystemNone:
		return "none"
	case ColorSystemStandard:
		return "standard"
	case ColorSystemEightBit:
		return "eightbit"
	case ColorSystemTrueColor:
		return "truecolor"
	default:
		return fmt.Sprintf("ColorSystem(%d)", uint8(cs))
	}
}

type colorKind uint8

const (
	kindDefault colorKind = iota
	kindStandard
	kindEightBit
	kindTrueColor
)

// Color is a terminal color in one of four spaces: the terminal default,
// the standard 16-color palette, the 256-color palette, or 24-bit RGB.
// The zero value is the terminal default. Colors are immutable values;
// invalid inputs fail construction rather than being clamped.
type Color struct {
	kind    colorKind
	index   uint8
	r, g, b uint8
}

// DefaultColor returns the terminal's default color.
func DefaultColor() Color {
	return Color{}
}

// RGB returns a 24-bit true color.
func RGB(r, g, b uint8) Color {
	return Color{kind: kindTrueColor, r: r, g: g, b: b}
}

// StandardColor returns one of the 16 standard ANSI colors (index 0-15).
func StandardColor(index int) (Color, error) {
	if index < 0 || index > 15 {
		return Color{}, fmt.Errorf("%w: standard index %d out of range 0-15", ErrInvalidColor, index)
	}
	return Color{kind: kindStandard, index: uint8(index)}, nil
}

// PaletteColor returns a color from the 256-color palette (index 0-255).
func PaletteColor(index int) (Color, error) {
	if index < 0 || index > 255 {
		return Color{}, fmt.Errorf("%w: palette index %d out of range 0-255", ErrInvalidColor, index)
	}
	return Color{kind: kindEightBit, index: uint8(index)}, nil
}

// standardNames maps the 8 standard color names to their ANSI codes.
// Bright variants are handled by ParseColor via the bright_ prefix.
var standardNames = map[string]uint8{
	"black":   0,
	"red":     1,
	"green":   2,
	"yellow":  3,
	"blue":    4,
	"magenta": 5,
	"cyan":    6,
	"white":   7,
}

// ParseColor parses a color token. Supported forms:
//
//   - "default" for the terminal default
//   - the 8 standard names ("red", "cyan", ...) and their bright variants
//     ("bright_red", "brightred"); "grey"/"gray" alias bright_black
//   - "color(N)" for palette index N in 0-255
//   - "#RRGGBB" or "#RGB" hex literals
//   - "rgb(r, g, b)" decimal literals
//
// Each form maps deterministically to exactly one Color variant.
func ParseColor(s string) (Color, error) {
	s = strings.ToLower(strings.TrimSpace(s))

	if s == "" {
		return Color{}, fmt.Errorf("%w: empty color token", ErrInvalidColor)
	}
	if s == "default" {
		return Color{}, nil
	}
	if hex, ok := strings.CutPrefix(s, "#"); ok {
		return parseHex(hex)
	}
	if body, ok := cutCall(s, "rgb("); ok {
		return parseRGBTuple(body)
	}
	if body, ok := cutCall(s, "color("); ok {
		n, err := strconv.Atoi(strings.TrimSpace(body))
		if err != nil {
			return Color{}, fmt.Errorf("%w: palette index %q", ErrInvalidColor, body)
		}
		return PaletteColor(n)
	}
	return parseNamed(s)
}

// cutCall strips a "name(" prefix and the trailing ")" in one step.
func cutCall(s, prefix string) (string, bool) {
	body, ok := strings.CutPrefix(s, prefix)
	if !ok {
		return "", false
	}
	return strings.CutSuffix(body, ")")
}

func parseNamed(name string) (Color, error) {
	if name == "grey" || name == "gray" {
		return Color{kind: kindStandard, index: 8}, nil
	}

	bright := false
	base := name
	if b, ok := strings.CutPrefix(name, "bright_"); ok {
		bright, base = true, b
	} else if b, ok := strings.CutPrefix(name, "bright"); ok {
		bright, base = true, b
	}

	code, ok := standardNames[base]
	if !ok {
		return Color{}, fmt.Errorf("%w: unknown color name %q", ErrInvalidColor, name)
	}
	if bright {
		code += 8
	}
	return Color{kind: kindStandard, index: code}, nil
}

func parseHex(hex string) (Color, error) {
	switch len(hex) {
	case 3:
		var rgb [3]uint8
		for i := 0; i < 3; i++ {
			n, err := strconv.ParseUint(hex[i:i+1], 16, 8)
			if err != nil {
				return Color{}, fmt.Errorf("%w: hex literal #%s", ErrInvalidColor, hex)
			}
			rgb[i] = uint8(n*16 + n)
		}
		return RGB(rgb[0], rgb[1], rgb[2]), nil
	case 6:
		var rgb [3]uint8
		for i := 0; i < 3; i++ {
			n, err := strconv.ParseUint(hex[i*2:i*2+2], 16, 8)
			if err != nil {
				return Color{}, fmt.Errorf("%w: hex literal #%s", ErrInvalidColor, hex)
			}
			rgb[i] = uint8(n)
		}
		return RGB(rgb[0], rgb[1], rgb[2]), nil
	default:
		return Color{}, fmt.Errorf("%w: hex literal #%s must have 3 or 6 digits", ErrInvalidColor, hex)
	}
}

func parseRGBTuple(body string) (Color, error) {
	parts := strings.Split(body, ",")
	if len(parts) != 3 {
		return Color{}, fmt.Errorf("%w: rgb() needs 3 components, got %d", ErrInvalidColor, len(parts))
	}
	var rgb [3]uint8
	for i, p := range parts {
		n, err := strconv.ParseUint(strings.TrimSpace(p), 10, 8)
		if err != nil {
			return Color{}, fmt.Errorf("%w: rgb component %q", ErrInvalidColor, p)
		}
		rgb[i] = uint8(n)
	}
	return RGB(rgb[0], rgb[1], rgb[2]), nil
}

// IsDefault reports whether this is the terminal default color.
func (c Color) IsDefault() bool {
	return c.kind == kindDefault
}

// System returns the poorest color system able to display this color
// exactly. The default color displays in every system.
func (c Color) System() ColorSystem {
	switch c.kind {
	case kindStandard:
		return ColorSystemStandard
	case kindEightBit:
		return ColorSystemEightBit
	case kindTrueColor:
		return ColorSystemTrueColor
	default:
		return ColorSystemNone
	}
}

// String renders the color in the same token syntax ParseColor accepts.
func (c Color) String() string {
	switch c.kind {
	case kindStandard:
		return standardName(c.index)
	case kindEightBit:
		return fmt.Sprintf("color(%d)", c.index)
	case kindTrueColor:
		return fmt.Sprintf("#%02x%02x%02x", c.r, c.g, c.b)
	default:
		return "default"
	}
}

func standardName(code uint8) string {
	for name, n := range standardNames {
		if n == code {
			return name
		}
		if n+8 == code {
			return "bright_" + name
		}
	}
	return fmt.Sprintf("color(%d)", code)
}

// Downsample converts the color to the nearest color representable in the
// target system, picking the closest palette entry by Euclidean distance in
// RGB with ties broken by lowest palette index. The default color maps to
// itself in every system, and downsampling a color into its own system is
// the identity.
func (c Color) Downsample(target ColorSystem) Color {
	if c.kind == kindDefault {
		return c
	}
	switch target {
	case ColorSystemNone:
		return Color{}
	case ColorSystemTrueColor:
		return c
	case ColorSystemEightBit:
		if c.kind == kindTrueColor {
			return Color{kind: kindEightBit, index: nearestPalette(c.r, c.g, c.b, 256)}
		}
		return c
	default: // ColorSystemStandard
		if c.kind == kindStandard {
			return c
		}
		r, g, b := c.rgb()
		return Color{kind: kindStandard, index: nearestPalette(r, g, b, 16)}
	}
}

// rgb returns an RGB approximation of the color for distance comparisons.
func (c Color) rgb() (r, g, b uint8) {
	switch c.kind {
	case kindTrueColor:
		return c.r, c.g, c.b
	case kindStandard, kindEightBit:
		entry := palette()[c.index]
		return entry[0], entry[1], entry[2]
	default:
		return 0, 0, 0
	}
}

// nearestPalette returns the index of the palette entry (from the first
// size entries) closest to the given RGB value. Iterating in ascending
// index order with a strict comparison breaks ties toward the lowest index.
func nearestPalette(r, g, b uint8, size int) uint8 {
	want := colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}

	best := 0
	bestDist := -1.0
	for i, entry := range palette()[:size] {
		have := colorful.Color{R: float64(entry[0]) / 255, G: float64(entry[1]) / 255, B: float64(entry[2]) / 255}
		d := want.DistanceRgb(have)
		if bestDist < 0 || d < bestDist {
			best, bestDist = i, d
		}
	}
	return uint8(best)
}

var (
	paletteOnce  sync.Once
	paletteTable [256][3]uint8
)

// palette returns the RGB approximation table for the 256-color palette.
// The first 16 entries double as the approximation table for the standard
// palette. Built once, read-only afterwards.
func palette() *[256][3]uint8 {
	paletteOnce.Do(func() {
		// Standard 16, xterm defaults.
		copy(paletteTable[:16], [][3]uint8{
			{0, 0, 0}, {205, 0, 0}, {0, 205, 0}, {205, 205, 0},
			{0, 0, 238}, {205, 0, 205}, {0, 205, 205}, {229, 229, 229},
			{127, 127, 127}, {255, 0, 0}, {0, 255, 0}, {255, 255, 0},
			{92, 92, 255}, {255, 0, 255}, {0, 255, 255}, {255, 255, 255},
		})
		// 6x6x6 color cube.
		level := func(n int) uint8 {
			if n == 0 {
				return 0
			}
			return uint8(55 + 40*n)
		}
		for i := 16; i < 232; i++ {
			n := i - 16
			paletteTable[i] = [3]uint8{level(n / 36), level(n / 6 % 6), level(n % 6)}
		}
		// Grayscale ramp.
		for i := 232; i < 256; i++ {
			v := uint8(8 + 10*(i-232))
			paletteTable[i] = [3]uint8{v, v, v}
		}
	})
	return &paletteTable
}

// fgParams returns the SGR parameters selecting this color as foreground.
func (c Color) fgParams() []string {
	switch c.kind {
	case kindStandard:
		if c.index < 8 {
			return []string{strconv.Itoa(30 + int(c.index))}
		}
		return []string{strconv.Itoa(90 + int(c.index) - 8)}
	case kindEightBit:
		return []string{"38", "5", strconv.Itoa(int(c.index))}
	case kindTrueColor:
		return []string{"38", "2", strconv.Itoa(int(c.r)), strconv.Itoa(int(c.g)), strconv.Itoa(int(c.b))}
	default:
		return []string{"39"}
	}
}

// bgParams returns the SGR parameters selecting this color as background.
func (c Color) bgParams() []string {
	switch c.kind {
	case kindStandard:
		if c.index < 8 {
			return []string{strconv.Itoa(40 + int(c.index))}
		}
		return []string{strconv.Itoa(100 + int(c.index) - 8)}
	case kindEightBit:
		return []string{"48", "5", strconv.Itoa(int(c.index))}
	case kindTrueColor:
		return []string{"48", "2", strconv.Itoa(int(c.r)), strconv.Itoa(int(c.g)), strconv.Itoa(int(c.b))}
	default:
		return []string{"49"}
	}
}
