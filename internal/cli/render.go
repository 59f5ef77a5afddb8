package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tomfleet/glint"
	"github.com/tomfleet/glint/internal/logging"
	"github.com/tomfleet/glint/terminal"
)

var (
	renderWidth     int
	renderFullReset bool
)

var renderCmd = &cobra.Command{
	Use:   "render [markup...]",
	Short: "Render bracketed markup to the terminal",
	Long: `Render parses bracketed markup like "[bold red]error[/]" and writes
wrapped, colored output to stdout. Markup is read from the arguments,
or from stdin when no arguments are given.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := logging.New("render")

		markup := strings.Join(args, " ")
		if len(args) == 0 {
			in, err := io.ReadAll(os.Stdin)
			if err != nil {
				return fmt.Errorf("reading stdin: %w", err)
			}
			markup = strings.TrimRight(string(in), "\n")
		}

		theme, err := loadTheme()
		if err != nil {
			return err
		}
		text, err := glint.ParseMarkupWith(markup, theme)
		if err != nil {
			return fmt.Errorf("parsing markup: %w", err)
		}

		term := newTerminal()
		width := renderWidth
		if width <= 0 {
			width = term.Width()
		}
		logger.Debug("rendering", "width", width, "system", term.ColorSystem())

		frame, err := glint.WrapFrame(text, width)
		if err != nil {
			return err
		}
		policy := glint.EmitMinimal
		if renderFullReset {
			policy = glint.EmitFullReset
		}
		return glint.NewEmitter(term.ColorSystem(), policy).EmitFrame(term, frame)
	},
}

func init() {
	renderCmd.Flags().IntVarP(&renderWidth, "width", "w", 0, "Wrap width in columns (default: terminal width)")
	renderCmd.Flags().BoolVar(&renderFullReset, "full-reset", false, "Reset all styling before every segment instead of emitting minimal transitions")
	rootCmd.AddCommand(renderCmd)
}

// loadTheme returns the theme named by --theme, or the built-in defaults.
func loadTheme() (*glint.Theme, error) {
	if flagTheme == "" {
		return glint.DefaultTheme(), nil
	}
	theme, err := glint.LoadTheme(flagTheme)
	if err != nil {
		return nil, err
	}
	return theme, nil
}

// newTerminal wraps stdout, forcing colors off when --no-color is set.
func newTerminal() terminal.Terminal {
	t := terminal.NewANSI(os.Stdout)
	if flagNoColor {
		return terminal.NoColor(t)
	}
	return t
}
