// Package cli implements the glint command line interface: a small demo
// and rendering front end over the library. Subcommands render markup to
// the current terminal and run live displays, which is also how the
// library's escape output gets eyeballed against real terminals.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/tomfleet/glint/internal/logging"
)

// Global flag values accessible to all subcommands.
var (
	flagVerbose bool
	flagQuiet   bool
	flagTheme   string
	flagNoColor bool
)

// rootCmd is the base command for glint.
var rootCmd = &cobra.Command{
	Use:   "glint",
	Short: "Render styled terminal text from bracketed markup",
	Long: `Glint turns bracketed markup like "[bold red]error[/]" into wrapped,
colored terminal output, and can redraw that output in place for live
progress displays. The render and live subcommands front the library;
the demo subcommand exercises the whole pipeline at once.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Check env vars for flags not explicitly set on command line.
		flags := cmd.Flags()
		if envBool(flags, "verbose", "GLINT_VERBOSE") {
			flagVerbose = true
		}
		if envBool(flags, "quiet", "GLINT_QUIET") {
			flagQuiet = true
		}
		if envBool(flags, "no-color", "NO_COLOR") || envBool(flags, "no-color", "GLINT_NO_COLOR") {
			flagNoColor = true
		}

		jsonFormat := os.Getenv("GLINT_LOG_FORMAT") == "json"
		logging.Setup(flagVerbose, flagQuiet, jsonFormat)
		return nil
	},
}

// envBool reports whether a boolean flag left unset on the command line
// should be turned on by its environment variable.
func envBool(flags *pflag.FlagSet, name, env string) bool {
	return !flags.Changed(name) && os.Getenv(env) != ""
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Enable verbose (debug) output (env: GLINT_VERBOSE)")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress all output except errors (env: GLINT_QUIET)")
	rootCmd.PersistentFlags().StringVar(&flagTheme, "theme", "", "Path to a TOML theme file mapping names to styles")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "Disable colored output (env: GLINT_NO_COLOR, NO_COLOR)")
}

// Execute runs the root command and returns the exit code.
func Execute() int {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}
