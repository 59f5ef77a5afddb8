// Package glint renders richly styled text to a terminal. A compact
// bracketed markup language ("[bold red]Hello[/]") or programmatic style
// values are turned into correctly wrapped, correctly colored,
// minimally-escaped terminal output.
//
// The pipeline is: markup string -> ParseMarkup -> Text (plain content plus
// ordered style spans) -> Wrap (Unicode-aware measurement against a target
// width) -> lines of resolved style runs -> Emitter (coalesced segments and
// minimal SGR escape sequences) -> bytes on a terminal.
//
// Everything in this package is pure and stateless apart from the Emitter's
// per-render escape-minimization tracker, so rendering may run on any
// goroutine, including in parallel for independent Text values. Live
// redrawing for progress bars and updating views lives in the live and
// progress subpackages.
package glint
