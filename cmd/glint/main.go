package main

import (
	"os"

	"github.com/tomfleet/glint/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
