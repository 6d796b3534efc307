// Command atlas77 runs compiled Atlas 77 bytecode programs, in the text
// assembly form internal/program.WriteText/Parse round-trips.
package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "atlas77",
		Usage: "Atlas 77 bytecode interpreter",
		Commands: []*cli.Command{
			&RunCmd,
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
