package main

import (
	"fmt"
	"os"
	"time"

	"github.com/dsnet/golib/unitconv"
	"github.com/urfave/cli/v2"

	"github.com/atlas77-lang/atlas77/internal/interpreter"
	"github.com/atlas77-lang/atlas77/internal/program"
	"github.com/atlas77-lang/atlas77/internal/value"
)

var RunCmd = cli.Command{
	Action:    doRun,
	Name:      "run",
	Usage:     "Run an Atlas 77 bytecode program",
	ArgsUsage: "<program-file>",
	Flags: []cli.Flag{
		&cli.IntFlag{
			Name:  "heap-capacity",
			Usage: "number of heap cells to allocate for the run",
			Value: 1 << 16,
		},
		&cli.BoolFlag{
			Name:  "stats",
			Usage: "collect and print instruction-sequence statistics",
		},
		&cli.BoolFlag{
			Name:  "trace",
			Usage: "print every executed instruction to stderr",
		},
	},
}

func doRun(ctx *cli.Context) error {
	if ctx.Args().Len() < 1 {
		return fmt.Errorf("missing program file, usage: atlas77 run <program-file>")
	}
	path := ctx.Args().Get(0)

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("could not open program file: %w", err)
	}
	defer f.Close()

	prog, err := program.Parse(f)
	if err != nil {
		return fmt.Errorf("could not parse program: %w", err)
	}

	cfg := interpreter.DefaultConfig()
	cfg.HeapCapacity = ctx.Int("heap-capacity")

	m, err := interpreter.New(prog, cfg)
	if err != nil {
		return fmt.Errorf("could not start machine: %w", err)
	}

	start := time.Now()

	var result value.Value
	switch {
	case ctx.Bool("stats"):
		result, err = runWithStatistics(m)
	case ctx.Bool("trace"):
		result, err = m.RunWithTrace(os.Stderr)
	default:
		result, err = m.Run()
	}
	if err != nil {
		return err
	}

	elapsed := time.Since(start)
	heapBytesPerSec := float64(m.Heap().Cap()) / elapsed.Seconds()
	fmt.Printf("result: %s\n", result.String())
	fmt.Printf("elapsed: %s (heap scanned at %scells/s)\n",
		elapsed, unitconv.FormatPrefix(heapBytesPerSec, unitconv.SI, 0))
	return nil
}

func runWithStatistics(m *interpreter.Machine) (value.Value, error) {
	result, summary, err := m.RunWithStatistics()
	fmt.Print(summary)
	return result, err
}
