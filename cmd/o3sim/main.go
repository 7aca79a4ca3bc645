// Package main provides the entry point for O3Sim.
// O3Sim is a cycle-accurate out-of-order integer pipeline simulator.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/sarchlab/o3sim/loader"
	"github.com/sarchlab/o3sim/timing/config"
	"github.com/sarchlab/o3sim/timing/pipeline"
)

var (
	configPath = flag.String("config", "", "Path to machine configuration YAML file")
	verbose    = flag.Bool("v", false, "Verbose output")
)

func main() {
	flag.Parse()

	if flag.NArg() != 2 {
		fmt.Fprintf(os.Stderr, "Usage: o3sim [options] <input.json> <output.json>\n")
		fmt.Fprintf(os.Stderr, "\nOptions:\n")
		flag.PrintDefaults()
		os.Exit(1)
	}

	inputPath := flag.Arg(0)
	outputPath := flag.Arg(1)

	cfg := config.DefaultConfig()
	if *configPath != "" {
		var err error
		cfg, err = config.LoadConfig(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}

	program, err := loader.LoadProgram(inputPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading program: %v\n", err)
		os.Exit(1)
	}

	if *verbose {
		fmt.Printf("Loaded: %s (%d instructions)\n", inputPath, len(program))
	}

	pipe := pipeline.NewPipeline(program, pipeline.WithConfig(cfg))
	trace := pipe.Run()

	if err := loader.SaveTrace(outputPath, trace); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing trace: %v\n", err)
		os.Exit(1)
	}

	if *verbose {
		stats := pipe.Stats()
		fmt.Printf("Trace saved to %s (%d snapshots)\n", outputPath, len(trace))
		fmt.Printf("\n")
		fmt.Printf("Total Instructions: %d\n", stats.Instructions)
		fmt.Printf("Total Cycles: %d\n", stats.Cycles)
		fmt.Printf("CPI: %.2f\n", stats.CPI())
		fmt.Printf("\n")
		fmt.Printf("Pipeline Events:\n")
		fmt.Printf("  Backpressure stalls: %d\n", stats.BackpressureStalls)
		fmt.Printf("  Exceptions:          %d\n", stats.Exceptions)
		fmt.Printf("  Squashed:            %d\n", stats.Squashed)
	}
}
