// Package main provides the entry point for O3Sim.
// O3Sim is a cycle-accurate simulator of an out-of-order superscalar
// integer pipeline with register renaming and precise exceptions.
//
// For the full CLI, use: go run ./cmd/o3sim
package main

import (
	"fmt"
	"os"
)

func main() {
	fmt.Println("O3Sim - Out-of-Order Pipeline Simulator")
	fmt.Println("")
	fmt.Println("Usage: o3sim [options] <input.json> <output.json>")
	fmt.Println("")
	fmt.Println("Options:")
	fmt.Println("  -config    Path to machine configuration YAML file")
	fmt.Println("  -v         Verbose output")
	fmt.Println("")
	fmt.Println("Run 'go run ./cmd/o3sim' for the full CLI.")

	if len(os.Args) > 1 {
		fmt.Println("\nNote: You provided arguments. Use 'go run ./cmd/o3sim' instead.")
	}
}
