// Package loader handles the simulator's file I/O: loading programs and
// persisting simulation traces.
package loader

import (
	"encoding/json"
	"fmt"
	"os"
)

// Program is an ordered, immutable sequence of textual instructions.
// The program counter indexes into it.
type Program []string

// LoadProgram parses a program file: a JSON document whose top-level
// value is an array of instruction strings.
func LoadProgram(path string) (Program, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read program file: %w", err)
	}

	var program Program
	if err := json.Unmarshal(data, &program); err != nil {
		return nil, fmt.Errorf("failed to parse program: %w", err)
	}

	return program, nil
}
