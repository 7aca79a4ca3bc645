package loader

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/sarchlab/o3sim/timing/pipeline"
)

// SaveTrace writes a snapshot trace as a pretty-printed JSON array. The
// trace has one element per simulated cycle plus the initial reset
// state.
func SaveTrace(path string, trace []pipeline.Snapshot) error {
	data, err := json.MarshalIndent(trace, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize trace: %w", err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write trace file: %w", err)
	}
	return nil
}
