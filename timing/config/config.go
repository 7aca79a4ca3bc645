// Package config provides the machine-description configuration for the
// timing simulator.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config describes the simulated machine. The register file sizes are
// architectural constants and are not configurable; the widths and queue
// bounds below default to the reference machine (4-wide, 32-entry).
type Config struct {
	// FetchWidth is the number of instructions fetched and decoded per
	// cycle.
	FetchWidth int `yaml:"fetchWidth"`

	// IssueUnits is the number of integer execution units.
	IssueUnits int `yaml:"issueUnits"`

	// CommitWidth is the number of instructions retired per cycle. It is
	// also the per-cycle rollback width during exception recovery.
	CommitWidth int `yaml:"commitWidth"`

	// QueueCapacity bounds the integer queue; rename backpressures when a
	// decode group would overflow it.
	QueueCapacity int `yaml:"queueCapacity"`

	// ReorderCapacity bounds the active list.
	ReorderCapacity int `yaml:"reorderCapacity"`
}

// DefaultConfig returns the reference machine configuration.
func DefaultConfig() *Config {
	return &Config{
		FetchWidth:      4,
		IssueUnits:      4,
		CommitWidth:     4,
		QueueCapacity:   32,
		ReorderCapacity: 32,
	}
}

// LoadConfig loads a configuration from a YAML file. Fields absent from
// the file keep their defaults.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks that the configuration is internally consistent.
func (c *Config) Validate() error {
	if c.FetchWidth <= 0 {
		return fmt.Errorf("fetchWidth must be positive")
	}
	if c.IssueUnits <= 0 {
		return fmt.Errorf("issueUnits must be positive")
	}
	if c.CommitWidth <= 0 {
		return fmt.Errorf("commitWidth must be positive")
	}
	if c.QueueCapacity <= 0 {
		return fmt.Errorf("queueCapacity must be positive")
	}
	if c.ReorderCapacity <= 0 {
		return fmt.Errorf("reorderCapacity must be positive")
	}
	if c.FetchWidth > c.QueueCapacity {
		return fmt.Errorf("fetchWidth must not exceed queueCapacity")
	}
	if c.FetchWidth > c.ReorderCapacity {
		return fmt.Errorf("fetchWidth must not exceed reorderCapacity")
	}
	return nil
}

// Clone returns a copy of the configuration.
func (c *Config) Clone() *Config {
	out := *c
	return &out
}
