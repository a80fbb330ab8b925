package cmd

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/packet-sim/packet-sim/sim"
	"github.com/packet-sim/packet-sim/sim/trace"
)

// RunConfig represents the full run configuration file. Every field can also
// be set by a flag of the same name; flags win when they are set explicitly.
// All keys must be listed to satisfy KnownFields(true) strict parsing.
type RunConfig struct {
	Routers            int     `yaml:"routers"`
	ArrivalProbability float64 `yaml:"arrival_probability"`
	ArrivalSlots       int     `yaml:"arrival_slots"`
	MaxBufferSize      int     `yaml:"max_buffer_size"`
	MinPacketSize      int     `yaml:"min_packet_size"`
	MaxPacketSize      int     `yaml:"max_packet_size"`
	Bandwidth          int     `yaml:"bandwidth"`
	Duration           int64   `yaml:"duration"`
	DispatchPolicy     string  `yaml:"dispatch_policy"`
	Seed               int64   `yaml:"seed"`
	Runs               int     `yaml:"runs"`
	RNG                string  `yaml:"rng"`
	TraceLevel         string  `yaml:"trace_level"`
}

// DefaultRunConfig returns the values used when neither a file nor a flag sets a field.
func DefaultRunConfig() RunConfig {
	return RunConfig{
		Routers:            4,
		ArrivalProbability: 0.5,
		ArrivalSlots:       sim.DefaultArrivalSlots,
		MaxBufferSize:      10,
		MinPacketSize:      100,
		MaxPacketSize:      500,
		Bandwidth:          2,
		Duration:           25,
		DispatchPolicy:     "least-loaded",
		Seed:               42,
		Runs:               1,
		RNG:                sim.RandomBackendMath,
		TraceLevel:         string(trace.TraceLevelNone),
	}
}

// LoadRunConfig reads a YAML run configuration on top of DefaultRunConfig.
// Keys missing from the file keep their defaults; unknown keys are an error.
func LoadRunConfig(path string) (*RunConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading run config: %w", err)
	}
	cfg := DefaultRunConfig()
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("parsing run config: %w", err)
	}
	return &cfg, nil
}

// SimConfig returns the simulation parameters of the run configuration.
func (c RunConfig) SimConfig() sim.SimConfig {
	return sim.SimConfig{
		NumRouters:         c.Routers,
		ArrivalProbability: c.ArrivalProbability,
		ArrivalSlots:       c.ArrivalSlots,
		MaxBufferSize:      c.MaxBufferSize,
		MinPacketSize:      c.MinPacketSize,
		MaxPacketSize:      c.MaxPacketSize,
		Bandwidth:          c.Bandwidth,
		Duration:           c.Duration,
		DispatchPolicy:     c.DispatchPolicy,
	}
}

// Validate checks the simulation parameters and the run options.
func (c RunConfig) Validate() error {
	if err := c.SimConfig().Validate(); err != nil {
		return err
	}
	if c.Runs <= 0 {
		return fmt.Errorf("runs must be greater than 0, got %d", c.Runs)
	}
	if !sim.ValidRandomBackends[c.RNG] {
		return fmt.Errorf("unknown rng backend %q", c.RNG)
	}
	if !trace.IsValidTraceLevel(c.TraceLevel) {
		return fmt.Errorf("unknown trace level %q", c.TraceLevel)
	}
	return nil
}
