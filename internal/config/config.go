package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"functrace/internal/poly"
	"functrace/internal/trace"
)

const (
	DefaultDt         = 0.016
	DefaultDuration   = 10.0
	DefaultSpeed      = 1.0
	DefaultBoundary   = -10.0
	DefaultResetDelay = 1.0
	DefaultColor      = "86"
	DefaultWidth      = 2.0
)

type Config struct {
	Dt       float64        `yaml:"dt"`
	Duration float64        `yaml:"duration"`
	Tracers  []TracerConfig `yaml:"tracers"`
}

type TracerConfig struct {
	Term       poly.Term   `yaml:"term"`
	Order      int         `yaml:"order"`
	Speed      float64     `yaml:"speed"`
	Boundary   float64     `yaml:"boundary"`
	Start      StartConfig `yaml:"start"`
	ResetDelay float64     `yaml:"reset_delay"`
	Color      string      `yaml:"color"`
	Width      float64     `yaml:"width"`
}

type StartConfig struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

func DefaultConfig() *Config {
	return &Config{
		Dt:       DefaultDt,
		Duration: DefaultDuration,
		Tracers: []TracerConfig{
			{
				Term:       poly.Term{Coefficient: 2, Exponent: 3},
				Speed:      DefaultSpeed,
				Boundary:   DefaultBoundary,
				ResetDelay: DefaultResetDelay,
				Color:      DefaultColor,
				Width:      DefaultWidth,
			},
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	cfg.Tracers = nil
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if len(cfg.Tracers) == 0 {
		cfg.Tracers = DefaultConfig().Tracers
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// AsTracer converts the serialized form into the runtime tracer config.
func (tc TracerConfig) AsTracer() trace.Config {
	return trace.Config{
		Term:       tc.Term,
		Order:      tc.Order,
		Speed:      tc.Speed,
		Boundary:   tc.Boundary,
		Start:      poly.Point{X: tc.Start.X, Y: tc.Start.Y},
		ResetDelay: tc.ResetDelay,
	}
}
