package config

import (
	"sort"

	"functrace/internal/poly"
)

var Presets = map[string]*Config{
	"cubic": {
		Dt: 0.016, Duration: 15.0,
		Tracers: []TracerConfig{
			{Term: poly.Term{Coefficient: 2, Exponent: 3}, Speed: 0.5, Boundary: -30, ResetDelay: 1, Color: "86", Width: 2},
		},
	},
	"parabola": {
		Dt: 0.016, Duration: 15.0,
		Tracers: []TracerConfig{
			{Term: poly.Term{Coefficient: -1, Exponent: 2}, Speed: 1, Boundary: -20, ResetDelay: 1, Color: "205", Width: 2},
		},
	},
	"root": {
		Dt: 0.016, Duration: 20.0,
		Tracers: []TracerConfig{
			{Term: poly.Term{Coefficient: 3, Exponent: 0.5}, Speed: 2, Boundary: -5, ResetDelay: 1, Color: "214", Width: 2},
		},
	},
	"inverse": {
		Dt: 0.016, Duration: 20.0,
		Tracers: []TracerConfig{
			{Term: poly.Term{Coefficient: 1, Exponent: -1}, Speed: 1, Boundary: -5, ResetDelay: 1, Color: "39", Width: 2},
		},
	},
	// A curve alongside its first two derivatives, restarting in lockstep.
	"family": {
		Dt: 0.016, Duration: 30.0,
		Tracers: []TracerConfig{
			{Term: poly.Term{Coefficient: 2, Exponent: 3}, Order: 0, Speed: 0.5, Boundary: -30, ResetDelay: 1, Color: "86", Width: 2},
			{Term: poly.Term{Coefficient: 2, Exponent: 3}, Order: 1, Speed: 0.5, Boundary: -30, ResetDelay: 1, Color: "205", Width: 2},
			{Term: poly.Term{Coefficient: 2, Exponent: 3}, Order: 2, Speed: 0.5, Boundary: -30, ResetDelay: 1, Color: "214", Width: 2},
		},
	},
}

func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
