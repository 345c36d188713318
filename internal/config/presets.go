package config

import (
	"math"
	"sort"
)

// Presets are ready-made fields for the CLI, keyed by name.
var Presets = map[string]*Config{
	// An intact ringworld, one full-circle segment.
	"ringworld": {
		Falloff:   "smoothstep",
		Strength:  9.8,
		Influence: 200,
		Dt:        0.05, Duration: 60, Integrator: "rk4",
		Probe: ProbeConfig{Position: Vec3{X: 1150}},
		Segments: []SegmentConfig{
			{
				ID: "ring", ArcStart: 0, ArcEnd: 2 * math.Pi,
				RingRadius: 1000, TubeRadius: 100,
				Axis: Vec3{Y: 1}, Mass: 1e9,
			},
		},
	},

	// The same ring broken in two, the halves drifting apart slowly.
	"fracture": {
		Falloff:   "smoothstep",
		Strength:  9.8,
		Influence: 200,
		Dt:        0.05, Duration: 60, Integrator: "rk4",
		Probe: ProbeConfig{Position: Vec3{X: -1150, Z: 30}},
		Segments: []SegmentConfig{
			{
				ID: "east", ParentID: "ring",
				ArcStart: 0, ArcEnd: math.Pi,
				RingRadius: 1000, TubeRadius: 100,
				Axis: Vec3{Y: 1}, Mass: 5e8,
			},
			{
				ID: "west", ParentID: "ring",
				ArcStart: math.Pi, ArcEnd: 2 * math.Pi,
				RingRadius: 1000, TubeRadius: 100,
				Center: Vec3{Y: 40},
				Axis:   Vec3{Y: 1}, Mass: 5e8,
				AngularVelocity: Vec3{X: 0.02},
			},
		},
	},

	// A lone quarter arc spinning about the old ring axis.
	"shard": {
		Falloff:   "cubic",
		Strength:  9.8,
		Influence: 150,
		Dt:        0.02, Duration: 30, Integrator: "rk4",
		Probe: ProbeConfig{Position: Vec3{X: 1120}, Velocity: Vec3{Z: -20}},
		Segments: []SegmentConfig{
			{
				ID: "shard", ParentID: "ring",
				ArcStart: 0, ArcEnd: math.Pi / 2,
				RingRadius: 1000, TubeRadius: 80,
				Axis: Vec3{Y: 1}, RotationSpeed: 0.1, Mass: 2.5e8,
			},
		},
	},
}

func GetPreset(name string) *Config {
	return Presets[name]
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
