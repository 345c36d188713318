package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/ringfield/internal/field"
	"github.com/san-kum/ringfield/internal/geom"
)

const (
	DefaultStrength        = 9.8
	DefaultInfluenceRadius = 100.0
	DefaultDt              = 0.05
	DefaultDuration        = 30.0
)

// Config describes a complete gravity field plus probe-run parameters. A
// saved config reconstructs its segments bit-identically on load.
type Config struct {
	Falloff    string          `yaml:"falloff"`
	Blend      string          `yaml:"blend"`
	Strength   float64         `yaml:"strength"`
	Influence  float64         `yaml:"influence_radius"`
	Dt         float64         `yaml:"dt"`
	Duration   float64         `yaml:"duration"`
	Integrator string          `yaml:"integrator"`
	Probe      ProbeConfig     `yaml:"probe"`
	Segments   []SegmentConfig `yaml:"segments"`
}

type ProbeConfig struct {
	Position Vec3 `yaml:"position"`
	Velocity Vec3 `yaml:"velocity"`
}

// SegmentConfig is the on-disk form of one fragment.
type SegmentConfig struct {
	ID              string  `yaml:"id"`
	ParentID        string  `yaml:"parent_id,omitempty"`
	ArcStart        float64 `yaml:"arc_start"`
	ArcEnd          float64 `yaml:"arc_end"`
	RingRadius      float64 `yaml:"ring_radius"`
	TubeRadius      float64 `yaml:"tube_radius"`
	Center          Vec3    `yaml:"center"`
	Axis            Vec3    `yaml:"axis"`
	Rotation        float64 `yaml:"rotation,omitempty"`
	RotationSpeed   float64 `yaml:"rotation_speed,omitempty"`
	AngularVelocity Vec3    `yaml:"angular_velocity,omitempty"`
	Strength        float64 `yaml:"strength,omitempty"`
	Influence       float64 `yaml:"influence_radius,omitempty"`
	Mass            float64 `yaml:"mass,omitempty"`
	VoxelCount      int     `yaml:"voxel_count,omitempty"`
}

type Vec3 struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	Z float64 `yaml:"z"`
}

func (v Vec3) Vec() geom.Vec3 { return geom.Vec3{X: v.X, Y: v.Y, Z: v.Z} }

func DefaultConfig() *Config {
	return &Config{
		Falloff:    "smoothstep",
		Blend:      "compound",
		Strength:   DefaultStrength,
		Influence:  DefaultInfluenceRadius,
		Dt:         DefaultDt,
		Duration:   DefaultDuration,
		Integrator: "rk4",
	}
}

// Clone returns an independent copy. Callers that override fields on a
// shared config (presets in particular) work on the clone.
func (c *Config) Clone() *Config {
	out := *c
	out.Segments = make([]SegmentConfig, len(c.Segments))
	copy(out.Segments, c.Segments)
	return &out
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
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

// Build constructs a coordinator holding every segment in the config.
func (c *Config) Build() (*field.Coordinator, error) {
	curve, err := field.ParseFalloff(c.Falloff)
	if err != nil {
		return nil, err
	}

	blend := field.BlendCompound
	switch c.Blend {
	case "", "compound":
	case "linear":
		blend = field.BlendLinear
	default:
		return nil, fmt.Errorf("config: unknown blend mode %q", c.Blend)
	}

	coord := field.NewCoordinator(field.Defaults{
		Strength:        c.Strength,
		InfluenceRadius: c.Influence,
		Curve:           curve,
		Blend:           blend,
	})

	for _, s := range c.Segments {
		_, err := coord.Register(s.ID, field.SegmentConfig{
			ArcStart:        s.ArcStart,
			ArcEnd:          s.ArcEnd,
			RingRadius:      s.RingRadius,
			TubeRadius:      s.TubeRadius,
			Center:          s.Center.Vec(),
			Axis:            s.Axis.Vec(),
			Rotation:        s.Rotation,
			RotationSpeed:   s.RotationSpeed,
			AngularVelocity: s.AngularVelocity.Vec(),
			Strength:        s.Strength,
			InfluenceRadius: s.Influence,
			Mass:            s.Mass,
			VoxelCount:      s.VoxelCount,
			ParentID:        s.ParentID,
		})
		if err != nil {
			return nil, err
		}
	}

	return coord, nil
}
