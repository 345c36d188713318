package config

import (
	"math"
	"path/filepath"
	"sort"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Falloff != "smoothstep" {
		t.Errorf("expected smoothstep falloff, got %s", cfg.Falloff)
	}
	if cfg.Dt <= 0 {
		t.Error("dt should be positive")
	}
	if cfg.Strength <= 0 {
		t.Error("strength should be positive")
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("fracture")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if len(cfg.Segments) != 2 {
		t.Errorf("fracture preset should have 2 segments, got %d", len(cfg.Segments))
	}

	if GetPreset("nonexistent") != nil {
		t.Error("expected nil for nonexistent preset")
	}
}

func TestListPresets(t *testing.T) {
	names := ListPresets()
	if len(names) == 0 {
		t.Fatal("expected at least one preset")
	}
	if !sort.StringsAreSorted(names) {
		t.Errorf("preset names should be sorted, got %v", names)
	}
}

func TestCloneIsIndependent(t *testing.T) {
	preset := GetPreset("ringworld")
	cfg := preset.Clone()

	cfg.Dt = 0.001
	cfg.Integrator = "euler"
	cfg.Segments[0].TubeRadius = 1

	if preset.Dt == 0.001 || preset.Integrator == "euler" {
		t.Error("mutating a clone changed the shared preset")
	}
	if preset.Segments[0].TubeRadius == 1 {
		t.Error("clone shares its segment slice with the preset")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "field.yaml")

	want := GetPreset("shard")
	if err := Save(path, want); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if got.Falloff != want.Falloff || got.Dt != want.Dt {
		t.Errorf("run parameters did not round trip: %+v", got)
	}
	if len(got.Segments) != 1 {
		t.Fatalf("expected 1 segment, got %d", len(got.Segments))
	}
	s := got.Segments[0]
	w := want.Segments[0]
	if s.ID != w.ID || s.ArcEnd != w.ArcEnd || s.RingRadius != w.RingRadius ||
		s.RotationSpeed != w.RotationSpeed || s.Mass != w.Mass {
		t.Errorf("segment did not round trip: %+v", s)
	}
}

func TestBuild(t *testing.T) {
	coord, err := GetPreset("fracture").Build()
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if coord.Count() != 2 {
		t.Errorf("expected 2 registered segments, got %d", coord.Count())
	}
	seg := coord.Segment("east")
	if seg == nil {
		t.Fatal("segment east not registered")
	}
	if seg.Strength != 9.8 || seg.InfluenceRadius != 200 {
		t.Errorf("coordinator defaults not applied: %+v", seg)
	}
	if math.Abs(seg.ArcEnd-math.Pi) > 1e-12 {
		t.Errorf("arc end = %f, expected pi", seg.ArcEnd)
	}
}

func TestBuildRejectsBadFalloff(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Falloff = "bogus"
	if _, err := cfg.Build(); err == nil {
		t.Error("expected error for unknown falloff")
	}

	cfg = DefaultConfig()
	cfg.Blend = "bogus"
	if _, err := cfg.Build(); err == nil {
		t.Error("expected error for unknown blend mode")
	}
}
