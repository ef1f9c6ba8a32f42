package config

import (
	"path/filepath"
	"testing"

	"github.com/san-kum/edyn/internal/physics"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Dt <= 0 {
		t.Error("dt should be positive")
	}
	if cfg.Duration <= 0 {
		t.Error("duration should be positive")
	}
	if len(cfg.Particles) != 1 {
		t.Fatalf("expected one default particle, got %d", len(cfg.Particles))
	}
	if cfg.Particles[0].VX != DefaultV0X {
		t.Errorf("expected default vx %g, got %g", DefaultV0X, cfg.Particles[0].VX)
	}
	if cfg.Fields.Bz != DefaultBz {
		t.Errorf("expected default Bz %g, got %g", DefaultBz, cfg.Fields.Bz)
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("cyclotron")
	if cfg == nil {
		t.Fatal("expected cyclotron preset")
	}
	if cfg.Fields.Bz != DefaultBz {
		t.Errorf("expected Bz %g, got %g", DefaultBz, cfg.Fields.Bz)
	}

	if GetPreset("nonexistent") != nil {
		t.Error("expected nil for unknown preset")
	}
}

func TestListPresets(t *testing.T) {
	names := ListPresets()
	if len(names) == 0 {
		t.Fatal("expected presets")
	}
	for i := 1; i < len(names); i++ {
		if names[i-1] >= names[i] {
			t.Errorf("presets not sorted: %q before %q", names[i-1], names[i])
		}
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scenario.yaml")

	orig := &Config{
		Dt:               1e-12,
		Duration:         2e-10,
		RecordTrajectory: true,
		Integrator:       "euler",
		Fields:           FieldConfig{Ex: 10, Ey: -20, Bz: 0.3},
		Particles: []ParticleConfig{
			{X: 1e-6, VX: 5e4, Mass: 1e-27, Charge: 1.602e-19},
		},
	}

	if err := Save(path, orig); err != nil {
		t.Fatal(err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}

	if loaded.Dt != orig.Dt || loaded.Duration != orig.Duration {
		t.Errorf("timing did not round-trip: %+v", loaded)
	}
	if loaded.Fields != orig.Fields {
		t.Errorf("fields did not round-trip: %+v", loaded.Fields)
	}
	if len(loaded.Particles) != 1 || loaded.Particles[0] != orig.Particles[0] {
		t.Errorf("particles did not round-trip: %+v", loaded.Particles)
	}
	if loaded.Integrator != "euler" {
		t.Errorf("integrator did not round-trip: %q", loaded.Integrator)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestBuildParticles(t *testing.T) {
	cfg := &Config{Particles: []ParticleConfig{
		{VX: 1e5},
		{X: 1, Y: 2, VX: 3, VY: 4, Mass: 1.7e-27, Charge: 1.602e-19},
	}}

	parts := cfg.BuildParticles()
	if len(parts) != 2 {
		t.Fatalf("expected 2 particles, got %d", len(parts))
	}

	if parts[0].Mass != physics.ElectronMass || parts[0].Charge != physics.ElectronCharge {
		t.Errorf("unset mass/charge should default to the electron: %+v", parts[0])
	}
	if parts[1].Mass != 1.7e-27 || parts[1].Charge != 1.602e-19 {
		t.Errorf("explicit mass/charge should be kept: %+v", parts[1])
	}
	if parts[1].Position != (physics.Vector2{X: 1, Y: 2}) || parts[1].Velocity != (physics.Vector2{X: 3, Y: 4}) {
		t.Errorf("kinematics not applied: %+v", parts[1])
	}
}

func TestBuildFields(t *testing.T) {
	cfg := &Config{Fields: FieldConfig{Ex: 1, Ey: 2, Bz: 3}}
	e, b := cfg.BuildFields()

	if e.Field != (physics.Vector2{X: 1, Y: 2}) {
		t.Errorf("unexpected electric field %+v", e.Field)
	}
	if b.Field != (physics.Vector3{Z: 3}) {
		t.Errorf("unexpected magnetic field %+v", b.Field)
	}
}
