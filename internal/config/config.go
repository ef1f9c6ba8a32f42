package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/edyn/internal/physics"
)

const (
	DefaultDt        = 5e-12 // s
	DefaultDuration  = 1e-9  // s
	DefaultBz        = 0.1   // T
	DefaultV0X       = 1e5   // m/s
	DefaultFrameTime = 1e-6  // simulated s per rendered frame
)

// Config describes a full simulation setup: timing, field values, and
// initial particle kinematics.
type Config struct {
	Dt               float64          `yaml:"dt"`
	Duration         float64          `yaml:"duration"`
	RecordTrajectory bool             `yaml:"record_trajectory"`
	Workers          int              `yaml:"workers"`
	Integrator       string           `yaml:"integrator"`
	Fields           FieldConfig      `yaml:"fields"`
	Particles        []ParticleConfig `yaml:"particles"`
}

// FieldConfig holds uniform field values: in-plane E and out-of-plane Bz.
type FieldConfig struct {
	Ex float64 `yaml:"ex"`
	Ey float64 `yaml:"ey"`
	Bz float64 `yaml:"bz"`
}

// ParticleConfig holds one particle's initial kinematics. Zero mass or
// charge means "use the electron value"; an explicit non-electron particle
// sets both.
type ParticleConfig struct {
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	VX     float64 `yaml:"vx"`
	VY     float64 `yaml:"vy"`
	Mass   float64 `yaml:"mass"`
	Charge float64 `yaml:"charge"`
}

// DefaultConfig is a single electron at the origin moving in +x through a
// 0.1 T out-of-plane field, mirroring the CLI defaults.
func DefaultConfig() *Config {
	return &Config{
		Dt:               DefaultDt,
		Duration:         DefaultDuration,
		RecordTrajectory: true,
		Integrator:       "rk4",
		Fields:           FieldConfig{Bz: DefaultBz},
		Particles:        []ParticleConfig{{VX: DefaultV0X}},
	}
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

// BuildParticles converts the particle configs into engine particles,
// filling in electron mass and charge where unset.
func (c *Config) BuildParticles() []*physics.Particle {
	out := make([]*physics.Particle, 0, len(c.Particles))
	for _, pc := range c.Particles {
		p := physics.NewElectron(physics.Vector2{X: pc.X, Y: pc.Y}, physics.Vector2{X: pc.VX, Y: pc.VY})
		if pc.Mass != 0 {
			p.Mass = pc.Mass
		}
		if pc.Charge != 0 {
			p.Charge = pc.Charge
		}
		out = append(out, p)
	}
	return out
}

// BuildFields constructs the uniform field handles shared by a run.
func (c *Config) BuildFields() (*physics.UniformElectricField, *physics.UniformMagneticField) {
	e := &physics.UniformElectricField{Field: physics.Vector2{X: c.Fields.Ex, Y: c.Fields.Ey}}
	b := &physics.UniformMagneticField{Field: physics.Vector3{Z: c.Fields.Bz}}
	return e, b
}
