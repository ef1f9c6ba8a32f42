package config

import "sort"

// cyclotronPeriod is one orbit of an electron in the default 0.1 T field,
// 2*pi*m/(|q|*Bz) with electron constants.
const cyclotronPeriod = 3.5727e-10

// Presets are ready-made scenarios for the CLI.
var Presets = map[string]*Config{
	"cyclotron": {
		Dt: DefaultDt, Duration: cyclotronPeriod, RecordTrajectory: true, Integrator: "rk4",
		Fields:    FieldConfig{Bz: DefaultBz},
		Particles: []ParticleConfig{{VX: DefaultV0X}},
	},
	"exb-drift": {
		Dt: DefaultDt, Duration: 4 * cyclotronPeriod, RecordTrajectory: true, Integrator: "rk4",
		Fields:    FieldConfig{Ey: 1e3, Bz: DefaultBz},
		Particles: []ParticleConfig{{VX: DefaultV0X}},
	},
	"spiral": {
		Dt: DefaultDt, Duration: 4 * cyclotronPeriod, RecordTrajectory: true, Integrator: "rk4",
		Fields:    FieldConfig{Ex: 1e3, Bz: DefaultBz},
		Particles: []ParticleConfig{{VX: DefaultV0X}},
	},
	"beam": {
		Dt: DefaultDt, Duration: 2e-9, RecordTrajectory: true, Integrator: "rk4",
		Particles: []ParticleConfig{
			{VX: DefaultV0X},
			{Y: 1e-6, VX: DefaultV0X},
			{Y: -1e-6, VX: DefaultV0X},
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
