package config

import "sort"

// Presets are named problem setups for the application domains the
// compiler targets. Alpha/beta stay nil here; domain coefficient matrices
// come from the caller's own data.
var Presets = map[string]*Config{
	"climate": {
		Run: RunConfig{
			Dt: 0.005, Steps: 2000, Substeps: 8, GeoWeight: 0.8,
			Tolerance: DefaultTolerance,
			Excite:    map[int]float64{33: 1},
			Drive:     DriveConfig{Kind: "sinusoid", Level: 0.5, Freq: 0.2},
		},
		Problem: ProblemConfig{
			Geometric: 1.5, ExclusionWeight: 40, ExclusionTarget: 3,
			BiasWeight: -0.1,
		},
	},
	"biological": {
		Run: RunConfig{
			Dt: 0.01, Steps: 1000, Substeps: 4, GeoWeight: 0.4,
			Tolerance: DefaultTolerance,
			Excite:    map[int]float64{1: 1, 21: 0.5},
			Drive:     DriveConfig{Kind: "pulse", Level: 1, From: 0, To: 2},
		},
		Problem: ProblemConfig{
			Geometric: 0.5, ExclusionWeight: 20, ExclusionTarget: 1,
			BiasWeight: 0.05,
		},
	},
	"energy_grid": {
		Run: RunConfig{
			Dt: 0.002, Steps: 5000, Substeps: 4, GeoWeight: 1.2,
			Tolerance: DefaultTolerance,
			Excite:    map[int]float64{33: 1},
			Drive:     DriveConfig{Kind: "constant", Level: 0.3},
		},
		Problem: ProblemConfig{
			Geometric: 2, ExclusionWeight: 50, ExclusionTarget: 4,
			BiasWeight: -0.25,
		},
	},
}

// GetPreset returns a copy of a named preset, or nil.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	c := *p
	c.Run.Excite = make(map[int]float64, len(p.Run.Excite))
	for k, v := range p.Run.Excite {
		c.Run.Excite[k] = v
	}
	return &c
}

// ListPresets returns the available preset names.
func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
