package config

import "sort"

var Presets = map[string]GalaxyConfig{
	"classic": DefaultGalaxy(),
	"pinwheel": {
		Count: 60000, Size: 0.01, Radius: 6, Branches: 4, Spin: 1.5,
		Randomness: 0.2, RandomnessPower: 3, InsideColor: "#ffd27f", OutsideColor: "#3a5bd9",
	},
	"tight": {
		Count: 30000, Size: 0.008, Radius: 5, Branches: 2, Spin: 3,
		Randomness: 0.05, RandomnessPower: 5, InsideColor: "#ffffff", OutsideColor: "#6a0dad",
	},
	"nebula": {
		Count: 100000, Size: 0.02, Radius: 8, Branches: 6, Spin: 0.4,
		Randomness: 1.2, RandomnessPower: 1.5, InsideColor: "#ff3080", OutsideColor: "#10c0a0",
	},
	"twoarm": {
		Count: 20000, Size: 0.01, Radius: 7, Branches: 2, Spin: -1.2,
		Randomness: 0.3, RandomnessPower: 4, InsideColor: "#ffaa33", OutsideColor: "#2233aa",
	},
	"dense": {
		Count: 500000, Size: 0.001, Radius: 10, Branches: 10, Spin: 0.8,
		Randomness: 0.5, RandomnessPower: 2.5, InsideColor: "#ff6030", OutsideColor: "#1b3984",
	},
}

func GetPreset(name string) *GalaxyConfig {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	return &p
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
