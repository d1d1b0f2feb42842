// Package config loads simulation configuration from YAML files with
// embedded defaults as the final fallback.
package config

// SimConfig is the YAML-configurable simulation setup. CLI flags override
// whatever the file provides.
type SimConfig struct {
	Grid   GridConfig   `yaml:"grid"`
	Rules  string       `yaml:"rules"` // "moore" or "vonneumann"
	Offset OffsetConfig `yaml:"offset"`
	Run    RunConfig    `yaml:"run"`
}

// GridConfig describes the viewport and boundary behavior.
type GridConfig struct {
	Width    int  `yaml:"width"`    // 0 means derive from terminal size
	Height   int  `yaml:"height"`   // 0 means derive from terminal size
	Infinite bool `yaml:"infinite"` // false wraps toroidally at the viewport
}

// OffsetConfig is the initial viewport offset.
type OffsetConfig struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
}

// RunConfig describes loop pacing and duration.
type RunConfig struct {
	Generations      int `yaml:"generations"`
	RefreshPerSecond int `yaml:"refresh_per_second"`
}

// DefaultSimConfig returns the hardcoded fallback configuration, used if
// even the embedded YAML fails to parse.
func DefaultSimConfig() SimConfig {
	return SimConfig{
		Grid: GridConfig{
			Width:    0, // derive from terminal
			Height:   0,
			Infinite: false,
		},
		Rules: "moore",
		Run: RunConfig{
			Generations:      100,
			RefreshPerSecond: 10,
		},
	}
}
