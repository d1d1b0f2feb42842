package core

// RuntimeConfig contains configuration passed to the platform layer.
// It carries terminal dimensions and pacing; simulation parameters live
// in the sim package's own Config.
type RuntimeConfig struct {
	ScreenW     int // Screen width in characters
	ScreenH     int // Screen height in characters
	RefreshRate int // Frames (and generations) per second
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:     80,
		ScreenH:     24,
		RefreshRate: 10,
	}
}
