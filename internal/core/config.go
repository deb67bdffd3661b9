package core

// RuntimeConfig contains configuration passed to the game state at startup.
type RuntimeConfig struct {
	ScreenW  int  // Screen width in characters
	ScreenH  int  // Screen height in characters
	TickRate int  // Simulation ticks per second (default 60)
	Debug    bool // Enables debug logging in the engine
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
	}
}

// TickSeconds returns the fixed simulation step in seconds.
func (c RuntimeConfig) TickSeconds() float64 {
	if c.TickRate <= 0 {
		return 1.0 / 60
	}
	return 1.0 / float64(c.TickRate)
}
