package interactives

// Tuning holds the timing and threshold constants the mechanisms run on.
type Tuning struct {
	LeverCooldown   float64 // Seconds a lever takes to complete a flip
	LeanDelay       float64 // Seconds a block must be leaned on before it moves
	ExitTransition  float64 // Seconds a door takes to open, close, lock or unlock
	TurretPeriod    float64 // Seconds between shots of an automatic turret
	IceSlideDelay   float64 // Seconds between steps of an object sliding on ice
	BrightThreshold uint8   // Light level a bright detector crosses
	DarkThreshold   uint8   // Light level a dark detector crosses
}

// DefaultTorchLight is the light value a torch starts with after reset.
const DefaultTorchLight uint8 = 255

// DefaultTuning returns the stock mechanism timings.
func DefaultTuning() Tuning {
	return Tuning{
		LeverCooldown:   0.75,
		LeanDelay:       0.3,
		ExitTransition:  0.5,
		TurretPeriod:    3.0,
		IceSlideDelay:   0.1,
		BrightThreshold: 178,
		DarkThreshold:   128,
	}
}
