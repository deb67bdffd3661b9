package core

// Timer counts down a duration in seconds. The zero Timer is expired.
type Timer struct {
	Remaining float64
}

// Start arms the timer for the given number of seconds.
func (t *Timer) Start(seconds float64) {
	t.Remaining = seconds
}

// Tick advances the timer by dt seconds and reports whether it expired
// during this call. An already expired timer never reports expiry again.
func (t *Timer) Tick(dt float64) bool {
	if t.Remaining <= 0 {
		return false
	}
	t.Remaining -= dt
	if t.Remaining <= 0 {
		t.Remaining = 0
		return true
	}
	return false
}

// Running reports whether the timer still has time left.
func (t Timer) Running() bool {
	return t.Remaining > 0
}

// Stop expires the timer immediately.
func (t *Timer) Stop() {
	t.Remaining = 0
}
