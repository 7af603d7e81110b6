package frame

// DefaultClockStep is the animation clock increment per presented
// frame, in seconds. It matches a nominal 60 Hz frame budget.
const DefaultClockStep = 0.016

// AnimationClock is a monotonic animation timebase. It advances by a
// fixed step once per successfully presented frame, so animation speed
// tracks presented frames rather than wall time.
type AnimationClock struct {
	now  float64
	step float64
}

// NewAnimationClock returns a clock with the given step. A step of
// zero or less selects DefaultClockStep.
func NewAnimationClock(step float64) *AnimationClock {
	if step <= 0 {
		step = DefaultClockStep
	}
	return &AnimationClock{step: step}
}

// Now returns the current animation time in seconds.
func (c *AnimationClock) Now() float64 {
	return c.now
}

// Step returns the per-frame increment in seconds.
func (c *AnimationClock) Step() float64 {
	return c.step
}

// Advance moves the clock forward by one step and returns the new time.
func (c *AnimationClock) Advance() float64 {
	c.now += c.step
	return c.now
}
