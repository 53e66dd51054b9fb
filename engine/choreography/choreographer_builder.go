package choreography

// ChoreographerBuilderOption is a functional option for configuring a Choreographer.
type ChoreographerBuilderOption func(*choreographerImpl)

// WithShots replaces the shot sequence. An empty sequence produces a static identity pose.
//
// Parameters:
//   - shots: the ordered shots
//
// Returns:
//   - ChoreographerBuilderOption: option function to apply
func WithShots(shots []Shot) ChoreographerBuilderOption {
	return func(c *choreographerImpl) {
		c.shots = make([]Shot, len(shots))
		copy(c.shots, shots)
	}
}

// WithMode sets the initial mode.
//
// Parameters:
//   - mode: ModeScroll or ModeTimeline
//
// Returns:
//   - ChoreographerBuilderOption: option function to apply
func WithMode(mode Mode) ChoreographerBuilderOption {
	return func(c *choreographerImpl) {
		c.mode = mode
	}
}

// WithNavigationSmoothing sets the per-frame factor used to ease progress in ModeScroll.
// 1 disables smoothing.
//
// Parameters:
//   - factor: smoothing factor, clamped to (0, 1]
//
// Returns:
//   - ChoreographerBuilderOption: option function to apply
func WithNavigationSmoothing(factor float32) ChoreographerBuilderOption {
	return func(c *choreographerImpl) {
		if factor <= 0 || factor > 1 {
			factor = 1
		}
		c.smoothing = factor
	}
}

// WithScrub sets how many seconds the timeline takes to catch up with the scrub signal.
// 0 applies the requested position immediately.
//
// Parameters:
//   - seconds: scrub lag, negative values clamp to 0
//
// Returns:
//   - ChoreographerBuilderOption: option function to apply
func WithScrub(seconds float32) ChoreographerBuilderOption {
	return func(c *choreographerImpl) {
		c.scrub = max(0, seconds)
	}
}
