package postprocess

// ComposerBuilderOption is a functional option for configuring a Composer.
type ComposerBuilderOption func(*composerImpl)

// WithBloom adds a bloom pass.
//
// Parameters:
//   - strength: initial bloom strength
//
// Returns:
//   - ComposerBuilderOption: option function to apply
func WithBloom(strength float32) ComposerBuilderOption {
	return func(c *composerImpl) {
		c.add(PassBloom, strength)
	}
}

// WithMotionBlur adds a motion-blur pass starting at 0.
//
// Returns:
//   - ComposerBuilderOption: option function to apply
func WithMotionBlur() ComposerBuilderOption {
	return func(c *composerImpl) {
		c.add(PassMotionBlur, 0)
	}
}

// WithToneMapping adds an exposure pass starting at 1.
//
// Returns:
//   - ComposerBuilderOption: option function to apply
func WithToneMapping() ComposerBuilderOption {
	return func(c *composerImpl) {
		c.add(PassToneMapping, 1)
	}
}

// WithChromatic adds a chromatic-aberration pass starting at 0.
//
// Returns:
//   - ComposerBuilderOption: option function to apply
func WithChromatic() ComposerBuilderOption {
	return func(c *composerImpl) {
		c.add(PassChromatic, 0)
	}
}

// WithAllPasses adds bloom, motion blur, tone mapping and chromatic aberration in that order.
//
// Parameters:
//   - bloom: initial bloom strength
//
// Returns:
//   - ComposerBuilderOption: option function to apply
func WithAllPasses(bloom float32) ComposerBuilderOption {
	return func(c *composerImpl) {
		c.add(PassBloom, bloom)
		c.add(PassMotionBlur, 0)
		c.add(PassToneMapping, 1)
		c.add(PassChromatic, 0)
	}
}
