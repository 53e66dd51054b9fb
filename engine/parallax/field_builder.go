package parallax

// FieldBuilderOption is a functional option for configuring a Field.
type FieldBuilderOption func(*fieldImpl)

// WithStrengths sets the per-layer parallax strengths. NewField rejects them unless
// foreground > midground > background >= 0.
//
// Parameters:
//   - s: the strengths
//
// Returns:
//   - FieldBuilderOption: option function to apply
func WithStrengths(s Strengths) FieldBuilderOption {
	return func(f *fieldImpl) {
		f.strengths = s
	}
}

// WithWorkers sets the size of the layer worker pool. 1 or less updates the layers on the calling goroutine.
//
// Parameters:
//   - n: worker count
//
// Returns:
//   - FieldBuilderOption: option function to apply
func WithWorkers(n int) FieldBuilderOption {
	return func(f *fieldImpl) {
		f.workers = min(n, int(layerCount))
	}
}

// WithExtent sets the scroll range mapped to progress 0..1.
//
// Parameters:
//   - min, max: scroll bounds
//
// Returns:
//   - FieldBuilderOption: option function to apply
func WithExtent(min, max float32) FieldBuilderOption {
	return func(f *fieldImpl) {
		f.extentMin = min
		f.extentMax = max
	}
}
