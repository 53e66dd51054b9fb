package renderer

// TraceBuilderOption is a functional option for configuring a TraceRecorder.
type TraceBuilderOption func(*traceRecorder)

// WithStride keeps one of every n presented frames. Values below 1 keep every frame.
//
// Parameters:
//   - n: the sampling stride
//
// Returns:
//   - TraceBuilderOption: option function to apply
func WithStride(n int) TraceBuilderOption {
	return func(t *traceRecorder) {
		t.stride = max(n, 1)
	}
}

// WithLimit bounds the number of kept frames; the oldest are dropped first. 0 means unbounded.
//
// Parameters:
//   - n: maximum kept frames
//
// Returns:
//   - TraceBuilderOption: option function to apply
func WithLimit(n int) TraceBuilderOption {
	return func(t *traceRecorder) {
		t.limit = max(n, 0)
	}
}
