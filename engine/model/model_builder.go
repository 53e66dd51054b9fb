package model

import "github.com/go-gl/mathgl/mgl32"

// ModelBuilderOption is a functional option for configuring a Model.
type ModelBuilderOption func(*model)

// WithName sets the model identifier.
//
// Parameters:
//   - name: the model name
//
// Returns:
//   - ModelBuilderOption: option function to apply
func WithName(name string) ModelBuilderOption {
	return func(m *model) {
		m.name = name
	}
}

// WithVertices sets the vertex positions. The slice is copied.
//
// Parameters:
//   - vertices: the vertex positions in model space
//
// Returns:
//   - ModelBuilderOption: option function to apply
func WithVertices(vertices []mgl32.Vec3) ModelBuilderOption {
	return func(m *model) {
		m.vertices = append([]mgl32.Vec3(nil), vertices...)
	}
}

// WithBoundingRadius overrides the computed bounding sphere radius.
//
// Parameters:
//   - radius: the bounding radius
//
// Returns:
//   - ModelBuilderOption: option function to apply
func WithBoundingRadius(radius float32) ModelBuilderOption {
	return func(m *model) {
		m.boundingRadius = max(0, radius)
	}
}
