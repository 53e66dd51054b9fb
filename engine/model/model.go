package model

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// model is the implementation of the Model interface.
type model struct {
	name           string
	vertices       []mgl32.Vec3
	boundingRadius float32
}

// Model is an immutable point shell used as the geometry of a motif or depth object.
// Game objects copy the vertices, so one Model can back any number of objects.
type Model interface {
	// Name retrieves the model identifier.
	//
	// Returns:
	//   - string: the model name
	Name() string

	// Vertices returns a copy of the vertex positions in model space.
	//
	// Returns:
	//   - []mgl32.Vec3: the vertices
	Vertices() []mgl32.Vec3

	// VertexCount returns the number of vertices.
	//
	// Returns:
	//   - int: the vertex count
	VertexCount() int

	// BoundingRadius returns the bounding sphere radius for this model, measured as
	// the maximum distance from the origin across all vertices.
	//
	// Returns:
	//   - float32: the bounding radius
	BoundingRadius() float32
}

var _ Model = &model{}

// NewModel creates a new Model instance with the specified options applied.
// The bounding radius is computed from the vertices unless set explicitly.
//
// Parameters:
//   - options: functional options to configure the model
//
// Returns:
//   - Model: the newly created model
func NewModel(options ...ModelBuilderOption) Model {
	m := &model{boundingRadius: -1}
	for _, option := range options {
		option(m)
	}
	if m.boundingRadius < 0 {
		m.boundingRadius = ComputeBoundingRadius(m.vertices)
	}
	return m
}

func (m *model) Name() string {
	return m.name
}

func (m *model) Vertices() []mgl32.Vec3 {
	out := make([]mgl32.Vec3, len(m.vertices))
	copy(out, m.vertices)
	return out
}

func (m *model) VertexCount() int {
	return len(m.vertices)
}

func (m *model) BoundingRadius() float32 {
	return m.boundingRadius
}

// ComputeBoundingRadius returns the maximum distance from the origin across the vertices.
//
// Parameters:
//   - vertices: the vertex positions
//
// Returns:
//   - float32: the maximum distance from the origin
func ComputeBoundingRadius(vertices []mgl32.Vec3) float32 {
	var maxDistSq float32
	for _, p := range vertices {
		distSq := p[0]*p[0] + p[1]*p[1] + p[2]*p[2]
		if distSq > maxDistSq {
			maxDistSq = distSq
		}
	}
	return float32(math.Sqrt(float64(maxDistSq)))
}
