package model

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Sphere returns a UV sphere shell.
//
// Parameters:
//   - radius: sphere radius
//   - segments: longitude and latitude subdivisions, at least 3
//
// Returns:
//   - Model: the sphere
func Sphere(radius float32, segments int) Model {
	segments = max(segments, 3)
	var verts []mgl32.Vec3
	for lat := 0; lat <= segments; lat++ {
		theta := float64(lat) / float64(segments) * math.Pi
		for lon := 0; lon < segments; lon++ {
			phi := float64(lon) / float64(segments) * 2 * math.Pi
			verts = append(verts, mgl32.Vec3{
				radius * float32(math.Sin(theta)*math.Cos(phi)),
				radius * float32(math.Cos(theta)),
				radius * float32(math.Sin(theta)*math.Sin(phi)),
			})
		}
	}
	return NewModel(WithName("sphere"), WithVertices(verts), WithBoundingRadius(radius))
}

// Torus returns a torus shell lying in the XY plane.
//
// Parameters:
//   - radius: distance from the center to the tube center
//   - tube: tube radius
//   - radial: subdivisions around the tube, at least 3
//   - tubular: subdivisions around the ring, at least 3
//
// Returns:
//   - Model: the torus
func Torus(radius, tube float32, radial, tubular int) Model {
	radial, tubular = max(radial, 3), max(tubular, 3)
	verts := make([]mgl32.Vec3, 0, radial*tubular)
	for j := 0; j < radial; j++ {
		v := float64(j) / float64(radial) * 2 * math.Pi
		for i := 0; i < tubular; i++ {
			u := float64(i) / float64(tubular) * 2 * math.Pi
			r := float64(radius) + float64(tube)*math.Cos(v)
			verts = append(verts, mgl32.Vec3{
				float32(r * math.Cos(u)),
				float32(r * math.Sin(u)),
				tube * float32(math.Sin(v)),
			})
		}
	}
	return NewModel(WithName("torus"), WithVertices(verts))
}

// Box returns the eight corners of a cube centered on the origin.
//
// Parameters:
//   - size: edge length
//
// Returns:
//   - Model: the box
func Box(size float32) Model {
	h := size / 2
	verts := make([]mgl32.Vec3, 0, 8)
	for _, x := range []float32{-h, h} {
		for _, y := range []float32{-h, h} {
			for _, z := range []float32{-h, h} {
				verts = append(verts, mgl32.Vec3{x, y, z})
			}
		}
	}
	return NewModel(WithName("box"), WithVertices(verts))
}

// Octahedron returns the six vertices of a regular octahedron.
//
// Parameters:
//   - radius: distance from the origin to each vertex
//
// Returns:
//   - Model: the octahedron
func Octahedron(radius float32) Model {
	verts := []mgl32.Vec3{
		{radius, 0, 0}, {-radius, 0, 0},
		{0, radius, 0}, {0, -radius, 0},
		{0, 0, radius}, {0, 0, -radius},
	}
	return NewModel(WithName("octahedron"), WithVertices(verts))
}

// Icosahedron returns the twelve vertices of a regular icosahedron.
//
// Parameters:
//   - radius: distance from the origin to each vertex
//
// Returns:
//   - Model: the icosahedron
func Icosahedron(radius float32) Model {
	t := float32((1 + math.Sqrt(5)) / 2)
	raw := []mgl32.Vec3{
		{-1, t, 0}, {1, t, 0}, {-1, -t, 0}, {1, -t, 0},
		{0, -1, t}, {0, 1, t}, {0, -1, -t}, {0, 1, -t},
		{t, 0, -1}, {t, 0, 1}, {-t, 0, -1}, {-t, 0, 1},
	}
	verts := make([]mgl32.Vec3, len(raw))
	for i, v := range raw {
		verts[i] = v.Normalize().Mul(radius)
	}
	return NewModel(WithName("icosahedron"), WithVertices(verts))
}
