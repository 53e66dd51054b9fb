package game_object

import "github.com/go-gl/mathgl/mgl32"

// GameObjectBuilderOption is a functional option for configuring a GameObject during construction.
type GameObjectBuilderOption func(*gameObject)

// WithID sets the ID of the GameObject.
//
// Parameters:
//   - id: unique identifier for the GameObject
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the ID
func WithID(id uint64) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.id = id
	}
}

// WithName sets a label for the GameObject, typically the section it represents.
//
// Parameters:
//   - name: the label
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the name
func WithName(name string) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.name = name
	}
}

// WithEnabled sets whether the GameObject starts visible.
//
// Parameters:
//   - enabled: true to show the object
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the Enabled state
func WithEnabled(enabled bool) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.enabled.Store(enabled)
	}
}

// WithPosition sets the initial position of the GameObject.
//
// Parameters:
//   - x: the x position
//   - y: the y position
//   - z: the z position
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the initial position
func WithPosition(x, y, z float32) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.position = mgl32.Vec3{x, y, z}
	}
}

// WithScale sets the initial scale of the GameObject.
//
// Parameters:
//   - sx: the x scale factor
//   - sy: the y scale factor
//   - sz: the z scale factor
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the initial scale
func WithScale(sx, sy, sz float32) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.scale = mgl32.Vec3{sx, sy, sz}
	}
}

// WithRotation sets the initial rotation of the GameObject.
//
// Parameters:
//   - rx: the x rotation angle
//   - ry: the y rotation angle
//   - rz: the z rotation angle
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the initial rotation
func WithRotation(rx, ry, rz float32) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.rotation = mgl32.Vec3{rx, ry, rz}
	}
}

// WithOpacity sets the initial opacity, clamped to [0, 1].
//
// Parameters:
//   - opacity: the initial opacity
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the opacity
func WithOpacity(opacity float32) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.opacity = max(0, min(1, opacity))
	}
}

// WithVertices sets the authored point-cloud geometry. The slice is copied into both
// the live buffer and the snapshot used by RestoreVertices.
//
// Parameters:
//   - vertices: the authored vertex positions
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the geometry
func WithVertices(vertices []mgl32.Vec3) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.original = make([]mgl32.Vec3, len(vertices))
		copy(obj.original, vertices)
		obj.vertices = make([]mgl32.Vec3, len(vertices))
		copy(obj.vertices, vertices)
	}
}
