package scene

import (
	"github.com/Carmen-Shannon/cinescroll/common"
	"github.com/Carmen-Shannon/cinescroll/engine/fog"
	"github.com/Carmen-Shannon/cinescroll/engine/game_object"
	"github.com/Carmen-Shannon/cinescroll/engine/light"
	"github.com/Carmen-Shannon/cinescroll/engine/postprocess"
)

// SceneBuilderOption is a functional option for configuring a Scene.
// Use the With* functions to create options.
type SceneBuilderOption func(s *scene)

// WithActive sets whether the scene is active for rendering.
//
// Parameters:
//   - active: whether the scene is active
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithActive(active bool) SceneBuilderOption {
	return func(s *scene) {
		s.active = active
	}
}

// WithObjects adds initial objects to the scene.
// Objects without IDs will be assigned new IDs.
//
// Parameters:
//   - objects: the objects to add
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithObjects(objects ...game_object.GameObject) SceneBuilderOption {
	return func(s *scene) {
		for _, obj := range objects {
			if obj != nil {
				s.register(obj)
			}
		}
	}
}

// WithFog attaches a fog handle.
//
// Parameters:
//   - f: the fog
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithFog(f fog.Fog) SceneBuilderOption {
	return func(s *scene) {
		s.fog = f
	}
}

// WithComposer attaches a post-process chain.
//
// Parameters:
//   - c: the composer
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithComposer(c postprocess.Composer) SceneBuilderOption {
	return func(s *scene) {
		s.composer = c
	}
}

// WithLights adds initial lights.
//
// Parameters:
//   - lights: the lights
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithLights(lights ...light.Light) SceneBuilderOption {
	return func(s *scene) {
		for _, l := range lights {
			if l != nil {
				s.lights = append(s.lights, l)
			}
		}
	}
}

// WithAmbientColor sets the ambient light color.
//
// Parameters:
//   - color: the ambient RGB color
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithAmbientColor(color common.Color) SceneBuilderOption {
	return func(s *scene) {
		s.ambientColor = color
	}
}
