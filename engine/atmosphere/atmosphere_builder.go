package atmosphere

import (
	"github.com/Carmen-Shannon/cinescroll/common"
	"github.com/Carmen-Shannon/cinescroll/engine/fog"
	"github.com/Carmen-Shannon/cinescroll/engine/light"
)

// AtmosphereBuilderOption is a functional option for configuring an Atmosphere.
type AtmosphereBuilderOption func(*atmosphereImpl)

// WithFog sets the fog handle the atmosphere writes.
//
// Parameters:
//   - f: the fog handle, may be nil
//
// Returns:
//   - AtmosphereBuilderOption: option function to apply
func WithFog(f fog.Fog) AtmosphereBuilderOption {
	return func(a *atmosphereImpl) {
		a.fog = f
	}
}

// WithLights sets the three-point rig handles. Any of them may be nil.
//
// Parameters:
//   - key: the key light
//   - fill: the fill light
//   - rim: the rim light
//
// Returns:
//   - AtmosphereBuilderOption: option function to apply
func WithLights(key, fill, rim light.Light) AtmosphereBuilderOption {
	return func(a *atmosphereImpl) {
		a.key = key
		a.fill = fill
		a.rim = rim
	}
}

// WithAccentLight sets the pointer-following accent light.
//
// Parameters:
//   - accent: the accent light, may be nil
//
// Returns:
//   - AtmosphereBuilderOption: option function to apply
func WithAccentLight(accent light.Light) AtmosphereBuilderOption {
	return func(a *atmosphereImpl) {
		a.accent = accent
	}
}

// WithProfile sets the base intensities. Negative values are clamped to 0.
//
// Parameters:
//   - p: the profile
//
// Returns:
//   - AtmosphereBuilderOption: option function to apply
func WithProfile(p Profile) AtmosphereBuilderOption {
	return func(a *atmosphereImpl) {
		a.profile = Profile{
			Key:    max(0, p.Key),
			Fill:   max(0, p.Fill),
			Rim:    max(0, p.Rim),
			Accent: max(0, p.Accent),
		}
	}
}

// WithFogColors sets the fog color endpoints at progress 0 and 1.
//
// Parameters:
//   - from: color at progress 0
//   - to: color at progress 1
//
// Returns:
//   - AtmosphereBuilderOption: option function to apply
func WithFogColors(from, to common.Color) AtmosphereBuilderOption {
	return func(a *atmosphereImpl) {
		a.fogColorFrom = from
		a.fogColorTo = to
	}
}

// WithAccentReach sets how far the accent light travels at the screen edge and its fixed depth.
//
// Parameters:
//   - reach: world units at pointer = +/-1
//   - depth: the light's z
//
// Returns:
//   - AtmosphereBuilderOption: option function to apply
func WithAccentReach(reach, depth float32) AtmosphereBuilderOption {
	return func(a *atmosphereImpl) {
		a.accentReach = max(0, reach)
		a.accentDepth = depth
	}
}
