package config

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/Carmen-Shannon/cinescroll/common"
	"github.com/Carmen-Shannon/cinescroll/engine"
	"github.com/Carmen-Shannon/cinescroll/engine/atmosphere"
	"github.com/Carmen-Shannon/cinescroll/engine/camera"
	"github.com/Carmen-Shannon/cinescroll/engine/choreography"
	"github.com/Carmen-Shannon/cinescroll/engine/effects"
	"github.com/Carmen-Shannon/cinescroll/engine/motion"
	"github.com/Carmen-Shannon/cinescroll/engine/narrative"
	"github.com/Carmen-Shannon/cinescroll/engine/parallax"
	"github.com/Carmen-Shannon/cinescroll/engine/renderer"
	"github.com/Carmen-Shannon/cinescroll/engine/window"
)

// mobile pointer gains
const (
	mobilePointerPosition = 0.28
	mobilePointerRotation = 0.012
)

// SamplerOptions converts the sampler section to builder options.
//
// Returns:
//   - []motion.SamplerBuilderOption: options for motion.NewSampler
func (c *Config) SamplerOptions() []motion.SamplerBuilderOption {
	s := c.Sampler
	axis := motion.AxisVertical
	if strings.EqualFold(common.Coalesce(s.Direction, "vertical"), "horizontal") {
		axis = motion.AxisHorizontal
	}
	opts := []motion.SamplerBuilderOption{
		motion.WithLerp(s.Lerp),
		motion.WithWheelMultiplier(s.WheelMultiplier),
		motion.WithTouchMultiplier(s.TouchMultiplier),
		motion.WithTouchInertia(s.TouchInertia),
		motion.WithLineModeMultiplier(s.LineModeMultiplier),
		motion.WithImpulseGain(s.ImpulseGain),
		motion.WithMinTouchDelta(s.MinTouchDt),
		motion.WithAxis(axis),
		motion.WithSmooth(s.Smooth),
		motion.WithSmoothTouch(s.SmoothTouch),
		motion.WithReferenceRate(s.ReferenceRate),
	}
	if s.Ease != "" {
		opts = append(opts, motion.WithEase(common.EaseByName(s.Ease)))
	}
	return opts
}

// CameraOptions converts the camera settings of the rig section to builder options.
//
// Returns:
//   - []camera.CameraBuilderOption: options for camera.NewCamera
func (c *Config) CameraOptions() []camera.CameraBuilderOption {
	return []camera.CameraBuilderOption{
		camera.WithFov(common.Coalesce(c.Rig.Fov, 50)),
		camera.WithAspect(float32(c.width()) / float32(c.height())),
	}
}

// RigOptions converts the rig section to builder options. The mobile profile overrides the
// pointer gains unless the file sets its own.
//
// Returns:
//   - []camera.RigBuilderOption: options for camera.NewRig
func (c *Config) RigOptions() []camera.RigBuilderOption {
	r := c.Rig
	def := Default().Rig
	position, rotation := r.PointerPosition, r.PointerRotation
	if c.Mobile && position == def.PointerPosition && rotation == def.PointerRotation {
		position, rotation = mobilePointerPosition, mobilePointerRotation
	}
	return []camera.RigBuilderOption{
		camera.WithIntensity(r.Intensity),
		camera.WithDepthRange(r.DepthRange),
		camera.WithArcRadius(r.ArcRadius),
		camera.WithRotationDrift(r.RotationDrift),
		camera.WithShakeIntensity(r.ShakeIntensity),
		camera.WithNoiseScale(r.NoiseScale),
		camera.WithFovBreathing(r.FovBreathing),
		camera.WithPointerInfluence(position, rotation),
		camera.WithSeed(common.Coalesce(r.Seed, 1)),
	}
}

// FieldOptions converts the layers section to builder options.
//
// Returns:
//   - []parallax.FieldBuilderOption: options for parallax.NewField
func (c *Config) FieldOptions() []parallax.FieldBuilderOption {
	return []parallax.FieldBuilderOption{
		parallax.WithStrengths(c.strengths()),
		parallax.WithWorkers(common.Coalesce(c.Layers.Workers, max(runtime.NumCPU()-1, 1))),
	}
}

// AtmosphereOptions selects the light profile.
//
// Returns:
//   - []atmosphere.AtmosphereBuilderOption: options for atmosphere.NewAtmosphere
func (c *Config) AtmosphereOptions() []atmosphere.AtmosphereBuilderOption {
	if c.Mobile {
		return []atmosphere.AtmosphereBuilderOption{atmosphere.WithProfile(atmosphere.MobileProfile)}
	}
	return []atmosphere.AtmosphereBuilderOption{atmosphere.WithProfile(atmosphere.DesktopProfile)}
}

// EffectsOptions converts the effects section to builder options.
//
// Returns:
//   - []effects.EffectsBuilderOption: options for effects.NewEffects
func (c *Config) EffectsOptions() []effects.EffectsBuilderOption {
	e := c.Effects
	return []effects.EffectsBuilderOption{
		effects.WithBloomIntensity(e.Bloom),
		effects.WithMotionBlurStrength(e.MotionBlur),
		effects.WithFovRange(e.FovRange),
		effects.WithExposureRange(e.ExposureRange),
		effects.WithChromaticAmount(e.Chromatic),
		effects.WithToggles(effects.Toggles{
			Bloom:        e.Enabled.Bloom,
			MotionBlur:   e.Enabled.MotionBlur,
			FovBreathing: e.Enabled.FovBreathing,
			Exposure:     e.Enabled.Exposure,
			Chromatic:    e.Enabled.Chromatic,
		}),
	}
}

// NarrativeOptions converts the narrative section to builder options.
//
// Returns:
//   - []narrative.NarrativeBuilderOption: options for narrative.NewNarrative
func (c *Config) NarrativeOptions() []narrative.NarrativeBuilderOption {
	n := c.Narrative
	return []narrative.NarrativeBuilderOption{
		narrative.WithDuration(n.Duration),
		narrative.WithParticleCount(n.Particles),
		narrative.WithGeometryMorph(n.GeometryMorph),
		narrative.WithParticleReflow(n.ParticleReflow),
		narrative.WithSeed(common.Coalesce(n.Seed, 1)),
	}
}

// ChoreographerOptions resolves the shot sequence and playback mode. Shots come from the shot file
// when one is set, otherwise from the desktop or mobile library.
//
// Returns:
//   - []choreography.ChoreographerBuilderOption: options for choreography.NewChoreographer
//   - error: error if the shot file cannot be read
func (c *Config) ChoreographerOptions() ([]choreography.ChoreographerBuilderOption, error) {
	shots := choreography.DesktopShots()
	if c.Mobile {
		shots = choreography.MobileShots()
	}
	if c.Shots.File != "" {
		loaded, err := choreography.ReadShots(c.Shots.File)
		if err != nil {
			return nil, fmt.Errorf("load shots: %w", err)
		}
		shots = loaded
	}
	mode := choreography.ModeScroll
	if strings.EqualFold(common.Coalesce(c.Shots.Mode, "scroll"), "timeline") {
		mode = choreography.ModeTimeline
	}
	return []choreography.ChoreographerBuilderOption{
		choreography.WithShots(shots),
		choreography.WithMode(mode),
		choreography.WithNavigationSmoothing(c.Shots.Smoothing),
		choreography.WithScrub(c.Shots.Scrub),
	}, nil
}

// EngineOptions converts the engine section to builder options.
//
// Returns:
//   - []engine.EngineBuilderOption: options for engine.NewEngine
func (c *Config) EngineOptions() []engine.EngineBuilderOption {
	return []engine.EngineBuilderOption{
		engine.WithTickRate(common.Coalesce(c.Engine.TickRate, 60)),
		engine.WithRenderFrameLimit(c.Engine.RenderLimit),
		engine.WithProfiling(c.Engine.Profiling),
	}
}

// WindowOptions converts the engine section's window settings to builder options.
//
// Returns:
//   - []window.WindowBuilderOption: options for window.NewWindow
func (c *Config) WindowOptions() []window.WindowBuilderOption {
	return []window.WindowBuilderOption{
		window.WithTitle(common.Coalesce(c.Engine.Title, "cinescroll")),
		window.WithSize(c.width(), c.height()),
	}
}

// RendererOptions selects the present mode.
//
// Returns:
//   - []renderer.RendererBuilderOption: options for renderer.NewRenderer
func (c *Config) RendererOptions() []renderer.RendererBuilderOption {
	mode := renderer.PresentModeUncapped
	if c.Engine.VSync {
		mode = renderer.PresentModeVSync
	}
	return []renderer.RendererBuilderOption{renderer.WithPresentMode(mode)}
}

func (c *Config) width() int {
	return common.Coalesce(c.Engine.Width, 1280)
}

func (c *Config) height() int {
	return common.Coalesce(c.Engine.Height, 720)
}
