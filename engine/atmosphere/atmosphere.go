package atmosphere

import (
	"sync"

	"github.com/Carmen-Shannon/cinescroll/common"
	"github.com/Carmen-Shannon/cinescroll/engine/fog"
	"github.com/Carmen-Shannon/cinescroll/engine/light"
	"github.com/Carmen-Shannon/cinescroll/engine/tween"
)

// Profile holds the base intensities of the light rig before progress modulation.
type Profile struct {
	Key    float32 `yaml:"key"`
	Fill   float32 `yaml:"fill"`
	Rim    float32 `yaml:"rim"`
	Accent float32 `yaml:"accent"`
}

// DesktopProfile is the full-quality light rig.
var DesktopProfile = Profile{Key: 1.85, Fill: 0.82, Rim: 1.1, Accent: 1.2}

// MobileProfile is the reduced light rig used on small or low-power displays.
var MobileProfile = Profile{Key: 1.35, Fill: 0.55, Rim: 0.7, Accent: 0.85}

// Gains scales the key, fill and rim intensities during a lighting crossfade. 1 leaves a light unchanged.
type Gains struct {
	Key  float32
	Fill float32
	Rim  float32
}

// Snapshot is the atmosphere output of the most recent update.
type Snapshot struct {
	FogNear         float32      `yaml:"fog_near"`
	FogFar          float32      `yaml:"fog_far"`
	FogColor        common.Color `yaml:"fog_color"`
	Key             float32      `yaml:"key"`
	Fill            float32      `yaml:"fill"`
	Rim             float32      `yaml:"rim"`
	Accent          float32      `yaml:"accent"`
	FillColor       common.Color `yaml:"fill_color"`
	RimColor        common.Color `yaml:"rim_color"`
	TransitionColor common.Color `yaml:"transition_color"`
}

// overlay is a temporary crossfade layered over the steady state.
// weight swells 0 -> 1 -> 0 so the steady state resumes without a jump.
type overlay struct {
	active bool
	from   float32
	weight float32
	tween  tween.Tween
}

type atmosphereImpl struct {
	mu *sync.Mutex

	fog    fog.Fog
	key    light.Light
	fill   light.Light
	rim    light.Light
	accent light.Light

	profile Profile

	fogColorFrom, fogColorTo               common.Color
	fillColorFrom, fillColorTo             common.Color
	rimColorFrom, rimColorTo               common.Color
	transitionColorFrom, transitionColorTo common.Color

	accentDepth  float32
	accentReach  float32
	pointer      [2]float32
	scheduler    tween.Scheduler
	fogOverlay   overlay
	fogTarget    common.Color
	lightOverlay overlay
	lightGains   Gains

	snapshot Snapshot
}

// Atmosphere derives fog and light-rig state from the choreography channels.
//
// It is the only writer of its fog and light handles. Narrative crossfades are requested through
// CrossfadeFog and CrossfadeLighting and blended in by Update, so no other component touches the handles.
// Any handle may be nil; the matching output is still computed and reported in the Snapshot.
type Atmosphere interface {
	// Update recomputes fog and lights from progress and the transition mix and writes the handles.
	//
	// Parameters:
	//   - progress: the light-mix channel in [0, 1]
	//   - transitionMix: the transition-mix channel in [0, 1]
	//
	// Returns:
	//   - Snapshot: the values written this frame
	Update(progress, transitionMix float32) Snapshot

	// Advance steps the crossfade overlays.
	//
	// Parameters:
	//   - dt: elapsed seconds
	Advance(dt float32)

	// SetPointer moves the accent light with the pointer.
	//
	// Parameters:
	//   - x, y: pointer in normalized device coordinates
	SetPointer(x, y float32)

	// CrossfadeFog swells the fog color toward color and back over duration seconds.
	// A new request replaces one still running.
	//
	// Parameters:
	//   - color: the color at the peak of the swell
	//   - duration: total seconds
	CrossfadeFog(color common.Color, duration float32)

	// CrossfadeLighting swells the key/fill/rim intensities by gains and back over duration seconds.
	// A new request replaces one still running.
	//
	// Parameters:
	//   - gains: intensity multipliers at the peak of the swell
	//   - duration: total seconds
	CrossfadeLighting(gains Gains, duration float32)

	// Crossfading reports whether any overlay is still running.
	//
	// Returns:
	//   - bool: true while a crossfade is active
	Crossfading() bool

	// Snapshot returns the values written by the most recent Update.
	//
	// Returns:
	//   - Snapshot: the last output
	Snapshot() Snapshot
}

var _ Atmosphere = &atmosphereImpl{}

// NewAtmosphere creates an Atmosphere with the desktop profile and the authored color endpoints.
//
// Parameters:
//   - options: functional options to configure the atmosphere
//
// Returns:
//   - Atmosphere: the newly created atmosphere
func NewAtmosphere(options ...AtmosphereBuilderOption) Atmosphere {
	a := &atmosphereImpl{
		mu:                  &sync.Mutex{},
		profile:             DesktopProfile,
		fogColorFrom:        common.ColorFromHex(0x0a0a0f),
		fogColorTo:          common.ColorFromHex(0x12182a),
		fillColorFrom:       common.ColorFromHex(0x7f95ff),
		fillColorTo:         common.ColorFromHex(0x95a8ff),
		rimColorFrom:        common.ColorFromHex(0xb48cff),
		rimColorTo:          common.ColorFromHex(0xcf9dff),
		transitionColorFrom: common.ColorFromHex(0x293a86),
		transitionColorTo:   common.ColorFromHex(0x6f4dff),
		accentDepth:         3,
		accentReach:         5,
		scheduler:           tween.NewScheduler(),
	}
	for _, option := range options {
		option(a)
	}
	a.snapshot = a.steady(0, 0)
	return a
}

func (a *atmosphereImpl) Update(progress, transitionMix float32) Snapshot {
	a.mu.Lock()
	defer a.mu.Unlock()

	s := a.steady(common.Clamp01(progress), common.Clamp01(transitionMix))

	if a.fogOverlay.active {
		s.FogColor = s.FogColor.Lerp(a.fogTarget, a.fogOverlay.weight)
	}
	if a.lightOverlay.active {
		w := a.lightOverlay.weight
		s.Key = max(0, s.Key*common.Lerp(1, a.lightGains.Key, w))
		s.Fill = max(0, s.Fill*common.Lerp(1, a.lightGains.Fill, w))
		s.Rim = max(0, s.Rim*common.Lerp(1, a.lightGains.Rim, w))
	}

	if a.fog != nil {
		a.fog.SetRange(s.FogNear, s.FogFar)
		a.fog.SetColor(s.FogColor)
	}
	if a.key != nil {
		a.key.SetIntensity(s.Key)
	}
	if a.fill != nil {
		a.fill.SetIntensity(s.Fill)
		a.fill.SetColor(s.FillColor)
	}
	if a.rim != nil {
		a.rim.SetIntensity(s.Rim)
		a.rim.SetColor(s.RimColor)
	}
	if a.accent != nil {
		a.accent.SetIntensity(s.Accent)
		a.accent.SetPosition(a.pointer[0]*a.accentReach, a.pointer[1]*a.accentReach, a.accentDepth)
	}

	a.snapshot = s
	return s
}

func (a *atmosphereImpl) Advance(dt float32) {
	a.scheduler.Advance(dt)
}

func (a *atmosphereImpl) SetPointer(x, y float32) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.pointer = [2]float32{x, y}
}

func (a *atmosphereImpl) CrossfadeFog(color common.Color, duration float32) {
	a.mu.Lock()
	a.fogTarget = color
	t := a.startOverlay(&a.fogOverlay, duration)
	a.mu.Unlock()
	a.scheduler.Add(t)
}

func (a *atmosphereImpl) CrossfadeLighting(gains Gains, duration float32) {
	a.mu.Lock()
	a.lightGains = Gains{Key: max(0, gains.Key), Fill: max(0, gains.Fill), Rim: max(0, gains.Rim)}
	t := a.startOverlay(&a.lightOverlay, duration)
	a.mu.Unlock()
	a.scheduler.Add(t)
}

func (a *atmosphereImpl) Crossfading() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.fogOverlay.active || a.lightOverlay.active
}

func (a *atmosphereImpl) Snapshot() Snapshot {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.snapshot
}

// steady computes the un-overlaid output.
// Caller must hold the mutex.
func (a *atmosphereImpl) steady(p, tm float32) Snapshot {
	return Snapshot{
		FogNear:         8 - p*1.8 - tm*0.4,
		FogFar:          20 - p*4.6 - tm*1.2,
		FogColor:        a.fogColorFrom.Lerp(a.fogColorTo, p),
		Key:             max(0, a.profile.Key*(1+p*0.16+tm*0.08)),
		Fill:            max(0, a.profile.Fill*(1-p*0.08)),
		Rim:             max(0, a.profile.Rim*(1+p*0.2+tm*0.12)),
		Accent:          max(0, a.profile.Accent*(1+p*0.12)),
		FillColor:       a.fillColorFrom.Lerp(a.fillColorTo, p),
		RimColor:        a.rimColorFrom.Lerp(a.rimColorTo, p),
		TransitionColor: a.transitionColorFrom.Lerp(a.transitionColorTo, tm),
	}
}

// startOverlay cancels any running swell on o and returns a fresh tween driving its weight.
// A replacement swell rises from the weight the cancelled one had reached.
// Caller must hold the mutex.
func (a *atmosphereImpl) startOverlay(o *overlay, duration float32) tween.Tween {
	o.from = 0
	if o.tween != nil {
		o.tween.Cancel()
		o.from = o.weight
	}
	o.active = true
	var t tween.Tween
	t = tween.NewTween(
		tween.WithDuration(duration),
		tween.OnUpdate(func(p float32) {
			a.mu.Lock()
			defer a.mu.Unlock()
			if o.tween == t {
				o.weight = swell(o.from, p)
			}
		}),
		tween.OnComplete(func() {
			a.mu.Lock()
			defer a.mu.Unlock()
			if o.tween == t {
				o.active = false
				o.weight = 0
				o.tween = nil
			}
		}),
	)
	o.tween = t
	return t
}

// swell rises from -> 1 over the first half and falls to 0 over the second, power2.inOut each way.
func swell(from, p float32) float32 {
	if p < 0.5 {
		return common.Lerp(from, 1, common.Power2InOut(p*2))
	}
	return common.Power2InOut(2 - p*2)
}
