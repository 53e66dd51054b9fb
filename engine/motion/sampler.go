package motion

import (
	"sync"
	"time"

	"github.com/Carmen-Shannon/cinescroll/common"
)

const (
	// momentumEpsilon is the magnitude below which momentum is treated as inactive.
	momentumEpsilon float32 = 0.1
	// settleThreshold is the remaining gap below which current snaps onto target.
	settleThreshold float32 = 0.1
	// directionDeadZone is the |velocity| at or below which direction is 0.
	directionDeadZone float32 = 0.1
	// motionEpsilon is the speed above which a frame counts as movement.
	motionEpsilon float32 = 0.01
	// hostDriftThreshold is the host/virtual gap that forces a host scroll sync.
	hostDriftThreshold float32 = 0.5
)

// HostScroller is the host page whose native scroll offset mirrors the virtual position.
type HostScroller interface {
	// ScrollPosition returns the host's current scroll offset.
	//
	// Returns:
	//   - float32: the host scroll offset
	ScrollPosition() float32

	// ScrollTo instructs the host to scroll to the given offset.
	//
	// Parameters:
	//   - position: the offset to scroll to
	ScrollTo(position float32)
}

// BoundsProvider recomputes the scroll bounds from the host layout.
type BoundsProvider func() Bounds

type samplerImpl struct {
	mu *sync.Mutex

	state  State
	bounds Bounds

	lerp               float32
	wheelMultiplier    float32
	touchMultiplier    float32
	lineModeMultiplier float32
	touchInertia       float32
	impulseGain        float32
	minTouchDelta      time.Duration
	axis               Axis
	smooth             bool
	smoothTouch        bool
	ease               common.EaseFunc
	referenceHz        float32

	touching      bool
	touchLast     Point
	touchVelocity Point
	touchTime     time.Time

	clock          func() time.Time
	host           HostScroller
	boundsProvider BoundsProvider

	onScroll   func(State)
	onVelocity func(velocity, speed float32)
}

// Sampler converts raw wheel, touch and resize input into a smoothed virtual scroll position
// with velocity, momentum and direction.
//
// Input methods only mutate the target and queued touch state. The easing integration runs
// exactly once per frame in Tick, so the same input is never applied twice.
type Sampler interface {
	// IngestWheel adds a wheel delta to the target and clamps it into the bounds.
	//
	// Parameters:
	//   - deltaY: the raw wheel delta
	//   - mode: the delta unit; line-mode deltas are scaled by the line-mode multiplier
	IngestWheel(deltaY float32, mode WheelMode)

	// IngestTouchStart begins a touch gesture.
	//
	// Parameters:
	//   - p: the first touch point
	IngestTouchStart(p Point)

	// IngestTouchMove moves the target opposite to the finger and records touch velocity.
	//
	// Parameters:
	//   - p: the current touch point
	IngestTouchMove(p Point)

	// IngestTouchEnd ends the gesture and seeds a momentum impulse from the last touch velocity.
	IngestTouchEnd()

	// IngestResize recomputes the bounds and re-clamps current and target immediately.
	IngestResize()

	// Tick advances the virtual position by one frame.
	//
	// Parameters:
	//   - dt: frame time in seconds; non-positive values are floored to a small epsilon
	//
	// Returns:
	//   - State: the state after this frame
	Tick(dt float32) State

	// Seek sets a new target, optionally jumping current onto it.
	//
	// Parameters:
	//   - target: the desired position, clamped into the bounds
	//   - immediate: if true, current is set to the target without easing
	Seek(target float32, immediate bool)

	// State returns a copy of the current state.
	//
	// Returns:
	//   - State: the current state
	State() State

	// Bounds returns the current bounds.
	//
	// Returns:
	//   - Bounds: the current bounds
	Bounds() Bounds

	// SetBounds replaces the bounds and re-clamps current and target.
	//
	// Parameters:
	//   - b: the new bounds
	//
	// Returns:
	//   - error: ErrInvalidBounds if b.Max < b.Min
	SetBounds(b Bounds) error

	// Progress returns current normalized over the bounds.
	//
	// Returns:
	//   - float32: progress in [0, 1]
	Progress() float32

	// OnScroll registers a callback fired after a tick with movement or active momentum.
	// Pass nil to clear it.
	//
	// Parameters:
	//   - callback: receives the state after the tick
	OnScroll(callback func(State))

	// OnVelocity registers a callback fired after a tick with movement.
	// Pass nil to clear it.
	//
	// Parameters:
	//   - callback: receives velocity and speed
	OnVelocity(callback func(velocity, speed float32))
}

var _ Sampler = &samplerImpl{}

// NewSampler creates a Sampler with the default smoothing profile.
// Bounds default to [0, 0] until SetBounds or a BoundsProvider supplies a range.
//
// Parameters:
//   - options: functional options for the sampler
//
// Returns:
//   - Sampler: the newly created sampler
func NewSampler(options ...SamplerBuilderOption) Sampler {
	s := &samplerImpl{
		mu:                 &sync.Mutex{},
		lerp:               0.08,
		wheelMultiplier:    1.0,
		touchMultiplier:    1.5,
		lineModeMultiplier: 15,
		touchInertia:       0.95,
		impulseGain:        30,
		minTouchDelta:      time.Millisecond,
		axis:               AxisVertical,
		smooth:             true,
		smoothTouch:        true,
		ease:               common.ExpoOutBounded,
		clock:              time.Now,
	}
	for _, opt := range options {
		opt(s)
	}

	if s.boundsProvider != nil {
		s.bounds = normalizeBounds(s.boundsProvider())
	}
	if s.host != nil {
		start := s.bounds.Clamp(s.host.ScrollPosition())
		s.state.Current, s.state.Target, s.state.Last = start, start, start
	}
	return s
}

func (s *samplerImpl) IngestWheel(deltaY float32, mode WheelMode) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delta := deltaY
	if mode == WheelModeLine {
		delta *= s.lineModeMultiplier
	}
	delta *= s.wheelMultiplier

	s.state.Target = s.bounds.Clamp(s.state.Target + delta)
}

func (s *samplerImpl) IngestTouchStart(p Point) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.touching = true
	s.touchLast = p
	s.touchVelocity = Point{}
	s.touchTime = s.clock()
}

func (s *samplerImpl) IngestTouchMove(p Point) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.touching {
		return
	}

	now := s.clock()
	elapsed := now.Sub(s.touchTime)
	if elapsed < s.minTouchDelta {
		elapsed = s.minTouchDelta
	}
	ms := float32(elapsed) / float32(time.Millisecond)

	dx := p.X - s.touchLast.X
	dy := p.Y - s.touchLast.Y
	s.touchVelocity = Point{X: dx / ms, Y: dy / ms}

	if s.smoothTouch {
		delta := dy
		if s.axis == AxisHorizontal {
			delta = dx
		}
		s.state.Target = s.bounds.Clamp(s.state.Target - delta*s.touchMultiplier)
	}

	s.touchLast = p
	s.touchTime = now
}

func (s *samplerImpl) IngestTouchEnd() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.smoothTouch && s.touching {
		v := s.touchVelocity.Y
		if s.axis == AxisHorizontal {
			v = s.touchVelocity.X
		}
		s.state.Momentum = -v * s.impulseGain * s.touchMultiplier
	}
	s.touching = false
}

func (s *samplerImpl) IngestResize() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.boundsProvider == nil {
		return
	}
	s.applyBounds(normalizeBounds(s.boundsProvider()))
}

func (s *samplerImpl) SetBounds(b Bounds) error {
	if err := b.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.applyBounds(b)
	return nil
}

func (s *samplerImpl) Bounds() Bounds {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.bounds
}

func (s *samplerImpl) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *samplerImpl) Progress() float32 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Progress(s.state.Current, s.bounds)
}

func (s *samplerImpl) OnScroll(callback func(State)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onScroll = callback
}

func (s *samplerImpl) OnVelocity(callback func(velocity, speed float32)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onVelocity = callback
}

func (s *samplerImpl) Seek(target float32, immediate bool) {
	s.mu.Lock()
	s.state.Target = s.bounds.Clamp(target)
	var host HostScroller
	if immediate {
		s.state.Current = s.state.Target
		host = s.host
	}
	current := s.state.Current
	s.mu.Unlock()

	if host != nil {
		host.ScrollTo(current)
	}
}

func (s *samplerImpl) Tick(dt float32) State {
	s.mu.Lock()
	st := &s.state

	if !s.smooth {
		st.Last = st.Current
		st.Current = st.Target
		st.Momentum = 0
	} else {
		if common.Abs(st.Momentum) > momentumEpsilon {
			st.Target = s.bounds.Clamp(st.Target + st.Momentum)
			st.Momentum *= s.touchInertia
		} else {
			st.Momentum = 0
		}

		st.Last = st.Current
		st.Current += (st.Target - st.Current) * s.stepFactor(dt)

		hasMomentum := common.Abs(st.Momentum) > momentumEpsilon
		if common.Abs(st.Target-st.Current) < settleThreshold && !hasMomentum {
			st.Current = st.Target
		}
	}

	st.Velocity = st.Current - st.Last
	st.Speed = common.Abs(st.Velocity)
	st.Direction = quantize(st.Velocity, directionDeadZone)

	host := s.host
	drifted := false
	if host != nil {
		drifted = common.Abs(host.ScrollPosition()-st.Current) > hostDriftThreshold
	}
	moved := st.Speed > motionEpsilon
	if !moved && !drifted {
		st.Velocity = 0
		st.Speed = 0
		st.Direction = DirectionNone
		host = nil
	}

	out := *st
	hasMomentum := common.Abs(st.Momentum) > momentumEpsilon
	onScroll, onVelocity := s.onScroll, s.onVelocity
	s.mu.Unlock()

	if host != nil {
		host.ScrollTo(out.Current)
	}
	if onScroll != nil && (out.Speed > motionEpsilon || hasMomentum) {
		onScroll(out)
	}
	if onVelocity != nil && out.Speed > motionEpsilon {
		onVelocity(out.Velocity, out.Speed)
	}
	return out
}

// stepFactor returns the eased fraction of the gap closed this frame.
// With a reference rate set, the per-frame factor is rescaled so the approach speed
// does not depend on the actual frame rate.
// Caller must hold the mutex.
func (s *samplerImpl) stepFactor(dt float32) float32 {
	f := s.ease(s.lerp)
	if s.referenceHz <= 0 {
		return f
	}
	frames := common.PositiveDelta(dt) * s.referenceHz
	return 1 - common.Pow(1-common.Clamp01(f), frames)
}

// applyBounds installs b and re-clamps the position so momentum can never carry it out of range.
// Caller must hold the mutex.
func (s *samplerImpl) applyBounds(b Bounds) {
	s.bounds = b
	s.state.Current = b.Clamp(s.state.Current)
	s.state.Target = b.Clamp(s.state.Target)
	s.state.Last = b.Clamp(s.state.Last)
}

// normalizeBounds repairs provider output: a negative extent collapses to Min.
func normalizeBounds(b Bounds) Bounds {
	if b.Max < b.Min {
		b.Max = b.Min
	}
	return b
}
