package motion

import (
	"errors"
	"math"
	"testing"
	"time"
)

func almostEqual(a, b, eps float32) bool {
	return float32(math.Abs(float64(a-b))) <= eps
}

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

type fakeHost struct {
	pos   float32
	calls []float32
}

func (h *fakeHost) ScrollPosition() float32 { return h.pos }

func (h *fakeHost) ScrollTo(position float32) {
	h.pos = position
	h.calls = append(h.calls, position)
}

func TestWheelTargetIsClamped(t *testing.T) {
	tests := []struct {
		name  string
		delta float32
		mode  WheelMode
		want  float32
	}{
		{"within range", 250, WheelModePixel, 250},
		{"past max", 5000, WheelModePixel, 1000},
		{"below min", -5000, WheelModePixel, 0},
		{"line mode scaled", 10, WheelModeLine, 150},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSampler(WithBounds(Bounds{Min: 0, Max: 1000}))
			s.IngestWheel(tt.delta, tt.mode)
			if got := s.State().Target; got != tt.want {
				t.Errorf("Expected target %v, got %v", tt.want, got)
			}
		})
	}
}

func TestWheelBurstConvergesMonotonically(t *testing.T) {
	s := NewSampler(WithBounds(Bounds{Min: 0, Max: 2000}))
	for range 10 {
		s.IngestWheel(100, WheelModePixel)
	}
	if got := s.State().Target; got != 1000 {
		t.Fatalf("Expected target 1000, got %v", got)
	}

	prev := s.State().Current
	settled := false
	for i := 0; i < 200; i++ {
		st := s.Tick(1.0 / 60)
		if st.Current < prev {
			t.Fatalf("tick %d: current moved backwards from %v to %v", i, prev, st.Current)
		}
		if st.Current > st.Target {
			t.Fatalf("tick %d: current %v overshot target %v", i, st.Current, st.Target)
		}
		prev = st.Current
		if st.Current == 1000 {
			settled = true
			break
		}
	}
	if !settled {
		t.Fatalf("Expected current to settle at 1000, got %v", prev)
	}
}

func TestSettledTickIsIdempotent(t *testing.T) {
	s := NewSampler(WithBounds(Bounds{Min: 0, Max: 1000}))
	s.IngestWheel(300, WheelModePixel)
	for range 200 {
		s.Tick(1.0 / 60)
	}

	first := s.Tick(1.0 / 60)
	second := s.Tick(1.0 / 60)
	if first != second {
		t.Fatalf("Expected identical states once settled, got %+v and %+v", first, second)
	}
	if second.Velocity != 0 || second.Speed != 0 || second.Direction != DirectionNone {
		t.Errorf("Expected zero motion once settled, got %+v", second)
	}
	if second.Current != 300 {
		t.Errorf("Expected current 300, got %v", second.Current)
	}
}

func TestDirectionDeadZone(t *testing.T) {
	tests := []struct {
		name   string
		target float32
		want   Direction
	}{
		{"inside dead-zone", 0.05, DirectionNone},
		{"forward", 10, DirectionForward},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSampler(WithBounds(Bounds{Min: 0, Max: 100}), WithSmooth(false))
			s.Seek(tt.target, false)
			st := s.Tick(1.0 / 60)
			if st.Direction != tt.want {
				t.Errorf("Expected direction %d, got %d (velocity %v)", tt.want, st.Direction, st.Velocity)
			}
		})
	}

	s := NewSampler(WithBounds(Bounds{Min: 0, Max: 100}), WithSmooth(false))
	s.Seek(50, true)
	s.Seek(40, false)
	if st := s.Tick(1.0 / 60); st.Direction != DirectionBackward {
		t.Errorf("Expected backward direction, got %d", st.Direction)
	}
}

func TestSmoothDisabledCopiesTarget(t *testing.T) {
	s := NewSampler(WithBounds(Bounds{Min: 0, Max: 1000}), WithSmooth(false))
	s.IngestWheel(420, WheelModePixel)
	st := s.Tick(1.0 / 60)
	if st.Current != 420 || st.Velocity != 420 {
		t.Errorf("Expected current and velocity 420, got %+v", st)
	}
}

func TestTouchMomentumDecaysGeometrically(t *testing.T) {
	clock := &fakeClock{now: time.Unix(0, 0)}
	s := NewSampler(WithBounds(Bounds{Min: 0, Max: 100000}), WithClock(clock.Now))
	s.Seek(50000, true)

	s.IngestTouchStart(Point{X: 0, Y: 500})
	clock.Advance(10 * time.Millisecond)
	s.IngestTouchMove(Point{X: 0, Y: 400})
	if got := s.State().Target; got != 50150 {
		t.Fatalf("Expected drag to move target to 50150, got %v", got)
	}

	s.IngestTouchEnd()
	m0 := s.State().Momentum
	if !almostEqual(m0, 450, 1e-3) {
		t.Fatalf("Expected momentum impulse 450, got %v", m0)
	}

	const inertia = 0.95
	expected := m0
	for k := 1; k <= 40; k++ {
		st := s.Tick(1.0 / 60)
		expected *= inertia
		if !almostEqual(st.Momentum, expected, expected*1e-3) {
			t.Fatalf("tick %d: expected momentum %v, got %v", k, expected, st.Momentum)
		}
	}

	for range 400 {
		s.Tick(1.0 / 60)
	}
	st := s.State()
	if st.Momentum != 0 {
		t.Errorf("Expected momentum to reach 0, got %v", st.Momentum)
	}
	// Geometric series 450 / (1 - 0.95) on top of the drag.
	if !almostEqual(st.Target, 50150+9000, 10) {
		t.Errorf("Expected momentum to carry target near %v, got %v", 50150+9000, st.Target)
	}
}

func TestTouchZeroElapsedIsFloored(t *testing.T) {
	clock := &fakeClock{now: time.Unix(0, 0)}
	s := NewSampler(WithBounds(Bounds{Min: 0, Max: 1000}), WithClock(clock.Now))
	s.Seek(500, true)

	s.IngestTouchStart(Point{Y: 100})
	s.IngestTouchMove(Point{Y: 90})
	s.IngestTouchEnd()

	m := s.State().Momentum
	if math.IsInf(float64(m), 0) || math.IsNaN(float64(m)) {
		t.Fatalf("Expected finite momentum, got %v", m)
	}
	if !almostEqual(m, 450, 1e-3) {
		t.Errorf("Expected momentum 450 with a 1ms floor, got %v", m)
	}
}

func TestTouchIgnoredWhenSmoothTouchDisabled(t *testing.T) {
	clock := &fakeClock{now: time.Unix(0, 0)}
	s := NewSampler(WithBounds(Bounds{Min: 0, Max: 1000}), WithClock(clock.Now), WithSmoothTouch(false))
	s.IngestTouchStart(Point{Y: 100})
	clock.Advance(16 * time.Millisecond)
	s.IngestTouchMove(Point{Y: 50})
	s.IngestTouchEnd()

	st := s.State()
	if st.Target != 0 || st.Momentum != 0 {
		t.Errorf("Expected touch to be ignored, got %+v", st)
	}
}

func TestResizeReclampsImmediately(t *testing.T) {
	bounds := Bounds{Min: 0, Max: 1000}
	s := NewSampler(WithBoundsProvider(func() Bounds { return bounds }))
	s.Seek(800, true)

	bounds = Bounds{Min: 0, Max: 500}
	s.IngestResize()

	st := s.State()
	if st.Current != 500 || st.Target != 500 {
		t.Errorf("Expected current and target 500 after resize, got %+v", st)
	}
	if got := s.Progress(); got != 1 {
		t.Errorf("Expected progress 1, got %v", got)
	}
}

func TestSetBoundsRejectsUnordered(t *testing.T) {
	s := NewSampler(WithBounds(Bounds{Min: 0, Max: 100}))
	err := s.SetBounds(Bounds{Min: 10, Max: 5})
	if !errors.Is(err, ErrInvalidBounds) {
		t.Fatalf("Expected ErrInvalidBounds, got %v", err)
	}
	if got := s.Bounds(); got.Max != 100 {
		t.Errorf("Expected bounds unchanged, got %+v", got)
	}
}

func TestProgressDegenerateBounds(t *testing.T) {
	if got := Progress(10, Bounds{Min: 5, Max: 5}); got != 0 {
		t.Errorf("Expected 0 for a degenerate range, got %v", got)
	}
	if got := Progress(75, Bounds{Min: 50, Max: 100}); got != 0.5 {
		t.Errorf("Expected 0.5, got %v", got)
	}
}

func TestHostIsSyncedOnlyWhenNeeded(t *testing.T) {
	host := &fakeHost{}
	s := NewSampler(WithBounds(Bounds{Min: 0, Max: 1000}), WithHost(host), WithSmooth(false))

	s.IngestWheel(100, WheelModePixel)
	s.Tick(1.0 / 60)
	if len(host.calls) != 1 || host.calls[0] != 100 {
		t.Fatalf("Expected one sync to 100, got %v", host.calls)
	}

	s.Tick(1.0 / 60)
	if len(host.calls) != 1 {
		t.Fatalf("Expected no sync while idle, got %v", host.calls)
	}

	host.pos = 300
	s.Tick(1.0 / 60)
	if len(host.calls) != 2 || host.calls[1] != 100 {
		t.Errorf("Expected drifted host to be pulled back to 100, got %v", host.calls)
	}
}

func TestCallbacksFireOnMovement(t *testing.T) {
	s := NewSampler(WithBounds(Bounds{Min: 0, Max: 1000}), WithSmooth(false))
	var scrolls, velocities int
	s.OnScroll(func(State) { scrolls++ })
	s.OnVelocity(func(_, _ float32) { velocities++ })

	s.Tick(1.0 / 60)
	if scrolls != 0 || velocities != 0 {
		t.Fatalf("Expected no callbacks while idle, got %d/%d", scrolls, velocities)
	}

	s.IngestWheel(50, WheelModePixel)
	s.Tick(1.0 / 60)
	if scrolls != 1 || velocities != 1 {
		t.Errorf("Expected one of each callback, got %d/%d", scrolls, velocities)
	}
}

func TestReferenceRateMatchesPerFrameAtReference(t *testing.T) {
	plain := NewSampler(WithBounds(Bounds{Min: 0, Max: 1000}))
	scaled := NewSampler(WithBounds(Bounds{Min: 0, Max: 1000}), WithReferenceRate(60))
	plain.IngestWheel(500, WheelModePixel)
	scaled.IngestWheel(500, WheelModePixel)

	a := plain.Tick(1.0 / 60)
	b := scaled.Tick(1.0 / 60)
	if !almostEqual(a.Current, b.Current, 1e-2) {
		t.Errorf("Expected matching step at the reference rate, got %v and %v", a.Current, b.Current)
	}

	half := NewSampler(WithBounds(Bounds{Min: 0, Max: 1000}), WithReferenceRate(60))
	half.IngestWheel(500, WheelModePixel)
	c := half.Tick(1.0 / 120)
	if c.Current >= b.Current {
		t.Errorf("Expected a half-length frame to close less of the gap, got %v vs %v", c.Current, b.Current)
	}
}
