package narrative

import (
	"math"
	"slices"
	"testing"

	"github.com/Carmen-Shannon/cinescroll/common"
	"github.com/Carmen-Shannon/cinescroll/engine/atmosphere"
	"github.com/Carmen-Shannon/cinescroll/engine/game_object"
	"github.com/go-gl/mathgl/mgl32"
)

const frame = float32(1.0 / 60)

func almostEqual(a, b, eps float32) bool {
	return float32(math.Abs(float64(a-b))) <= eps
}

var cube = []mgl32.Vec3{{-1, -1, -1}, {1, -1, -1}, {1, 1, -1}, {-1, 1, 1}}

func newMotif(x float32, enabled bool) game_object.GameObject {
	return game_object.NewGameObject(
		game_object.WithPosition(x, 0, 0),
		game_object.WithVertices(cube),
		game_object.WithEnabled(enabled),
	)
}

func runUntilIdle(t *testing.T, n Narrative) {
	t.Helper()
	for range 600 {
		n.Advance(frame)
		if !n.Active() {
			return
		}
	}
	t.Fatalf("Expected the transition to finish, still %v", n.Phase())
}

func assertStable(t *testing.T, name string, obj game_object.GameObject, enabled bool) {
	t.Helper()
	if obj.Enabled() != enabled {
		t.Errorf("%s: expected enabled=%v, got %v", name, enabled, obj.Enabled())
	}
	if obj.Opacity() != 1 || obj.Scale() != (mgl32.Vec3{1, 1, 1}) {
		t.Errorf("%s: expected full opacity and unit scale, got %v %v", name, obj.Opacity(), obj.Scale())
	}
	if !slices.Equal(obj.Vertices(), obj.OriginalVertices()) {
		t.Errorf("%s: expected restored vertices", name)
	}
}

func TestMorphSequence(t *testing.T) {
	a, b := newMotif(0, true), newMotif(4, false)
	n := NewNarrative(WithMotifs(a, b))

	var phases []Phase
	n.OnPhase(func(p Phase) { phases = append(phases, p) })

	n.EnterState(1)
	if n.Phase() != PhaseDissolving {
		t.Fatalf("Expected dissolving, got %v", n.Phase())
	}

	for range 15 {
		n.Advance(frame)
	}
	if op := a.Opacity(); op <= 0 || op >= 1 {
		t.Errorf("Expected a partial fade mid-dissolve, got %v", op)
	}
	if s := a.Scale()[0]; s <= 0.7 || s >= 1 {
		t.Errorf("Expected a partial shrink mid-dissolve, got %v", s)
	}
	if slices.Equal(a.Vertices(), a.OriginalVertices()) {
		t.Errorf("Expected scattered vertices mid-dissolve")
	}

	runUntilIdle(t, n)
	want := []Phase{PhaseDissolving, PhaseReflowing, PhaseAssembling, PhaseIdle}
	if !slices.Equal(phases, want) {
		t.Errorf("Expected phases %v, got %v", want, phases)
	}
	assertStable(t, "source", a, false)
	assertStable(t, "target", b, true)
	if n.ParticlesVisible() {
		t.Errorf("Expected particles hidden at idle")
	}
	if n.Current() != 1 {
		t.Errorf("Expected current 1, got %d", n.Current())
	}
}

func TestTransitionFillsDuration(t *testing.T) {
	tests := []struct {
		name    string
		options []NarrativeBuilderOption
	}{
		{"morph with reflow", nil},
		{"morph without reflow", []NarrativeBuilderOption{WithParticleReflow(false)}},
		{"cross-fade", []NarrativeBuilderOption{WithGeometryMorph(false)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, b := newMotif(0, true), newMotif(4, false)
			opts := append([]NarrativeBuilderOption{WithMotifs(a, b), WithDuration(1.2)}, tt.options...)
			n := NewNarrative(opts...)
			n.EnterState(1)

			var elapsed float32
			for n.Active() {
				if elapsed > 3 {
					t.Fatalf("Expected the transition to finish, still %v", n.Phase())
				}
				n.Advance(frame)
				elapsed += frame
			}
			if elapsed < 1.2-frame || elapsed > 1.2+3*frame {
				t.Errorf("Expected the transition to take 1.2s, took %v", elapsed)
			}
		})
	}
}

func TestReflowSpawnAndFlow(t *testing.T) {
	a, b := newMotif(0, true), newMotif(4, false)
	n := NewNarrative(WithMotifs(a, b), WithParticleCount(32))
	n.EnterState(1)
	for i := 0; n.Phase() != PhaseReflowing; i++ {
		if i > 600 {
			t.Fatalf("Expected to reach the reflow phase")
		}
		n.Advance(frame)
	}

	if !n.ParticlesVisible() {
		t.Fatalf("Expected particles visible during reflow")
	}
	spawned := n.Particles()
	if len(spawned) != 32 {
		t.Fatalf("Expected 32 particles, got %d", len(spawned))
	}
	for i, p := range spawned {
		for axis := range 3 {
			if p.Position[axis] < -1 || p.Position[axis] > 1 {
				t.Fatalf("particle %d: expected spawn within 1 of the source, got %v", i, p.Position)
			}
		}
		wantVel := mgl32.Vec3{4, 0, 0}.Sub(p.Position).Mul(0.05)
		if !p.Velocity.ApproxEqualThreshold(wantVel, 1e-6) {
			t.Fatalf("particle %d: expected velocity %v, got %v", i, wantVel, p.Velocity)
		}
		if p.Alpha != 1 {
			t.Fatalf("particle %d: expected alpha 1, got %v", i, p.Alpha)
		}
	}

	n.Advance(frame)
	stepped := n.Particles()
	p0, p1 := spawned[0], stepped[0]
	if !p1.Position.ApproxEqualThreshold(p0.Position.Add(p0.Velocity), 1e-6) {
		t.Errorf("Expected position %v, got %v", p0.Position.Add(p0.Velocity), p1.Position)
	}
	if !p1.Velocity.ApproxEqualThreshold(p0.Velocity.Mul(0.98), 1e-6) {
		t.Errorf("Expected damped velocity %v, got %v", p0.Velocity.Mul(0.98), p1.Velocity)
	}
	if !almostEqual(p1.Alpha, 0.95, 1e-6) {
		t.Errorf("Expected alpha 0.95, got %v", p1.Alpha)
	}
}

func TestNewTriggerCancelsRunningTransition(t *testing.T) {
	a, b, c := newMotif(0, true), newMotif(4, false), newMotif(8, false)
	n := NewNarrative(WithMotifs(a, b, c))

	n.EnterState(1)
	for range 6 {
		n.Advance(frame)
	}
	n.EnterState(2)
	runUntilIdle(t, n)

	visible := 0
	for _, obj := range []game_object.GameObject{a, b, c} {
		if obj.Enabled() {
			visible++
		}
	}
	if visible != 1 || !c.Enabled() {
		t.Errorf("Expected only the last target visible, got a=%v b=%v c=%v", a.Enabled(), b.Enabled(), c.Enabled())
	}
	assertStable(t, "b", b, false)
	assertStable(t, "c", c, true)
}

func TestReturningMidDissolveRestoresSource(t *testing.T) {
	a, b := newMotif(0, true), newMotif(4, false)
	n := NewNarrative(WithMotifs(a, b))

	n.EnterState(1)
	for range 6 {
		n.Advance(frame)
	}
	n.EnterState(0)
	if n.Active() {
		t.Fatalf("Expected no transition back to the visible motif, got %v", n.Phase())
	}
	assertStable(t, "a", a, true)
	assertStable(t, "b", b, false)
	if n.Current() != 0 {
		t.Errorf("Expected current 0, got %d", n.Current())
	}
}

func TestCancelDuringAssembleCompletesTarget(t *testing.T) {
	a, b := newMotif(0, true), newMotif(4, false)
	n := NewNarrative(WithMotifs(a, b))

	n.EnterState(1)
	for i := 0; n.Phase() != PhaseAssembling; i++ {
		if i > 600 {
			t.Fatalf("Expected to reach the assemble phase")
		}
		n.Advance(frame)
	}
	n.Advance(frame)
	n.Cancel()
	n.Cancel()

	if n.Active() {
		t.Fatalf("Expected idle after Cancel, got %v", n.Phase())
	}
	assertStable(t, "a", a, false)
	assertStable(t, "b", b, true)
	if n.ParticlesVisible() {
		t.Errorf("Expected particles hidden after Cancel")
	}
}

func TestCrossFadeFallback(t *testing.T) {
	a, b := newMotif(0, true), newMotif(4, false)
	n := NewNarrative(WithMotifs(a, b), WithGeometryMorph(false), WithDuration(1))

	var phases []Phase
	n.OnPhase(func(p Phase) { phases = append(phases, p) })
	n.EnterState(1)
	for n.Active() {
		n.Advance(frame)
		if !slices.Equal(a.Vertices(), a.OriginalVertices()) || !slices.Equal(b.Vertices(), b.OriginalVertices()) {
			t.Fatalf("Expected the cross-fade to leave geometry untouched")
		}
		if n.ParticlesVisible() {
			t.Fatalf("Expected no particles in the cross-fade")
		}
	}

	want := []Phase{PhaseFadingOut, PhaseFadingIn, PhaseIdle}
	if !slices.Equal(phases, want) {
		t.Errorf("Expected phases %v, got %v", want, phases)
	}
	assertStable(t, "a", a, false)
	assertStable(t, "b", b, true)
}

type recordingCrossfader struct {
	fog      []common.Color
	lighting []atmosphere.Gains
	duration float32
}

func (r *recordingCrossfader) CrossfadeFog(color common.Color, duration float32) {
	r.fog = append(r.fog, color)
	r.duration = duration
}

func (r *recordingCrossfader) CrossfadeLighting(gains atmosphere.Gains, duration float32) {
	r.lighting = append(r.lighting, gains)
	r.duration = duration
}

func TestTransitionRequestsAtmosphereSwells(t *testing.T) {
	a, b := newMotif(0, true), newMotif(4, false)
	cf := &recordingCrossfader{}
	gains := atmosphere.Gains{Key: 1.5, Fill: 1, Rim: 2}
	n := NewNarrative(WithMotifs(a, b), WithCrossfader(cf), WithDuration(2),
		WithFogSwell(common.ColorFromHex(0x223344)), WithLightingSwell(gains))

	n.EnterState(1)
	if len(cf.fog) != 1 || cf.fog[0].Hex() != 0x223344 {
		t.Errorf("Expected one fog swell to #223344, got %v", cf.fog)
	}
	if len(cf.lighting) != 1 || cf.lighting[0] != gains {
		t.Errorf("Expected one lighting swell %v, got %v", gains, cf.lighting)
	}
	if cf.duration != 2 {
		t.Errorf("Expected swell duration 2, got %v", cf.duration)
	}
}

func TestSeedIsReproducible(t *testing.T) {
	spawn := func() []Particle {
		n := NewNarrative(WithMotifs(newMotif(0, true), newMotif(4, false)), WithSeed(42), WithParticleCount(8))
		n.EnterState(1)
		for n.Phase() != PhaseReflowing {
			n.Advance(frame)
		}
		return n.Particles()
	}
	if first, second := spawn(), spawn(); !slices.Equal(first, second) {
		t.Errorf("Expected identical particles for the same seed")
	}
}

func TestDegenerateRequests(t *testing.T) {
	a := newMotif(0, true)
	n := NewNarrative(WithMotifs(a))

	n.EnterState(3)
	n.EnterState(-1)
	n.Transition(a, nil)
	if n.Active() || n.Current() != 0 {
		t.Errorf("Expected no transition, got %v current %d", n.Phase(), n.Current())
	}

	empty := NewNarrative(WithParticleCount(0))
	empty.EnterState(0)
	if empty.Current() != -1 {
		t.Errorf("Expected no current motif, got %d", empty.Current())
	}
}

func TestAssembleScale(t *testing.T) {
	tests := []struct {
		p, want float32
	}{
		{0, 0.7},
		{0.4, 0.87},
		{0.8, 1.04},
		{1, 1},
	}
	for _, tt := range tests {
		if got := assembleScale(tt.p); !almostEqual(got, tt.want, 1e-5) {
			t.Errorf("assembleScale(%v): expected %v, got %v", tt.p, tt.want, got)
		}
	}
}
