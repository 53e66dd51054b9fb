package orchestrator

import (
	"math"
	"testing"

	"github.com/Carmen-Shannon/cinescroll/common"
	"github.com/Carmen-Shannon/cinescroll/engine/atmosphere"
	"github.com/Carmen-Shannon/cinescroll/engine/camera"
	"github.com/Carmen-Shannon/cinescroll/engine/choreography"
	"github.com/Carmen-Shannon/cinescroll/engine/effects"
	"github.com/Carmen-Shannon/cinescroll/engine/game_object"
	"github.com/Carmen-Shannon/cinescroll/engine/input"
	"github.com/Carmen-Shannon/cinescroll/engine/motion"
	"github.com/Carmen-Shannon/cinescroll/engine/narrative"
	"github.com/Carmen-Shannon/cinescroll/engine/parallax"
	"github.com/Carmen-Shannon/cinescroll/engine/postprocess"
	"github.com/Carmen-Shannon/cinescroll/engine/scene"
)

const frame = float32(1) / 60

func almostEqual(a, b, eps float32) bool {
	return math.Abs(float64(a-b)) <= float64(eps)
}

type recordingPresenter struct {
	frames []Frame
	panics bool
}

func (p *recordingPresenter) Present(f Frame) {
	if p.panics {
		panic("present failed")
	}
	p.frames = append(p.frames, f)
}

type panickingPump struct{}

func (panickingPump) Advance(float32) int { panic("pump failed") }

func newPipeline(t *testing.T, extra ...OrchestratorBuilderOption) (Orchestrator, *recordingPresenter) {
	t.Helper()
	cam := camera.NewCamera(camera.WithFov(50))
	field, err := parallax.NewField(parallax.WithWorkers(1))
	if err != nil {
		t.Fatalf("Failed to create field: %v", err)
	}
	composer := postprocess.NewComposer(postprocess.WithAllPasses(0.5))
	presenter := &recordingPresenter{}
	opts := []OrchestratorBuilderOption{
		WithViewport(800, 400),
		WithRig(camera.NewRig(cam, camera.WithSeed(1))),
		WithAtmosphere(atmosphere.NewAtmosphere()),
		WithField(field),
		WithEffects(effects.NewEffects(effects.WithComposer(composer))),
		WithScene(scene.NewScene("test", cam, scene.WithComposer(composer))),
		WithPresenter(presenter),
	}
	o := NewOrchestrator(append(opts, extra...)...)
	t.Cleanup(o.Stop)
	return o, presenter
}

func TestBoundsFollowViewport(t *testing.T) {
	o, _ := newPipeline(t)
	if b := o.Bounds(); b.Min != 0 || b.Max != 2000 {
		t.Errorf("Expected bounds [0, 2000], got %+v", b)
	}
	o.Resize(800, 200)
	if b := o.Bounds(); b.Max != 1000 {
		t.Errorf("Expected max 1000 after resize, got %v", b.Max)
	}
	o.Resize(0, 100)
	if b := o.Bounds(); b.Max != 1000 {
		t.Errorf("Expected a degenerate resize to be ignored, got %v", b.Max)
	}
}

func TestWheelScenarioConvergesWithoutOvershoot(t *testing.T) {
	o, presenter := newPipeline(t)
	r := input.NewRegistry()
	o.Attach(r)

	for range 10 {
		r.Dispatch(input.Event{Kind: input.KindWheel, DeltaY: 100})
	}

	var prev float32
	for i := range 600 {
		f := o.Frame(frame)
		if i == 0 && f.Scroll.Target != 1000 {
			t.Fatalf("Expected target 1000 immediately, got %v", f.Scroll.Target)
		}
		if f.Scroll.Current < prev || f.Scroll.Current > 1000 {
			t.Fatalf("Expected monotonic approach without overshoot, got %v after %v at frame %d", f.Scroll.Current, prev, i)
		}
		prev = f.Scroll.Current
	}
	if prev != 1000 {
		t.Errorf("Expected current to settle at 1000, got %v", prev)
	}
	if len(presenter.frames) != 600 {
		t.Errorf("Expected 600 presented frames, got %d", len(presenter.frames))
	}
}

func TestFrameSharesOneSample(t *testing.T) {
	o, presenter := newPipeline(t)
	o.SeekSection(3, false)
	for range 20 {
		o.Frame(frame)
	}
	f := presenter.frames[len(presenter.frames)-1]
	if f.Index != o.Last().Index {
		t.Fatalf("Expected the presented frame to be the last frame")
	}
	if want := motion.Progress(f.Scroll.Current, motion.Bounds{Min: 0, Max: 2000}); f.Progress != want {
		t.Errorf("Expected progress %v from the sampled position, got %v", want, f.Progress)
	}
	if f.Post.Bloom != f.Effects.Bloom || f.Post.Exposure != f.Effects.Exposure {
		t.Errorf("Expected post params to match the effects written this frame, got %+v vs %+v", f.Post, f.Effects)
	}
	if f.Camera.Fov == 0 || f.Atmosphere.FogFar == 0 {
		t.Errorf("Expected camera and atmosphere outputs, got %+v %+v", f.Camera, f.Atmosphere)
	}
}

func TestStagePanicIsIsolated(t *testing.T) {
	o, presenter := newPipeline(t, WithPump(panickingPump{}))
	presenter.panics = true

	o.SeekSection(1, false)
	f := o.Frame(frame)
	if o.Failures(StageInput) != 1 || o.Failures(StageRender) != 1 {
		t.Errorf("Expected one failure in input and render, got %d and %d", o.Failures(StageInput), o.Failures(StageRender))
	}
	if len(f.Failed) != 2 || f.Failed[0] != "input" || f.Failed[1] != "render" {
		t.Errorf("Expected failed stages [input render], got %v", f.Failed)
	}
	if f.Scroll.Current <= 0 || f.Camera.Fov == 0 {
		t.Errorf("Expected the stages between the failures to run, got %+v", f)
	}

	presenter.panics = false
	o.Frame(frame)
	if len(presenter.frames) != 1 || o.Failures(StageRender) != 1 {
		t.Errorf("Expected the next frame to render normally")
	}
	if o.Failures(Stage(99)) != 0 {
		t.Errorf("Expected no failures for an unknown stage")
	}
}

func TestStopReleasesListenersAndIsIdempotent(t *testing.T) {
	o, _ := newPipeline(t)
	r := input.NewRegistry()
	o.Attach(r)
	if r.Len() == 0 {
		t.Fatalf("Expected listeners after Attach")
	}
	last := o.Frame(frame)

	o.Stop()
	o.Stop()
	if !o.Stopped() || !r.Released() || r.Len() != 0 {
		t.Errorf("Expected Stop to release every listener")
	}
	if f := o.Frame(frame); f.Index != last.Index {
		t.Errorf("Expected no pass after Stop, got frame %d", f.Index)
	}

	r2 := input.NewRegistry()
	o.Attach(r2)
	if r2.Len() != 0 {
		t.Errorf("Expected Attach after Stop to do nothing")
	}
}

func TestResizeReclampsImmediately(t *testing.T) {
	o, _ := newPipeline(t)
	o.SeekSection(5, true)
	o.Resize(800, 100)

	r := input.NewRegistry()
	o.Attach(r)
	r.Dispatch(input.Event{Kind: input.KindResize, Width: 800, Height: 50})

	f := o.Frame(frame)
	if f.Scroll.Current > 250 || f.Scroll.Target > 250 {
		t.Errorf("Expected position clamped into [0, 250], got %+v", f.Scroll)
	}
}

func TestKeyNavigation(t *testing.T) {
	o, _ := newPipeline(t)
	r := input.NewRegistry()
	o.Attach(r)

	tests := []struct {
		name string
		key  uint32
		want float32
	}{
		{"end", common.KeyEnd, 2000},
		{"home", common.KeyHome, 0},
		{"section 3", common.Key3, 800},
		{"page down", common.KeyPageDown, 1200},
		{"arrow up", common.KeyUp, 1160},
		{"section beyond range", common.Key9, 2000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r.Dispatch(input.Event{Kind: input.KindKey, Key: tt.key})
			if got := o.Frame(frame).Scroll.Target; got != tt.want {
				t.Errorf("Expected target %v, got %v", tt.want, got)
			}
		})
	}
}

func TestPointerReachesRig(t *testing.T) {
	rig := camera.NewRig(camera.NewCamera(), camera.WithSeed(2))
	o, _ := newPipeline(t, WithRig(rig))
	r := input.NewRegistry()
	o.Attach(r)
	r.Dispatch(input.Event{Kind: input.KindPointer, X: 1, Y: -1})
	for range 10 {
		o.Frame(frame)
	}
	if p := rig.Pointer(); p[0] <= 0 || p[1] >= 0 {
		t.Errorf("Expected the rig pointer to move toward (1, -1), got %v", p)
	}
}

func TestSectionChangeTriggersNarrative(t *testing.T) {
	motifs := make([]game_object.GameObject, 6)
	for i := range motifs {
		motifs[i] = game_object.NewGameObject(game_object.WithEnabled(i == 0))
	}
	n := narrative.NewNarrative(narrative.WithMotifs(motifs...))
	o, _ := newPipeline(t, WithNarrative(n), WithMotifs(motifs...))

	o.SeekSection(2, false)
	sawTransition := false
	for range 900 {
		if f := o.Frame(frame); f.Phase != narrative.PhaseIdle.String() {
			sawTransition = true
		}
	}
	if !sawTransition {
		t.Fatalf("Expected a transition while scrolling across sections")
	}

	last := o.Last()
	if n.Active() || n.Current() != last.State {
		t.Errorf("Expected the narrative idle on state %d, got current %d active=%v", last.State, n.Current(), n.Active())
	}
	visible := 0
	for i, m := range motifs {
		if m.Enabled() {
			visible++
			if i != last.State {
				t.Errorf("Expected motif %d to be the visible one, got %d", last.State, i)
			}
			if m.Rotation()[1] == 0 {
				t.Errorf("Expected the visible motif to spin")
			}
		}
	}
	if visible != 1 {
		t.Errorf("Expected exactly one visible motif, got %d", visible)
	}
}

func TestAtmosphereFollowsProgressInScrollMode(t *testing.T) {
	o, _ := newPipeline(t)
	o.SeekSection(5, true)
	f := o.Frame(frame)
	if f.Progress != 1 {
		t.Fatalf("Expected progress 1 after an immediate seek to the last section, got %v", f.Progress)
	}
	if !almostEqual(f.Atmosphere.FogNear, 5.8, 1e-4) || !almostEqual(f.Atmosphere.FogFar, 14.2, 1e-4) {
		t.Errorf("Expected fog [5.8, 14.2] at full scroll, got [%v, %v]", f.Atmosphere.FogNear, f.Atmosphere.FogFar)
	}
	if f.Atmosphere.FogColor.Hex() != 0x12182a {
		t.Errorf("Expected the far fog color, got %06x", f.Atmosphere.FogColor.Hex())
	}
}

func TestAtmosphereFollowsChannelsInTimelineMode(t *testing.T) {
	c := choreography.NewChoreographer(choreography.WithMode(choreography.ModeTimeline))
	o, _ := newPipeline(t, WithChoreographer(c))
	o.SeekSection(3, true)
	var f Frame
	for range 30 {
		f = o.Frame(frame)
	}
	want := 8 - f.Channels.LightMix*1.8 - f.Channels.TransitionMix*0.4
	if !almostEqual(f.Atmosphere.FogNear, want, 1e-4) {
		t.Errorf("Expected fog near %v from the light and transition channels, got %v", want, f.Atmosphere.FogNear)
	}
}

func TestMotifsFollowScaleAndPhase(t *testing.T) {
	motifs := []game_object.GameObject{
		game_object.NewGameObject(game_object.WithPosition(0, 1, -3), game_object.WithScale(2, 2, 2)),
		game_object.NewGameObject(game_object.WithScale(1, 1, 1), game_object.WithEnabled(false)),
	}
	o, _ := newPipeline(t, WithMotifs(motifs...))
	o.SeekSection(5, true)
	f := o.Frame(frame)
	if f.Channels.MotifScale < 1 {
		t.Fatalf("Expected an authored motif scale of at least 1, got %v", f.Channels.MotifScale)
	}

	growth := f.Channels.MotifScale * 1.24
	tests := []struct {
		name  string
		index int
		scale float32
	}{
		{"visible motif", 0, 2 * growth},
		{"hidden motif", 1, growth},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := motifs[tt.index].Scale()[0]; !almostEqual(got, tt.scale, 1e-4) {
				t.Errorf("Expected scale %v, got %v", tt.scale, got)
			}
		})
	}

	p := motifs[0].Position()
	if !almostEqual(p[1], 1.09, 1e-5) || !almostEqual(p[2], -3.7, 1e-5) {
		t.Errorf("Expected the motif lifted to 1.09 and receded to -3.7, got %v", p)
	}

	o.SeekSection(0, true)
	o.Frame(frame)
	if got := motifs[0].Scale()[0]; !almostEqual(got, 2*o.Last().Channels.MotifScale, 1e-4) {
		t.Errorf("Expected the scale to return toward the authored one, got %v", got)
	}
}

func TestMotifScaleIsLeftToRunningTransition(t *testing.T) {
	motifs := make([]game_object.GameObject, 6)
	for i := range motifs {
		motifs[i] = game_object.NewGameObject(game_object.WithEnabled(i == 0))
	}
	n := narrative.NewNarrative(narrative.WithMotifs(motifs...))
	o, _ := newPipeline(t, WithNarrative(n), WithMotifs(motifs...))
	o.Frame(frame)

	n.EnterState(1)
	for range 5 {
		o.Frame(frame)
		if !n.Active() {
			t.Fatalf("Expected the transition to still be running")
		}
		if s := motifs[0].Scale()[0]; s > 1 {
			t.Errorf("Expected the dissolving motif to shrink, got scale %v", s)
		}
	}
}
