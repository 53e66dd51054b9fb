package input

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Carmen-Shannon/cinescroll/engine/window"
)

func TestRegistryDispatchesByKind(t *testing.T) {
	r := NewRegistry()
	var wheels, touches int
	r.Listen(KindWheel, func(Event) { wheels++ })
	r.Listen(KindTouchStart, func(Event) { touches++ })

	r.Dispatch(Event{Kind: KindWheel, DeltaY: 100})
	r.Dispatch(Event{Kind: KindWheel, DeltaY: 100})
	r.Dispatch(Event{Kind: KindTouchStart})
	r.Dispatch(Event{Kind: KindResize})

	if wheels != 2 || touches != 1 {
		t.Errorf("Expected 2 wheel and 1 touch deliveries, got %d and %d", wheels, touches)
	}
}

func TestListenerRemoval(t *testing.T) {
	r := NewRegistry()
	calls := 0
	remove := r.Listen(KindKey, func(Event) { calls++ })
	remove()
	remove()
	r.Dispatch(Event{Kind: KindKey})
	if calls != 0 || r.Len() != 0 {
		t.Errorf("Expected removed handler to stay silent, got %d calls and %d listeners", calls, r.Len())
	}
}

func TestPanickingHandlerDoesNotStopOthers(t *testing.T) {
	r := NewRegistry()
	reached := false
	r.Listen(KindWheel, func(Event) { panic("boom") })
	r.Listen(KindWheel, func(Event) { reached = true })
	r.Dispatch(Event{Kind: KindWheel})
	if !reached {
		t.Errorf("Expected the second handler to run")
	}
}

func TestReleaseIsIdempotent(t *testing.T) {
	r := NewRegistry()
	var order []int
	r.OnRelease(func() { order = append(order, 1) })
	r.OnRelease(func() { order = append(order, 2) })
	calls := 0
	r.Listen(KindWheel, func(Event) { calls++ })

	r.Release()
	r.Release()
	r.Dispatch(Event{Kind: KindWheel})
	r.Listen(KindWheel, func(Event) { calls++ })
	r.Dispatch(Event{Kind: KindWheel})

	if len(order) != 2 || order[0] != 2 || order[1] != 1 {
		t.Errorf("Expected unbinds once in reverse order, got %v", order)
	}
	if calls != 0 || r.Len() != 0 || !r.Released() {
		t.Errorf("Expected a released registry to ignore listeners, got %d calls", calls)
	}

	late := false
	r.OnRelease(func() { late = true })
	if !late {
		t.Errorf("Expected OnRelease after Release to run immediately")
	}
}

type fakeWindow struct {
	scroll func(dx, dy float32)
	cursor func(x, y float32)
	button func(b window.MouseButton, pressed bool, x, y float32)
	resize func(w, h int)
	key    func(k uint32)
}

func (f *fakeWindow) SetScrollCallback(cb func(dx, dy float32)) { f.scroll = cb }
func (f *fakeWindow) SetCursorCallback(cb func(x, y float32))   { f.cursor = cb }
func (f *fakeWindow) SetButtonCallback(cb func(b window.MouseButton, pressed bool, x, y float32)) {
	f.button = cb
}
func (f *fakeWindow) SetResizeCallback(cb func(w, h int))  { f.resize = cb }
func (f *fakeWindow) SetKeyDownCallback(cb func(k uint32)) { f.key = cb }
func (f *fakeWindow) Width() int                           { return 200 }
func (f *fakeWindow) Height() int                          { return 100 }

func TestBindTranslatesWindowEvents(t *testing.T) {
	w := &fakeWindow{}
	r := NewRegistry()
	var got []Event
	for k := range kindCount {
		r.Listen(k, func(ev Event) { got = append(got, ev) })
	}
	Bind(w, r)

	w.scroll(0, -2)
	w.cursor(150, 25)
	w.button(window.ButtonLeft, true, 150, 25)
	w.cursor(150, 10)
	w.button(window.ButtonLeft, false, 150, 10)
	w.button(window.ButtonRight, true, 0, 0)
	w.resize(640, 480)
	w.key(264)

	want := []Kind{KindWheel, KindPointer, KindTouchStart, KindPointer, KindTouchMove, KindTouchEnd, KindResize, KindKey}
	if len(got) != len(want) {
		t.Fatalf("Expected %d events, got %d: %+v", len(want), len(got), got)
	}
	for i, k := range want {
		if got[i].Kind != k {
			t.Errorf("Expected event %d to be %s, got %s", i, k, got[i].Kind)
		}
	}
	if got[0].DeltaY != 2 || !got[0].Lines {
		t.Errorf("Expected a forward line-mode wheel of 2, got %+v", got[0])
	}
	if got[1].X != 0.5 || got[1].Y != 0.5 {
		t.Errorf("Expected pointer (0.5, 0.5), got (%v, %v)", got[1].X, got[1].Y)
	}

	r.Release()
	if w.scroll != nil || w.cursor != nil || w.button != nil || w.resize != nil || w.key != nil {
		t.Errorf("Expected window callbacks to be cleared on release")
	}
}

const sampleScript = `
events:
  - {at: 0.5, kind: wheel, deltaY: 100}
  - {at: 0.1, kind: touch-start, x: 10, y: 400}
  - {at: 0.5, kind: wheel, deltaY: 50, lines: true}
  - {at: 1.0, kind: resize, width: 800, height: 600}
`

func TestParseScriptOrdersByTime(t *testing.T) {
	s, err := ParseScript([]byte(sampleScript))
	if err != nil {
		t.Fatalf("Failed to parse script: %v", err)
	}
	if len(s.Events) != 4 {
		t.Fatalf("Expected 4 events, got %d", len(s.Events))
	}
	if s.Events[0].Kind != KindTouchStart {
		t.Errorf("Expected the earliest event first, got %s", s.Events[0].Kind)
	}
	if s.Events[1].DeltaY != 100 || s.Events[2].DeltaY != 50 || !s.Events[2].Lines {
		t.Errorf("Expected equal-time events in file order, got %+v, %+v", s.Events[1], s.Events[2])
	}
}

func TestParseScriptRejectsBadInput(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"unknown kind", "events:\n  - {at: 0, kind: swipe}\n"},
		{"negative time", "events:\n  - {at: -1, kind: wheel}\n"},
		{"malformed", "events: [\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseScript([]byte(tt.doc)); err == nil {
				t.Errorf("Expected an error")
			}
		})
	}
}

func TestReplayAdvance(t *testing.T) {
	s, _ := ParseScript([]byte(sampleScript))
	r := NewRegistry()
	var wheel float32
	r.Listen(KindWheel, func(ev Event) { wheel += ev.DeltaY })
	p := NewReplay(s, r)

	steps := []struct {
		dt    float32
		fired int
	}{
		{0.05, 0},
		{0.1, 1},
		{0.4, 2},
		{0.4, 0},
		{0.2, 1},
		{1, 0},
	}
	for i, st := range steps {
		if n := p.Advance(st.dt); n != st.fired {
			t.Errorf("Step %d: expected %d events, got %d", i, st.fired, n)
		}
	}
	if wheel != 150 || !p.Done() {
		t.Errorf("Expected all wheel deltas delivered, got %v done=%v", wheel, p.Done())
	}

	p.Reset()
	if p.Done() || p.Elapsed() != 0 {
		t.Errorf("Expected Reset to rewind")
	}
}

func TestReplayRunHonorsCancel(t *testing.T) {
	s := Script{Events: []Event{{At: 0, Kind: KindKey}, {At: 30, Kind: KindKey}}}
	r := NewRegistry()
	keys := 0
	r.Listen(KindKey, func(Event) { keys++ })

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	if err := NewReplay(s, r).Run(ctx); err == nil {
		t.Errorf("Expected a cancellation error")
	}
	if keys != 1 {
		t.Errorf("Expected only the immediate event, got %d", keys)
	}
}

func TestRecorderRoundTrip(t *testing.T) {
	now := time.Unix(0, 0)
	r := NewRegistry()
	rec := NewRecorder(r, func() time.Time { return now })

	now = now.Add(250 * time.Millisecond)
	r.Dispatch(Event{Kind: KindWheel, DeltaY: 40})
	now = now.Add(250 * time.Millisecond)
	r.Dispatch(Event{Kind: KindPointer, X: 0.2, Y: -0.4})

	path := filepath.Join(t.TempDir(), "input.yaml")
	if err := WriteScript(rec.Script(), path); err != nil {
		t.Fatalf("Failed to write script: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("Expected script file: %v", err)
	}
	s, err := LoadScript(path)
	if err != nil {
		t.Fatalf("Failed to load script: %v", err)
	}
	if len(s.Events) != 2 || s.Events[0].At != 0.25 || s.Events[1].Kind != KindPointer || s.Events[1].Y != -0.4 {
		t.Errorf("Expected recorded events to survive the file, got %+v", s.Events)
	}
}
