package scene

import (
	"testing"

	"github.com/Carmen-Shannon/cinescroll/common"
	"github.com/Carmen-Shannon/cinescroll/engine/camera"
	"github.com/Carmen-Shannon/cinescroll/engine/fog"
	"github.com/Carmen-Shannon/cinescroll/engine/game_object"
	"github.com/Carmen-Shannon/cinescroll/engine/light"
	"github.com/Carmen-Shannon/cinescroll/engine/parallax"
	"github.com/Carmen-Shannon/cinescroll/engine/postprocess"
)

func TestNewSceneRequiresCamera(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("Expected NewScene to panic on a nil camera")
		}
	}()
	NewScene("nil", nil)
}

func TestAddAssignsMissingIDs(t *testing.T) {
	s := NewScene("ids", camera.NewCamera())
	a := game_object.NewGameObject(game_object.WithID(0))
	b := game_object.NewGameObject(game_object.WithID(7))
	c := game_object.NewGameObject(game_object.WithID(0))

	if id := s.Add(a); id != 1 {
		t.Errorf("Expected first ID 1, got %d", id)
	}
	if id := s.Add(b); id != 7 {
		t.Errorf("Expected explicit ID 7 to be kept, got %d", id)
	}
	if id := s.Add(c); id != 8 {
		t.Errorf("Expected next ID 8, got %d", id)
	}
	if s.Add(nil) != 0 {
		t.Errorf("Expected nil object to be ignored")
	}
	if s.Count() != 3 {
		t.Errorf("Expected 3 objects, got %d", s.Count())
	}
	if s.Get(7) != b {
		t.Errorf("Expected Get(7) to return the registered object")
	}
}

func TestObjectsAreOrderedAndFiltered(t *testing.T) {
	s := NewScene("order", camera.NewCamera())
	for _, id := range []uint64{5, 2, 9} {
		s.Add(game_object.NewGameObject(game_object.WithID(id), game_object.WithEnabled(id != 9)))
	}

	all := s.Objects()
	want := []uint64{2, 5, 9}
	for i, obj := range all {
		if obj.ID() != want[i] {
			t.Fatalf("Expected ID %d at %d, got %d", want[i], i, obj.ID())
		}
	}
	if visible := s.VisibleObjects(); len(visible) != 2 {
		t.Errorf("Expected 2 visible objects, got %d", len(visible))
	}

	s.Remove(5)
	s.Remove(42)
	if s.Count() != 2 {
		t.Errorf("Expected 2 objects after remove, got %d", s.Count())
	}
	s.Clear()
	if s.Count() != 0 {
		t.Errorf("Expected empty scene after Clear, got %d", s.Count())
	}
}

func TestCapabilities(t *testing.T) {
	s := NewScene("caps", camera.NewCamera())
	if caps := s.Capabilities(); caps.Fog || caps.PostProcess || caps.Lights != 0 {
		t.Errorf("Expected no capabilities, got %+v", caps)
	}

	s.SetFog(fog.NewFog(8, 20, common.ColorFromHex(0x0a0a0f)))
	s.SetComposer(postprocess.NewComposer(postprocess.WithBloom(0.5)))
	s.AddLight(light.NewLight(light.LightTypePoint))
	if caps := s.Capabilities(); !caps.Fog || !caps.PostProcess || caps.Lights != 1 {
		t.Errorf("Expected fog, post-process and one light, got %+v", caps)
	}

	s.SetComposer(nil)
	if s.Capabilities().PostProcess {
		t.Errorf("Expected post-process to be removed")
	}
}

func TestLights(t *testing.T) {
	key := light.NewLight(light.LightTypeDirectional, light.WithName("key"))
	rim := light.NewLight(light.LightTypeDirectional, light.WithName("rim"))
	s := NewScene("lights", camera.NewCamera(), WithLights(key))

	s.AddLight(key)
	s.AddLight(rim)
	s.AddLight(nil)
	if n := len(s.Lights()); n != 2 {
		t.Fatalf("Expected 2 lights, got %d", n)
	}
	if s.Light("rim") != rim {
		t.Errorf("Expected lookup by name to find rim")
	}
	if s.Light("missing") != nil {
		t.Errorf("Expected nil for an unknown light")
	}

	s.RemoveLight(key)
	s.RemoveLight(key)
	if n := len(s.Lights()); n != 1 {
		t.Errorf("Expected 1 light after remove, got %d", n)
	}
}

func TestSetCameraIgnoresNil(t *testing.T) {
	cam := camera.NewCamera()
	s := NewScene("cam", cam)
	s.SetCamera(nil)
	if s.Camera() != cam {
		t.Errorf("Expected the original camera to be kept")
	}
}

func TestStage(t *testing.T) {
	tests := []struct {
		name   string
		mobile bool
		decor  [3]int
	}{
		{"desktop", false, [3]int{3, 3, 88}},
		{"mobile", true, [3]int{2, 2, 42}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := NewStage(camera.NewCamera(), WithMobile(tt.mobile))

			if len(st.Motifs) != 6 {
				t.Fatalf("Expected 6 motifs, got %d", len(st.Motifs))
			}
			for i, m := range st.Motifs {
				if m.Enabled() != (i == 0) {
					t.Errorf("Expected only the first motif visible, motif %d enabled=%v", i, m.Enabled())
				}
			}

			var counts [3]int
			for _, d := range st.Decor {
				counts[d.Layer]++
			}
			if counts != tt.decor {
				t.Errorf("Expected decor %v, got %v", tt.decor, counts)
			}

			caps := st.Scene.Capabilities()
			if !caps.Fog || caps.PostProcess || caps.Lights != 5 {
				t.Errorf("Expected fog and five lights without post-process, got %+v", caps)
			}
			if got := st.Scene.Count(); got != len(st.Motifs)+len(st.Decor) {
				t.Errorf("Expected every stage object registered, got %d", got)
			}
			if st.Scene.Light(LightKey) != st.Key {
				t.Errorf("Expected the key light to be registered by name")
			}
			if tt.mobile && st.Key.Intensity() != 1.35 {
				t.Errorf("Expected mobile key intensity 1.35, got %v", st.Key.Intensity())
			}
		})
	}
}

func TestStageSeedIsReproducible(t *testing.T) {
	a := NewStage(camera.NewCamera(), WithStageSeed(3))
	b := NewStage(camera.NewCamera(), WithStageSeed(3))
	for i := range a.Decor {
		if a.Decor[i].Object.Position() != b.Decor[i].Object.Position() {
			t.Fatalf("Expected identical decor layout for the same seed at %d", i)
		}
		if a.Decor[i].Layer == parallax.Background && a.Decor[i].Phase != b.Decor[i].Phase {
			t.Fatalf("Expected identical flow phases for the same seed at %d", i)
		}
	}
}
