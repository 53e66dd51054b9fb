package renderer

import (
	"path/filepath"
	"testing"

	"github.com/Carmen-Shannon/cinescroll/common"
	"github.com/Carmen-Shannon/cinescroll/engine/atmosphere"
	"github.com/Carmen-Shannon/cinescroll/engine/orchestrator"
	"github.com/Carmen-Shannon/cinescroll/engine/postprocess"
)

func almostEqual(a, b float32) bool {
	d := a - b
	return d < 1e-5 && d > -1e-5
}

func frameWith(fog common.Color, post postprocess.Params) orchestrator.Frame {
	return orchestrator.Frame{
		Atmosphere: atmosphere.Snapshot{FogColor: fog},
		Post:       post,
	}
}

func TestFrameColor(t *testing.T) {
	fog := common.Color{0.2, 0.4, 0.1}
	tests := []struct {
		name string
		post postprocess.Params
		want common.Color
	}{
		{"zero exposure is neutral", postprocess.Params{}, common.Color{0.2, 0.4, 0.1}},
		{"exposure scales", postprocess.Params{Exposure: 1.5}, common.Color{0.3, 0.6, 0.15}},
		{"bloom lifts", postprocess.Params{Exposure: 1, Bloom: 1}, common.Color{0.25, 0.5, 0.125}},
		{"clamped", postprocess.Params{Exposure: 4}, common.Color{0.8, 1, 0.4}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FrameColor(frameWith(fog, tt.post), defaultBloomLift)
			for i := range got {
				if !almostEqual(got[i], tt.want[i]) {
					t.Errorf("Expected %v, got %v", tt.want, got)
					break
				}
			}
		})
	}
}

func TestTraceStrideAndLimit(t *testing.T) {
	tests := []struct {
		name    string
		options []TraceBuilderOption
		want    []uint64
	}{
		{"every frame", nil, []uint64{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}},
		{"stride 3", []TraceBuilderOption{WithStride(3)}, []uint64{0, 3, 6, 9}},
		{"limit keeps newest", []TraceBuilderOption{WithLimit(3)}, []uint64{7, 8, 9}},
		{"stride and limit", []TraceBuilderOption{WithStride(2), WithLimit(2)}, []uint64{6, 8}},
		{"invalid stride", []TraceBuilderOption{WithStride(0), WithLimit(-1)}, []uint64{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := NewTraceRecorder(tt.options...)
			for i := range 10 {
				rec.Present(orchestrator.Frame{Index: uint64(i)})
			}
			tr := rec.Trace()
			if tr.Presented != 10 {
				t.Errorf("Expected 10 presented frames, got %d", tr.Presented)
			}
			if len(tr.Frames) != len(tt.want) {
				t.Fatalf("Expected %d kept frames, got %d", len(tt.want), len(tr.Frames))
			}
			for i, idx := range tt.want {
				if tr.Frames[i].Index != idx {
					t.Errorf("Expected frame %d at %d, got %d", idx, i, tr.Frames[i].Index)
				}
			}
		})
	}
}

func TestTraceFileRoundTrip(t *testing.T) {
	rec := NewTraceRecorder()
	rec.Present(orchestrator.Frame{
		Index:      1,
		Progress:   0.25,
		State:      1,
		Phase:      "dissolve",
		Atmosphere: atmosphere.Snapshot{FogColor: common.ColorFromHex(0x0a0a0f), FogFar: 18},
		Failed:     []string{"render"},
	})
	rec.Present(orchestrator.Frame{Index: 2, Progress: 0.3})

	path := filepath.Join(t.TempDir(), "trace.yaml")
	if err := rec.WriteTrace(path); err != nil {
		t.Fatalf("Failed to write trace: %v", err)
	}
	tr, err := ReadTrace(path)
	if err != nil {
		t.Fatalf("Failed to read trace: %v", err)
	}
	if tr.Presented != 2 || len(tr.Frames) != 2 {
		t.Fatalf("Expected 2 frames, got %d of %d", len(tr.Frames), tr.Presented)
	}
	f := tr.Frames[0]
	if f.Phase != "dissolve" || f.State != 1 || f.Atmosphere.FogColor.Hex() != 0x0a0a0f || len(f.Failed) != 1 {
		t.Errorf("Expected the first frame to survive the file, got %+v", f)
	}
	if _, err := ReadTrace(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Errorf("Expected an error for a missing trace")
	}
}
