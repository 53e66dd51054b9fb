package postprocess

import "testing"

func TestEmptyComposerIsNeutral(t *testing.T) {
	c := NewComposer()
	if c.Pass(PassBloom) != nil {
		t.Errorf("Expected no bloom pass")
	}
	if got := c.Params(); got != NeutralParams {
		t.Errorf("Expected neutral params, got %+v", got)
	}
}

func TestPassOrderAndParams(t *testing.T) {
	c := NewComposer(WithChromatic(), WithBloom(0.5), WithToneMapping())

	var kinds []PassKind
	for _, p := range c.Passes() {
		kinds = append(kinds, p.Kind())
	}
	want := []PassKind{PassChromatic, PassBloom, PassToneMapping}
	if len(kinds) != len(want) {
		t.Fatalf("Expected %v, got %v", want, kinds)
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Errorf("Expected %v at %d, got %v", want[i], i, kinds[i])
		}
	}

	c.Pass(PassChromatic).SetValue(0.004)
	c.Pass(PassToneMapping).SetValue(0.8)
	got := c.Params()
	if got.Bloom != 0.5 || got.Chromatic != 0.004 || got.Exposure != 0.8 || got.MotionBlur != 0 {
		t.Errorf("Expected bloom 0.5 chromatic 0.004 exposure 0.8, got %+v", got)
	}
}

func TestDisabledPassReportsNeutral(t *testing.T) {
	c := NewComposer(WithAllPasses(0.5))
	bloom := c.Pass(PassBloom)
	bloom.SetEnabled(false)
	if got := c.Params().Bloom; got != 0 {
		t.Errorf("Expected disabled bloom to report 0, got %v", got)
	}
	if bloom.Value() != 0.5 {
		t.Errorf("Expected the value to be kept while disabled, got %v", bloom.Value())
	}
}

func TestPassValueClamp(t *testing.T) {
	tests := []struct {
		in, want float32
	}{
		{-1, 0},
		{0, 0},
		{1.25, 1.25},
	}
	c := NewComposer(WithMotionBlur())
	p := c.Pass(PassMotionBlur)
	for _, tt := range tests {
		p.SetValue(tt.in)
		if p.Value() != tt.want {
			t.Errorf("SetValue(%v): expected %v, got %v", tt.in, tt.want, p.Value())
		}
	}
}

func TestDuplicatePassReplaces(t *testing.T) {
	c := NewComposer(WithBloom(0.2), WithBloom(0.9))
	if n := len(c.Passes()); n != 1 {
		t.Fatalf("Expected one pass, got %d", n)
	}
	if v := c.Pass(PassBloom).Value(); v != 0.9 {
		t.Errorf("Expected 0.9, got %v", v)
	}
}
