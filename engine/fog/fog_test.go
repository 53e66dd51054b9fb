package fog

import (
	"testing"

	"github.com/Carmen-Shannon/cinescroll/common"
)

func TestRangeIsOrdered(t *testing.T) {
	tests := []struct {
		name              string
		near, far         float32
		wantNear, wantFar float32
	}{
		{"ordered", 8, 20, 8, 20},
		{"negative near", -2, 5, 0, 5},
		{"inverted", 10, 4, 10, 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewFog(tt.near, tt.far, common.ColorFromHex(0x0a0a0f))
			if f.Near() != tt.wantNear || f.Far() != tt.wantFar {
				t.Errorf("Expected [%v, %v], got [%v, %v]", tt.wantNear, tt.wantFar, f.Near(), f.Far())
			}
		})
	}
}

func TestFactor(t *testing.T) {
	f := NewFog(8, 20, common.Color{})
	if f.Factor(4) != 0 || f.Factor(14) != 0.5 || f.Factor(30) != 1 {
		t.Errorf("Expected 0, 0.5, 1, got %v, %v, %v", f.Factor(4), f.Factor(14), f.Factor(30))
	}
	f.SetRange(5, 5)
	if f.Factor(4.9) != 0 || f.Factor(5) != 1 {
		t.Errorf("Expected a hard edge at 5, got %v and %v", f.Factor(4.9), f.Factor(5))
	}
}
