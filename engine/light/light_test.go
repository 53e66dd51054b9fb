package light

import (
	"math"
	"testing"

	"github.com/Carmen-Shannon/cinescroll/common"
)

func TestIntensityNeverNegative(t *testing.T) {
	l := NewLight(LightTypeDirectional, WithIntensity(-2))
	if l.Intensity() != 0 {
		t.Errorf("Expected intensity 0, got %v", l.Intensity())
	}
	l.SetIntensity(-0.1)
	if l.Intensity() != 0 {
		t.Errorf("Expected intensity 0, got %v", l.Intensity())
	}
	l.SetIntensity(1.85)
	if l.Intensity() != 1.85 {
		t.Errorf("Expected intensity 1.85, got %v", l.Intensity())
	}
}

func TestDirectionalLightAimsAtOrigin(t *testing.T) {
	l := NewLight(LightTypeDirectional, WithPosition(0, 3, -4))
	d := l.Direction()
	if math.Abs(float64(d[1]+0.6)) > 1e-6 || math.Abs(float64(d[2]-0.8)) > 1e-6 {
		t.Errorf("Expected direction (0, -0.6, 0.8), got %v", d)
	}

	p := NewLight(LightTypePoint, WithPosition(0, 3, -4))
	if p.Direction() != [3]float32{0, -1, 0} {
		t.Errorf("Expected point lights to keep the default direction, got %v", p.Direction())
	}
}

func TestColorFromHex(t *testing.T) {
	l := NewLight(LightTypeHemisphere, WithColor(0x8fa3ff), WithGroundColor(0x0b0c12), WithName("ambient"))
	if l.Color().Hex() != 0x8fa3ff || l.GroundColor().Hex() != 0x0b0c12 {
		t.Errorf("Expected hemisphere colors, got %v / %v", l.Color(), l.GroundColor())
	}
	l.SetColor(common.ColorFromHex(0x123456))
	if l.Color().Hex() != 0x123456 {
		t.Errorf("Expected 0x123456, got %v", l.Color())
	}
	if l.Name() != "ambient" || l.Type().String() != "hemisphere" {
		t.Errorf("Expected named hemisphere light, got %q %v", l.Name(), l.Type())
	}
}
