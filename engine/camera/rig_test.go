package camera

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func almostEqual(a, b, eps float32) bool {
	return float32(math.Abs(float64(a-b))) <= eps
}

func TestNoise2DLatticeValues(t *testing.T) {
	tests := []struct {
		x, y float32
		want float32
	}{
		{0, 0, -1},
		{1, 0, 0.5058824},
		{200, 100, 0.7568627},
		{-1, -1, 0.0039216},
	}
	for _, tt := range tests {
		if got := Noise2D(tt.x, tt.y); !almostEqual(got, tt.want, 1e-5) {
			t.Errorf("Noise2D(%v, %v): expected %v, got %v", tt.x, tt.y, tt.want, got)
		}
	}
}

func TestNoise2DRangeAndContinuity(t *testing.T) {
	prev := Noise2D(0, 0)
	for i := 1; i <= 20000; i++ {
		x := float32(i) * 0.001
		y := x*1.3 + 5
		v := Noise2D(x, y)
		if v < -1 || v > 1 {
			t.Fatalf("Noise2D(%v, %v) = %v outside [-1, 1]", x, y, v)
		}
		if Noise2D(x, y) != v {
			t.Fatalf("Noise2D(%v, %v) is not deterministic", x, y)
		}
		// Two full-range corner swings per unit bound the slope.
		if math.Abs(float64(v-prev)) > 0.02 {
			t.Fatalf("Expected a continuous walk, jumped from %v to %v at x=%v", prev, v, x)
		}
		prev = v
	}
}

func TestNoise2DContinuousAcrossLatticeWrap(t *testing.T) {
	tests := []struct {
		name   string
		x0, y0 float32
		dx, dy float32
	}{
		{"x crosses 256", 255.99, 10.37, 1, 0},
		{"x crosses 512", 511.99, 3.5, 1, 0},
		{"y crosses 256", 7.25, 255.99, 0, 1},
		{"diagonal crosses 256", 255.99, 255.99, 1, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			const step = 1e-3
			prev := Noise2D(tt.x0, tt.y0)
			for i := 1; i <= 20; i++ {
				x := tt.x0 + tt.dx*float32(i)*step
				y := tt.y0 + tt.dy*float32(i)*step
				v := Noise2D(x, y)
				if math.Abs(float64(v-prev)) > 0.02 {
					t.Fatalf("Expected a continuous walk, jumped from %v to %v at (%v, %v)", prev, v, x, y)
				}
				prev = v
			}
		})
	}
	if Noise2D(256, 10) != Noise2D(0, 10) || Noise2D(3, 256) != Noise2D(3, 0) {
		t.Errorf("Expected the lattice to repeat every 256 units")
	}
}

func TestRigArcAtMidProgress(t *testing.T) {
	cam := NewCamera(WithPosition(0, 0, 8), WithFov(45))
	rig := NewRig(cam, WithShakeIntensity(0), WithFovBreathing(0), WithNoiseOffset(1, 2))
	rig.Update(0.5, 0, 1.0/60)

	p := cam.Position()
	if !almostEqual(p.X(), 0, 1e-5) {
		t.Errorf("Expected no lateral arc at 0.5, got %v", p.X())
	}
	if !almostEqual(p.Y(), float32(math.Sin(0.75*math.Pi))*0.4, 1e-5) {
		t.Errorf("Expected vertical drift, got %v", p.Y())
	}
	if !almostEqual(p.Z(), 8+2.5, 1e-5) {
		t.Errorf("Expected full depth push, got %v", p.Z())
	}
	if cam.Fov() != 45 {
		t.Errorf("Expected fov 45 with breathing disabled, got %v", cam.Fov())
	}
}

func TestRigZeroIntensityHoldsBase(t *testing.T) {
	cam := NewCamera(WithPosition(1, 2, 8))
	rig := NewRig(cam, WithIntensity(0), WithFovBreathing(0), WithNoiseOffset(3, 4))
	for range 30 {
		rig.Update(0, 25, 1.0/60)
	}
	if cam.Position() != (mgl32.Vec3{1, 2, 8}) {
		t.Errorf("Expected the base position, got %v", cam.Position())
	}
	if !cam.Orientation().ApproxEqualThreshold(mgl32.QuatIdent(), 1e-6) {
		t.Errorf("Expected no rotation drift, got %v", cam.Orientation())
	}
}

func TestRigRotationDriftFollowsVelocity(t *testing.T) {
	rig := NewRig(nil, WithNoiseOffset(0, 0))
	for range 600 {
		rig.Update(0, 10, 1.0/60)
	}
	want := mgl32.Vec3{0.75, 1.5, 0.45}
	got := rig.Rotation()
	for i := range 3 {
		if !almostEqual(got[i], want[i], 1e-3) {
			t.Errorf("axis %d: expected %v, got %v", i, want[i], got[i])
		}
	}
}

func TestRigIsDeterministic(t *testing.T) {
	a := NewRig(NewCamera(WithPosition(0, 0, 8)), WithSeed(7))
	b := NewRig(NewCamera(WithPosition(0, 0, 8)), WithSeed(7))
	for i := range 120 {
		p := float32(i) / 120
		a.Update(p, 3, 1.0/60)
		b.Update(p, 3, 1.0/60)
	}
	if a.Camera().Position() != b.Camera().Position() || a.Camera().Fov() != b.Camera().Fov() {
		t.Errorf("Expected identical output, got %v and %v", a.Camera().Position(), b.Camera().Position())
	}
}

func TestRigResetIsIdempotent(t *testing.T) {
	start := EulerXYZ(0.1, 0.2, 0)
	cam := NewCamera(WithPosition(0, 1, 8), WithOrientation(start), WithFov(50))
	rig := NewRig(cam, WithSeed(3))
	rig.SetPointer(1, -1)
	rig.SetFovOffset(2)
	for i := range 90 {
		rig.Update(float32(i)/90, 12, 1.0/60)
	}
	rig.SetBasePose(mgl32.Vec3{4, 4, 4}, mgl32.QuatIdent())

	for range 2 {
		rig.Reset()
		if cam.Position() != (mgl32.Vec3{0, 1, 8}) || cam.Fov() != 50 {
			t.Errorf("Expected the captured pose, got %v fov %v", cam.Position(), cam.Fov())
		}
		if !cam.Orientation().ApproxEqualThreshold(start, 1e-6) {
			t.Errorf("Expected the captured orientation, got %v", cam.Orientation())
		}
		if rig.Elapsed() != 0 || rig.Rotation() != (mgl32.Vec3{}) || rig.Pointer() != (mgl32.Vec2{}) {
			t.Errorf("Expected cleared motion state")
		}
	}
}

func TestRigComposesOntoBasePoseAndFovOffset(t *testing.T) {
	cam := NewCamera(WithFov(40))
	rig := NewRig(cam, WithIntensity(0), WithFovBreathing(0), WithDepthRange(0), WithNoiseOffset(0, 0))
	base := EulerXYZ(0, 0.6, 0)
	rig.SetBasePose(mgl32.Vec3{3, 1, 6}, base)
	rig.SetFovOffset(1.5)
	for range 300 {
		rig.Update(0, 0, 1.0/60)
	}

	if cam.Position() != (mgl32.Vec3{3, 1, 6}) {
		t.Errorf("Expected the base pose position, got %v", cam.Position())
	}
	if !cam.Orientation().ApproxEqualThreshold(base, 1e-6) {
		t.Errorf("Expected the base orientation, got %v", cam.Orientation())
	}
	if !almostEqual(cam.Fov(), 41.5, 1e-4) {
		t.Errorf("Expected fov 41.5, got %v", cam.Fov())
	}
}

func TestRigFovIsDamped(t *testing.T) {
	cam := NewCamera(WithFov(40))
	rig := NewRig(cam, WithFovBreathing(0), WithNoiseOffset(0, 0))
	rig.SetFovOffset(2)

	rig.Update(0, 0, 1.0/60)
	if !almostEqual(cam.Fov(), 40.2, 1e-5) {
		t.Fatalf("Expected the first update to move a tenth of the way, got %v", cam.Fov())
	}
	prev := cam.Fov()
	for range 60 {
		rig.Update(0, 0, 1.0/60)
		if cam.Fov() < prev || cam.Fov() > 42 {
			t.Fatalf("Expected a monotonic approach toward 42, got %v after %v", cam.Fov(), prev)
		}
		prev = cam.Fov()
	}
}

func TestCameraViewMatrixInvertsPose(t *testing.T) {
	cam := NewCamera(WithPosition(1, 2, 3), WithOrientation(EulerXYZ(0.3, -0.4, 0.1)))
	eye := cam.ViewMatrix().Mul4x1(mgl32.Vec4{1, 2, 3, 1})
	if !eye.ApproxEqualThreshold(mgl32.Vec4{0, 0, 0, 1}, 1e-5) {
		t.Errorf("Expected the camera position at the view-space origin, got %v", eye)
	}
	ahead := cam.Position().Add(cam.Forward())
	v := cam.ViewMatrix().Mul4x1(ahead.Vec4(1))
	if !v.ApproxEqualThreshold(mgl32.Vec4{0, 0, -1, 1}, 1e-5) {
		t.Errorf("Expected forward to map to -Z, got %v", v)
	}
}
