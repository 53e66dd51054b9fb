package camera

import (
	"math"

	"github.com/Carmen-Shannon/cinescroll/common"
)

// Noise2D is a deterministic lattice noise in [-1, 1].
// It is not gradient (Perlin) noise: each integer lattice corner gets a hashed byte and the four corners
// are blended bilinearly with smoothstep weights, so the result is continuous but only value noise.
// The lattice wraps every 256 units.
//
// Parameters:
//   - x, y: sample coordinates
//
// Returns:
//   - float32: the noise value in [-1, 1]
func Noise2D(x, y float32) float32 {
	fx := math.Floor(float64(x))
	fy := math.Floor(float64(y))
	xi := int64(fx) & 255
	yi := int64(fy) & 255

	u := common.Smoothstep(float32(float64(x) - fx))
	v := common.Smoothstep(float32(float64(y) - fy))

	xj := (xi + 1) & 255
	yj := (yi + 1) & 255

	k0 := latticeByte(xi, yi)
	k1 := latticeByte(xj, yi)
	k2 := latticeByte(xi, yj)
	k3 := latticeByte(xj, yj)

	x1 := k0 + u*(k1-k0)
	x2 := k2 + u*(k3-k2)
	return (x1+v*(x2-x1))/255*2 - 1
}

// latticeByte hashes a lattice corner to a value in [0, 255].
// The final multiply runs in float64 and is reduced modulo 2^32, which keeps the low byte identical
// to a double-precision implementation of the same hash.
func latticeByte(i, j int64) float32 {
	n := int32(uint32(i*374761393 + j*668265263))
	h := n ^ (n >> 13)
	m := math.Mod(float64(h)*1274126177, 1<<32)
	if m < 0 {
		m += 1 << 32
	}
	return float32(uint32(m) & 0xff)
}
