package narrative

import (
	"math/rand/v2"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	// spawnSpread is the cube half-width around the source a particle may start in.
	spawnSpread float32 = 1
	// aimGain turns the source-to-target offset into an initial per-tick velocity.
	aimGain float32 = 0.05
	// velocityDamping and alphaDamping are applied once per tick while the flow runs.
	velocityDamping float32 = 0.98
	alphaDamping    float32 = 0.95
	// flowSeconds is how long the particles keep integrating after a spawn.
	flowSeconds float32 = 0.8
)

// Particle is one point of the reflow batch.
type Particle struct {
	Position mgl32.Vec3
	Velocity mgl32.Vec3
	Size     float32
	Alpha    float32
}

// particlePool is the fixed batch reused by every transition.
type particlePool struct {
	particles []Particle
	visible   bool
	flowLeft  float32
}

func newParticlePool(count int, rng *rand.Rand) particlePool {
	p := particlePool{particles: make([]Particle, count)}
	for i := range p.particles {
		p.particles[i] = Particle{
			Position: mgl32.Vec3{jitter(rng, 10), jitter(rng, 10), jitter(rng, 10)},
			Velocity: mgl32.Vec3{jitter(rng, 0.02), jitter(rng, 0.02), jitter(rng, 0.02)},
			Size:     rng.Float32()*0.1 + 0.05,
		}
	}
	return p
}

// spawn places every particle near from and aims it at to.
func (p *particlePool) spawn(from, to mgl32.Vec3, rng *rand.Rand) {
	if len(p.particles) == 0 {
		return
	}
	for i := range p.particles {
		pos := mgl32.Vec3{
			from[0] + jitter(rng, 2*spawnSpread),
			from[1] + jitter(rng, 2*spawnSpread),
			from[2] + jitter(rng, 2*spawnSpread),
		}
		p.particles[i].Position = pos
		p.particles[i].Velocity = to.Sub(pos).Mul(aimGain)
		p.particles[i].Alpha = 1
	}
	p.visible = true
	p.flowLeft = flowSeconds
}

// step integrates one tick of flow.
func (p *particlePool) step(dt float32) {
	if !p.visible || p.flowLeft <= 0 {
		return
	}
	for i := range p.particles {
		pt := &p.particles[i]
		pt.Position = pt.Position.Add(pt.Velocity)
		pt.Velocity = pt.Velocity.Mul(velocityDamping)
		pt.Alpha *= alphaDamping
	}
	p.flowLeft -= dt
}

func (p *particlePool) hide() {
	p.visible = false
	p.flowLeft = 0
	for i := range p.particles {
		p.particles[i].Alpha = 0
	}
}

func (p *particlePool) snapshot() []Particle {
	out := make([]Particle, len(p.particles))
	copy(out, p.particles)
	return out
}

// jitter returns a uniform value in [-span/2, span/2).
func jitter(rng *rand.Rand, span float32) float32 {
	return (rng.Float32() - 0.5) * span
}
