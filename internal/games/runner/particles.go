package runner

import "github.com/go-gl/mathgl/mgl64"

// EmitCoinBurst spawns a short-lived burst of particles at pos.
func (w *World) EmitCoinBurst(pos mgl64.Vec3) {
	for i := 0; i < w.cfg.BurstParticles; i++ {
		v := mgl64.Vec3{
			(w.rng.Float64() - 0.5) * 4,
			w.rng.Float64()*2 + 1,
			(w.rng.Float64() - 0.5) * 4,
		}
		w.particles.add(Entity{
			ID:       w.newID(),
			Kind:     KindParticle,
			Pos:      pos,
			Size:     sizeParticle,
			Velocity: v,
			Life:     w.cfg.ParticleLife,
			MaxLife:  w.cfg.ParticleLife,
		})
	}
}

// advanceParticles drifts every particle along its velocity, fades it and
// drops the ones whose life has run out.
func (w *World) advanceParticles(dt float64) {
	w.particles.each(func(e *Entity) {
		e.Life -= dt
		e.Pos = e.Pos.Add(e.Velocity.Mul(dt))
		e.Spin += dt * itemSpinRate
	})
	w.particles.retain(func(e *Entity) bool { return e.Life > 0 })
}
