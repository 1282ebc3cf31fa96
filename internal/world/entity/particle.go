package entity

import (
	"math"
	"math/rand"

	"github.com/annel0/voxel-engine/internal/vec"
)

// Константы частиц
const (
	particleSize       = 0.2
	particleGravity    = 0.06
	particleFriction   = 0.98
	particleGroundDrag = 0.7
	particleSpread     = 0.4
)

// Particle осколок блока, летящий по баллистике и исчезающий по времени
type Particle struct {
	*Entity

	TextureID int     // Слот атласа исходного блока
	UOffset   float64 // Смещение внутри слота, [0, 3)
	VOffset   float64
	Scale     float64 // Размер спрайта, [0.5, 1)

	Age      int
	Lifetime int
}

// NewParticle создаёт частицу в точке со случайным разбросом скорости
func NewParticle(w WorldAPI, rng *rand.Rand, pos, motion vec.Vec3Float, textureID int) *Particle {
	e := NewEntity(EntityTypeParticle, w, rng)
	e.SetPosition(pos.X, pos.Y, pos.Z)
	e.SetSize(particleSize, particleSize)
	e.HeightOffset = particleSize / 2
	e.Prev = e.Pos

	m := vec.Vec3Float{
		X: motion.X + (rng.Float64()*2-1)*particleSpread,
		Y: motion.Y + (rng.Float64()*2-1)*particleSpread,
		Z: motion.Z + (rng.Float64()*2-1)*particleSpread,
	}
	speed := (rng.Float64() + rng.Float64() + 1) * 0.15
	dist := math.Sqrt(m.X*m.X + m.Y*m.Y + m.Z*m.Z)
	if dist > 0 {
		e.Motion = vec.Vec3Float{
			X: m.X / dist * speed * 0.7,
			Y: m.Y / dist * speed,
			Z: m.Z / dist * speed * 0.7,
		}
	}

	return &Particle{
		Entity:    e,
		TextureID: textureID,
		UOffset:   rng.Float64() * 3,
		VOffset:   rng.Float64() * 3,
		Scale:     rng.Float64()*0.5 + 0.5,
		Lifetime:  int(4 / (rng.Float64()*0.9 + 0.1)),
	}
}

// Tick двигает частицу и удаляет её по истечении времени жизни
func (p *Particle) Tick() {
	p.Entity.Tick()

	if p.Age >= p.Lifetime {
		p.Remove()
	}
	p.Age++

	p.Motion.Y -= particleGravity
	p.Move(p.Motion.X, p.Motion.Y, p.Motion.Z)
	p.applyFriction(particleFriction, particleFriction, particleGroundDrag)
}

// SpawnBreakParticles создаёт облако частиц на месте разрушенного блока:
// по четыре на каждую ось внутри вокселя.
func SpawnBreakParticles(w WorldAPI, rng *rand.Rand, x, y, z, textureID int) []*Particle {
	const n = 4
	out := make([]*Particle, 0, n*n*n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			for k := 0; k < n; k++ {
				px := float64(x) + (float64(i)+0.5)/n
				py := float64(y) + (float64(j)+0.5)/n
				pz := float64(z) + (float64(k)+0.5)/n
				pos := vec.Vec3Float{X: px, Y: py, Z: pz}
				motion := vec.Vec3Float{
					X: px - float64(x) - 0.5,
					Y: py - float64(y) - 0.5,
					Z: pz - float64(z) - 0.5,
				}
				out = append(out, NewParticle(w, rng, pos, motion, textureID))
			}
		}
	}
	return out
}
