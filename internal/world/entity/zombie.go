package entity

import (
	"math"
	"math/rand"
)

// Параметры блуждания зомби
const (
	zombieJumpChance   = 0.08
	zombieRemoveBelowY = -100
	zombieTurnDecay    = 0.99
	zombieTurnJitter   = 0.01
)

// Zombie блуждает по миру, плавно меняя направление и иногда подпрыгивая
type Zombie struct {
	*Entity

	Heading    float64 // Направление движения в радианах
	TurnFactor float64 // Скорость изменения направления за тик
}

// NewZombie создаёт зомби в указанной точке
func NewZombie(w WorldAPI, rng *rand.Rand, x, y, z float64) *Zombie {
	e := NewEntity(EntityTypeZombie, w, rng)
	e.SetPosition(x, y, z)
	e.Prev = e.Pos

	return &Zombie{
		Entity:     e,
		Heading:    rng.Float64() * math.Pi * 2,
		TurnFactor: (rng.Float64() + 1) * 0.01,
	}
}

// Tick поворачивает, прыгает и двигает зомби; упавший в пустоту удаляется
func (z *Zombie) Tick() {
	z.Entity.Tick()

	if z.Pos.Y < zombieRemoveBelowY {
		z.Remove()
	}

	rng := z.rng
	z.Heading += z.TurnFactor
	z.TurnFactor *= zombieTurnDecay
	z.TurnFactor += (rng.Float64() - rng.Float64()) * rng.Float64() * rng.Float64() * zombieTurnJitter

	strafe := math.Sin(z.Heading)
	forward := math.Cos(z.Heading)

	if z.OnGround && rng.Float64() < zombieJumpChance {
		z.Motion.Y = playerJumpImpulse
	}

	speed := playerAirSpeed
	if z.OnGround {
		speed = playerGroundSpeed
	}
	z.MoveRelative(strafe, forward, speed)

	z.Motion.Y -= playerGravity
	z.Move(z.Motion.X, z.Motion.Y, z.Motion.Z)
	z.applyFriction(playerFriction, playerFallFriction, playerGroundDrag)
}
