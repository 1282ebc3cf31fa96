package entity

import (
	"math/rand"
)

// Константы движения игрока
const (
	playerHeightOffset = 1.62
	playerJumpImpulse  = 0.5
	playerGroundSpeed  = 0.1
	playerAirSpeed     = 0.02
	playerGravity      = 0.08
	playerFriction     = 0.91
	playerFallFriction = 0.98
	playerGroundDrag   = 0.7
)

// Input состояние управления игроком на текущий тик
type Input struct {
	Forward bool
	Back    bool
	Left    bool
	Right   bool
	Jump    bool
	Reset   bool // вернуться в случайную точку над миром
}

// Player представляет игрока, управляемого вводом
type Player struct {
	*Entity
	Input Input
}

// NewPlayer создаёт игрока в случайной точке над миром
func NewPlayer(w WorldAPI, rng *rand.Rand) *Player {
	e := NewEntity(EntityTypePlayer, w, rng)
	e.HeightOffset = playerHeightOffset
	return &Player{Entity: e}
}

// Tick применяет ввод, гравитацию и трение
func (p *Player) Tick() {
	p.Entity.Tick()

	if p.Input.Reset {
		p.ResetPosition()
	}

	var strafe, forward float64
	if p.Input.Forward {
		forward--
	}
	if p.Input.Back {
		forward++
	}
	if p.Input.Left {
		strafe--
	}
	if p.Input.Right {
		strafe++
	}
	if p.Input.Jump && p.OnGround {
		p.Motion.Y = playerJumpImpulse
	}

	speed := playerAirSpeed
	if p.OnGround {
		speed = playerGroundSpeed
	}
	p.MoveRelative(strafe, forward, speed)

	p.Motion.Y -= playerGravity
	p.Move(p.Motion.X, p.Motion.Y, p.Motion.Z)
	p.applyFriction(playerFriction, playerFallFriction, playerGroundDrag)
}
