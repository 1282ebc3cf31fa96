package implementations

import (
	"math/rand"

	"github.com/annel0/voxel-engine/internal/world/block"
)

// grassSpreadAttempts число попыток распространения за один тик
const grassSpreadAttempts = 4

// Grass трава: верх - слот 0, низ - земля (2), бока - слот 3
var Grass = &block.Type{
	ID:          block.GrassBlockID,
	Name:        "Grass",
	Solid:       true,
	BlocksLight: true,
	Shape:       block.ShapeCube,
	TextureID:   3,
	FaceTexture: grassTexture,
	OnTick:      grassTick,
}

func grassTexture(face int) int {
	switch face {
	case 1:
		return 0
	case 0:
		return 2
	default:
		return 3
	}
}

// grassTick распространяет траву на освещённую землю рядом
// и превращает саму траву в землю, если она оказалась в тени.
func grassTick(api block.TickAPI, x, y, z int, rng *rand.Rand) {
	if !api.IsLit(x, y, z) {
		api.SetBlock(x, y, z, block.DirtBlockID)
		return
	}

	for i := 0; i < grassSpreadAttempts; i++ {
		targetX := x + rng.Intn(3) - 1
		targetY := y + rng.Intn(5) - 3
		targetZ := z + rng.Intn(3) - 1

		if api.GetBlock(targetX, targetY, targetZ) == block.DirtBlockID && api.IsLit(targetX, targetY, targetZ) {
			api.SetBlock(targetX, targetY, targetZ, block.GrassBlockID)
		}
	}
}
