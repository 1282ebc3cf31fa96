package implementations

import (
	"math/rand"

	"github.com/annel0/voxel-engine/internal/world/block"
)

// Bush куст: проходимый, не перекрывает свет, рисуется крестом
var Bush = &block.Type{
	ID:        block.BushBlockID,
	Name:      "Bush",
	Shape:     block.ShapeCross,
	TextureID: 15,
	OnTick:    bushTick,
}

// bushTick убирает куст без солнца или без земли/травы под ним
func bushTick(api block.TickAPI, x, y, z int, _ *rand.Rand) {
	below := api.GetBlock(x, y-1, z)
	if !api.IsLit(x, y, z) || (below != block.DirtBlockID && below != block.GrassBlockID) {
		api.SetBlock(x, y, z, block.AirBlockID)
	}
}
