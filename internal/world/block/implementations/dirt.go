package implementations

import "github.com/annel0/voxel-engine/internal/world/block"

// Dirt земля; зарастает травой через правило тика травы
var Dirt = &block.Type{
	ID:          block.DirtBlockID,
	Name:        "Dirt",
	Solid:       true,
	BlocksLight: true,
	Shape:       block.ShapeCube,
	TextureID:   2,
}
