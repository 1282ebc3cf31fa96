package implementations

import "github.com/annel0/voxel-engine/internal/world/block"

// Wood доски
var Wood = &block.Type{
	ID:          block.WoodBlockID,
	Name:        "Wood",
	Solid:       true,
	BlocksLight: true,
	Shape:       block.ShapeCube,
	TextureID:   4,
}
