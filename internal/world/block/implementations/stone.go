package implementations

import "github.com/annel0/voxel-engine/internal/world/block"

// Rock основной камень ландшафта
var Rock = &block.Type{
	ID:          block.RockBlockID,
	Name:        "Rock",
	Solid:       true,
	BlocksLight: true,
	Shape:       block.ShapeCube,
	TextureID:   1,
}

// StoneBrick строительный блок, не встречается в генерации
var StoneBrick = &block.Type{
	ID:          block.StoneBrickBlockID,
	Name:        "Stone Brick",
	Solid:       true,
	BlocksLight: true,
	Shape:       block.ShapeCube,
	TextureID:   16,
}
