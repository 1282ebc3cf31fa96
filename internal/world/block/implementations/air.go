package implementations

import "github.com/annel0/voxel-engine/internal/world/block"

// Air пустой воксель: не твёрдый, не перекрывает свет, не рисуется
var Air = &block.Type{
	ID:    block.AirBlockID,
	Name:  "Air",
	Shape: block.ShapeNone,
}
