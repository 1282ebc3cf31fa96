package implementations

import "github.com/annel0/voxel-engine/internal/world/block"

// Регистрируем все типы блоков при импорте пакета
func init() {
	block.Register(Air)
	block.Register(Rock)
	block.Register(Grass)
	block.Register(Dirt)
	block.Register(StoneBrick)
	block.Register(Wood)
	block.Register(Bush)
}
