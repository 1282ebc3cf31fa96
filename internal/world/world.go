package world

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/annel0/voxel-engine/internal/phys"
	"github.com/annel0/voxel-engine/internal/world/block"
)

// DefaultRandomTickDivisor доля объёма мира, обрабатываемая за тик (объём / 400)
const DefaultRandomTickDivisor = 400

// Level хранит плотную сетку блоков конечного размера и глубину освещения
// для каждой колонки. Изменяется только через SetBlock.
//
// Width - ось X, Height - горизонтальная ось Z, Depth - вертикальная ось Y.
type Level struct {
	Width  int
	Height int
	Depth  int

	// RandomTickDivisor задаёт число случайных тиков: объём / RandomTickDivisor
	RandomTickDivisor int

	blocks      []byte
	lightDepths []int
	listeners   []Listener
	rng         *rand.Rand
}

// NewLevel создаёт пустой мир указанного размера.
// Неположительные размеры являются ошибкой конфигурации.
func NewLevel(width, height, depth int, seed int64) *Level {
	if width <= 0 || height <= 0 || depth <= 0 {
		panic(fmt.Sprintf("world: invalid level size %dx%dx%d", width, height, depth))
	}

	l := &Level{
		Width:             width,
		Height:            height,
		Depth:             depth,
		RandomTickDivisor: DefaultRandomTickDivisor,
		blocks:            make([]byte, width*height*depth),
		lightDepths:       make([]int, width*height),
		rng:               rand.New(rand.NewSource(seed)),
	}

	l.RecomputeLightColumns(0, 0, width, height)
	return l
}

// SetRand заменяет источник случайности для случайных тиков
func (l *Level) SetRand(rng *rand.Rand) {
	l.rng = rng
}

// Dimensions возвращает размеры мира по X, Z и Y
func (l *Level) Dimensions() (width, height, depth int) {
	return l.Width, l.Height, l.Depth
}

// Volume возвращает общее число вокселей
func (l *Level) Volume() int {
	return len(l.blocks)
}

// InBounds проверяет, лежит ли координата внутри мира
func (l *Level) InBounds(x, y, z int) bool {
	return x >= 0 && y >= 0 && z >= 0 && x < l.Width && y < l.Depth && z < l.Height
}

// index переводит координаты в индекс плоского массива
func (l *Level) index(x, y, z int) int {
	return (y*l.Height+z)*l.Width + x
}

// GetBlock возвращает ID блока или воздух вне мира
func (l *Level) GetBlock(x, y, z int) block.BlockID {
	if !l.InBounds(x, y, z) {
		return block.AirBlockID
	}
	return block.BlockID(l.blocks[l.index(x, y, z)])
}

// IsSolid возвращает true для твёрдого блока; вне мира всегда false
func (l *Level) IsSolid(x, y, z int) bool {
	if !l.InBounds(x, y, z) {
		return false
	}
	return block.IsSolid(block.BlockID(l.blocks[l.index(x, y, z)]))
}

// IsLightBlocker возвращает true, если блок перекрывает солнечный свет
func (l *Level) IsLightBlocker(x, y, z int) bool {
	if !l.InBounds(x, y, z) {
		return false
	}
	return block.BlocksLight(block.BlockID(l.blocks[l.index(x, y, z)]))
}

// SetBlock устанавливает блок, пересчитывает колонку света и уведомляет
// слушателей. Возвращает false вне мира или если блок не изменился.
func (l *Level) SetBlock(x, y, z int, id block.BlockID) bool {
	if !l.InBounds(x, y, z) {
		return false
	}

	i := l.index(x, y, z)
	if l.blocks[i] == byte(id) {
		return false
	}
	l.blocks[i] = byte(id)

	l.RecomputeLightColumns(x, z, 1, 1)
	l.notifyBlockChanged(x, y, z)
	return true
}

// GetCubes возвращает единичные боксы всех твёрдых вокселей в области,
// расширенной на один блок во все стороны и обрезанной по границам мира.
func (l *Level) GetCubes(region phys.AABB) []phys.AABB {
	minX := int(math.Floor(region.MinX)) - 1
	maxX := int(math.Ceil(region.MaxX)) + 1
	minY := int(math.Floor(region.MinY)) - 1
	maxY := int(math.Ceil(region.MaxY)) + 1
	minZ := int(math.Floor(region.MinZ)) - 1
	maxZ := int(math.Ceil(region.MaxZ)) + 1

	minX = max(0, minX)
	minY = max(0, minY)
	minZ = max(0, minZ)
	maxX = min(l.Width, maxX)
	maxY = min(l.Depth, maxY)
	maxZ = min(l.Height, maxZ)

	var cubes []phys.AABB
	for x := minX; x < maxX; x++ {
		for y := minY; y < maxY; y++ {
			for z := minZ; z < maxZ; z++ {
				if l.IsSolid(x, y, z) {
					cubes = append(cubes, phys.UnitCube(x, y, z))
				}
			}
		}
	}
	return cubes
}

// Blocks возвращает копию плоского массива блоков
func (l *Level) Blocks() []byte {
	out := make([]byte, len(l.blocks))
	copy(out, l.blocks)
	return out
}
