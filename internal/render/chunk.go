package render

import (
	"time"

	"github.com/annel0/voxel-engine/internal/phys"
	"github.com/annel0/voxel-engine/internal/vec"
	"github.com/annel0/voxel-engine/internal/world/block"
)

// FrameBudget ограничивает число перестроек чанков за кадр.
// Перестройка обоих слоёв одного чанка расходует одну единицу.
type FrameBudget struct {
	Limit int
	used  int
}

// NewFrameBudget создаёт бюджет на limit перестроек
func NewFrameBudget(limit int) *FrameBudget {
	return &FrameBudget{Limit: limit}
}

// Take расходует единицу бюджета; false, если бюджет исчерпан.
// Перестройка без бюджета запрещена.
func (b *FrameBudget) Take() bool {
	if b == nil {
		panic("render: chunk rebuild without frame budget")
	}
	if b.used >= b.Limit {
		return false
	}
	b.used++
	return true
}

// Used возвращает число израсходованных единиц
func (b *FrameBudget) Used() int {
	return b.used
}

// Remaining возвращает остаток бюджета
func (b *FrameBudget) Remaining() int {
	return b.Limit - b.used
}

// Chunk кэширует меши прямоугольной части мира.
// Меш согласован с содержимым мира тогда и только тогда, когда чанк не грязный.
type Chunk struct {
	MinX, MinY, MinZ int
	MaxX, MaxY, MaxZ int // не включая
	Box              phys.AABB

	src    BlockSource
	center vec.Vec3Float
	meshes [2]*Mesh
	tess   *Tessellator
	clock  func() time.Time

	dirty     bool
	dirtiedAt time.Time
	tiles     int
}

// NewChunk создаёт грязный чанк для области [min, max)
func NewChunk(src BlockSource, minX, minY, minZ, maxX, maxY, maxZ int, clock func() time.Time) *Chunk {
	if clock == nil {
		clock = time.Now
	}
	return &Chunk{
		MinX: minX, MinY: minY, MinZ: minZ,
		MaxX: maxX, MaxY: maxY, MaxZ: maxZ,
		Box: phys.NewAABB(
			float64(minX), float64(minY), float64(minZ),
			float64(maxX), float64(maxY), float64(maxZ),
		),
		src: src,
		center: vec.Vec3Float{
			X: float64(minX+maxX) / 2,
			Y: float64(minY+maxY) / 2,
			Z: float64(minZ+maxZ) / 2,
		},
		tess:      NewTessellator(),
		clock:     clock,
		dirty:     true,
		dirtiedAt: clock(),
	}
}

// MarkDirty помечает чанк грязным; время фиксируется только при переходе
// из чистого состояния.
func (c *Chunk) MarkDirty() {
	if !c.dirty {
		c.dirtiedAt = c.clock()
	}
	c.dirty = true
}

// IsDirty сообщает, устарел ли меш
func (c *Chunk) IsDirty() bool {
	return c.dirty
}

// DirtiedAt возвращает момент, когда чанк стал грязным
func (c *Chunk) DirtiedAt() time.Time {
	return c.dirtiedAt
}

// Tiles возвращает число непустых блоков при последней перестройке
func (c *Chunk) Tiles() int {
	return c.tiles
}

// Center возвращает центр чанка
func (c *Chunk) Center() vec.Vec3Float {
	return c.center
}

// DistanceSq возвращает квадрат расстояния от центра чанка до точки
func (c *Chunk) DistanceSq(p vec.Vec3Float) float64 {
	return c.center.DistanceSq(p)
}

// Rebuild перестраивает меши обоих слоёв, если бюджет кадра позволяет.
// Возвращает false, если бюджет исчерпан и чанк остался грязным.
func (c *Chunk) Rebuild(budget *FrameBudget) bool {
	if !budget.Take() {
		return false
	}

	c.dirty = false
	for layer := LayerLit; layer <= LayerShadow; layer++ {
		c.meshes[layer] = c.tessellate(layer)
	}
	return true
}

func (c *Chunk) tessellate(layer int) *Mesh {
	tiles := 0
	for x := c.MinX; x < c.MaxX; x++ {
		for y := c.MinY; y < c.MaxY; y++ {
			for z := c.MinZ; z < c.MaxZ; z++ {
				id := c.src.GetBlock(x, y, z)
				if id == block.AirBlockID {
					continue
				}
				bt, ok := block.Get(id)
				if !ok {
					continue
				}
				tessellateBlock(c.tess, c.src, bt, layer, x, y, z)
				tiles++
			}
		}
	}
	c.tiles = tiles
	return c.tess.Flush()
}

// Mesh возвращает кэшированный меш слоя (nil до первой перестройки)
func (c *Chunk) Mesh(layer int) *Mesh {
	return c.meshes[layer]
}

// Render передаёт кэшированный меш слоя без построения геометрии
func (c *Chunk) Render(layer int, sink MeshSink) bool {
	m := c.meshes[layer]
	if m == nil || m.VertexCount() == 0 {
		return false
	}
	sink.Submit(layer, m)
	return true
}
