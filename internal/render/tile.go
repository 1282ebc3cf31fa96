package render

import (
	"math"

	"github.com/annel0/voxel-engine/internal/world/block"
)

// Слои меша чанка
const (
	LayerLit    = 0 // грани, соседи которых на солнце
	LayerShadow = 1 // грани, соседи которых в тени
)

// Оттенки граней по осям
const (
	shadeY float32 = 1.0
	shadeZ float32 = 0.8
	shadeX float32 = 0.6
)

// atlasSlots число слотов атласа по каждой стороне
const atlasSlots = 16

// BlockSource даёт доступ к блокам и свету для построения меша
type BlockSource interface {
	GetBlock(x, y, z int) block.BlockID
	IsSolid(x, y, z int) bool
	IsLit(x, y, z int) bool
}

// faceNeighbours смещения соседей по граням 0..5
var faceNeighbours = [6][3]int{
	{0, -1, 0}, {0, 1, 0},
	{0, 0, -1}, {0, 0, 1},
	{-1, 0, 0}, {1, 0, 0},
}

var faceShades = [6]float32{shadeY, shadeY, shadeZ, shadeZ, shadeX, shadeX}

// shouldRenderFace грань рисуется в слое, если сосед не твёрдый и его
// освещённость не совпадает с признаком теневого слоя.
func shouldRenderFace(src BlockSource, x, y, z, layer int) bool {
	return !src.IsSolid(x, y, z) && (src.IsLit(x, y, z) != (layer == LayerShadow))
}

// atlasUV возвращает углы слота атласа
func atlasUV(slot int) (minU, maxU, minV, maxV float32) {
	minU = float32(slot%atlasSlots) / atlasSlots
	maxU = minU + 1.0/atlasSlots
	minV = float32(slot/atlasSlots) / atlasSlots
	maxV = minV + 1.0/atlasSlots
	return
}

// tessellateBlock добавляет геометрию блока для слоя
func tessellateBlock(t *Tessellator, src BlockSource, bt *block.Type, layer, x, y, z int) {
	switch bt.Shape {
	case block.ShapeCube:
		for face, d := range faceNeighbours {
			if !shouldRenderFace(src, x+d[0], y+d[1], z+d[2], layer) {
				continue
			}
			s := faceShades[face]
			t.Color(s, s, s)
			tessellateFace(t, bt.Texture(face), x, y, z, face)
		}
	case block.ShapeCross:
		lit := src.IsLit(x, y, z)
		if lit != (layer == LayerLit) {
			return
		}
		t.Color(1, 1, 1)
		tessellateCross(t, bt.Texture(0), x, y, z)
	}
}

// tessellateFace добавляет квад грани куба
func tessellateFace(t *Tessellator, slot, x, y, z, face int) {
	u0, u1, v0, v1 := atlasUV(slot)

	x0, x1 := float32(x), float32(x+1)
	y0, y1 := float32(y), float32(y+1)
	z0, z1 := float32(z), float32(z+1)

	switch face {
	case 0:
		t.VertexUV(x0, y0, z1, u0, v1)
		t.VertexUV(x0, y0, z0, u0, v0)
		t.VertexUV(x1, y0, z0, u1, v0)
		t.VertexUV(x1, y0, z1, u1, v1)
	case 1:
		t.VertexUV(x1, y1, z1, u1, v1)
		t.VertexUV(x1, y1, z0, u1, v0)
		t.VertexUV(x0, y1, z0, u0, v0)
		t.VertexUV(x0, y1, z1, u0, v1)
	case 2:
		t.VertexUV(x0, y1, z0, u1, v0)
		t.VertexUV(x1, y1, z0, u0, v0)
		t.VertexUV(x1, y0, z0, u0, v1)
		t.VertexUV(x0, y0, z0, u1, v1)
	case 3:
		t.VertexUV(x0, y1, z1, u0, v0)
		t.VertexUV(x0, y0, z1, u0, v1)
		t.VertexUV(x1, y0, z1, u1, v1)
		t.VertexUV(x1, y1, z1, u1, v0)
	case 4:
		t.VertexUV(x0, y1, z1, u1, v0)
		t.VertexUV(x0, y1, z0, u0, v0)
		t.VertexUV(x0, y0, z0, u0, v1)
		t.VertexUV(x0, y0, z1, u1, v1)
	case 5:
		t.VertexUV(x1, y0, z1, u0, v1)
		t.VertexUV(x1, y0, z0, u1, v1)
		t.VertexUV(x1, y1, z0, u1, v0)
		t.VertexUV(x1, y1, z1, u0, v0)
	}
}

// tessellateCross добавляет два скрещенных двусторонних квада (растения)
func tessellateCross(t *Tessellator, slot, x, y, z int) {
	u0, u1, v0, v1 := atlasUV(slot)
	y0, y1 := float32(y), float32(y+1)

	for i := 0; i < 2; i++ {
		angle := float64(i)*math.Pi/2 + math.Pi/4
		sin := float32(math.Sin(angle) / 2)
		cos := float32(math.Cos(angle) / 2)

		x0 := float32(x) + 0.5 - sin
		x1 := float32(x) + 0.5 + sin
		z0 := float32(z) + 0.5 - cos
		z1 := float32(z) + 0.5 + cos

		t.VertexUV(x0, y1, z0, u0, v0)
		t.VertexUV(x1, y1, z1, u1, v0)
		t.VertexUV(x1, y0, z1, u1, v1)
		t.VertexUV(x0, y0, z0, u0, v1)

		t.VertexUV(x1, y1, z1, u1, v0)
		t.VertexUV(x0, y1, z0, u0, v0)
		t.VertexUV(x0, y0, z0, u0, v1)
		t.VertexUV(x1, y0, z1, u1, v1)
	}
}
