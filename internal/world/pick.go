package world

import (
	"fmt"
	"math"

	"github.com/annel0/voxel-engine/internal/phys"
	"github.com/annel0/voxel-engine/internal/vec"
)

// Viewer описывает наблюдателя для запроса выбора блока
type Viewer struct {
	Eye   vec.Vec3Float // Точка начала луча
	Box   phys.AABB     // Ограничивающий бокс наблюдателя
	Yaw   float64       // Градусы
	Pitch float64       // Градусы, положительные вниз
}

// HitResult результат выбора блока
type HitResult struct {
	X, Y, Z  int
	Face     int     // 0..5: -Y, +Y, -Z, +Z, -X, +X
	Distance float64 // Расстояние вдоль луча до точки входа
}

// Adjacent возвращает соседнюю клетку со стороны грани попадания,
// куда ставится новый блок.
func (h HitResult) Adjacent() vec.Vec3 {
	p := vec.Vec3{X: h.X, Y: h.Y, Z: h.Z}
	switch h.Face {
	case phys.FaceBottom:
		p.Y--
	case phys.FaceTop:
		p.Y++
	case phys.FaceNorth:
		p.Z--
	case phys.FaceSouth:
		p.Z++
	case phys.FaceWest:
		p.X--
	case phys.FaceEast:
		p.X++
	}
	return p
}

// Pick находит ближайшую грань твёрдого блока на луче взгляда.
// Проверяются все твёрдые воксели в боксе наблюдателя, расширенном на radius;
// ранний выход не используется, чтобы дальний перебор не скрыл ближнюю грань.
func (l *Level) Pick(viewer Viewer, radius float64) (HitResult, bool) {
	if radius <= 0 {
		panic(fmt.Sprintf("world: pick radius must be positive, got %v", radius))
	}

	area := viewer.Box.Grow(radius, radius, radius)
	x0, x1 := int(math.Floor(area.MinX)), int(area.MaxX+1)
	y0, y1 := int(math.Floor(area.MinY)), int(area.MaxY+1)
	z0, z1 := int(math.Floor(area.MinZ)), int(area.MaxZ+1)

	origin := viewer.Eye.Mgl()
	dir := vec.LookDirection(viewer.Yaw, viewer.Pitch).Mgl()

	best := HitResult{Distance: math.Inf(1)}
	found := false

	for x := x0; x < x1; x++ {
		for y := y0; y < y1; y++ {
			for z := z0; z < z1; z++ {
				if !l.IsSolid(x, y, z) {
					continue
				}

				t, face, ok := phys.UnitCube(x, y, z).RayIntersect(origin, dir)
				if !ok || t >= best.Distance {
					continue
				}

				best = HitResult{X: x, Y: y, Z: z, Face: face, Distance: t}
				found = true
			}
		}
	}

	return best, found
}
