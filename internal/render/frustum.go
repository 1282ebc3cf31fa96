package render

import (
	"github.com/annel0/voxel-engine/internal/phys"
	"github.com/go-gl/mathgl/mgl32"
)

// Плоскости пирамиды видимости
const (
	planeLeft = iota
	planeRight
	planeBottom
	planeTop
	planeNear
	planeFar
)

// Frustum шесть нормализованных плоскостей пирамиды видимости.
// Нормали смотрят внутрь: точка видима, если n·p + d >= 0 для всех плоскостей.
type Frustum struct {
	planes [6]mgl32.Vec4
}

// ExtractFrustum извлекает плоскости из матриц проекции и вида
func ExtractFrustum(proj, view mgl32.Mat4) *Frustum {
	clip := proj.Mul4(view)
	r0, r1, r2, r3 := clip.Row(0), clip.Row(1), clip.Row(2), clip.Row(3)

	f := &Frustum{}
	f.planes[planeLeft] = r3.Add(r0)
	f.planes[planeRight] = r3.Sub(r0)
	f.planes[planeBottom] = r3.Add(r1)
	f.planes[planeTop] = r3.Sub(r1)
	f.planes[planeNear] = r3.Add(r2)
	f.planes[planeFar] = r3.Sub(r2)

	for i, p := range f.planes {
		n := p.Vec3().Len()
		if n > 0 {
			f.planes[i] = p.Mul(1 / n)
		}
	}
	return f
}

// Plane возвращает i-ю плоскость (a, b, c, d)
func (f *Frustum) Plane(i int) mgl32.Vec4 {
	return f.planes[i]
}

// IsVisible возвращает false, только если бокс целиком
// лежит снаружи хотя бы одной плоскости.
func (f *Frustum) IsVisible(box phys.AABB) bool {
	for _, p := range f.planes {
		// Вершина бокса, дальше всех продвинутая вдоль нормали
		x := float32(box.MinX)
		if p[0] >= 0 {
			x = float32(box.MaxX)
		}
		y := float32(box.MinY)
		if p[1] >= 0 {
			y = float32(box.MaxY)
		}
		z := float32(box.MinZ)
		if p[2] >= 0 {
			z = float32(box.MaxZ)
		}

		if p[0]*x+p[1]*y+p[2]*z+p[3] < 0 {
			return false
		}
	}
	return true
}

// ContainsPoint проверяет, лежит ли точка внутри пирамиды
func (f *Frustum) ContainsPoint(x, y, z float32) bool {
	for _, p := range f.planes {
		if p[0]*x+p[1]*y+p[2]*z+p[3] < 0 {
			return false
		}
	}
	return true
}
