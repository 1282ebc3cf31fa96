package phys

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Грани вокселя в порядке осей: -Y, +Y, -Z, +Z, -X, +X
const (
	FaceBottom = iota
	FaceTop
	FaceNorth
	FaceSouth
	FaceWest
	FaceEast
)

// RayIntersect пересекает луч origin + t*dir с боксом методом слэбов.
// Возвращает расстояние вдоль луча до точки входа и грань входа.
// Луч, стартующий внутри бокса, попаданием не считается.
func (a AABB) RayIntersect(origin, dir mgl64.Vec3) (t float64, face int, ok bool) {
	tNear := math.Inf(-1)
	tFar := math.Inf(1)
	face = -1

	mins := [3]float64{a.MinX, a.MinY, a.MinZ}
	maxs := [3]float64{a.MaxX, a.MaxY, a.MaxZ}
	// Грани входа при движении в отрицательном и положительном направлении оси
	negFace := [3]int{FaceEast, FaceTop, FaceSouth}
	posFace := [3]int{FaceWest, FaceBottom, FaceNorth}

	for axis := 0; axis < 3; axis++ {
		o, d := origin[axis], dir[axis]
		if d == 0 {
			if o < mins[axis] || o > maxs[axis] {
				return 0, -1, false
			}
			continue
		}

		t1 := (mins[axis] - o) / d
		t2 := (maxs[axis] - o) / d
		entry := posFace[axis]
		if t1 > t2 {
			t1, t2 = t2, t1
			entry = negFace[axis]
		}

		if t1 > tNear {
			tNear = t1
			face = entry
		}
		if t2 < tFar {
			tFar = t2
		}
		if tNear > tFar {
			return 0, -1, false
		}
	}

	if face < 0 || tNear < 0 {
		return 0, -1, false
	}
	return tNear, face, true
}
