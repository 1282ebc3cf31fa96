package phys

// AABB представляет ограничивающий параллелепипед, выровненный по осям.
// Все операции возвращают новое значение и не изменяют исходный бокс.
type AABB struct {
	MinX, MinY, MinZ float64
	MaxX, MaxY, MaxZ float64
}

// epsilon оставляет зазор между боксами после отсечения движения
const epsilon = 0.0

// NewAABB создаёт бокс по двум углам
func NewAABB(minX, minY, minZ, maxX, maxY, maxZ float64) AABB {
	return AABB{
		MinX: minX, MinY: minY, MinZ: minZ,
		MaxX: maxX, MaxY: maxY, MaxZ: maxZ,
	}
}

// UnitCube возвращает бокс единичного вокселя с минимальным углом (x, y, z)
func UnitCube(x, y, z int) AABB {
	fx, fy, fz := float64(x), float64(y), float64(z)
	return AABB{
		MinX: fx, MinY: fy, MinZ: fz,
		MaxX: fx + 1, MaxY: fy + 1, MaxZ: fz + 1,
	}
}

// Move сдвигает бокс на (dx, dy, dz)
func (a AABB) Move(dx, dy, dz float64) AABB {
	return AABB{
		MinX: a.MinX + dx, MinY: a.MinY + dy, MinZ: a.MinZ + dz,
		MaxX: a.MaxX + dx, MaxY: a.MaxY + dy, MaxZ: a.MaxZ + dz,
	}
}

// Grow симметрично расширяет бокс по каждой оси
func (a AABB) Grow(x, y, z float64) AABB {
	return AABB{
		MinX: a.MinX - x, MinY: a.MinY - y, MinZ: a.MinZ - z,
		MaxX: a.MaxX + x, MaxY: a.MaxY + y, MaxZ: a.MaxZ + z,
	}
}

// Expand расширяет бокс в сторону вектора движения.
// Отрицательная компонента двигает минимум, положительная - максимум.
func (a AABB) Expand(dx, dy, dz float64) AABB {
	out := a
	if dx < 0 {
		out.MinX += dx
	} else {
		out.MaxX += dx
	}
	if dy < 0 {
		out.MinY += dy
	} else {
		out.MaxY += dy
	}
	if dz < 0 {
		out.MinZ += dz
	} else {
		out.MaxZ += dz
	}
	return out
}

// Intersects возвращает true, если боксы пересекаются (касание не считается)
func (a AABB) Intersects(b AABB) bool {
	return a.MinX < b.MaxX && a.MaxX > b.MinX &&
		a.MinY < b.MaxY && a.MaxY > b.MinY &&
		a.MinZ < b.MaxZ && a.MaxZ > b.MinZ
}

// Center возвращает центр бокса
func (a AABB) Center() (x, y, z float64) {
	return (a.MinX + a.MaxX) / 2, (a.MinY + a.MaxY) / 2, (a.MinZ + a.MaxZ) / 2
}

// ClipXCollide уменьшает смещение dx движущегося бокса moving так,
// чтобы он не вошёл в препятствие a.
func (a AABB) ClipXCollide(moving AABB, dx float64) float64 {
	if moving.MaxY <= a.MinY || moving.MinY >= a.MaxY {
		return dx
	}
	if moving.MaxZ <= a.MinZ || moving.MinZ >= a.MaxZ {
		return dx
	}

	if dx > 0 && moving.MaxX <= a.MinX {
		if limit := a.MinX - moving.MaxX - epsilon; limit < dx {
			dx = limit
		}
	}
	if dx < 0 && moving.MinX >= a.MaxX {
		if limit := a.MaxX - moving.MinX + epsilon; limit > dx {
			dx = limit
		}
	}
	return dx
}

// ClipYCollide уменьшает смещение dy движущегося бокса moving
func (a AABB) ClipYCollide(moving AABB, dy float64) float64 {
	if moving.MaxX <= a.MinX || moving.MinX >= a.MaxX {
		return dy
	}
	if moving.MaxZ <= a.MinZ || moving.MinZ >= a.MaxZ {
		return dy
	}

	if dy > 0 && moving.MaxY <= a.MinY {
		if limit := a.MinY - moving.MaxY - epsilon; limit < dy {
			dy = limit
		}
	}
	if dy < 0 && moving.MinY >= a.MaxY {
		if limit := a.MaxY - moving.MinY + epsilon; limit > dy {
			dy = limit
		}
	}
	return dy
}

// ClipZCollide уменьшает смещение dz движущегося бокса moving
func (a AABB) ClipZCollide(moving AABB, dz float64) float64 {
	if moving.MaxX <= a.MinX || moving.MinX >= a.MaxX {
		return dz
	}
	if moving.MaxY <= a.MinY || moving.MinY >= a.MaxY {
		return dz
	}

	if dz > 0 && moving.MaxZ <= a.MinZ {
		if limit := a.MinZ - moving.MaxZ - epsilon; limit < dz {
			dz = limit
		}
	}
	if dz < 0 && moving.MinZ >= a.MaxZ {
		if limit := a.MaxZ - moving.MinZ + epsilon; limit > dz {
			dz = limit
		}
	}
	return dz
}
