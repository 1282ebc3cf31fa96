package entity

import (
	"math"
	"math/rand"

	"github.com/annel0/voxel-engine/internal/phys"
	"github.com/annel0/voxel-engine/internal/vec"
	"github.com/annel0/voxel-engine/internal/world"
	"github.com/google/uuid"
)

// EntityType представляет тип сущности
type EntityType uint16

const (
	EntityTypePlayer EntityType = iota
	EntityTypeZombie
	EntityTypeParticle
)

// String возвращает имя типа для логов
func (t EntityType) String() string {
	switch t {
	case EntityTypePlayer:
		return "player"
	case EntityTypeZombie:
		return "zombie"
	case EntityTypeParticle:
		return "particle"
	default:
		return "unknown"
	}
}

// Размер бокса по умолчанию (половины ширины и высоты)
const (
	defaultHalfWidth  = 0.3
	defaultHalfHeight = 0.9
)

// turnSensitivity градусов поворота на единицу движения мыши
const turnSensitivity = 0.15

// WorldAPI предоставляет интерфейс для взаимодействия сущностей с миром
type WorldAPI interface {
	// GetCubes возвращает боксы твёрдых блоков рядом с областью
	GetCubes(region phys.AABB) []phys.AABB

	// IsLit сообщает, освещена ли позиция солнцем
	IsLit(x, y, z int) bool

	// Dimensions возвращает размеры мира по X, Z и Y
	Dimensions() (width, height, depth int)
}

// Entity представляет физическое тело в мире.
// Политики (гравитация, трение, прыжки) применяют конкретные типы.
type Entity struct {
	ID   uuid.UUID  // Уникальный идентификатор сущности
	Type EntityType // Тип сущности

	Pos    vec.Vec3Float // Текущая позиция
	Prev   vec.Vec3Float // Позиция на прошлом тике (для интерполяции)
	Motion vec.Vec3Float // Текущая скорость за тик

	Yaw   float64 // Поворот вокруг вертикали в градусах
	Pitch float64 // Наклон в градусах, [-90, 90]

	Box          phys.AABB
	OnGround     bool
	HeightOffset float64 // Смещение позиции над низом бокса
	Removed      bool

	halfWidth  float64
	halfHeight float64

	world WorldAPI
	rng   *rand.Rand
}

// NewEntity создаёт сущность в случайной точке над миром
func NewEntity(entityType EntityType, w WorldAPI, rng *rand.Rand) *Entity {
	e := &Entity{
		ID:         uuid.New(),
		Type:       entityType,
		halfWidth:  defaultHalfWidth,
		halfHeight: defaultHalfHeight,
		world:      w,
		rng:        rng,
	}
	e.ResetPosition()
	return e
}

// SetSize задаёт полный размер бокса и перестраивает его вокруг позиции
func (e *Entity) SetSize(width, height float64) {
	e.halfWidth = width / 2
	e.halfHeight = height / 2
	e.SetPosition(e.Pos.X, e.Pos.Y, e.Pos.Z)
}

// SetPosition перемещает сущность и строит бокс вокруг точки
func (e *Entity) SetPosition(x, y, z float64) {
	e.Pos = vec.Vec3Float{X: x, Y: y, Z: z}
	e.Box = phys.NewAABB(
		x-e.halfWidth, y-e.halfHeight, z-e.halfWidth,
		x+e.halfWidth, y+e.halfHeight, z+e.halfWidth,
	)
}

// ResetPosition переносит сущность в случайную точку над миром
func (e *Entity) ResetPosition() {
	width, height, depth := e.world.Dimensions()
	x := e.rng.Float64() * float64(width)
	y := float64(depth + 3)
	z := e.rng.Float64() * float64(height)
	e.SetPosition(x, y, z)
	e.Prev = e.Pos
}

// Turn поворачивает взгляд на смещение мыши
func (e *Entity) Turn(dx, dy float64) {
	e.Yaw += dx * turnSensitivity
	e.Pitch -= dy * turnSensitivity
	e.Pitch = math.Max(-90, math.Min(90, e.Pitch))
}

// Tick запоминает позицию прошлого тика
func (e *Entity) Tick() {
	e.Prev = e.Pos
}

// Move сдвигает бокс с отсечением по твёрдым блокам: сначала Y, затем X и Z.
// Компонента скорости по оси, где движение было обрезано, обнуляется.
func (e *Entity) Move(dx, dy, dz float64) {
	origDx, origDy, origDz := dx, dy, dz

	cubes := e.world.GetCubes(e.Box.Expand(dx, dy, dz))

	for _, c := range cubes {
		dy = c.ClipYCollide(e.Box, dy)
	}
	e.Box = e.Box.Move(0, dy, 0)

	for _, c := range cubes {
		dx = c.ClipXCollide(e.Box, dx)
	}
	e.Box = e.Box.Move(dx, 0, 0)

	for _, c := range cubes {
		dz = c.ClipZCollide(e.Box, dz)
	}
	e.Box = e.Box.Move(0, 0, dz)

	e.OnGround = dy != origDy && origDy < 0

	if dx != origDx {
		e.Motion.X = 0
	}
	if dy != origDy {
		e.Motion.Y = 0
	}
	if dz != origDz {
		e.Motion.Z = 0
	}

	cx, _, cz := e.Box.Center()
	e.Pos = vec.Vec3Float{X: cx, Y: e.Box.MinY + e.HeightOffset, Z: cz}
}

// MoveRelative добавляет к скорости движение относительно взгляда.
// strafe - вбок, forward - вперёд (отрицательное значение к взгляду).
func (e *Entity) MoveRelative(strafe, forward, speed float64) {
	dist := strafe*strafe + forward*forward
	if dist < 0.01 {
		return
	}

	dist = speed / math.Sqrt(dist)
	strafe *= dist
	forward *= dist

	yaw := e.Yaw * math.Pi / 180
	sin, cos := math.Sin(yaw), math.Cos(yaw)

	e.Motion.X += strafe*cos - forward*sin
	e.Motion.Z += forward*cos + strafe*sin
}

// IsLit сообщает, стоит ли сущность на солнце
func (e *Entity) IsLit() bool {
	return e.world.IsLit(int(math.Floor(e.Pos.X)), int(math.Floor(e.Pos.Y)), int(math.Floor(e.Pos.Z)))
}

// Remove помечает сущность на удаление
func (e *Entity) Remove() {
	e.Removed = true
}

// Interpolated возвращает позицию между прошлым и текущим тиком
func (e *Entity) Interpolated(partial float64) vec.Vec3Float {
	return e.Prev.Lerp(e.Pos, partial)
}

// Viewer возвращает наблюдателя для выбора блока взглядом
func (e *Entity) Viewer() world.Viewer {
	return world.Viewer{Eye: e.Pos, Box: e.Box, Yaw: e.Yaw, Pitch: e.Pitch}
}

// Base возвращает физическое тело
func (e *Entity) Base() *Entity {
	return e
}

// applyFriction гасит скорость в воздухе и дополнительно на земле
func (e *Entity) applyFriction(horizontal, vertical, ground float64) {
	e.Motion.X *= horizontal
	e.Motion.Y *= vertical
	e.Motion.Z *= horizontal

	if e.OnGround {
		e.Motion.X *= ground
		e.Motion.Z *= ground
	}
}
