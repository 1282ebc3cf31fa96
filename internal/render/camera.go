package render

import (
	"github.com/annel0/voxel-engine/internal/vec"
	"github.com/go-gl/mathgl/mgl32"
)

// eyeBackOffset камера чуть отодвинута назад от глаз
const eyeBackOffset = 0.3

// Camera параметры перспективной камеры наблюдателя
type Camera struct {
	Eye    vec.Vec3Float
	Yaw    float64 // градусы, 0 - взгляд в -Z
	Pitch  float64 // градусы, положительные вниз
	FovY   float32 // вертикальный угол обзора в градусах
	Aspect float32
	Near   float32
	Far    float32
}

// NewCamera создаёт камеру с углом обзора 70 градусов
func NewCamera(aspect float32) *Camera {
	return &Camera{FovY: 70, Aspect: aspect, Near: 0.05, Far: 1000}
}

// Projection возвращает матрицу перспективной проекции
func (c *Camera) Projection() mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(c.FovY), c.Aspect, c.Near, c.Far)
}

// View возвращает матрицу вида: сдвиг назад, наклон, поворот, перенос в глаз
func (c *Camera) View() mgl32.Mat4 {
	m := mgl32.Translate3D(0, 0, -eyeBackOffset)
	m = m.Mul4(mgl32.HomogRotate3DX(mgl32.DegToRad(float32(c.Pitch))))
	m = m.Mul4(mgl32.HomogRotate3DY(mgl32.DegToRad(float32(c.Yaw))))
	return m.Mul4(mgl32.Translate3D(float32(-c.Eye.X), float32(-c.Eye.Y), float32(-c.Eye.Z)))
}

// Frustum извлекает пирамиду видимости для текущего положения камеры
func (c *Camera) Frustum() *Frustum {
	return ExtractFrustum(c.Projection(), c.View())
}
