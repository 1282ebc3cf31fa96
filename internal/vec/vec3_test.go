package vec

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVec3Float_DistanceSq(t *testing.T) {
	a := Vec3Float{X: 1, Y: 2, Z: 3}
	b := Vec3Float{X: 4, Y: 6, Z: 3}

	assert.Equal(t, 25.0, a.DistanceSq(b))
	assert.Equal(t, Vec3{X: -1, Y: 2, Z: 0}, Vec3Float{X: -0.5, Y: 2.9, Z: 0}.Floor())
}

func TestLookDirection(t *testing.T) {
	forward := LookDirection(0, 0)
	assert.InDelta(t, 0, forward.X, 1e-9)
	assert.InDelta(t, 0, forward.Y, 1e-9)
	assert.InDelta(t, -1, forward.Z, 1e-9)

	down := LookDirection(0, 90)
	assert.InDelta(t, -1, down.Y, 1e-9)

	right := LookDirection(90, 0)
	assert.InDelta(t, 1, right.X, 1e-9)
	assert.InDelta(t, 0, right.Z, 1e-9)
}
