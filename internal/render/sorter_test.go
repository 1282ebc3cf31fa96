package render

import (
	"testing"
	"time"

	"github.com/annel0/voxel-engine/internal/phys"
	"github.com/annel0/voxel-engine/internal/vec"
	"github.com/annel0/voxel-engine/internal/world"
	"github.com/stretchr/testify/assert"
)

// boxSet видимы только перечисленные боксы
type boxSet map[phys.AABB]bool

func (s boxSet) IsVisible(box phys.AABB) bool {
	return s[box]
}

func TestDirtyChunkSorter_Order(t *testing.T) {
	clock := newFakeClock()
	l := world.NewLevel(64, 16, 16, 1)

	near := NewChunk(l, 0, 0, 0, 16, 16, 16, clock.Now)
	far := NewChunk(l, 48, 0, 0, 64, 16, 16, clock.Now)
	clock.Advance(5 * time.Second)
	fresh := NewChunk(l, 16, 0, 0, 32, 16, 16, clock.Now)
	clock.Advance(time.Second)

	s := &DirtyChunkSorter{Now: clock.Now(), Viewer: vec.Vec3Float{X: 0, Y: 8, Z: 8}}

	assert.Zero(t, s.Compare(near, near))

	// Дольше ожидающий раньше, даже если дальше
	assert.Negative(t, s.Compare(far, fresh))
	assert.Positive(t, s.Compare(fresh, far))

	// Одинаковое ожидание - ближний раньше
	assert.Negative(t, s.Compare(near, far))

	chunks := []*Chunk{fresh, far, near}
	s.Sort(chunks)
	assert.Equal(t, []*Chunk{near, far, fresh}, chunks)

	// Видимость важнее ожидания и расстояния
	s.Frustum = boxSet{fresh.Box: true}
	s.Sort(chunks)
	assert.Equal(t, fresh, chunks[0])
}

func TestDirtyChunkSorter_BucketGroupsCloseTimes(t *testing.T) {
	clock := newFakeClock()
	l := world.NewLevel(64, 16, 16, 1)

	far := NewChunk(l, 48, 0, 0, 64, 16, 16, clock.Now)
	clock.Advance(500 * time.Millisecond)
	near := NewChunk(l, 0, 0, 0, 16, 16, 16, clock.Now)
	clock.Advance(100 * time.Millisecond)

	// Разница меньше шага: решает расстояние
	s := &DirtyChunkSorter{Now: clock.Now(), Viewer: vec.Vec3Float{Y: 8, Z: 8}, Bucket: 2 * time.Second}
	assert.Negative(t, s.Compare(near, far))

	// С мелким шагом решает время ожидания
	s.Bucket = 100 * time.Millisecond
	assert.Negative(t, s.Compare(far, near))
}
