package render

import (
	"cmp"
	"slices"
	"time"

	"github.com/annel0/voxel-engine/internal/phys"
	"github.com/annel0/voxel-engine/internal/vec"
)

// DefaultDirtyBucket шаг, с которым сравнивается время ожидания чанков
const DefaultDirtyBucket = 2 * time.Second

// Visibility проверка видимости бокса (обычно Frustum)
type Visibility interface {
	IsVisible(box phys.AABB) bool
}

// DirtyChunkSorter упорядочивает грязные чанки для перестройки:
// видимые раньше невидимых, затем дольше ожидающие, затем ближние к наблюдателю.
type DirtyChunkSorter struct {
	Now     time.Time
	Viewer  vec.Vec3Float
	Frustum Visibility // nil - все чанки видимы
	Bucket  time.Duration
}

func (s *DirtyChunkSorter) visible(c *Chunk) bool {
	if s.Frustum == nil {
		return true
	}
	return s.Frustum.IsVisible(c.Box)
}

func (s *DirtyChunkSorter) waited(c *Chunk) int64 {
	bucket := s.Bucket
	if bucket <= 0 {
		bucket = DefaultDirtyBucket
	}
	return int64(s.Now.Sub(c.dirtiedAt) / bucket)
}

// Compare возвращает отрицательное значение, если a нужно перестроить раньше b
func (s *DirtyChunkSorter) Compare(a, b *Chunk) int {
	if a == b {
		return 0
	}

	va, vb := s.visible(a), s.visible(b)
	if va && !vb {
		return -1
	}
	if vb && !va {
		return 1
	}

	if c := cmp.Compare(s.waited(b), s.waited(a)); c != 0 {
		return c
	}

	return cmp.Compare(a.DistanceSq(s.Viewer), b.DistanceSq(s.Viewer))
}

// Sort упорядочивает чанки на месте
func (s *DirtyChunkSorter) Sort(chunks []*Chunk) {
	slices.SortStableFunc(chunks, s.Compare)
}
