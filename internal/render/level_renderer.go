package render

import (
	"fmt"
	"time"

	"github.com/annel0/voxel-engine/internal/vec"
	"github.com/annel0/voxel-engine/internal/world"
)

// Значения по умолчанию для планировщика
const (
	DefaultChunkSize  = 16
	DefaultRebuildCap = 8
)

// Source мир, который рисует LevelRenderer
type Source interface {
	BlockSource
	Dimensions() (width, height, depth int)
	AddListener(listener world.Listener)
}

// Options параметры LevelRenderer
type Options struct {
	ChunkSize   int              // Длина ребра чанка в блоках
	RebuildCap  int              // Максимум перестроек за кадр
	DirtyBucket time.Duration    // Шаг сравнения времени ожидания
	Clock       func() time.Time // Источник времени (для тестов)
}

// FrameStats статистика одного прохода планировщика
type FrameStats struct {
	Dirty    int           // Грязных чанков до перестройки
	Rebuilt  int           // Перестроено за кадр
	Duration time.Duration // Время перестройки
}

// LevelRenderer делит мир на чанки, следит за их актуальностью
// и перестраивает ограниченное число грязных чанков за кадр.
type LevelRenderer struct {
	RebuildCap  int
	DirtyBucket time.Duration

	src       Source
	chunkSize int
	nx, ny    int
	nz        int
	chunks    []*Chunk
	clock     func() time.Time

	width, height, depth int
	totalRebuilds        uint64
}

// NewLevelRenderer строит разбиение мира на чанки и подписывается на его изменения.
// Граничные чанки обрезаются по размеру мира.
func NewLevelRenderer(src Source, opts Options) *LevelRenderer {
	if opts.ChunkSize == 0 {
		opts.ChunkSize = DefaultChunkSize
	}
	if opts.ChunkSize < 0 {
		panic(fmt.Sprintf("render: invalid chunk size %d", opts.ChunkSize))
	}
	if opts.RebuildCap <= 0 {
		opts.RebuildCap = DefaultRebuildCap
	}
	if opts.DirtyBucket <= 0 {
		opts.DirtyBucket = DefaultDirtyBucket
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}

	width, height, depth := src.Dimensions()
	size := opts.ChunkSize

	r := &LevelRenderer{
		RebuildCap:  opts.RebuildCap,
		DirtyBucket: opts.DirtyBucket,
		src:         src,
		chunkSize:   size,
		nx:          ceilDiv(width, size),
		ny:          ceilDiv(depth, size),
		nz:          ceilDiv(height, size),
		clock:       opts.Clock,
		width:       width,
		height:      height,
		depth:       depth,
	}

	r.chunks = make([]*Chunk, r.nx*r.ny*r.nz)
	for x := 0; x < r.nx; x++ {
		for y := 0; y < r.ny; y++ {
			for z := 0; z < r.nz; z++ {
				r.chunks[r.index(x, y, z)] = NewChunk(src,
					x*size, y*size, z*size,
					min(width, (x+1)*size), min(depth, (y+1)*size), min(height, (z+1)*size),
					r.clock,
				)
			}
		}
	}

	src.AddListener(r)
	return r
}

func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}

func (r *LevelRenderer) index(x, y, z int) int {
	return (x+y*r.nx)*r.nz + z
}

// ChunkCounts возвращает число чанков по X, Y и Z
func (r *LevelRenderer) ChunkCounts() (nx, ny, nz int) {
	return r.nx, r.ny, r.nz
}

// ChunkAt возвращает чанк по координатам в сетке чанков
func (r *LevelRenderer) ChunkAt(cx, cy, cz int) (*Chunk, bool) {
	if cx < 0 || cy < 0 || cz < 0 || cx >= r.nx || cy >= r.ny || cz >= r.nz {
		return nil, false
	}
	return r.chunks[r.index(cx, cy, cz)], true
}

// Chunks возвращает все чанки
func (r *LevelRenderer) Chunks() []*Chunk {
	return r.chunks
}

// TotalRebuilds возвращает число перестроек за всё время
func (r *LevelRenderer) TotalRebuilds() uint64 {
	return r.totalRebuilds
}

// DirtyChunks возвращает все грязные чанки
func (r *LevelRenderer) DirtyChunks() []*Chunk {
	var dirty []*Chunk
	for _, c := range r.chunks {
		if c.IsDirty() {
			dirty = append(dirty, c)
		}
	}
	return dirty
}

// SetDirty помечает грязными все чанки, пересекающие область блоков
// [min, max] включительно. Координаты вне мира обрезаются.
func (r *LevelRenderer) SetDirty(minX, minY, minZ, maxX, maxY, maxZ int) {
	minX = max(floorDiv(minX, r.chunkSize), 0)
	minY = max(floorDiv(minY, r.chunkSize), 0)
	minZ = max(floorDiv(minZ, r.chunkSize), 0)
	maxX = min(floorDiv(maxX, r.chunkSize), r.nx-1)
	maxY = min(floorDiv(maxY, r.chunkSize), r.ny-1)
	maxZ = min(floorDiv(maxZ, r.chunkSize), r.nz-1)

	for x := minX; x <= maxX; x++ {
		for y := minY; y <= maxY; y++ {
			for z := minZ; z <= maxZ; z++ {
				r.chunks[r.index(x, y, z)].MarkDirty()
			}
		}
	}
}

func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && a < 0 {
		q--
	}
	return q
}

// BlockChanged реализует world.Listener
func (r *LevelRenderer) BlockChanged(x, y, z int) {
	r.SetDirty(x-1, y-1, z-1, x+1, y+1, z+1)
}

// LightColumnChanged реализует world.Listener
func (r *LevelRenderer) LightColumnChanged(x, z, minY, maxY int) {
	r.SetDirty(x-1, minY-1, z-1, x+1, maxY+1, z+1)
}

// AllChanged реализует world.Listener
func (r *LevelRenderer) AllChanged() {
	r.SetDirty(0, 0, 0, r.width, r.depth, r.height)
}

// UpdateDirtyChunks перестраивает не более RebuildCap грязных чанков
// в порядке DirtyChunkSorter.
func (r *LevelRenderer) UpdateDirtyChunks(viewer vec.Vec3Float, frustum Visibility) FrameStats {
	dirty := r.DirtyChunks()
	stats := FrameStats{Dirty: len(dirty)}
	if len(dirty) == 0 {
		return stats
	}

	sorter := &DirtyChunkSorter{
		Now:     r.clock(),
		Viewer:  viewer,
		Frustum: frustum,
		Bucket:  r.DirtyBucket,
	}
	sorter.Sort(dirty)

	start := time.Now()
	budget := NewFrameBudget(r.RebuildCap)
	for _, c := range dirty {
		if !c.Rebuild(budget) {
			break
		}
		stats.Rebuilt++
	}
	stats.Duration = time.Since(start)
	r.totalRebuilds += uint64(stats.Rebuilt)
	return stats
}

// Render передаёт в sink меши слоя всех видимых чанков.
// Возвращает число отправленных мешей.
func (r *LevelRenderer) Render(layer int, frustum Visibility, sink MeshSink) int {
	submitted := 0
	for _, c := range r.chunks {
		if frustum != nil && !frustum.IsVisible(c.Box) {
			continue
		}
		if c.Render(layer, sink) {
			submitted++
		}
	}
	return submitted
}
