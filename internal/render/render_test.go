package render

import (
	"testing"
	"time"

	"github.com/annel0/voxel-engine/internal/vec"
	"github.com/annel0/voxel-engine/internal/world"
	"github.com/annel0/voxel-engine/internal/world/block"
	_ "github.com/annel0/voxel-engine/internal/world/block/implementations"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClock управляемый источник времени
type fakeClock struct {
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.now = c.now.Add(d)
}

// collectSink запоминает отправленные меши
type collectSink struct {
	meshes map[int][]*Mesh
}

func newCollectSink() *collectSink {
	return &collectSink{meshes: make(map[int][]*Mesh)}
}

func (s *collectSink) Submit(layer int, mesh *Mesh) {
	s.meshes[layer] = append(s.meshes[layer], mesh)
}

func rebuildAll(t *testing.T, r *LevelRenderer) {
	t.Helper()
	prev := r.RebuildCap
	r.RebuildCap = len(r.Chunks())
	r.UpdateDirtyChunks(vec.Vec3Float{}, nil)
	r.RebuildCap = prev
	require.Empty(t, r.DirtyChunks())
}

func TestChunk_SingleBlockFaces(t *testing.T) {
	l := world.NewLevel(3, 3, 3, 1)
	l.SetBlock(1, 1, 1, block.RockBlockID)

	r := NewLevelRenderer(l, Options{})
	rebuildAll(t, r)

	c, ok := r.ChunkAt(0, 0, 0)
	require.True(t, ok)

	// Верх и четыре бока граничат со светом, низ - с тенью
	assert.Equal(t, 5, c.Mesh(LayerLit).QuadCount())
	assert.Equal(t, 1, c.Mesh(LayerShadow).QuadCount())
	assert.Equal(t, 1, c.Tiles())

	bottom := c.Mesh(LayerShadow)
	for i := 0; i < bottom.VertexCount(); i++ {
		v := bottom.Vertex(i)
		assert.Equal(t, float32(1), v.Y)
		assert.Equal(t, float32(1), v.R)
	}

	shades := map[float32]int{}
	lit := c.Mesh(LayerLit)
	for i := 0; i < lit.VertexCount(); i += 4 {
		shades[lit.Vertex(i).R]++
	}
	assert.Equal(t, map[float32]int{1.0: 1, 0.8: 2, 0.6: 2}, shades)

	// Слот 1 атласа: u от 1/16 до 2/16
	v := lit.Vertex(0)
	assert.GreaterOrEqual(t, v.U, float32(1.0/16))
	assert.LessOrEqual(t, v.U, float32(2.0/16))
}

func TestChunk_HiddenFacesSkipped(t *testing.T) {
	l := world.NewLevel(4, 4, 4, 1)
	l.SetBlock(1, 1, 1, block.RockBlockID)
	l.SetBlock(2, 1, 1, block.RockBlockID)

	r := NewLevelRenderer(l, Options{})
	rebuildAll(t, r)

	c, _ := r.ChunkAt(0, 0, 0)
	total := c.Mesh(LayerLit).QuadCount() + c.Mesh(LayerShadow).QuadCount()
	assert.Equal(t, 10, total)
}

func TestChunk_GrassTopTexture(t *testing.T) {
	l := world.NewLevel(3, 3, 3, 1)
	l.SetBlock(1, 1, 1, block.GrassBlockID)

	r := NewLevelRenderer(l, Options{})
	rebuildAll(t, r)

	c, _ := r.ChunkAt(0, 0, 0)
	lit := c.Mesh(LayerLit)
	foundTop := false
	for i := 0; i < lit.VertexCount(); i += 4 {
		v := lit.Vertex(i)
		if v.Y == 2 && lit.Vertex(i+1).Y == 2 && lit.Vertex(i+2).Y == 2 {
			foundTop = true
			assert.Less(t, v.U, float32(1.0/16)+1e-6)
		}
	}
	assert.True(t, foundTop)
}

func TestChunk_BushCrossInLitLayer(t *testing.T) {
	l := world.NewLevel(3, 3, 3, 1)
	l.SetBlock(1, 1, 1, block.BushBlockID)

	r := NewLevelRenderer(l, Options{})
	rebuildAll(t, r)

	c, _ := r.ChunkAt(0, 0, 0)
	assert.Equal(t, 4, c.Mesh(LayerLit).QuadCount())
	assert.Equal(t, 0, c.Mesh(LayerShadow).QuadCount())
}

func TestChunk_DirtyTimestampOnEdge(t *testing.T) {
	clock := newFakeClock()
	l := world.NewLevel(4, 4, 4, 1)
	c := NewChunk(l, 0, 0, 0, 4, 4, 4, clock.Now)

	require.True(t, c.IsDirty())
	created := c.DirtiedAt()

	clock.Advance(time.Second)
	c.MarkDirty()
	assert.Equal(t, created, c.DirtiedAt(), "повторная пометка не меняет время")

	require.True(t, c.Rebuild(NewFrameBudget(1)))
	assert.False(t, c.IsDirty())

	clock.Advance(time.Second)
	c.MarkDirty()
	assert.Equal(t, clock.Now(), c.DirtiedAt())
}

func TestChunk_RebuildRespectsBudget(t *testing.T) {
	l := world.NewLevel(4, 4, 4, 1)
	a := NewChunk(l, 0, 0, 0, 2, 4, 4, nil)
	b := NewChunk(l, 2, 0, 0, 4, 4, 4, nil)

	budget := NewFrameBudget(1)
	assert.True(t, a.Rebuild(budget))
	assert.False(t, b.Rebuild(budget))
	assert.True(t, b.IsDirty())
	assert.Equal(t, 1, budget.Used())
	assert.Zero(t, budget.Remaining())
}

func TestChunk_RebuildRequiresBudget(t *testing.T) {
	l := world.NewLevel(4, 4, 4, 1)
	c := NewChunk(l, 0, 0, 0, 4, 4, 4, nil)

	assert.Panics(t, func() { c.Rebuild(nil) })
	assert.True(t, c.IsDirty())
}

func TestChunk_RenderUsesCache(t *testing.T) {
	l := world.NewLevel(4, 4, 4, 1)
	l.SetBlock(1, 1, 1, block.RockBlockID)
	c := NewChunk(l, 0, 0, 0, 4, 4, 4, nil)
	sink := newCollectSink()

	assert.False(t, c.Render(LayerLit, sink))
	require.True(t, c.Rebuild(NewFrameBudget(1)))

	assert.True(t, c.Render(LayerLit, sink))
	assert.True(t, c.Render(LayerLit, sink))
	require.Len(t, sink.meshes[LayerLit], 2)
	assert.Same(t, sink.meshes[LayerLit][0], sink.meshes[LayerLit][1])
}

func TestLevelRenderer_PartitionClipsBoundary(t *testing.T) {
	l := world.NewLevel(20, 20, 20, 1)
	r := NewLevelRenderer(l, Options{ChunkSize: 16})

	nx, ny, nz := r.ChunkCounts()
	assert.Equal(t, [3]int{2, 2, 2}, [3]int{nx, ny, nz})
	assert.Len(t, r.Chunks(), 8)

	c, ok := r.ChunkAt(1, 1, 1)
	require.True(t, ok)
	assert.Equal(t, [6]int{16, 16, 16, 20, 20, 20}, [6]int{c.MinX, c.MinY, c.MinZ, c.MaxX, c.MaxY, c.MaxZ})

	_, ok = r.ChunkAt(2, 0, 0)
	assert.False(t, ok)

	// Все чанки изначально грязные
	assert.Len(t, r.DirtyChunks(), 8)
}

func TestLevelRenderer_InvalidChunkSizePanics(t *testing.T) {
	l := world.NewLevel(4, 4, 4, 1)
	assert.Panics(t, func() { NewLevelRenderer(l, Options{ChunkSize: -1}) })
}

func TestLevelRenderer_BlockChangeInvalidatesNeighbours(t *testing.T) {
	l := world.NewLevel(32, 16, 16, 1)
	r := NewLevelRenderer(l, Options{ChunkSize: 16})
	rebuildAll(t, r)

	// Блок на границе чанков задевает оба
	l.SetBlock(15, 10, 5, block.RockBlockID)
	assert.Len(t, r.DirtyChunks(), 2)
	rebuildAll(t, r)

	// Блок внутри чанка задевает только его
	l.SetBlock(5, 10, 5, block.RockBlockID)
	dirty := r.DirtyChunks()
	require.Len(t, dirty, 1)
	assert.Equal(t, 0, dirty[0].MinX)
}

func TestLevelRenderer_LightColumnRange(t *testing.T) {
	l := world.NewLevel(16, 16, 64, 1)
	r := NewLevelRenderer(l, Options{ChunkSize: 16})
	rebuildAll(t, r)

	// Свет колонки опускается с 0 до 40: затронуты чанки по Y 0..2
	l.SetBlock(5, 40, 5, block.RockBlockID)
	assert.Len(t, r.DirtyChunks(), 3)

	c, _ := r.ChunkAt(0, 3, 0)
	assert.False(t, c.IsDirty())
}

func TestLevelRenderer_AllChanged(t *testing.T) {
	l := world.NewLevel(32, 32, 32, 1)
	r := NewLevelRenderer(l, Options{ChunkSize: 16})
	rebuildAll(t, r)

	world.NewGenerator(1, world.GeneratorMidpoint).Generate(l)
	assert.Len(t, r.DirtyChunks(), len(r.Chunks()))
}

func TestLevelRenderer_CapBoundsRebuilds(t *testing.T) {
	l := world.NewLevel(64, 64, 64, 1)
	r := NewLevelRenderer(l, Options{ChunkSize: 16})
	require.Len(t, r.DirtyChunks(), 64)

	stats := r.UpdateDirtyChunks(vec.Vec3Float{}, nil)
	assert.Equal(t, 64, stats.Dirty)
	assert.Equal(t, DefaultRebuildCap, stats.Rebuilt)
	assert.Len(t, r.DirtyChunks(), 64-DefaultRebuildCap)
	assert.Equal(t, uint64(DefaultRebuildCap), r.TotalRebuilds())
}

func TestLevelRenderer_VisibleChunkFirst(t *testing.T) {
	clock := newFakeClock()
	l := world.NewLevel(64, 16, 16, 1)
	r := NewLevelRenderer(l, Options{ChunkSize: 16, Clock: clock.Now})
	rebuildAll(t, r)

	inside, _ := r.ChunkAt(0, 0, 0)
	outside, _ := r.ChunkAt(3, 0, 0)
	inside.MarkDirty()
	outside.MarkDirty()

	cam := NewCamera(1)
	cam.FovY = 30
	cam.Eye = vec.Vec3Float{X: 8, Y: 8, Z: 40}
	frustum := cam.Frustum()
	require.True(t, frustum.IsVisible(inside.Box))
	require.False(t, frustum.IsVisible(outside.Box))

	// Наблюдатель для расстояния ближе к невидимому чанку
	r.RebuildCap = 1
	stats := r.UpdateDirtyChunks(vec.Vec3Float{X: 56, Y: 8, Z: 8}, frustum)

	assert.Equal(t, 1, stats.Rebuilt)
	assert.False(t, inside.IsDirty())
	assert.True(t, outside.IsDirty())
}

func TestLevelRenderer_RenderCullsInvisible(t *testing.T) {
	l := world.NewLevel(64, 16, 16, 1)
	for x := 0; x < 64; x++ {
		l.SetBlock(x, 2, 2, block.RockBlockID)
	}
	r := NewLevelRenderer(l, Options{ChunkSize: 16})
	rebuildAll(t, r)

	sink := newCollectSink()
	assert.Equal(t, 4, r.Render(LayerLit, nil, sink))

	cam := NewCamera(1)
	cam.FovY = 30
	cam.Eye = vec.Vec3Float{X: 8, Y: 8, Z: 40}

	// Виден первый чанк и край второго, дальние два отсечены
	sink = newCollectSink()
	assert.Equal(t, 2, r.Render(LayerLit, cam.Frustum(), sink))
	assert.Len(t, sink.meshes[LayerLit], 2)
}
