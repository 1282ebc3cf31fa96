package world

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/annel0/voxel-engine/internal/phys"
	"github.com/annel0/voxel-engine/internal/world/block"
	_ "github.com/annel0/voxel-engine/internal/world/block/implementations"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recorder запоминает все уведомления мира
type recorder struct {
	blocks  [][3]int
	columns [][4]int
	all     int
}

func (r *recorder) BlockChanged(x, y, z int) {
	r.blocks = append(r.blocks, [3]int{x, y, z})
}

func (r *recorder) LightColumnChanged(x, z, minY, maxY int) {
	r.columns = append(r.columns, [4]int{x, z, minY, maxY})
}

func (r *recorder) AllChanged() {
	r.all++
}

// memStore хранит дамп в памяти
type memStore struct {
	data    []byte
	loadErr error
}

func (m *memStore) Load(dst []byte) error {
	if m.loadErr != nil {
		return m.loadErr
	}
	if len(m.data) != len(dst) {
		return errors.New("size mismatch")
	}
	copy(dst, m.data)
	return nil
}

func (m *memStore) Save(src []byte) error {
	m.data = append([]byte(nil), src...)
	return nil
}

// expectedLightDepth считает глубину света колонки полным перебором
func expectedLightDepth(l *Level, x, z int) int {
	for y := l.Depth - 1; y > 0; y-- {
		if block.BlocksLight(l.GetBlock(x, y, z)) {
			return y
		}
	}
	return 0
}

func TestNewLevel_InvalidSizePanics(t *testing.T) {
	assert.Panics(t, func() { NewLevel(0, 4, 4, 1) })
	assert.Panics(t, func() { NewLevel(4, -1, 4, 1) })
	assert.Panics(t, func() { NewLevel(4, 4, 0, 1) })
}

func TestLevel_SetGetRoundTrip(t *testing.T) {
	l := NewLevel(4, 5, 6, 1)

	for x := 0; x < l.Width; x++ {
		for y := 0; y < l.Depth; y++ {
			for z := 0; z < l.Height; z++ {
				id := block.BlockID((x+y+z)%4 + 1)
				require.True(t, l.SetBlock(x, y, z, id))
				require.Equal(t, id, l.GetBlock(x, y, z), "блок (%d,%d,%d)", x, y, z)
			}
		}
	}
}

func TestLevel_OutOfBoundsDefaults(t *testing.T) {
	l := NewLevel(4, 4, 4, 1)
	for x := 0; x < 4; x++ {
		for z := 0; z < 4; z++ {
			l.SetBlock(x, 0, z, block.RockBlockID)
		}
	}

	outside := [][3]int{
		{-1, 0, 0}, {0, -1, 0}, {0, 0, -1},
		{4, 0, 0}, {0, 4, 0}, {0, 0, 4},
		{-100, 200, 7},
	}
	for _, p := range outside {
		assert.Equal(t, block.AirBlockID, l.GetBlock(p[0], p[1], p[2]))
		assert.False(t, l.IsSolid(p[0], p[1], p[2]))
		assert.True(t, l.IsLit(p[0], p[1], p[2]))
		assert.Equal(t, BrightnessLit, l.Brightness(p[0], p[1], p[2]))
		assert.False(t, l.SetBlock(p[0], p[1], p[2], block.RockBlockID))
	}
}

func TestLevel_SetBlockNotifications(t *testing.T) {
	l := NewLevel(4, 4, 8, 1)
	rec := &recorder{}
	l.AddListener(rec)

	require.True(t, l.SetBlock(1, 5, 2, block.RockBlockID))
	assert.Equal(t, [][3]int{{1, 5, 2}}, rec.blocks)
	assert.Equal(t, [][4]int{{1, 2, 0, 5}}, rec.columns)

	// Блок под освещённым потолком не сдвигает глубину света
	require.True(t, l.SetBlock(1, 2, 2, block.DirtBlockID))
	assert.Len(t, rec.blocks, 2)
	assert.Len(t, rec.columns, 1)

	// Повторная запись того же ID ничего не меняет
	assert.False(t, l.SetBlock(1, 2, 2, block.DirtBlockID))
	assert.Len(t, rec.blocks, 2)

	// Удаление верхнего блока опускает свет до нижнего
	require.True(t, l.SetBlock(1, 5, 2, block.AirBlockID))
	assert.Equal(t, [4]int{1, 2, 2, 5}, rec.columns[1])
	assert.Equal(t, 2, l.LightDepth(1, 2))
}

func TestLevel_LightingInvariant(t *testing.T) {
	l := NewLevel(6, 5, 10, 1)
	rng := rand.New(rand.NewSource(42))
	ids := []block.BlockID{block.AirBlockID, block.RockBlockID, block.DirtBlockID, block.BushBlockID}

	for i := 0; i < 2000; i++ {
		l.SetBlock(rng.Intn(l.Width), rng.Intn(l.Depth), rng.Intn(l.Height), ids[rng.Intn(len(ids))])
	}

	for x := 0; x < l.Width; x++ {
		for z := 0; z < l.Height; z++ {
			depth := expectedLightDepth(l, x, z)
			assert.Equal(t, depth, l.LightDepth(x, z), "колонка (%d,%d)", x, z)
			for y := 0; y < l.Depth; y++ {
				assert.Equal(t, y >= depth, l.IsLit(x, y, z))
			}
		}
	}
}

func TestLevel_BushDoesNotBlockLight(t *testing.T) {
	l := NewLevel(2, 2, 6, 1)
	l.SetBlock(0, 1, 0, block.GrassBlockID)
	l.SetBlock(0, 2, 0, block.BushBlockID)

	assert.Equal(t, 1, l.LightDepth(0, 0))
	assert.False(t, l.IsSolid(0, 2, 0))
	assert.True(t, l.IsLit(0, 1, 0))
	assert.False(t, l.IsLit(0, 0, 0))
	assert.Equal(t, BrightnessShadow, l.Brightness(0, 0, 0))
}

func TestLevel_GetCubes(t *testing.T) {
	l := NewLevel(8, 8, 8, 1)
	for x := 0; x < 8; x++ {
		for z := 0; z < 8; z++ {
			l.SetBlock(x, 0, z, block.RockBlockID)
		}
	}
	l.SetBlock(7, 5, 7, block.RockBlockID)

	box := phys.NewAABB(3.2, 1.0, 3.2, 3.8, 2.8, 3.8)
	cubes := l.GetCubes(box)

	// 3x3 пол вокруг бокса (расширение на один блок), далёкий блок не попадает
	assert.Len(t, cubes, 9)
	for _, c := range cubes {
		assert.Equal(t, 0.0, c.MinY)
		assert.Equal(t, 1.0, c.MaxY)
		assert.GreaterOrEqual(t, c.MinX, 2.0)
		assert.LessOrEqual(t, c.MaxX, 5.0)
	}

	// Область за пределами мира обрезается и не паникует
	assert.Empty(t, l.GetCubes(phys.NewAABB(-20, -20, -20, -10, -10, -10)))
}

func TestLevel_TickSpreadsAndRetreats(t *testing.T) {
	l := NewLevel(8, 8, 4, 1)
	l.SetRand(rand.New(rand.NewSource(7)))
	l.RandomTickDivisor = 1

	for x := 0; x < 8; x++ {
		for y := 0; y < 4; y++ {
			for z := 0; z < 8; z++ {
				l.SetBlock(x, y, z, block.GrassBlockID)
			}
		}
	}

	ticks := l.Tick()
	assert.Equal(t, l.Volume(), ticks)

	dirt := 0
	for x := 0; x < 8; x++ {
		for z := 0; z < 8; z++ {
			// Верхний слой освещён и остаётся травой
			assert.Equal(t, block.GrassBlockID, l.GetBlock(x, 3, z))
			for y := 0; y < 3; y++ {
				if l.GetBlock(x, y, z) == block.DirtBlockID {
					dirt++
				}
			}
		}
	}
	assert.Greater(t, dirt, 0, "трава в тени должна превращаться в землю")
}

func TestLevel_TickCount(t *testing.T) {
	l := NewLevel(16, 16, 16, 1)
	assert.Equal(t, 16*16*16/DefaultRandomTickDivisor, l.Tick())
}

func TestLevel_SaveLoad(t *testing.T) {
	src := NewLevel(8, 8, 8, 1)
	NewGenerator(3, GeneratorMidpoint).Generate(src)
	src.SetBlock(2, 7, 2, block.StoneBrickBlockID)

	store := &memStore{}
	require.NoError(t, src.Save(store))

	dst := NewLevel(8, 8, 8, 1)
	rec := &recorder{}
	dst.AddListener(rec)
	require.NoError(t, dst.Load(store))

	assert.Equal(t, src.Blocks(), dst.Blocks())
	assert.Equal(t, 1, rec.all)
	assert.Empty(t, rec.blocks)
	for x := 0; x < 8; x++ {
		for z := 0; z < 8; z++ {
			assert.Equal(t, src.LightDepth(x, z), dst.LightDepth(x, z))
		}
	}
}

func TestLevel_LoadFailureKeepsContent(t *testing.T) {
	l := NewLevel(4, 4, 4, 1)
	l.SetBlock(1, 1, 1, block.RockBlockID)
	before := l.Blocks()

	rec := &recorder{}
	l.AddListener(rec)

	err := l.Load(&memStore{loadErr: errors.New("missing")})
	require.Error(t, err)
	assert.Equal(t, before, l.Blocks())
	assert.Zero(t, rec.all)

	err = l.Load(&memStore{data: make([]byte, 3)})
	require.Error(t, err)
	assert.Equal(t, before, l.Blocks())
}

func TestListenerFuncs(t *testing.T) {
	l := NewLevel(4, 4, 4, 1)

	changed := 0
	l.AddListener(ListenerFuncs{OnBlockChanged: func(x, y, z int) { changed++ }})

	l.SetBlock(0, 3, 0, block.RockBlockID)
	l.SetBlock(0, 3, 0, block.AirBlockID)
	assert.Equal(t, 2, changed)
}
