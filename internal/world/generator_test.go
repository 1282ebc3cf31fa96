package world

import (
	"testing"

	"github.com/annel0/voxel-engine/internal/world/block"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerator_HeightmapDeterministic(t *testing.T) {
	for _, kind := range []GeneratorKind{GeneratorMidpoint, GeneratorPerlin} {
		t.Run(string(kind), func(t *testing.T) {
			a := NewGenerator(1234, kind).Heightmap(32, 32, 64)
			b := NewGenerator(1234, kind).Heightmap(32, 32, 64)
			assert.Equal(t, a, b)

			c := NewGenerator(4321, kind).Heightmap(32, 32, 64)
			assert.NotEqual(t, a, c)
		})
	}
}

func TestGenerator_ColumnLayers(t *testing.T) {
	for _, kind := range []GeneratorKind{GeneratorMidpoint, GeneratorPerlin} {
		t.Run(string(kind), func(t *testing.T) {
			gen := NewGenerator(77, kind)
			l := NewLevel(32, 32, 64, 1)
			rec := &recorder{}
			l.AddListener(rec)

			gen.Generate(l)
			require.Equal(t, 1, rec.all)

			heights := gen.Heightmap(32, 32, 64)
			for x := 0; x < l.Width; x++ {
				for z := 0; z < l.Height; z++ {
					top := heights[x+z*l.Width]
					for y := 0; y < l.Depth; y++ {
						id := l.GetBlock(x, y, z)
						switch {
						case y > top:
							require.Equal(t, block.AirBlockID, id, "(%d,%d,%d)", x, y, z)
						case y == top:
							require.Equal(t, block.GrassBlockID, id, "(%d,%d,%d)", x, y, z)
						default:
							require.Contains(t, []block.BlockID{block.DirtBlockID, block.RockBlockID}, id)
						}
					}
					if top >= 0 && top < l.Depth {
						assert.Equal(t, top, l.LightDepth(x, z))
					}
				}
			}
		})
	}
}

func TestGenerator_SameSeedSameWorld(t *testing.T) {
	a := NewLevel(16, 16, 32, 1)
	b := NewLevel(16, 16, 32, 2)
	NewGenerator(9, GeneratorMidpoint).Generate(a)
	NewGenerator(9, GeneratorMidpoint).Generate(b)
	assert.Equal(t, a.Blocks(), b.Blocks())
}

func TestGenerator_UnknownKindPanics(t *testing.T) {
	l := NewLevel(8, 8, 8, 1)
	assert.Panics(t, func() { NewGenerator(1, "fractal").Generate(l) })
}
