package world

import (
	"fmt"
	"math/rand"

	"github.com/annel0/voxel-engine/internal/util"
	"github.com/annel0/voxel-engine/internal/world/block"
)

// GeneratorKind выбирает источник шума для карт высот
type GeneratorKind string

const (
	GeneratorMidpoint GeneratorKind = "midpoint" // смещение средней точки
	GeneratorPerlin   GeneratorKind = "perlin"   // шум Перлина
)

// HeightField источник двумерного поля значений около 0..255
type HeightField interface {
	Read(width, height int) []int
}

// Generator генерирует ландшафт мира
type Generator struct {
	Seed int64         // Сид для генерации шума
	Kind GeneratorKind // Источник карт высот
}

// NewGenerator создаёт новый генератор мира
func NewGenerator(seed int64, kind GeneratorKind) *Generator {
	if kind == "" {
		kind = GeneratorMidpoint
	}
	return &Generator{Seed: seed, Kind: kind}
}

// fields возвращает четыре поля: две высоты, обрывы и скалы
func (g *Generator) fields(width, height int) (h1, h2, cliff, rock []int) {
	// Один источник на все поля: поля различаются, но повторяемы для сида
	rng := rand.New(rand.NewSource(g.Seed))

	switch g.Kind {
	case GeneratorMidpoint:
		h1 = NewNoiseFilter(0, rng).Read(width, height)
		h2 = NewNoiseFilter(0, rng).Read(width, height)
	case GeneratorPerlin:
		h1 = util.NewPerlinField(g.Seed, 64, 0).Read(width, height)
		h2 = util.NewPerlinField(g.Seed+1, 64, 0.5).Read(width, height)
	default:
		panic(fmt.Sprintf("world: unknown generator kind %q", g.Kind))
	}

	var cliffSrc, rockSrc HeightField
	if g.Kind == GeneratorPerlin {
		cliffSrc = util.NewPerlinField(g.Seed+2, 32, 0.25)
		rockSrc = util.NewPerlinField(g.Seed+3, 32, 0.75)
	} else {
		cliffSrc = NewNoiseFilter(1, rng)
		rockSrc = NewNoiseFilter(1, rng)
	}
	cliff = cliffSrc.Read(width, height)
	rock = rockSrc.Read(width, height)
	return h1, h2, cliff, rock
}

// Heightmap возвращает высоту поверхности для каждой колонки (индекс x + z*Width)
func (g *Generator) Heightmap(width, height, depth int) []int {
	h1, h2, cliff, _ := g.fields(width, height)
	return surfaceHeights(h1, h2, cliff, depth)
}

func surfaceHeights(h1, h2, cliff []int, depth int) []int {
	out := make([]int, len(h1))
	for i := range h1 {
		second := h2[i]
		if cliff[i] < 128 {
			second = h1[i]
		}
		out[i] = max(h1[i], second)/8 + depth/3
	}
	return out
}

// Generate заполняет мир ландшафтом: трава на поверхности, земля под ней,
// скала ниже границы скального слоя, воздух выше поверхности.
// Затем пересчитывает свет и уведомляет слушателей о полной замене.
func (g *Generator) Generate(l *Level) {
	h1, h2, cliff, rockMap := g.fields(l.Width, l.Height)
	surface := surfaceHeights(h1, h2, cliff, l.Depth)

	for x := 0; x < l.Width; x++ {
		for z := 0; z < l.Height; z++ {
			column := x + z*l.Width
			top := surface[column]

			rockTop := rockMap[column]/8 + l.Depth/3
			if rockTop > top-2 {
				rockTop = top - 2
			}

			for y := 0; y < l.Depth; y++ {
				id := block.AirBlockID
				if y == top {
					id = block.GrassBlockID
				}
				if y < top {
					id = block.DirtBlockID
				}
				if y <= rockTop {
					id = block.RockBlockID
				}
				l.blocks[l.index(x, y, z)] = byte(id)
			}
		}
	}

	l.RecomputeLightColumns(0, 0, l.Width, l.Height)
	l.notifyAllChanged()
}
