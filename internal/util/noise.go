package util

import (
	"github.com/aquilax/go-perlin"
)

// PerlinField строит карту высот из шума Перлина в том же диапазоне,
// что и фильтр смещения средней точки (около 128 +- 128).
type PerlinField struct {
	noise *perlin.Perlin
	scale float64
	shift float64
}

// NewPerlinField создаёт поле шума с указанным сидом.
// scale задаёт число клеток мира на период шума, shift смещает выборку,
// чтобы несколько полей с одним сидом не совпадали.
func NewPerlinField(seed int64, scale, shift float64) *PerlinField {
	alpha := 2.0  // Сглаживание шума
	beta := 2.0   // Частота шума
	n := int32(3) // Количество октав
	if scale <= 0 {
		scale = 64
	}
	return &PerlinField{
		noise: perlin.NewPerlin(alpha, beta, n, seed),
		scale: scale,
		shift: shift,
	}
}

// Noise2D возвращает значение шума для координат (от 0 до 1)
func (p *PerlinField) Noise2D(x, y float64) float64 {
	// Получаем значение шума (от -1 до 1)
	noise := p.noise.Noise2D(x/p.scale+p.shift, y/p.scale+p.shift)

	// Преобразуем в диапазон от 0 до 1
	v := (noise + 1.0) / 2.0
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Read возвращает поле width*height со значениями от 0 до 255
func (p *PerlinField) Read(width, height int) []int {
	result := make([]int, width*height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			result[x+y*width] = int(p.Noise2D(float64(x), float64(y)) * 255)
		}
	}
	return result
}
