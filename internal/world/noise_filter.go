package world

import (
	"fmt"
	"math/rand"
)

// fuzziness множитель начальных значений сетки
const fuzziness = 16

// NoiseFilter генерирует карту высот методом смещения средней точки
// на торе: края поля склеиваются, поэтому карта бесшовна.
type NoiseFilter struct {
	// Octave задаёт шаг начальной сетки: width >> Octave
	Octave int
	rng    *rand.Rand
}

// NewNoiseFilter создаёт фильтр с указанным источником случайности.
// Один источник можно передавать нескольким фильтрам подряд.
func NewNoiseFilter(octave int, rng *rand.Rand) *NoiseFilter {
	return &NoiseFilter{Octave: octave, rng: rng}
}

// Read возвращает поле width*height со значениями около 128.
// Поле должно быть квадратным со стороной, равной степени двойки.
func (f *NoiseFilter) Read(width, height int) []int {
	if width <= 0 || width != height || width&(width-1) != 0 {
		panic(fmt.Sprintf("world: noise field must be square power of two, got %dx%d", width, height))
	}
	if width>>f.Octave < 1 {
		panic(fmt.Sprintf("world: octave %d too large for width %d", f.Octave, width))
	}

	rng := f.rng
	table := make([]int, width*height)

	step := width >> f.Octave
	for y := 0; y < height; y += step {
		for x := 0; x < width; x += step {
			table[x+y*width] = (rng.Intn(256) - 128) * fuzziness
		}
	}

	for step := width >> f.Octave; step > 1; step /= 2 {
		amp := 256 * (step << f.Octave)
		half := step / 2

		// центры квадратов
		for y := 0; y < height; y += step {
			for x := 0; x < width; x += step {
				v := table[x%width+y%height*width]
				vx := table[(x+step)%width+y%height*width]
				vy := table[x%width+(y+step)%height*width]
				vxy := table[(x+step)%width+(y+step)%height*width]

				table[x+half+(y+half)*width] = (v+vy+vx+vxy)/4 + rng.Intn(amp*2) - amp
			}
		}

		// середины рёбер
		for y := 0; y < height; y += step {
			for x := 0; x < width; x += step {
				v := table[x+y*width]
				vx := table[(x+step)%width+y*width]
				vy := table[x+(y+step)%width*width]
				hxPos := table[((x+half)&(width-1))+((y+half-step)&(height-1))*width]
				hyPos := table[((x+half-step)&(width-1))+((y+half)&(height-1))*width]
				center := table[(x+half)%width+(y+half)%height*width]

				mx := (v+vx+center+hxPos)/4 + rng.Intn(amp*2) - amp
				my := (v+vy+center+hyPos)/4 + rng.Intn(amp*2) - amp

				table[x+half+y*width] = mx
				table[x+(y+half)*width] = my
			}
		}
	}

	result := make([]int, width*height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			result[x+y*width] = table[x%width+y%height*width]/512 + 128
		}
	}
	return result
}
