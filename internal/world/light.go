package world

// Яркость освещённой и затенённой стороны
const (
	BrightnessLit    float32 = 1.0
	BrightnessShadow float32 = 0.8
)

// RecomputeLightColumns пересчитывает глубину света для прямоугольника колонок
// [x0, x0+w) x [z0, z0+h). Колонка сканируется сверху вниз до первого блока,
// перекрывающего свет; его Y (или 0) становится новой глубиной.
// При изменении слушатели получают диапазон между старой и новой глубиной.
func (l *Level) RecomputeLightColumns(x0, z0, w, h int) {
	for x := x0; x < x0+w; x++ {
		for z := z0; z < z0+h; z++ {
			if x < 0 || z < 0 || x >= l.Width || z >= l.Height {
				continue
			}

			prev := l.lightDepths[x+z*l.Width]

			depth := l.Depth - 1
			for depth > 0 && !l.IsLightBlocker(x, depth, z) {
				depth--
			}

			l.lightDepths[x+z*l.Width] = depth

			if prev != depth {
				l.notifyLightColumnChanged(x, z, min(prev, depth), max(prev, depth))
			}
		}
	}
}

// LightDepth возвращает глубину света колонки; вне мира 0
func (l *Level) LightDepth(x, z int) int {
	if x < 0 || z < 0 || x >= l.Width || z >= l.Height {
		return 0
	}
	return l.lightDepths[x+z*l.Width]
}

// IsLit сообщает, освещена ли позиция солнцем. Вне мира всегда true.
func (l *Level) IsLit(x, y, z int) bool {
	if !l.InBounds(x, y, z) {
		return true
	}
	return y >= l.lightDepths[x+z*l.Width]
}

// Brightness возвращает множитель яркости для позиции
func (l *Level) Brightness(x, y, z int) float32 {
	if l.IsLit(x, y, z) {
		return BrightnessLit
	}
	return BrightnessShadow
}
