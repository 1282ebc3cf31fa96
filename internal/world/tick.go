package world

import "github.com/annel0/voxel-engine/internal/world/block"

// Tick выполняет случайные тики блоков: выбирает Volume()/RandomTickDivisor
// случайных позиций и вызывает правило тика их типа.
// Выборка вероятностная и не обходит мир целиком. Возвращает число выборок.
func (l *Level) Tick() int {
	divisor := l.RandomTickDivisor
	if divisor <= 0 {
		divisor = DefaultRandomTickDivisor
	}
	ticks := l.Volume() / divisor

	for i := 0; i < ticks; i++ {
		x := l.rng.Intn(l.Width)
		y := l.rng.Intn(l.Depth)
		z := l.rng.Intn(l.Height)

		t, ok := block.Get(l.GetBlock(x, y, z))
		if ok && t.NeedsTick() {
			t.OnTick(l, x, y, z, l.rng)
		}
	}
	return ticks
}
