package engine

import "time"

const (
	// maxTicksPerUpdate ограничение догоняющих тиков после долгой паузы
	maxTicksPerUpdate = 100
	// maxPassedTime больший интервал между кадрами не учитывается
	maxPassedTime = time.Second
)

// Timer переводит реальное время в целое число тиков симуляции
// и остаток для интерполяции между тиками.
type Timer struct {
	TicksPerSecond float64
	TimeScale      float64

	Ticks   int     // тиков к выполнению в этом кадре
	Partial float64 // доля следующего тика, 0..1

	clock    func() time.Time
	lastTime time.Time
}

// NewTimer создает таймер с частотой tps; clock == nil означает time.Now
func NewTimer(tps float64, clock func() time.Time) *Timer {
	if clock == nil {
		clock = time.Now
	}
	return &Timer{
		TicksPerSecond: tps,
		TimeScale:      1,
		clock:          clock,
		lastTime:       clock(),
	}
}

// Advance учитывает время с прошлого вызова и выставляет Ticks и Partial
func (t *Timer) Advance() {
	now := t.clock()
	passed := now.Sub(t.lastTime)
	t.lastTime = now

	if passed < 0 {
		passed = 0
	}
	if passed > maxPassedTime {
		passed = maxPassedTime
	}

	t.Partial += passed.Seconds() * t.TimeScale * t.TicksPerSecond
	t.Ticks = int(t.Partial)
	if t.Ticks > maxTicksPerUpdate {
		t.Ticks = maxTicksPerUpdate
	}
	t.Partial -= float64(t.Ticks)
}
