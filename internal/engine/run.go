package engine

import (
	"context"
	"time"

	"github.com/annel0/voxel-engine/internal/render"
)

// Run крутит цикл кадров до отмены ctx: таймер отдаёт число тиков,
// затем кадр перестраивает чанки и отправляет меши в sink.
// Раз в секунду пишет строку статистики.
func (e *Engine) Run(ctx context.Context, sink render.MeshSink) error {
	frameTicker := time.NewTicker(time.Second / time.Duration(e.cfg.Render.FrameRate))
	defer frameTicker.Stop()
	statsTicker := time.NewTicker(time.Second)
	defer statsTicker.Stop()

	timer := NewTimer(float64(e.cfg.Sim.TickRate), nil)
	frames := 0
	lastRebuilds := e.Renderer.TotalRebuilds()

	for {
		select {
		case <-ctx.Done():
			return nil

		case <-frameTicker.C:
			timer.Advance()
			for i := 0; i < timer.Ticks; i++ {
				e.Tick(ctx)
			}
			e.RenderFrame(ctx, timer.Partial, sink)
			frames++

		case <-statsTicker.C:
			rebuilds := e.Renderer.TotalRebuilds()
			e.logStats(frames, rebuilds-lastRebuilds)
			frames = 0
			lastRebuilds = rebuilds
		}
	}
}

// logStats выводит fps, перестройки чанков и показатели процесса
func (e *Engine) logStats(frames int, rebuilds uint64) {
	dirty := len(e.Renderer.DirtyChunks())
	entities := e.Entities.Count()

	if e.proc == nil {
		e.log.Info("%d fps, %d chunk updates, %d dirty, %d entities", frames, rebuilds, dirty, entities)
		return
	}

	mem, _ := e.proc.MemoryMB()
	cpu, _ := e.proc.CPUPercent()
	e.log.Info("%d fps, %d chunk updates, %d dirty, %d entities, %.1f MB, %.1f%% CPU, uptime %s",
		frames, rebuilds, dirty, entities, mem, cpu, e.proc.Uptime())
}
