package engine

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/annel0/voxel-engine/internal/config"
	"github.com/annel0/voxel-engine/internal/logging"
	"github.com/annel0/voxel-engine/internal/metrics"
	"github.com/annel0/voxel-engine/internal/observability"
	"github.com/annel0/voxel-engine/internal/render"
	"github.com/annel0/voxel-engine/internal/storage"
	"github.com/annel0/voxel-engine/internal/world"
	"github.com/annel0/voxel-engine/internal/world/block"
	"github.com/annel0/voxel-engine/internal/world/entity"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// DefaultReach дальность выбора блока взглядом
const DefaultReach = 3.0

// Option настраивает Engine
type Option func(*Engine)

// WithClock подменяет часы планировщика чанков
func WithClock(clock func() time.Time) Option {
	return func(e *Engine) { e.clock = clock }
}

// WithMetrics использует переданные метрики вместо новых
func WithMetrics(m *metrics.EngineMetrics) Option {
	return func(e *Engine) { e.Metrics = m }
}

// FrameResult итог одного кадра
type FrameResult struct {
	Stats  render.FrameStats
	Chunks [2]int // отправлено чанков по слоям
	Hit    *world.HitResult
}

// Engine связывает мир, рендерер чанков, сущности и наблюдаемость.
// Не потокобезопасен: Tick и RenderFrame вызываются из одного цикла.
type Engine struct {
	Level    *world.Level
	Renderer *render.LevelRenderer
	Entities *entity.EntityManager
	Player   *entity.Player
	Camera   *render.Camera
	Metrics  *metrics.EngineMetrics

	// Selected блок для установки
	Selected block.BlockID

	cfg    *config.Config
	store  world.LevelStore
	rng    *rand.Rand
	clock  func() time.Time
	tracer trace.Tracer
	log    *logging.Logger
	proc   *metrics.ProcessStats

	hit       *world.HitResult
	tickCount uint64
}

// New создает движок: загружает мир из store или генерирует новый.
// store == nil означает мир без сохранения.
func New(cfg *config.Config, store world.LevelStore, opts ...Option) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("engine: %w", err)
	}

	e := &Engine{
		Selected: block.RockBlockID,
		cfg:      cfg,
		store:    store,
		rng:      rand.New(rand.NewSource(cfg.World.Seed)),
		clock:    time.Now,
		tracer:   observability.Tracer(),
		log:      logging.GetEngineLogger(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.Metrics == nil {
		e.Metrics = metrics.NewEngineMetrics()
	}

	w := cfg.World
	e.Level = world.NewLevel(w.Width, w.Height, w.Depth, w.Seed)
	e.Level.RandomTickDivisor = cfg.Sim.RandomTickDivisor
	e.Level.AddListener(e.Metrics)

	e.loadOrGenerate()

	e.Renderer = render.NewLevelRenderer(e.Level, render.Options{
		ChunkSize:   cfg.Render.ChunkSize,
		RebuildCap:  cfg.Render.RebuildCap,
		DirtyBucket: cfg.Render.DirtyBucket,
		Clock:       e.clock,
	})

	e.Camera = render.NewCamera(cfg.Render.Aspect)
	e.Entities = entity.NewEntityManager()
	e.Player = entity.NewPlayer(e.Level, e.rng)
	e.Entities.Spawn(e.Player)
	for i := 0; i < cfg.Sim.Zombies; i++ {
		e.SpawnZombie(float64(w.Width)/2, 0, float64(w.Height)/2+1).ResetPosition()
	}

	if proc, err := metrics.NewProcessStats(); err != nil {
		e.log.Warn("Статистика процесса недоступна: %v", err)
	} else {
		e.proc = proc
	}

	nx, ny, nz := e.Renderer.ChunkCounts()
	e.log.Info("🌍 Мир %dx%dx%d, чанков %dx%dx%d, сущностей %d",
		w.Width, w.Height, w.Depth, nx, ny, nz, e.Entities.Count())
	return e, nil
}

// loadOrGenerate загружает мир; при любой ошибке генерирует новый
func (e *Engine) loadOrGenerate() {
	if e.store != nil {
		err := e.Level.Load(e.store)
		if err == nil {
			e.log.Info("💾 Мир загружен")
			return
		}
		if errors.Is(err, storage.ErrNotFound) {
			e.log.Info("Сохранённый мир не найден, генерируем новый")
		} else {
			e.log.Warn("⚠️ Не удалось загрузить мир, генерируем новый: %v", err)
		}
	}

	start := time.Now()
	world.NewGenerator(e.cfg.World.Seed, world.GeneratorKind(e.cfg.World.Generator)).Generate(e.Level)
	e.log.Info("Мир сгенерирован (%s) за %v", e.cfg.World.Generator, time.Since(start))
}

// Tick выполняет один тик симуляции: случайные тики блоков и сущности
func (e *Engine) Tick(ctx context.Context) {
	_, span := e.tracer.Start(ctx, "engine.tick")
	defer span.End()

	randomTicks := e.Level.Tick()
	removed := e.Entities.Tick()
	e.tickCount++

	span.SetAttributes(
		attribute.Int("voxel.random_ticks", randomTicks),
		attribute.Int("voxel.entities_removed", removed),
	)
	e.Metrics.ObserveTick(randomTicks, e.Entities.Count())
}

// TickCount возвращает число выполненных тиков
func (e *Engine) TickCount() uint64 {
	return e.tickCount
}

// UpdateCamera ставит камеру в глаза игрока с интерполяцией между тиками
func (e *Engine) UpdateCamera(partial float64) *render.Frustum {
	e.Camera.Eye = e.Player.Interpolated(partial)
	e.Camera.Yaw = e.Player.Yaw
	e.Camera.Pitch = e.Player.Pitch
	return e.Camera.Frustum()
}

// Pick обновляет выбранный взглядом блок
func (e *Engine) Pick() (world.HitResult, bool) {
	hit, ok := e.Level.Pick(e.Player.Viewer(), DefaultReach)
	if !ok {
		e.hit = nil
		return world.HitResult{}, false
	}
	e.hit = &hit
	return hit, true
}

// Hit возвращает последний результат Pick
func (e *Engine) Hit() (world.HitResult, bool) {
	if e.hit == nil {
		return world.HitResult{}, false
	}
	return *e.hit, true
}

// RenderFrame перестраивает грязные чанки в пределах бюджета кадра
// и отправляет в sink меши видимых чанков обоих слоёв.
func (e *Engine) RenderFrame(ctx context.Context, partial float64, sink render.MeshSink) FrameResult {
	_, span := e.tracer.Start(ctx, "engine.render_frame")
	defer span.End()

	frustum := e.UpdateCamera(partial)
	e.Pick()

	res := FrameResult{Hit: e.hit}
	res.Stats = e.Renderer.UpdateDirtyChunks(e.Camera.Eye, frustum)
	res.Chunks[render.LayerLit] = e.Renderer.Render(render.LayerLit, frustum, sink)
	res.Chunks[render.LayerShadow] = e.Renderer.Render(render.LayerShadow, frustum, sink)

	span.SetAttributes(
		attribute.Int("voxel.dirty_chunks", res.Stats.Dirty),
		attribute.Int("voxel.rebuilt_chunks", res.Stats.Rebuilt),
	)
	e.Metrics.ObserveFrame(res.Stats)
	return res
}

// BreakBlock удаляет выбранный блок и рассыпает его частицами
func (e *Engine) BreakBlock() bool {
	hit, ok := e.Hit()
	if !ok {
		return false
	}

	prev := e.Level.GetBlock(hit.X, hit.Y, hit.Z)
	if !e.Level.SetBlock(hit.X, hit.Y, hit.Z, block.AirBlockID) {
		return false
	}

	if t, ok := block.Get(prev); ok {
		for _, p := range entity.SpawnBreakParticles(e.Level, e.rng, hit.X, hit.Y, hit.Z, t.TextureID) {
			e.Entities.Spawn(p)
		}
	}
	e.hit = nil
	return true
}

// PlaceBlock ставит выбранный блок на соседнюю с гранью попадания клетку
func (e *Engine) PlaceBlock() bool {
	hit, ok := e.Hit()
	if !ok {
		return false
	}

	p := hit.Adjacent()
	placed := e.Level.SetBlock(p.X, p.Y, p.Z, e.Selected)
	if placed {
		e.hit = nil
	}
	return placed
}

// SpawnZombie добавляет зомби в указанную точку
func (e *Engine) SpawnZombie(x, y, z float64) *entity.Zombie {
	zombie := entity.NewZombie(e.Level, e.rng, x, y, z)
	e.Entities.Spawn(zombie)
	return zombie
}

// Save сохраняет мир; без хранилища ничего не делает
func (e *Engine) Save() error {
	if e.store == nil {
		return nil
	}
	if err := e.Level.Save(e.store); err != nil {
		return err
	}
	e.log.Info("💾 Мир сохранён")
	return nil
}
