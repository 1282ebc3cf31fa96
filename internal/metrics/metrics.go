package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/annel0/voxel-engine/internal/logging"
	"github.com/annel0/voxel-engine/internal/render"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// EngineMetrics инкапсулирует Prometheus-метрики движка.
// Метрики регистрируются в собственном реестре, поэтому несколько движков
// (например, в тестах) не конфликтуют в глобальном регистре.
type EngineMetrics struct {
	registry *prometheus.Registry

	rebuilds      prometheus.Counter
	dirtyChunks   prometheus.Gauge
	blockChanges  prometheus.Counter
	lightChanges  prometheus.Counter
	allChanges    prometheus.Counter
	ticks         prometheus.Counter
	randomTicks   prometheus.Counter
	entities      prometheus.Gauge
	frameDuration prometheus.Histogram
}

// NewEngineMetrics создаёт метрики и регистрирует их в новом реестре
func NewEngineMetrics() *EngineMetrics {
	m := &EngineMetrics{
		registry: prometheus.NewRegistry(),
		rebuilds: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "voxel",
			Name:      "chunk_rebuilds_total",
			Help:      "Общее число перестроенных чанков.",
		}),
		dirtyChunks: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "voxel",
			Name:      "dirty_chunks",
			Help:      "Грязные чанки в начале последнего кадра.",
		}),
		blockChanges: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "voxel",
			Name:      "block_changes_total",
			Help:      "Изменения блоков мира.",
		}),
		lightChanges: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "voxel",
			Name:      "light_column_changes_total",
			Help:      "Изменения глубины освещения колонок.",
		}),
		allChanges: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "voxel",
			Name:      "world_reloads_total",
			Help:      "Полные перезагрузки мира (генерация или загрузка).",
		}),
		ticks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "voxel",
			Name:      "ticks_total",
			Help:      "Выполненные тики симуляции.",
		}),
		randomTicks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "voxel",
			Name:      "random_block_ticks_total",
			Help:      "Случайные тики блоков.",
		}),
		entities: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "voxel",
			Name:      "entities",
			Help:      "Живые сущности.",
		}),
		frameDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "voxel",
			Name:      "chunk_update_seconds",
			Help:      "Длительность перестроения грязных чанков за кадр.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 8),
		}),
	}

	m.registry.MustRegister(
		m.rebuilds, m.dirtyChunks, m.blockChanges, m.lightChanges, m.allChanges,
		m.ticks, m.randomTicks, m.entities, m.frameDuration,
	)
	return m
}

// Registry возвращает реестр метрик
func (m *EngineMetrics) Registry() *prometheus.Registry {
	return m.registry
}

// BlockChanged реализует world.Listener
func (m *EngineMetrics) BlockChanged(x, y, z int) {
	m.blockChanges.Inc()
}

// LightColumnChanged реализует world.Listener
func (m *EngineMetrics) LightColumnChanged(x, z, minY, maxY int) {
	m.lightChanges.Inc()
}

// AllChanged реализует world.Listener
func (m *EngineMetrics) AllChanged() {
	m.allChanges.Inc()
}

// ObserveFrame учитывает статистику кадра
func (m *EngineMetrics) ObserveFrame(stats render.FrameStats) {
	m.dirtyChunks.Set(float64(stats.Dirty))
	m.rebuilds.Add(float64(stats.Rebuilt))
	m.frameDuration.Observe(stats.Duration.Seconds())
}

// ObserveTick учитывает тик симуляции
func (m *EngineMetrics) ObserveTick(randomTicks, entities int) {
	m.ticks.Inc()
	m.randomTicks.Add(float64(randomTicks))
	m.entities.Set(float64(entities))
}

// Handler возвращает HTTP-обработчик /metrics для реестра движка
func (m *EngineMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Serve запускает HTTP-эндпоинт Prometheus и блокируется до отмены ctx
func (m *EngineMetrics) Serve(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())

	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	logging.Info("📈 Prometheus /metrics доступен по адресу %s", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
