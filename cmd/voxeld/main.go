package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/annel0/voxel-engine/internal/config"
	"github.com/annel0/voxel-engine/internal/engine"
	"github.com/annel0/voxel-engine/internal/logging"
	"github.com/annel0/voxel-engine/internal/observability"
	"github.com/annel0/voxel-engine/internal/render"
	"github.com/annel0/voxel-engine/internal/storage"

	_ "github.com/annel0/voxel-engine/internal/world/block/implementations"
)

func main() {
	var (
		configPath = flag.String("config", "", "Path to YAML config (default: $VOXEL_CONFIG)")
		seed       = flag.Int64("seed", 0, "World seed override (0 keeps config value)")
		generator  = flag.String("generator", "", "Terrain generator override: midpoint, perlin")
		dataPath   = flag.String("data", "", "Storage directory override")
		logLevel   = flag.String("log-level", "", "Log level override: trace, debug, info, warn, error")
	)
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("❌ Ошибка загрузки конфигурации: %v", err)
	}
	if *seed != 0 {
		cfg.World.Seed = *seed
	}
	if *generator != "" {
		cfg.World.Generator = *generator
	}
	if *dataPath != "" {
		cfg.Storage.Path = *dataPath
	}
	if *logLevel != "" {
		cfg.Log.Level = *logLevel
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("❌ Некорректная конфигурация: %v", err)
	}

	level, err := logging.ParseLevel(cfg.Log.Level)
	if err != nil {
		log.Fatalf("❌ %v", err)
	}
	if err := logging.InitDefaultLogger(cfg.Log.Dir, level); err != nil {
		log.Fatalf("❌ Ошибка инициализации логирования: %v", err)
	}
	defer logging.CloseDefaultLogger()

	manager := logging.GetLoggerManager()
	if err := manager.ApplyLevels(cfg.Log.Components); err != nil {
		log.Fatalf("❌ Некорректные уровни логирования: %v", err)
	}
	defer manager.CloseAll()
	if levels := manager.Levels(); len(levels) > 0 {
		logging.Debug("Уровни компонентов: %v", levels)
	}

	logging.Info("🎮 Запуск voxeld (мир %dx%dx%d, seed=%d, генератор %s)",
		cfg.World.Width, cfg.World.Height, cfg.World.Depth, cfg.World.Seed, cfg.World.Generator)

	// Канал для получения сигналов ОС
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTelemetry, err := observability.InitTelemetry(ctx, cfg.Telemetry.ServiceName, cfg.Telemetry.Enabled)
	if err != nil {
		logging.Error("❌ Ошибка инициализации OpenTelemetry: %v", err)
		os.Exit(1)
	}
	defer func() {
		if err := shutdownTelemetry(context.Background()); err != nil {
			logging.Warn("Ошибка остановки OpenTelemetry: %v", err)
		}
	}()

	store, err := storage.Open(storage.Backend(cfg.Storage.Backend), cfg.Storage.Path)
	if err != nil {
		logging.Error("❌ Ошибка открытия хранилища %s: %v", cfg.Storage.Path, err)
		os.Exit(1)
	}
	defer store.Close()

	eng, err := engine.New(cfg, store)
	if err != nil {
		logging.Error("❌ Ошибка создания движка: %v", err)
		os.Exit(1)
	}

	if cfg.Metrics.Enabled {
		go func() {
			if err := eng.Metrics.Serve(ctx, cfg.Metrics.Addr); err != nil {
				logging.Error("Ошибка Prometheus HTTP сервера: %v", err)
			}
		}()
	}

	// Без GPU меши только подсчитываются
	var quads int
	sink := render.MeshSinkFunc(func(layer int, mesh *render.Mesh) {
		quads += mesh.QuadCount()
	})

	logging.Info("✅ Движок запущен, Ctrl+C для остановки")
	if err := eng.Run(ctx, sink); err != nil {
		logging.Error("❌ Ошибка цикла движка: %v", err)
	}

	logging.Info("📡 Завершение работы, сохраняем мир...")
	if err := eng.Save(); err != nil {
		logging.Error("❌ Ошибка сохранения мира: %v", err)
	}
	logging.Debug("Отправлено квадов за сессию: %d", quads)
	logging.Info("👋 voxeld остановлен")
}
