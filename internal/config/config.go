package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/annel0/voxel-engine/internal/logging"
	"gopkg.in/yaml.v3"
)

// Config корневая структура конфигурации движка
type Config struct {
	World     WorldConfig     `yaml:"world"`
	Render    RenderConfig    `yaml:"render"`
	Sim       SimConfig       `yaml:"sim"`
	Storage   StorageConfig   `yaml:"storage"`
	Metrics   MetricsConfig   `yaml:"metrics"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
	Log       LogConfig       `yaml:"log"`
}

type WorldConfig struct {
	Width     int    `yaml:"width"`
	Height    int    `yaml:"height"`
	Depth     int    `yaml:"depth"`
	Seed      int64  `yaml:"seed"`
	Generator string `yaml:"generator"`
}

type RenderConfig struct {
	ChunkSize   int           `yaml:"chunk_size"`
	RebuildCap  int           `yaml:"rebuild_cap"`
	DirtyBucket time.Duration `yaml:"dirty_bucket"`
	Aspect      float32       `yaml:"aspect"`
	FrameRate   int           `yaml:"frame_rate"`
}

type SimConfig struct {
	TickRate          int `yaml:"tick_rate"`
	RandomTickDivisor int `yaml:"random_tick_divisor"`
	Zombies           int `yaml:"zombies"`
}

type StorageConfig struct {
	Backend string `yaml:"backend"`
	Path    string `yaml:"path"`
}

type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Addr    string `yaml:"addr"`
}

type TelemetryConfig struct {
	Enabled     bool   `yaml:"enabled"`
	ServiceName string `yaml:"service_name"`
}

type LogConfig struct {
	Level string `yaml:"level"`
	Dir   string `yaml:"dir"`
	// Components уровни отдельных компонентов: engine, storage, ...
	Components map[string]string `yaml:"components"`
}

// Default возвращает конфигурацию по умолчанию
func Default() *Config {
	return &Config{
		World: WorldConfig{
			Width:     256,
			Height:    256,
			Depth:     64,
			Seed:      0,
			Generator: "midpoint",
		},
		Render: RenderConfig{
			ChunkSize:   16,
			RebuildCap:  8,
			DirtyBucket: 2 * time.Second,
			Aspect:      16.0 / 9.0,
			FrameRate:   60,
		},
		Sim: SimConfig{
			TickRate:          20,
			RandomTickDivisor: 400,
			Zombies:           10,
		},
		Storage: StorageConfig{
			Backend: "file",
			Path:    "data",
		},
		Metrics: MetricsConfig{
			Enabled: false,
			Addr:    ":2112",
		},
		Telemetry: TelemetryConfig{
			Enabled:     false,
			ServiceName: "voxeld",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Validate проверяет значения, которые иначе привели бы к панике в движке
func (c *Config) Validate() error {
	var errs []error

	if c.World.Width <= 0 || c.World.Height <= 0 || c.World.Depth <= 0 {
		errs = append(errs, fmt.Errorf("world: размеры должны быть положительными, получено %dx%dx%d",
			c.World.Width, c.World.Height, c.World.Depth))
	}
	switch c.World.Generator {
	case "midpoint":
		// Midpoint displacement работает только на квадратной карте со стороной 2^n,
		// а поля октавы 1 требуют стороны не меньше 2
		if c.World.Width < 2 || c.World.Width != c.World.Height || c.World.Width&(c.World.Width-1) != 0 {
			errs = append(errs, fmt.Errorf("world: генератор midpoint требует квадратный мир со стороной 2^n, получено %dx%d",
				c.World.Width, c.World.Height))
		}
	case "perlin":
	default:
		errs = append(errs, fmt.Errorf("world: неизвестный генератор %q", c.World.Generator))
	}

	if c.Render.ChunkSize < 0 {
		errs = append(errs, fmt.Errorf("render: chunk_size не может быть отрицательным"))
	}
	if c.Render.RebuildCap <= 0 {
		errs = append(errs, fmt.Errorf("render: rebuild_cap должен быть положительным"))
	}
	if c.Render.DirtyBucket <= 0 {
		errs = append(errs, fmt.Errorf("render: dirty_bucket должен быть положительным"))
	}
	if c.Render.Aspect <= 0 {
		errs = append(errs, fmt.Errorf("render: aspect должен быть положительным"))
	}

	if c.Render.FrameRate <= 0 {
		errs = append(errs, fmt.Errorf("render: frame_rate должен быть положительным"))
	}

	if c.Sim.TickRate <= 0 {
		errs = append(errs, fmt.Errorf("sim: tick_rate должен быть положительным"))
	}
	if c.Sim.RandomTickDivisor <= 0 {
		errs = append(errs, fmt.Errorf("sim: random_tick_divisor должен быть положительным"))
	}
	if c.Sim.Zombies < 0 {
		errs = append(errs, fmt.Errorf("sim: zombies не может быть отрицательным"))
	}

	switch c.Storage.Backend {
	case "file", "badger":
	default:
		errs = append(errs, fmt.Errorf("storage: неизвестный backend %q", c.Storage.Backend))
	}
	if c.Storage.Path == "" {
		errs = append(errs, fmt.Errorf("storage: path не задан"))
	}

	if c.Metrics.Enabled && c.Metrics.Addr == "" {
		errs = append(errs, fmt.Errorf("metrics: addr не задан"))
	}

	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("log: %w", err))
	}
	for component, level := range c.Log.Components {
		if _, err := logging.ParseLevel(level); err != nil {
			errs = append(errs, fmt.Errorf("log.components.%s: %w", component, err))
		}
	}

	return errors.Join(errs...)
}

// Load читает YAML файл конфигурации поверх значений по умолчанию.
// Если path == "", пытается прочитать из ENV VOXEL_CONFIG или возвращает Default().
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		path = os.Getenv("VOXEL_CONFIG")
		if path == "" {
			return cfg, nil // конфиг не задан — использовать дефолты
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("не удалось прочитать конфиг %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("ошибка разбора конфига %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("некорректный конфиг %s: %w", path, err)
	}
	return cfg, nil
}
