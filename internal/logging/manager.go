package logging

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"sync"
)

// LoggerManager раздаёт логгеры компонентов и помнит их уровни.
// Уровень можно задать до первого обращения к логгеру: он применится при создании.
type LoggerManager struct {
	mu      sync.RWMutex
	loggers map[string]*Logger
	levels  map[string]LogLevel
}

var (
	globalManager *LoggerManager
	managerOnce   sync.Once
)

func newLoggerManager() *LoggerManager {
	return &LoggerManager{
		loggers: make(map[string]*Logger),
		levels:  make(map[string]LogLevel),
	}
}

// GetLoggerManager возвращает глобальный менеджер логгеров
func GetLoggerManager() *LoggerManager {
	managerOnce.Do(func() {
		globalManager = newLoggerManager()
	})
	return globalManager
}

// GetLogger возвращает логгер компонента, создавая его при необходимости
func (lm *LoggerManager) GetLogger(component string) (*Logger, error) {
	lm.mu.RLock()
	logger, exists := lm.loggers[component]
	lm.mu.RUnlock()
	if exists {
		return logger, nil
	}

	lm.mu.Lock()
	defer lm.mu.Unlock()

	// Логгер мог появиться, пока ждали write lock
	if logger, exists := lm.loggers[component]; exists {
		return logger, nil
	}

	logger, err := NewLogger(component)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger for %s: %w", component, err)
	}
	if level, ok := lm.levels[component]; ok {
		logger.setLevels(level)
	}

	lm.loggers[component] = logger
	return logger, nil
}

// MustGetLogger возвращает логгер или консольный при ошибке создания файла
func (lm *LoggerManager) MustGetLogger(component string) *Logger {
	logger, err := lm.GetLogger(component)
	if err == nil {
		return logger
	}

	fallback := NewWriterLogger(component, os.Stdout, INFO)
	lm.mu.RLock()
	if level, ok := lm.levels[component]; ok {
		fallback.setLevels(level)
	}
	lm.mu.RUnlock()
	fallback.Warn("файл логов недоступен, пишем только в консоль: %v", err)
	return fallback
}

// SetLevel задаёт уровень компонента для существующего и будущих логгеров
func (lm *LoggerManager) SetLevel(component string, level LogLevel) {
	lm.mu.Lock()
	defer lm.mu.Unlock()

	lm.levels[component] = level
	if logger, exists := lm.loggers[component]; exists {
		logger.setLevels(level)
	}
}

// ApplyLevels разбирает уровни из конфигурации ("engine": "debug") и применяет их.
// Неверные значения пропускаются и возвращаются одной ошибкой.
func (lm *LoggerManager) ApplyLevels(levels map[string]string) error {
	var errs []error
	for component, raw := range levels {
		level, err := ParseLevel(raw)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", component, err))
			continue
		}
		lm.SetLevel(component, level)
	}
	return errors.Join(errs...)
}

// Levels возвращает заданные уровни компонентов в виде "компонент=УРОВЕНЬ", по алфавиту
func (lm *LoggerManager) Levels() []string {
	lm.mu.RLock()
	defer lm.mu.RUnlock()

	out := make([]string, 0, len(lm.levels))
	for component, level := range lm.levels {
		out = append(out, component+"="+level.String())
	}
	sort.Strings(out)
	return out
}

// CloseAll закрывает файлы всех логгеров
func (lm *LoggerManager) CloseAll() error {
	lm.mu.Lock()
	defer lm.mu.Unlock()

	var errs []error
	for component, logger := range lm.loggers {
		if err := logger.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close logger for %s: %w", component, err))
		}
	}

	lm.loggers = make(map[string]*Logger)
	return errors.Join(errs...)
}

// GetComponentLogger возвращает логгер компонента из глобального менеджера
func GetComponentLogger(component string) *Logger {
	return GetLoggerManager().MustGetLogger(component)
}

func GetEngineLogger() *Logger {
	return GetComponentLogger("engine")
}

func GetStorageLogger() *Logger {
	return GetComponentLogger("storage")
}
