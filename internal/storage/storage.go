package storage

import (
	"errors"
	"fmt"

	"github.com/annel0/voxel-engine/internal/logging"
	"github.com/annel0/voxel-engine/internal/world"
)

var (
	// ErrNotFound сохранённого мира нет
	ErrNotFound = errors.New("storage: level not found")
	// ErrSizeMismatch размер дампа не совпадает с размером мира
	ErrSizeMismatch = errors.New("storage: level size mismatch")
	// ErrNotReady хранилище закрыто
	ErrNotReady = errors.New("storage: store is closed")
)

// Backend тип хранилища
type Backend string

const (
	BackendFile   Backend = "file"
	BackendBadger Backend = "badger"
)

// Store хранилище дампа мира с освобождением ресурсов
type Store interface {
	world.LevelStore
	Close() error
}

// Open открывает хранилище указанного типа в каталоге path
func Open(backend Backend, path string) (Store, error) {
	log := logging.GetStorageLogger()

	switch backend {
	case BackendFile, "":
		fs := NewFileStore(path)
		log.Info("Файловое хранилище мира: %s", fs.Path())
		return fs, nil
	case BackendBadger:
		bs, err := NewBadgerStore(path)
		if err != nil {
			return nil, err
		}
		log.Info("BadgerDB хранилище мира: %s", bs.dbPath)
		return bs, nil
	default:
		return nil, fmt.Errorf("storage: unknown backend %q", backend)
	}
}
