package storage

import (
	"errors"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/dgraph-io/badger/v3"
	"github.com/klauspost/compress/zstd"
)

// levelKey ключ дампа мира в BadgerDB
var levelKey = []byte("level")

// BadgerStore хранит сжатый zstd дамп мира в BadgerDB
type BadgerStore struct {
	db      *badger.DB
	dbPath  string
	enc     *zstd.Encoder
	dec     *zstd.Decoder
	mutex   sync.RWMutex
	isReady bool
}

// NewBadgerStore открывает хранилище в подкаталоге world каталога dataPath
func NewBadgerStore(dataPath string) (*BadgerStore, error) {
	dbPath := filepath.Join(dataPath, "world")
	opts := badger.DefaultOptions(dbPath)
	opts.Logger = nil // Отключаем логирование BadgerDB

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("не удалось открыть BadgerDB: %w", err)
	}

	enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("не удалось создать zstd encoder: %w", err)
	}
	dec, err := zstd.NewReader(nil)
	if err != nil {
		enc.Close()
		db.Close()
		return nil, fmt.Errorf("не удалось создать zstd decoder: %w", err)
	}

	return &BadgerStore{
		db:      db,
		dbPath:  dbPath,
		enc:     enc,
		dec:     dec,
		isReady: true,
	}, nil
}

// Close закрывает хранилище данных
func (bs *BadgerStore) Close() error {
	bs.mutex.Lock()
	defer bs.mutex.Unlock()

	if !bs.isReady {
		return nil
	}

	bs.isReady = false
	bs.enc.Close()
	bs.dec.Close()
	return bs.db.Close()
}

// Save сжимает дамп и записывает его под ключом level
func (bs *BadgerStore) Save(src []byte) error {
	bs.mutex.RLock()
	defer bs.mutex.RUnlock()

	if !bs.isReady {
		return ErrNotReady
	}

	data := bs.enc.EncodeAll(src, make([]byte, 0, len(src)/4))

	err := bs.db.Update(func(txn *badger.Txn) error {
		return txn.Set(levelKey, data)
	})
	if err != nil {
		return fmt.Errorf("ошибка сохранения мира в BadgerDB: %w", err)
	}
	return nil
}

// Load читает и распаковывает дамп в dst
func (bs *BadgerStore) Load(dst []byte) error {
	bs.mutex.RLock()
	defer bs.mutex.RUnlock()

	if !bs.isReady {
		return ErrNotReady
	}

	var data []byte
	err := bs.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(levelKey)
		if err != nil {
			return err
		}
		data, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return fmt.Errorf("%s: %w", bs.dbPath, ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("ошибка чтения мира из BadgerDB: %w", err)
	}

	raw, err := bs.dec.DecodeAll(data, nil)
	if err != nil {
		return fmt.Errorf("ошибка распаковки мира: %w", err)
	}
	if len(raw) != len(dst) {
		return fmt.Errorf("ожидалось %d байт, получено %d: %w", len(dst), len(raw), ErrSizeMismatch)
	}

	copy(dst, raw)
	return nil
}
