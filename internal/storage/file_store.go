package storage

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/gzip"
)

// LevelFileName имя файла дампа в каталоге хранилища
const LevelFileName = "level.dat"

// FileStore хранит дамп блоков в gzip-файле без заголовка
type FileStore struct {
	path string
}

// NewFileStore создаёт файловое хранилище в каталоге dir
func NewFileStore(dir string) *FileStore {
	return &FileStore{path: filepath.Join(dir, LevelFileName)}
}

// Path возвращает путь к файлу дампа
func (s *FileStore) Path() string {
	return s.path
}

// Load читает дамп в dst; файл должен содержать ровно len(dst) байт
func (s *FileStore) Load(dst []byte) error {
	f, err := os.Open(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%s: %w", s.path, ErrNotFound)
		}
		return fmt.Errorf("не удалось открыть %s: %w", s.path, err)
	}
	defer f.Close()

	gz, err := gzip.NewReader(f)
	if err != nil {
		return fmt.Errorf("не удалось распаковать %s: %w", s.path, err)
	}
	defer gz.Close()

	if _, err := io.ReadFull(gz, dst); err != nil {
		if errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF) {
			return fmt.Errorf("%s: %w", s.path, ErrSizeMismatch)
		}
		return fmt.Errorf("ошибка чтения %s: %w", s.path, err)
	}

	// Конец потока проверяет CRC32 и размер; лишние данные означают другой размер мира
	var extra [1]byte
	n, err := io.ReadFull(gz, extra[:])
	if n > 0 {
		return fmt.Errorf("%s: %w", s.path, ErrSizeMismatch)
	}
	if err != io.EOF {
		return fmt.Errorf("повреждён %s: %w", s.path, err)
	}
	return nil
}

// Save атомарно записывает дамп: сначала во временный файл, затем rename
func (s *FileStore) Save(src []byte) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("не удалось создать каталог: %w", err)
	}

	tmp := s.path + ".tmp"
	f, err := os.OpenFile(tmp, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("не удалось создать %s: %w", tmp, err)
	}

	gz := gzip.NewWriter(f)
	if _, err := gz.Write(src); err != nil {
		f.Close()
		return fmt.Errorf("ошибка записи %s: %w", tmp, err)
	}
	if err := gz.Close(); err != nil {
		f.Close()
		return fmt.Errorf("ошибка сжатия %s: %w", tmp, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("ошибка закрытия %s: %w", tmp, err)
	}

	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("не удалось заменить %s: %w", s.path, err)
	}
	return nil
}

// Close реализует Store
func (s *FileStore) Close() error {
	return nil
}
