package world

import "fmt"

// LevelStore хранит плоский дамп блоков мира.
// Load должен заполнить dst целиком или вернуть ошибку.
type LevelStore interface {
	Load(dst []byte) error
	Save(src []byte) error
}

// Load заполняет мир из хранилища, пересчитывает весь свет и
// уведомляет слушателей о полной замене содержимого.
// При ошибке содержимое мира не меняется.
func (l *Level) Load(store LevelStore) error {
	buf := make([]byte, len(l.blocks))
	if err := store.Load(buf); err != nil {
		return fmt.Errorf("load level: %w", err)
	}

	copy(l.blocks, buf)
	l.RecomputeLightColumns(0, 0, l.Width, l.Height)
	l.notifyAllChanged()
	return nil
}

// Save записывает плоский дамп блоков в хранилище
func (l *Level) Save(store LevelStore) error {
	if err := store.Save(l.blocks); err != nil {
		return fmt.Errorf("save level: %w", err)
	}
	return nil
}
