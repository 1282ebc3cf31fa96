package block

// TickAPI определяет интерфейс, через который правила тика читают и
// изменяют мир. Все запросы вне границ мира возвращают безопасные значения.
type TickAPI interface {
	// GetBlock возвращает идентификатор блока (0 вне мира).
	GetBlock(x, y, z int) BlockID

	// SetBlock устанавливает блок; возвращает false, если ничего не изменилось.
	SetBlock(x, y, z int, id BlockID) bool

	// IsLit сообщает, освещена ли позиция солнцем.
	IsLit(x, y, z int) bool
}
