package block

import "fmt"

var registry [256]*Type

// Register добавляет тип блока в таблицу.
// Повторная регистрация того же ID является ошибкой сборки таблицы.
func Register(t *Type) {
	if t == nil {
		panic("block: nil type")
	}
	if registry[t.ID] != nil {
		panic(fmt.Sprintf("block: id %d already registered as %s", t.ID, registry[t.ID].Name))
	}
	registry[t.ID] = t
}

// Get возвращает тип для указанного ID
func Get(id BlockID) (*Type, bool) {
	t := registry[id]
	return t, t != nil
}

// IsValidBlockID проверяет, является ли ID зарегистрированным типом блока
func IsValidBlockID(id BlockID) bool {
	return registry[id] != nil
}

// IsSolid сообщает, является ли блок твёрдым.
// Незарегистрированные ненулевые ID считаются твёрдыми.
func IsSolid(id BlockID) bool {
	if t := registry[id]; t != nil {
		return t.Solid
	}
	return id != AirBlockID
}

// BlocksLight сообщает, перекрывает ли блок солнечный свет
func BlocksLight(id BlockID) bool {
	if t := registry[id]; t != nil {
		return t.BlocksLight
	}
	return id != AirBlockID
}

// All возвращает все зарегистрированные типы в порядке ID
func All() []*Type {
	types := make([]*Type, 0, 8)
	for _, t := range registry {
		if t != nil {
			types = append(types, t)
		}
	}
	return types
}

// BlockID представляет идентификатор блока (один байт в сетке)
type BlockID uint8

// Константы ID блоков
const (
	AirBlockID        BlockID = iota // 0
	RockBlockID                      // 1
	GrassBlockID                     // 2
	DirtBlockID                      // 3
	StoneBrickBlockID                // 4
	WoodBlockID                      // 5
	BushBlockID                      // 6
)
