package entity

import (
	"sync"

	"github.com/google/uuid"
)

// Actor сущность с собственной политикой тика
type Actor interface {
	Base() *Entity
	Tick()
}

// EntityManager управляет всеми сущностями в мире
type EntityManager struct {
	entities map[uuid.UUID]Actor // Хранилище всех сущностей
	order    []uuid.UUID         // Порядок тиков (порядок появления)
	mu       sync.RWMutex        // Мьютекс для безопасного доступа
}

// NewEntityManager создаёт новый менеджер сущностей
func NewEntityManager() *EntityManager {
	return &EntityManager{
		entities: make(map[uuid.UUID]Actor),
	}
}

// Spawn добавляет сущность в мир и возвращает её ID
func (em *EntityManager) Spawn(a Actor) uuid.UUID {
	em.mu.Lock()
	defer em.mu.Unlock()

	id := a.Base().ID
	if _, exists := em.entities[id]; !exists {
		em.order = append(em.order, id)
	}
	em.entities[id] = a
	return id
}

// Despawn удаляет сущность из мира
func (em *EntityManager) Despawn(id uuid.UUID) bool {
	em.mu.Lock()
	defer em.mu.Unlock()

	if _, exists := em.entities[id]; !exists {
		return false
	}
	delete(em.entities, id)
	em.compact()
	return true
}

// Get возвращает сущность по ID
func (em *EntityManager) Get(id uuid.UUID) (Actor, bool) {
	em.mu.RLock()
	defer em.mu.RUnlock()

	a, exists := em.entities[id]
	return a, exists
}

// Count возвращает число живых сущностей
func (em *EntityManager) Count() int {
	em.mu.RLock()
	defer em.mu.RUnlock()
	return len(em.entities)
}

// CountByType возвращает число сущностей каждого типа
func (em *EntityManager) CountByType() map[EntityType]int {
	em.mu.RLock()
	defer em.mu.RUnlock()

	counts := make(map[EntityType]int)
	for _, a := range em.entities {
		counts[a.Base().Type]++
	}
	return counts
}

// Each вызывает fn для каждой сущности в порядке появления
func (em *EntityManager) Each(fn func(Actor)) {
	em.mu.RLock()
	defer em.mu.RUnlock()

	for _, id := range em.order {
		fn(em.entities[id])
	}
}

// Tick обновляет все сущности и удаляет помеченные на удаление.
// Возвращает число удалённых сущностей.
func (em *EntityManager) Tick() int {
	// Держим блокировку на всё время обновления
	em.mu.Lock()
	defer em.mu.Unlock()

	removed := 0
	for _, id := range em.order {
		a := em.entities[id]
		a.Tick()
		if a.Base().Removed {
			delete(em.entities, id)
			removed++
		}
	}
	if removed > 0 {
		em.compact()
	}
	return removed
}

// compact убирает из порядка тиков удалённые ID
func (em *EntityManager) compact() {
	kept := em.order[:0]
	for _, id := range em.order {
		if _, ok := em.entities[id]; ok {
			kept = append(kept, id)
		}
	}
	em.order = kept
}
