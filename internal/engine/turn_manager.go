package engine

import (
	"container/heap"
	"sort"

	"erebus-server/internal/core/types"
	"erebus-server/internal/domain"
	"erebus-server/pkg/logger"
)

// Initiative держит очередь ходов врагов текущего уровня.
// Инициатива фиксированная: кто раньше заспавнился, тот раньше ходит.
type Initiative struct {
	queue   TurnQueue
	itemMap map[types.ActorID]*TurnItem
}

func NewInitiative() *Initiative {
	return &Initiative{
		queue:   make(TurnQueue, 0),
		itemMap: make(map[types.ActorID]*TurnItem),
	}
}

// Add регистрирует врага в очереди ходов.
func (in *Initiative) Add(a *domain.Actor) {
	if _, ok := in.itemMap[a.ID]; ok {
		return
	}

	item := &TurnItem{
		Value:    a,
		Priority: a.ID.Serial(),
	}

	heap.Push(&in.queue, item)
	in.itemMap[a.ID] = item

	logger.Log.WithField("actor_id", a.ID).Debug("Actor added to initiative")
}

// Remove снимает врага с очереди (обычно после смерти).
func (in *Initiative) Remove(id types.ActorID) {
	if item, ok := in.itemMap[id]; ok {
		heap.Remove(&in.queue, item.Index)
		delete(in.itemMap, id)
	}
}

// PeekNext returns the actor whose turn comes first, without removing them.
func (in *Initiative) PeekNext() *domain.Actor {
	if in.queue.Len() == 0 {
		return nil
	}
	return in.queue[0].Value
}

// Order возвращает врагов в порядке инициативы.
// Куча сама по себе отсортирована только по вершине, поэтому снимаем копию.
func (in *Initiative) Order() []*domain.Actor {
	items := make([]*TurnItem, len(in.queue))
	copy(items, in.queue)
	sort.Slice(items, func(i, j int) bool {
		return items[i].Priority < items[j].Priority
	})

	actors := make([]*domain.Actor, 0, len(items))
	for _, item := range items {
		actors = append(actors, item.Value)
	}
	return actors
}

func (in *Initiative) Len() int {
	return in.queue.Len()
}

// RebuildFrom сбрасывает очередь и заполняет ее врагами уровня.
// Вызывается при каждой смене уровня.
func (in *Initiative) RebuildFrom(lvl *domain.Level) {
	in.queue = make(TurnQueue, 0, len(lvl.Enemies))
	in.itemMap = make(map[types.ActorID]*TurnItem, len(lvl.Enemies))
	for _, e := range lvl.Enemies {
		in.Add(e)
	}
}

// DebugDump возвращает снимок очереди для отладки
func (in *Initiative) DebugDump() []map[string]interface{} {
	// Инициализируем как пустой слайс, а не nil. Тогда в JSON это будет "[]", а не "null"
	result := make([]map[string]interface{}, 0)

	for _, item := range in.queue {
		result = append(result, map[string]interface{}{
			"id":       item.Value.ID.String(),
			"name":     item.Value.Name,
			"priority": item.Priority,
			"index":    item.Index,
		})
	}
	return result
}
