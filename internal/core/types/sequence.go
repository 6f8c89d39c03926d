package types

import "erebus-server/internal/core/types/enums"

// Sequence выдает монотонные порядковые номера спавна.
// Не потокобезопасна: каждая кампания живет в одной горутине
// и владеет своим экземпляром.
type Sequence struct {
	next uint32
}

// NewSequence создает источник номеров. Счет идет с единицы,
// ноль зарезервирован под NilActorID.
func NewSequence() *Sequence {
	return &Sequence{next: 1}
}

// Next возвращает следующий порядковый номер.
func (s *Sequence) Next() uint32 {
	v := s.next
	s.next++
	return v
}

// NextID сразу упаковывает следующий номер в ActorID заданного типа.
func (s *Sequence) NextID(kind enums.ActorKind) ActorID {
	return PackActorID(kind, s.Next())
}
