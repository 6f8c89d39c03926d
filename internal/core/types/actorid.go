package types

import (
	"fmt"
	"strconv"

	"erebus-server/internal/core/types/enums"
)

// ActorID — 32-битный идентификатор актора.
//
// ActorID является value-type и предназначен для дешёвого копирования,
// сериализации и сравнения.
//
// Формат битов (от старших к младшим):
//
//	[ Kind (8) | Serial (24) ]
//
// Где:
//   - Kind — тип актора (оператор, враг, страж)
//   - Serial — сквозной порядковый номер спавна в рамках кампании
//
// Serial монотонно растет, поэтому сортировка по нему дает
// стабильный порядок инициативы: кто раньше заспавнился, тот раньше ходит.
type ActorID uint32

// NilActorID — нулевой идентификатор.
//
// Используется как аналог nil, когда актор отсутствует
// или ссылка ещё не инициализирована.
const NilActorID ActorID = 0

// Конфигурация битов ActorID. Всего 32 бита.
const (
	// bitsSerial — биты порядкового номера спавна.
	// 24 бита хватает на ~16.7 миллионов спавнов за кампанию.
	bitsSerial = 24

	// bitsKind — биты типа актора, до 256 типов.
	bitsKind = 8

	shiftKind = bitsSerial

	maskSerial = (1 << bitsSerial) - 1
	maskKind   = (1 << bitsKind) - 1
)

// PackActorID собирает ActorID из составных частей.
//
// Проверок диапазонов нет: serial шире 24 бит молча обрезается,
// источник номеров обязан сам не переполняться.
func PackActorID(kind enums.ActorKind, serial uint32) ActorID {
	return ActorID((uint32(kind) << shiftKind) | (serial & maskSerial))
}

// Serial возвращает порядковый номер спавна.
func (id ActorID) Serial() uint32 {
	return uint32(id) & maskSerial
}

// Kind возвращает тип актора.
func (id ActorID) Kind() enums.ActorKind {
	return enums.ActorKind((uint32(id) >> shiftKind) & maskKind)
}

// IsNil проверяет, является ли идентификатор нулевым.
func (id ActorID) IsNil() bool {
	return id == NilActorID
}

// String возвращает человекочитаемое представление для логов и дебага.
func (id ActorID) String() string {
	if id.IsNil() {
		return "<nil>"
	}
	return fmt.Sprintf("[%s#%d]", id.Kind(), id.Serial())
}

// Wire возвращает каноничную строковую форму для протокола.
func (id ActorID) Wire() string {
	return strconv.FormatUint(uint64(id), 10)
}

// MarshalJSON сериализует ActorID в JSON как строку.
//
// Строковая форма держит wire-формат стабильным: клиенту не нужно
// знать раскладку битов, а формат переживет расширение до 64 бит.
func (id ActorID) MarshalJSON() ([]byte, error) {
	return []byte(`"` + id.Wire() + `"`), nil
}

// UnmarshalJSON десериализует ActorID из JSON.
//
// Поддерживаются как строковое, так и числовое представление.
func (id *ActorID) UnmarshalJSON(data []byte) error {
	s := string(data)

	if len(s) > 1 && s[0] == '"' {
		s = s[1 : len(s)-1]
	}

	if s == "" {
		*id = NilActorID
		return nil
	}

	v, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return err
	}

	*id = ActorID(v)
	return nil
}
