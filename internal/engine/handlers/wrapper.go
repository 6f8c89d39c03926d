package handlers

import (
	"encoding/json"
	"fmt"

	"erebus-server/pkg/api"
)

// TypedHandlerFunc - хендлер, которому уже распаковали полезную нагрузку.
// Вся JSON-возня остается в обертке, логика видит только структуру T.
type TypedHandlerFunc[T any] func(ctx Context, payload T) (Result, error)

// EmptyHandlerFunc - хендлер директивы без полезной нагрузки (WAIT, DESCEND).
type EmptyHandlerFunc func(ctx Context) (Result, error)

// WithPayload адаптирует типизированный хендлер под сигнатуру реестра.
// Распаковка и валидация происходят до вызова логики; ошибка любого из
// шагов уходит игроку как отказ, ход при этом не тратится.
func WithPayload[T any](fn TypedHandlerFunc[T]) HandlerFunc {
	return func(ctx Context, raw json.RawMessage) (Result, error) {
		var payload T

		if err := json.Unmarshal(raw, &payload); err != nil {
			return Result{}, fmt.Errorf("unreadable payload: %w", err)
		}

		// Типы нагрузок с правилами реализуют api.Validator. Проверка
		// по значению: все Validate в pkg/api объявлены на значениях.
		if v, ok := any(payload).(api.Validator); ok {
			if err := v.Validate(); err != nil {
				return Result{}, fmt.Errorf("bad payload: %w", err)
			}
		}

		return fn(ctx, payload)
	}
}

// WithEmptyPayload адаптирует хендлер без данных. Лишний JSON на входе
// не ошибка: клиент может слать пустой объект, мы его не читаем.
func WithEmptyPayload(fn EmptyHandlerFunc) HandlerFunc {
	return func(ctx Context, _ json.RawMessage) (Result, error) {
		return fn(ctx)
	}
}
