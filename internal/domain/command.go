package domain

import "encoding/json"

// InternalCommand - распарсенная команда для сессии.
// Использует ActionType вместо string.
type InternalCommand struct {
	Action  ActionType      // Число! Быстро и безопасно.
	Payload json.RawMessage // Сырые данные (парсятся хендлером)
}
