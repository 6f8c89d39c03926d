package server

import (
	"encoding/json"
	"net/http"

	"erebus-server/internal/engine"
)

// DebugHandler предоставляет доступ к внутреннему состоянию движка
type DebugHandler struct {
	Service *engine.GameService
}

func NewDebugHandler(s *engine.GameService) *DebugHandler {
	return &DebugHandler{Service: s}
}

// RegisterRoutes регистрирует debug-эндпоинты
func (h *DebugHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/debug/sessions", h.handleSessions)
	mux.HandleFunc("/debug/cache", h.handleCache)
}

// /debug/sessions - сводка по всем подключенным клиентам и их забегам
func (h *DebugHandler) handleSessions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.Service.DebugSessions())
}

// /debug/cache - какие уровни порождены в кэше каждой сессии.
// Снимки асинхронные: отстают от мира максимум на одну команду.
func (h *DebugHandler) handleCache(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.Service.DebugCaches())
}

func writeJSON(w http.ResponseWriter, data interface{}) {
	// Разрешаем запросы с любого источника (нужно для локального debug_client.html)
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

	w.Header().Set("Content-Type", "application/json")

	// Если data == nil (например, пустой список), возвращаем пустой массив [], а не null
	if data == nil {
		w.Write([]byte("[]"))
		return
	}

	json.NewEncoder(w).Encode(data)
}
