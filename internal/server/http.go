package server

import (
	"encoding/json"
	"net/http"
	_ "net/http/pprof" // Profiling

	"erebus-server/internal/engine"
	"erebus-server/internal/version"
	"erebus-server/pkg/logger"
)

type Server struct {
	Engine *engine.GameService
	Port   string

	// Debug включает отладочные ручки. На боевых сборках выключено.
	Debug bool
}

func New(engine *engine.GameService, port string, debug bool) *Server {
	return &Server{
		Engine: engine,
		Port:   port,
		Debug:  debug,
	}
}

// Run запускает HTTP сервер
func (s *Server) Run() error {
	mux := http.DefaultServeMux

	// Регистрируем роуты
	mux.HandleFunc("/ws", enableCORS(s.handleWS))
	mux.HandleFunc("/health", enableCORS(s.handleHealth))
	mux.HandleFunc("/version", enableCORS(s.handleVersion))

	if s.Debug {
		debugHandler := NewDebugHandler(s.Engine)
		debugHandler.RegisterRoutes(mux)
		logger.Log.Warn("Debug routes enabled")
	}

	logger.Log.Infof("🛰️  Erebus Station server running on :%s", s.Port)
	return http.ListenAndServe(":"+s.Port, mux)
}

func enableCORS(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// Разрешаем запросы с фронтенда
		w.Header().Set("Access-Control-Allow-Origin", "*")
		// Разрешаем заголовки, если фронт шлет что-то нестандартное
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		next(w, r)
	}
}

// handleWS обрабатывает подключение по WebSocket
func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Log.Error("Upgrade error:", err)
		return
	}

	client := NewClient(s.Engine, conn)

	// Запускаем пампы
	go client.writePump()
	go client.readPump()
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"status":   "ok",
		"sessions": s.Engine.SessionCount(),
	})
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(version.Info())
}
