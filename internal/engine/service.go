package engine

import (
	"encoding/json"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"

	"erebus-server/internal/domain"
	"erebus-server/internal/infrastructure/archive"
	"erebus-server/internal/infrastructure/replay"
	"erebus-server/internal/network"
	"erebus-server/pkg/api"
	"erebus-server/pkg/logger"
)

// GameService владеет всеми активными сессиями. Одно websocket-соединение —
// одна кампания; миры клиентов никак не пересекаются. Команды каждого
// клиента обрабатывает личная горутина, поэтому внутри сессии нет гонок.
type GameService struct {
	cfg Config
	Hub *network.Broadcaster

	// store журнал завершенных забегов. nil отключает архив.
	store archive.Store

	// tapes каталог записей для детерминированного повтора. nil отключает запись.
	tapes *replay.Library

	mu      sync.RWMutex
	runners map[string]*clientRunner
	wg      sync.WaitGroup
}

func NewService(cfg Config, hub *network.Broadcaster, store archive.Store, tapes *replay.Library) *GameService {
	return &GameService{
		cfg:     cfg,
		Hub:     hub,
		store:   store,
		tapes:   tapes,
		runners: make(map[string]*clientRunner),
	}
}

// Connect заводит обработчик команд для нового клиента.
// Повторное подключение с тем же ID вытесняет старую сессию.
func (s *GameService) Connect(clientID string) {
	r := &clientRunner{
		clientID: clientID,
		commands: make(chan api.ClientCommand, 16),
		svc:      s,
		log: logger.Log.WithFields(logrus.Fields{
			"component": "service",
			"client_id": clientID,
		}),
	}

	s.mu.Lock()
	if old, ok := s.runners[clientID]; ok {
		close(old.commands)
	}
	s.runners[clientID] = r
	s.mu.Unlock()

	s.wg.Add(1)
	go r.run()

	r.log.Info("Client connected")
}

// Disconnect останавливает обработчик клиента. Сессия не архивируется:
// забег завершают только смерть, взлет или RESTART.
func (s *GameService) Disconnect(clientID string) {
	s.mu.Lock()
	r, ok := s.runners[clientID]
	if ok {
		delete(s.runners, clientID)
		close(r.commands)
	}
	s.mu.Unlock()

	if ok {
		r.log.Info("Client disconnected")
	}
}

// Dispatch передает команду клиента его горутине. Неблокирующая отправка:
// клиент, пишущий быстрее, чем разрешаются ходы, теряет лишние команды.
func (s *GameService) Dispatch(clientID string, cmd api.ClientCommand) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.runners[clientID]
	if !ok {
		logger.Log.WithField("client_id", clientID).Warn("Command for unknown client dropped")
		return
	}

	select {
	case r.commands <- cmd:
	default:
		r.log.WithField("action", cmd.Action).Warn("Command queue full, dropped")
	}
}

// Shutdown закрывает все сессии и дожидается, пока горутины допишут
// записи на диск.
func (s *GameService) Shutdown() {
	s.mu.Lock()
	for id, r := range s.runners {
		close(r.commands)
		delete(s.runners, id)
	}
	s.mu.Unlock()

	s.wg.Wait()
	logger.Log.Info("Game service stopped")
}

// SessionCount возвращает число живых обработчиков.
func (s *GameService) SessionCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.runners)
}

// DebugSessions отдает сводку по всем сессиям для отладочной ручки.
func (s *GameService) DebugSessions() []map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	// Гарантируем [] вместо null в JSON
	dump := make([]map[string]interface{}, 0, len(s.runners))
	for id, r := range s.runners {
		entry := map[string]interface{}{
			"client_id":   id,
			"initialized": false,
		}
		if sum, ok := r.summary.Load().(sessionSummary); ok {
			entry["initialized"] = true
			entry["session"] = sum.State
			entry["turn"] = sum.Turn
			entry["site"] = sum.Site
			entry["depth"] = sum.Depth
			entry["kills"] = sum.Kills
			entry["run"] = sum.RunIndex
		}
		dump = append(dump, entry)
	}

	sort.Slice(dump, func(i, j int) bool {
		return dump[i]["client_id"].(string) < dump[j]["client_id"].(string)
	})
	return dump
}

// DebugCaches отдает содержимое кэшей уровней всех сессий.
// Снимки собирают сами горутины сессий, здесь только чтение.
func (s *GameService) DebugCaches() []map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	dump := make([]map[string]interface{}, 0, len(s.runners))
	for id, r := range s.runners {
		sum, ok := r.summary.Load().(sessionSummary)
		if !ok {
			continue
		}
		dump = append(dump, map[string]interface{}{
			"client_id": id,
			"levels":    sum.Cache,
		})
	}

	sort.Slice(dump, func(i, j int) bool {
		return dump[i]["client_id"].(string) < dump[j]["client_id"].(string)
	})
	return dump
}

// sessionSummary — снимок для отладки, обновляется после каждой команды.
// Атомарный, потому что отладочная ручка читает из чужой горутины.
type sessionSummary struct {
	State    string
	Turn     int
	Site     string
	Depth    int
	Kills    int
	RunIndex int

	// Cache — снимок кэша уровней. Заполняется только на отладочных
	// сборках: на боевых ручки все равно не зарегистрированы.
	Cache []map[string]interface{}
}

// clientRunner обслуживает одного клиента: принимает команды из канала,
// гоняет их через сессию и публикует кадры в хаб.
type clientRunner struct {
	clientID string
	commands chan api.ClientCommand
	svc      *GameService

	session  *Session
	recorder *replay.Recorder
	summary  atomic.Value

	log *logrus.Entry
}

func (r *clientRunner) run() {
	defer r.svc.wg.Done()
	defer r.closeRecorder()

	for cmd := range r.commands {
		r.handle(cmd)
	}
}

func (r *clientRunner) handle(cmd api.ClientCommand) {
	action := domain.ParseAction(cmd.Action)

	// До INIT сессии нет, принимать нечего.
	if r.session == nil {
		if action != domain.ActionInit {
			r.sendError("Send INIT first.")
			return
		}
		r.initSession(cmd.Payload)
		return
	}

	// Повторный INIT не пересоздает оператора, просто повторяет кадр.
	// Так клиент после обрыва соединения может восстановить экран.
	if action == domain.ActionInit {
		r.publish(nil)
		return
	}

	// Замерзшая сессия ждет только RESTART, остальное отвергает движок.
	if r.session.State.Terminal() && action == domain.ActionRestart {
		r.beginNextRun()
		return
	}

	prev := r.session.State
	r.record(action, cmd.Payload)
	events := r.session.ResolveTurn(domain.InternalCommand{Action: action, Payload: cmd.Payload})
	r.publish(events)

	if prev == SessionActive && r.session.State != SessionActive {
		r.finishRun()

		// RESTART посреди забега не замораживает сессию: старый забег
		// уходит в архив, новый начинается тем же кадром обмена.
		if r.session.State == SessionRestarted {
			r.beginNextRun()
		}
	}

	r.updateSummary()
}

// initSession строит профиль из INIT и запускает первый забег.
func (r *clientRunner) initSession(payload json.RawMessage) {
	var p api.InitPayload
	if len(payload) > 0 {
		if err := json.Unmarshal(payload, &p); err != nil {
			r.sendError(fmt.Sprintf("Malformed INIT payload: %v", err))
			return
		}
	}

	profile, err := profileFromInit(p)
	if err != nil {
		r.sendError(fmt.Sprintf("Rejected profile: %v", err))
		return
	}

	session, err := NewSession(r.clientID, r.svc.cfg, profile)
	if err != nil {
		r.log.WithError(err).Error("Failed to create session")
		r.sendError("Server failed to generate the campaign.")
		return
	}

	r.session = session
	r.startRecorder()
	r.publish(session.TakeEvents())
	r.updateSummary()

	r.log.WithField("callsign", profile.Callsign).Info("Session initialized")
}

// beginNextRun перезапускает кампанию после смерти, побега или аборта.
func (r *clientRunner) beginNextRun() {
	r.closeRecorder()

	if err := r.session.BeginNextRun(); err != nil {
		r.log.WithError(err).Error("Failed to begin next run")
		r.sendError("Server failed to generate the next run.")
		return
	}

	r.startRecorder()
	r.publish(r.session.TakeEvents())
	r.updateSummary()
}

// finishRun сбрасывает итог забега в архив и закрывает запись.
func (r *clientRunner) finishRun() {
	r.closeRecorder()

	if r.svc.store == nil {
		return
	}

	s := r.session
	rec := archive.RunRecord{
		Callsign:   s.Player.Profile.Callsign,
		Outcome:    s.State.String(),
		Site:       s.site().Spec.Name,
		Depth:      s.Player.DeepestDepth,
		Turns:      s.Turn,
		Kills:      s.Player.Kills,
		Credits:    s.Player.Credits,
		Seed:       r.svc.cfg.Seed + int64(s.RunIndex),
		RunIndex:   s.RunIndex,
		FinishedAt: time.Now(),
	}

	// Архив не должен тормозить обмен: пишем в фоне, ошибку только логируем.
	go func() {
		if err := r.svc.store.SaveRun(rec); err != nil {
			r.log.WithError(err).Error("Failed to archive run")
		}
	}()
}

// publish отправляет клиенту кадры текущего хода: TERMINAL, если оператор
// читал запись, затем полный STATE.
func (r *clientRunner) publish(events []domain.Event) {
	if tv := r.session.TakeTerminal(); tv != nil {
		r.svc.Hub.SendTo(r.clientID, api.ServerResponse{
			Type:     api.ResponseTerminal,
			Terminal: tv,
		})
	}

	r.svc.Hub.SendTo(r.clientID, api.ServerResponse{
		Type:  api.ResponseState,
		State: BuildState(r.session, events),
	})
}

func (r *clientRunner) sendError(text string) {
	r.svc.Hub.SendTo(r.clientID, api.ServerResponse{
		Type: api.ResponseError,
		Text: text,
	})
}

// --- Запись повторов ---

func (r *clientRunner) startRecorder() {
	if r.svc.tapes == nil {
		return
	}

	seed := r.svc.cfg.Seed + int64(r.session.RunIndex)
	rec, err := r.svc.tapes.Start(seed, r.session.RunIndex, r.session.Player.Profile)
	if err != nil {
		r.log.WithError(err).Error("Failed to start recording")
		return
	}
	r.recorder = rec
}

func (r *clientRunner) record(action domain.ActionType, payload json.RawMessage) {
	if r.recorder == nil {
		return
	}
	if err := r.recorder.Record(r.session.Turn, r.session.SiteIndex, action, payload); err != nil {
		r.log.WithError(err).Warn("Failed to record action")
	}
}

func (r *clientRunner) closeRecorder() {
	if r.recorder == nil {
		return
	}
	if err := r.recorder.Close(); err != nil {
		r.log.WithError(err).Warn("Failed to close recording")
	}
	r.recorder = nil
}

func (r *clientRunner) updateSummary() {
	s := r.session
	sum := sessionSummary{
		State:    s.State.String(),
		Turn:     s.Turn,
		Site:     s.site().Spec.Name,
		Depth:    s.Depth,
		Kills:    s.Player.Kills,
		RunIndex: s.RunIndex,
	}
	if r.svc.cfg.DebugChecks {
		sum.Cache = s.Cache.DebugDump()
	}
	r.summary.Store(sum)
}

// profileFromInit конвертирует DTO в доменный профиль. Пустой позывной
// означает стандартного "Drifter", атрибуты тогда игнорируются.
func profileFromInit(p api.InitPayload) (domain.CharacterProfile, error) {
	if p.Callsign == "" {
		return domain.DefaultProfile(), nil
	}

	if err := p.Validate(); err != nil {
		return domain.CharacterProfile{}, err
	}

	profile := domain.CharacterProfile{
		Callsign: p.Callsign,
		Body:     p.Body,
		Reflex:   p.Reflex,
		Mind:     p.Mind,
		Tech:     p.Tech,
		Presence: p.Presence,
		Skills:   make(map[domain.Skill]int, len(p.Skills)),
	}
	for name, lvl := range p.Skills {
		skill := domain.ParseSkill(name)
		if skill == domain.SkillUnknown {
			return domain.CharacterProfile{}, fmt.Errorf("unknown skill: %s", name)
		}
		profile.Skills[skill] = lvl
	}

	return profile, nil
}
