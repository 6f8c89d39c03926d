package engine

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/sirupsen/logrus"

	"erebus-server/internal/core/types/enums"
	"erebus-server/internal/domain"
	"erebus-server/internal/engine/handlers"
	"erebus-server/internal/engine/handlers/actions"
	"erebus-server/internal/engine/handlers/admin"
	"erebus-server/internal/systems"
	"erebus-server/pkg/api"
	"erebus-server/pkg/logger"
)

// SessionState - Состояние рейда
type SessionState uint8

const (
	SessionActive SessionState = iota
	SessionEscaped
	SessionDead
	SessionRestarted
)

var sessionStringToState = map[string]SessionState{
	"ACTIVE":    SessionActive,
	"ESCAPED":   SessionEscaped,
	"DEAD":      SessionDead,
	"RESTARTED": SessionRestarted,
}

var sessionStateToString = map[SessionState]string{
	SessionActive:    "ACTIVE",
	SessionEscaped:   "ESCAPED",
	SessionDead:      "DEAD",
	SessionRestarted: "RESTARTED",
}

// ParseSessionState конвертирует строку в Enum
func ParseSessionState(s string) SessionState {
	if val, ok := sessionStringToState[strings.ToUpper(s)]; ok {
		return val
	}
	return SessionActive
}

// String реализует интерфейс Stringer (для fmt.Printf)
func (st SessionState) String() string {
	if val, ok := sessionStateToString[st]; ok {
		return val
	}
	return "UNKNOWN"
}

// Terminal — рейд закончился и ждет команды RESTART.
func (st SessionState) Terminal() bool {
	return st == SessionEscaped || st == SessionDead
}

// Сдвиг сида боевого генератора относительно сида кампании.
// Генерация мира и броски боя не должны делить один поток случайности,
// иначе лишний взгляд на несгенерированный этаж менял бы исход боя.
const actionSeedOffset = 7919

// Session представляет собой одну изолированную кампанию: один оператор,
// свой мир, свой генератор случайности и своя очередь ходов.
//
// Все поля мутируются строго из горутины сессии. Никаких внутренних
// локов нет: изоляция достигается тем, что канал команд читает ровно
// один цикл.
type Session struct {
	ID string

	Campaign *Campaign
	Cache    *LocationCache
	Player   *domain.Player

	SiteIndex int
	Depth     int
	Level     *domain.Level
	Turn      int
	State     SessionState
	RunIndex  int

	Rng *rand.Rand

	Effects domain.EffectTable
	Hazards domain.HazardTable
	Items   domain.ItemTable

	Initiative *Initiative

	cfg     Config
	profile domain.CharacterProfile

	// pending копит нарратив до выдачи кадра. Дренируется целиком.
	pending []domain.Event

	// lastTerminal — текст терминала, открытого на этом ходу.
	lastTerminal *api.TerminalView

	liftoff    bool
	resetAsked bool

	handlers map[domain.ActionType]handlers.HandlerFunc

	log *logrus.Entry
}

// NewSession создает сессию и сразу начинает первый рейд.
func NewSession(id string, cfg Config, profile domain.CharacterProfile) (*Session, error) {
	s := &Session{
		ID:         id,
		cfg:        cfg,
		profile:    profile,
		Effects:    domain.DefaultEffects(),
		Hazards:    domain.DefaultHazards(),
		Items:      domain.DefaultItems(),
		Initiative: NewInitiative(),
		log: logger.Log.WithFields(logrus.Fields{
			"component":  "session",
			"session_id": id,
		}),
	}
	s.registerHandlers()

	if err := s.beginRun(); err != nil {
		return nil, err
	}
	return s, nil
}

// registerHandlers собирает таблицу диспетчеризации команд.
// Читы попадают в таблицу только при включенном флаге.
func (s *Session) registerHandlers() {
	s.handlers = map[domain.ActionType]handlers.HandlerFunc{
		domain.ActionMove:     handlers.WithPayload(actions.HandleMove),
		domain.ActionWait:     handlers.WithEmptyPayload(actions.HandleWait),
		domain.ActionUse:      handlers.WithPayload(actions.HandleUse),
		domain.ActionInteract: handlers.WithEmptyPayload(actions.HandleInteract),
		domain.ActionAscend:   handlers.WithEmptyPayload(actions.HandleAscend),
		domain.ActionDescend:  handlers.WithEmptyPayload(actions.HandleDescend),
		domain.ActionTravel:   handlers.WithPayload(actions.HandleTravel),
		domain.ActionDisarm:   handlers.WithEmptyPayload(actions.HandleDisarm),
		domain.ActionRestart:  handlers.WithEmptyPayload(actions.HandleRestart),
	}
	if s.cfg.Cheats {
		s.handlers[domain.ActionCheat] = handlers.WithPayload(admin.HandleCheat)
	}
}

// beginRun разворачивает свежую кампанию. Сид рейда = мастер-сид + номер
// рейда, так что вся серия воспроизводима из одного числа.
func (s *Session) beginRun() error {
	campaignSeed := s.cfg.Seed + int64(s.RunIndex)
	s.Campaign = NewCampaign(campaignSeed)
	s.Cache = NewLocationCache(s.Campaign, s.cfg.DebugChecks)
	s.Rng = rand.New(rand.NewSource(campaignSeed + actionSeedOffset))

	s.Player = domain.NewPlayer(s.profile)
	s.Player.ID = s.Campaign.Seq.NextID(enums.ActorKindOperator)

	s.Turn = 0
	s.State = SessionActive
	s.liftoff = false
	s.resetAsked = false
	s.pending = nil

	lvl, err := s.Cache.Checkout(0, 0)
	if err != nil {
		return fmt.Errorf("begin run %d: %w", s.RunIndex, err)
	}
	s.SiteIndex = 0
	s.Depth = 0
	s.Level = lvl
	s.Player.Pos = lvl.Entry
	s.Initiative.RebuildFrom(lvl)
	s.refreshVision()

	s.push(
		domain.NewEvent(domain.EventTransition, "Touchdown on %s.", lvl.Site),
		domain.NewEvent(domain.EventInfo, "The pad is marked H. Find an entrance and DESCEND."),
	)

	s.log.WithFields(logrus.Fields{
		"run":           s.RunIndex,
		"campaign_seed": campaignSeed,
		"callsign":      s.profile.Callsign,
	}).Info("Run started.")
	return nil
}

// BeginNextRun начинает следующий рейд после терминального состояния.
func (s *Session) BeginNextRun() error {
	s.RunIndex++
	return s.beginRun()
}

// TakeEvents отдает накопленный нарратив и очищает буфер.
func (s *Session) TakeEvents() []domain.Event {
	events := s.pending
	s.pending = nil
	return events
}

// TakeTerminal отдает открытый на последнем ходу терминал, если был.
func (s *Session) TakeTerminal() *api.TerminalView {
	t := s.lastTerminal
	s.lastTerminal = nil
	return t
}

func (s *Session) push(events ...domain.Event) {
	s.pending = append(s.pending, events...)
}

// site возвращает текущую зону. Индекс всегда валиден: его ставят
// только переходы, которые сами ходили в реестр.
func (s *Session) site() *Site {
	site, ok := s.Campaign.Site(s.SiteIndex)
	if !ok {
		panic(fmt.Sprintf("session %s: current site index %d out of roster", s.ID, s.SiteIndex))
	}
	return site
}

// handlerContext собирает контекст для хендлеров текущего хода.
func (s *Session) handlerContext() handlers.Context {
	return handlers.Context{
		Player:  s.Player,
		Level:   s.Level,
		Depth:   s.Depth,
		Site:    s.site().Spec,
		Turn:    s.Turn,
		Rng:     s.Rng,
		Effects: s.Effects,
		Hazards: s.Hazards,
		Items:   s.Items,
		Switch:  s,
		Log:     s.log,
	}
}

// refreshVision пересчитывает поле зрения от позиции игрока.
func (s *Session) refreshVision() {
	radius := s.Player.Profile.FOVRadius()
	visible := systems.VisibleFrom(s.Level.Grid, s.Player.Pos, radius)
	s.Level.MarkExplored(visible)
	s.Level.SetVisible(visible)
}

// --- Переходы (handlers.Switcher) ---

// Descend спускается: с поверхности в зону под точкой интереса,
// под землей — по шахте вниз.
func (s *Session) Descend() ([]domain.Event, bool) {
	if s.Depth == 0 {
		poi, ok := s.Level.POIAt(s.Player.Pos)
		if !ok {
			return refusal("There is no way down here."), false
		}
		target := s.SiteIndex
		if poi.SiteIndex >= 0 {
			target = poi.SiteIndex
		}
		return s.enterSite(target)
	}

	if s.Level.Grid.At(s.Player.Pos) != domain.TileStairDown {
		return refusal("You need a down shaft to descend."), false
	}
	return s.switchFloor(s.SiteIndex, s.Depth+1, landEntry)
}

// Ascend поднимается: по шахте на этаж выше, с первого этажа на
// поверхность; на посадочной площадке — взлет и конец рейда.
func (s *Session) Ascend() ([]domain.Event, bool) {
	pl := s.Player

	if s.Depth == 0 {
		if s.Level.Grid.At(pl.Pos) != domain.TilePad {
			return refusal("The shuttle waits on the pad, not here."), false
		}
		// Исход решается после фаз хода: смерть на площадке
		// перебивает взлет.
		s.liftoff = true
		return []domain.Event{domain.NewEvent(domain.EventTransition,
			"You strap in. The shuttle tears off the pad.")}, true
	}

	if s.Level.Grid.At(pl.Pos) != domain.TileStairUp {
		return refusal("You need an up shaft to ascend."), false
	}
	if s.Depth >= 2 {
		return s.switchFloor(s.SiteIndex, s.Depth-1, landExit)
	}
	return s.surface()
}

// Travel перелетает между верхнеуровневыми площадками.
func (s *Session) Travel(target int) ([]domain.Event, bool) {
	pl := s.Player

	if s.Depth != 0 {
		return refusal("You can only hail the shuttle from the surface."), false
	}
	dest, ok := s.Campaign.Site(target)
	if !ok || !dest.Top() {
		return refusal("No such destination on the nav chart."), false
	}
	if target == s.SiteIndex {
		return refusal("You are already on %s.", dest.Spec.Name), false
	}

	cost := dest.Spec.FuelCost - pl.Profile.FuelDiscount()
	if cost < 0 {
		cost = 0
	}
	if pl.Fuel < cost {
		return refusal("Not enough fuel: the flight needs %d, you carry %d.", cost, pl.Fuel), false
	}
	pl.Fuel -= cost

	lvl, err := s.Cache.Checkout(target, 0)
	if err != nil {
		s.log.WithField("error", err).Error("Travel checkout failed")
		return refusal("The nav computer rejects the course."), false
	}

	s.SiteIndex = target
	s.Depth = 0
	s.Level = lvl
	pl.Pos = lvl.Entry
	s.Initiative.RebuildFrom(lvl)
	s.refreshVision()

	events := []domain.Event{}
	if cost > 0 {
		events = append(events, domain.NewEvent(domain.EventInfo, "The shuttle burns %d fuel.", cost))
	}
	events = append(events, domain.NewEvent(domain.EventTransition, "Touchdown on %s.", lvl.Site))

	s.log.WithFields(logrus.Fields{
		"site": lvl.Site,
		"fuel": pl.Fuel,
	}).Info("Shuttle flight complete.")
	return events, true
}

// RequestReset помечает рейд на сброс после закрытия хода.
func (s *Session) RequestReset() {
	s.resetAsked = true
}

// ReportKill оформляет смерть врага: награда, снятие с уровня,
// детонация подрывника, зачистка зоны.
func (s *Session) ReportKill(e *domain.Actor) []domain.Event {
	pl := s.Player

	credits := e.XPReward / 2
	if credits < 1 {
		credits = 1
	}
	pl.Credits += credits
	pl.Kills++

	events := []domain.Event{domain.NewEvent(domain.EventDeath,
		"%s destroyed! +%d XP +%d cr", e.Name, e.XPReward, credits)}
	events = append(events, pl.GainXP(e.XPReward)...)

	// Подрывник задевает оператора, если тот стоит вплотную.
	if e.Behavior == domain.BehaviorExploder && e.Pos.ManhattanTo(pl.Pos) <= 1 {
		splash := e.Attack / 2
		if splash < 1 {
			splash = 1
		}
		dealt := pl.TakeDamage(splash)
		events = append(events, domain.NewEvent(domain.EventCombat,
			"%s detonates! You take %d damage.", e.Name, dealt))
	}

	s.Level.RemoveEnemy(e)
	s.Initiative.Remove(e.ID)

	if e.Boss {
		site := s.site()
		if !site.Cleared {
			site.Cleared = true
			events = append(events, domain.NewEvent(domain.EventDiscovery,
				"The guardian is down. %s falls silent.", site.Spec.Name))
		}
	}

	s.log.WithFields(logrus.Fields{
		"enemy": e.Name,
		"xp":    e.XPReward,
		"kills": pl.Kills,
	}).Debug("Enemy destroyed.")
	return events
}

// --- Внутренняя маршрутизация переходов ---

type landing uint8

const (
	landEntry landing = iota // у входа этажа (спуск)
	landExit                 // у шахты вниз (подъем с нижнего этажа)
)

// switchFloor меняет подземный этаж внутри текущей зоны.
func (s *Session) switchFloor(siteIdx, depth int, land landing) ([]domain.Event, bool) {
	lvl, err := s.Cache.Checkout(siteIdx, depth)
	if err != nil {
		s.log.WithField("error", err).Error("Floor checkout failed")
		return refusal("The shaft is blocked."), false
	}

	descending := depth > s.Depth
	s.Depth = depth
	s.Level = lvl
	if land == landExit {
		s.Player.Pos = lvl.Exit
	} else {
		s.Player.Pos = lvl.Entry
	}
	s.Initiative.RebuildFrom(lvl)
	s.refreshVision()
	s.noteDepth(depth)

	var events []domain.Event
	if descending {
		events = append(events, domain.NewEvent(domain.EventTransition,
			"You descend to %s.", lvl.Theme))
		if msg := s.site().Spec.ThemeAt(depth).Message; msg != "" {
			events = append(events, domain.NewEvent(domain.EventInfo, "%s", msg))
		}
	} else {
		events = append(events, domain.NewEvent(domain.EventTransition,
			"You climb back up to %s.", lvl.Theme))
	}
	return events, true
}

// enterSite спускается с поверхности на первый этаж зоны.
func (s *Session) enterSite(target int) ([]domain.Event, bool) {
	site, ok := s.Campaign.Site(target)
	if !ok {
		return refusal("The entrance is sealed."), false
	}

	lvl, err := s.Cache.Checkout(target, 1)
	if err != nil {
		s.log.WithField("error", err).Error("Site checkout failed")
		return refusal("The entrance is sealed."), false
	}

	s.SiteIndex = target
	s.Depth = 1
	s.Level = lvl
	s.Player.Pos = lvl.Entry
	s.Initiative.RebuildFrom(lvl)
	s.refreshVision()
	s.noteDepth(1)

	events := []domain.Event{domain.NewEvent(domain.EventTransition,
		"You descend into %s. %s.", site.Spec.Name, lvl.Theme)}
	if msg := site.Spec.ThemeAt(1).Message; msg != "" {
		events = append(events, domain.NewEvent(domain.EventInfo, "%s", msg))
	}
	return events, true
}

// surface выводит оператора с первого этажа на поверхность: свою для
// верхнеуровневой зоны, родительскую для мини-зоны.
func (s *Session) surface() ([]domain.Event, bool) {
	from := s.site()

	surfaceIdx := s.SiteIndex
	if !from.Top() {
		surfaceIdx = from.ParentIndex
	}

	lvl, err := s.Cache.Checkout(surfaceIdx, 0)
	if err != nil {
		s.log.WithField("error", err).Error("Surface checkout failed")
		return refusal("The shaft is blocked."), false
	}

	// Выход ставит оператора на ту точку интереса, через которую
	// зона была входима; упавший поиск — на площадку.
	pos, found := lvl.Entry, false
	for _, poi := range lvl.POIs {
		if from.Top() && poi.Main {
			pos, found = poi.Pos, true
			break
		}
		if !from.Top() && poi.SiteIndex == from.Index {
			pos, found = poi.Pos, true
			break
		}
	}
	if !found {
		s.log.WithField("site", from.Spec.Name).Warn("Surface POI not found, landing on the pad")
	}

	s.SiteIndex = surfaceIdx
	s.Depth = 0
	s.Level = lvl
	s.Player.Pos = pos
	s.Initiative.RebuildFrom(lvl)
	s.refreshVision()

	return []domain.Event{domain.NewEvent(domain.EventTransition,
		"You climb out under the open sky of %s.", lvl.Site)}, true
}

// noteDepth обновляет рекорд глубины рейда.
func (s *Session) noteDepth(depth int) {
	if depth > s.Player.DeepestDepth {
		s.Player.DeepestDepth = depth
	}
}

func refusal(format string, args ...interface{}) []domain.Event {
	return []domain.Event{domain.NewEvent(domain.EventRefusal, format, args...)}
}
