package agent

import (
	"encoding/json"
	"sort"

	"github.com/sirupsen/logrus"

	"erebus-server/internal/domain"
	"erebus-server/internal/engine"
	"erebus-server/internal/systems"
	"erebus-server/pkg/api"
	"erebus-server/pkg/logger"
	"erebus-server/pkg/utils"
)

// botTurnBudget — потолок кадров на весь прогон. Страховка от
// зацикливания, если бот застрянет в геометрии, которую не понимает.
const botTurnBudget = 5000

// Bot — это "оператор-компьютер" (Headless Agent).
// Он подключается к движку тем же путем, что и живой клиент: регистрируется
// в хабе, получает кадры STATE и шлет обычные команды протокола. Никакого
// доступа к внутренностям сессии у него нет, решает он только по тому,
// что сервер показал бы человеку.
//
// Жизненный цикл:
//  1. NewBot -> Регистрация в хабе, получение личного канала (Inbox).
//  2. Run -> Запуск в отдельной горутине: INIT, затем реакция на каждый кадр.
//  3. После смерти шлет RESTART, пока не исчерпает бюджет забегов.
type Bot struct {
	ClientID string
	Service  *engine.GameService
	Inbox    chan api.ServerResponse

	// MaxRuns — сколько забегов бот доигрывает до конца перед остановкой.
	MaxRuns int

	runsDone  int
	frames    int
	errStreak int

	done chan struct{}
	log  *logrus.Entry
}

func NewBot(service *engine.GameService, maxRuns int) *Bot {
	if maxRuns <= 0 {
		maxRuns = 1
	}
	id := "bot_" + utils.GenerateID()
	return &Bot{
		ClientID: id,
		Service:  service,
		// Бот регистрируется в хабе как обычный клиент и получает свой канал.
		Inbox:   service.Hub.Register(id),
		MaxRuns: maxRuns,
		done:    make(chan struct{}),
		log:     logger.Log.WithFields(logrus.Fields{"component": "agent", "client_id": id}),
	}
}

// Done закрывается, когда бот доиграл все забеги.
func (b *Bot) Done() <-chan struct{} {
	return b.done
}

// Run запускает цикл жизни бота. Должен быть запущен в горутине.
func (b *Bot) Run() {
	defer close(b.done)
	defer b.Service.Hub.Unregister(b.ClientID)
	defer b.Service.Disconnect(b.ClientID)

	b.Service.Connect(b.ClientID)

	// Пустой INIT дает стандартного "Drifter", для дымового прогона хватает.
	b.send(domain.ActionInit, nil)

	for frame := range b.Inbox {
		switch frame.Type {
		case api.ResponseState:
			b.errStreak = 0
			if frame.State == nil || !b.react(frame.State) {
				b.log.WithFields(logrus.Fields{
					"frames": b.frames,
					"runs":   b.runsDone,
				}).Info("Agent shutting down")
				return
			}

		case api.ResponseError:
			b.log.WithField("text", frame.Text).Warn("Server rejected command")
			b.errStreak++
			if b.errStreak > 3 {
				b.log.Error("Too many rejections in a row, giving up")
				return
			}
			b.send(domain.ActionWait, nil)
		}
		// TERMINAL кадры бот пропускает: читать записи ему незачем.
	}
}

// react разбирает кадр STATE и отправляет ровно одну команду.
// Возвращает false, когда пора останавливаться.
func (b *Bot) react(state *api.StateView) bool {
	if b.frames >= botTurnBudget {
		b.log.Warn("Turn budget exhausted")
		return false
	}
	b.frames++

	// Замерзший забег: перезапускаемся, пока есть бюджет.
	switch state.Session {
	case "DEAD", "ESCAPED":
		b.runsDone++
		b.log.WithFields(logrus.Fields{
			"outcome": state.Session,
			"turns":   state.Turn,
			"depth":   state.Depth,
		}).Info("Run finished")
		if b.runsDone >= b.MaxRuns {
			return false
		}
		b.send(domain.ActionRestart, nil)
		return true

	case "RESTARTED":
		// Следом придет кадр нового забега, команда не нужна.
		return true
	}

	// Лечимся раньше, чем думаем: ниже 30% здоровья аптечка важнее пути.
	if state.Panel.MaxHP > 0 && state.Panel.HP*10 < state.Panel.MaxHP*3 {
		for slot, name := range state.Panel.Inventory {
			if name == "Medkit" {
				b.send(domain.ActionUse, api.UsePayload{Slot: slot})
				return true
			}
		}
	}

	me, ok := findSelf(state)
	if !ok {
		b.send(domain.ActionWait, nil)
		return true
	}

	grid, explored := buildLocalGrid(state)

	// Стоим на точке спуска — спускаемся.
	if standingOnDescend(state, grid, me) {
		b.send(domain.ActionDescend, nil)
		return true
	}

	// Идем к ближайшей цели, до которой есть путь.
	for _, goal := range b.goals(state, grid, explored, me) {
		path := systems.FindPath(grid, me, goal, func(domain.Position) bool { return true })
		if len(path) > 0 {
			step := path[0]
			b.send(domain.ActionMove, api.MovePayload{Dx: step.X - me.X, Dy: step.Y - me.Y})
			return true
		}
	}

	b.send(domain.ActionWait, nil)
	return true
}

// findSelf ищет оператора среди видимых акторов кадра.
func findSelf(state *api.StateView) (domain.Position, bool) {
	for _, av := range state.Actors {
		if av.Player {
			return domain.Position{X: av.X, Y: av.Y}, true
		}
	}
	return domain.Position{}, false
}

// buildLocalGrid восстанавливает карту из кадра. Все, что бот не видел,
// остается стеной: пути в неизвестность не строятся.
func buildLocalGrid(state *api.StateView) (*domain.Grid, map[domain.Position]bool) {
	grid := domain.NewGrid(state.Grid.Width, state.Grid.Height)
	explored := make(map[domain.Position]bool, len(state.Tiles))

	for _, tv := range state.Tiles {
		pos := domain.Position{X: tv.X, Y: tv.Y}
		for _, r := range tv.Symbol {
			grid.Set(pos, domain.TileFromRune(r))
			break
		}
		explored[pos] = true
	}
	return grid, explored
}

// standingOnDescend — можно ли прямо сейчас уходить вниз.
// Под землей это шахта под ногами, на поверхности — точка интереса.
func standingOnDescend(state *api.StateView, grid *domain.Grid, me domain.Position) bool {
	if state.Depth > 0 {
		return grid.At(me) == domain.TileStairDown
	}
	for _, poi := range state.POIs {
		if poi.X == me.X && poi.Y == me.Y {
			return true
		}
	}
	return false
}

// goals собирает цели в порядке убывания интереса: шахты вниз или входы,
// затем граница исследованного. Кадры сервера детерминированы, поэтому
// и выбор целей детерминирован.
func (b *Bot) goals(state *api.StateView, grid *domain.Grid, explored map[domain.Position]bool, me domain.Position) []domain.Position {
	var targets []domain.Position

	if state.Depth > 0 {
		for _, tv := range state.Tiles {
			pos := domain.Position{X: tv.X, Y: tv.Y}
			if grid.At(pos) == domain.TileStairDown {
				targets = append(targets, pos)
			}
		}
		sortByDistance(targets, me)
	} else {
		// Главный вход важнее прочих точек, сколь угодно близких.
		var minis []domain.Position
		for _, poi := range state.POIs {
			pos := domain.Position{X: poi.X, Y: poi.Y}
			if poi.Main {
				targets = append(targets, pos)
			} else {
				minis = append(minis, pos)
			}
		}
		sortByDistance(targets, me)
		sortByDistance(minis, me)
		targets = append(targets, minis...)
	}

	// Граница исследованного: проходимые тайлы с неизведанным соседом.
	var frontier []domain.Position
	for _, tv := range state.Tiles {
		pos := domain.Position{X: tv.X, Y: tv.Y}
		if !grid.At(pos).Walkable() {
			continue
		}
		for _, d := range [4][2]int{{0, -1}, {0, 1}, {-1, 0}, {1, 0}} {
			n := domain.Position{X: pos.X + d[0], Y: pos.Y + d[1]}
			if grid.InBounds(n.X, n.Y) && !explored[n] {
				frontier = append(frontier, pos)
				break
			}
		}
	}
	sortByDistance(frontier, me)

	// Дальние кандидаты не нужны: первый достижимый и так ближайший.
	if len(frontier) > 8 {
		frontier = frontier[:8]
	}

	return append(targets, frontier...)
}

func sortByDistance(ps []domain.Position, from domain.Position) {
	sort.Slice(ps, func(i, j int) bool {
		di, dj := ps[i].ManhattanTo(from), ps[j].ManhattanTo(from)
		if di != dj {
			return di < dj
		}
		if ps[i].Y != ps[j].Y {
			return ps[i].Y < ps[j].Y
		}
		return ps[i].X < ps[j].X
	})
}

// send отправляет команду движку от имени бота.
func (b *Bot) send(action domain.ActionType, payload interface{}) {
	cmd := api.ClientCommand{Action: action.String()}
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			b.log.WithError(err).Error("Failed to marshal payload")
			return
		}
		cmd.Payload = data
	}
	b.Service.Dispatch(b.ClientID, cmd)
}
