package handlers

import (
	"encoding/json"
	"math/rand"

	"github.com/sirupsen/logrus"

	"erebus-server/internal/domain"
	"erebus-server/pkg/api"
	"erebus-server/pkg/dungeon"
)

// Switcher описывает переходы между уровнями и площадками.
// Session реализует этот интерфейс; хендлеры дергают его, не зная о движке.
type Switcher interface {
	// Descend спускает оператора на этаж ниже. bool — потрачен ли ход.
	Descend() ([]domain.Event, bool)
	// Ascend поднимает на этаж выше, на поверхность или запускает взлет.
	Ascend() ([]domain.Event, bool)
	// Travel перелетает на другую площадку по ее индексу.
	Travel(site int) ([]domain.Event, bool)
	// RequestReset помечает сессию на перезапуск кампании.
	RequestReset()
	// ReportKill оформляет смерть врага: награда, снятие с уровня, сплэш.
	ReportKill(e *domain.Actor) []domain.Event
}

// Context передает хендлеру состояние мира.
// Мы передаем ссылки, чтобы хендлер мог менять состояние (мутировать данные).
type Context struct {
	Player  *domain.Player
	Level   *domain.Level
	Depth   int
	Site    dungeon.SiteSpec
	Turn    int
	Rng     *rand.Rand
	Effects domain.EffectTable
	Hazards domain.HazardTable
	Items   domain.ItemTable
	Switch  Switcher
	Log     *logrus.Entry
}

// Result - возвращает результат выполнения команды.
// Хендлер НЕ пишет в логи сервиса напрямую, он возвращает данные.
type Result struct {
	Events   []domain.Event    // Нарратив для ленты клиента
	Spent    bool              // Потрачен ли ход (false = мир не тикает)
	Terminal *api.TerminalView // Полный текст терминала, если открывали его
}

// HandlerFunc - это контракт для любой команды (MOVE, USE, etc).
type HandlerFunc func(ctx Context, payload json.RawMessage) (Result, error)

// Spent - вспомогательная функция: ход потрачен, события приложены.
func Spent(evs ...domain.Event) Result {
	return Result{Events: evs, Spent: true}
}

// Refused - отказ без траты хода. Текст уходит игроку событием.
func Refused(format string, args ...interface{}) Result {
	return Result{Events: []domain.Event{domain.NewEvent(domain.EventRefusal, format, args...)}}
}
