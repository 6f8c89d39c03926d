package api

import (
	"encoding/json"
)

// --- СЕРВЕР -> КЛИЕНТ ---

// Типы кадров сервера.
const (
	ResponseState    = "STATE"    // снимок мира после хода
	ResponseInfo     = "INFO"     // служебный текст вне симуляции
	ResponseError    = "ERROR"    // отвергнутая команда
	ResponseTerminal = "TERMINAL" // полноэкранная запись терминала
)

// ServerResponse это корневой объект, который сервер отправляет клиенту.
// STATE несет полный снимок мира, видимый оператору, и приходит после
// каждого разрешенного хода. TERMINAL вкладывается перед STATE того же
// хода, когда оператор читает запись данных.
type ServerResponse struct {
	Type string `json:"type"`

	// State полный снимок для кадров STATE.
	State *StateView `json:"state,omitempty"`

	// Terminal запись данных для кадров TERMINAL.
	Terminal *TerminalView `json:"terminal,omitempty"`

	// Text пояснение для кадров INFO и ERROR.
	Text string `json:"text,omitempty"`
}

// StateView это полный "снимок" мира для одного оператора: только
// исследованные тайлы, только видимые акторы, только замеченные ловушки.
type StateView struct {
	// Turn текущий номер хода сессии. Увеличивается с каждым
	// потраченным действием.
	Turn int `json:"turn"`

	// Session состояние автомата сессии: ACTIVE, ESCAPED, DEAD, RESTARTED.
	Session string `json:"session"`

	Site  string `json:"site"`
	Depth int    `json:"depth"`
	Floor string `json:"floor"`

	// RenderRadius радиус отрисовки с учетом помех сигнала.
	// КЛИЕНТ ДОЛЖЕН ГАСИТЬ ТАЙЛЫ ЗА ЭТИМ РАДИУСОМ. Сам видимый набор
	// в Tiles считается от полного радиуса, штраф чисто визуальный.
	RenderRadius int `json:"renderRadius"`

	// Grid метаданные о размере всей карты.
	Grid GridMeta `json:"grid"`

	// Tiles срез исследованных тайлов. Неисследованные не передаются.
	Tiles []TileView `json:"tiles"`

	// Actors срез видимых акторов, оператор всегда первым.
	Actors []ActorView `json:"actors"`

	Items    []ItemView    `json:"items,omitempty"`
	Hazards  []HazardView  `json:"hazards,omitempty"`
	Features []FeatureView `json:"features,omitempty"`
	POIs     []POIView     `json:"pois,omitempty"`

	Panel PanelView `json:"panel"`

	// Events срез нарратива, сгенерированного этим ходом.
	Events []EventView `json:"events"`
}

// GridMeta содержит общие размеры карты, чтобы клиент знал,
// какую сетку для рендеринга нужно подготовить.
type GridMeta struct {
	Width  int `json:"w"`
	Height int `json:"h"`
}

// TileView это DTO одного исследованного тайла.
type TileView struct {
	X int `json:"x"`
	Y int `json:"y"`

	// Symbol визуальное представление тайла (e.g. "#" для стены).
	Symbol string `json:"symbol"`

	// Visible true, если тайл в текущем поле зрения. Рендерится ярко;
	// исследованный, но невидимый тайл рендерится тускло.
	Visible bool `json:"visible"`
}

// ActorView это DTO видимого актора.
type ActorView struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Symbol string `json:"symbol"`
	X      int    `json:"x"`
	Y      int    `json:"y"`
	HP     int    `json:"hp"`
	MaxHP  int    `json:"maxHp"`

	// Player true у актора, которым управляет этот клиент.
	Player bool `json:"player,omitempty"`
}

// ItemView это DTO предмета, лежащего на видимом тайле.
type ItemView struct {
	X      int    `json:"x"`
	Y      int    `json:"y"`
	Name   string `json:"name"`
	Symbol string `json:"symbol"`
}

// HazardView это DTO замеченной ловушки. Скрытые ловушки не передаются.
type HazardView struct {
	X      int    `json:"x"`
	Y      int    `json:"y"`
	Kind   string `json:"kind"`
	Symbol string `json:"symbol"`

	// Planted true у зарядов, установленных самим оператором.
	Planted bool `json:"planted,omitempty"`
}

// FeatureView это DTO интерактивного объекта (терминалы, сейфы).
type FeatureView struct {
	X      int    `json:"x"`
	Y      int    `json:"y"`
	Kind   string `json:"kind"`
	Symbol string `json:"symbol"`
	Used   bool   `json:"used,omitempty"`
}

// POIView это DTO точки интереса на поверхности.
type POIView struct {
	X      int    `json:"x"`
	Y      int    `json:"y"`
	Label  string `json:"label"`
	Symbol string `json:"symbol"`
	Main   bool   `json:"main,omitempty"`
}

// PanelView это DTO бокового статус-экрана оператора.
type PanelView struct {
	Callsign    string `json:"callsign"`
	Rank        int    `json:"rank"`
	XP          int    `json:"xp"`
	XPNext      int    `json:"xpNext"`
	SkillPoints int    `json:"skillPoints,omitempty"`

	HP    int `json:"hp"`
	MaxHP int `json:"maxHp"`

	Attack int `json:"attack"`
	Dodge  int `json:"dodge"`

	Credits    int `json:"credits"`
	Fuel       int `json:"fuel"`
	Corruption int `json:"corruption"`
	Kills      int `json:"kills"`

	// Inventory имена предметов по слотам; индекс слота и есть
	// аргумент команды USE.
	Inventory []string `json:"inventory"`

	Effects []EffectView `json:"effects,omitempty"`
}

// EffectView это DTO активного статусного эффекта оператора.
type EffectView struct {
	Name      string `json:"name"`
	Remaining int    `json:"remaining"`
}

// EventView представляет одну строку нарратива хода.
type EventView struct {
	Kind string `json:"kind"` // INFO, COMBAT, HAZARD, DEATH, ...
	Text string `json:"text"`
}

// TerminalView это полноэкранная запись терминала данных.
type TerminalView struct {
	Title string   `json:"title"`
	Lines []string `json:"lines"`
}

// --- КЛИЕНТ -> СЕРВЕР ---

// ClientCommand это корневой объект для всех сообщений от клиента к серверу.
// Первой командой сессии обязан идти INIT с профилем персонажа.
type ClientCommand struct {
	// Action название действия, которое нужно выполнить.
	Action string `json:"action"`

	// Payload JSON-объект с данными для действия. Его структура зависит
	// от Action; у команд без данных (WAIT, ASCEND, ...) отсутствует.
	Payload json.RawMessage `json:"payload,omitempty"`
}

// --- Payloads ---

// InitPayload создает оператора. Пустой позывной означает
// стандартный профиль "Drifter".
type InitPayload struct {
	Callsign string `json:"callsign"`

	Body     int `json:"body"`
	Reflex   int `json:"reflex"`
	Mind     int `json:"mind"`
	Tech     int `json:"tech"`
	Presence int `json:"presence"`

	// Skills уровни навыков по именам (MELEE, TACTICS, ...).
	Skills map[string]int `json:"skills,omitempty"`
}

// MovePayload используется для MOVE. Диагонали разрешены.
type MovePayload struct {
	Dx int `json:"dx"` // Смещение по X (-1, 0, 1)
	Dy int `json:"dy"` // Смещение по Y (-1, 0, 1)
}

// UsePayload используется для USE: слот рюкзака из PanelView.Inventory.
type UsePayload struct {
	Slot int `json:"slot"`
}

// TravelPayload используется для TRAVEL: индекс зоны в реестре кампании.
type TravelPayload struct {
	Site int `json:"site"`
}

// CheatPayload используется для CHEAT на отладочных сборках.
type CheatPayload struct {
	Code string `json:"code"`
}
