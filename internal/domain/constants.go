package domain

// Геометрия уровней по умолчанию
const (
	DefaultMapWidth  = 80
	DefaultMapHeight = 40
)

// Параметры восприятия
const (
	BaseFOVRadius = 8
)

// Прогрессия персонажа
const (
	XPPerRank          = 100
	SkillPointsPerRank = 2
	MaxInventory       = 12
	StartingFuel       = 3
)

// Помехи сигнала (растут на нижних этажах главного узла)
const (
	CorruptionMax       = 100
	CorruptionResetTo   = 40
	CorruptionTierLow   = 25
	CorruptionTierMid   = 50
	CorruptionTierHigh  = 75
	CorruptionFloorFrom = 7 // с какой глубины главный узел фонит
)

// Дым
const (
	SmokeRadius = 3
	SmokeTurns  = 3
)

// Особые комнаты
const (
	VaultCost      = 50 // кредиты за взлом сейфа
	VaultMinDepth  = 4
	MaxSpecialRoom = 2 // на этаж
)

// Бюджеты генерации
const (
	PlacementAttempts = 40 // попыток на одну точку расстановки
	GenerationRetries = 3  // перегенераций с ослабленными размерами комнат
	EnemyBaseCount    = 3  // база формулы численности: base + 2*depth
	ItemsPerFloor     = 6
	TerminalsPerFloor = 2
)
