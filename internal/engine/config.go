package engine

import "time"

// Config хранит параметры запуска движка
type Config struct {
	// Seed - мастер-зерно кампании. От него выводятся сиды всех зон:
	// Site N Seed = MasterSeed + 1000*(N+1), Level Seed = Site Seed + Depth.
	Seed int64

	// DebugChecks включает ассерты целостности (паника при мутации
	// уровня вне активной выписки). На боевых сборках выключено.
	DebugChecks bool

	// Cheats разрешает команду CHEAT.
	Cheats bool
}

// NewConfig создает конфиг по умолчанию (случайный сид)
func NewConfig() Config {
	return Config{
		Seed: time.Now().UnixNano(),
	}
}
