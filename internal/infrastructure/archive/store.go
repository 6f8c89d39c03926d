package archive

import "time"

// RunRecord — итог одного забега кампании.
type RunRecord struct {
	Callsign string `json:"callsign"`

	// Outcome финальное состояние сессии: ESCAPED, DEAD или RESTARTED.
	Outcome string `json:"outcome"`

	// Site последняя зона, где оператор находился в момент финала.
	Site string `json:"site"`

	// Depth глубочайший достигнутый этаж за весь забег.
	Depth int `json:"depth"`

	Turns   int `json:"turns"`
	Kills   int `json:"kills"`
	Credits int `json:"credits"`

	// Seed зерно кампании этого забега (мастер-зерно + номер забега).
	Seed     int64 `json:"seed"`
	RunIndex int   `json:"runIndex"`

	FinishedAt time.Time `json:"finishedAt"`
}

// Store определяет интерфейс журнала забегов.
type Store interface {
	SaveRun(rec RunRecord) error
	RecentRuns(limit int) ([]RunRecord, error)
	Close() error
}
