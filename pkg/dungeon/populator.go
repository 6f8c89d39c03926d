package dungeon

import (
	"math/rand"

	"github.com/sirupsen/logrus"
	"github.com/zyedidia/generic/mapset"

	"erebus-server/internal/core/types"
	"erebus-server/internal/domain"
	"erebus-server/internal/domain/constraints"
	"erebus-server/pkg/logger"
)

// Populator наполняет вырезанный этаж контентом: врагами, лутом,
// терминалами, ловушками и особыми комнатами. Один популятор живет
// на всю кампанию и делит счетчик ID между этажами.
type Populator struct {
	Hazards domain.HazardTable
	Seq     *types.Sequence
}

// NewPopulator создает популятор с боевым каталогом ловушек.
func NewPopulator(seq *types.Sequence) *Populator {
	return &Populator{
		Hazards: domain.DefaultHazards(),
		Seq:     seq,
	}
}

// Populate раскладывает контент этажа в фиксированном порядке:
// враги, страж, лут, терминалы, особые комнаты, ловушки. Порядок
// менять нельзя, он прибит к потоку случайности и к накоплению
// занятых клеток.
func (pp *Populator) Populate(lvl *domain.Level, site SiteSpec, theme ThemeSpec, rng *rand.Rand) {
	occupied := mapset.New[domain.Position]()
	occupied.Put(lvl.Entry)
	// Выход бронируем всегда: на финальной глубине там встанет страж.
	occupied.Put(lvl.Exit)

	final := lvl.Depth >= site.Depths

	n := int(float64(domain.EnemyBaseCount+2*lvl.Depth) * site.Density)
	if n < 0 {
		n = 0
	}
	pp.ScatterEnemies(lvl, theme, n, occupied, rng)

	if final && site.Main {
		pp.PlaceGuardian(lvl)
	}

	pp.ScatterItems(lvl, domain.ItemsPerFloor, occupied, rng)
	pp.ScatterFeatures(lvl, domain.TerminalsPerFloor, occupied, rng)

	if !final {
		pp.PlaceSpecialRooms(lvl, rng)
		clearSpecialRooms(lvl)
	}

	var hazards int
	switch {
	case lvl.Depth <= 2:
		// Верхние палубы безопасны, генератор случайности не трогаем.
	case lvl.Depth <= 5:
		hazards = rng.Intn(3)
	default:
		hazards = 1 + rng.Intn(3)
	}
	if hazards > 0 {
		pp.ScatterHazards(lvl, hazards, occupied, rng)
	}
}

// ScatterEnemies расставляет n врагов по шаблонам, взвешенным темой.
func (pp *Populator) ScatterEnemies(lvl *domain.Level, theme ThemeSpec, n int, occupied mapset.Set[domain.Position], rng *rand.Rand) []*domain.Actor {
	tiles := roomTiles(lvl)
	placed := make([]*domain.Actor, 0, n)

	for i := 0; i < n; i++ {
		pos, ok := findSpot(lvl, tiles, occupied, rng)
		if !ok {
			warnNoSpot(lvl, "enemy")
			continue
		}
		spec := PickHostile(theme.Weights, rng)
		enemy := spec.Spawn(pos, lvl.Depth, pp.Seq)
		lvl.AddEnemy(enemy)
		occupied.Put(pos)
		placed = append(placed, enemy)
	}
	return placed
}

// ScatterItems раскидывает n расходников из напольной таблицы лута.
func (pp *Populator) ScatterItems(lvl *domain.Level, n int, occupied mapset.Set[domain.Position], rng *rand.Rand) int {
	tiles := roomTiles(lvl)
	placed := 0

	for i := 0; i < n; i++ {
		pos, ok := findSpot(lvl, tiles, occupied, rng)
		if !ok {
			warnNoSpot(lvl, "item")
			continue
		}
		lvl.Items[pos] = PickLoot(FloorLoot, rng)
		occupied.Put(pos)
		placed++
	}
	return placed
}

// ScatterFeatures расставляет n терминалов. Записи в них не кладем:
// текст генерируется при первом чтении.
func (pp *Populator) ScatterFeatures(lvl *domain.Level, n int, occupied mapset.Set[domain.Position], rng *rand.Rand) int {
	tiles := roomTiles(lvl)
	placed := 0

	for i := 0; i < n; i++ {
		pos, ok := findSpot(lvl, tiles, occupied, rng)
		if !ok {
			warnNoSpot(lvl, "terminal")
			continue
		}
		lvl.Features[pos] = &domain.Feature{Kind: domain.FeatureTerminal}
		occupied.Put(pos)
		placed++
	}
	return placed
}

// ScatterHazards раскидывает n ловушек. Вид тянется из взвешенной
// таблицы: мины чаще, разряды реже.
func (pp *Populator) ScatterHazards(lvl *domain.Level, n int, occupied mapset.Set[domain.Position], rng *rand.Rand) int {
	tiles := roomTiles(lvl)
	placed := 0

	for i := 0; i < n; i++ {
		pos, ok := findSpot(lvl, tiles, occupied, rng)
		if !ok {
			warnNoSpot(lvl, "hazard")
			continue
		}
		kind := pickHazardKind(rng)
		spec := pp.Hazards[kind]
		lvl.Hazards[pos] = &domain.Hazard{Kind: kind, TriggersLeft: spec.Triggers}
		occupied.Put(pos)
		placed++
	}
	return placed
}

// PlaceSpecialRooms назначает внутренним комнатам особые роли.
// Первая комната (вход) и последняя (выход) не участвуют. Повторов
// нет ни по роли, ни по комнате.
func (pp *Populator) PlaceSpecialRooms(lvl *domain.Level, rng *rand.Rand) []*domain.SpecialRoom {
	if len(lvl.Rooms) < 3 {
		return nil
	}
	interior := make([]domain.Room, len(lvl.Rooms)-2)
	copy(interior, lvl.Rooms[1:len(lvl.Rooms)-1])

	kinds := []domain.SpecialRoomKind{
		domain.SpecialArmory,
		domain.SpecialMedbay,
		domain.SpecialTerminals,
		domain.SpecialShop,
	}
	if lvl.Depth >= domain.VaultMinDepth {
		kinds = append(kinds, domain.SpecialVault)
	}

	n := min(domain.MaxSpecialRoom, len(interior))
	placed := make([]*domain.SpecialRoom, 0, n)

	for i := 0; i < n; i++ {
		ki := rng.Intn(len(kinds))
		ri := rng.Intn(len(interior))
		sr := &domain.SpecialRoom{Kind: kinds[ki], Room: interior[ri]}
		kinds = append(kinds[:ki], kinds[ki+1:]...)
		interior = append(interior[:ri], interior[ri+1:]...)

		lvl.Special = append(lvl.Special, sr)
		placed = append(placed, sr)
	}
	return placed
}

// PlaceGuardian ставит стража на выходную клетку финального этажа.
func (pp *Populator) PlaceGuardian(lvl *domain.Level) *domain.Actor {
	g := Guardian.Spawn(lvl.Exit, lvl.Depth, pp.Seq)
	lvl.AddEnemy(g)
	return g
}

// --- Вспомогательные функции ---

// roomTiles собирает пол всех комнат. Коридоры не включаются:
// контент живет только в комнатах.
func roomTiles(lvl *domain.Level) []domain.Position {
	var tiles []domain.Position
	for _, r := range lvl.Rooms {
		tiles = append(tiles, r.FloorTiles()...)
	}
	return tiles
}

// findSpot ищет свободную клетку с ограниченным числом проб.
func findSpot(lvl *domain.Level, tiles []domain.Position, occupied mapset.Set[domain.Position], rng *rand.Rand) (domain.Position, bool) {
	if len(tiles) == 0 {
		return domain.Position{}, false
	}
	for i := 0; i < domain.PlacementAttempts; i++ {
		p := tiles[rng.Intn(len(tiles))]
		if occupied.Has(p) {
			continue
		}
		if !constraints.Check(lvl, p,
			constraints.InsideRoom{},
			constraints.AwayFromStairs{},
			constraints.OutsideSpecialRooms{},
		) {
			continue
		}
		return p, true
	}
	return domain.Position{}, false
}

// clearSpecialRooms выметает случайный контент из особых комнат.
// Их наполнение кладется триггером первого входа, а враги внутри
// противоречили бы смыслу безопасной зоны.
func clearSpecialRooms(lvl *domain.Level) {
	rule := constraints.OutsideSpecialRooms{}
	for p := range lvl.Items {
		if !rule.Allow(lvl, p) {
			delete(lvl.Items, p)
		}
	}
	for p := range lvl.Features {
		if !rule.Allow(lvl, p) {
			delete(lvl.Features, p)
		}
	}
	for p := range lvl.Hazards {
		if !rule.Allow(lvl, p) {
			delete(lvl.Hazards, p)
		}
	}
	for p, e := range lvl.Enemies {
		if !rule.Allow(lvl, p) {
			lvl.RemoveEnemy(e)
		}
	}
}

func pickHazardKind(rng *rand.Rand) domain.HazardKind {
	roll := rng.Intn(100)
	switch {
	case roll < 40:
		return domain.HazardMine
	case roll < 70:
		return domain.HazardAcid
	default:
		return domain.HazardElectric
	}
}

func warnNoSpot(lvl *domain.Level, content string) {
	logger.Log.WithFields(logrus.Fields{
		"component": "populator",
		"depth":     lvl.Depth,
		"content":   content,
	}).Warn("No free tile after placement attempts, skipping")
}
