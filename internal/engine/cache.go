package engine

import (
	"errors"
	"fmt"
	"math/rand"
	"sort"

	"erebus-server/internal/domain"
	"erebus-server/pkg/dungeon"
	"erebus-server/pkg/logger"

	"github.com/sirupsen/logrus"
)

// ErrUnknownSite — запрошен индекс вне реестра кампании.
var ErrUnknownSite = errors.New("unknown site index")

// ErrNoSurface — у мини-зоны запрошена глубина 0: поверхности у нее нет.
var ErrNoSurface = errors.New("site has no surface")

type cacheKey struct {
	Site  int
	Depth int
}

// LocationCache — кэш уровней кампании с ключом (зона, глубина).
//
// Первый запрос пары прогоняет генератор и заселение, каждый следующий
// возвращает ТОТ ЖЕ указатель: все мутации идут через общий хэндл,
// коллекции уровня никогда не пересоздаются. Замены и удаления нет
// вовсе — единственный снос кэша это сброс рейда, который роняет
// кампанию целиком.
type LocationCache struct {
	campaign *Campaign
	levels   map[cacheKey]*domain.Level

	// Активная выписка. Сессия обязана мутировать только выписанный
	// уровень; на отладочных сборках нарушение ловится паникой.
	active    cacheKey
	hasActive bool
	debug     bool

	log *logrus.Entry
}

// NewLocationCache создает пустой кэш поверх кампании.
func NewLocationCache(c *Campaign, debug bool) *LocationCache {
	return &LocationCache{
		campaign: c,
		levels:   make(map[cacheKey]*domain.Level),
		debug:    debug,
		log: logger.Log.WithFields(logrus.Fields{
			"component":   "location_cache",
			"master_seed": c.MasterSeed,
		}),
	}
}

// GetOrCreate возвращает уровень зоны на глубине, порождая его при
// первом обращении. Глубина 0 — поверхность, есть только у
// верхнеуровневых зон.
func (lc *LocationCache) GetOrCreate(siteIdx, depth int) (*domain.Level, error) {
	key := cacheKey{Site: siteIdx, Depth: depth}
	if lvl, ok := lc.levels[key]; ok {
		return lvl, nil
	}

	site, ok := lc.campaign.Site(siteIdx)
	if !ok {
		return nil, fmt.Errorf("get or create (%d, %d): %w", siteIdx, depth, ErrUnknownSite)
	}
	if depth == 0 && !site.Top() {
		return nil, fmt.Errorf("get or create (%d, %d): %w", siteIdx, depth, ErrNoSurface)
	}

	lvl := lc.build(site, depth)
	lc.levels[key] = lvl

	lc.log.WithFields(logrus.Fields{
		"site":  site.Spec.Name,
		"depth": depth,
		"seed":  lvl.Seed,
	}).Info("Level generated and cached.")
	return lvl, nil
}

// Checkout выписывает уровень активной сессии. Все мутации хода должны
// идти в выписанный уровень.
func (lc *LocationCache) Checkout(siteIdx, depth int) (*domain.Level, error) {
	lvl, err := lc.GetOrCreate(siteIdx, depth)
	if err != nil {
		return nil, err
	}
	lc.active = cacheKey{Site: siteIdx, Depth: depth}
	lc.hasActive = true
	return lvl, nil
}

// AssertHeld паникует на отладочных сборках, если уровень не совпадает
// с активной выпиской. Это ошибка программирования, а не игровая
// ситуация: восстановления нет.
func (lc *LocationCache) AssertHeld(lvl *domain.Level) {
	if !lc.debug {
		return
	}
	if !lc.hasActive || lc.levels[lc.active] != lvl {
		panic(fmt.Sprintf("inconsistent cache access: level %q depth %d mutated outside the active checkout",
			lvl.Site, lvl.Depth))
	}
}

// Size — число порожденных уровней.
func (lc *LocationCache) Size() int {
	return len(lc.levels)
}

// DebugDump возвращает снимок кэша для отладочных ручек,
// упорядоченный по (зона, глубина).
func (lc *LocationCache) DebugDump() []map[string]interface{} {
	keys := make([]cacheKey, 0, len(lc.levels))
	for key := range lc.levels {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Site != keys[j].Site {
			return keys[i].Site < keys[j].Site
		}
		return keys[i].Depth < keys[j].Depth
	})

	result := make([]map[string]interface{}, 0, len(keys))
	for _, key := range keys {
		lvl := lc.levels[key]
		result = append(result, map[string]interface{}{
			"site":     key.Site,
			"depth":    key.Depth,
			"seed":     lvl.Seed,
			"name":     lvl.Site,
			"enemies":  len(lvl.Enemies),
			"explored": len(lvl.Explored),
			"active":   lc.hasActive && key == lc.active,
		})
	}
	return result
}

// build порождает уровень: поверхность для глубины 0, иначе подземный
// этаж с лестницами и населением. Сид уровня = сид зоны + глубина.
func (lc *LocationCache) build(site *Site, depth int) *domain.Level {
	seed := site.Seed + int64(depth)
	rng := rand.New(rand.NewSource(seed))

	if depth == 0 {
		lvl := dungeon.GenerateOverland(site.Spec, lc.campaign.POISpecs(site),
			domain.DefaultMapWidth, domain.DefaultMapHeight, rng)
		lvl.Seed = seed
		return lvl
	}

	theme := site.Spec.ThemeAt(depth)
	grid, rooms, err := dungeon.Generate(domain.DefaultMapWidth, domain.DefaultMapHeight, rng, theme.Params())
	if err != nil {
		// Деградация вместо падения: фиксированная малая планировка.
		lc.log.WithFields(logrus.Fields{
			"site":  site.Spec.Name,
			"depth": depth,
			"error": err,
		}).Warn("Generation failed after retries, using fallback layout.")
		grid, rooms = dungeon.FallbackLayout(domain.DefaultMapWidth, domain.DefaultMapHeight)
	}

	lvl := domain.NewLevel(depth, grid)
	lvl.Seed = seed
	lvl.Site = site.Spec.Name
	lvl.Theme = site.Spec.FloorName(depth)
	lvl.Rooms = rooms
	lvl.Entry = rooms[0].Center()
	lvl.Exit = rooms[len(rooms)-1].Center()

	// Шахта наверх есть на каждом этаже: с первого она ведет на
	// поверхность. Шахта вниз — только выше дна зоны.
	grid.Set(lvl.Entry, domain.TileStairUp)
	if depth < site.Spec.Depths {
		grid.Set(lvl.Exit, domain.TileStairDown)
		lvl.HasExit = true
	}

	dungeon.NewPopulator(lc.campaign.Seq).Populate(lvl, site.Spec, theme, rng)
	return lvl
}
