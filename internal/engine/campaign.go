package engine

import (
	"erebus-server/internal/core/types"
	"erebus-server/pkg/dungeon"
)

// Site — зона в развернутом реестре кампании. Верхнеуровневые зоны
// идут первыми и совпадают индексами с dungeon.Sites(); мини-зоны
// дописываются следом в порядке родителей, так что индексация
// детерминирована и сиды зон воспроизводимы.
type Site struct {
	Spec  dungeon.SiteSpec
	Index int
	Seed  int64

	// ParentIndex — индекс родительской площадки для мини-зоны,
	// -1 у верхнеуровневых.
	ParentIndex int

	// Marker — символ входа на родительской поверхности (у мини-зон).
	Marker string

	// Cleared выставляется после уничтожения стража.
	Cleared bool
}

// Top — верхнеуровневая ли зона (своя поверхность, цена перелета).
func (s *Site) Top() bool {
	return s.ParentIndex < 0
}

// Campaign — мир одного рейда: реестр зон и общий счетчик ID акторов.
// Создается на каждый рейд заново; рестарт бросает кампанию целиком
// и собирает новую со следующим сидом.
type Campaign struct {
	MasterSeed int64
	Sites      []*Site
	Seq        *types.Sequence
}

// NewCampaign разворачивает реестр зон из каталога. Порядок значим:
// сид зоны выводится из ее плоского индекса.
func NewCampaign(masterSeed int64) *Campaign {
	roster := dungeon.Sites()
	c := &Campaign{
		MasterSeed: masterSeed,
		Seq:        types.NewSequence(),
	}

	for i := range roster {
		c.Sites = append(c.Sites, &Site{
			Spec:        roster[i],
			Index:       i,
			ParentIndex: -1,
			Seed:        siteSeed(masterSeed, i),
		})
	}
	for i := range roster {
		for _, mini := range roster[i].Minis {
			idx := len(c.Sites)
			c.Sites = append(c.Sites, &Site{
				Spec:        mini.Site,
				Index:       idx,
				ParentIndex: i,
				Marker:      mini.Symbol,
				Seed:        siteSeed(masterSeed, idx),
			})
		}
	}
	return c
}

func siteSeed(master int64, index int) int64 {
	return master + 1000*int64(index+1)
}

// Site возвращает зону по плоскому индексу.
func (c *Campaign) Site(index int) (*Site, bool) {
	if index < 0 || index >= len(c.Sites) {
		return nil, false
	}
	return c.Sites[index], true
}

// MinisOf возвращает мини-зоны площадки в порядке реестра.
func (c *Campaign) MinisOf(parent int) []*Site {
	var minis []*Site
	for _, s := range c.Sites {
		if s.ParentIndex == parent {
			minis = append(minis, s)
		}
	}
	return minis
}

// POISpecs собирает заявки на точки интереса для поверхности площадки:
// главный вход первым, затем входы мини-зон. SiteIndex главного входа
// равен -1 — он ведет в подземелье самой площадки.
func (c *Campaign) POISpecs(site *Site) []dungeon.POISpec {
	specs := []dungeon.POISpec{{
		Label:     site.Spec.EntranceLabel,
		Symbol:    site.Spec.EntranceSymbol,
		Main:      true,
		SiteIndex: -1,
	}}
	for _, mini := range c.MinisOf(site.Index) {
		specs = append(specs, dungeon.POISpec{
			Label:     mini.Spec.Name,
			Symbol:    mini.Marker,
			SiteIndex: mini.Index,
		})
	}
	return specs
}
