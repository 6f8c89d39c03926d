package domain

// TileKind — тип тайла. Закрытый enum: генератор не производит
// других значений, switch по нему обязан быть исчерпывающим.
type TileKind uint8

const (
	TileWall TileKind = iota
	TileFloor
	TileDoor
	TileStairUp
	TileStairDown

	// Поверхностные тайлы. Под землей не встречаются.
	TileRidge
	TileWater
	TileCrystal
	TileShrub
	TileScrap
	TileTree
	TilePad
)

var tileKindToString = map[TileKind]string{
	TileWall:      "WALL",
	TileFloor:     "FLOOR",
	TileDoor:      "DOOR",
	TileStairUp:   "STAIR_UP",
	TileStairDown: "STAIR_DOWN",
	TileRidge:     "RIDGE",
	TileWater:     "WATER",
	TileCrystal:   "CRYSTAL",
	TileShrub:     "SHRUB",
	TileScrap:     "SCRAP",
	TileTree:      "TREE",
	TilePad:       "PAD",
}

// String возвращает имя тайла для логов и дебага.
func (k TileKind) String() string {
	if val, ok := tileKindToString[k]; ok {
		return val
	}
	return "UNKNOWN"
}

// Walkable — можно ли стоять на тайле. Хребты и вода непроходимы,
// растительность и обломки на поверхности — обычная земля.
func (k TileKind) Walkable() bool {
	switch k {
	case TileFloor, TileDoor, TileStairUp, TileStairDown,
		TileCrystal, TileShrub, TileScrap, TileTree, TilePad:
		return true
	case TileWall, TileRidge, TileWater:
		return false
	default:
		return false
	}
}

// Opaque — блокирует ли тайл линию зрения.
// Двери здесь прозрачные: это косметическая пометка стыка
// коридора с комнатой, а не механическая преграда.
// Вода тоже прозрачная: через нее видно, но не пройти.
func (k TileKind) Opaque() bool {
	switch k {
	case TileWall, TileRidge:
		return true
	default:
		return false
	}
}

// Rune возвращает классический символ тайла для дебаг-дампов карт.
func (k TileKind) Rune() rune {
	switch k {
	case TileWall:
		return '#'
	case TileFloor:
		return '.'
	case TileDoor:
		return '+'
	case TileStairUp:
		return '<'
	case TileStairDown:
		return '>'
	case TileRidge:
		return '^'
	case TileWater:
		return '~'
	case TileCrystal:
		return '*'
	case TileShrub:
		return '"'
	case TileScrap:
		return '&'
	case TileTree:
		return 'T'
	case TilePad:
		return 'H'
	default:
		return '?'
	}
}

var runeToTile = map[rune]TileKind{
	'#': TileWall,
	'.': TileFloor,
	'+': TileDoor,
	'<': TileStairUp,
	'>': TileStairDown,
	'^': TileRidge,
	'~': TileWater,
	'*': TileCrystal,
	'"': TileShrub,
	'&': TileScrap,
	'T': TileTree,
	'H': TilePad,
}

// TileFromRune — обратная к Rune конвертация. Нужна клиентам,
// восстанавливающим карту из кадров: неизвестный символ безопаснее
// считать стеной, чем полом.
func TileFromRune(r rune) TileKind {
	if k, ok := runeToTile[r]; ok {
		return k
	}
	return TileWall
}
