package systems

import "erebus-server/internal/domain"

// VisibleFrom возвращает набор клеток, видимых из origin в радиусе radius.
//
// Метрика отсечки евклидова (dx^2 + dy^2 <= r^2): поле зрения круглое,
// без раздутых углов чебышевского квадрата. До каждой клетки круга
// ведется луч Брезенхэма; луч останавливается на первой непрозрачной
// клетке, но сама она попадает в набор — стены видно, сквозь них нет.
//
// Симметрия дается самим построением: луч из A в B повторяет луч
// из B в A с точностью до направления обхода.
func VisibleFrom(g *domain.Grid, origin domain.Position, radius int) map[domain.Position]bool {
	visible := make(map[domain.Position]bool)
	if radius < 0 {
		return visible
	}
	visible[origin] = true

	r2 := radius * radius
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			if dx*dx+dy*dy > r2 {
				continue
			}
			target := origin.Shift(dx, dy)
			TraceLine(origin, target, func(p domain.Position) bool {
				if !g.InBounds(p.X, p.Y) {
					return false
				}
				visible[p] = true
				return !g.Opaque(p)
			})
		}
	}
	return visible
}
