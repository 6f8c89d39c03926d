package systems

import (
	"container/heap"

	"erebus-server/internal/domain"
)

// Порядок обхода соседей фиксирован: север, юг, запад, восток.
// Вместе с тай-брейком фронтира это дает воспроизводимые пути.
var pathNeighbors = [4]struct{ dx, dy int }{
	{0, -1},
	{0, 1},
	{-1, 0},
	{1, 0},
}

type pathNode struct {
	pos   domain.Position
	g     int // стоимость от старта
	f     int // g + эвристика
	index int
}

// pathFrontier — min-heap узлов фронтира.
// Сравнение (f, g, y, x): при равной стоимости раскрытие детерминировано.
type pathFrontier []*pathNode

func (pf pathFrontier) Len() int { return len(pf) }

func (pf pathFrontier) Less(i, j int) bool {
	a, b := pf[i], pf[j]
	if a.f != b.f {
		return a.f < b.f
	}
	if a.g != b.g {
		return a.g < b.g
	}
	if a.pos.Y != b.pos.Y {
		return a.pos.Y < b.pos.Y
	}
	return a.pos.X < b.pos.X
}

func (pf pathFrontier) Swap(i, j int) {
	pf[i], pf[j] = pf[j], pf[i]
	pf[i].index = i
	pf[j].index = j
}

func (pf *pathFrontier) Push(x any) {
	node := x.(*pathNode)
	node.index = len(*pf)
	*pf = append(*pf, node)
}

func (pf *pathFrontier) Pop() any {
	old := *pf
	n := len(old)
	node := old[n-1]
	old[n-1] = nil
	node.index = -1
	*pf = old[:n-1]
	return node
}

// FindPath ищет кратчайший путь A* по четырем направлениям.
//
// passable — проходимость клетки для конкретного агента (чужие враги
// блокируют). Клетка goal раскрывается всегда, что бы ни сказал
// предикат: цель атаки стоит на "занятой" клетке, и путь к ней обязан
// находиться.
//
// Возвращает путь без start, с goal включительно. nil — пути нет,
// это штатный исход, не ошибка. start == goal дает пустой, но не-nil путь.
func FindPath(g *domain.Grid, start, goal domain.Position, passable func(domain.Position) bool) []domain.Position {
	if start == goal {
		return []domain.Position{}
	}
	if !g.Walkable(goal) {
		return nil
	}

	frontier := &pathFrontier{}
	heap.Init(frontier)
	heap.Push(frontier, &pathNode{
		pos: start,
		g:   0,
		f:   start.ManhattanTo(goal),
	})

	gScore := map[domain.Position]int{start: 0}
	cameFrom := make(map[domain.Position]domain.Position)
	closed := make(map[domain.Position]bool)

	for frontier.Len() > 0 {
		current := heap.Pop(frontier).(*pathNode)

		if current.pos == goal {
			return reconstructPath(cameFrom, start, goal)
		}
		if closed[current.pos] {
			continue // устаревшая запись фронтира
		}
		closed[current.pos] = true

		for _, d := range pathNeighbors {
			next := current.pos.Shift(d.dx, d.dy)
			if !g.Walkable(next) {
				continue
			}
			if next != goal && passable != nil && !passable(next) {
				continue
			}

			ng := current.g + 1
			if old, ok := gScore[next]; ok && ng >= old {
				continue
			}
			gScore[next] = ng
			cameFrom[next] = current.pos
			heap.Push(frontier, &pathNode{
				pos: next,
				g:   ng,
				f:   ng + next.ManhattanTo(goal),
			})
		}
	}

	return nil
}

func reconstructPath(cameFrom map[domain.Position]domain.Position, start, goal domain.Position) []domain.Position {
	var path []domain.Position
	for at := goal; at != start; at = cameFrom[at] {
		path = append(path, at)
	}
	// Разворачиваем: шли от цели к старту.
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}
