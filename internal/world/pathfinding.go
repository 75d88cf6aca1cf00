package world

import (
	"container/heap"
	"time"
)

// pathNode is a node of the A* search.
type pathNode struct {
	x, y   int
	g      float32 // Cost from start
	f      float32 // g plus heuristic
	parent *pathNode
	index  int // Position in the open set
}

// openSet is a priority queue ordered by f.
type openSet []*pathNode

func (h openSet) Len() int           { return len(h) }
func (h openSet) Less(i, j int) bool { return h[i].f < h[j].f }
func (h openSet) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}

func (h *openSet) Push(x any) {
	node := x.(*pathNode)
	node.index = len(*h)
	*h = append(*h, node)
}

func (h *openSet) Pop() any {
	old := *h
	n := len(old)
	node := old[n-1]
	old[n-1] = nil
	node.index = -1
	*h = old[:n-1]
	return node
}

// Neighbor offsets, straight moves first then diagonals.
var neighbors = [8][2]int{
	{0, 1}, {1, 0}, {0, -1}, {-1, 0},
	{1, 1}, {1, -1}, {-1, -1}, {-1, 1},
}

const (
	straightCost = float32(1)
	diagonalCost = float32(1.414)
)

// FindPath returns the cells from start to goal, inclusive, using 8-way A*.
// Diagonal moves may not cut blocked corners. It returns nil when the goal
// is unreachable.
func (g *Grid) FindPath(startX, startY, goalX, goalY int) [][2]int {
	if !g.CellWalkable(startX, startY) || !g.CellWalkable(goalX, goalY) {
		pathQueryTotal.WithLabelValues("blocked").Inc()
		return nil
	}

	start := time.Now()
	path := g.search(startX, startY, goalX, goalY)
	pathQueryDuration.Observe(time.Since(start).Seconds())
	if path == nil {
		pathQueryTotal.WithLabelValues("unreachable").Inc()
		return nil
	}
	pathQueryTotal.WithLabelValues("found").Inc()
	pathLength.Observe(float64(len(path)))
	return path
}

func (g *Grid) search(startX, startY, goalX, goalY int) [][2]int {
	open := &openSet{}
	closed := make(map[int]bool)
	nodes := make(map[int]*pathNode)

	first := &pathNode{x: startX, y: startY, f: octile(startX, startY, goalX, goalY)}
	heap.Push(open, first)
	nodes[g.key(startX, startY)] = first

	for open.Len() > 0 {
		current := heap.Pop(open).(*pathNode)
		if current.x == goalX && current.y == goalY {
			return reconstruct(current)
		}
		closed[g.key(current.x, current.y)] = true

		for i, d := range neighbors {
			nx, ny := current.x+d[0], current.y+d[1]
			if !g.CellWalkable(nx, ny) || closed[g.key(nx, ny)] {
				continue
			}

			cost := straightCost
			if i >= 4 {
				if !g.CellWalkable(current.x+d[0], current.y) || !g.CellWalkable(current.x, current.y+d[1]) {
					continue
				}
				cost = diagonalCost
			}

			gScore := current.g + cost
			n, seen := nodes[g.key(nx, ny)]
			switch {
			case !seen:
				n = &pathNode{x: nx, y: ny, g: gScore, parent: current}
				n.f = gScore + octile(nx, ny, goalX, goalY)
				nodes[g.key(nx, ny)] = n
				heap.Push(open, n)
			case gScore < n.g:
				n.f += gScore - n.g
				n.g = gScore
				n.parent = current
				heap.Fix(open, n.index)
			}
		}
	}
	return nil
}

// octile is the 8-way distance estimate between two cells.
func octile(x1, y1, x2, y2 int) float32 {
	dx := abs(x2 - x1)
	dy := abs(y2 - y1)
	if dx < dy {
		dx, dy = dy, dx
	}
	return float32(dy)*diagonalCost + float32(dx-dy)*straightCost
}

func reconstruct(node *pathNode) [][2]int {
	var path [][2]int
	for ; node != nil; node = node.parent {
		path = append(path, [2]int{node.x, node.y})
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
