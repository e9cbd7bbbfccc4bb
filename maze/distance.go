package maze

import "math"

// Weighted edge costs: cardinal = 10, diagonal = 14 (≈10√2)
const (
	costCardinal    = 10
	costDiagonal    = 14
	costUnreachable = 1<<30 - 1
)

// Neighbour offsets in N, NE, E, SE, S, SW, W, NW order, matching the agent move set
var dirVectors = [8]Point{
	{0, -1}, {1, -1}, {1, 0}, {1, 1},
	{0, 1}, {-1, 1}, {-1, 0}, {-1, -1},
}

var dirCosts = [8]int{
	costCardinal, costDiagonal, costCardinal, costDiagonal,
	costCardinal, costDiagonal, costCardinal, costDiagonal,
}

// --- Min-heap for Dijkstra ---

type heapEntry struct {
	idx  int
	dist int
}

type minHeap []heapEntry

func (h *minHeap) push(e heapEntry) {
	*h = append(*h, e)
	i := len(*h) - 1
	for i > 0 {
		parent := (i - 1) / 2
		if (*h)[parent].dist <= (*h)[i].dist {
			break
		}
		(*h)[parent], (*h)[i] = (*h)[i], (*h)[parent]
		i = parent
	}
}

func (h *minHeap) pop() heapEntry {
	old := *h
	n := len(old)
	e := old[0]
	old[0] = old[n-1]
	*h = old[:n-1]

	i := 0
	for {
		left := 2*i + 1
		if left >= len(*h) {
			break
		}
		smallest := left
		if right := left + 1; right < len(*h) && (*h)[right].dist < (*h)[left].dist {
			smallest = right
		}
		if (*h)[i].dist <= (*h)[smallest].dist {
			break
		}
		(*h)[i], (*h)[smallest] = (*h)[smallest], (*h)[i]
		i = smallest
	}
	return e
}

// DistanceField holds the weighted shortest-path distance from every open tile
// to the nearest goal tile. Immutable after construction.
type DistanceField struct {
	width, height int
	dist          []int
}

// NewDistanceField runs a multi-source Dijkstra seeded with every goal tile
func NewDistanceField(w *World) *DistanceField {
	f := &DistanceField{
		width:  w.width,
		height: w.height,
		dist:   make([]int, w.width*w.height),
	}
	for i := range f.dist {
		f.dist[i] = costUnreachable
	}

	var h minHeap
	for _, g := range w.goals {
		idx := g.Y*w.width + g.X
		f.dist[idx] = 0
		h.push(heapEntry{idx: idx})
	}

	for len(h) > 0 {
		e := h.pop()
		if e.dist > f.dist[e.idx] {
			continue
		}
		cx, cy := e.idx%w.width, e.idx/w.width
		for d, v := range dirVectors {
			n := Point{cx + v.X, cy + v.Y}
			if w.IsBlocked(n) {
				continue
			}
			nIdx := n.Y*w.width + n.X
			if nd := e.dist + dirCosts[d]; nd < f.dist[nIdx] {
				f.dist[nIdx] = nd
				h.push(heapEntry{idx: nIdx, dist: nd})
			}
		}
	}

	return f
}

// At returns the distance in cell units, false if p is blocked or unreachable
func (f *DistanceField) At(p Point) (float64, bool) {
	if p.X < 0 || p.X >= f.width || p.Y < 0 || p.Y >= f.height {
		return math.Inf(1), false
	}
	d := f.dist[p.Y*f.width+p.X]
	if d == costUnreachable {
		return math.Inf(1), false
	}
	return float64(d) / costCardinal, true
}
