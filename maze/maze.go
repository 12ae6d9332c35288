// Package maze holds the mouse's discovered knowledge of the maze: per-cell
// walls, the visited flag, and the scratch cost field flood-fill writes into.
// It is a dense, fixed-size store with explicit zero/sentinel initialization;
// there is no dynamic allocation once New returns.
package maze

import "fmt"

// Unreached is the cost-field sentinel meaning "no known path yet".
const Unreached = ^uint(0)

// Heading is one of the four cardinal directions the mouse can face.
type Heading int

const (
	North Heading = iota
	East
	South
	West
)

func (h Heading) String() string {
	switch h {
	case North:
		return "N"
	case East:
		return "E"
	case South:
		return "S"
	case West:
		return "W"
	default:
		return fmt.Sprintf("Heading(%d)", int(h))
	}
}

// Reverse returns the opposite cardinal direction.
func (h Heading) Reverse() Heading {
	switch h {
	case North:
		return South
	case South:
		return North
	case East:
		return West
	case West:
		return East
	default:
		return h
	}
}

// Headings enumerates the four cardinal directions in the fixed tie-break
// order (N, E, S, W) used throughout the navigator.
var Headings = [4]Heading{North, East, South, West}

// Point is a cell coordinate. The origin (0,0) is the start cell, south-west
// corner; x grows east, y grows north.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Neighbor returns the adjacent cell one step from p in the given heading.
func (p Point) Neighbor(h Heading) Point {
	switch h {
	case North:
		return Point{p.X, p.Y + 1}
	case South:
		return Point{p.X, p.Y - 1}
	case East:
		return Point{p.X + 1, p.Y}
	case West:
		return Point{p.X - 1, p.Y}
	default:
		return p
	}
}

// Walls holds the four independent wall bits for a single cell.
type Walls struct {
	North bool `json:"north"`
	East  bool `json:"east"`
	South bool `json:"south"`
	West  bool `json:"west"`
}

// Wall reports whether the cell has a wall in the given direction.
func (w Walls) Wall(h Heading) bool {
	switch h {
	case North:
		return w.North
	case East:
		return w.East
	case South:
		return w.South
	case West:
		return w.West
	default:
		return false
	}
}

type cell struct {
	walls   Walls
	visited bool
	cost    uint
}

// Map is the dense N x N knowledge store. The zero value is not usable;
// construct with New.
type Map struct {
	n     int
	cells []cell
}

// New returns a Map of side length n with every wall unknown-as-false, every
// cell unvisited, and every cost Unreached.
func New(n int) *Map {
	if n <= 0 {
		panic("maze: side length must be positive")
	}
	m := &Map{n: n, cells: make([]cell, n*n)}
	m.ResetCosts()
	return m
}

// Len returns the maze's side length N.
func (m *Map) Len() int {
	return m.n
}

// index mirrors the y axis so storage row 0 is the northernmost row. This is
// a display-order convention only; it has no effect on navigation behavior.
func (m *Map) index(p Point) int {
	mirroredY := (m.n - 1) - p.Y
	return mirroredY*m.n + p.X
}

// InRange reports whether p lies within the maze bounds.
func (m *Map) InRange(p Point) bool {
	return p.X >= 0 && p.X < m.n && p.Y >= 0 && p.Y < m.n
}

// Walls returns the wall bits recorded for p. Caller must ensure p is in range.
func (m *Map) Walls(p Point) Walls {
	return m.cells[m.index(p)].walls
}

// SetWalls writes the wall bits for p. Caller must ensure p is in range.
//
// Only the sensed cell's own walls are written here, not the reciprocal wall
// on the neighboring cell; the neighbor records its own side when the mouse
// eventually visits it, rather than eagerly propagating the reciprocal bit.
func (m *Map) SetWalls(p Point, w Walls) {
	m.cells[m.index(p)].walls = w
}

// Visited reports whether p has been physically occupied and sensed.
func (m *Map) Visited(p Point) bool {
	return m.cells[m.index(p)].visited
}

// MarkVisited sets the visited flag for p. Never cleared once set.
func (m *Map) MarkVisited(p Point) {
	m.cells[m.index(p)].visited = true
}

// Cost returns the cost-field value at p, or Unreached.
func (m *Map) Cost(p Point) uint {
	return m.cells[m.index(p)].cost
}

// SetCost writes the cost-field value at p.
func (m *Map) SetCost(p Point, v uint) {
	m.cells[m.index(p)].cost = v
}

// ResetCosts clears every cell's cost field back to Unreached.
func (m *Map) ResetCosts() {
	for i := range m.cells {
		m.cells[i].cost = Unreached
	}
}

// Contains reports whether p is a member of goals. Goal sets are small
// (at most four cells), so linear scan is sufficient.
func Contains(goals []Point, p Point) bool {
	for _, g := range goals {
		if g == p {
			return true
		}
	}
	return false
}

// CellSnapshot is a read-only copy of one cell's recorded state, used only
// by diagnostics consumers; nothing in the navigation core reads it back.
type CellSnapshot struct {
	Point   Point `json:"point"`
	Walls   Walls `json:"walls"`
	Visited bool  `json:"visited"`
	Cost    uint  `json:"cost"`
}

// Snapshot returns a read-only copy of every cell's recorded state, in
// row-major (x then y) order.
func (m *Map) Snapshot() []CellSnapshot {
	out := make([]CellSnapshot, 0, m.n*m.n)
	for y := 0; y < m.n; y++ {
		for x := 0; x < m.n; x++ {
			p := Point{X: x, Y: y}
			c := m.cells[m.index(p)]
			out = append(out, CellSnapshot{Point: p, Walls: c.walls, Visited: c.visited, Cost: c.cost})
		}
	}
	return out
}

// CenterGoals returns the maze's goal set: the four center cells for even N,
// the single center cell for odd N.
func CenterGoals(n int) []Point {
	if n%2 == 1 {
		c := n / 2
		return []Point{{c, c}}
	}
	lo, hi := n/2-1, n/2
	return []Point{
		{lo, lo},
		{lo, hi},
		{hi, lo},
		{hi, hi},
	}
}
