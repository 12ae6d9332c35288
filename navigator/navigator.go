package navigator

import (
	"fmt"

	"github.com/kirbotics/micromouse/floodfill"
	"github.com/kirbotics/micromouse/maze"
	"github.com/kirbotics/micromouse/pose"
)

// Navigator holds the map, pose, and move stack shared by SearchStep and
// RunStep. It is owned by a single goroutine; Mission is its only caller.
type Navigator struct {
	Map   *maze.Map
	Pose  *pose.Pose
	stack []maze.Heading
	cap   int
}

// New returns a Navigator over m and p, with a move stack bounded at
// stackSize (must be at least m.Len() squared, so a full serpentine
// traversal can never overflow it).
func New(m *maze.Map, p *pose.Pose, stackSize int) *Navigator {
	return &Navigator{
		Map:   m,
		Pose:  p,
		stack: make([]maze.Heading, 0, stackSize),
		cap:   stackSize,
	}
}

// StackDepth returns the number of forward moves currently recorded on the
// move stack.
func (nav *Navigator) StackDepth() int {
	return len(nav.stack)
}

func (nav *Navigator) push(h maze.Heading) error {
	if len(nav.stack) >= nav.cap {
		return fmt.Errorf("%w: depth %d at cell %v", ErrStackOverflow, len(nav.stack), nav.Pose.Cell)
	}
	nav.stack = append(nav.stack, h)
	return nil
}

func (nav *Navigator) pop() (maze.Heading, error) {
	if len(nav.stack) == 0 {
		return 0, fmt.Errorf("%w: at cell %v", ErrStackUnderflow, nav.Pose.Cell)
	}
	top := nav.stack[len(nav.stack)-1]
	nav.stack = nav.stack[:len(nav.stack)-1]
	return top, nil
}

// senseAndMark reads the four walls at the navigator's current cell via
// perception, writes them to the map, and marks the cell visited.
func (nav *Navigator) senseAndMark(perception Perception) {
	walls := senseWalls(perception, nav.Pose.Cell, nav.Pose.Heading)
	nav.Map.SetWalls(nav.Pose.Cell, walls)
	nav.Map.MarkVisited(nav.Pose.Cell)
}

// bestNeighbor scans the four cardinal neighbors of the navigator's current
// cell in fixed N,E,S,W order and returns the lowest-cost neighbor that
// passes admit. ok is false if no neighbor qualifies.
func (nav *Navigator) bestNeighbor(admit func(p maze.Point) bool) (dir maze.Heading, ok bool) {
	walls := nav.Map.Walls(nav.Pose.Cell)
	best := maze.Unreached
	for _, h := range maze.Headings {
		n := nav.Pose.Cell.Neighbor(h)
		if !nav.Map.InRange(n) || walls.Wall(h) || !admit(n) {
			continue
		}
		if c := nav.Map.Cost(n); c < best {
			best = c
			dir = h
			ok = true
		}
	}
	return dir, ok
}

// SearchStep performs one exploration tick toward goals, backtracking via
// the move stack when no unvisited neighbor is reachable. It returns true
// once the mouse occupies a cell in goals.
func (nav *Navigator) SearchStep(goals []maze.Point, actuator Actuator, perception Perception) (bool, error) {
	if maze.Contains(goals, nav.Pose.Cell) {
		return true, nil
	}

	if !nav.Map.Visited(nav.Pose.Cell) {
		nav.senseAndMark(perception)
		floodfill.Run(nav.Map, goals, floodfill.Open)
	}

	dir, found := nav.bestNeighbor(func(p maze.Point) bool {
		return !nav.Map.Visited(p)
	})

	if found {
		nav.Pose.Step(dir, actuator)
		if err := nav.push(dir); err != nil {
			return false, err
		}
	} else {
		popped, err := nav.pop()
		if err != nil {
			return false, err
		}
		nav.Pose.Step(popped.Reverse(), actuator)
	}

	if maze.Contains(goals, nav.Pose.Cell) {
		nav.senseAndMark(perception)
		return true, nil
	}
	return false, nil
}

// RunStep performs one speed-run tick toward goals, following the cost
// gradient through visited cells only. Precondition: the cost field was
// freshly computed in floodfill.Closed mode toward goals when this phase
// began. It never touches the move stack and never recomputes flood-fill.
func (nav *Navigator) RunStep(goals []maze.Point, actuator Actuator) (bool, error) {
	if maze.Contains(goals, nav.Pose.Cell) {
		return true, nil
	}

	dir, found := nav.bestNeighbor(func(p maze.Point) bool {
		return nav.Map.Visited(p)
	})
	if !found {
		return false, fmt.Errorf("navigator: no visited open neighbor at %v while running toward %v", nav.Pose.Cell, goals)
	}

	nav.Pose.Step(dir, actuator)
	return maze.Contains(goals, nav.Pose.Cell), nil
}
