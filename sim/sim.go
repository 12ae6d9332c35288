// Package sim provides an in-memory ground-truth maze and a simulated mouse
// that implements the navigator's Actuator and Perception collaborator
// interfaces against it: a stand-in for real hardware during development,
// demoing, and test.
package sim

import (
	"time"

	"github.com/kirbotics/micromouse/maze"
	"github.com/kirbotics/micromouse/navigator"
)

// Maze is ground-truth wall data for an N x N maze, entirely independent of
// (and never exposed to) the maze.Map the navigator builds up from sensed
// walls. Keyed directly by (x,y); no mirrored storage order.
type Maze struct {
	n     int
	walls [][]maze.Walls
}

// NewMaze returns a Maze of side length n with every wall absent, the outer
// boundary included; callers add walls with AddWall or AddBoundary.
func NewMaze(n int) *Maze {
	rows := make([][]maze.Walls, n)
	for i := range rows {
		rows[i] = make([]maze.Walls, n)
	}
	return &Maze{n: n, walls: rows}
}

// Len returns the maze's side length.
func (gt *Maze) Len() int {
	return gt.n
}

func (gt *Maze) inRange(p maze.Point) bool {
	return p.X >= 0 && p.X < gt.n && p.Y >= 0 && p.Y < gt.n
}

// Walls returns the ground-truth walls at p.
func (gt *Maze) Walls(p maze.Point) maze.Walls {
	return gt.walls[p.Y][p.X]
}

// AddWall sets the wall at p in direction h, and its reciprocal on the
// neighboring cell if that neighbor is in range. Ground truth is always
// kept symmetric, unlike the mouse's own incrementally-sensed map.
func (gt *Maze) AddWall(p maze.Point, h maze.Heading) {
	w := gt.walls[p.Y][p.X]
	setWall(&w, h, true)
	gt.walls[p.Y][p.X] = w

	n := p.Neighbor(h)
	if gt.inRange(n) {
		nw := gt.walls[n.Y][n.X]
		setWall(&nw, h.Reverse(), true)
		gt.walls[n.Y][n.X] = nw
	}
}

func setWall(w *maze.Walls, h maze.Heading, v bool) {
	switch h {
	case maze.North:
		w.North = v
	case maze.East:
		w.East = v
	case maze.South:
		w.South = v
	case maze.West:
		w.West = v
	}
}

// AddBoundary walls off the maze's four outer edges.
func (gt *Maze) AddBoundary() {
	for i := 0; i < gt.n; i++ {
		gt.AddWall(maze.Point{X: i, Y: 0}, maze.South)
		gt.AddWall(maze.Point{X: i, Y: gt.n - 1}, maze.North)
		gt.AddWall(maze.Point{X: 0, Y: i}, maze.West)
		gt.AddWall(maze.Point{X: gt.n - 1, Y: i}, maze.East)
	}
}

// Mouse is a simulated mouse driving through a ground-truth Maze. It
// implements navigator.Actuator and navigator.Perception.
type Mouse struct {
	Ground  *Maze
	Cell    maze.Point
	Heading maze.Heading
	// Delay is the artificial per-maneuver pause, defaulting to 0 for tests;
	// the CLI demo sets it non-zero to mimic real actuator timing.
	Delay time.Duration
}

// NewMouse returns a simulated mouse at (0,0) facing North over ground.
func NewMouse(ground *Maze, delay time.Duration) *Mouse {
	return &Mouse{
		Ground:  ground,
		Cell:    maze.Point{X: 0, Y: 0},
		Heading: maze.North,
		Delay:   delay,
	}
}

func (m *Mouse) sleep() {
	if m.Delay > 0 {
		time.Sleep(m.Delay)
	}
}

// MoveForward advances the simulated pose one cell in its current heading.
func (m *Mouse) MoveForward() {
	m.sleep()
	m.Cell = m.Cell.Neighbor(m.Heading)
}

// TurnLeft90 rotates the simulated heading 90 degrees left (counterclockwise
// in the N,E,S,W cycle).
func (m *Mouse) TurnLeft90() {
	m.sleep()
	m.Heading = (m.Heading + 3) % 4
}

// TurnRight90 rotates the simulated heading 90 degrees right.
func (m *Mouse) TurnRight90() {
	m.sleep()
	m.Heading = (m.Heading + 1) % 4
}

// Turn180 rotates the simulated heading 180 degrees.
func (m *Mouse) Turn180() {
	m.sleep()
	m.Heading = (m.Heading + 2) % 4
}

func (m *Mouse) wallPresence(h maze.Heading) navigator.WallPresence {
	if m.Ground.Walls(m.Cell).Wall(h) {
		return navigator.WallFound
	}
	return navigator.WallNotFound
}

// relativeHeading rotates base by the egocentric offset (0=front, 1=right,
// 3=left) expressed in quarter turns.
func relativeHeading(base maze.Heading, quarterTurns int) maze.Heading {
	return (base + maze.Heading(quarterTurns)) % 4
}

// CheckFrontWall reports the ground-truth wall directly ahead.
func (m *Mouse) CheckFrontWall() navigator.WallPresence {
	return m.wallPresence(relativeHeading(m.Heading, 0))
}

// CheckLeftWall reports the ground-truth wall to the mouse's left.
func (m *Mouse) CheckLeftWall() navigator.WallPresence {
	return m.wallPresence(relativeHeading(m.Heading, 3))
}

// CheckRightWall reports the ground-truth wall to the mouse's right.
func (m *Mouse) CheckRightWall() navigator.WallPresence {
	return m.wallPresence(relativeHeading(m.Heading, 1))
}
