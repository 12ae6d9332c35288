// Package navigator implements the per-tick decision logic: SearchStep
// (exploration with backtracking) and RunStep (speed-run gradient
// following). It is the only core package that reads the Perception
// collaborator; it drives the Actuator through Pose.Step, and reads and
// mutates the maze.Map and Pose directly.
package navigator

import (
	"errors"

	"github.com/kirbotics/micromouse/maze"
	"github.com/kirbotics/micromouse/pose"
)

// WallPresence is the perception collaborator's egocentric wall reading.
type WallPresence int

const (
	WallFound WallPresence = iota
	WallNotFound
	WallUnavailable
)

// Present reports the boolean wall presence the navigator acts on.
// Unavailable is treated as not-found: a sensor that can't make a confident
// reading must never be allowed to wall off a path that's actually open.
func (w WallPresence) Present() bool {
	return w == WallFound
}

// Perception reports walls in the mouse's own egocentric frame: front, left,
// and right. There is no rear sensor; see checkBackWall in the algorithm.
type Perception interface {
	CheckFrontWall() WallPresence
	CheckLeftWall() WallPresence
	CheckRightWall() WallPresence
}

// Actuator is re-exported from pose for callers that only need to depend on
// this package; Pose.Step takes the same interface.
type Actuator = pose.Actuator

// ErrStackUnderflow is returned when SearchStep needs to backtrack but the
// move stack is empty. This indicates a map/navigation invariant violation:
// a visited cell should always lead back to start.
var ErrStackUnderflow = errors.New("navigator: move stack underflow during backtrack")

// ErrStackOverflow is returned when a forward move would push past the
// stack's configured capacity.
var ErrStackOverflow = errors.New("navigator: move stack overflow during forward step")

// senseWalls translates the perception collaborator's egocentric front/
// left/right/back readings into the allocentric maze.Walls for the cell at
// the given heading. The mapping is the identity rotation by heading, per
// the heading-rotation table.
func senseWalls(p Perception, cell maze.Point, heading maze.Heading) maze.Walls {
	front := p.CheckFrontWall().Present()
	left := p.CheckLeftWall().Present()
	right := p.CheckRightWall().Present()
	back := checkBackWall(cell)

	switch heading {
	case maze.North:
		return maze.Walls{North: front, East: right, South: back, West: left}
	case maze.East:
		return maze.Walls{North: left, East: front, South: right, West: back}
	case maze.South:
		return maze.Walls{North: back, East: left, South: front, West: right}
	case maze.West:
		return maze.Walls{North: right, East: back, South: left, West: front}
	default:
		return maze.Walls{}
	}
}

// checkBackWall returns true only at the start cell (0,0); elsewhere there
// is no rear sensor to consult and no neighbor data is trustworthy enough to
// synthesize one. The navigator never needs to know the back wall of any
// cell other than the start.
func checkBackWall(cell maze.Point) bool {
	return cell.X == 0 && cell.Y == 0
}
