// Package pose tracks the mouse's current cell and heading, and is the sole
// bridge between the navigation layer and the physical (or simulated)
// actuator: Step blocks on the actuator call before updating the pose, so
// that a maneuver in progress is never observed as already completed.
package pose

import "github.com/kirbotics/micromouse/maze"

// Maneuver is the physical action Step must ask the actuator to perform,
// derived purely from (current heading, requested direction).
type Maneuver int

const (
	// Forward moves one cell without turning.
	Forward Maneuver = iota
	// TurnRightForward rotates 90 degrees right, then moves forward.
	TurnRightForward
	// TurnLeftForward rotates 90 degrees left, then moves forward.
	TurnLeftForward
	// UTurnForward rotates 180 degrees, then moves forward.
	UTurnForward
)

// Actuator performs the blocking physical maneuvers Pose.Step selects between.
// Real hardware and the simulator (sim.Mouse) both implement this.
type Actuator interface {
	MoveForward()
	TurnLeft90()
	TurnRight90()
	Turn180()
}

// Pose is the mouse's current cell and heading.
type Pose struct {
	Cell    maze.Point
	Heading maze.Heading
}

// New returns a Pose at the given cell and heading.
func New(cell maze.Point, heading maze.Heading) Pose {
	return Pose{Cell: cell, Heading: heading}
}

// maneuverFor returns the maneuver required to move from `from` to `to`.
func maneuverFor(from, to maze.Heading) Maneuver {
	if from == to {
		return Forward
	}
	if from.Reverse() == to {
		return UTurnForward
	}
	// Exactly one of these two rotations is a single 90-degree turn; the
	// cardinal order N,E,S,W cycles consistently in both directions.
	if (from+1)%4 == to {
		return TurnRightForward
	}
	return TurnLeftForward
}

// Step advances the pose one cell in the given cardinal direction. It first
// computes the required maneuver, invokes the actuator (blocking until the
// maneuver completes), and only then updates the cell and heading. If the
// actuator call were to fail the pose must not be updated; the actuator
// collaborator here is assumed infallible per the navigation core's error
// taxonomy, so there is no failure path to thread through.
func (p *Pose) Step(direction maze.Heading, actuator Actuator) {
	switch maneuverFor(p.Heading, direction) {
	case Forward:
		actuator.MoveForward()
	case TurnRightForward:
		actuator.TurnRight90()
		actuator.MoveForward()
	case TurnLeftForward:
		actuator.TurnLeft90()
		actuator.MoveForward()
	case UTurnForward:
		actuator.Turn180()
		actuator.MoveForward()
	}

	p.Cell = p.Cell.Neighbor(direction)
	p.Heading = direction
}
