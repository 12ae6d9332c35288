// Package mission implements the top-level state machine sequencing
// exploration, return-to-start, and the speed run: FirstTraversal ->
// BackToStart -> RunToGoal -> Finished. It is modeled as a tagged variant
// with one handler per state plus an explicit transition table, rather than
// using virtual dispatch.
package mission

import (
	"fmt"

	"github.com/kirbotics/micromouse/floodfill"
	"github.com/kirbotics/micromouse/maze"
	"github.com/kirbotics/micromouse/navigator"
	"github.com/kirbotics/micromouse/pose"
	"go.uber.org/zap"
)

// State is one of the mission's tagged states. Progression is monotonic;
// Finished is terminal.
type State int

const (
	FirstTraversal State = iota
	BackToStart
	RunToGoal
	Finished

	// ResetFirst, ResetSecond, and GoToLastPoint are reserved states with no
	// transitions into or out of them, reserved for a future extension (a
	// second traversal, or mid-maze recovery) that is out of scope here.
	ResetFirst
	ResetSecond
	GoToLastPoint
)

func (s State) String() string {
	switch s {
	case FirstTraversal:
		return "FIRST_TRAVERSAL"
	case BackToStart:
		return "BACK_TO_START"
	case RunToGoal:
		return "RUN_TO_GOAL"
	case Finished:
		return "FINISHED"
	case ResetFirst:
		return "RESET_1"
	case ResetSecond:
		return "RESET_2"
	case GoToLastPoint:
		return "GO_TO_LAST_POINT"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// transition pairs a (from, to) edge with the action run when it fires.
type transition struct {
	from, to State
	action   func(m *Mission)
}

// Mission owns the navigator and drives it through the state machine. It is
// the single owning structure a caller constructs once and advances by
// calling Iterate repeatedly.
type Mission struct {
	state      State
	nav        *navigator.Navigator
	actuator   navigator.Actuator
	perception navigator.Perception
	start      []maze.Point
	goals      []maze.Point
	log        *zap.SugaredLogger

	transitions []transition
}

// New constructs a Mission at FirstTraversal, pose (0,0) facing North.
func New(n int, stackSize int, actuator navigator.Actuator, perception navigator.Perception, log *zap.SugaredLogger) *Mission {
	m := maze.New(n)
	p := pose.New(maze.Point{X: 0, Y: 0}, maze.North)
	nav := navigator.New(m, &p, stackSize)

	mission := &Mission{
		state:      FirstTraversal,
		nav:        nav,
		actuator:   actuator,
		perception: perception,
		start:      []maze.Point{{X: 0, Y: 0}},
		goals:      maze.CenterGoals(n),
		log:        log,
	}
	mission.transitions = []transition{
		{FirstTraversal, FirstTraversal, nil},
		{FirstTraversal, BackToStart, func(m *Mission) {
			floodfill.Run(m.nav.Map, m.start, floodfill.Closed)
		}},
		{BackToStart, BackToStart, nil},
		{BackToStart, RunToGoal, func(m *Mission) {
			floodfill.Run(m.nav.Map, m.goals, floodfill.Closed)
		}},
		{RunToGoal, RunToGoal, nil},
		{RunToGoal, Finished, nil},
		{Finished, Finished, nil},
	}
	return mission
}

// State returns the mission's current state.
func (m *Mission) State() State {
	return m.state
}

// Navigator exposes the underlying navigator, mainly for diagnostics
// snapshots and tests.
func (m *Mission) Navigator() *navigator.Navigator {
	return m.nav
}

// Iterate runs exactly one tick: it invokes the current state's step
// operation, looks up the (state, nextState) edge, and either runs that
// edge's on-transition action and advances, or forces Finished if the edge
// is not one of the listed transitions (defensive termination). A non-nil
// error always means the mission forced Finished.
func (m *Mission) Iterate() error {
	next, err := m.step()
	if err != nil {
		m.log.Errorw("mission step failed, forcing FINISHED", "state", m.state, "error", err)
		m.state = Finished
		return err
	}

	edge := m.findTransition(m.state, next)
	if edge == nil {
		m.log.Warnw("illegal mission transition, forcing FINISHED", "from", m.state, "to", next)
		m.state = Finished
		return nil
	}

	if edge.action != nil {
		edge.action(m)
	}
	if m.state != next {
		m.log.Infow("mission transition", "from", m.state, "to", next)
	}
	m.state = next
	return nil
}

func (m *Mission) findTransition(from, to State) *transition {
	for i := range m.transitions {
		if m.transitions[i].from == from && m.transitions[i].to == to {
			return &m.transitions[i]
		}
	}
	return nil
}

// step runs the current state's per-tick action and returns the candidate
// next state.
func (m *Mission) step() (State, error) {
	switch m.state {
	case FirstTraversal:
		reached, err := m.nav.SearchStep(m.goals, m.actuator, m.perception)
		if err != nil {
			return m.state, err
		}
		if reached {
			return BackToStart, nil
		}
		return FirstTraversal, nil
	case BackToStart:
		reached, err := m.nav.RunStep(m.start, m.actuator)
		if err != nil {
			return m.state, err
		}
		if reached {
			return RunToGoal, nil
		}
		return BackToStart, nil
	case RunToGoal:
		reached, err := m.nav.RunStep(m.goals, m.actuator)
		if err != nil {
			return m.state, err
		}
		if reached {
			return Finished, nil
		}
		return RunToGoal, nil
	default:
		return Finished, nil
	}
}
