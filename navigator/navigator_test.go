package navigator

import (
	"errors"
	"testing"

	"github.com/kirbotics/micromouse/maze"
	"github.com/kirbotics/micromouse/pose"
	. "github.com/smartystreets/goconvey/convey"
)

// fakeActuator just executes the maneuver; navigator tests only care about
// the resulting pose, not the call sequence (that's pose_test.go's job).
type fakeActuator struct{}

func (fakeActuator) MoveForward() {}
func (fakeActuator) TurnLeft90()  {}
func (fakeActuator) TurnRight90() {}
func (fakeActuator) Turn180()     {}

// openPerception reports every wall absent, as if the mouse stood in an
// empty room with no walls at all on any of the three sensed sides.
type openPerception struct{}

func (openPerception) CheckFrontWall() WallPresence { return WallNotFound }
func (openPerception) CheckLeftWall() WallPresence  { return WallNotFound }
func (openPerception) CheckRightWall() WallPresence { return WallNotFound }

// boxedPerception reports a wall on every sensed side, used to confirm that
// a dead end with an empty move stack reports a stack underflow.
type boxedPerception struct{}

func (boxedPerception) CheckFrontWall() WallPresence { return WallFound }
func (boxedPerception) CheckLeftWall() WallPresence  { return WallFound }
func (boxedPerception) CheckRightWall() WallPresence { return WallFound }

func TestSearchStepExploresThenReachesGoal(t *testing.T) {
	Convey("Given a 3x3 open navigator starting at (0,0) facing North", t, func() {
		m := maze.New(3)
		p := pose.New(maze.Point{X: 0, Y: 0}, maze.North)
		nav := New(m, &p, 16)
		goals := []maze.Point{{X: 1, Y: 1}}
		act := fakeActuator{}
		perc := openPerception{}

		Convey("repeated SearchStep calls eventually report reaching the goal", func() {
			reached := false
			var err error
			for i := 0; i < 20 && !reached; i++ {
				reached, err = nav.SearchStep(goals, act, perc)
				So(err, ShouldBeNil)
			}
			So(reached, ShouldBeTrue)
			So(nav.Pose.Cell, ShouldResemble, maze.Point{X: 1, Y: 1})
		})
	})
}

func TestSearchStepUnderflowsAtDeadEndWithEmptyStack(t *testing.T) {
	Convey("Given a navigator at the start cell, boxed in on all three sensed sides", t, func() {
		// At (0,0) checkBackWall also reports true, so front/left/right/back
		// are all walled: no neighbor qualifies and the empty move stack has
		// nothing to pop.
		m := maze.New(3)
		p := pose.New(maze.Point{X: 0, Y: 0}, maze.North)
		nav := New(m, &p, 16)
		goals := []maze.Point{{X: 2, Y: 2}}
		act := fakeActuator{}
		perc := boxedPerception{}

		Convey("SearchStep reports a stack underflow rather than stepping through a wall", func() {
			_, err := nav.SearchStep(goals, act, perc)
			So(errors.Is(err, ErrStackUnderflow), ShouldBeTrue)
		})
	})
}

func TestRunStepFollowsVisitedGradient(t *testing.T) {
	Convey("Given a 3x3 map where every cell is visited and flood-filled toward the center", t, func() {
		m := maze.New(3)
		for y := 0; y < 3; y++ {
			for x := 0; x < 3; x++ {
				m.MarkVisited(maze.Point{X: x, Y: y})
			}
		}
		goals := maze.CenterGoals(3)
		runFloodFill(m, goals)

		p := pose.New(maze.Point{X: 0, Y: 0}, maze.North)
		nav := New(m, &p, 16)
		act := fakeActuator{}

		Convey("RunStep walks downhill until it reaches the goal", func() {
			reached := false
			var err error
			for i := 0; i < 10 && !reached; i++ {
				reached, err = nav.RunStep(goals, act)
				So(err, ShouldBeNil)
			}
			So(reached, ShouldBeTrue)
			So(nav.Pose.Cell, ShouldResemble, maze.Point{X: 1, Y: 1})
		})
	})

	Convey("Given a cell whose every neighbor is unvisited", t, func() {
		m := maze.New(3)
		m.MarkVisited(maze.Point{X: 1, Y: 1})
		p := pose.New(maze.Point{X: 1, Y: 1}, maze.North)
		nav := New(m, &p, 16)
		act := fakeActuator{}

		Convey("RunStep reports an error rather than stepping blind", func() {
			_, err := nav.RunStep([]maze.Point{{X: 0, Y: 0}}, act)
			So(err, ShouldNotBeNil)
		})
	})
}

// runFloodFill is a tiny local helper so this test file doesn't need to
// import the floodfill package just to seed a cost field by hand.
func runFloodFill(m *maze.Map, goals []maze.Point) {
	m.ResetCosts()
	type q struct {
		p maze.Point
		c uint
	}
	queue := []q{}
	for _, g := range goals {
		m.SetCost(g, 0)
		queue = append(queue, q{g, 0})
	}
	for i := 0; i < len(queue); i++ {
		cur := queue[i]
		for _, h := range maze.Headings {
			n := cur.p.Neighbor(h)
			if !m.InRange(n) {
				continue
			}
			next := cur.c + 1
			if m.Cost(n) > next {
				m.SetCost(n, next)
				queue = append(queue, q{n, next})
			}
		}
	}
}
