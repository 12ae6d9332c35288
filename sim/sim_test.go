package sim

import (
	"testing"

	"github.com/kirbotics/micromouse/maze"
	"github.com/kirbotics/micromouse/navigator"
	. "github.com/smartystreets/goconvey/convey"
)

func TestGroundTruthWallsAreSymmetric(t *testing.T) {
	Convey("Given an empty ground-truth maze with a single interior wall added", t, func() {
		gt := NewMaze(5)
		gt.AddWall(maze.Point{X: 2, Y: 2}, maze.North)

		Convey("both the cell and its neighbor carry reciprocal wall bits", func() {
			So(gt.Walls(maze.Point{X: 2, Y: 2}).North, ShouldBeTrue)
			So(gt.Walls(maze.Point{X: 2, Y: 3}).South, ShouldBeTrue)
		})
	})
}

func TestBoundaryWallsOuterEdge(t *testing.T) {
	Convey("AddBoundary walls off all four outer edges of a 4x4 maze", t, func() {
		gt := NewMaze(4)
		gt.AddBoundary()

		So(gt.Walls(maze.Point{X: 0, Y: 0}).South, ShouldBeTrue)
		So(gt.Walls(maze.Point{X: 0, Y: 0}).West, ShouldBeTrue)
		So(gt.Walls(maze.Point{X: 3, Y: 3}).North, ShouldBeTrue)
		So(gt.Walls(maze.Point{X: 3, Y: 3}).East, ShouldBeTrue)
		So(gt.Walls(maze.Point{X: 1, Y: 1}), ShouldResemble, maze.Walls{})
	})
}

func TestMouseTurnsAndMoves(t *testing.T) {
	Convey("Given a mouse at (0,0) facing North with no delay", t, func() {
		gt := EmptyMaze(5)
		m := NewMouse(gt, 0)

		Convey("TurnRight90 four times returns to the original heading", func() {
			for i := 0; i < 4; i++ {
				m.TurnRight90()
			}
			So(m.Heading, ShouldEqual, maze.North)
		})

		Convey("MoveForward advances the cell one step in the current heading", func() {
			m.MoveForward()
			So(m.Cell, ShouldResemble, maze.Point{X: 0, Y: 1})
		})

		Convey("Turn180 followed by MoveForward moves the mouse backward", func() {
			m.Turn180()
			m.MoveForward()
			So(m.Cell, ShouldResemble, maze.Point{X: 0, Y: -1})
		})
	})
}

func TestMouseSensesGroundTruthWallsEgocentrically(t *testing.T) {
	Convey("Given a mouse at (0,0) facing East inside the boundary-only maze", t, func() {
		gt := EmptyMaze(3)
		m := NewMouse(gt, 0)
		m.Heading = maze.East

		Convey("the front and left sensors report open while the right sensor reports the south boundary", func() {
			So(m.CheckFrontWall(), ShouldEqual, navigator.WallNotFound)
			So(m.CheckRightWall(), ShouldEqual, navigator.WallFound)
			So(m.CheckLeftWall(), ShouldEqual, navigator.WallNotFound)
		})
	})
}
