package main

import (
	"testing"

	"github.com/kirbotics/micromouse/mission"
	"github.com/kirbotics/micromouse/sim"
	"github.com/kirbotics/micromouse/telemetry"
	. "github.com/smartystreets/goconvey/convey"
)

// TestMissionRunsToCompletion exercises the same wiring runApp performs
// (simulator collaborators feeding a Mission), without going through flags
// or config loading, and asserts the full search/return/run sequence
// reaches Finished in a bounded number of ticks.
func TestMissionRunsToCompletion(t *testing.T) {
	Convey("Given a mission over an empty simulated maze", t, func() {
		const n = 5
		ground := sim.EmptyMaze(n)
		mouse := sim.NewMouse(ground, 0)
		m := mission.New(n, n*n, mouse, mouse, telemetry.NewNop())

		Convey("Iterating until Finished terminates within n^4 ticks and visits every phase", func() {
			seen := map[mission.State]bool{}
			maxTicks := n * n * n * n
			ticks := 0
			for m.State() != mission.Finished && ticks < maxTicks {
				seen[m.State()] = true
				err := m.Iterate()
				So(err, ShouldBeNil)
				ticks++
			}

			So(m.State(), ShouldEqual, mission.Finished)
			So(seen[mission.FirstTraversal], ShouldBeTrue)
			So(seen[mission.BackToStart], ShouldBeTrue)
			So(seen[mission.RunToGoal], ShouldBeTrue)
		})
	})
}
