// Package diagnostics serves maze/mission state over a websocket for
// realtime visualization. It is wholly optional: the navigation core has no
// import-time dependency on it.
package diagnostics

import (
	"github.com/kirbotics/micromouse/maze"
	"github.com/kirbotics/micromouse/mission"
)

// Snapshot is a point-in-time, read-only copy of the mission's state,
// published for diagnostics consumption only.
type Snapshot struct {
	MissionState string              `json:"missionState"`
	Cell         maze.Point          `json:"cell"`
	Heading      string              `json:"heading"`
	StackDepth   int                 `json:"stackDepth"`
	Cells        []maze.CellSnapshot `json:"cells"`
}

// SnapshotOf captures m's current state.
func SnapshotOf(m *mission.Mission) Snapshot {
	nav := m.Navigator()
	return Snapshot{
		MissionState: m.State().String(),
		Cell:         nav.Pose.Cell,
		Heading:      nav.Pose.Heading.String(),
		StackDepth:   nav.StackDepth(),
		Cells:        nav.Map.Snapshot(),
	}
}
