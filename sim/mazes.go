package sim

import "github.com/kirbotics/micromouse/maze"

// EmptyMaze returns an n x n ground-truth maze with only the outer boundary
// walled off, used by the scenario-style tests and as a lightweight demo
// maze: the simplest instance that still exercises real pathing.
func EmptyMaze(n int) *Maze {
	gt := NewMaze(n)
	gt.AddBoundary()
	return gt
}

// ClassicMaze returns a fixed 16x16 ground-truth maze with interior walls
// loosely in the spirit of a real micromouse competition maze: a few long
// corridors, a couple of dead ends near the perimeter, and a cleared goal
// box at the center. It is a plain Go literal rather than loaded from a file.
func ClassicMaze() *Maze {
	const n = 16
	gt := NewMaze(n)
	gt.AddBoundary()

	type wallSpec struct {
		x, y int
		h    maze.Heading
	}

	// A handful of interior walls forming corridors and a couple of dead
	// ends. Coordinates are in the (x,y) frame with (0,0) at the south-west
	// start cell.
	walls := []wallSpec{
		// A long corridor wall running north along x=1 from the start.
		{1, 0, maze.East}, {1, 1, maze.East}, {1, 2, maze.East}, {1, 3, maze.East},
		{1, 4, maze.East}, {1, 5, maze.East}, {1, 6, maze.East},
		// A dead end pocket near the north-west corner.
		{0, 13, maze.North}, {1, 13, maze.North}, {2, 13, maze.South},
		// A staggered wall partitioning the eastern half.
		{10, 2, maze.North}, {10, 3, maze.East}, {11, 3, maze.North},
		{11, 4, maze.East}, {12, 4, maze.North}, {12, 5, maze.East},
		// Walls ringing the center goal box (the four center cells for
		// n=16: (7,7),(7,8),(8,7),(8,8)) so it reads as a distinct box,
		// open only from the south.
		{6, 7, maze.East}, {6, 8, maze.East}, {7, 8, maze.North}, {8, 8, maze.North},
		{9, 7, maze.West}, {9, 8, maze.West},
	}

	for _, w := range walls {
		gt.AddWall(maze.Point{X: w.x, Y: w.y}, w.h)
	}

	return gt
}
