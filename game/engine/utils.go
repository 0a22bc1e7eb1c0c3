package engine

// CountOccupants counts occupants of the given kind on a grid
func CountOccupants(grid GridView, kind OccupantKind) int {
	width, height := grid.Size()
	count := 0
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if occ, ok := grid.Get(Cell{X: x, Y: y}); ok && occ.Kind == kind {
				count++
			}
		}
	}
	return count
}

// abs returns the absolute value of x
func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
