package game

var directions = [4]Position{
	{Row: -1, Col: 0},
	{Row: 1, Col: 0},
	{Row: 0, Col: -1},
	{Row: 0, Col: 1},
}

// Neighbors returns the orthogonally adjacent in-bounds positions
// (up, down, left, right).
func Neighbors(pos Position) []Position {
	out := make([]Position, 0, 4)
	for _, d := range directions {
		n := Position{Row: pos.Row + d.Row, Col: pos.Col + d.Col}
		if n.InBounds() {
			out = append(out, n)
		}
	}
	return out
}

// FindGroup returns the maximal 4-connected set of stones sharing the colour
// of the stone at pos, in breadth-first order. An empty cell has no group.
func FindGroup(board *Board, pos Position) []Position {
	if !pos.InBounds() {
		return nil
	}
	color := board.At(pos)
	if color == Empty {
		return nil
	}

	var visited [BoardSize * BoardSize]bool
	visited[pos.index()] = true
	group := make([]Position, 0, 8)
	queue := []Position{pos}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		group = append(group, current)

		for _, n := range Neighbors(current) {
			if visited[n.index()] || board.At(n) != color {
				continue
			}
			visited[n.index()] = true
			queue = append(queue, n)
		}
	}
	return group
}

// HasLiberties reports whether any member of group touches an empty cell.
func HasLiberties(board *Board, group []Position) bool {
	for _, p := range group {
		for _, n := range Neighbors(p) {
			if board.At(n) == Empty {
				return true
			}
		}
	}
	return false
}

// CaptureGroups collects every stone of color that belongs to a group with
// no liberties on this snapshot. The board is left untouched; removal is up
// to the caller, so the result does not depend on scan order.
func CaptureGroups(board *Board, color Stone) []Position {
	var seen [BoardSize * BoardSize]bool
	var captured []Position

	for row := 0; row < BoardSize; row++ {
		for col := 0; col < BoardSize; col++ {
			p := Position{Row: row, Col: col}
			if seen[p.index()] || board.At(p) != color {
				continue
			}
			group := FindGroup(board, p)
			for _, g := range group {
				seen[g.index()] = true
			}
			if !HasLiberties(board, group) {
				captured = append(captured, group...)
			}
		}
	}
	return captured
}
