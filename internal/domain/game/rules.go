package game

// placeStone puts color at pos on a copy of board and removes the opponent
// groups left without liberties. It returns the new board and the removed
// positions.
func placeStone(board Board, pos Position, color Stone) (Board, []Position) {
	board.Set(pos, color)
	captured := CaptureGroups(&board, color.Opponent())
	for _, c := range captured {
		board.Set(c, Empty)
	}
	return board, captured
}

// IsValidMove is the only place legality is decided. It rejects
// out-of-bounds and occupied points, suicide, and the immediate single-stone
// recapture of the previous move (a simplified ko, not positional superko).
func IsValidMove(state GameState, pos Position) bool {
	if !pos.InBounds() || state.Board.At(pos) != Empty {
		return false
	}

	scratch, captured := placeStone(state.Board, pos, state.CurrentPlayer)

	if !HasLiberties(&scratch, FindGroup(&scratch, pos)) {
		return false
	}

	if len(captured) == 1 && len(state.MoveHistory) > 0 {
		if captured[0] == state.MoveHistory[len(state.MoveHistory)-1] {
			return false
		}
	}
	return true
}

// MakeMove plays pos for the current player. An illegal move returns state
// unchanged; callers that care check IsValidMove first.
func MakeMove(state GameState, pos Position) GameState {
	if !IsValidMove(state, pos) {
		return state
	}

	next := state.clone()
	board, captured := placeStone(state.Board, pos, state.CurrentPlayer)
	next.Board = board

	// Removed stones are counted by their own colour: capturedWhite grows
	// when black captures, and feeds black's final score.
	if state.CurrentPlayer == Black {
		next.CapturedWhite += len(captured)
	} else {
		next.CapturedBlack += len(captured)
	}

	next.CurrentPlayer = state.CurrentPlayer.Opponent()
	next.MoveHistory = append(next.MoveHistory, pos)
	last := pos
	next.LastMove = &last
	next.Passes = 0
	return next
}

// PassMove hands the turn over without placing a stone.
func PassMove(state GameState) GameState {
	next := state.clone()
	next.CurrentPlayer = state.CurrentPlayer.Opponent()
	next.Passes = state.Passes + 1
	return next
}

// GetValidMoves lists every legal point in row-major order.
func GetValidMoves(state GameState) []Position {
	moves := make([]Position, 0, BoardSize*BoardSize)
	for row := 0; row < BoardSize; row++ {
		for col := 0; col < BoardSize; col++ {
			p := Position{Row: row, Col: col}
			if IsValidMove(state, p) {
				moves = append(moves, p)
			}
		}
	}
	return moves
}
