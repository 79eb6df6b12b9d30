package game

type Score struct {
	Black float64 `json:"black" bson:"black"`
	White float64 `json:"white" bson:"white"`
}

// CalculateScore counts one point per stone and half a point for every
// empty cell whose neighbours are strictly dominated by one colour. It is a
// local heuristic and does not look at enclosed regions.
func CalculateScore(board *Board) Score {
	var score Score
	for row := 0; row < BoardSize; row++ {
		for col := 0; col < BoardSize; col++ {
			p := Position{Row: row, Col: col}
			switch board.At(p) {
			case Black:
				score.Black++
			case White:
				score.White++
			default:
				var black, white int
				for _, n := range Neighbors(p) {
					switch board.At(n) {
					case Black:
						black++
					case White:
						white++
					}
				}
				if black > white {
					score.Black += 0.5
				} else if white > black {
					score.White += 0.5
				}
			}
		}
	}
	return score
}

// FinalScore adds the opponent stones each side has captured.
func FinalScore(state GameState) Score {
	score := CalculateScore(&state.Board)
	score.Black += float64(state.CapturedWhite)
	score.White += float64(state.CapturedBlack)
	return score
}

// Winner returns Black, White, or Empty for a draw.
func (s Score) Winner() Stone {
	switch {
	case s.Black > s.White:
		return Black
	case s.White > s.Black:
		return White
	default:
		return Empty
	}
}
