package game

import (
	"reflect"
	"testing"
)

// boardFrom builds a board from rows of X (black), O (white) and . (empty).
// Missing rows and columns stay empty.
func boardFrom(rows ...string) Board {
	var b Board
	for r, row := range rows {
		for c, ch := range row {
			switch ch {
			case 'X':
				b[r][c] = Black
			case 'O':
				b[r][c] = White
			}
		}
	}
	return b
}

func stateWith(board Board, player Stone) GameState {
	s := NewInitialState()
	s.Board = board
	s.CurrentPlayer = player
	return s
}

func TestInitialState(t *testing.T) {
	s := NewInitialState()
	if s.CurrentPlayer != Black {
		t.Fatalf("expected black to move first, got %v", s.CurrentPlayer)
	}
	if s.CapturedBlack != 0 || s.CapturedWhite != 0 || s.Passes != 0 {
		t.Fatalf("expected zero counters, got %+v", s)
	}
	if len(s.MoveHistory) != 0 || s.LastMove != nil {
		t.Fatalf("expected empty history and no last move")
	}
	if s.Board != (Board{}) {
		t.Fatalf("expected empty board")
	}
}

func TestEmptyBoardHasAllMovesValid(t *testing.T) {
	moves := GetValidMoves(NewInitialState())
	if len(moves) != BoardSize*BoardSize {
		t.Fatalf("expected %d valid moves, got %d", BoardSize*BoardSize, len(moves))
	}
	if moves[0] != (Position{0, 0}) || moves[len(moves)-1] != (Position{8, 8}) {
		t.Fatalf("expected row-major order, got first=%v last=%v", moves[0], moves[len(moves)-1])
	}
	if moves[1] != (Position{0, 1}) {
		t.Fatalf("expected (0,1) second, got %v", moves[1])
	}
}

func TestFullBoardHasNoValidMoves(t *testing.T) {
	var b Board
	for r := 0; r < BoardSize; r++ {
		for c := 0; c < BoardSize; c++ {
			if (r+c)%2 == 0 {
				b[r][c] = Black
			} else {
				b[r][c] = White
			}
		}
	}
	if moves := GetValidMoves(stateWith(b, Black)); len(moves) != 0 {
		t.Fatalf("expected no valid moves on a full board, got %d", len(moves))
	}
}

func TestOutOfBoundsAndOccupiedRejected(t *testing.T) {
	s := stateWith(boardFrom("X"), White)
	for _, p := range []Position{{-1, 0}, {0, -1}, {9, 0}, {0, 9}, {0, 0}} {
		if IsValidMove(s, p) {
			t.Fatalf("expected %v to be rejected", p)
		}
	}
}

func TestIllegalMoveIsNoOp(t *testing.T) {
	s := MakeMove(NewInitialState(), Position{4, 4})
	again := MakeMove(s, Position{4, 4})
	if !reflect.DeepEqual(s, again) {
		t.Fatalf("expected illegal move to return identical state\nbefore=%+v\nafter=%+v", s, again)
	}
	outside := MakeMove(s, Position{12, 3})
	if !reflect.DeepEqual(s, outside) {
		t.Fatalf("expected out-of-bounds move to return identical state")
	}
}

func TestSuicideRejected(t *testing.T) {
	// Corner (0,0) surrounded by white at (0,1) and (1,0).
	corner := stateWith(boardFrom(
		".O",
		"O",
	), Black)
	if IsValidMove(corner, Position{0, 0}) {
		t.Fatalf("expected corner suicide to be rejected")
	}

	// Centre point with four white neighbours.
	centre := stateWith(boardFrom(
		"",
		"",
		"",
		"....O",
		"...O.O",
		"....O",
	), Black)
	if IsValidMove(centre, Position{4, 4}) {
		t.Fatalf("expected centre suicide to be rejected")
	}

	// Edge point with three white neighbours.
	edge := stateWith(boardFrom(
		"...O.O",
		"....O",
	), Black)
	if IsValidMove(edge, Position{0, 4}) {
		t.Fatalf("expected edge suicide to be rejected")
	}
}

func TestFillingOwnLastLibertyWithCaptureIsLegal(t *testing.T) {
	// Black at (0,0) would have no liberties but captures white (0,1),
	// which itself is held by black at (0,2) and (1,1).
	s := stateWith(boardFrom(
		".OX",
		"OX",
	), Black)
	if !IsValidMove(s, Position{0, 0}) {
		t.Fatalf("expected capturing move to be legal even without own liberties")
	}
	next := MakeMove(s, Position{0, 0})
	if next.Board.At(Position{0, 1}) != Empty {
		t.Fatalf("expected white stone at (0,1) to be captured")
	}
	if next.CapturedWhite != 1 {
		t.Fatalf("expected capturedWhite=1, got %d", next.CapturedWhite)
	}
}

func TestSingleStoneCapture(t *testing.T) {
	s := stateWith(boardFrom(
		"",
		"",
		"",
		"....X",
		"...XO",
		"....X",
	), Black)

	next := MakeMove(s, Position{4, 5})

	if next.Board.At(Position{4, 4}) != Empty {
		t.Fatalf("expected white stone at (4,4) to be removed")
	}
	if next.Board.At(Position{4, 5}) != Black {
		t.Fatalf("expected black stone at (4,5)")
	}
	if next.CapturedWhite != s.CapturedWhite+1 {
		t.Fatalf("expected capturedWhite to grow by 1, got %d", next.CapturedWhite)
	}
	if next.CapturedBlack != 0 {
		t.Fatalf("expected capturedBlack untouched, got %d", next.CapturedBlack)
	}
	if next.CurrentPlayer != White {
		t.Fatalf("expected white to move next, got %v", next.CurrentPlayer)
	}
	if next.LastMove == nil || *next.LastMove != (Position{4, 5}) {
		t.Fatalf("expected last move (4,5), got %v", next.LastMove)
	}
	if len(next.MoveHistory) != 1 || next.MoveHistory[0] != (Position{4, 5}) {
		t.Fatalf("expected history [(4,5)], got %v", next.MoveHistory)
	}
}

func TestMultiStoneCaptureRemovesWholeGroup(t *testing.T) {
	// White group of three on the top edge with a single liberty at (0,3).
	s := stateWith(boardFrom(
		"OOO.",
		"XXX",
	), Black)
	next := MakeMove(s, Position{0, 3})
	for c := 0; c < 3; c++ {
		if next.Board.At(Position{0, c}) != Empty {
			t.Fatalf("expected (0,%d) to be captured", c)
		}
	}
	if next.CapturedWhite != 3 {
		t.Fatalf("expected capturedWhite=3, got %d", next.CapturedWhite)
	}
}

func TestSimultaneousCaptureOfSeparateGroups(t *testing.T) {
	// Black at (0,1) takes the last liberty of white (0,0) and white (0,2).
	s := stateWith(boardFrom(
		"O.OX",
		"X.X",
	), Black)
	next := MakeMove(s, Position{0, 1})
	if next.Board.At(Position{0, 0}) != Empty || next.Board.At(Position{0, 2}) != Empty {
		t.Fatalf("expected both white stones captured, row0=%v", next.Board[0])
	}
	if next.CapturedWhite != 2 {
		t.Fatalf("expected capturedWhite=2, got %d", next.CapturedWhite)
	}
}

func TestWhiteCaptureCountsBlackStones(t *testing.T) {
	s := stateWith(boardFrom(
		"XO",
		"",
	), White)
	next := MakeMove(s, Position{1, 0})
	if next.CapturedBlack != 1 || next.CapturedWhite != 0 {
		t.Fatalf("expected capturedBlack=1 capturedWhite=0, got %d/%d", next.CapturedBlack, next.CapturedWhite)
	}
	if next.CurrentPlayer != Black {
		t.Fatalf("expected black to move next")
	}
}

// koPosition returns the state right after black played (1,2) and captured
// the single white stone at (1,1). White retaking at (1,1) would capture
// exactly the black stone at (1,2).
func koPosition(t *testing.T) GameState {
	t.Helper()
	s := stateWith(boardFrom(
		".XO",
		"XO.O",
		".XO",
	), Black)
	next := MakeMove(s, Position{1, 2})
	if next.Board.At(Position{1, 1}) != Empty {
		t.Fatalf("setup: expected black (1,2) to capture white (1,1)")
	}
	return next
}

func TestKoImmediateRecaptureRejected(t *testing.T) {
	s := koPosition(t)
	if s.CapturedWhite != 1 {
		t.Fatalf("setup: expected one white stone captured, got %d", s.CapturedWhite)
	}
	if IsValidMove(s, Position{1, 1}) {
		t.Fatalf("expected immediate single-stone recapture to be rejected")
	}
	if got := MakeMove(s, Position{1, 1}); !reflect.DeepEqual(got, s) {
		t.Fatalf("expected ko recapture to be a no-op")
	}
}

func TestKoAllowedAfterIntermediateMove(t *testing.T) {
	s := koPosition(t)
	s = MakeMove(s, Position{8, 8}) // white elsewhere
	s = MakeMove(s, Position{8, 0}) // black elsewhere
	if !IsValidMove(s, Position{1, 1}) {
		t.Fatalf("expected recapture to be legal once other moves intervened")
	}
}

func TestKoRuleDoesNotApplyToMultiStoneCapture(t *testing.T) {
	// Black (0,0)-(0,1) has one liberty at (0,2); black's last move was (0,1).
	s := stateWith(boardFrom(
		"XX.O",
		"OO",
	), White)
	s.MoveHistory = []Position{{0, 1}}
	if !IsValidMove(s, Position{0, 2}) {
		t.Fatalf("expected multi-stone capture including the last move to be legal")
	}
	next := MakeMove(s, Position{0, 2})
	if next.CapturedBlack != 2 {
		t.Fatalf("expected capturedBlack=2, got %d", next.CapturedBlack)
	}
}

func TestPassTwiceEndsGame(t *testing.T) {
	s := MakeMove(NewInitialState(), Position{2, 2})
	before := s.Board

	once := PassMove(s)
	if once.Passes != 1 || once.CurrentPlayer != Black || once.IsGameOver() {
		t.Fatalf("expected one pass with black to move, got %+v", once)
	}
	twice := PassMove(once)
	if twice.Passes != 2 || !twice.IsGameOver() {
		t.Fatalf("expected passes=2 and game over, got %d", twice.Passes)
	}
	if twice.Board != before {
		t.Fatalf("expected board unchanged by passes")
	}
	if len(twice.MoveHistory) != 1 || twice.LastMove == nil || *twice.LastMove != (Position{2, 2}) {
		t.Fatalf("expected history and last move untouched by passes")
	}
}

func TestPlacementResetsPasses(t *testing.T) {
	s := PassMove(NewInitialState())
	s = MakeMove(s, Position{3, 3})
	if s.Passes != 0 {
		t.Fatalf("expected passes reset to 0, got %d", s.Passes)
	}
}

func TestTransitionsDoNotAliasInput(t *testing.T) {
	s := MakeMove(NewInitialState(), Position{0, 0})
	next := MakeMove(s, Position{1, 1})
	next.MoveHistory[0] = Position{7, 7}
	*next.LastMove = Position{6, 6}
	next.Board.Set(Position{0, 0}, White)

	if s.MoveHistory[0] != (Position{0, 0}) {
		t.Fatalf("expected input history untouched, got %v", s.MoveHistory)
	}
	if *s.LastMove != (Position{0, 0}) {
		t.Fatalf("expected input last move untouched, got %v", *s.LastMove)
	}
	if s.Board.At(Position{0, 0}) != Black {
		t.Fatalf("expected input board untouched")
	}

	passed := PassMove(s)
	passed.MoveHistory[0] = Position{5, 5}
	if s.MoveHistory[0] != (Position{0, 0}) {
		t.Fatalf("expected pass to copy history")
	}
}
