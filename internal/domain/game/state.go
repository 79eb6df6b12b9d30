package game

import (
	"fmt"
	"slices"

	errs "github.com/mitre88/go-on-line/internal/errors"
)

// GameState is an immutable snapshot. Every transition in this package
// returns a fresh value and never writes through to its input.
type GameState struct {
	Board         Board      `json:"board" bson:"board"`
	CurrentPlayer Stone      `json:"currentPlayer" bson:"current_player"`
	CapturedBlack int        `json:"capturedBlack" bson:"captured_black"`
	CapturedWhite int        `json:"capturedWhite" bson:"captured_white"`
	MoveHistory   []Position `json:"moveHistory" bson:"move_history"`
	LastMove      *Position  `json:"lastMove" bson:"last_move"`
	Passes        int        `json:"passes" bson:"passes"`
}

func NewInitialState() GameState {
	return GameState{
		CurrentPlayer: Black,
		MoveHistory:   []Position{},
	}
}

// Validate checks a state that arrived from outside (e.g. decoded JSON).
// The board dimensions are already enforced by Board.UnmarshalJSON.
func (s GameState) Validate() error {
	if s.CurrentPlayer != Black && s.CurrentPlayer != White {
		return errs.ErrInvalidPlayer
	}
	if s.CapturedBlack < 0 || s.CapturedWhite < 0 || s.Passes < 0 {
		return fmt.Errorf("%w: negative counter", errs.ErrInvalidBoard)
	}
	for _, p := range s.MoveHistory {
		if !p.InBounds() {
			return fmt.Errorf("%w: history position %s out of bounds", errs.ErrInvalidBoard, p)
		}
	}
	return nil
}

// IsGameOver reports two consecutive passes. The engine never enforces it.
func (s GameState) IsGameOver() bool {
	return s.Passes >= 2
}

func (s GameState) clone() GameState {
	out := s
	out.MoveHistory = slices.Clone(s.MoveHistory)
	if out.MoveHistory == nil {
		out.MoveHistory = []Position{}
	}
	if s.LastMove != nil {
		last := *s.LastMove
		out.LastMove = &last
	}
	return out
}
