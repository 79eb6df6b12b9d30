package errors

import "errors"

var (
	ErrGameNotFound   = errors.New("game not found")
	ErrGameOver       = errors.New("game is over")
	ErrNotYourTurn    = errors.New("it is not your turn")
	ErrIllegalMove    = errors.New("illegal move")
	ErrInvalidBoard   = errors.New("board must be 9x9")
	ErrInvalidStone   = errors.New("unknown stone value")
	ErrInvalidPlayer  = errors.New("current player must be black or white")
	ErrUnknownAction  = errors.New("unknown stats action")
	ErrInvalidPage    = errors.New("page out of range")
	ErrAdvisorFailure = errors.New("move advisor failed")
)
