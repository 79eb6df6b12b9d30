package game

import (
	"encoding/json"
	"fmt"

	errs "github.com/mitre88/go-on-line/internal/errors"
)

// BoardSize is fixed for the engine and for the wire format.
const BoardSize = 9

type Position struct {
	Row int `json:"row" bson:"row"`
	Col int `json:"col" bson:"col"`
}

func (p Position) InBounds() bool {
	return p.Row >= 0 && p.Row < BoardSize && p.Col >= 0 && p.Col < BoardSize
}

func (p Position) index() int {
	return p.Row*BoardSize + p.Col
}

func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.Row, p.Col)
}

// Board is a value type: assigning or passing it by value copies every cell,
// so states never share cells.
type Board [BoardSize][BoardSize]Stone

func (b *Board) At(p Position) Stone {
	return b[p.Row][p.Col]
}

func (b *Board) Set(p Position, s Stone) {
	b[p.Row][p.Col] = s
}

// UnmarshalJSON rejects anything that is not exactly BoardSize rows of
// BoardSize cells.
func (b *Board) UnmarshalJSON(data []byte) error {
	var rows [][]Stone
	if err := json.Unmarshal(data, &rows); err != nil {
		return err
	}
	if len(rows) != BoardSize {
		return fmt.Errorf("%w: got %d rows", errs.ErrInvalidBoard, len(rows))
	}
	var decoded Board
	for r, row := range rows {
		if len(row) != BoardSize {
			return fmt.Errorf("%w: row %d has %d cells", errs.ErrInvalidBoard, r, len(row))
		}
		copy(decoded[r][:], row)
	}
	*b = decoded
	return nil
}
