package game

import (
	"encoding/json"
	"fmt"

	errs "github.com/mitre88/go-on-line/internal/errors"
)

// Stone is the content of a single intersection.
type Stone int8

const (
	Empty Stone = iota
	Black
	White
)

// Opponent returns the other colour. Empty has no opponent.
func (s Stone) Opponent() Stone {
	switch s {
	case Black:
		return White
	case White:
		return Black
	default:
		return Empty
	}
}

func (s Stone) String() string {
	switch s {
	case Black:
		return "black"
	case White:
		return "white"
	default:
		return "empty"
	}
}

// MarshalJSON writes black/white as strings and an empty cell as null,
// the same shape the browser client keeps in its board matrix.
func (s Stone) MarshalJSON() ([]byte, error) {
	if s == Empty {
		return []byte("null"), nil
	}
	return json.Marshal(s.String())
}

func (s *Stone) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*s = Empty
		return nil
	}
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("%w: %s", errs.ErrInvalidStone, string(data))
	}
	switch raw {
	case "black":
		*s = Black
	case "white":
		*s = White
	case "", "empty":
		*s = Empty
	default:
		return fmt.Errorf("%w: %q", errs.ErrInvalidStone, raw)
	}
	return nil
}
