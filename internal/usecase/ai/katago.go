package ai

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/mitre88/go-on-line/internal/domain/game"
	errs "github.com/mitre88/go-on-line/internal/errors"
)

type KatagoStore interface {
	GenerateMove(ctx context.Context, moves []string) (game.BotResponse, error)
}

type KatagoSuggester struct {
	store KatagoStore
}

func NewKatagoSuggester(store KatagoStore) *KatagoSuggester {
	return &KatagoSuggester{store: store}
}

func (k *KatagoSuggester) SuggestMove(ctx context.Context, _ game.GameState, turns []game.Turn, _ []game.Position) (game.AiMove, error) {
	moves := make([]string, 0, len(turns))
	for _, t := range turns {
		if t.IsPass() {
			moves = append(moves, "pass")
			continue
		}
		moves = append(moves, PositionToGTP(*t.Position))
	}

	resp, err := k.store.GenerateMove(ctx, moves)
	if err != nil {
		return game.AiMove{}, fmt.Errorf("%w: %v", errs.ErrAdvisorFailure, err)
	}
	if strings.EqualFold(resp.BotMove, "pass") {
		return game.PassAiMove(), nil
	}
	pos, err := GTPToPosition(resp.BotMove)
	if err != nil {
		return game.AiMove{}, fmt.Errorf("%w: %v", errs.ErrAdvisorFailure, err)
	}
	return game.PlaceAiMove(pos), nil
}

// PositionToGTP converts (row, col) to GTP notation: columns A..J without I,
// rows counted from the bottom edge.
func PositionToGTP(p game.Position) string {
	col := byte('A' + p.Col)
	if col >= 'I' {
		col++
	}
	return fmt.Sprintf("%c%d", col, game.BoardSize-p.Row)
}

func GTPToPosition(coord string) (game.Position, error) {
	coord = strings.ToUpper(strings.TrimSpace(coord))
	if len(coord) < 2 {
		return game.Position{}, fmt.Errorf("invalid GTP coordinate %q", coord)
	}
	letter := coord[0]
	if letter < 'A' || letter > 'Z' || letter == 'I' {
		return game.Position{}, fmt.Errorf("invalid GTP column in %q", coord)
	}
	col := int(letter - 'A')
	if letter > 'I' {
		col--
	}
	number, err := strconv.Atoi(coord[1:])
	if err != nil {
		return game.Position{}, fmt.Errorf("invalid GTP row in %q: %w", coord, err)
	}
	pos := game.Position{Row: game.BoardSize - number, Col: col}
	if !pos.InBounds() {
		return game.Position{}, fmt.Errorf("GTP coordinate %q is off the board", coord)
	}
	return pos, nil
}
