package ai

import (
	"context"
	"math/rand/v2"
	"slices"
	"time"

	"go.uber.org/zap"

	"github.com/mitre88/go-on-line/internal/domain/game"
)

// MoveSuggester is an external opinion on the next move. Its answer is not
// trusted: AiUseCase checks it against the legal moves.
type MoveSuggester interface {
	SuggestMove(ctx context.Context, state game.GameState, turns []game.Turn, validMoves []game.Position) (game.AiMove, error)
}

type AiUseCase struct {
	suggester MoveSuggester
	timeout   time.Duration
	log       *zap.SugaredLogger
	intn      func(n int) int
}

// NewAiUseCase builds the move chooser. A nil suggester always plays a
// random legal move.
func NewAiUseCase(suggester MoveSuggester, timeout time.Duration, log *zap.SugaredLogger) *AiUseCase {
	return &AiUseCase{
		suggester: suggester,
		timeout:   timeout,
		log:       log,
		intn:      rand.IntN,
	}
}

// WithRandom replaces the source used for fallback moves.
func (a *AiUseCase) WithRandom(intn func(n int) int) *AiUseCase {
	a.intn = intn
	return a
}

// ChooseMove never fails: with no legal move it passes, and any advisor
// error, timeout or illegal answer falls back to a uniform random legal move.
func (a *AiUseCase) ChooseMove(ctx context.Context, state game.GameState, turns []game.Turn) game.AiMove {
	validMoves := game.GetValidMoves(state)
	if len(validMoves) == 0 {
		return game.PassAiMove()
	}

	if a.suggester == nil {
		move := a.randomMove(validMoves)
		move.Fallback = false
		return move
	}

	if a.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.timeout)
		defer cancel()
	}

	suggested, err := a.suggester.SuggestMove(ctx, state, turns, validMoves)
	if err != nil {
		a.log.Warnf("move advisor failed, playing random move: %v", err)
		return a.randomMove(validMoves)
	}
	if suggested.Pass {
		return game.PassAiMove()
	}
	if suggested.Position == nil || !slices.Contains(validMoves, *suggested.Position) {
		a.log.Warnw("move advisor suggested an illegal move, playing random move", "suggested", suggested.Position)
		return a.randomMove(validMoves)
	}
	return game.PlaceAiMove(*suggested.Position)
}

func (a *AiUseCase) randomMove(validMoves []game.Position) game.AiMove {
	move := game.PlaceAiMove(validMoves[a.intn(len(validMoves))])
	move.Fallback = true
	return move
}

// TurnsFromHistory rebuilds a turn log from placements only, assuming black
// started and nobody passed. Used when a caller only has a GameState.
func TurnsFromHistory(history []game.Position) []game.Turn {
	turns := make([]game.Turn, 0, len(history))
	color := game.Black
	for _, p := range history {
		pos := p
		turns = append(turns, game.Turn{Color: color, Position: &pos})
		color = color.Opponent()
	}
	return turns
}
