package ai

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/mitre88/go-on-line/internal/domain/game"
	errs "github.com/mitre88/go-on-line/internal/errors"
)

type LlmStore interface {
	SendRequestToLlm(ctx context.Context, request string) (response string, err error)
}

var moveRe = regexp.MustCompile(`(\d+),\s*(\d+)`)

type LlmSuggester struct {
	llm LlmStore
}

func NewLlmSuggester(llm LlmStore) *LlmSuggester {
	return &LlmSuggester{llm: llm}
}

func (l *LlmSuggester) SuggestMove(ctx context.Context, state game.GameState, _ []game.Turn, validMoves []game.Position) (game.AiMove, error) {
	resp, err := l.llm.SendRequestToLlm(ctx, BuildPrompt(state, validMoves))
	if err != nil {
		return game.AiMove{}, fmt.Errorf("%w: %v", errs.ErrAdvisorFailure, err)
	}
	return ParseLlmMove(resp)
}

// ParseLlmMove takes the first "row,col" pair in the answer. A bare "pass"
// is accepted as a pass.
func ParseLlmMove(resp string) (game.AiMove, error) {
	if m := moveRe.FindStringSubmatch(resp); m != nil {
		row, errRow := strconv.Atoi(m[1])
		col, errCol := strconv.Atoi(m[2])
		if errRow == nil && errCol == nil {
			return game.PlaceAiMove(game.Position{Row: row, Col: col}), nil
		}
	}
	if strings.EqualFold(strings.TrimSpace(resp), "pass") {
		return game.PassAiMove(), nil
	}
	return game.AiMove{}, fmt.Errorf("%w: unparseable answer %q", errs.ErrAdvisorFailure, resp)
}

// RenderBoard draws the board with X for black, O for white and . for empty.
func RenderBoard(board *game.Board) string {
	var sb strings.Builder
	for r := 0; r < game.BoardSize; r++ {
		for c := 0; c < game.BoardSize; c++ {
			if c > 0 {
				sb.WriteByte(' ')
			}
			switch board[r][c] {
			case game.Black:
				sb.WriteByte('X')
			case game.White:
				sb.WriteByte('O')
			default:
				sb.WriteByte('.')
			}
		}
		if r < game.BoardSize-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

func BuildPrompt(state game.GameState, validMoves []game.Position) string {
	moves := make([]string, 0, len(validMoves))
	for _, m := range validMoves {
		moves = append(moves, m.String())
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "You are an expert Go player. Analyze this %dx%d Go board and suggest the best move for %s.\n\n",
		game.BoardSize, game.BoardSize, strings.ToUpper(state.CurrentPlayer.String()))
	sb.WriteString("Current board state (X=black, O=white, .=empty):\n")
	sb.WriteString(RenderBoard(&state.Board))
	fmt.Fprintf(&sb, "\n\nCaptured stones - Black: %d, White: %d\n", state.CapturedBlack, state.CapturedWhite)
	fmt.Fprintf(&sb, "Current player: %s\n\n", state.CurrentPlayer)
	sb.WriteString("Consider:\n1. Capturing opponent stones\n2. Protecting your groups\n3. Expanding territory\n4. Strategic positioning\n\n")
	fmt.Fprintf(&sb, "Respond with ONLY the move in format \"row,col\" (0-indexed, e.g., \"4,5\"). Choose from these valid moves: %s\n\n",
		strings.Join(moves, ", "))
	sb.WriteString("Your move:")
	return sb.String()
}
