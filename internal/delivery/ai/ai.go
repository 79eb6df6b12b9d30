package ai

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/mitre88/go-on-line/internal/domain/game"
	"github.com/mitre88/go-on-line/internal/httpresponse"
	aiUC "github.com/mitre88/go-on-line/internal/usecase/ai"
)

type AiHandler struct {
	log  *zap.SugaredLogger
	aiUC *aiUC.AiUseCase
}

func NewAiHandler(log *zap.SugaredLogger, uc *aiUC.AiUseCase) *AiHandler {
	return &AiHandler{log: log, aiUC: uc}
}

// HandleAiMove godoc
// @Summary Move for the side to play
// @Description Takes a full game state and answers {"pass": true} or {"row": r, "col": c}
// @Tags ai
// @Accept json
// @Produce json
// @Param state body game.GameState true "Current game state"
// @Success 200 {object} game.AiMove
// @Failure 400 {object} map[string]string
// @Router /api/ai-move [post]
func (a *AiHandler) HandleAiMove(w http.ResponseWriter, r *http.Request) {
	var state game.GameState
	if err := json.NewDecoder(r.Body).Decode(&state); err != nil {
		httpresponse.WriteJSONError(a.log, w, http.StatusBadRequest, "Invalid JSON: "+err.Error())
		return
	}
	if err := state.Validate(); err != nil {
		httpresponse.WriteJSONError(a.log, w, http.StatusBadRequest, err.Error())
		return
	}

	move := a.aiUC.ChooseMove(r.Context(), state, aiUC.TurnsFromHistory(state.MoveHistory))
	if move.Fallback {
		a.log.Infof("advisor unavailable, answered with random move %+v", move)
	}

	httpresponse.WriteJSON(a.log, w, http.StatusOK, move)
}
