package stats

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/mitre88/go-on-line/internal/domain/stats"
	errs "github.com/mitre88/go-on-line/internal/errors"
	"github.com/mitre88/go-on-line/internal/httpresponse"
	statsUC "github.com/mitre88/go-on-line/internal/usecase/stats"
	"github.com/mitre88/go-on-line/internal/utils"
)

type StatsHandler struct {
	log     *zap.SugaredLogger
	statsUC *statsUC.StatsUseCase
}

func NewStatsHandler(log *zap.SugaredLogger, uc *statsUC.StatsUseCase) *StatsHandler {
	return &StatsHandler{log: log, statsUC: uc}
}

// GetStats godoc
// @Summary Site counters
// @Tags stats
// @Produce json
// @Success 200 {object} stats.Stats
// @Router /api/stats [get]
func (s *StatsHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	httpresponse.WriteJSON(s.log, w, http.StatusOK, s.statsUC.GetStats(r.Context()))
}

// UpdateStats godoc
// @Summary Increment a site counter
// @Tags stats
// @Accept json
// @Produce json
// @Param action body stats.UpdateRequest true "newGame or newPlayer"
// @Success 200 {object} stats.Stats
// @Failure 400 {object} map[string]string
// @Router /api/stats [post]
func (s *StatsHandler) UpdateStats(w http.ResponseWriter, r *http.Request) {
	var req stats.UpdateRequest
	if err := utils.DecodeJSONRequest(r, &req); err != nil {
		httpresponse.WriteJSONError(s.log, w, http.StatusBadRequest, err.Error())
		return
	}

	updated, err := s.statsUC.Record(r.Context(), req.Action)
	if errors.Is(err, errs.ErrUnknownAction) {
		httpresponse.WriteJSONError(s.log, w, http.StatusBadRequest, err.Error()+": "+req.Action)
		return
	}
	if err != nil {
		httpresponse.WriteJSONError(s.log, w, http.StatusInternalServerError, "failed to update stats")
		return
	}

	httpresponse.WriteJSON(s.log, w, http.StatusOK, updated)
}
