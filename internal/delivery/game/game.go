package game

import (
	"bytes"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/mitre88/go-on-line/internal/domain/game"
	"github.com/mitre88/go-on-line/internal/httpresponse"
	gameUC "github.com/mitre88/go-on-line/internal/usecase/game"
	"github.com/mitre88/go-on-line/internal/utils"
)

type GameHandler struct {
	log    *zap.SugaredLogger
	gameUC *gameUC.GameUseCase
	live   *liveGames
}

func NewGameHandler(log *zap.SugaredLogger, uc *gameUC.GameUseCase) *GameHandler {
	return &GameHandler{
		log:    log,
		gameUC: uc,
		live:   newLiveGames(log),
	}
}

// Routes mounts the session endpoints, expected under /api/games.
func (g *GameHandler) Routes(r chi.Router) {
	r.Post("/", g.HandleNewGame)
	r.Route("/{id}", func(r chi.Router) {
		r.Get("/", g.HandleGetGame)
		r.Post("/move", g.HandleMove)
		r.Post("/pass", g.HandlePass)
		r.Get("/ws", g.HandleLiveGame)
		r.Get("/sgf", g.HandleExportSGF)
		r.Get("/pdf", g.HandleExportPDF)
	})
}

// HandleNewGame godoc
// @Summary Start a game against the AI
// @Tags game
// @Produce json
// @Success 201 {object} game.SessionView
// @Router /api/games [post]
func (g *GameHandler) HandleNewGame(w http.ResponseWriter, r *http.Request) {
	view, err := g.gameUC.NewGame(r.Context())
	if err != nil {
		g.log.Error(err)
		httpresponse.WriteError(w, err)
		return
	}
	httpresponse.WriteResponseWithStatus(w, http.StatusCreated, view)
}

func (g *GameHandler) HandleGetGame(w http.ResponseWriter, r *http.Request) {
	view, err := g.gameUC.GetGame(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpresponse.WriteError(w, err)
		return
	}
	httpresponse.WriteResponseWithStatus(w, http.StatusOK, view)
}

// HandleMove godoc
// @Summary Place a black stone; the AI answers in the same response
// @Tags game
// @Accept json
// @Produce json
// @Param id path string true "Game id"
// @Param move body game.MoveRequest true "Point to play"
// @Success 200 {object} game.SessionView
// @Failure 404 {object} httpresponse.ErrorResponse
// @Failure 409 {object} httpresponse.ErrorResponse
// @Failure 422 {object} httpresponse.ErrorResponse
// @Router /api/games/{id}/move [post]
func (g *GameHandler) HandleMove(w http.ResponseWriter, r *http.Request) {
	var req game.MoveRequest
	if err := utils.DecodeJSONRequest(r, &req); err != nil {
		httpresponse.WriteResponseWithStatus(w, http.StatusBadRequest,
			httpresponse.ErrorResponse{ErrorDescription: httpresponse.MALFORMEDJSON_errorDesc})
		return
	}

	id := chi.URLParam(r, "id")
	view, err := g.gameUC.PlayMove(r.Context(), id, game.Position{Row: req.Row, Col: req.Col})
	g.respondTurn(w, id, view, err)
}

func (g *GameHandler) HandlePass(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	view, err := g.gameUC.Pass(r.Context(), id)
	g.respondTurn(w, id, view, err)
}

func (g *GameHandler) respondTurn(w http.ResponseWriter, id string, view game.SessionView, err error) {
	if err != nil {
		g.log.Infof("game %s: turn rejected: %v", id, err)
		httpresponse.WriteError(w, err)
		return
	}
	g.live.publish(id, view)
	httpresponse.WriteResponseWithStatus(w, http.StatusOK, view)
}

func (g *GameHandler) HandleExportSGF(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	record, err := g.gameUC.ExportSGF(r.Context(), id)
	if err != nil {
		httpresponse.WriteError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/x-go-sgf")
	w.Header().Set("Content-Disposition", `attachment; filename="`+id+`.sgf"`)
	_, _ = w.Write([]byte(record))
}

func (g *GameHandler) HandleExportPDF(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var buf bytes.Buffer
	if err := g.gameUC.ExportPDF(r.Context(), id, &buf); err != nil {
		if httpresponse.StatusFor(err) == http.StatusInternalServerError {
			g.log.Errorf("render pdf for %s: %v", id, err)
		}
		httpresponse.WriteError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="`+id+`.pdf"`)
	_, _ = buf.WriteTo(w)
}

// HandleArchive godoc
// @Summary Finished games, newest first
// @Tags game
// @Produce json
// @Param page query int false "Page number, starting at 1"
// @Success 200 {object} game.ArchiveResponse
// @Router /api/archive [get]
func (g *GameHandler) HandleArchive(w http.ResponseWriter, r *http.Request) {
	page := 1
	if raw := r.URL.Query().Get("page"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			httpresponse.WriteResponseWithStatus(w, http.StatusBadRequest,
				httpresponse.ErrorResponse{ErrorDescription: "page must be a positive integer"})
			return
		}
		page = n
	}

	archive, err := g.gameUC.ListArchive(r.Context(), page)
	if err != nil {
		if httpresponse.StatusFor(err) == http.StatusInternalServerError {
			g.log.Errorf("list archive: %v", err)
		}
		httpresponse.WriteError(w, err)
		return
	}
	httpresponse.WriteResponseWithStatus(w, http.StatusOK, archive)
}
