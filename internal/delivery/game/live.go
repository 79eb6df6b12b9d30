package game

import (
	"net/http"
	"strconv"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/mitre88/go-on-line/internal/domain/game"
	"github.com/mitre88/go-on-line/internal/httpresponse"
)

const (
	messageMove = "move"
	messagePass = "pass"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

type liveMessage struct {
	Type string `json:"type"`
	Row  int    `json:"row"`
	Col  int    `json:"col"`
}

type liveError struct {
	Error string `json:"error"`
}

// liveConn serialises writes; gorilla allows one writer at a time.
type liveConn struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

func (c *liveConn) send(v any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteJSON(v)
}

// liveGames keeps at most one socket per session. A new connection for the
// same session replaces the old one.
type liveGames struct {
	mu    sync.Mutex
	conns map[string]*liveConn
	log   *zap.SugaredLogger
}

func newLiveGames(log *zap.SugaredLogger) *liveGames {
	return &liveGames{conns: make(map[string]*liveConn), log: log}
}

func (l *liveGames) attach(id string, conn *websocket.Conn) *liveConn {
	lc := &liveConn{conn: conn}
	l.mu.Lock()
	old := l.conns[id]
	l.conns[id] = lc
	l.mu.Unlock()

	if old != nil {
		_ = old.send(liveError{Error: "replaced by a newer connection"})
		old.conn.Close()
	}
	return lc
}

func (l *liveGames) detach(id string, lc *liveConn) {
	l.mu.Lock()
	if l.conns[id] == lc {
		delete(l.conns, id)
	}
	l.mu.Unlock()
	lc.conn.Close()
}

// publish pushes a view to the session's socket, if one is open.
func (l *liveGames) publish(id string, view game.SessionView) {
	l.mu.Lock()
	lc := l.conns[id]
	l.mu.Unlock()
	if lc == nil {
		return
	}
	if err := lc.send(view); err != nil {
		l.log.Warnf("game %s: push to socket failed: %v", id, err)
		l.detach(id, lc)
	}
}

// HandleLiveGame godoc
// @Summary Play a game over a websocket
// @Description Client sends {"type":"move","row":r,"col":c} or {"type":"pass"}; the server answers with the session view or {"error": ...}
// @Tags game
// @Param id path string true "Game id"
// @Router /api/games/{id}/ws [get]
func (g *GameHandler) HandleLiveGame(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")

	view, err := g.gameUC.GetGame(ctx, id)
	if err != nil {
		httpresponse.WriteError(w, err)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		g.log.Errorf("upgrade error: %v", err)
		return
	}
	lc := g.live.attach(id, conn)
	defer g.live.detach(id, lc)

	if err := lc.send(view); err != nil {
		return
	}

	for {
		var msg liveMessage
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				g.log.Warnf("game %s: read error: %v", id, err)
			}
			return
		}

		switch msg.Type {
		case messageMove:
			view, err = g.gameUC.PlayMove(ctx, id, game.Position{Row: msg.Row, Col: msg.Col})
		case messagePass:
			view, err = g.gameUC.Pass(ctx, id)
		default:
			err = errUnknownMessage(msg.Type)
		}

		if err != nil {
			if sendErr := lc.send(liveError{Error: err.Error()}); sendErr != nil {
				return
			}
			continue
		}
		if err := lc.send(view); err != nil {
			g.log.Warnf("game %s: write error: %v", id, err)
			return
		}
	}
}

type errUnknownMessage string

func (e errUnknownMessage) Error() string {
	return "unknown message type " + strconv.Quote(string(e))
}
