package game

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/mitre88/go-on-line/internal/domain/game"
	"github.com/mitre88/go-on-line/internal/repository"
	aiUC "github.com/mitre88/go-on-line/internal/usecase/ai"
	gameUC "github.com/mitre88/go-on-line/internal/usecase/game"
	statsUC "github.com/mitre88/go-on-line/internal/usecase/stats"
)

type envelope struct {
	Status int             `json:"Status"`
	Body   json.RawMessage `json:"Body"`
}

// newTestServer wires the handler with in-memory stores and an AI that
// always answers with the first legal point.
func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	log := zap.NewNop().Sugar()
	ai := aiUC.NewAiUseCase(nil, 0, log).WithRandom(func(int) int { return 0 })
	stats := statsUC.NewStatsUseCase(repository.NewMemoryStatsStorage(time.Now()), log)
	uc := gameUC.NewGameUseCase(
		repository.NewMemorySessionStorage(0),
		repository.NewMemoryArchiveStorage(),
		ai, stats, log, 10,
	)
	h := NewGameHandler(log, uc)

	r := chi.NewRouter()
	r.Route("/api/games", h.Routes)
	r.Get("/api/archive", h.HandleArchive)

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func doJSON(t *testing.T, method, url, body string) (int, envelope) {
	t.Helper()
	req, err := http.NewRequest(method, url, strings.NewReader(body))
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, url, err)
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	if env.Status != resp.StatusCode {
		t.Fatalf("expected envelope status %d to match HTTP status %d", env.Status, resp.StatusCode)
	}
	return resp.StatusCode, env
}

func newGame(t *testing.T, srv *httptest.Server) game.SessionView {
	t.Helper()
	status, env := doJSON(t, http.MethodPost, srv.URL+"/api/games", "")
	if status != http.StatusCreated {
		t.Fatalf("expected 201, got %d", status)
	}
	var view game.SessionView
	if err := json.Unmarshal(env.Body, &view); err != nil {
		t.Fatalf("decode view: %v", err)
	}
	return view
}

func TestCreateAndPlay(t *testing.T) {
	srv := newTestServer(t)
	view := newGame(t, srv)
	if view.ID == "" || view.State.CurrentPlayer != game.Black {
		t.Fatalf("unexpected new game %+v", view.Session)
	}

	status, env := doJSON(t, http.MethodPost, srv.URL+"/api/games/"+view.ID+"/move", `{"row":4,"col":4}`)
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", status, env.Body)
	}
	var played game.SessionView
	if err := json.Unmarshal(env.Body, &played); err != nil {
		t.Fatalf("decode view: %v", err)
	}
	if played.AiMove == nil || played.AiMove.Position == nil || *played.AiMove.Position != (game.Position{Row: 0, Col: 0}) {
		t.Fatalf("expected AI reply at (0,0), got %+v", played.AiMove)
	}
	if played.State.Board.At(game.Position{Row: 4, Col: 4}) != game.Black {
		t.Fatalf("expected black stone at (4,4)")
	}

	status, _ = doJSON(t, http.MethodGet, srv.URL+"/api/games/"+view.ID, "")
	if status != http.StatusOK {
		t.Fatalf("expected 200 on get, got %d", status)
	}
}

func TestMoveErrors(t *testing.T) {
	srv := newTestServer(t)
	view := newGame(t, srv)
	moveURL := srv.URL + "/api/games/" + view.ID + "/move"

	cases := []struct {
		name string
		url  string
		body string
		want int
	}{
		{"malformed", moveURL, `{"row":`, http.StatusBadRequest},
		{"unknown field", moveURL, `{"row":1,"col":1,"x":2}`, http.StatusBadRequest},
		{"off board", moveURL, `{"row":9,"col":0}`, http.StatusUnprocessableEntity},
		{"unknown game", srv.URL + "/api/games/nope/move", `{"row":1,"col":1}`, http.StatusNotFound},
	}
	for _, tc := range cases {
		if status, _ := doJSON(t, http.MethodPost, tc.url, tc.body); status != tc.want {
			t.Fatalf("%s: expected %d, got %d", tc.name, tc.want, status)
		}
	}

	doJSON(t, http.MethodPost, moveURL, `{"row":4,"col":4}`)
	if status, _ := doJSON(t, http.MethodPost, moveURL, `{"row":4,"col":4}`); status != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 on occupied point, got %d", status)
	}
}

func TestPassAndArchive(t *testing.T) {
	srv := newTestServer(t)
	view := newGame(t, srv)

	status, env := doJSON(t, http.MethodPost, srv.URL+"/api/games/"+view.ID+"/pass", "")
	if status != http.StatusOK {
		t.Fatalf("expected 200 on pass, got %d", status)
	}
	var passed game.SessionView
	_ = json.Unmarshal(env.Body, &passed)
	if passed.GameOver || passed.State.Passes != 0 {
		t.Fatalf("expected the AI to answer a pass with a stone, got %+v", passed.State)
	}

	status, env = doJSON(t, http.MethodGet, srv.URL+"/api/archive?page=1", "")
	if status != http.StatusOK {
		t.Fatalf("expected 200 on archive, got %d", status)
	}
	var archive game.ArchiveResponse
	if err := json.Unmarshal(env.Body, &archive); err != nil || len(archive.Games) != 0 {
		t.Fatalf("expected empty archive, got %+v err=%v", archive, err)
	}
	for _, page := range []string{"zero", "-1", "922337203685477582"} {
		if status, _ = doJSON(t, http.MethodGet, srv.URL+"/api/archive?page="+page, ""); status != http.StatusBadRequest {
			t.Fatalf("expected 400 for page %s, got %d", page, status)
		}
	}
}

func TestExports(t *testing.T) {
	srv := newTestServer(t)
	view := newGame(t, srv)
	doJSON(t, http.MethodPost, srv.URL+"/api/games/"+view.ID+"/move", `{"row":2,"col":2}`)

	resp, err := http.Get(srv.URL + "/api/games/" + view.ID + "/sgf")
	if err != nil {
		t.Fatalf("get sgf: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if resp.Header.Get("Content-Type") != "application/x-go-sgf" {
		t.Fatalf("unexpected content type %q", resp.Header.Get("Content-Type"))
	}
	if !strings.HasPrefix(string(body), "(;FF[4]GM[1]SZ[9]") || !strings.HasSuffix(string(body), ";B[cc];W[aa])") {
		t.Fatalf("unexpected sgf %s", body)
	}

	resp, err = http.Get(srv.URL + "/api/games/" + view.ID + "/pdf")
	if err != nil {
		t.Fatalf("get pdf: %v", err)
	}
	body, _ = io.ReadAll(resp.Body)
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK || !strings.HasPrefix(string(body), "%PDF") {
		t.Fatalf("expected a PDF, got %d", resp.StatusCode)
	}

	resp, err = http.Get(srv.URL + "/api/games/missing/pdf")
	if err != nil {
		t.Fatalf("get pdf: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown game, got %d", resp.StatusCode)
	}
}

func TestLiveGameOverWebsocket(t *testing.T) {
	srv := newTestServer(t)
	view := newGame(t, srv)

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/games/" + view.ID + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()
	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))

	var initial game.SessionView
	if err := conn.ReadJSON(&initial); err != nil || initial.ID != view.ID {
		t.Fatalf("expected initial view, got %+v err=%v", initial.Session, err)
	}

	if err := conn.WriteJSON(map[string]any{"type": "move", "row": 3, "col": 3}); err != nil {
		t.Fatalf("write: %v", err)
	}
	var played game.SessionView
	if err := conn.ReadJSON(&played); err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(played.Turns) != 2 || played.AiMove == nil {
		t.Fatalf("expected human and AI turn, got %+v", played.Turns)
	}

	if err := conn.WriteJSON(map[string]any{"type": "resign"}); err != nil {
		t.Fatalf("write: %v", err)
	}
	var failure map[string]string
	if err := conn.ReadJSON(&failure); err != nil || !strings.Contains(failure["error"], "resign") {
		t.Fatalf("expected error for unknown message, got %v err=%v", failure, err)
	}

	// A REST move is pushed to the open socket as well.
	doJSON(t, http.MethodPost, srv.URL+"/api/games/"+view.ID+"/pass", "")
	var pushed game.SessionView
	if err := conn.ReadJSON(&pushed); err != nil || len(pushed.Turns) != 4 {
		t.Fatalf("expected pushed view with 4 turns, got %d err=%v", len(pushed.Turns), err)
	}
}

func TestLiveGameUnknownSession(t *testing.T) {
	srv := newTestServer(t)
	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/games/missing/ws"
	_, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err == nil {
		t.Fatalf("expected handshake to fail")
	}
	if resp == nil || resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 before upgrade, got %v", resp)
	}
}
