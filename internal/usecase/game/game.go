package game

import (
	"context"
	"fmt"
	"io"
	"math"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mitre88/go-on-line/internal/domain/game"
	"github.com/mitre88/go-on-line/internal/domain/stats"
	errs "github.com/mitre88/go-on-line/internal/errors"
)

type SessionStore interface {
	SaveSession(ctx context.Context, session game.Session) error
	LoadSession(ctx context.Context, id string) (game.Session, error)
}

type ArchiveStore interface {
	ArchiveGame(ctx context.Context, session game.Session) error
	ListArchivedGames(ctx context.Context, pageNum, pageLimit int) (*game.ArchiveResponse, error)
}

type MoveChooser interface {
	ChooseMove(ctx context.Context, state game.GameState, turns []game.Turn) game.AiMove
}

type StatsRecorder interface {
	Record(ctx context.Context, action string) (stats.Stats, error)
}

// GameUseCase drives sessions where the human plays black and the AI
// answers as white right after every human turn.
type GameUseCase struct {
	sessions  SessionStore
	archive   ArchiveStore
	ai        MoveChooser
	stats     StatsRecorder
	log       *zap.SugaredLogger
	pageLimit int
	now       func() time.Time
	newID     func() string
	locksMu   sync.Mutex
	locks     map[string]*sessionLock
}

// sessionLock is dropped from GameUseCase.locks once nobody holds or waits
// for it.
type sessionLock struct {
	mu   sync.Mutex
	refs int
}

func NewGameUseCase(
	sessions SessionStore,
	archive ArchiveStore,
	ai MoveChooser,
	stats StatsRecorder,
	log *zap.SugaredLogger,
	pageLimit int,
) *GameUseCase {
	return &GameUseCase{
		sessions:  sessions,
		archive:   archive,
		ai:        ai,
		stats:     stats,
		log:       log,
		pageLimit: pageLimit,
		now:       time.Now,
		newID:     func() string { return uuid.New().String() },
		locks:     make(map[string]*sessionLock),
	}
}

func (g *GameUseCase) lock(id string) func() {
	g.locksMu.Lock()
	l, ok := g.locks[id]
	if !ok {
		l = &sessionLock{}
		g.locks[id] = l
	}
	l.refs++
	g.locksMu.Unlock()

	l.mu.Lock()
	return func() {
		l.mu.Unlock()
		g.locksMu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(g.locks, id)
		}
		g.locksMu.Unlock()
	}
}

func (g *GameUseCase) NewGame(ctx context.Context) (game.SessionView, error) {
	now := g.now()
	session := game.Session{
		ID:        g.newID(),
		State:     game.NewInitialState(),
		Turns:     []game.Turn{},
		Status:    game.StatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := g.sessions.SaveSession(ctx, session); err != nil {
		return game.SessionView{}, fmt.Errorf("create game: %w", err)
	}
	if _, err := g.stats.Record(ctx, stats.ActionNewGame); err != nil {
		g.log.Warnf("record new game: %v", err)
	}
	g.log.Infof("new game created with id: %s", session.ID)
	return game.NewSessionView(session, nil), nil
}

func (g *GameUseCase) GetGame(ctx context.Context, id string) (game.SessionView, error) {
	session, err := g.sessions.LoadSession(ctx, id)
	if err != nil {
		return game.SessionView{}, err
	}
	return game.NewSessionView(session, nil), nil
}

// PlayMove places a black stone for the human and then lets the AI reply.
func (g *GameUseCase) PlayMove(ctx context.Context, id string, pos game.Position) (game.SessionView, error) {
	return g.humanTurn(ctx, id, func(session *game.Session) error {
		if !game.IsValidMove(session.State, pos) {
			return fmt.Errorf("%w: %s", errs.ErrIllegalMove, pos)
		}
		session.State = game.MakeMove(session.State, pos)
		session.Turns = append(session.Turns, game.Turn{Color: game.Black, Position: &pos})
		return nil
	})
}

// Pass hands the turn to the AI without placing a stone.
func (g *GameUseCase) Pass(ctx context.Context, id string) (game.SessionView, error) {
	return g.humanTurn(ctx, id, func(session *game.Session) error {
		session.State = game.PassMove(session.State)
		session.Turns = append(session.Turns, game.Turn{Color: game.Black})
		return nil
	})
}

func (g *GameUseCase) humanTurn(ctx context.Context, id string, apply func(*game.Session) error) (game.SessionView, error) {
	unlock := g.lock(id)
	defer unlock()

	session, err := g.sessions.LoadSession(ctx, id)
	if err != nil {
		return game.SessionView{}, err
	}
	if session.Status == game.StatusFinished || session.State.IsGameOver() {
		return game.SessionView{}, errs.ErrGameOver
	}
	if session.State.CurrentPlayer != game.Black {
		return game.SessionView{}, errs.ErrNotYourTurn
	}

	if err := apply(&session); err != nil {
		return game.SessionView{}, err
	}

	aiMove := g.aiTurn(ctx, &session)
	session.UpdatedAt = g.now()
	g.finishIfOver(ctx, &session)

	if err := g.sessions.SaveSession(ctx, session); err != nil {
		return game.SessionView{}, fmt.Errorf("save game %s: %w", id, err)
	}
	return game.NewSessionView(session, aiMove), nil
}

func (g *GameUseCase) aiTurn(ctx context.Context, session *game.Session) *game.AiMove {
	if session.State.IsGameOver() || session.State.CurrentPlayer != game.White {
		return nil
	}

	move := g.ai.ChooseMove(ctx, session.State, session.Turns)
	if move.Pass || move.Position == nil {
		session.State = game.PassMove(session.State)
		session.Turns = append(session.Turns, game.Turn{Color: game.White})
		g.log.Infof("game %s: AI passed", session.ID)
		return &move
	}

	pos := *move.Position
	session.State = game.MakeMove(session.State, pos)
	session.Turns = append(session.Turns, game.Turn{Color: game.White, Position: &pos})
	g.log.Infow("AI played", "game", session.ID, "move", pos.String(), "fallback", move.Fallback)
	return &move
}

func (g *GameUseCase) finishIfOver(ctx context.Context, session *game.Session) {
	if !session.State.IsGameOver() || session.Status == game.StatusFinished {
		return
	}
	finished := g.now()
	session.Status = game.StatusFinished
	session.FinishedAt = &finished
	session.Result = game.NewResult(session.State)
	g.log.Infof("game %s finished: %s (%.1f - %.1f)", session.ID, session.Result.Winner,
		session.Result.Score.Black, session.Result.Score.White)

	if err := g.archive.ArchiveGame(ctx, *session); err != nil {
		g.log.Errorf("archive game %s: %v", session.ID, err)
	}
}

func (g *GameUseCase) ListArchive(ctx context.Context, pageNum int) (*game.ArchiveResponse, error) {
	if pageNum < 1 {
		pageNum = 1
	}
	if pageNum > math.MaxInt/g.pageLimit {
		return nil, fmt.Errorf("%w: %d", errs.ErrInvalidPage, pageNum)
	}
	return g.archive.ListArchivedGames(ctx, pageNum, g.pageLimit)
}

func (g *GameUseCase) ExportSGF(ctx context.Context, id string) (string, error) {
	session, err := g.sessions.LoadSession(ctx, id)
	if err != nil {
		return "", err
	}
	record := PrepareSgfFile(session)
	return SerializeSGF(&record), nil
}

func (g *GameUseCase) ExportPDF(ctx context.Context, id string, w io.Writer) error {
	session, err := g.sessions.LoadSession(ctx, id)
	if err != nil {
		return err
	}
	return RenderPDF(w, session)
}
