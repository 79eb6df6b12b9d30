package stats

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/mitre88/go-on-line/internal/domain/stats"
	errs "github.com/mitre88/go-on-line/internal/errors"
)

type StatsStore interface {
	GetStats(ctx context.Context) (stats.Stats, error)
	IncrementStats(ctx context.Context, action string, now time.Time) (stats.Stats, error)
}

type StatsUseCase struct {
	store StatsStore
	log   *zap.SugaredLogger
	now   func() time.Time
}

func NewStatsUseCase(store StatsStore, log *zap.SugaredLogger) *StatsUseCase {
	return &StatsUseCase{store: store, log: log, now: time.Now}
}

// GetStats never fails: a broken store yields zeroed counters.
func (s *StatsUseCase) GetStats(ctx context.Context) stats.Stats {
	current, err := s.store.GetStats(ctx)
	if err != nil {
		s.log.Errorf("read stats: %v", err)
		return stats.Stats{LastUpdated: s.now()}
	}
	return current
}

// Record bumps the counter for action. Only an unknown action is reported
// to the caller; store failures degrade to the current (or zeroed) stats.
func (s *StatsUseCase) Record(ctx context.Context, action string) (stats.Stats, error) {
	if action != stats.ActionNewGame && action != stats.ActionNewPlayer {
		return stats.Stats{}, errs.ErrUnknownAction
	}
	updated, err := s.store.IncrementStats(ctx, action, s.now())
	if err != nil {
		s.log.Errorf("update stats for %s: %v", action, err)
		return s.GetStats(ctx), nil
	}
	return updated, nil
}
