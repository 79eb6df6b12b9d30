package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/mitre88/go-on-line/internal/domain/game"
)

type MemoryArchiveStorage struct {
	mu    sync.RWMutex
	games map[string]game.Session
}

func NewMemoryArchiveStorage() *MemoryArchiveStorage {
	return &MemoryArchiveStorage{games: make(map[string]game.Session)}
}

func (m *MemoryArchiveStorage) ArchiveGame(_ context.Context, session game.Session) error {
	m.mu.Lock()
	m.games[session.ID] = session
	m.mu.Unlock()
	return nil
}

func (m *MemoryArchiveStorage) ListArchivedGames(_ context.Context, pageNum, pageLimit int) (*game.ArchiveResponse, error) {
	m.mu.RLock()
	all := make([]game.Session, 0, len(m.games))
	for _, s := range m.games {
		all = append(all, s)
	}
	m.mu.RUnlock()

	sort.SliceStable(all, func(i, j int) bool {
		return finishedAt(all[i]) > finishedAt(all[j])
	})

	start, end := pageBounds(pageNum, pageLimit, len(all))
	return &game.ArchiveResponse{
		PageNum:    pageNum,
		TotalPages: (len(all) + pageLimit - 1) / pageLimit,
		Games:      all[start:end],
	}, nil
}

func finishedAt(s game.Session) int64 {
	if s.FinishedAt == nil {
		return 0
	}
	return s.FinishedAt.UnixNano()
}

// pageBounds returns the slice bounds of page pageNum (1-based) over total
// items. Pages outside the range are empty; the arithmetic never overflows.
func pageBounds(pageNum, pageLimit, total int) (int, int) {
	if pageNum < 1 || pageLimit < 1 || pageNum-1 > total/pageLimit {
		return total, total
	}
	start := min((pageNum-1)*pageLimit, total)
	end := min(start+pageLimit, total)
	return start, end
}
