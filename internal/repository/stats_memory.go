package repository

import (
	"context"
	"sync"
	"time"

	"github.com/mitre88/go-on-line/internal/domain/stats"
)

type MemoryStatsStorage struct {
	mu    sync.Mutex
	stats stats.Stats
}

func NewMemoryStatsStorage(now time.Time) *MemoryStatsStorage {
	return &MemoryStatsStorage{stats: stats.Stats{LastUpdated: now}}
}

func (m *MemoryStatsStorage) GetStats(_ context.Context) (stats.Stats, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stats, nil
}

func (m *MemoryStatsStorage) IncrementStats(_ context.Context, action string, now time.Time) (stats.Stats, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	switch action {
	case stats.ActionNewGame:
		m.stats.TotalGames++
	case stats.ActionNewPlayer:
		m.stats.TotalPlayers++
	}
	m.stats.LastUpdated = now
	return m.stats, nil
}
