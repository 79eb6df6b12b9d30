package repository

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mitre88/go-on-line/internal/domain/stats"
)

const (
	statsKey          = "go_online:stats"
	fieldTotalGames   = "total_games"
	fieldTotalPlayers = "total_players"
	fieldLastUpdated  = "last_updated"
)

type RedisStatsStorage struct {
	client *redis.Client
	now    func() time.Time
}

func NewRedisStatsStorage(client *redis.Client) *RedisStatsStorage {
	return &RedisStatsStorage{client: client, now: time.Now}
}

func (r *RedisStatsStorage) GetStats(ctx context.Context) (stats.Stats, error) {
	values, err := r.client.HGetAll(ctx, statsKey).Result()
	if err != nil {
		return stats.Stats{}, fmt.Errorf("read stats: %w", err)
	}
	return parseStats(values, r.now())
}

func (r *RedisStatsStorage) IncrementStats(ctx context.Context, action string, now time.Time) (stats.Stats, error) {
	pipe := r.client.TxPipeline()
	switch action {
	case stats.ActionNewGame:
		pipe.HIncrBy(ctx, statsKey, fieldTotalGames, 1)
	case stats.ActionNewPlayer:
		pipe.HIncrBy(ctx, statsKey, fieldTotalPlayers, 1)
	}
	pipe.HSet(ctx, statsKey, fieldLastUpdated, now.UTC().Format(time.RFC3339))
	all := pipe.HGetAll(ctx, statsKey)
	if _, err := pipe.Exec(ctx); err != nil {
		return stats.Stats{}, fmt.Errorf("increment stats: %w", err)
	}
	return parseStats(all.Val(), now)
}

// parseStats reads the stats hash. A hash that was never written reports
// now as its last update.
func parseStats(values map[string]string, now time.Time) (stats.Stats, error) {
	out := stats.Stats{LastUpdated: now}
	var err error
	if v, ok := values[fieldTotalGames]; ok {
		if out.TotalGames, err = strconv.ParseInt(v, 10, 64); err != nil {
			return stats.Stats{}, fmt.Errorf("parse %s: %w", fieldTotalGames, err)
		}
	}
	if v, ok := values[fieldTotalPlayers]; ok {
		if out.TotalPlayers, err = strconv.ParseInt(v, 10, 64); err != nil {
			return stats.Stats{}, fmt.Errorf("parse %s: %w", fieldTotalPlayers, err)
		}
	}
	if v, ok := values[fieldLastUpdated]; ok {
		if out.LastUpdated, err = time.Parse(time.RFC3339, v); err != nil {
			return stats.Stats{}, fmt.Errorf("parse %s: %w", fieldLastUpdated, err)
		}
	}
	return out, nil
}
