// Package cache holds the redis-backed leaderboard cache. The community
// endpoint reads through it so the partner table is not re-sorted on every
// request; a scheduled job rebuilds it in the background.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrMiss is returned when the leaderboard is not cached.
var ErrMiss = errors.New("cache: leaderboard not cached")

const leaderboardKey = "community:leaderboard"

// Entry is one cached leaderboard row, already ranked.
type Entry struct {
	PartnerID       uint   `json:"partner_id"`
	Name            string `json:"name"`
	SalesAmount     int64  `json:"sales_amount"`
	ProfileImageURL string `json:"profile_image_url"`
	Rank            int    `json:"rank"`
}

// LeaderboardCache stores the ranked list as one JSON value with a TTL, so
// a stale cache ages out even if the rebuild job stops.
type LeaderboardCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewLeaderboardCache(rdb *redis.Client, ttl time.Duration) *LeaderboardCache {
	return &LeaderboardCache{rdb: rdb, ttl: ttl}
}

// Get returns at most limit cached entries, ErrMiss when nothing is cached.
func (c *LeaderboardCache) Get(ctx context.Context, limit int) ([]Entry, error) {
	raw, err := c.rdb.Get(ctx, leaderboardKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrMiss
	}
	if err != nil {
		return nil, fmt.Errorf("cache: get leaderboard: %w", err)
	}

	var entries []Entry
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("cache: decode leaderboard: %w", err)
	}
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}

// Set replaces the cached leaderboard.
func (c *LeaderboardCache) Set(ctx context.Context, entries []Entry) error {
	raw, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("cache: encode leaderboard: %w", err)
	}
	if err := c.rdb.Set(ctx, leaderboardKey, raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache: set leaderboard: %w", err)
	}
	return nil
}
