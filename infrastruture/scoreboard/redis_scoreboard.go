// Package scoreboard keeps per-maze solve leaderboards in Redis sorted
// sets, scored by solve time so the fastest runs float to the top.
package scoreboard

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-redsync/redsync/v4"
	"github.com/go-redsync/redsync/v4/redis/goredis/v9"
	"github.com/google/uuid"
	"github.com/mazehub/mazehub-api/service/i"
	"github.com/redis/go-redis/v9"
)

// RedisScoreboard manages one sorted set per maze with optional TTL.
type RedisScoreboard struct {
	client *redis.Client
	locker *redsync.Redsync
	ttl    time.Duration
}

// NewRedisScoreboard initializes a RedisScoreboard with the provided
// Redis client. Boards expire ttlSeconds after their first entry; zero
// keeps them forever.
func NewRedisScoreboard(client *redis.Client, ttlSeconds int) (i.Scoreboard, error) {
	board := &RedisScoreboard{
		client: client,
		ttl:    time.Duration(ttlSeconds) * time.Second,
	}
	pool := goredis.NewPool(client)
	board.locker = redsync.New(pool)
	return board, nil
}

func boardKey(mazeID uuid.UUID) string {
	return "scoreboard:" + mazeID.String()
}

func memberOf(score i.Score) string {
	return score.PlayerID.String() + "|" + score.Username
}

func parseMember(member string, millis int64) (i.Score, error) {
	parts := strings.SplitN(member, "|", 2)
	if len(parts) != 2 {
		return i.Score{}, fmt.Errorf("malformed scoreboard member %q", member)
	}

	playerID, err := uuid.Parse(parts[0])
	if err != nil {
		return i.Score{}, err
	}
	return i.Score{PlayerID: playerID, Username: parts[1], Millis: millis}, nil
}

// Record stores the solve when it beats the player's previous best. The
// read-compare-write runs under a distributed lock so concurrent solves
// cannot clobber a faster run.
func (rs *RedisScoreboard) Record(ctx context.Context, mazeID uuid.UUID, score i.Score) error {
	key := boardKey(mazeID)
	mutex := rs.locker.NewMutex(key + ":record_lock")
	if err := mutex.Lock(); err != nil {
		return err
	}
	defer func() {
		_, _ = mutex.Unlock()
	}()

	member := memberOf(score)
	prev, err := rs.client.ZScore(ctx, key, member).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return err
	}
	if err == nil && prev <= float64(score.Millis) {
		return nil
	}

	if err := rs.client.ZAdd(ctx, key, redis.Z{Score: float64(score.Millis), Member: member}).Err(); err != nil {
		return err
	}

	// Set expiration only if it's not already set
	if rs.ttl > 0 {
		ttl, err := rs.client.TTL(ctx, key).Result()
		if err == nil && ttl == -1 {
			_ = rs.client.Expire(ctx, key, rs.ttl).Err()
		}
	}

	return nil
}

// Top returns the fastest n solves, best first.
func (rs *RedisScoreboard) Top(ctx context.Context, mazeID uuid.UUID, n int) ([]i.Score, error) {
	scores := make([]i.Score, 0, n)
	if n <= 0 {
		return scores, nil
	}

	rows, err := rs.client.ZRangeWithScores(ctx, boardKey(mazeID), 0, int64(n)-1).Result()
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		member, ok := row.Member.(string)
		if !ok {
			continue
		}
		score, err := parseMember(member, int64(row.Score))
		if err != nil {
			continue
		}
		scores = append(scores, score)
	}
	return scores, nil
}

// Clear drops the whole board for a maze.
func (rs *RedisScoreboard) Clear(ctx context.Context, mazeID uuid.UUID) error {
	return rs.client.Del(ctx, boardKey(mazeID)).Err()
}
