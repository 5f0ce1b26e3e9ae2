package review

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "finko:review:"

// enqueueScript appends ARGV[1] to the list unless it is already there.
var enqueueScript = goredis.NewScript(`
if redis.call('LPOS', KEYS[1], ARGV[1]) == false then
	return redis.call('RPUSH', KEYS[1], ARGV[1])
end
return 0
`)

// RedisBacklog keeps one Redis list per lesson.
type RedisBacklog struct {
	rdb goredis.UniversalClient
}

// NewRedisBacklog wraps an existing client.
func NewRedisBacklog(rdb goredis.UniversalClient) *RedisBacklog {
	return &RedisBacklog{rdb: rdb}
}

// DialRedis connects to addr and verifies the server answers.
func DialRedis(ctx context.Context, addr string) (*goredis.Client, error) {
	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return rdb, nil
}

// NewRedisQueue returns a queue backed by Redis lists.
func NewRedisQueue(rdb goredis.UniversalClient, steps StepSource) *BacklogQueue {
	return New(NewRedisBacklog(rdb), steps)
}

func redisKey(lessonID string) string {
	return redisKeyPrefix + lessonID
}

func (r *RedisBacklog) Enqueue(ctx context.Context, lessonID, stepID string) error {
	return enqueueScript.Run(ctx, r.rdb, []string{redisKey(lessonID)}, stepID).Err()
}

func (r *RedisBacklog) Remove(ctx context.Context, lessonID, stepID string) error {
	return r.rdb.LRem(ctx, redisKey(lessonID), 0, stepID).Err()
}

func (r *RedisBacklog) Pending(ctx context.Context, lessonID string) ([]string, error) {
	return r.rdb.LRange(ctx, redisKey(lessonID), 0, -1).Result()
}

func (r *RedisBacklog) Clear(ctx context.Context, lessonID string) error {
	return r.rdb.Del(ctx, redisKey(lessonID)).Err()
}
