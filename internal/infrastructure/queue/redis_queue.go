package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"studio-ops.backend/internal/domain/entities"
	"studio-ops.backend/pkg/logger"
)

const defaultKeyPrefix = "reminders"

// RedisReminderQueue is a delayed job queue on a sorted set scored by run-at
// unix milliseconds, with payloads kept in a hash under the same job id.
type RedisReminderQueue struct {
	client      redis.Cmdable
	scheduleKey string
	payloadKey  string
}

func NewRedisReminderQueue(client redis.Cmdable, keyPrefix string) *RedisReminderQueue {
	if keyPrefix == "" {
		keyPrefix = defaultKeyPrefix
	}
	return &RedisReminderQueue{
		client:      client,
		scheduleKey: keyPrefix + ":schedule",
		payloadKey:  keyPrefix + ":jobs",
	}
}

// Enqueue stores jobs by id; re-enqueueing an id replaces its payload and run time.
func (q *RedisReminderQueue) Enqueue(ctx context.Context, jobs ...entities.ReminderJob) error {
	if len(jobs) == 0 {
		return nil
	}
	_, err := q.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, job := range jobs {
			payload, err := json.Marshal(job)
			if err != nil {
				return fmt.Errorf("encode reminder %s: %w", job.ID(), err)
			}
			pipe.HSet(ctx, q.payloadKey, job.ID(), payload)
			pipe.ZAdd(ctx, q.scheduleKey, redis.Z{
				Score:  float64(job.RunAt.UnixMilli()),
				Member: job.ID(),
			})
		}
		return nil
	})
	return err
}

func (q *RedisReminderQueue) RemoveByPrefix(ctx context.Context, prefix string) (int, error) {
	ids, err := q.client.ZRange(ctx, q.scheduleKey, 0, -1).Result()
	if err != nil {
		return 0, err
	}

	matched := make([]string, 0)
	for _, id := range ids {
		if strings.HasPrefix(id, prefix) {
			matched = append(matched, id)
		}
	}
	if len(matched) == 0 {
		return 0, nil
	}

	members := make([]interface{}, len(matched))
	for i, id := range matched {
		members[i] = id
	}
	var removed *redis.IntCmd
	_, err = q.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		removed = pipe.ZRem(ctx, q.scheduleKey, members...)
		pipe.HDel(ctx, q.payloadKey, matched...)
		return nil
	})
	if err != nil {
		return 0, err
	}
	return int(removed.Val()), nil
}

// claimScript removes a job from the schedule and takes its payload in one step.
// It returns nil when another worker claimed the job first and "" when the payload is gone.
var claimScript = redis.NewScript(`
if redis.call("ZREM", KEYS[1], ARGV[1]) == 0 then
	return false
end
local payload = redis.call("HGET", KEYS[2], ARGV[1])
redis.call("HDEL", KEYS[2], ARGV[1])
if not payload then
	return ""
end
return payload
`)

// ClaimDue pops due jobs. Each job is claimed by exactly one caller.
func (q *RedisReminderQueue) ClaimDue(ctx context.Context, now time.Time, limit int) ([]entities.ReminderJob, error) {
	if limit <= 0 {
		limit = 50
	}
	ids, err := q.client.ZRangeByScore(ctx, q.scheduleKey, &redis.ZRangeBy{
		Min:   "-inf",
		Max:   strconv.FormatInt(now.UnixMilli(), 10),
		Count: int64(limit),
	}).Result()
	if err != nil {
		return nil, err
	}

	jobs := make([]entities.ReminderJob, 0, len(ids))
	for _, id := range ids {
		raw, err := claimScript.Run(ctx, q.client, []string{q.scheduleKey, q.payloadKey}, id).Text()
		if errors.Is(err, redis.Nil) {
			continue
		}
		if err != nil {
			return jobs, fmt.Errorf("claim reminder %s: %w", id, err)
		}
		if raw == "" {
			logger.Warn(ctx, "Reminder without payload dropped", zap.String("job", id))
			continue
		}

		var job entities.ReminderJob
		if err := json.Unmarshal([]byte(raw), &job); err != nil {
			logger.Warn(ctx, "Malformed reminder payload dropped", zap.String("job", id), zap.Error(err))
			continue
		}
		jobs = append(jobs, job)
	}
	return jobs, nil
}

// Pending counts scheduled jobs.
func (q *RedisReminderQueue) Pending(ctx context.Context) (int64, error) {
	return q.client.ZCard(ctx, q.scheduleKey).Result()
}
