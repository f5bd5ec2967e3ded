package queue

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultPollTimeout = 2 * time.Second

// RedisQueue is a FIFO list: LPUSH on enqueue, BRPOP on dequeue.
type RedisQueue struct {
	rdb         *redis.Client
	name        string
	pollTimeout time.Duration
}

func NewRedisQueue(rdb *redis.Client, name string) *RedisQueue {
	return &RedisQueue{rdb: rdb, name: name, pollTimeout: defaultPollTimeout}
}

func (q *RedisQueue) Push(ctx context.Context, jobID string) error {
	return q.rdb.LPush(ctx, q.name, jobID).Err()
}

func (q *RedisQueue) Pop(ctx context.Context) (string, error) {
	res, err := q.rdb.BRPop(ctx, q.pollTimeout, q.name).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ErrEmpty
		}
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		return "", err
	}
	// res is [queueName, value]
	if len(res) < 2 || res[1] == "" {
		return "", ErrEmpty
	}
	return res[1], nil
}
