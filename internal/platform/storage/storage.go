// Package storage opens the key-value store and execution queue for the
// configured driver.
package storage

import (
	"context"
	"fmt"

	"codejarvis/internal/platform/config"
	"codejarvis/internal/platform/kv"
	"codejarvis/internal/platform/queue"
)

const (
	redisKeyPrefix  = "codejarvis:"
	memoryQueueSize = 256
)

// Open returns the store and queue for config.AppConfig.StorageDriver.
// Redis backs both and can be shared with a separate worker process;
// SQLite runs single-process with an in-memory queue.
func Open(ctx context.Context) (kv.Store, queue.Queue, error) {
	switch config.AppConfig.StorageDriver {
	case config.StorageRedis:
		rdb, err := kv.ConnectRedis(ctx)
		if err != nil {
			return nil, nil, err
		}
		store := kv.NewRedisStore(rdb, redisKeyPrefix)
		return store, queue.NewRedisQueue(rdb, config.AppConfig.ExecutionQueueName), nil
	case config.StorageSQLite:
		store, err := kv.OpenSQLite(ctx, config.AppConfig.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		return store, queue.NewMemoryQueue(memoryQueueSize), nil
	default:
		return nil, nil, fmt.Errorf("unknown storage driver %q", config.AppConfig.StorageDriver)
	}
}

// SharedQueue reports whether another process can consume the queue.
func SharedQueue() bool {
	return config.AppConfig.StorageDriver == config.StorageRedis
}
