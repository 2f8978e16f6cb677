// internal/cache/redis.go
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/orps-game/orps-server/internal/models"
)

// DefaultQueueName is the Redis list (queue) name for processed-action logs.
var DefaultQueueName = "orps_actions"

// ActionRecord holds the minimal info out-of-band history consumers need.
type ActionRecord struct {
	ActionID   string            `json:"action_id"`
	Category   string            `json:"category"`
	AuthorUUID string            `json:"author_uuid"`
	Data       map[string]string `json:"data"`
	Timestamp  int64             `json:"timestamp"`
}

// Recorder pushes every processed action onto a Redis list. History is best
// effort: a push failure is logged and the action proceeds normally.
type Recorder struct {
	rdb   *redis.Client
	queue string
	log   *logrus.Logger
}

// Connect initializes the Redis client with environment variables:
//   - REDIS_ADDR (default "localhost:6379")
//   - REDIS_DB (optional, default 0)
//   - HISTORY_QUEUE_NAME (optional, default "orps_actions")
func Connect(log *logrus.Logger) (*Recorder, error) {
	addr := getEnv("REDIS_ADDR", "localhost:6379")
	dbIdx := getEnvInt("REDIS_DB", 0)

	rdb := redis.NewClient(&redis.Options{
		Addr: addr,
		DB:   dbIdx,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis at %s: %w", addr, err)
	}

	return &Recorder{
		rdb:   rdb,
		queue: getEnv("HISTORY_QUEUE_NAME", DefaultQueueName),
		log:   log,
	}, nil
}

// Record serializes the action and pushes it onto the history queue.
func (r *Recorder) Record(action models.Action) {
	record := ActionRecord{
		ActionID:   action.ID,
		Category:   string(action.Category),
		AuthorUUID: action.Author.UUID,
		Data:       action.Data,
		Timestamp:  time.Now().UnixMilli(),
	}

	data, err := json.Marshal(record)
	if err != nil {
		r.log.Warnf("failed to marshal action record: %v", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := r.rdb.RPush(ctx, r.queue, data).Err(); err != nil {
		r.log.Warnf("failed to RPush to Redis list '%s': %v", r.queue, err)
	}
}

// getEnv is a helper to read an environment variable or return a default value.
func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

// getEnvInt is a helper to parse an environment variable as integer, else a default value.
func getEnvInt(key string, def int) int {
	s := os.Getenv(key)
	if s == "" {
		return def
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return v
}
