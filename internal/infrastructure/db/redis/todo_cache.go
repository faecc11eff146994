package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/todoapp/todo-service/internal/core/domain"
)

const (
	defaultTodoCacheTTL = time.Minute
	keyTodoList         = "todo:list:"
	keyTodoVersion      = "todo:version:"
)

// TodoCache caches each owner's todo list in Redis.
// Key format: todo:list:<owner_id>, guarded by todo:version:<owner_id>.
type TodoCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewTodoCache creates a TodoCache wrapping the given Redis client.
func NewTodoCache(client *redis.Client, ttl time.Duration) *TodoCache {
	if ttl <= 0 {
		ttl = defaultTodoCacheTTL
	}
	return &TodoCache{client: client, ttl: ttl}
}

// GetList returns the cached list for ownerID. A miss is not an error.
func (c *TodoCache) GetList(ctx context.Context, ownerID int64) ([]domain.Todo, bool, error) {
	b, err := c.client.Get(ctx, listKey(ownerID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("todo cache get: %w", err)
	}

	var todos []domain.Todo
	if err := json.Unmarshal(b, &todos); err != nil {
		return nil, false, fmt.Errorf("todo cache decode: %w", err)
	}
	return todos, true, nil
}

// Version returns the owner's invalidation counter. A missing key is 0.
func (c *TodoCache) Version(ctx context.Context, ownerID int64) (int64, error) {
	v, err := getVersion(ctx, c.client, ownerID)
	if err != nil {
		return 0, fmt.Errorf("todo cache version: %w", err)
	}
	return v, nil
}

// SetList stores the list for ownerID until the TTL elapses, unless the
// owner was invalidated after version was read. The version key is WATCHed
// so an Invalidate racing with the write aborts the transaction.
func (c *TodoCache) SetList(ctx context.Context, ownerID, version int64, todos []domain.Todo) error {
	if todos == nil {
		todos = []domain.Todo{}
	}
	b, err := json.Marshal(todos)
	if err != nil {
		return fmt.Errorf("todo cache encode: %w", err)
	}

	err = c.client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := getVersion(ctx, tx, ownerID)
		if err != nil {
			return err
		}
		if current != version {
			return nil
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, listKey(ownerID), b, c.ttl)
			return nil
		})
		return err
	}, versionKey(ownerID))

	// A concurrent Invalidate touched the version key: the list is stale.
	if errors.Is(err, redis.TxFailedErr) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("todo cache set: %w", err)
	}
	return nil
}

// Invalidate bumps the owner's version and drops the cached list.
func (c *TodoCache) Invalidate(ctx context.Context, ownerID int64) error {
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, versionKey(ownerID))
		pipe.Del(ctx, listKey(ownerID))
		return nil
	})
	if err != nil {
		return fmt.Errorf("todo cache invalidate: %w", err)
	}
	return nil
}

// getter is satisfied by both *redis.Client and *redis.Tx.
type getter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

func getVersion(ctx context.Context, cmd getter, ownerID int64) (int64, error) {
	v, err := cmd.Get(ctx, versionKey(ownerID)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return v, err
}

func listKey(ownerID int64) string {
	return fmt.Sprintf("%s%d", keyTodoList, ownerID)
}

func versionKey(ownerID int64) string {
	return fmt.Sprintf("%s%d", keyTodoVersion, ownerID)
}
