package inflight

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/profilesync/internal/common"
	"github.com/dmitrijs2005/profilesync/internal/logging"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// DefaultTTL bounds how long a crashed holder can block an owner.
const DefaultTTL = 10 * time.Minute

const keyPrefix = "profilesync:inflight:"

// releaseScript deletes the slot only if it still holds our token, so an
// expired holder cannot release a slot taken over by someone else.
const releaseScript = `
if redis.call("GET", KEYS[1]) == ARGV[1] then
    return redis.call("DEL", KEYS[1])
end
return 0`

type redisCmdable interface {
	SetNX(ctx context.Context, key string, value any, expiration time.Duration) *redis.BoolCmd
	Eval(ctx context.Context, script string, keys []string, args ...any) *redis.Cmd
}

// RedisGuard shares slots between server replicas through Redis.
type RedisGuard struct {
	client redisCmdable
	ttl    time.Duration
	logger logging.Logger
}

// NewRedisGuard connects to addr and checks the connection.
func NewRedisGuard(ctx context.Context, addr string, ttl time.Duration, logger logging.Logger) (*RedisGuard, *redis.Client, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	return newRedisGuard(client, ttl, logger), client, nil
}

func newRedisGuard(client redisCmdable, ttl time.Duration, logger logging.Logger) *RedisGuard {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &RedisGuard{client: client, ttl: ttl, logger: logger}
}

func (g *RedisGuard) Acquire(ctx context.Context, key string) (func(), error) {
	k := keyPrefix + key
	token := uuid.NewString()

	ok, err := g.client.SetNX(ctx, k, token, g.ttl).Result()
	if err != nil {
		return nil, fmt.Errorf("acquire %s: %w", key, err)
	}
	if !ok {
		return nil, common.ErrBusy
	}

	return func() {
		// the request context may already be done
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := g.client.Eval(ctx, releaseScript, []string{k}, token).Err(); err != nil {
			g.logger.Warn(ctx, "in-flight slot not released", "key", key, logging.Err(err))
		}
	}, nil
}
