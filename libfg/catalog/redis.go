package catalog

import (
	"context"

	"github.com/fine-structures/freegroup/freegroup"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

// RedisSet is a SignatureSet kept in a Redis set, so that several processes exploring orbits can share one "seen" set.
type RedisSet struct {
	ctx    context.Context
	client *redis.Client
	key    string
	keyBuf []byte
}

// NewRedisSet connects to the Redis server named by cfg and checks that it answers.
func NewRedisSet(ctx context.Context, cfg freegroup.RedisConfig) (*RedisSet, error) {
	if cfg.Addr == "" || cfg.Key == "" {
		return nil, errors.Wrap(freegroup.ErrBadConfig, "redis addr and key are required")
	}

	client := redis.NewClient(&redis.Options{
		Addr: cfg.Addr,
		DB:   cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, errors.Wrapf(err, "redis %s", cfg.Addr)
	}

	return &RedisSet{
		ctx:    ctx,
		client: client,
		key:    cfg.Key,
	}, nil
}

func (set *RedisSet) TryAdd(sig freegroup.Signature) (bool, error) {
	set.keyBuf = sig.AppendKey(set.keyBuf[:0])
	n, err := set.client.SAdd(set.ctx, set.key, string(set.keyBuf)).Result()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

// Len returns the number of signatures in the set.
func (set *RedisSet) Len() (int64, error) {
	return set.client.SCard(set.ctx, set.key).Result()
}

// Clear removes all signatures but leaves the connection open.
// Other processes sharing the key see the set emptied.
func (set *RedisSet) Clear() error {
	return set.client.Del(set.ctx, set.key).Err()
}

// Disconnect closes the connection and leaves the shared set in place.
func (set *RedisSet) Disconnect() error {
	return set.client.Close()
}

// Close clears the set for every process sharing its key, then disconnects.
// A process leaving a set others still use calls Disconnect instead.
func (set *RedisSet) Close() error {
	err := set.Clear()
	if closeErr := set.Disconnect(); err == nil {
		err = closeErr
	}
	return err
}
