package config

import (
	"context"
	"errors"
	"slices"

	goredis "github.com/redis/go-redis/v9"

	apperrors "github.com/FunnySam/runelite/pkg/errors"
)

// RedisOptions configures a RedisBackend.
type RedisOptions struct {
	Addr     string
	Password string
	DB       int

	// Prefix is prepended to every hash name, e.g. "overlayctl:".
	Prefix string
}

// RedisBackend stores each group as one Redis hash named Prefix+group, with
// keys as hash fields. Several clients can share placement this way.
type RedisBackend struct {
	rdb    goredis.Cmdable
	closer func() error
	prefix string
}

// NewRedisBackend connects to Redis and verifies the connection with PING,
// retrying a few times while the server comes up.
func NewRedisBackend(ctx context.Context, opts RedisOptions) (*RedisBackend, error) {
	if err := apperrors.ValidateAddr(opts.Addr); err != nil {
		return nil, err
	}
	client := goredis.NewClient(&goredis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})
	ping := func() error { return transient(client.Ping(ctx).Err()) }
	if err := retry(ctx, connectAttempts, connectDelay, ping); err != nil {
		client.Close()
		return nil, wrapBackendErr(err, "connect redis %s", opts.Addr)
	}
	return &RedisBackend{rdb: client, closer: client.Close, prefix: opts.Prefix}, nil
}

// NewRedisBackendWithClient wraps an existing client. Close does not close it.
func NewRedisBackendWithClient(rdb goredis.Cmdable, prefix string) *RedisBackend {
	return &RedisBackend{rdb: rdb, prefix: prefix}
}

func (b *RedisBackend) hash(group string) string {
	return b.prefix + group
}

func (b *RedisBackend) Get(ctx context.Context, group, key string) (string, bool, error) {
	v, err := b.rdb.HGet(ctx, b.hash(group), key).Result()
	if errors.Is(err, goredis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, wrapBackendErr(err, "redis HGET %s %s", b.hash(group), key)
	}
	return v, true, nil
}

func (b *RedisBackend) Set(ctx context.Context, group, key, value string) error {
	if err := b.rdb.HSet(ctx, b.hash(group), key, value).Err(); err != nil {
		return wrapBackendErr(err, "redis HSET %s %s", b.hash(group), key)
	}
	return nil
}

func (b *RedisBackend) Delete(ctx context.Context, group, key string) error {
	if err := b.rdb.HDel(ctx, b.hash(group), key).Err(); err != nil {
		return wrapBackendErr(err, "redis HDEL %s %s", b.hash(group), key)
	}
	return nil
}

func (b *RedisBackend) Keys(ctx context.Context, group string) ([]string, error) {
	keys, err := b.rdb.HKeys(ctx, b.hash(group)).Result()
	if err != nil {
		return nil, wrapBackendErr(err, "redis HKEYS %s", b.hash(group))
	}
	slices.Sort(keys)
	return keys, nil
}

func (b *RedisBackend) Close() error {
	if b.closer == nil {
		return nil
	}
	return b.closer()
}

var _ Backend = (*RedisBackend)(nil)
