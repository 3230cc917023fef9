package lookup

import (
	"context"
	"errors"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// Cache は外部辞書の結果を保存します。ミスは ("", false, nil) です
type Cache interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
}

type noopCache struct{}

// NewNoopCache は何も保存しないキャッシュを返します (Redis未設定時)
func NewNoopCache() Cache {
	return noopCache{}
}

func (noopCache) Get(context.Context, string) (string, bool, error) { return "", false, nil }

func (noopCache) Set(context.Context, string, string, time.Duration) error { return nil }

type redisCache struct {
	rdb    *goredis.Client
	prefix string
}

// NewRedisCache は Redis に接続し、Ping に成功したらキャッシュを返します
func NewRedisCache(ctx context.Context, addr, password string, db int) (Cache, func() error, error) {
	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		Password:    password,
		DB:          db,
		DialTimeout: 5 * time.Second,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, nil, err
	}
	return &redisCache{rdb: rdb, prefix: "vocab:lookup:"}, rdb.Close, nil
}

func (c *redisCache) Get(ctx context.Context, key string) (string, bool, error) {
	val, err := c.rdb.Get(ctx, c.prefix+key).Result()
	if errors.Is(err, goredis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return val, true, nil
}

func (c *redisCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return c.rdb.Set(ctx, c.prefix+key, value, ttl).Err()
}
