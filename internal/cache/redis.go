package cache

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

type RedisClient struct {
	client *redis.Client
	prefix string
}

func NewRedisClient(redisURL, prefix string) (*RedisClient, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	client := redis.NewClient(opt)

	// Test the connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisClient{
		client: client,
		prefix: prefix,
	}, nil
}

func (r *RedisClient) Close() error {
	return r.client.Close()
}

func (r *RedisClient) GetWidth(ctx context.Context, imageURL string) (int, bool, error) {
	val, err := r.client.Get(ctx, widthKey(r.prefix, imageURL)).Result()
	if errors.Is(err, redis.Nil) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("redis get error: %w", err)
	}
	width, err := strconv.Atoi(val)
	if err != nil {
		return 0, false, fmt.Errorf("corrupt cached width %q: %w", val, err)
	}
	return width, true, nil
}

func (r *RedisClient) SetWidth(ctx context.Context, imageURL string, width int, ttl time.Duration) error {
	return r.client.Set(ctx, widthKey(r.prefix, imageURL), width, ttl).Err()
}

// Clear removes every key under the client's prefix.
func (r *RedisClient) Clear(ctx context.Context) error {
	iter := r.client.Scan(ctx, 0, r.prefix+"*", 0).Iterator()
	var keys []string

	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}

	if err := iter.Err(); err != nil {
		return fmt.Errorf("error scanning keys: %w", err)
	}

	if len(keys) > 0 {
		if err := r.client.Del(ctx, keys...).Err(); err != nil {
			return fmt.Errorf("error deleting keys: %w", err)
		}
	}

	return nil
}
