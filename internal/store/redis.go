package store

import (
	"context"

	"github.com/redis/go-redis/v9"
)

type redisKV struct {
	client *redis.Client
}

// NewRedisKV creates a KV backed by Redis. Values are stored without TTL;
// the portal never expires records.
func NewRedisKV(client *redis.Client) KV {
	return &redisKV{client: client}
}

func (s *redisKV) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := s.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return data, nil
}

func (s *redisKV) Put(ctx context.Context, key string, value []byte) error {
	return s.client.Set(ctx, key, value, 0).Err()
}

func (s *redisKV) List(ctx context.Context, prefix string) ([][]byte, error) {
	var values [][]byte
	iter := s.client.Scan(ctx, 0, prefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		data, err := s.client.Get(ctx, iter.Val()).Bytes()
		if err == redis.Nil {
			continue // Deleted between scan and read
		}
		if err != nil {
			return nil, err
		}
		values = append(values, data)
	}
	if err := iter.Err(); err != nil {
		return nil, err
	}
	return values, nil
}
