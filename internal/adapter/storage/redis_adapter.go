package storage

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/rl1809/shoe-inventory/internal/core/domain"
)

const DefaultShoesKey = "inventory:shoes"

// RedisAdapter stores the inventory as a Redis list, one CSV-encoded record
// per element, in inventory order.
type RedisAdapter struct {
	client *redis.Client
	key    string
}

func NewRedisAdapter(client *redis.Client, key string) *RedisAdapter {
	if key == "" {
		key = DefaultShoesKey
	}
	return &RedisAdapter{client: client, key: key}
}

func (r *RedisAdapter) Load(ctx context.Context) ([]domain.Shoe, error) {
	rows, err := r.client.LRange(ctx, r.key, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("%w: lrange %s: %w", domain.ErrFileIO, r.key, err)
	}

	shoes := make([]domain.Shoe, 0, len(rows))
	for i, row := range rows {
		shoe, err := decodeRow(row)
		if err != nil {
			return shoes, &domain.LineError{Line: i + 1, Err: err}
		}
		shoes = append(shoes, shoe)
	}
	return shoes, nil
}

func (r *RedisAdapter) Append(ctx context.Context, shoe domain.Shoe) error {
	row, err := encodeRow(shoe)
	if err != nil {
		return fmt.Errorf("%w: encode shoe: %w", domain.ErrFileIO, err)
	}
	if err := r.client.RPush(ctx, r.key, row).Err(); err != nil {
		return fmt.Errorf("%w: rpush %s: %w", domain.ErrFileIO, r.key, err)
	}
	return nil
}

// Save swaps the list contents inside MULTI/EXEC so readers never see a
// half-written inventory.
func (r *RedisAdapter) Save(ctx context.Context, shoes []domain.Shoe) error {
	rows := make([]interface{}, 0, len(shoes))
	for _, shoe := range shoes {
		row, err := encodeRow(shoe)
		if err != nil {
			return fmt.Errorf("%w: encode shoe %s: %w", domain.ErrFileIO, shoe.Code, err)
		}
		rows = append(rows, row)
	}

	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, r.key)
		if len(rows) > 0 {
			pipe.RPush(ctx, r.key, rows...)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("%w: replace %s: %w", domain.ErrFileIO, r.key, err)
	}
	return nil
}
