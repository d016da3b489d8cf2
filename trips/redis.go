package trips

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const (
	redisKeyPrefix = "trip:"
	redisIndexKey  = "trips:index"
)

// RedisStore keeps each seed as a JSON string and orders them in a sorted
// set scored by creation time.
type RedisStore struct {
	rdb *redis.Client
}

func NewRedisStore(rdb *redis.Client) *RedisStore {
	return &RedisStore{rdb: rdb}
}

func seedKey(id string) string {
	return redisKeyPrefix + id
}

func (r *RedisStore) Create(ctx context.Context, seed *Seed) error {
	data, err := json.Marshal(seed)
	if err != nil {
		return fmt.Errorf("encoding seed: %w", err)
	}

	_, err = r.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, seedKey(seed.ID), data, 0)
		pipe.ZAdd(ctx, redisIndexKey, redis.Z{
			Score:  float64(seed.CreatedAt.UnixNano()),
			Member: seed.ID,
		})
		return nil
	})
	if err != nil {
		return fmt.Errorf("storing seed %s: %w", seed.ID, err)
	}
	return nil
}

func (r *RedisStore) Get(ctx context.Context, id string) (*Seed, error) {
	data, err := r.rdb.Get(ctx, seedKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("loading seed %s: %w", id, err)
	}
	return decodeSeed(data)
}

func (r *RedisStore) List(ctx context.Context) ([]*Seed, error) {
	ids, err := r.rdb.ZRevRange(ctx, redisIndexKey, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("listing seeds: %w", err)
	}
	if len(ids) == 0 {
		return []*Seed{}, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = seedKey(id)
	}
	values, err := r.rdb.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("loading seeds: %w", err)
	}

	out := make([]*Seed, 0, len(values))
	for _, v := range values {
		s, ok := v.(string)
		if !ok {
			// index entry without a record
			continue
		}
		seed, err := decodeSeed([]byte(s))
		if err != nil {
			return nil, err
		}
		out = append(out, seed)
	}
	return out, nil
}

func (r *RedisStore) Update(ctx context.Context, seed *Seed) error {
	data, err := json.Marshal(seed)
	if err != nil {
		return fmt.Errorf("encoding seed: %w", err)
	}

	// XX only overwrites an existing key.
	ok, err := r.rdb.SetXX(ctx, seedKey(seed.ID), data, redis.KeepTTL).Result()
	if err != nil {
		return fmt.Errorf("updating seed %s: %w", seed.ID, err)
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}

func (r *RedisStore) Delete(ctx context.Context, id string) error {
	var del *redis.IntCmd
	_, err := r.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		del = pipe.Del(ctx, seedKey(id))
		pipe.ZRem(ctx, redisIndexKey, id)
		return nil
	})
	if err != nil {
		return fmt.Errorf("deleting seed %s: %w", id, err)
	}
	if del.Val() == 0 {
		return ErrNotFound
	}
	return nil
}

func decodeSeed(data []byte) (*Seed, error) {
	var seed Seed
	if err := json.Unmarshal(data, &seed); err != nil {
		return nil, fmt.Errorf("decoding seed: %w", err)
	}
	return &seed, nil
}
