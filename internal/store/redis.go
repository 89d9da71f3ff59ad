// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/MKhiriev/go-api-starter/internal/logger"
	"github.com/MKhiriev/go-api-starter/models"
	"github.com/go-redis/redis/v8"
)

// Redis key layout: one JSON value per item, a sorted set as the ordered
// index (score = numeric id, so iteration order equals insertion order) and
// a counter key for monotonic ID assignment.
const (
	redisSeqKey   = "items:seq"
	redisIndexKey = "items:index"
	redisItemKey  = "items:item:%s"
)

// redisRepository is the Redis-backed implementation of [ItemRepository].
// ID monotonicity is guaranteed by INCR on a counter key that survives
// deletions.
type redisRepository struct {
	logger *logger.Logger
	client *redis.Client
}

// NewRedisRepository constructs an [ItemRepository] backed by the Redis
// server at addr. The connection is verified with a ping before use.
func NewRedisRepository(ctx context.Context, addr string, log *logger.Logger) (ItemRepository, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})

	if err := client.Ping(ctx).Err(); err != nil {
		log.Err(err).Str("addr", addr).Msg("error connecting to redis")
		return nil, fmt.Errorf("error connecting to redis: %w", err)
	}
	log.Info().Str("addr", addr).Msg("connected to redis successfully")

	return &redisRepository{logger: log, client: client}, nil
}

func (r *redisRepository) List(ctx context.Context, offset, limit int) ([]models.Item, int64, error) {
	total, err := r.client.ZCard(ctx, redisIndexKey).Result()
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	if limit <= 0 || int64(offset) >= total {
		return []models.Item{}, total, nil
	}

	ids, err := r.client.ZRange(ctx, redisIndexKey, int64(offset), int64(offset+limit-1)).Result()
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	pipe := r.client.Pipeline()
	cmds := make([]*redis.StringCmd, len(ids))
	for i, id := range ids {
		cmds[i] = pipe.Get(ctx, fmt.Sprintf(redisItemKey, id))
	}
	if _, err := pipe.Exec(ctx); err != nil && !errors.Is(err, redis.Nil) {
		return nil, 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	items := make([]models.Item, 0, len(ids))
	for _, cmd := range cmds {
		data, err := cmd.Result()
		if errors.Is(err, redis.Nil) {
			// index entry without a value: item deleted mid-listing
			continue
		}
		if err != nil {
			return nil, 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
		}

		var item models.Item
		if err := json.Unmarshal([]byte(data), &item); err != nil {
			return nil, 0, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		items = append(items, item)
	}

	return items, total, nil
}

func (r *redisRepository) Get(ctx context.Context, id string) (models.Item, error) {
	data, err := r.client.Get(ctx, fmt.Sprintf(redisItemKey, id)).Result()
	if errors.Is(err, redis.Nil) {
		return models.Item{}, ErrItemNotFound
	}
	if err != nil {
		return models.Item{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	var item models.Item
	if err := json.Unmarshal([]byte(data), &item); err != nil {
		return models.Item{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return item, nil
}

func (r *redisRepository) Create(ctx context.Context, name, description string) (models.Item, error) {
	seq, err := r.client.Incr(ctx, redisSeqKey).Result()
	if err != nil {
		return models.Item{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	item := models.Item{
		ID:          strconv.FormatInt(seq, 10),
		Name:        strings.TrimSpace(name),
		Description: strings.TrimSpace(description),
		CreatedAt:   time.Now().UTC(),
	}

	if err := r.save(ctx, item, float64(seq)); err != nil {
		return models.Item{}, err
	}

	return item, nil
}

func (r *redisRepository) Update(ctx context.Context, id string, upd models.ItemUpdate) (models.Item, error) {
	item, err := r.Get(ctx, id)
	if err != nil {
		return models.Item{}, err
	}

	if upd.Name != nil {
		item.Name = strings.TrimSpace(*upd.Name)
	}
	if upd.Description != nil {
		item.Description = strings.TrimSpace(*upd.Description)
	}

	score, err := strconv.ParseFloat(id, 64)
	if err != nil {
		return models.Item{}, ErrItemNotFound
	}

	if err := r.save(ctx, item, score); err != nil {
		return models.Item{}, err
	}

	return item, nil
}

func (r *redisRepository) Delete(ctx context.Context, id string) error {
	removed, err := r.client.ZRem(ctx, redisIndexKey, id).Result()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	if removed == 0 {
		return ErrItemNotFound
	}

	if err := r.client.Del(ctx, fmt.Sprintf(redisItemKey, id)).Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return nil
}

func (r *redisRepository) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *redisRepository) Close() error {
	return r.client.Close()
}

// save writes the item value and its index entry in one pipeline.
func (r *redisRepository) save(ctx context.Context, item models.Item, score float64) error {
	data, err := json.Marshal(item)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	pipe := r.client.Pipeline()
	pipe.Set(ctx, fmt.Sprintf(redisItemKey, item.ID), data, 0)
	pipe.ZAdd(ctx, redisIndexKey, &redis.Z{Score: score, Member: item.ID})
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return nil
}
