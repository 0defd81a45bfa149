package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// TTL bounds how long finished and abandoned projects stay queryable.
	TTL = 24 * time.Hour

	keyPrefix = "viralengine:project:"
	indexKey  = "viralengine:projects"
)

// RedisStore keeps projects as JSON records in Redis with a 24h TTL, so
// status survives a server restart.
type RedisStore struct {
	rdb *redis.Client
}

// NewRedisStore wraps an existing Redis client.
func NewRedisStore(rdb *redis.Client) *RedisStore {
	return &RedisStore{rdb: rdb}
}

func (s *RedisStore) Create(ctx context.Context, p *Project) error {
	return s.write(ctx, p, true)
}

func (s *RedisStore) Update(ctx context.Context, p *Project) error {
	return s.write(ctx, p, false)
}

func (s *RedisStore) write(ctx context.Context, p *Project, index bool) error {
	b, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to marshal project: %w", err)
	}
	if err := s.rdb.Set(ctx, keyPrefix+p.Status.ProjectID, b, TTL).Err(); err != nil {
		return fmt.Errorf("failed to store project: %w", err)
	}
	if index {
		if err := s.rdb.SAdd(ctx, indexKey, p.Status.ProjectID).Err(); err != nil {
			return fmt.Errorf("failed to index project: %w", err)
		}
	}
	return nil
}

func (s *RedisStore) Get(ctx context.Context, id string) (*Project, error) {
	b, err := s.rdb.Get(ctx, keyPrefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load project: %w", err)
	}
	var p Project
	if err := json.Unmarshal(b, &p); err != nil {
		return nil, fmt.Errorf("failed to decode project: %w", err)
	}
	return &p, nil
}

func (s *RedisStore) List(ctx context.Context) ([]*Project, error) {
	ids, err := s.rdb.SMembers(ctx, indexKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}

	out := make([]*Project, 0, len(ids))
	for _, id := range ids {
		p, err := s.Get(ctx, id)
		if errors.Is(err, ErrNotFound) {
			// Record expired; drop it from the index.
			s.rdb.SRem(ctx, indexKey, id)
			continue
		}
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}
