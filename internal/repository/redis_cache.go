package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/orzutravel/api/internal/domain"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const packageListKey = "packages:list"

// RedisCacheRepository implements domain.PackageListCache using Redis
type RedisCacheRepository struct {
	client *redis.Client
}

// NewRedisCacheRepository creates a new Redis cache repository
func NewRedisCacheRepository(client *redis.Client) *RedisCacheRepository {
	return &RedisCacheRepository{
		client: client,
	}
}

// GetList retrieves the cached package list
func (r *RedisCacheRepository) GetList(ctx context.Context) ([]*domain.TravelPackage, error) {
	tracer := otel.Tracer("redis")
	ctx, span := tracer.Start(ctx, "redis.GetList",
		trace.WithAttributes(attribute.String("cache.key", packageListKey)),
	)
	defer span.End()

	data, err := r.client.Get(ctx, packageListKey).Bytes()
	if err != nil {
		if err == redis.Nil {
			span.SetAttributes(attribute.String("cache.result", "miss"))
			return nil, domain.ErrCacheMiss
		}
		span.RecordError(err)
		return nil, fmt.Errorf("redis get error: %w", err)
	}

	span.SetAttributes(attribute.String("cache.result", "hit"))
	var packages []*domain.TravelPackage
	if err := json.Unmarshal(data, &packages); err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("unmarshal error: %w", err)
	}
	return packages, nil
}

// SetList caches the package list with TTL
func (r *RedisCacheRepository) SetList(ctx context.Context, pkgs []*domain.TravelPackage, ttl time.Duration) error {
	tracer := otel.Tracer("redis")
	ctx, span := tracer.Start(ctx, "redis.SetList",
		trace.WithAttributes(
			attribute.String("cache.key", packageListKey),
			attribute.Int64("cache.ttl_seconds", int64(ttl.Seconds())),
		),
	)
	defer span.End()

	data, err := json.Marshal(pkgs)
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("marshal error: %w", err)
	}

	if err := r.client.Set(ctx, packageListKey, data, ttl).Err(); err != nil {
		span.RecordError(err)
		return fmt.Errorf("redis set error: %w", err)
	}
	return nil
}

// InvalidateList drops the cached list so the next read hits the store.
// Called after every package mutation.
func (r *RedisCacheRepository) InvalidateList(ctx context.Context) error {
	tracer := otel.Tracer("redis")
	ctx, span := tracer.Start(ctx, "redis.InvalidateList",
		trace.WithAttributes(attribute.String("cache.key", packageListKey)),
	)
	defer span.End()

	if err := r.client.Del(ctx, packageListKey).Err(); err != nil {
		span.RecordError(err)
		return fmt.Errorf("redis delete error: %w", err)
	}
	return nil
}
