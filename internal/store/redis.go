package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/grvbrk/provideo_server/internal/config"
	"github.com/grvbrk/provideo_server/internal/models"
	"github.com/redis/go-redis/v9"
)

func ConnectRedis(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
		Protocol: 2,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return client, nil
}

// VideoCache holds rendered video details keyed by slug.
type VideoCache interface {
	GetVideo(ctx context.Context, slug string) (*models.VideoDetail, bool, error)
	SetVideo(ctx context.Context, video *models.VideoDetail) error
	DeleteVideo(ctx context.Context, slug string) error
}

type RedisVideoCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisVideoCache(client *redis.Client, ttl time.Duration) *RedisVideoCache {
	return &RedisVideoCache{client: client, ttl: ttl}
}

func videoCacheKey(slug string) string {
	return "video:slug:" + slug
}

func (rc *RedisVideoCache) GetVideo(ctx context.Context, slug string) (*models.VideoDetail, bool, error) {
	raw, err := rc.client.Get(ctx, videoCacheKey(slug)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read cached video: %w", err)
	}

	var video models.VideoDetail
	if err := json.Unmarshal(raw, &video); err != nil {
		return nil, false, fmt.Errorf("failed to decode cached video: %w", err)
	}
	return &video, true, nil
}

func (rc *RedisVideoCache) SetVideo(ctx context.Context, video *models.VideoDetail) error {
	raw, err := json.Marshal(video)
	if err != nil {
		return fmt.Errorf("failed to encode video for cache: %w", err)
	}
	if err := rc.client.Set(ctx, videoCacheKey(video.Slug), raw, rc.ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache video: %w", err)
	}
	return nil
}

func (rc *RedisVideoCache) DeleteVideo(ctx context.Context, slug string) error {
	if err := rc.client.Del(ctx, videoCacheKey(slug)).Err(); err != nil {
		return fmt.Errorf("failed to evict cached video: %w", err)
	}
	return nil
}

// NopVideoCache is used when Redis is not configured.
type NopVideoCache struct{}

func (NopVideoCache) GetVideo(context.Context, string) (*models.VideoDetail, bool, error) {
	return nil, false, nil
}

func (NopVideoCache) SetVideo(context.Context, *models.VideoDetail) error { return nil }

func (NopVideoCache) DeleteVideo(context.Context, string) error { return nil }
