package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/raynor-z/go-edumedia/internal/pkg/logger"
	"go.uber.org/zap"
)

var ErrCacheMiss error = errors.New("缓存未命中,key不存在")

// RecordTTL 上传记录缓存的基础有效期
const RecordTTL = 10 * time.Minute

// UploadRecordKey 生成上传记录的缓存键
func UploadRecordKey(uuid string) string {
	return fmt.Sprintf("upload:record:%s", uuid)
}

type RedisCache struct {
	client *redis.Client
}

func NewRedisCache(client *redis.Client) *RedisCache {
	return &RedisCache{client: client}
}

func (r *RedisCache) Set(ctx context.Context, key string, value any, expiration time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		logger.Error("Failed to marshal cache value", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("序列化缓存值失败: %w", err)
	}

	err = r.client.Set(ctx, key, data, expiration).Err()
	if err != nil {
		logger.Error("Failed to set value in Redis", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("写入 Redis 失败: %w", err)
	}
	return nil
}

func (r *RedisCache) Get(ctx context.Context, key string, target any) error {
	data, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return ErrCacheMiss
		}
		logger.Error("Failed to get value from Redis", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("从 Redis 读取失败: %w", err)
	}

	err = json.Unmarshal(data, target)
	if err != nil {
		logger.Error("Failed to unmarshal cached value", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("反序列化缓存值失败: %w", err)
	}
	return nil
}

func (r *RedisCache) Del(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	err := r.client.Del(ctx, keys...).Err()
	if err != nil {
		logger.Error("Failed to delete keys from Redis", zap.Strings("keys", keys), zap.Error(err))
		return fmt.Errorf("从 Redis 删除键失败: %w", err)
	}
	return nil
}

func (r *RedisCache) Exists(ctx context.Context, key string) (bool, error) {
	count, err := r.client.Exists(ctx, key).Result()
	if err != nil {
		logger.Error("Failed to check key existence in Redis", zap.String("key", key), zap.Error(err))
		return false, fmt.Errorf("检查 Redis 键存在性失败: %w", err)
	}
	return count > 0, nil
}
