package repositories

import (
	"context"
	"errors"
	"math/rand"
	"time"

	"github.com/raynor-z/go-edumedia/internal/models"
	"github.com/raynor-z/go-edumedia/internal/pkg/cache"
	"github.com/raynor-z/go-edumedia/internal/pkg/logger"
	"go.uber.org/zap"
)

// cachedUploadRecordRepository 以读穿透方式装饰数据库仓库
// 任何状态迁移都会使缓存失效, 缓存层故障只记录日志, 不影响主流程
type cachedUploadRecordRepository struct {
	next  UploadRecordRepository // Next repository in the chain (the db repository)
	cache *cache.RedisCache
}

// NewCachedUploadRecordRepository creates a new cachedUploadRecordRepository instance.
func NewCachedUploadRecordRepository(next UploadRecordRepository, redisCache *cache.RedisCache) UploadRecordRepository {
	return &cachedUploadRecordRepository{
		next:  next,
		cache: redisCache,
	}
}

// ttl 在基础TTL上加随机抖动, 避免同批记录的缓存同时过期
func (r *cachedUploadRecordRepository) ttl() time.Duration {
	return cache.RecordTTL + time.Duration(rand.Intn(300))*time.Second
}

func (r *cachedUploadRecordRepository) Create(record *models.UploadRecord) error {
	if err := r.next.Create(record); err != nil {
		return err
	}

	ctx := context.Background()
	if err := r.cache.Set(ctx, cache.UploadRecordKey(record.UUID), record, r.ttl()); err != nil {
		logger.Error("Create: Failed to cache upload record", zap.String("uuid", record.UUID), zap.Error(err))
	}
	return nil
}

func (r *cachedUploadRecordRepository) FindByUUID(uuid string) (*models.UploadRecord, error) {
	ctx := context.Background()
	key := cache.UploadRecordKey(uuid)

	var cached models.UploadRecord
	err := r.cache.Get(ctx, key, &cached)
	if err == nil {
		return &cached, nil
	}
	if !errors.Is(err, cache.ErrCacheMiss) {
		logger.Error("FindByUUID: Failed to read upload record cache", zap.String("uuid", uuid), zap.Error(err))
	}

	record, err := r.next.FindByUUID(uuid)
	if err != nil {
		return nil, err
	}

	if setErr := r.cache.Set(ctx, key, record, r.ttl()); setErr != nil {
		logger.Error("FindByUUID: Failed to cache upload record", zap.String("uuid", uuid), zap.Error(setErr))
	}
	return record, nil
}

// invalidate 在状态迁移后删除缓存, 下次读取时回源数据库
func (r *cachedUploadRecordRepository) invalidate(uuid string) {
	if err := r.cache.Del(context.Background(), cache.UploadRecordKey(uuid)); err != nil {
		logger.Error("Failed to invalidate upload record cache", zap.String("uuid", uuid), zap.Error(err))
	}
}

func (r *cachedUploadRecordRepository) MarkCompleted(uuid string, fileSize int64, publicURL string, metadata models.JSONMap) (*models.UploadRecord, error) {
	record, err := r.next.MarkCompleted(uuid, fileSize, publicURL, metadata)
	r.invalidate(uuid)
	return record, err
}

func (r *cachedUploadRecordRepository) MarkFailed(uuid string, reason string) (*models.UploadRecord, error) {
	record, err := r.next.MarkFailed(uuid, reason)
	r.invalidate(uuid)
	return record, err
}

func (r *cachedUploadRecordRepository) MarkDeleted(uuid string, deletedAt time.Time) (*models.UploadRecord, error) {
	record, err := r.next.MarkDeleted(uuid, deletedAt)
	r.invalidate(uuid)
	return record, err
}
