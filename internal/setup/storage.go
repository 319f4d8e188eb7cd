package setup

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/raynor-z/go-edumedia/internal/config"
	"github.com/raynor-z/go-edumedia/internal/pkg/logger"
	"github.com/raynor-z/go-edumedia/internal/pkg/storage"
)

// InitStorage 初始化对象存储后端并确保配置的存储桶存在
// 单桶配置时只检查公开桶
func InitStorage(cfg *config.Config) (storage.ObjectStorage, error) {
	store, err := storage.NewObjectStorage(cfg)
	if err != nil {
		return nil, fmt.Errorf("初始化对象存储服务失败: %w", err)
	}
	logger.Info("对象存储服务已选择并初始化", zap.String("type", cfg.Storage.Type))

	buckets := []string{cfg.Storage.PublicBucket}
	if cfg.Storage.PrivateBucket != "" && cfg.Storage.PrivateBucket != cfg.Storage.PublicBucket {
		buckets = append(buckets, cfg.Storage.PrivateBucket)
	}

	// 为外部调用使用带超时的上下文
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	for _, bucketName := range buckets {
		exists, err := store.IsBucketExist(ctx, bucketName)
		if err != nil {
			return nil, fmt.Errorf("检查存储桶存在性失败: %w", err)
		}
		if !exists {
			logger.Info("存储桶不存在，尝试创建...", zap.String("bucketName", bucketName))
			if err := store.MakeBucket(ctx, bucketName); err != nil {
				return nil, fmt.Errorf("创建存储桶失败: %w", err)
			}
		} else {
			logger.Info("存储桶已存在", zap.String("bucketName", bucketName))
		}
	}

	return store, nil
}
