package storage

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/raynor-z/go-edumedia/internal/config"
	"github.com/raynor-z/go-edumedia/internal/pkg/logger"
	"go.uber.org/zap"
)

type MinIOStorage struct {
	client *minio.Client
	cfg    *config.MinIOConfig // MinIO的配置信息
}

// NewMinIOStorage 创建并返回一个 MinIOStorage 实例
func NewMinIOStorage(cfg *config.MinIOConfig) (*MinIOStorage, error) {
	opts := &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: cfg.UseSSL, // 根据配置决定是否使用 HTTPS
	}

	minioClient, err := minio.New(cfg.Endpoint, opts)
	if err != nil {
		logger.Error("初始化 MinIO 客户端失败", zap.Error(err))
		return nil, fmt.Errorf("无法初始化 MinIO 客户端: %w", err)
	}

	logger.Info("MinIO 客户端初始化成功", zap.String("endpoint", cfg.Endpoint))
	return &MinIOStorage{
		client: minioClient,
		cfg:    cfg,
	}, nil
}

// PresignedPutURL 为直传签发限时PUT URL
// MinIO 的预签名PUT不把 Content-Type 纳入签名, 类型约束在完成上报时重新校验
func (s *MinIOStorage) PresignedPutURL(ctx context.Context, bucketName, objectName, contentType string, expiry time.Duration) (string, error) {
	presignedURL, err := s.client.PresignedPutObject(ctx, bucketName, objectName, expiry)
	if err != nil {
		return "", fmt.Errorf("生成 MinIO 预签名上传URL失败: %w", err)
	}
	return presignedURL.String(), nil
}

func (s *MinIOStorage) PresignedGetURL(ctx context.Context, bucketName, objectName string, expiry time.Duration) (string, error) {
	presignedURL, err := s.client.PresignedGetObject(ctx, bucketName, objectName, expiry, url.Values{})
	if err != nil {
		return "", fmt.Errorf("生成 MinIO 预签名下载URL失败: %w", err)
	}
	return presignedURL.String(), nil
}

func (s *MinIOStorage) RemoveObject(ctx context.Context, bucketName, objectName string) error {
	err := s.client.RemoveObject(ctx, bucketName, objectName, minio.RemoveObjectOptions{})
	if err != nil {
		return fmt.Errorf("MinIO 删除文件失败: %w", err)
	}
	return nil
}

func (s *MinIOStorage) IsBucketExist(ctx context.Context, bucketName string) (bool, error) {
	found, err := s.client.BucketExists(ctx, bucketName)
	if err != nil {
		return false, fmt.Errorf("检查 MinIO 存储桶存在性失败: %w", err)
	}
	return found, nil
}

func (s *MinIOStorage) MakeBucket(ctx context.Context, bucketName string) error {
	err := s.client.MakeBucket(ctx, bucketName, minio.MakeBucketOptions{})
	if err != nil {
		// 如果桶已存在，通常不是错误
		exists, errBucketExists := s.client.BucketExists(ctx, bucketName)
		if errBucketExists == nil && exists {
			logger.Info("MinIO 存储桶已存在，无需创建", zap.String("bucket", bucketName))
			return nil
		}
		return fmt.Errorf("创建 MinIO 存储桶失败: %w", err)
	}
	logger.Info("MinIO 存储桶创建成功", zap.String("bucket", bucketName))
	return nil
}

// ObjectURL 返回对象的公开访问URL
// MinIO 的 URL 格式通常是：Endpoint/bucketName/objectName
func (s *MinIOStorage) ObjectURL(bucketName, objectName string) string {
	endpoint := s.cfg.Endpoint
	if !strings.HasPrefix(endpoint, "http://") && !strings.HasPrefix(endpoint, "https://") {
		if s.cfg.UseSSL {
			endpoint = "https://" + endpoint
		} else {
			endpoint = "http://" + endpoint
		}
	}
	return fmt.Sprintf("%s/%s/%s", endpoint, bucketName, objectName)
}
