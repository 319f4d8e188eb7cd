package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/aliyun/aliyun-oss-go-sdk/oss"
	"github.com/raynor-z/go-edumedia/internal/config"
	"github.com/raynor-z/go-edumedia/internal/pkg/logger"
	"go.uber.org/zap"
)

type AliyunOSSStorage struct {
	client *oss.Client
	cfg    *config.AliyunOSSConfig // 阿里云OSS的配置信息
}

// NewAliyunOSSStorage 创建并返回一个 AliyunOSSStorage 实例
func NewAliyunOSSStorage(cfg *config.AliyunOSSConfig) (*AliyunOSSStorage, error) {
	// OSS Endpoint 应该包含 http:// 或 https:// 前缀
	ossClient, err := oss.New(cfg.Endpoint, cfg.AccessKeyID, cfg.SecretAccessKey)
	if err != nil {
		logger.Error("初始化阿里云OSS客户端失败", zap.Error(err))
		return nil, fmt.Errorf("无法初始化阿里云OSS客户端: %w", err)
	}
	logger.Info("阿里云OSS客户端初始化成功", zap.String("endpoint", cfg.Endpoint))
	return &AliyunOSSStorage{
		client: ossClient,
		cfg:    cfg,
	}, nil
}

// PresignedPutURL 为直传签发限时PUT URL
// 通过 oss.ContentType 选项把内容类型纳入签名, 客户端必须按声明的类型上传
func (s *AliyunOSSStorage) PresignedPutURL(ctx context.Context, bucketName, objectName, contentType string, expiry time.Duration) (string, error) {
	bucket, err := s.client.Bucket(bucketName)
	if err != nil {
		return "", fmt.Errorf("获取OSS存储桶失败: %w", err)
	}

	signedURL, err := bucket.SignURL(objectName, oss.HTTPPut, int64(expiry.Seconds()), oss.ContentType(contentType))
	if err != nil {
		return "", fmt.Errorf("生成阿里云OSS预签名上传URL失败: %w", err)
	}
	return signedURL, nil
}

func (s *AliyunOSSStorage) PresignedGetURL(ctx context.Context, bucketName, objectName string, expiry time.Duration) (string, error) {
	bucket, err := s.client.Bucket(bucketName)
	if err != nil {
		return "", fmt.Errorf("获取OSS存储桶失败: %w", err)
	}

	// SignURL 默认是 GET 方法
	signedURL, err := bucket.SignURL(objectName, oss.HTTPGet, int64(expiry.Seconds()))
	if err != nil {
		return "", fmt.Errorf("生成阿里云OSS预签名下载URL失败: %w", err)
	}
	return signedURL, nil
}

func (s *AliyunOSSStorage) RemoveObject(ctx context.Context, bucketName, objectName string) error {
	bucket, err := s.client.Bucket(bucketName)
	if err != nil {
		return fmt.Errorf("获取OSS存储桶失败: %w", err)
	}

	if err := bucket.DeleteObject(objectName); err != nil {
		return fmt.Errorf("阿里云OSS删除文件失败: %w", err)
	}
	return nil
}

func (s *AliyunOSSStorage) IsBucketExist(ctx context.Context, bucketName string) (bool, error) {
	exists, err := s.client.IsBucketExist(bucketName)
	if err != nil {
		return false, fmt.Errorf("检查阿里云OSS存储桶存在性失败: %w", err)
	}
	return exists, nil
}

func (s *AliyunOSSStorage) MakeBucket(ctx context.Context, bucketName string) error {
	if err := s.client.CreateBucket(bucketName); err != nil {
		return fmt.Errorf("创建阿里云OSS存储桶失败: %w", err)
	}
	logger.Info("阿里云OSS存储桶创建成功", zap.String("bucket", bucketName))
	return nil
}

// ObjectURL 返回对象的公开访问URL
// OSS 的公开URL格式: https://bucketName.endpoint/objectName
func (s *AliyunOSSStorage) ObjectURL(bucketName, objectName string) string {
	scheme := "https"
	if !s.cfg.UseSSL {
		scheme = "http"
	}
	return fmt.Sprintf("%s://%s.%s/%s", scheme, bucketName, s.cfg.Endpoint, objectName)
}
