package storage

import (
	"context"
	"errors"
	"time"

	"github.com/raynor-z/go-edumedia/internal/config"
)

// ObjectStorage 定义了本服务消费的对象存储操作接口
// 任何能提供签名PUT/GET与删除对象三个操作的服务都可以作为替代实现
// 文件字节本身始终由客户端携带签名URL直传, 不经过本服务
type ObjectStorage interface {
	// PresignedPutURL 为指定桶/键/内容类型签发一个限时的上传URL
	PresignedPutURL(ctx context.Context, bucketName, objectName, contentType string, expiry time.Duration) (string, error)
	// PresignedGetURL 为指定桶/键签发一个限时的下载URL
	PresignedGetURL(ctx context.Context, bucketName, objectName string, expiry time.Duration) (string, error)
	// RemoveObject 从指定存储桶删除对象
	RemoveObject(ctx context.Context, bucketName, objectName string) error
	// IsBucketExist 检查存储桶是否存在
	IsBucketExist(ctx context.Context, bucketName string) (bool, error)
	// MakeBucket 创建存储桶
	MakeBucket(ctx context.Context, bucketName string) error
	// ObjectURL 返回对象的公开访问URL(不签名)
	ObjectURL(bucketName, objectName string) string
}

// NewObjectStorage 按配置选择存储后端
func NewObjectStorage(cfg *config.Config) (ObjectStorage, error) {
	switch cfg.Storage.Type {
	case "minio":
		return NewMinIOStorage(&cfg.MinIO)
	case "aliyun_oss":
		return NewAliyunOSSStorage(&cfg.AliyunOSS)
	default:
		return nil, errors.New("invalid storageType")
	}
}
