package media

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/raynor-z/go-edumedia/internal/config"
	"github.com/raynor-z/go-edumedia/internal/models"
	"github.com/raynor-z/go-edumedia/internal/pkg/logger"
	"github.com/raynor-z/go-edumedia/internal/pkg/storage"
	"github.com/raynor-z/go-edumedia/internal/pkg/xerr"
	"github.com/raynor-z/go-edumedia/internal/repositories"
	"go.uber.org/zap"
)

// 预签名URL有效期的允许区间, 请求值越界时收敛到边界
const (
	minPresignExpiry = time.Minute
	maxPresignExpiry = 24 * time.Hour
)

// UploadService 管理上传记录从签发到完成/失败/删除的全生命周期
// 文件字节由客户端携带签名URL直传对象存储, 本服务只管记录与策略
type UploadService interface {
	// Issue 验证请求, 推导桶/键, 签发限时PUT URL并落一条 uploading 记录
	Issue(ctx context.Context, uploaderID uint64, req *models.PresignUploadRequest) (*models.PresignUploadResponse, error)
	// Complete 上报实际大小, 重新过一遍大小规则后把记录置为 completed
	Complete(ctx context.Context, recordUUID string, req *models.CompleteUploadRequest) (*models.UploadRecord, error)
	// Fail 上报失败, 尽力删除已写入的对象后把记录置为 failed
	Fail(ctx context.Context, recordUUID string, req *models.FailUploadRequest) (*models.UploadRecord, error)
	// Delete 删除存储对象并软删除记录, 幂等
	Delete(ctx context.Context, recordUUID string) (*models.UploadRecord, error)
	// GetInfo 返回未被软删除的记录
	GetInfo(ctx context.Context, recordUUID string) (*models.UploadRecord, error)
	// GetDownloadURL 公开记录返回固定URL, 私有记录签发限时GET URL
	GetDownloadURL(ctx context.Context, recordUUID string, expirySeconds *int) (*models.DownloadURLResponse, error)
}

type uploadService struct {
	records   repositories.UploadRecordRepository
	sessions  SessionService
	keyRouter *KeyRouter
	store     storage.ObjectStorage
	cfg       *config.Config
}

func NewUploadService(
	records repositories.UploadRecordRepository,
	sessions SessionService,
	keyRouter *KeyRouter,
	store storage.ObjectStorage,
	cfg *config.Config,
) UploadService {
	return &uploadService{
		records:   records,
		sessions:  sessions,
		keyRouter: keyRouter,
		store:     store,
		cfg:       cfg,
	}
}

// presignExpiry 把可选的请求值收敛到允许区间, 缺省用配置值
func (s *uploadService) presignExpiry(expirySeconds *int) time.Duration {
	expiry := s.cfg.Storage.PresignedURLExpiry
	if expirySeconds != nil {
		expiry = time.Duration(*expirySeconds) * time.Second
	}
	if expiry < minPresignExpiry {
		expiry = minPresignExpiry
	}
	if expiry > maxPresignExpiry {
		expiry = maxPresignExpiry
	}
	return expiry
}

func (s *uploadService) Issue(ctx context.Context, uploaderID uint64, req *models.PresignUploadRequest) (*models.PresignUploadResponse, error) {
	// 所有验证都在任何外部调用之前完成, 验证失败不产生任何副作用
	category, err := ParseCategory(req.Category)
	if err != nil {
		return nil, err
	}
	if req.FileSize != nil {
		if err := ValidateSize(category, *req.FileSize); err != nil {
			return nil, err
		}
	}
	if err := ValidateContentType(category, req.ContentType); err != nil {
		return nil, err
	}

	bucketName := s.keyRouter.ChooseBucket(category)
	objectName := s.keyRouter.BuildKey(category, req.FileName, uploaderID)
	expiry := s.presignExpiry(req.ExpirySeconds)

	presignedURL, err := s.store.PresignedPutURL(ctx, bucketName, objectName, req.ContentType, expiry)
	if err != nil {
		logger.Error("Issue: 生成预签名上传URL失败",
			zap.String("bucket", bucketName),
			zap.String("key", objectName),
			zap.Error(err))
		return nil, xerr.NewCodeError(xerr.CodeStorageError, fmt.Errorf("%w: %v", xerr.ErrStorageError, err))
	}

	expiresAt := time.Now().Add(expiry)
	record := &models.UploadRecord{
		UUID:               uuid.NewString(),
		UploaderID:         uploaderID,
		Category:           category,
		OriginalName:       req.FileName,
		StorageKey:         objectName,
		Bucket:             bucketName,
		FileSize:           0, // 完成上报前恒为 0
		ContentType:        req.ContentType,
		Status:             models.UploadStatusUploading,
		PresignedURL:       &presignedURL,
		PresignedExpiresAt: &expiresAt,
		Metadata:           req.Metadata,
		CommunityID:        req.CommunityID,
		CourseID:           req.CourseID,
		CourseModuleID:     req.CourseModuleID,
		MaterialID:         req.MaterialID,
	}

	if err := s.records.Create(record); err != nil {
		// URL 已经签出但记录没有落库, 必须向调用方明确区分,
		// 否则客户端会拿着一个无人跟踪的URL直传
		logger.Error("Issue: 预签名URL已签发但记录保存失败",
			zap.String("uuid", record.UUID),
			zap.String("key", objectName),
			zap.Error(err))
		return nil, xerr.NewCodeError(xerr.CodeRecordSaveFailed, xerr.ErrRecordSaveFailed)
	}

	logger.Info("Issue: 上传URL签发成功",
		zap.String("uuid", record.UUID),
		zap.String("category", string(category)),
		zap.Uint64("uploaderID", uploaderID))

	return &models.PresignUploadResponse{
		UploadID:     record.UUID,
		PresignedURL: presignedURL,
		StorageKey:   objectName,
		Bucket:       bucketName,
		// 响应中提前告知完成后的公开地址, 记录上的 public_url 字段在完成前保持为空
		PublicURL: s.keyRouter.BuildPublicURL(category, bucketName, objectName),
		ExpiresAt: expiresAt,
	}, nil
}

func (s *uploadService) Complete(ctx context.Context, recordUUID string, req *models.CompleteUploadRequest) (*models.UploadRecord, error) {
	record, err := s.findLive(recordUUID)
	if err != nil {
		return nil, err
	}

	// 客户端绕过本服务直传, 上报的大小是唯一证据,
	// 必须按签发时完全相同的规则重新校验, 防止小额度签发后超量上传
	if err := ValidateSize(record.Category, req.FileSize); err != nil {
		return nil, err
	}

	publicURL := s.keyRouter.BuildPublicURL(record.Category, record.Bucket, record.StorageKey)
	updated, err := s.records.MarkCompleted(recordUUID, req.FileSize, publicURL, req.Metadata)
	if err != nil {
		return nil, s.wrapTransitionError(err, recordUUID)
	}

	s.recordSessionProgress(ctx, req.SessionToken, 1, 0)

	logger.Info("Complete: 上传完成",
		zap.String("uuid", recordUUID),
		zap.Int64("fileSize", req.FileSize))
	return updated, nil
}

func (s *uploadService) Fail(ctx context.Context, recordUUID string, req *models.FailUploadRequest) (*models.UploadRecord, error) {
	record, err := s.findLive(recordUUID)
	if err != nil {
		return nil, err
	}

	// 状态不允许迁移时在触碰存储之前拒绝, 否则迟到的失败上报会删掉
	// 已完成记录的活对象; 并发下的最终裁决仍由数据库的条件更新保证
	if record.Status != models.UploadStatusUploading {
		return nil, xerr.NewCodeError(xerr.CodeUploadStatusInvalid, xerr.ErrStatusInvalid)
	}

	// 对象可能根本没被写入过, 删除失败只记日志不阻塞状态迁移:
	// 孤儿对象可以接受, 卡在错误状态的记录不可以
	if err := s.store.RemoveObject(ctx, record.Bucket, record.StorageKey); err != nil {
		logger.Warn("Fail: 删除存储对象失败, 继续迁移记录状态",
			zap.String("uuid", recordUUID),
			zap.String("bucket", record.Bucket),
			zap.String("key", record.StorageKey),
			zap.Error(err))
	}

	updated, err := s.records.MarkFailed(recordUUID, req.Reason)
	if err != nil {
		return nil, s.wrapTransitionError(err, recordUUID)
	}

	s.recordSessionProgress(ctx, req.SessionToken, 0, 1)

	logger.Info("Fail: 上传标记为失败",
		zap.String("uuid", recordUUID),
		zap.String("reason", req.Reason))
	return updated, nil
}

func (s *uploadService) Delete(ctx context.Context, recordUUID string) (*models.UploadRecord, error) {
	record, err := s.records.FindByUUID(recordUUID)
	if err != nil {
		return nil, s.wrapNotFound(err)
	}

	// 幂等: 已删除的记录原样返回, 不报错
	if record.IsDeleted() {
		return record, nil
	}

	// 只有 completed 记录可删, 其他状态在触碰存储之前拒绝
	if record.Status != models.UploadStatusCompleted {
		return nil, xerr.NewCodeError(xerr.CodeUploadStatusInvalid, xerr.ErrStatusInvalid)
	}

	if err := s.store.RemoveObject(ctx, record.Bucket, record.StorageKey); err != nil {
		logger.Warn("Delete: 删除存储对象失败, 继续软删除记录",
			zap.String("uuid", recordUUID),
			zap.String("bucket", record.Bucket),
			zap.String("key", record.StorageKey),
			zap.Error(err))
	}

	updated, err := s.records.MarkDeleted(recordUUID, time.Now())
	if err != nil {
		return nil, s.wrapTransitionError(err, recordUUID)
	}

	logger.Info("Delete: 上传记录已软删除", zap.String("uuid", recordUUID))
	return updated, nil
}

func (s *uploadService) GetInfo(ctx context.Context, recordUUID string) (*models.UploadRecord, error) {
	return s.findLive(recordUUID)
}

func (s *uploadService) GetDownloadURL(ctx context.Context, recordUUID string, expirySeconds *int) (*models.DownloadURLResponse, error) {
	record, err := s.findLive(recordUUID)
	if err != nil {
		return nil, err
	}
	if record.Status != models.UploadStatusCompleted {
		// 未完成的记录对下载方不可见
		return nil, xerr.NewCodeError(xerr.CodeUploadNotFound, xerr.ErrUploadNotFound)
	}

	// 公开记录直接返回固定URL, 无需签名
	if record.PublicURL != "" {
		return &models.DownloadURLResponse{URL: record.PublicURL}, nil
	}

	expiry := s.presignExpiry(expirySeconds)
	signedURL, err := s.store.PresignedGetURL(ctx, record.Bucket, record.StorageKey, expiry)
	if err != nil {
		logger.Error("GetDownloadURL: 生成预签名下载URL失败",
			zap.String("uuid", recordUUID),
			zap.Error(err))
		return nil, xerr.NewCodeError(xerr.CodeStorageError, fmt.Errorf("%w: %v", xerr.ErrStorageError, err))
	}

	expiresAt := time.Now().Add(expiry)
	return &models.DownloadURLResponse{URL: signedURL, ExpiresAt: &expiresAt}, nil
}

// findLive 查找记录并把软删除视作不存在
func (s *uploadService) findLive(recordUUID string) (*models.UploadRecord, error) {
	record, err := s.records.FindByUUID(recordUUID)
	if err != nil {
		return nil, s.wrapNotFound(err)
	}
	if record.IsDeleted() {
		return nil, xerr.NewCodeError(xerr.CodeUploadNotFound, xerr.ErrUploadNotFound)
	}
	return record, nil
}

// recordSessionProgress 上传完成/失败联动会话计数
// 会话计数属于附加簿记, 失败只记日志, 不影响记录本身的状态迁移
func (s *uploadService) recordSessionProgress(ctx context.Context, token string, completed, failed int) {
	if token == "" || s.sessions == nil {
		return
	}
	if _, err := s.sessions.RecordProgress(ctx, token, completed, failed); err != nil {
		logger.Warn("会话进度联动失败",
			zap.String("token", token),
			zap.Int("completed", completed),
			zap.Int("failed", failed),
			zap.Error(err))
	}
}

func (s *uploadService) wrapNotFound(err error) error {
	if errors.Is(err, xerr.ErrUploadNotFound) {
		return xerr.NewCodeError(xerr.CodeUploadNotFound, xerr.ErrUploadNotFound)
	}
	return xerr.NewCodeError(xerr.CodeDatabaseError, fmt.Errorf("%w: %v", xerr.ErrDatabaseError, err))
}

func (s *uploadService) wrapTransitionError(err error, recordUUID string) error {
	switch {
	case errors.Is(err, xerr.ErrStatusInvalid):
		return xerr.NewCodeError(xerr.CodeUploadStatusInvalid, xerr.ErrStatusInvalid)
	case errors.Is(err, xerr.ErrUploadNotFound):
		return xerr.NewCodeError(xerr.CodeUploadNotFound, xerr.ErrUploadNotFound)
	default:
		logger.Error("上传记录状态迁移失败", zap.String("uuid", recordUUID), zap.Error(err))
		return xerr.NewCodeError(xerr.CodeDatabaseError, fmt.Errorf("%w: %v", xerr.ErrDatabaseError, err))
	}
}
