package repositories

import (
	"errors"
	"fmt"
	"time"

	"github.com/raynor-z/go-edumedia/internal/models"
	"github.com/raynor-z/go-edumedia/internal/pkg/logger"
	"github.com/raynor-z/go-edumedia/internal/pkg/xerr"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// dbUploadRecordRepository is the implementation of UploadRecordRepository that interacts directly with the database.
type dbUploadRecordRepository struct {
	db *gorm.DB
}

// NewDBUploadRecordRepository creates a new dbUploadRecordRepository instance.
func NewDBUploadRecordRepository(db *gorm.DB) UploadRecordRepository {
	return &dbUploadRecordRepository{
		db: db,
	}
}

func (r *dbUploadRecordRepository) Create(record *models.UploadRecord) error {
	err := r.db.Create(record).Error
	if err != nil {
		logger.Error("Create: Failed to create upload record in DB",
			zap.Error(err),
			zap.Uint64("uploaderID", record.UploaderID),
			zap.String("uuid", record.UUID))
		return fmt.Errorf("failed to create upload record: %w", err)
	}
	return nil
}

func (r *dbUploadRecordRepository) FindByUUID(uuid string) (*models.UploadRecord, error) {
	var record models.UploadRecord
	err := r.db.Where("uuid = ?", uuid).First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, xerr.ErrUploadNotFound
		}
		logger.Error("FindByUUID: Failed to find upload record in DB", zap.String("uuid", uuid), zap.Error(err))
		return nil, fmt.Errorf("failed to find upload record: %w", err)
	}
	return &record, nil
}

// transition 执行一次条件状态迁移, 返回更新后的记录
// 条件不满足时区分记录不存在与状态不允许两种错误
func (r *dbUploadRecordRepository) transition(uuid string, fromStatus models.UploadStatus, updates map[string]any) (*models.UploadRecord, error) {
	res := r.db.Model(&models.UploadRecord{}).
		Where("uuid = ? AND status = ?", uuid, fromStatus).
		Updates(updates)
	if res.Error != nil {
		logger.Error("transition: Failed to update upload record status in DB",
			zap.String("uuid", uuid),
			zap.String("fromStatus", string(fromStatus)),
			zap.Error(res.Error))
		return nil, fmt.Errorf("failed to update upload record: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		record, err := r.FindByUUID(uuid)
		if err != nil {
			return nil, err
		}
		// 记录存在但不处于允许迁移的状态
		return record, xerr.ErrStatusInvalid
	}
	return r.FindByUUID(uuid)
}

func (r *dbUploadRecordRepository) MarkCompleted(uuid string, fileSize int64, publicURL string, metadata models.JSONMap) (*models.UploadRecord, error) {
	updates := map[string]any{
		"status":               models.UploadStatusCompleted,
		"file_size":            fileSize,
		"public_url":           publicURL,
		"presigned_url":        gorm.Expr("NULL"),
		"presigned_expires_at": gorm.Expr("NULL"),
	}
	if metadata != nil {
		updates["metadata"] = metadata
	}
	return r.transition(uuid, models.UploadStatusUploading, updates)
}

func (r *dbUploadRecordRepository) MarkFailed(uuid string, reason string) (*models.UploadRecord, error) {
	updates := map[string]any{
		"status":               models.UploadStatusFailed,
		"presigned_url":        gorm.Expr("NULL"),
		"presigned_expires_at": gorm.Expr("NULL"),
	}
	if reason != "" {
		updates["fail_reason"] = reason
	}
	return r.transition(uuid, models.UploadStatusUploading, updates)
}

func (r *dbUploadRecordRepository) MarkDeleted(uuid string, deletedAt time.Time) (*models.UploadRecord, error) {
	updates := map[string]any{
		"status":     models.UploadStatusDeleted,
		"deleted_at": deletedAt,
	}
	return r.transition(uuid, models.UploadStatusCompleted, updates)
}
