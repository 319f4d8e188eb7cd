package repositories

import (
	"time"

	"github.com/raynor-z/go-edumedia/internal/models"
)

// UploadRecordRepository defines the interface for upload record data access.
// 状态迁移一律通过条件更新完成, 由数据库的行级更新语义保证单条记录上的串行化,
// 多实例并发调用时不依赖任何进程内锁
type UploadRecordRepository interface {
	Create(record *models.UploadRecord) error
	// FindByUUID 返回记录本身, 包含已软删除的行, 由调用方决定如何处理
	FindByUUID(uuid string) (*models.UploadRecord, error)
	// MarkCompleted 仅当记录处于 uploading 状态时生效:
	// 置为 completed, 写入实际大小与元数据, 同时清空预签名URL及其过期时间
	MarkCompleted(uuid string, fileSize int64, publicURL string, metadata models.JSONMap) (*models.UploadRecord, error)
	// MarkFailed 仅当记录处于 uploading 状态时生效
	MarkFailed(uuid string, reason string) (*models.UploadRecord, error)
	// MarkDeleted 仅当记录处于 completed 状态时生效, 置为 deleted 并写入删除时间
	MarkDeleted(uuid string, deletedAt time.Time) (*models.UploadRecord, error)
}
