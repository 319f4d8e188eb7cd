package repositories

import (
	"errors"
	"fmt"

	"github.com/raynor-z/go-edumedia/internal/models"
	"github.com/raynor-z/go-edumedia/internal/pkg/logger"
	"github.com/raynor-z/go-edumedia/internal/pkg/xerr"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// UploadSessionRepository 定义了上传会话的数据库操作接口
type UploadSessionRepository interface {
	Create(session *models.UploadSession) error
	FindByToken(token string) (*models.UploadSession, error)
	// IncrementProgress 原子地累加计数器并在满额时落终态
	// 累加必须在数据库侧完成, 应用层读-改-写在并发完成时会丢计数
	IncrementProgress(token string, completedDelta, failedDelta int) (*models.UploadSession, error)
}

type dbUploadSessionRepository struct {
	db *gorm.DB
}

// NewDBUploadSessionRepository 创建一个新的 UploadSessionRepository 实例
func NewDBUploadSessionRepository(db *gorm.DB) UploadSessionRepository {
	return &dbUploadSessionRepository{db: db}
}

func (r *dbUploadSessionRepository) Create(session *models.UploadSession) error {
	err := r.db.Create(session).Error
	if err != nil {
		logger.Error("Create: Failed to create upload session in DB",
			zap.Error(err),
			zap.Uint64("uploaderID", session.UploaderID),
			zap.String("token", session.SessionToken))
		return fmt.Errorf("failed to create upload session: %w", err)
	}
	return nil
}

func (r *dbUploadSessionRepository) FindByToken(token string) (*models.UploadSession, error) {
	var session models.UploadSession
	err := r.db.Where("session_token = ?", token).First(&session).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, xerr.ErrUploadSessionNotFound
		}
		logger.Error("FindByToken: Failed to find upload session in DB", zap.String("token", token), zap.Error(err))
		return nil, fmt.Errorf("failed to find upload session: %w", err)
	}
	return &session, nil
}

func (r *dbUploadSessionRepository) IncrementProgress(token string, completedDelta, failedDelta int) (*models.UploadSession, error) {
	delta := completedDelta + failedDelta

	// 计数累加与满额保护在同一条 UPDATE 内完成
	res := r.db.Model(&models.UploadSession{}).
		Where("session_token = ? AND completed_files + failed_files + ? <= total_files", token, delta).
		UpdateColumns(map[string]any{
			"completed_files": gorm.Expr("completed_files + ?", completedDelta),
			"failed_files":    gorm.Expr("failed_files + ?", failedDelta),
		})
	if res.Error != nil {
		logger.Error("IncrementProgress: Failed to increment session counters in DB",
			zap.String("token", token), zap.Error(res.Error))
		return nil, fmt.Errorf("failed to increment session counters: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		// 要么会话不存在, 要么计数已满
		session, err := r.FindByToken(token)
		if err != nil {
			return nil, err
		}
		return session, xerr.ErrSessionFull
	}

	// 终态判定同样放在数据库侧, 满额后置 completed, 此后不再变更
	err := r.db.Model(&models.UploadSession{}).
		Where("session_token = ? AND completed_files + failed_files >= total_files AND status = ?",
			token, models.UploadStatusUploading).
		UpdateColumn("status", models.UploadStatusCompleted).Error
	if err != nil {
		logger.Error("IncrementProgress: Failed to finalize session status in DB",
			zap.String("token", token), zap.Error(err))
		return nil, fmt.Errorf("failed to finalize session status: %w", err)
	}

	return r.FindByToken(token)
}
