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
	"github.com/raynor-z/go-edumedia/internal/pkg/xerr"
	"github.com/raynor-z/go-edumedia/internal/repositories"
	"go.uber.org/zap"
)

// SessionService 管理多文件上传的批次会话
// 会话只通过计数递增发生变化, 满额后进入终态不再变更
// 过期时间在创建时一次性设定, 读取时不做强制校验, 过期清扫留给后续的独立任务
type SessionService interface {
	CreateSession(ctx context.Context, uploaderID uint64, req *models.CreateSessionRequest) (*models.UploadSession, error)
	GetSession(ctx context.Context, token string) (*models.UploadSession, error)
	// RecordProgress 原子地累计完成/失败计数, 满额时会话状态置为 completed
	RecordProgress(ctx context.Context, token string, completed, failed int) (*models.UploadSession, error)
}

type sessionService struct {
	sessions repositories.UploadSessionRepository
	cfg      *config.Config
}

func NewSessionService(sessions repositories.UploadSessionRepository, cfg *config.Config) SessionService {
	return &sessionService{
		sessions: sessions,
		cfg:      cfg,
	}
}

func (s *sessionService) CreateSession(ctx context.Context, uploaderID uint64, req *models.CreateSessionRequest) (*models.UploadSession, error) {
	category, err := ParseCategory(req.Category)
	if err != nil {
		return nil, err
	}
	if req.TotalFiles <= 0 {
		return nil, xerr.NewCodeError(xerr.CodeValidationFailed,
			fmt.Errorf("%w: total_files 必须大于 0", xerr.ErrInvalidParams))
	}

	session := &models.UploadSession{
		SessionToken:   uuid.NewString(),
		UploaderID:     uploaderID,
		Category:       category,
		TotalFiles:     req.TotalFiles,
		CompletedFiles: 0,
		FailedFiles:    0,
		Status:         models.UploadStatusUploading,
		ExpiresAt:      time.Now().Add(s.cfg.Storage.SessionExpiry),
		Metadata:       req.Metadata,
		CommunityID:    req.CommunityID,
		CourseID:       req.CourseID,
		CourseModuleID: req.CourseModuleID,
		MaterialID:     req.MaterialID,
	}

	if err := s.sessions.Create(session); err != nil {
		return nil, xerr.NewCodeError(xerr.CodeDatabaseError, fmt.Errorf("%w: %v", xerr.ErrDatabaseError, err))
	}

	logger.Info("CreateSession: 上传会话创建成功",
		zap.String("token", session.SessionToken),
		zap.String("category", string(category)),
		zap.Int("totalFiles", req.TotalFiles))
	return session, nil
}

func (s *sessionService) GetSession(ctx context.Context, token string) (*models.UploadSession, error) {
	session, err := s.sessions.FindByToken(token)
	if err != nil {
		return nil, s.wrapSessionError(err)
	}
	return session, nil
}

func (s *sessionService) RecordProgress(ctx context.Context, token string, completed, failed int) (*models.UploadSession, error) {
	if completed < 0 || failed < 0 || completed+failed == 0 {
		return nil, xerr.NewCodeError(xerr.CodeValidationFailed,
			fmt.Errorf("%w: 计数增量必须为非负且至少一项大于 0", xerr.ErrInvalidParams))
	}

	session, err := s.sessions.IncrementProgress(token, completed, failed)
	if err != nil {
		return nil, s.wrapSessionError(err)
	}
	return session, nil
}

func (s *sessionService) wrapSessionError(err error) error {
	switch {
	case errors.Is(err, xerr.ErrUploadSessionNotFound):
		return xerr.NewCodeError(xerr.CodeUploadSessionNotFound, xerr.ErrUploadSessionNotFound)
	case errors.Is(err, xerr.ErrSessionFull):
		return xerr.NewCodeError(xerr.CodeSessionFull, xerr.ErrSessionFull)
	default:
		return xerr.NewCodeError(xerr.CodeDatabaseError, fmt.Errorf("%w: %v", xerr.ErrDatabaseError, err))
	}
}
