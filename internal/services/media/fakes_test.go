package media

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/raynor-z/go-edumedia/internal/models"
	"github.com/raynor-z/go-edumedia/internal/pkg/xerr"
)

// fakeObjectStorage 只签发可预测的URL并记录删除调用, 不触网
type fakeObjectStorage struct {
	mu            sync.Mutex
	presignPutErr error
	presignGetErr error
	removeErr     error
	putCalls      int
	removed       []string
}

func (f *fakeObjectStorage) PresignedPutURL(ctx context.Context, bucketName, objectName, contentType string, expiry time.Duration) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.presignPutErr != nil {
		return "", f.presignPutErr
	}
	f.putCalls++
	return fmt.Sprintf("https://storage.test/%s/%s?signature=put", bucketName, objectName), nil
}

func (f *fakeObjectStorage) PresignedGetURL(ctx context.Context, bucketName, objectName string, expiry time.Duration) (string, error) {
	if f.presignGetErr != nil {
		return "", f.presignGetErr
	}
	return fmt.Sprintf("https://storage.test/%s/%s?signature=get", bucketName, objectName), nil
}

func (f *fakeObjectStorage) RemoveObject(ctx context.Context, bucketName, objectName string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.removeErr != nil {
		return f.removeErr
	}
	f.removed = append(f.removed, bucketName+"/"+objectName)
	return nil
}

func (f *fakeObjectStorage) IsBucketExist(ctx context.Context, bucketName string) (bool, error) {
	return true, nil
}

func (f *fakeObjectStorage) MakeBucket(ctx context.Context, bucketName string) error {
	return nil
}

func (f *fakeObjectStorage) ObjectURL(bucketName, objectName string) string {
	return fmt.Sprintf("https://storage.test/%s/%s", bucketName, objectName)
}

// fakeRecordRepo 在内存中复刻数据库仓库的条件更新语义:
// 状态迁移只在指定的起始状态下生效, 否则返回记录与 ErrStatusInvalid
type fakeRecordRepo struct {
	mu        sync.Mutex
	records   map[string]*models.UploadRecord
	createErr error
}

func newFakeRecordRepo() *fakeRecordRepo {
	return &fakeRecordRepo{records: make(map[string]*models.UploadRecord)}
}

func (r *fakeRecordRepo) Create(record *models.UploadRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return r.createErr
	}
	clone := *record
	r.records[record.UUID] = &clone
	return nil
}

func (r *fakeRecordRepo) FindByUUID(uuid string) (*models.UploadRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	record, ok := r.records[uuid]
	if !ok {
		return nil, xerr.ErrUploadNotFound
	}
	clone := *record
	return &clone, nil
}

func (r *fakeRecordRepo) MarkCompleted(uuid string, fileSize int64, publicURL string, metadata models.JSONMap) (*models.UploadRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	record, ok := r.records[uuid]
	if !ok {
		return nil, xerr.ErrUploadNotFound
	}
	if record.Status != models.UploadStatusUploading {
		clone := *record
		return &clone, xerr.ErrStatusInvalid
	}
	record.Status = models.UploadStatusCompleted
	record.FileSize = fileSize
	record.PublicURL = publicURL
	record.PresignedURL = nil
	record.PresignedExpiresAt = nil
	if metadata != nil {
		record.Metadata = metadata
	}
	clone := *record
	return &clone, nil
}

func (r *fakeRecordRepo) MarkFailed(uuid string, reason string) (*models.UploadRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	record, ok := r.records[uuid]
	if !ok {
		return nil, xerr.ErrUploadNotFound
	}
	if record.Status != models.UploadStatusUploading {
		clone := *record
		return &clone, xerr.ErrStatusInvalid
	}
	record.Status = models.UploadStatusFailed
	record.PresignedURL = nil
	record.PresignedExpiresAt = nil
	if reason != "" {
		record.FailReason = &reason
	}
	clone := *record
	return &clone, nil
}

func (r *fakeRecordRepo) MarkDeleted(uuid string, deletedAt time.Time) (*models.UploadRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	record, ok := r.records[uuid]
	if !ok {
		return nil, xerr.ErrUploadNotFound
	}
	if record.Status != models.UploadStatusCompleted {
		clone := *record
		return &clone, xerr.ErrStatusInvalid
	}
	record.Status = models.UploadStatusDeleted
	record.DeletedAt = &deletedAt
	clone := *record
	return &clone, nil
}

func (r *fakeRecordRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.records)
}

// progressCall 记录一次会话计数联动
type progressCall struct {
	token     string
	completed int
	failed    int
}

// fakeSessionRecorder 替代 SessionService, 只记录计数联动调用
type fakeSessionRecorder struct {
	mu          sync.Mutex
	calls       []progressCall
	progressErr error
}

func (f *fakeSessionRecorder) CreateSession(ctx context.Context, uploaderID uint64, req *models.CreateSessionRequest) (*models.UploadSession, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeSessionRecorder) GetSession(ctx context.Context, token string) (*models.UploadSession, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeSessionRecorder) RecordProgress(ctx context.Context, token string, completed, failed int) (*models.UploadSession, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.progressErr != nil {
		return nil, f.progressErr
	}
	f.calls = append(f.calls, progressCall{token: token, completed: completed, failed: failed})
	return &models.UploadSession{SessionToken: token}, nil
}

// fakeSessionRepo 在内存中复刻会话仓库的原子计数语义
type fakeSessionRepo struct {
	mu       sync.Mutex
	sessions map[string]*models.UploadSession
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: make(map[string]*models.UploadSession)}
}

func (r *fakeSessionRepo) Create(session *models.UploadSession) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *session
	r.sessions[session.SessionToken] = &clone
	return nil
}

func (r *fakeSessionRepo) FindByToken(token string) (*models.UploadSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	session, ok := r.sessions[token]
	if !ok {
		return nil, xerr.ErrUploadSessionNotFound
	}
	clone := *session
	return &clone, nil
}

func (r *fakeSessionRepo) IncrementProgress(token string, completedDelta, failedDelta int) (*models.UploadSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	session, ok := r.sessions[token]
	if !ok {
		return nil, xerr.ErrUploadSessionNotFound
	}
	if session.CompletedFiles+session.FailedFiles+completedDelta+failedDelta > session.TotalFiles {
		clone := *session
		return &clone, xerr.ErrSessionFull
	}
	session.CompletedFiles += completedDelta
	session.FailedFiles += failedDelta
	if session.IsFull() && session.Status == models.UploadStatusUploading {
		session.Status = models.UploadStatusCompleted
	}
	clone := *session
	return &clone, nil
}
