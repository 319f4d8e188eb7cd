package models

import "time"

// UploadSession 对应 upload_sessions 表, 是一批多文件上传的聚合令牌
// 计数器只增不减, completed_files + failed_files 永远不超过 total_files
// 计数满额后状态置为 completed 并成为终态, 与成功/失败比例无关
type UploadSession struct {
	ID             uint64         `gorm:"primaryKey;autoIncrement" json:"-"`
	SessionToken   string         `gorm:"type:varchar(36);uniqueIndex;not null" json:"session_token"`
	UploaderID     uint64         `gorm:"not null;index" json:"uploader_id"`
	Category       UploadCategory `gorm:"type:varchar(32);not null" json:"category"`
	TotalFiles     int            `gorm:"not null" json:"total_files"`
	CompletedFiles int            `gorm:"not null;default:0" json:"completed_files"`
	FailedFiles    int            `gorm:"not null;default:0" json:"failed_files"`
	Status         UploadStatus   `gorm:"type:varchar(16);not null;default:'uploading'" json:"status"`
	ExpiresAt      time.Time      `gorm:"not null;index" json:"expires_at"` // 创建时一次性设定, 不做读取时强制校验
	Metadata       JSONMap        `gorm:"type:json" json:"metadata,omitempty"`
	CommunityID    *uint64        `gorm:"default:null;index" json:"community_id,omitempty"`
	CourseID       *uint64        `gorm:"default:null;index" json:"course_id,omitempty"`
	CourseModuleID *uint64        `gorm:"default:null;index" json:"course_module_id,omitempty"`
	MaterialID     *uint64        `gorm:"default:null;index" json:"material_id,omitempty"`
	CreatedAt      time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName 指定 GORM 使用的表名
func (UploadSession) TableName() string {
	return "upload_sessions"
}

// IsFull 判断会话计数是否已满
func (s *UploadSession) IsFull() bool {
	return s.CompletedFiles+s.FailedFiles >= s.TotalFiles
}
