package models

import "time"

// AssociationIDs 汇总可选的关联实体标识, 各字段相互独立可空
// 来源系统允许同时设置多个关联, 此处按原样保留
type AssociationIDs struct {
	CommunityID    *uint64 `json:"community_id,omitempty"`
	CourseID       *uint64 `json:"course_id,omitempty"`
	CourseModuleID *uint64 `json:"course_module_id,omitempty"`
	MaterialID     *uint64 `json:"material_id,omitempty"`
}

// PresignUploadRequest 定义签发上传URL的请求体
type PresignUploadRequest struct {
	Category      string  `json:"category" binding:"required"`
	FileName      string  `json:"file_name" binding:"required"`
	ContentType   string  `json:"content_type" binding:"required"`
	FileSize      *int64  `json:"file_size"`      // 客户端声明的大小, 可选, 提供时做前置校验
	ExpirySeconds *int    `json:"expiry_seconds"` // 可选, 有上限, 缺省一小时
	Metadata      JSONMap `json:"metadata"`
	AssociationIDs
}

// PresignUploadResponse 定义签发上传URL的响应体
type PresignUploadResponse struct {
	UploadID     string    `json:"upload_id"`
	PresignedURL string    `json:"presigned_url"`
	StorageKey   string    `json:"storage_key"`
	Bucket       string    `json:"bucket"`
	PublicURL    string    `json:"public_url,omitempty"` // 私有类别为空
	ExpiresAt    time.Time `json:"expires_at"`
}

// CompleteUploadRequest 定义完成上传的请求体
type CompleteUploadRequest struct {
	FileSize     int64   `json:"file_size" binding:"required,gt=0"` // 实际上传字节数, 重新过一遍大小规则
	Metadata     JSONMap `json:"metadata"`
	SessionToken string  `json:"session_token"` // 可选, 提供时联动会话计数
}

// FailUploadRequest 定义上报上传失败的请求体
type FailUploadRequest struct {
	Reason       string `json:"reason"`
	SessionToken string `json:"session_token"` // 可选, 提供时联动会话计数
}

// DownloadURLResponse 定义下载URL的响应体
type DownloadURLResponse struct {
	URL       string     `json:"url"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"` // 公开URL无过期时间
}

// CreateSessionRequest 定义创建上传会话的请求体
type CreateSessionRequest struct {
	Category   string  `json:"category" binding:"required"`
	TotalFiles int     `json:"total_files" binding:"required,gt=0"`
	Metadata   JSONMap `json:"metadata"`
	AssociationIDs
}

// ValidationRuleInfo 是对外导出的单条验证规则, 供客户端做本地预检
type ValidationRuleInfo struct {
	Category            UploadCategory `json:"category"`
	Public              bool           `json:"public"`
	MaxSizeBytes        int64          `json:"max_size_bytes"`
	MaxSizeHuman        string         `json:"max_size_human"`
	AllowedContentTypes []string       `json:"allowed_content_types"`
	MaxWidth            int            `json:"max_width,omitempty"`
	MaxHeight           int            `json:"max_height,omitempty"`
}
