package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// UploadStatus 表示一次上传记录的生命周期状态
// 状态机: uploading → completed / failed; completed → deleted
// failed 与 deleted 为终态, 不存在任何出边
type UploadStatus string

const (
	UploadStatusUploading UploadStatus = "uploading"
	UploadStatusCompleted UploadStatus = "completed"
	UploadStatusFailed    UploadStatus = "failed"
	UploadStatusDeleted   UploadStatus = "deleted"
)

// UploadCategory 是封闭的上传类别枚举, 每个类别绑定唯一一条验证规则
// 类别同时决定公开/私有路由 (见 services/media 的 KeyRouter)
type UploadCategory string

const (
	CategoryUserAvatar      UploadCategory = "user_avatar"
	CategoryCommunityBanner UploadCategory = "community_banner"
	CategoryCourseThumbnail UploadCategory = "course_thumbnail"
	CategoryModuleThumbnail UploadCategory = "module_thumbnail"
	CategoryMaterialVideo   UploadCategory = "material_video"
	CategoryMaterialFile    UploadCategory = "material_file"
	CategoryMaterialDoc     UploadCategory = "material_document"
)

// AllUploadCategories 按固定顺序列出全部类别, 供规则表导出使用
var AllUploadCategories = []UploadCategory{
	CategoryUserAvatar,
	CategoryCommunityBanner,
	CategoryCourseThumbnail,
	CategoryModuleThumbnail,
	CategoryMaterialVideo,
	CategoryMaterialFile,
	CategoryMaterialDoc,
}

// JSONMap 以 JSON 文本形式落库的自由元数据
type JSONMap map[string]any

func (m JSONMap) Value() (driver.Value, error) {
	if m == nil {
		return nil, nil
	}
	data, err := json.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("序列化元数据失败: %w", err)
	}
	return string(data), nil
}

func (m *JSONMap) Scan(value any) error {
	if value == nil {
		*m = nil
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("元数据列类型异常: %T", value)
	}
	if len(data) == 0 {
		*m = nil
		return nil
	}
	return json.Unmarshal(data, m)
}

// UploadRecord 对应 upload_records 表, 表示一次物理上传尝试
// 关联ID (社区/课程/课程模块/资料) 相互独立可空, 允许同时设置多个
type UploadRecord struct {
	ID                 uint64         `gorm:"primaryKey;autoIncrement" json:"-"`
	UUID               string         `gorm:"type:varchar(36);uniqueIndex;not null" json:"id"` // 对外暴露的记录标识
	UploaderID         uint64         `gorm:"not null;index" json:"uploader_id"`
	Category           UploadCategory `gorm:"type:varchar(32);not null;index" json:"category"`
	OriginalName       string         `gorm:"type:varchar(255);not null" json:"original_name"`
	StorageKey         string         `gorm:"type:varchar(512);not null" json:"storage_key"`
	Bucket             string         `gorm:"type:varchar(64);not null" json:"bucket"`
	FileSize           int64          `gorm:"type:bigint;not null;default:0" json:"file_size"` // 完成前恒为 0
	ContentType        string         `gorm:"type:varchar(128);not null" json:"content_type"`
	Status             UploadStatus   `gorm:"type:varchar(16);not null;default:'uploading';index" json:"status"`
	PublicURL          string         `gorm:"type:varchar(1024);not null;default:''" json:"public_url"` // 仅公开类别完成后非空
	PresignedURL       *string        `gorm:"type:varchar(2048);default:null" json:"presigned_url,omitempty"`
	PresignedExpiresAt *time.Time     `gorm:"default:null" json:"presigned_expires_at,omitempty"` // 仅 uploading 状态下有效
	FailReason         *string        `gorm:"type:varchar(512);default:null" json:"fail_reason,omitempty"`
	Metadata           JSONMap        `gorm:"type:json" json:"metadata,omitempty"`
	CommunityID        *uint64        `gorm:"default:null;index" json:"community_id,omitempty"`
	CourseID           *uint64        `gorm:"default:null;index" json:"course_id,omitempty"`
	CourseModuleID     *uint64        `gorm:"default:null;index" json:"course_module_id,omitempty"`
	MaterialID         *uint64        `gorm:"default:null;index" json:"material_id,omitempty"`
	CreatedAt          time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt          time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt          *time.Time     `gorm:"default:null" json:"deleted_at,omitempty"` // 软删除时间, 不使用 gorm.DeletedAt 以便删除后仍可读取
}

// TableName 指定 GORM 使用的表名
func (UploadRecord) TableName() string {
	return "upload_records"
}

// IsDeleted 判断记录是否已被软删除
func (r *UploadRecord) IsDeleted() bool {
	return r.Status == UploadStatusDeleted || r.DeletedAt != nil
}
