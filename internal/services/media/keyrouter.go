package media

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/raynor-z/go-edumedia/internal/config"
	"github.com/raynor-z/go-edumedia/internal/models"
	"github.com/raynor-z/go-edumedia/internal/pkg/storage"
)

// IsPublicCategory 判断类别是否走公开路由
// 头像/横幅/缩略图对外公开展示, 课程资料一律私有
func IsPublicCategory(category models.UploadCategory) bool {
	switch category {
	case models.CategoryUserAvatar,
		models.CategoryCommunityBanner,
		models.CategoryCourseThumbnail,
		models.CategoryModuleThumbnail:
		return true
	default:
		return false
	}
}

// KeyRouter 根据类别与上传者身份推导存储桶和对象键
type KeyRouter struct {
	cfg   *config.StorageConfig
	store storage.ObjectStorage
}

func NewKeyRouter(cfg *config.StorageConfig, store storage.ObjectStorage) *KeyRouter {
	return &KeyRouter{cfg: cfg, store: store}
}

// singleBucket 判断是否只配置了一个桶
func (k *KeyRouter) singleBucket() bool {
	return k.cfg.PrivateBucket == "" || k.cfg.PrivateBucket == k.cfg.PublicBucket
}

// ChooseBucket 按类别公私分流; 单桶配置时所有类别落在同一个桶
func (k *KeyRouter) ChooseBucket(category models.UploadCategory) string {
	if k.singleBucket() {
		return k.cfg.PublicBucket
	}
	if IsPublicCategory(category) {
		return k.cfg.PublicBucket
	}
	return k.cfg.PrivateBucket
}

// BuildKey 组合出一个不透明且抗碰撞的对象键:
// [public/|private/]类别/上传者ID/时间戳_随机后缀_净化文件名.扩展名
// 路径前缀仅在单桶配置下出现; 唯一性由时间戳加随机后缀概率性保证,
// 在预期规模下足够, 不依赖锁
func (k *KeyRouter) BuildKey(category models.UploadCategory, originalFileName string, uploaderID uint64) string {
	var prefix string
	if k.singleBucket() {
		if IsPublicCategory(category) {
			prefix = "public/"
		} else {
			prefix = "private/"
		}
	}

	base, ext := sanitizeFileName(originalFileName)
	timestamp := time.Now().UnixMilli()
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]

	return fmt.Sprintf("%s%s/%d/%d_%s_%s%s", prefix, category, uploaderID, timestamp, suffix, base, ext)
}

// BuildPublicURL 为公开类别生成确定性的访问URL, 私有类别返回空串
// 优先使用配置的公开域名, 否则回退到存储后端的桶地址
func (k *KeyRouter) BuildPublicURL(category models.UploadCategory, bucketName, objectName string) string {
	if !IsPublicCategory(category) {
		return ""
	}
	if k.cfg.PublicBaseURL != "" {
		return strings.TrimRight(k.cfg.PublicBaseURL, "/") + "/" + objectName
	}
	return k.store.ObjectURL(bucketName, objectName)
}

// sanitizeFileName 拆出基础名与扩展名, 基础名只保留字母数字点划线
// 防止用户提供的文件名把路径分隔符或其他控制字符带进对象键
func sanitizeFileName(fileName string) (base string, ext string) {
	ext = strings.ToLower(filepath.Ext(fileName))
	base = strings.TrimSuffix(filepath.Base(fileName), filepath.Ext(fileName))

	var b strings.Builder
	for _, r := range base {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '-', r == '_':
			b.WriteRune(r)
		}
	}
	base = b.String()
	if len(base) > 64 {
		base = base[:64]
	}
	// filepath.Base 对空串返回 ".", 一并兜底
	if base == "" || strings.Trim(base, ".") == "" {
		base = "file"
	}

	// 扩展名同样只接受允许字符, 异常扩展直接丢弃
	if ext != "" {
		for _, r := range ext[1:] {
			if !(r >= 'a' && r <= 'z' || r >= '0' && r <= '9') {
				return base, ""
			}
		}
	}
	return base, ext
}
