package media

import (
	"fmt"
	"strings"

	"github.com/raynor-z/go-edumedia/internal/models"
	"github.com/raynor-z/go-edumedia/internal/pkg/xerr"
)

const (
	sizeKB = int64(1) << 10
	sizeMB = int64(1) << 20
)

// ValidationRule 是单个上传类别的验证策略
// 每个类别绑定且仅绑定一条规则
type ValidationRule struct {
	MaxSizeBytes        int64
	AllowedContentTypes []string
	MaxWidth            int // 0 表示不限制像素尺寸
	MaxHeight           int
}

// RuleFor 返回类别对应的验证规则
// 类别为封闭枚举, 此处做穷举匹配; 未知类别是调用方错误, 在任何规则查询之前拒绝
func RuleFor(category models.UploadCategory) (ValidationRule, error) {
	switch category {
	case models.CategoryUserAvatar:
		return ValidationRule{
			MaxSizeBytes:        1 * sizeMB,
			AllowedContentTypes: []string{"image/jpeg", "image/png", "image/webp"},
			MaxWidth:            1024,
			MaxHeight:           1024,
		}, nil
	case models.CategoryCommunityBanner:
		return ValidationRule{
			MaxSizeBytes:        5 * sizeMB,
			AllowedContentTypes: []string{"image/jpeg", "image/png", "image/webp"},
			MaxWidth:            1920,
			MaxHeight:           1080,
		}, nil
	case models.CategoryCourseThumbnail, models.CategoryModuleThumbnail:
		return ValidationRule{
			MaxSizeBytes:        2 * sizeMB,
			AllowedContentTypes: []string{"image/jpeg", "image/png", "image/webp"},
			MaxWidth:            1280,
			MaxHeight:           720,
		}, nil
	case models.CategoryMaterialVideo:
		return ValidationRule{
			MaxSizeBytes:        500 * sizeMB,
			AllowedContentTypes: []string{"video/mp4", "video/webm", "video/quicktime"},
		}, nil
	case models.CategoryMaterialFile:
		return ValidationRule{
			MaxSizeBytes: 100 * sizeMB,
			AllowedContentTypes: []string{
				"application/pdf",
				"application/zip",
				"application/octet-stream",
				"image/jpeg",
				"image/png",
				"audio/mpeg",
			},
		}, nil
	case models.CategoryMaterialDoc:
		return ValidationRule{
			MaxSizeBytes: 50 * sizeMB,
			AllowedContentTypes: []string{
				"application/pdf",
				"application/msword",
				"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
				"application/vnd.openxmlformats-officedocument.presentationml.presentation",
				"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
				"text/plain",
			},
		}, nil
	default:
		return ValidationRule{}, xerr.NewCodeError(xerr.CodeUnknownCategory,
			fmt.Errorf("%w: %q", xerr.ErrUnknownCategory, category))
	}
}

// ParseCategory 把外部传入的字符串解析为封闭枚举
func ParseCategory(raw string) (models.UploadCategory, error) {
	category := models.UploadCategory(raw)
	if _, err := RuleFor(category); err != nil {
		return "", err
	}
	return category, nil
}

// ValidateSize 校验大小是否落在类别限制内
// 错误信息中带上类别的确切阈值, 客户端可以直接提示用户
func ValidateSize(category models.UploadCategory, size int64) error {
	rule, err := RuleFor(category)
	if err != nil {
		return err
	}
	if size <= 0 {
		return xerr.NewCodeError(xerr.CodeValidationFailed,
			fmt.Errorf("%w: 文件大小必须大于 0", xerr.ErrInvalidParams))
	}
	if size > rule.MaxSizeBytes {
		return xerr.NewCodeError(xerr.CodeFileTooLarge,
			fmt.Errorf("%w: %s 类别最大允许 %s", xerr.ErrFileTooLarge, category, HumanSize(rule.MaxSizeBytes)))
	}
	return nil
}

// ValidateContentType 校验内容类型是否在类别允许集合内
// 错误信息中列出完整的允许类型清单
func ValidateContentType(category models.UploadCategory, contentType string) error {
	rule, err := RuleFor(category)
	if err != nil {
		return err
	}
	for _, allowed := range rule.AllowedContentTypes {
		if contentType == allowed {
			return nil
		}
	}
	return xerr.NewCodeError(xerr.CodeContentTypeInvalid,
		fmt.Errorf("%w: %s 类别仅允许 [%s]", xerr.ErrContentTypeInvalid,
			category, strings.Join(rule.AllowedContentTypes, ", ")))
}

// HumanSize 把字节阈值转换为人类可读的形式, 规则表中的阈值都是MB的整数倍
func HumanSize(bytes int64) string {
	if bytes >= sizeMB && bytes%sizeMB == 0 {
		return fmt.Sprintf("%dMB", bytes/sizeMB)
	}
	if bytes >= sizeKB && bytes%sizeKB == 0 {
		return fmt.Sprintf("%dKB", bytes/sizeKB)
	}
	return fmt.Sprintf("%dB", bytes)
}

// ListValidationRules 导出完整规则表, 供客户端在发起上传前做本地预检
func ListValidationRules() []models.ValidationRuleInfo {
	infos := make([]models.ValidationRuleInfo, 0, len(models.AllUploadCategories))
	for _, category := range models.AllUploadCategories {
		rule, err := RuleFor(category)
		if err != nil {
			// AllUploadCategories 与 RuleFor 同步维护, 走到这里说明枚举表漏改
			continue
		}
		infos = append(infos, models.ValidationRuleInfo{
			Category:            category,
			Public:              IsPublicCategory(category),
			MaxSizeBytes:        rule.MaxSizeBytes,
			MaxSizeHuman:        HumanSize(rule.MaxSizeBytes),
			AllowedContentTypes: rule.AllowedContentTypes,
			MaxWidth:            rule.MaxWidth,
			MaxHeight:           rule.MaxHeight,
		})
	}
	return infos
}
