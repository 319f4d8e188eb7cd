package media

import (
	"testing"

	"github.com/raynor-z/go-edumedia/internal/models"
	"github.com/raynor-z/go-edumedia/internal/pkg/xerr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRuleForKnownCategories(t *testing.T) {
	tests := []struct {
		category models.UploadCategory
		maxSize  int64
	}{
		{models.CategoryUserAvatar, 1 * sizeMB},
		{models.CategoryCommunityBanner, 5 * sizeMB},
		{models.CategoryCourseThumbnail, 2 * sizeMB},
		{models.CategoryModuleThumbnail, 2 * sizeMB},
		{models.CategoryMaterialVideo, 500 * sizeMB},
		{models.CategoryMaterialFile, 100 * sizeMB},
		{models.CategoryMaterialDoc, 50 * sizeMB},
	}
	for _, tt := range tests {
		t.Run(string(tt.category), func(t *testing.T) {
			rule, err := RuleFor(tt.category)
			require.NoError(t, err)
			assert.Equal(t, tt.maxSize, rule.MaxSizeBytes)
			assert.NotEmpty(t, rule.AllowedContentTypes)
		})
	}
}

func TestRuleForUnknownCategory(t *testing.T) {
	_, err := RuleFor(models.UploadCategory("course_banner"))
	require.Error(t, err)
	assert.Equal(t, xerr.CodeUnknownCategory, xerr.CodeOf(err))
}

func TestParseCategory(t *testing.T) {
	category, err := ParseCategory("material_video")
	require.NoError(t, err)
	assert.Equal(t, models.CategoryMaterialVideo, category)

	_, err = ParseCategory("profile_picture")
	require.Error(t, err)
	assert.Equal(t, xerr.CodeUnknownCategory, xerr.CodeOf(err))
	assert.ErrorIs(t, err, xerr.ErrUnknownCategory)
}

func TestValidateSize(t *testing.T) {
	// 恰好等于阈值时放行
	assert.NoError(t, ValidateSize(models.CategoryUserAvatar, 1*sizeMB))
	assert.NoError(t, ValidateSize(models.CategoryMaterialVideo, 500*sizeMB))

	// 超过一个字节即拒绝
	err := ValidateSize(models.CategoryUserAvatar, 1*sizeMB+1)
	require.Error(t, err)
	assert.Equal(t, xerr.CodeFileTooLarge, xerr.CodeOf(err))
	assert.ErrorIs(t, err, xerr.ErrFileTooLarge)

	// 错误信息里带确切阈值, 客户端可直接展示
	err = ValidateSize(models.CategoryMaterialVideo, 600*sizeMB)
	require.Error(t, err)
	assert.Equal(t, xerr.CodeFileTooLarge, xerr.CodeOf(err))
	assert.Contains(t, err.Error(), "500MB")

	err = ValidateSize(models.CategoryMaterialVideo, 0)
	require.Error(t, err)
	assert.Equal(t, xerr.CodeValidationFailed, xerr.CodeOf(err))

	err = ValidateSize(models.CategoryMaterialVideo, -1)
	require.Error(t, err)
	assert.Equal(t, xerr.CodeValidationFailed, xerr.CodeOf(err))
}

func TestValidateContentType(t *testing.T) {
	assert.NoError(t, ValidateContentType(models.CategoryUserAvatar, "image/png"))
	assert.NoError(t, ValidateContentType(models.CategoryMaterialVideo, "video/mp4"))

	err := ValidateContentType(models.CategoryUserAvatar, "image/gif")
	require.Error(t, err)
	assert.Equal(t, xerr.CodeContentTypeInvalid, xerr.CodeOf(err))
	// 错误信息列出允许的类型清单
	assert.Contains(t, err.Error(), "image/jpeg")
	assert.Contains(t, err.Error(), "image/webp")

	err = ValidateContentType(models.CategoryMaterialVideo, "application/pdf")
	require.Error(t, err)
	assert.Equal(t, xerr.CodeContentTypeInvalid, xerr.CodeOf(err))
}

func TestHumanSize(t *testing.T) {
	assert.Equal(t, "1MB", HumanSize(1*sizeMB))
	assert.Equal(t, "500MB", HumanSize(500*sizeMB))
	assert.Equal(t, "512KB", HumanSize(512*sizeKB))
	assert.Equal(t, "100B", HumanSize(100))
}

func TestListValidationRules(t *testing.T) {
	infos := ListValidationRules()
	require.Len(t, infos, len(models.AllUploadCategories))

	byCategory := make(map[models.UploadCategory]models.ValidationRuleInfo, len(infos))
	for _, info := range infos {
		byCategory[info.Category] = info
	}

	avatar := byCategory[models.CategoryUserAvatar]
	assert.True(t, avatar.Public)
	assert.Equal(t, "1MB", avatar.MaxSizeHuman)
	assert.Equal(t, 1024, avatar.MaxWidth)

	video := byCategory[models.CategoryMaterialVideo]
	assert.False(t, video.Public)
	assert.Equal(t, "500MB", video.MaxSizeHuman)
	assert.Zero(t, video.MaxWidth)
}
