package media

import (
	"regexp"
	"strings"
	"testing"

	"github.com/raynor-z/go-edumedia/internal/config"
	"github.com/raynor-z/go-edumedia/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDualBucketRouter() (*KeyRouter, *fakeObjectStorage) {
	store := &fakeObjectStorage{}
	cfg := &config.StorageConfig{
		PublicBucket:  "edumedia-public",
		PrivateBucket: "edumedia-private",
	}
	return NewKeyRouter(cfg, store), store
}

func newSingleBucketRouter() (*KeyRouter, *fakeObjectStorage) {
	store := &fakeObjectStorage{}
	cfg := &config.StorageConfig{
		PublicBucket: "edumedia",
	}
	return NewKeyRouter(cfg, store), store
}

func TestIsPublicCategory(t *testing.T) {
	assert.True(t, IsPublicCategory(models.CategoryUserAvatar))
	assert.True(t, IsPublicCategory(models.CategoryCommunityBanner))
	assert.True(t, IsPublicCategory(models.CategoryCourseThumbnail))
	assert.True(t, IsPublicCategory(models.CategoryModuleThumbnail))
	assert.False(t, IsPublicCategory(models.CategoryMaterialVideo))
	assert.False(t, IsPublicCategory(models.CategoryMaterialFile))
	assert.False(t, IsPublicCategory(models.CategoryMaterialDoc))
}

func TestChooseBucketDualBucket(t *testing.T) {
	router, _ := newDualBucketRouter()
	assert.Equal(t, "edumedia-public", router.ChooseBucket(models.CategoryUserAvatar))
	assert.Equal(t, "edumedia-private", router.ChooseBucket(models.CategoryMaterialVideo))
}

func TestChooseBucketSingleBucket(t *testing.T) {
	router, _ := newSingleBucketRouter()
	assert.Equal(t, "edumedia", router.ChooseBucket(models.CategoryUserAvatar))
	assert.Equal(t, "edumedia", router.ChooseBucket(models.CategoryMaterialVideo))
}

func TestBuildKeyComposition(t *testing.T) {
	router, _ := newDualBucketRouter()
	key := router.BuildKey(models.CategoryMaterialVideo, "lecture 01.mp4", 42)

	// 类别/上传者ID/时间戳_随机后缀_净化文件名.扩展名; 双桶配置无公私前缀
	pattern := regexp.MustCompile(`^material_video/42/\d+_[0-9a-f]{8}_lecture01\.mp4$`)
	assert.Regexp(t, pattern, key)
}

func TestBuildKeySingleBucketPrefix(t *testing.T) {
	router, _ := newSingleBucketRouter()

	publicKey := router.BuildKey(models.CategoryUserAvatar, "me.png", 7)
	assert.True(t, strings.HasPrefix(publicKey, "public/user_avatar/7/"))

	privateKey := router.BuildKey(models.CategoryMaterialDoc, "notes.pdf", 7)
	assert.True(t, strings.HasPrefix(privateKey, "private/material_document/7/"))
}

func TestBuildKeyCollisionResistance(t *testing.T) {
	router, _ := newDualBucketRouter()
	first := router.BuildKey(models.CategoryUserAvatar, "same.png", 1)
	second := router.BuildKey(models.CategoryUserAvatar, "same.png", 1)
	assert.NotEqual(t, first, second)
}

func TestSanitizeFileName(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantBase string
		wantExt  string
	}{
		{"正常文件名", "report.pdf", "report", ".pdf"},
		{"路径穿越", "../../etc/passwd", "passwd", ""},
		{"空格与特殊字符", "my file (final)!.png", "myfilefinal", ".png"},
		{"中文字符被剔除", "课件.pptx", "file", ".pptx"},
		{"扩展名大写归一", "PHOTO.JPG", "PHOTO", ".jpg"},
		{"异常扩展名丢弃", "archive.t@r", "archive", ""},
		{"空文件名兜底", "", "file", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			base, ext := sanitizeFileName(tt.input)
			assert.Equal(t, tt.wantBase, base)
			assert.Equal(t, tt.wantExt, ext)
		})
	}
}

func TestSanitizeFileNameLengthCap(t *testing.T) {
	base, ext := sanitizeFileName(strings.Repeat("a", 200) + ".txt")
	assert.Len(t, base, 64)
	assert.Equal(t, ".txt", ext)
}

func TestBuildPublicURLPrivateCategory(t *testing.T) {
	router, _ := newDualBucketRouter()
	url := router.BuildPublicURL(models.CategoryMaterialVideo, "edumedia-private", "material_video/1/key.mp4")
	assert.Empty(t, url)
}

func TestBuildPublicURLWithBaseURL(t *testing.T) {
	store := &fakeObjectStorage{}
	cfg := &config.StorageConfig{
		PublicBucket:  "edumedia-public",
		PrivateBucket: "edumedia-private",
		PublicBaseURL: "https://cdn.example.com/",
	}
	router := NewKeyRouter(cfg, store)

	url := router.BuildPublicURL(models.CategoryUserAvatar, "edumedia-public", "user_avatar/1/a.png")
	require.Equal(t, "https://cdn.example.com/user_avatar/1/a.png", url)
}

func TestBuildPublicURLFallbackToStore(t *testing.T) {
	router, _ := newDualBucketRouter()
	url := router.BuildPublicURL(models.CategoryUserAvatar, "edumedia-public", "user_avatar/1/a.png")
	assert.Equal(t, "https://storage.test/edumedia-public/user_avatar/1/a.png", url)
}
