package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/raynor-z/go-edumedia/internal/models"
	"github.com/raynor-z/go-edumedia/internal/pkg/utils"
	"github.com/raynor-z/go-edumedia/internal/pkg/xerr"
	"github.com/raynor-z/go-edumedia/internal/services/media"
)

// PresignUpload 签发直传URL
// @Summary 签发上传URL
// @Description 验证类别规则后签发限时的预签名PUT URL并创建上传记录
// @Tags 媒体上传
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.PresignUploadRequest true "签发参数"
// @Success 200 {object} xerr.Response "签发成功"
// @Failure 400 {object} xerr.Response "参数或验证错误"
// @Failure 500 {object} xerr.Response "内部服务器错误"
// @Router /api/v1/uploads/presign [post]
func PresignUpload(uploadService media.UploadService) gin.HandlerFunc {
	return func(c *gin.Context) {
		currentUserID, ok := utils.GetUserIDFromContext(c)
		if !ok {
			return
		}
		var req models.PresignUploadRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			xerr.AbortWithError(c, http.StatusBadRequest, xerr.CodeInvalidParams, "Invalid request body")
			return
		}

		resp, err := uploadService.Issue(c, currentUserID, &req)
		if err != nil {
			respondError(c, err)
			return
		}
		xerr.Success(c, http.StatusOK, "Upload URL issued successfully", resp)
	}
}

// CompleteUpload 上报上传完成
// @Summary 完成上传
// @Description 上报实际大小, 重新校验后把记录置为 completed
// @Tags 媒体上传
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param upload_id path string true "上传记录ID"
// @Param request body models.CompleteUploadRequest true "完成参数"
// @Success 200 {object} xerr.Response "上传完成"
// @Failure 400 {object} xerr.Response "验证错误"
// @Failure 404 {object} xerr.Response "记录不存在"
// @Router /api/v1/uploads/{upload_id}/complete [post]
func CompleteUpload(uploadService media.UploadService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := utils.GetUserIDFromContext(c); !ok {
			return
		}
		var req models.CompleteUploadRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			xerr.AbortWithError(c, http.StatusBadRequest, xerr.CodeInvalidParams, "Invalid request body")
			return
		}

		record, err := uploadService.Complete(c, c.Param("upload_id"), &req)
		if err != nil {
			respondError(c, err)
			return
		}
		xerr.Success(c, http.StatusOK, "Upload completed successfully", record)
	}
}

// FailUpload 上报上传失败
// @Summary 上报上传失败
// @Description 尽力删除已写入的对象后把记录置为 failed
// @Tags 媒体上传
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param upload_id path string true "上传记录ID"
// @Param request body models.FailUploadRequest false "失败原因"
// @Success 200 {object} xerr.Response "已标记失败"
// @Failure 404 {object} xerr.Response "记录不存在"
// @Router /api/v1/uploads/{upload_id}/fail [post]
func FailUpload(uploadService media.UploadService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := utils.GetUserIDFromContext(c); !ok {
			return
		}
		var req models.FailUploadRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			// 失败上报允许空请求体
			req = models.FailUploadRequest{}
		}

		record, err := uploadService.Fail(c, c.Param("upload_id"), &req)
		if err != nil {
			respondError(c, err)
			return
		}
		xerr.Success(c, http.StatusOK, "Upload marked as failed", record)
	}
}

// GetUploadInfo 查询上传记录
// @Summary 查询上传记录
// @Tags 媒体上传
// @Produce json
// @Security BearerAuth
// @Param upload_id path string true "上传记录ID"
// @Success 200 {object} xerr.Response "记录详情"
// @Failure 404 {object} xerr.Response "记录不存在或已删除"
// @Router /api/v1/uploads/{upload_id} [get]
func GetUploadInfo(uploadService media.UploadService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := utils.GetUserIDFromContext(c); !ok {
			return
		}

		record, err := uploadService.GetInfo(c, c.Param("upload_id"))
		if err != nil {
			respondError(c, err)
			return
		}
		xerr.Success(c, http.StatusOK, "Upload record retrieved successfully", record)
	}
}

// GetDownloadURL 获取下载URL
// @Summary 获取下载URL
// @Description 公开记录返回固定URL, 私有记录签发限时GET URL
// @Tags 媒体上传
// @Produce json
// @Security BearerAuth
// @Param upload_id path string true "上传记录ID"
// @Param expiry_seconds query int false "签名有效期(秒)"
// @Success 200 {object} xerr.Response "下载URL"
// @Failure 404 {object} xerr.Response "记录不存在或不可下载"
// @Router /api/v1/uploads/{upload_id}/download [get]
func GetDownloadURL(uploadService media.UploadService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := utils.GetUserIDFromContext(c); !ok {
			return
		}

		var expirySeconds *int
		if raw := c.Query("expiry_seconds"); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil {
				xerr.Error(c, http.StatusBadRequest, xerr.CodeInvalidParams, "Invalid expiry_seconds")
				return
			}
			expirySeconds = &parsed
		}

		resp, err := uploadService.GetDownloadURL(c, c.Param("upload_id"), expirySeconds)
		if err != nil {
			respondError(c, err)
			return
		}
		xerr.Success(c, http.StatusOK, "Download URL issued successfully", resp)
	}
}

// DeleteUpload 删除上传
// @Summary 删除上传
// @Description 删除存储对象并软删除记录, 重复删除幂等返回
// @Tags 媒体上传
// @Produce json
// @Security BearerAuth
// @Param upload_id path string true "上传记录ID"
// @Success 200 {object} xerr.Response "已删除"
// @Failure 404 {object} xerr.Response "记录不存在"
// @Router /api/v1/uploads/{upload_id} [delete]
func DeleteUpload(uploadService media.UploadService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := utils.GetUserIDFromContext(c); !ok {
			return
		}

		record, err := uploadService.Delete(c, c.Param("upload_id"))
		if err != nil {
			respondError(c, err)
			return
		}
		xerr.Success(c, http.StatusOK, "Upload deleted successfully", record)
	}
}
