package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/raynor-z/go-edumedia/internal/models"
	"github.com/raynor-z/go-edumedia/internal/pkg/utils"
	"github.com/raynor-z/go-edumedia/internal/pkg/xerr"
	"github.com/raynor-z/go-edumedia/internal/services/media"
)

// CreateUploadSession 创建上传会话
// @Summary 创建上传会话
// @Description 为一批多文件上传创建聚合令牌, 有效期在创建时一次性设定
// @Tags 上传会话
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.CreateSessionRequest true "会话参数"
// @Success 200 {object} xerr.Response "会话创建成功"
// @Failure 400 {object} xerr.Response "参数错误"
// @Router /api/v1/uploads/sessions [post]
func CreateUploadSession(sessionService media.SessionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		currentUserID, ok := utils.GetUserIDFromContext(c)
		if !ok {
			return
		}
		var req models.CreateSessionRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			xerr.AbortWithError(c, http.StatusBadRequest, xerr.CodeInvalidParams, "Invalid request body")
			return
		}

		session, err := sessionService.CreateSession(c, currentUserID, &req)
		if err != nil {
			respondError(c, err)
			return
		}
		xerr.Success(c, http.StatusOK, "Upload session created successfully", session)
	}
}

// GetUploadSession 查询上传会话
// @Summary 查询上传会话
// @Tags 上传会话
// @Produce json
// @Security BearerAuth
// @Param token path string true "会话令牌"
// @Success 200 {object} xerr.Response "会话详情"
// @Failure 404 {object} xerr.Response "会话不存在"
// @Router /api/v1/uploads/sessions/{token} [get]
func GetUploadSession(sessionService media.SessionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := utils.GetUserIDFromContext(c); !ok {
			return
		}

		session, err := sessionService.GetSession(c, c.Param("token"))
		if err != nil {
			respondError(c, err)
			return
		}
		xerr.Success(c, http.StatusOK, "Upload session retrieved successfully", session)
	}
}
