package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/raynor-z/go-edumedia/internal/pkg/xerr"
	"github.com/raynor-z/go-edumedia/internal/services/media"
)

// ListValidationRules 导出验证规则表
// @Summary 查询上传验证规则
// @Description 返回全部类别的大小限制/允许类型/尺寸限制, 供客户端本地预检
// @Tags 媒体上传
// @Produce json
// @Success 200 {object} xerr.Response "规则表"
// @Router /api/v1/uploads/rules [get]
func ListValidationRules() gin.HandlerFunc {
	return func(c *gin.Context) {
		xerr.Success(c, http.StatusOK, "Validation rules retrieved successfully", media.ListValidationRules())
	}
}
