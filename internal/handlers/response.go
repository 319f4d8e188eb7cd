package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/raynor-z/go-edumedia/internal/pkg/xerr"
)

// respondError 把服务层错误映射为 HTTP 响应
// 验证类错误把具体原因透给客户端 (确切阈值/允许类型清单);
// 未找到与服务器内部错误只返回笼统信息, 不暴露内部细节
func respondError(c *gin.Context, err error) {
	code := xerr.CodeOf(err)
	status := httpStatusOf(code)

	message := err.Error()
	if status >= http.StatusInternalServerError {
		message = genericMessage(code)
	}

	xerr.Error(c, status, code, message)
}

// httpStatusOf 按业务码段推导 HTTP 状态码
func httpStatusOf(code int) int {
	switch {
	case code >= 50000:
		return http.StatusInternalServerError
	case code >= 40400 && code < 40500:
		return http.StatusNotFound
	case code >= 40100 && code < 40200:
		return http.StatusUnauthorized
	default:
		return http.StatusBadRequest
	}
}

// genericMessage 服务器内部错误统一返回哨兵文案
func genericMessage(code int) string {
	switch code {
	case xerr.CodeStorageError:
		return xerr.ErrStorageError.Error()
	case xerr.CodeDatabaseError:
		return xerr.ErrDatabaseError.Error()
	case xerr.CodeRecordSaveFailed:
		return xerr.ErrRecordSaveFailed.Error()
	default:
		return xerr.ErrInternalServer.Error()
	}
}
