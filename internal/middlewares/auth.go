package middlewares

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/raynor-z/go-edumedia/internal/config"
	"github.com/raynor-z/go-edumedia/internal/pkg/utils"
	"github.com/raynor-z/go-edumedia/internal/pkg/xerr"
)

// AuthMiddleware 解析平台签发的 Bearer Token 并把上传者身份写入上下文
// 登录与会话管理在身份服务, 这里只验证签名与有效期
func AuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 1. 从请求头获取 Token
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			xerr.AbortWithError(c, http.StatusUnauthorized, xerr.CodeUnauthorized, "Authorization header is required")
			return
		}

		// Token 格式通常是 "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			xerr.AbortWithError(c, http.StatusUnauthorized, xerr.CodeUnauthorized, "Invalid Authorization header format")
			return
		}
		tokenString := parts[1]

		// 2. 解析和验证 Token
		claims := &utils.Claims{}
		token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.New("unexpected signing method")
			}
			return []byte(cfg.JWT.SecretKey), nil
		})

		if err != nil {
			xerr.AbortWithError(c, http.StatusUnauthorized, xerr.CodeTokenInvalid, "Invalid or malformed token: "+err.Error())
			return
		}

		if !token.Valid {
			xerr.AbortWithError(c, http.StatusUnauthorized, xerr.CodeTokenInvalid, "Invalid token")
			return
		}

		// 3. 将用户信息存储到 Gin Context 中，以便后续 Handler 使用
		c.Set("userID", claims.UserID)
		c.Set("username", claims.Username)

		c.Next() // Token 有效，继续处理请求
	}
}
