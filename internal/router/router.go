package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/raynor-z/go-edumedia/docs"
	"github.com/raynor-z/go-edumedia/internal/config"
	"github.com/raynor-z/go-edumedia/internal/handlers"
	"github.com/raynor-z/go-edumedia/internal/middlewares"
	"github.com/raynor-z/go-edumedia/internal/pkg/xerr"
	"github.com/raynor-z/go-edumedia/internal/services/media"
)

// InitRouter 注册全部路由
// 规则表与健康检查无需认证, 其余操作都要求平台签发的 Bearer Token
func InitRouter(uploadService media.UploadService, sessionService media.SessionService, cfg *config.Config) *gin.Engine {
	router := gin.Default() // 使用默认的 Gin 引擎，包含 Logger 和 Recovery 中间件

	// Health Check 路由
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := router.Group("/api/v1")
	{
		// 规则表公开, 客户端上传前预检不需要登录态
		v1.GET("/uploads/rules", handlers.ListValidationRules())

		// 需要认证的路由组
		authenticated := v1.Group("/")
		authenticated.Use(middlewares.AuthMiddleware(cfg))

		uploadGroup := authenticated.Group("/uploads")
		{
			uploadGroup.POST("/presign", handlers.PresignUpload(uploadService))
			uploadGroup.POST("/sessions", handlers.CreateUploadSession(sessionService))
			uploadGroup.GET("/sessions/:token", handlers.GetUploadSession(sessionService))
			uploadGroup.GET("/:upload_id", handlers.GetUploadInfo(uploadService))
			uploadGroup.POST("/:upload_id/complete", handlers.CompleteUpload(uploadService))
			uploadGroup.POST("/:upload_id/fail", handlers.FailUpload(uploadService))
			uploadGroup.GET("/:upload_id/download", handlers.GetDownloadURL(uploadService))
			uploadGroup.DELETE("/:upload_id", handlers.DeleteUpload(uploadService))
		}
	}

	router.NoRoute(func(c *gin.Context) {
		xerr.Error(c, http.StatusNotFound, xerr.CodeNotFound, "Route not found")
	})

	return router
}
