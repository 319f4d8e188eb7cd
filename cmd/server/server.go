package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/raynor-z/go-edumedia/internal/config"
	"github.com/raynor-z/go-edumedia/internal/pkg/cache"
	"github.com/raynor-z/go-edumedia/internal/pkg/logger"
	"github.com/raynor-z/go-edumedia/internal/repositories"
	"github.com/raynor-z/go-edumedia/internal/router"
	"github.com/raynor-z/go-edumedia/internal/services/media"
	"github.com/raynor-z/go-edumedia/internal/setup"
)

type Server struct {
	router      *gin.Engine
	httpServer  *http.Server
	db          *gorm.DB
	redisClient *redis.Client
}

// NewServer 负责构建所有依赖
func NewServer(cfg *config.Config) (*Server, error) {
	// 初始化数据库连接
	mysqlDB, err := setup.InitMySQL(&cfg.MySQL)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize MySQL: %w", err)
	}

	// 初始化 Redis 连接
	redisClient, err := setup.InitRedis(context.Background(), &cfg.Redis)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Redis: %w", err)
	}

	// 初始化对象存储并确保存储桶就绪
	store, err := setup.InitStorage(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize object storage: %w", err)
	}

	// 初始化 Repositories, 记录仓库外面包一层读穿透缓存
	redisCache := cache.NewRedisCache(redisClient)
	recordRepo := repositories.NewCachedUploadRecordRepository(
		repositories.NewDBUploadRecordRepository(mysqlDB), redisCache)
	sessionRepo := repositories.NewDBUploadSessionRepository(mysqlDB)

	// 初始化 Services
	keyRouter := media.NewKeyRouter(&cfg.Storage, store)
	sessionService := media.NewSessionService(sessionRepo, cfg)
	uploadService := media.NewUploadService(recordRepo, sessionService, keyRouter, store, cfg)

	// 初始化 Gin 引擎和注册路由
	engine := router.InitRouter(uploadService, sessionService, cfg)

	addr := ":" + cfg.Server.Port
	logger.Info(fmt.Sprintf("Server is running on %s", cfg.Server.Port))
	httpServer := &http.Server{
		Addr:    addr,
		Handler: engine,
	}

	return &Server{
		router:      engine,
		httpServer:  httpServer,
		db:          mysqlDB,
		redisClient: redisClient,
	}, nil
}

// Run 启动服务器并处理优雅关机
func (s *Server) Run(ctx context.Context, stopChan chan os.Signal) {
	// GORM v2 依赖连接池，通常不需要手动关闭。Redis需要
	defer s.redisClient.Close()

	// 启动 HTTP 服务器
	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	// 等待停止信号
	<-stopChan
	logger.Info("Shutting down server...")

	// 优雅关机
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}
	logger.Info("Server exited gracefully")
}
