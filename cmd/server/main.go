package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/raynor-z/go-edumedia/internal/config"
	"github.com/raynor-z/go-edumedia/internal/pkg/logger"
	"go.uber.org/zap"
)

// @title go-edumedia API
// @version 1.0
// @description 学习平台媒体上传子系统: 签发直传URL并管理上传记录生命周期
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// 加载配置
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}

	// 初始化日志系统
	if err := os.MkdirAll("logs", 0755); err != nil {
		logger.Fatal("Failed to create logs directory", zap.Error(err))
	}
	logger.InitLogger(cfg.Log.OutputPath, cfg.Log.ErrorPath, cfg.Log.Level)
	defer logger.Sync() // 确保在应用退出时刷新所有缓冲的日志条目

	srv, err := NewServer(cfg)
	if err != nil {
		logger.Fatal("Failed to build server", zap.Error(err))
	}

	stopChan := make(chan os.Signal, 1)
	signal.Notify(stopChan, syscall.SIGINT, syscall.SIGTERM)

	srv.Run(context.Background(), stopChan)
}
