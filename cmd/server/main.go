package main

import (
	"github.com/barakahchain/charity-platform-sub001/internal/chain"
	"github.com/barakahchain/charity-platform-sub001/internal/config"
	"github.com/barakahchain/charity-platform-sub001/internal/database"
	"github.com/barakahchain/charity-platform-sub001/internal/ethereum"
	"github.com/barakahchain/charity-platform-sub001/internal/logger"
	"github.com/barakahchain/charity-platform-sub001/internal/metadata"
	"github.com/barakahchain/charity-platform-sub001/internal/router"
	"github.com/barakahchain/charity-platform-sub001/internal/task"
	"github.com/gin-gonic/gin"
)

func main() {
	// 加载配置
	cfg := config.Load()

	// 初始化日志
	initLogger(cfg.Log)
	defer logger.Sync()

	// 初始化数据库
	db, err := database.Init(cfg.Database)
	if err != nil {
		logger.Fatal("Failed to initialize database: %v", err)
	}

	// 初始化合约事件解码器
	contract, err := chain.NewContract(cfg.Chain)
	if err != nil {
		logger.Fatal("Failed to initialize contract: %v", err)
	}

	// 初始化以太坊客户端（未配置RPC时跳过，部署确认功能不可用）
	var ethClient *ethereum.Client
	if cfg.Chain.RpcUrl != "" {
		ethClient, err = ethereum.Init(cfg.Chain)
		if err != nil {
			logger.Fatal("Failed to initialize ethereum client: %v", err)
		}
	} else {
		logger.Warn("Chain RPC not configured, deploy confirmation disabled")
	}

	// 初始化元数据解析器
	resolver := metadata.NewResolver(cfg.Ipfs)

	// 设置Gin模式
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	// 初始化路由
	r := router.Setup(db, resolver, ethClient, contract)

	// 启动定时任务
	manager := task.Start(db, ethClient, contract, resolver, cfg)
	defer manager.Stop()

	// 启动服务器
	logger.Info("Server starting on port %s", cfg.Server.Port)
	if err := r.Run(":" + cfg.Server.Port); err != nil {
		logger.Fatal("Failed to start server: %v", err)
	}
}

// initLogger 根据配置初始化默认日志器
func initLogger(cfg config.LogConfig) {
	level := logger.ParseLogLevel(cfg.Level)

	if cfg.Output == "file" && cfg.File != "" {
		l, err := logger.NewWithRotation(level, logger.RotationConfig{Filename: cfg.File})
		if err == nil {
			logger.SetDefaultLogger(l)
			return
		}
		logger.Warn("Failed to create file logger, falling back to stdout: %v", err)
	}

	if l, err := logger.New(level); err == nil {
		logger.SetDefaultLogger(l)
	}
}
