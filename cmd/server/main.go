package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"os/signal"
	"syscall"

	log "github.com/sirupsen/logrus"

	"github.com/palemoky/super-rummy/internal/config"
	"github.com/palemoky/super-rummy/internal/logger"
	"github.com/palemoky/super-rummy/internal/server"
)

func main() {
	configPath := flag.String("config", "configs/config.yaml", "配置文件路径")
	flag.Parse()

	// 配置文件不存在时只用默认值和环境变量
	path := *configPath
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		log.Warnf("配置文件 %s 不存在，使用默认配置", path)
		path = ""
	}
	cfg, err := config.Load(path)
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}

	if err := logger.Init(cfg.Log); err != nil {
		log.Fatalf("初始化日志失败: %v", err)
	}
	defer logger.Close()

	srv, err := server.NewServer(cfg)
	if err != nil {
		log.Fatalf("创建服务器失败: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Info("🃏 Super Rummy 服务器启动中...")
	if err := srv.Run(ctx); err != nil {
		log.Errorf("服务器异常退出: %v", err)
		logger.Close()
		os.Exit(1)
	}
}
