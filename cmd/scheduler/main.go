package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"mentorhub/backend/config"
	"mentorhub/backend/internal/dto"
	"mentorhub/backend/internal/model"
	"mentorhub/backend/internal/repository"
	"mentorhub/backend/internal/service"
	applogger "mentorhub/backend/pkg/logger"
)

func main() {
	// 1. 加载配置
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "加载配置失败: %v\n", err)
		os.Exit(1)
	}

	// 2. 初始化日志
	logger, err := applogger.NewLogger(&cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "初始化日志失败: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("场次调度守护进程启动中...",
		zap.Duration("reconcile_interval", cfg.Scheduler.ReconcileInterval),
		zap.String("log_level", cfg.Log.Level),
	)

	// 3. 依赖注入: Repository → Service
	repo := repository.NewRepository()
	svc := service.NewService(cfg, repo, logger)

	// 3.1 以配置默认值播种全局限额策略
	ctx := context.Background()
	global := &model.Policy{
		MainMonthlyMaxHours:      cfg.Policy.MainMonthlyMaxHours,
		AssistantMonthlyMaxHours: cfg.Policy.AssistantMonthlyMaxHours,
		DailyMaxApplications:     cfg.Policy.DailyMaxApplications,
		AllowMultiplePerDay:      cfg.Policy.AllowMultiplePerDay,
	}
	if err := repo.Policy.SetGlobal(ctx, global); err != nil {
		logger.Fatal("初始化全局限额策略失败", zap.Error(err))
	}

	// 4. 订阅状态迁移事件（外部界面层在此接入刷新）
	svc.Scheduler.Subscribe(func(event dto.TransitionEvent) {
		logger.Info("收到场次状态迁移事件",
			zap.String("event_id", event.EventID),
			zap.String("session_id", event.SessionID),
			zap.String("from", string(event.From)),
			zap.String("to", string(event.To)),
		)
	})

	// 5. 启动调度器（含一次停机追赶扫描）
	if err := svc.Scheduler.Start(ctx); err != nil {
		logger.Fatal("启动场次调度器失败", zap.Error(err))
	}

	// 6. 监听系统信号，优雅关闭
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	logger.Info("收到关闭信号，开始优雅关闭...", zap.String("signal", sig.String()))

	svc.Scheduler.Stop()

	logger.Info("调度器已关闭")
}
