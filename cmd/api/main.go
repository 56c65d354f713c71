package main

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"promarch/backend/internal/auth"
	"promarch/backend/internal/config"
	"promarch/backend/internal/health"
	"promarch/backend/internal/logger"
	"promarch/backend/internal/monitoring"
	"promarch/backend/internal/notify"
	"promarch/backend/internal/pool"
	"promarch/backend/internal/service"
	"promarch/backend/internal/session"
	"promarch/backend/internal/storage"
	"promarch/backend/internal/storage/memory"
	"promarch/backend/internal/storage/postgres"
	sqlstore "promarch/backend/internal/storage/sql"
	httptransport "promarch/backend/internal/transport/http"
)

// main 是后端 HTTP 服务的程序入口。
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("failed to load config: %v", err))
	}

	// 设置 Gin 模式（基于开发环境标志）
	if !cfg.Log.Development {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	// 初始化日志系统
	log, err := logger.New(logger.Config{
		Level:       cfg.Log.Level,
		Development: cfg.Log.Development,
		File:        cfg.Log.File,
	})
	if err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("starting promarch API server",
		zap.String("log_level", cfg.Log.Level),
		zap.Bool("development", cfg.Log.Development),
	)

	// 初始化存储层
	store, err := newStore(cfg, log)
	if err != nil {
		log.Fatal("failed to initialize storage", zap.Error(err))
	}
	defer store.Close()

	// 初始化会话存储
	sessions, err := newSessionStore(cfg, log)
	if err != nil {
		log.Fatal("failed to initialize session store", zap.Error(err))
	}
	defer sessions.Close()

	// 监控指标
	metrics := monitoring.New()

	// 通知邮件在工作协程里异步发送，不阻塞提交请求
	workers := pool.NewWorkerPool(4, 64, log)

	mailer := notify.NewMailer(cfg.Notify, log)
	if mailer.Enabled() {
		log.Info("email notification enabled",
			zap.String("smtp_host", cfg.Notify.Host),
			zap.String("to", cfg.Notify.To),
		)
	} else {
		log.Info("email notification disabled")
	}

	// 初始化服务层
	authService := auth.NewService(cfg, sessions)
	contactService := service.NewContactService(service.ContactServiceOptions{
		Repo:            store,
		Notifier:        mailer,
		Workers:         workers,
		Metrics:         metrics,
		Logger:          log,
		DefaultSubject:  cfg.Contact.DefaultSubject,
		MaxMessageBytes: cfg.Contact.MaxMessageBytes,
	})

	// 健康检查
	checker := health.NewChecker(store, log)

	// 创建 HTTP 路由
	router := httptransport.NewRouter(httptransport.RouterDependencies{
		Config:         cfg,
		ContactService: contactService,
		AuthService:    authService,
		Metrics:        metrics,
		Health:         checker,
		Logger:         log,
	})

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)

	server := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	// 信号处理
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 启动通知工作池
	workers.Start(ctx)

	// 启动 HTTP 服务器
	go func() {
		log.Info("API server listening", zap.String("address", addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("server error", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("shutdown signal received, gracefully shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("server shutdown error", zap.Error(err))
	} else {
		log.Info("server stopped cleanly")
	}

	// 等未发完的通知出队
	workers.Stop()
}

// newStore 按配置选择存储后端。
//
// database.type 为空使用内存存储（开发/测试），
// "mysql"/"postgres" 走 GORM，"pgx" 走原生 pgx 连接池。
func newStore(cfg *config.Config, log *zap.Logger) (storage.Store, error) {
	switch cfg.Database.Type {
	case "":
		log.Info("using in-memory storage (messages are lost on restart)")
		return memory.NewStore(), nil

	case "mysql", "postgres":
		log.Info("using SQL storage",
			zap.String("driver", cfg.Database.Type),
			zap.Int("max_open_conns", cfg.Database.MaxOpenConns),
		)
		return sqlstore.NewStore(
			cfg.Database.Type,
			cfg.Database.DSN,
			cfg.Database.MaxOpenConns,
			cfg.Database.MaxIdleConns,
			cfg.Database.ConnMaxLifetime,
		)

	case "pgx":
		log.Info("using pgx storage")
		return postgres.NewStore(&cfg.Database)

	default:
		return nil, fmt.Errorf("unsupported database type: %q", cfg.Database.Type)
	}
}

// newSessionStore 按配置选择会话存储后端。
//
// 单实例部署用内存即可；多实例部署必须用 Redis，
// 否则登录会话不能跨实例共享。
func newSessionStore(cfg *config.Config, log *zap.Logger) (session.Store, error) {
	switch cfg.Session.Backend {
	case "redis":
		log.Info("using redis session store", zap.String("address", cfg.Redis.Address))
		return session.NewRedisStore(&cfg.Redis)

	default:
		log.Info("using in-memory session store")
		return session.NewMemoryStore(), nil
	}
}
