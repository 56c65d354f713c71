package httptransport

import (
	"net/http"
	"time"

	gincors "github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"promarch/backend/internal/auth"
	"promarch/backend/internal/config"
	"promarch/backend/internal/health"
	"promarch/backend/internal/middleware"
	"promarch/backend/internal/monitoring"
	"promarch/backend/internal/service"
)

// RouterDependencies 路由器依赖项
type RouterDependencies struct {
	Config         *config.Config
	ContactService *service.ContactService
	AuthService    *auth.Service
	Metrics        *monitoring.Metrics // 可为 nil（测试环境）
	Health         *health.Checker     // 可为 nil（测试环境）
	Logger         *zap.Logger
}

// NewRouter 创建并返回 Gin 路由实例。
func NewRouter(deps RouterDependencies) *gin.Engine {
	router := gin.New()

	// 使用自定义中间件替代默认中间件
	router.Use(middleware.RecoveryHandler(deps.Logger))
	router.Use(middleware.RequestLogger(deps.Logger))
	router.Use(middleware.SecurityHeaders())
	router.Use(middleware.BodySizeLimit(middleware.DefaultBodyLimit))

	if deps.Metrics != nil {
		router.Use(deps.Metrics.Middleware())
	}

	// CORS 配置。会话走 Cookie，跨域请求必须带凭证
	corsConfig := gincors.Config{
		AllowOrigins:     deps.Config.CORS.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}

	// 如果允许所有来源，则需清空凭证支持。
	for _, origin := range corsConfig.AllowOrigins {
		if origin == "*" {
			corsConfig.AllowCredentials = false
			break
		}
	}
	router.Use(gincors.New(corsConfig))

	// 创建处理器
	contactHandler := NewContactHandler(deps.ContactService, deps.Logger)
	adminHandler := NewAdminHandler(deps.AuthService, deps.Config.Session, deps.Metrics, deps.Logger)

	// 创建中间件
	sessionAuth := middleware.NewSessionAuth(deps.AuthService, deps.Config.Session.CookieName)

	// 登录限流：每 IP 每 3 秒放行一次尝试，突发 5 次
	loginRateLimit := middleware.LoginRateLimit(rate.Every(3*time.Second), 5, deps.Logger)

	// 健康检查。管理后台登录前会 HEAD 探测 /health
	router.GET("/health", func(c *gin.Context) {
		if deps.Health != nil && !deps.Health.Healthy() {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.HEAD("/health", func(c *gin.Context) {
		if deps.Health != nil && !deps.Health.Healthy() {
			c.Status(http.StatusServiceUnavailable)
			return
		}
		c.Status(http.StatusOK)
	})

	if deps.Health != nil {
		healthHandler := gin.WrapH(deps.Health.Handler())
		router.GET("/live", healthHandler)
		router.GET("/ready", healthHandler)
	}

	if deps.Metrics != nil {
		router.GET("/metrics", deps.Metrics.Handler())
	}

	// 业务 API。路径与线上前端的调用保持一致
	api := router.Group("/api")
	{
		// ========== Public Routes（无需认证的公开端点） ==========
		api.POST("/messages", contactHandler.submitMessage) // 联系表单提交
		api.GET("/jobs", contactHandler.listJobs)           // 在招职位列表

		// ========== Auth Routes ==========
		api.POST("/login", loginRateLimit, adminHandler.login)
		api.POST("/logout", adminHandler.logout)

		// ========== Admin Routes ==========
		admin := api.Group("")
		admin.Use(sessionAuth.RequireAdmin())
		{
			admin.GET("/messages", contactHandler.listMessages)           // 询盘列表
			admin.POST("/messages/delete", contactHandler.deleteMessage) // 删除询盘
		}
	}

	return router
}
