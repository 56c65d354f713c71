package health

import (
	"net/http"

	"github.com/heptiolabs/healthcheck"
	"go.uber.org/zap"

	"promarch/backend/internal/storage"
)

// Checker 健康检查器。
//
// 管理后台在登录前会先探测 API 是否在线（HEAD /health），
// 同时运维侧需要 liveness/readiness 区分进程存活与依赖可用。
type Checker struct {
	health healthcheck.Handler
	store  storage.Store
	logger *zap.Logger
}

// NewChecker 创建健康检查器
func NewChecker(store storage.Store, logger *zap.Logger) *Checker {
	if logger == nil {
		logger = zap.NewNop()
	}

	hc := &Checker{
		health: healthcheck.NewHandler(),
		store:  store,
		logger: logger,
	}

	hc.addChecks()

	return hc
}

// addChecks 添加健康检查
func (hc *Checker) addChecks() {
	// 进程存活与存储可用分开：存储故障时进程不该被重启
	hc.health.AddLivenessCheck("goroutine-count", healthcheck.GoroutineCountCheck(500))

	hc.health.AddReadinessCheck("store", func() error {
		return hc.store.Health()
	})
}

// Handler 返回健康检查处理器（/live 与 /ready）
func (hc *Checker) Handler() http.Handler {
	return hc.health
}

// Healthy 汇总当前健康状态，供 /health 简单端点使用
func (hc *Checker) Healthy() bool {
	if err := hc.store.Health(); err != nil {
		hc.logger.Warn("store health check failed", zap.Error(err))
		return false
	}
	return true
}
