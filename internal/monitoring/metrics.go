package monitoring

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics 监控指标
type Metrics struct {
	// HTTP 请求指标
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// 询盘指标
	SubmissionsTotal    prometheus.Counter
	SubmissionsRejected prometheus.Counter
	MessagesDeleted     prometheus.Counter

	// 通知指标
	NotificationsSent   prometheus.Counter
	NotificationsFailed prometheus.Counter

	// 认证指标
	LoginSuccessTotal prometheus.Counter
	LoginFailureTotal prometheus.Counter
}

// New 创建并注册监控指标
func New() *Metrics {
	return &Metrics{
		HTTPRequestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "promarch_http_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"method", "path", "status"}),

		HTTPRequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "promarch_http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path"}),

		SubmissionsTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "promarch_submissions_total",
			Help: "Total number of accepted contact submissions",
		}),

		SubmissionsRejected: promauto.NewCounter(prometheus.CounterOpts{
			Name: "promarch_submissions_rejected_total",
			Help: "Total number of rejected contact submissions",
		}),

		MessagesDeleted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "promarch_messages_deleted_total",
			Help: "Total number of deleted contact messages",
		}),

		NotificationsSent: promauto.NewCounter(prometheus.CounterOpts{
			Name: "promarch_notifications_sent_total",
			Help: "Total number of notification emails sent",
		}),

		NotificationsFailed: promauto.NewCounter(prometheus.CounterOpts{
			Name: "promarch_notifications_failed_total",
			Help: "Total number of notification emails that failed",
		}),

		LoginSuccessTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "promarch_admin_login_success_total",
			Help: "Total number of successful admin logins",
		}),

		LoginFailureTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "promarch_admin_login_failure_total",
			Help: "Total number of failed admin logins",
		}),
	}
}

// Handler 返回 /metrics 端点的处理器
func (m *Metrics) Handler() gin.HandlerFunc {
	h := promhttp.Handler()
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}

// Middleware 记录 HTTP 请求指标的 gin 中间件
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}

		c.Next()

		status := strconv.Itoa(c.Writer.Status())
		m.HTTPRequestsTotal.WithLabelValues(c.Request.Method, path, status).Inc()
		m.HTTPRequestDuration.WithLabelValues(c.Request.Method, path).Observe(time.Since(start).Seconds())
	}
}
