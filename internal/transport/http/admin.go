package httptransport

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"promarch/backend/internal/auth"
	"promarch/backend/internal/config"
	"promarch/backend/internal/monitoring"
)

// AdminHandler 管理后台的登录与注销处理器
type AdminHandler struct {
	auth    *auth.Service
	session config.SessionConfig
	metrics *monitoring.Metrics
	log     *zap.Logger
}

// NewAdminHandler 创建管理后台处理器
func NewAdminHandler(authService *auth.Service, session config.SessionConfig, metrics *monitoring.Metrics, log *zap.Logger) *AdminHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &AdminHandler{
		auth:    authService,
		session: session,
		metrics: metrics,
		log:     log,
	}
}

type loginRequest struct {
	Password string `json:"password"`
}

// login 校验管理密钥并签发会话 Cookie。
//
// 失败响应不区分"密码为空"与"密码错误"；
// 密钥未配置属于部署故障，返回 500 并在日志里报错。
func (h *AdminHandler) login(c *gin.Context) {
	var req loginRequest
	// 请求体解析失败按空密码处理，走统一的拒绝分支
	_ = c.ShouldBindJSON(&req)

	sess, err := h.auth.Authenticate(req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrNotConfigured) {
			h.log.Error("admin login attempted but no admin secret is configured")
			InternalError(c, MsgInternalError)
			return
		}

		if h.metrics != nil {
			h.metrics.LoginFailureTotal.Inc()
		}
		h.log.Warn("admin login rejected", zap.String("ip", c.ClientIP()))
		LoginFailed(c)
		return
	}

	h.setSessionCookie(c, sess.ID, int(h.session.TTL.Seconds()))

	if h.metrics != nil {
		h.metrics.LoginSuccessTotal.Inc()
	}
	h.log.Info("admin login succeeded", zap.String("ip", c.ClientIP()))

	LoginOK(c)
}

// logout 注销当前会话并清除 Cookie。
//
// 没有有效会话也返回成功：注销的目标状态是"未登录"，
// 已经达成就没有失败可言。
func (h *AdminHandler) logout(c *gin.Context) {
	if sessionID, err := c.Cookie(h.session.CookieName); err == nil && sessionID != "" {
		if err := h.auth.Deauthenticate(sessionID); err != nil {
			h.log.Warn("failed to remove session on logout", zap.Error(err))
		}
	}

	// MaxAge -1 让浏览器立刻丢弃 Cookie
	h.setSessionCookie(c, "", -1)

	LogoutOK(c)
}

// setSessionCookie 按配置写入会话 Cookie。
//
// SameSite=None 时强制 Secure：浏览器会直接丢弃
// 非 Secure 的跨站 Cookie。
func (h *AdminHandler) setSessionCookie(c *gin.Context, value string, maxAge int) {
	secure := h.session.Secure
	if h.session.SameSite == "none" {
		secure = true
	}

	c.SetSameSite(sameSiteMode(h.session.SameSite))
	c.SetCookie(h.session.CookieName, value, maxAge, "/", "", secure, true)
}

// sameSiteMode 把配置字符串翻译为 http.SameSite
func sameSiteMode(mode string) http.SameSite {
	switch mode {
	case "strict":
		return http.SameSiteStrictMode
	case "none":
		return http.SameSiteNoneMode
	default:
		return http.SameSiteLaxMode
	}
}
