package auth

import (
	"crypto/subtle"
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"

	"promarch/backend/internal/config"
	"promarch/backend/internal/session"
)

var (
	// ErrNotConfigured 管理密钥未配置，属于部署错误而非认证失败
	ErrNotConfigured = errors.New("admin secret is not configured")
	// ErrInvalidCredentials 凭证无效（空密码与错误密码统一返回此错误）
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// Service 管理后台的会话门禁。
//
// 整站只有一个共享管理密钥，没有用户体系：认证结果是
// 一个会话级的布尔能力，不是用户身份。
type Service struct {
	secret     string
	secretHash string
	sessions   session.Store
	ttl        time.Duration
}

// NewService 创建会话门禁服务
func NewService(cfg *config.Config, sessions session.Store) *Service {
	return &Service{
		secret:     cfg.Admin.Secret,
		secretHash: cfg.Admin.SecretHash,
		sessions:   sessions,
		ttl:        cfg.Session.TTL,
	}
}

// Authenticate 校验提交的密钥并签发已认证会话。
//
// 密钥比较使用常量时间算法（明文用 subtle，哈希用 bcrypt），
// 失败原因不区分"密码为空"与"密码错误"，避免给探测者提示。
//
// 返回值:
//   - *session.Session: 新签发的已认证会话
//   - error: ErrNotConfigured / ErrInvalidCredentials / 存储错误
func (s *Service) Authenticate(secret string) (*session.Session, error) {
	if s.secret == "" && s.secretHash == "" {
		return nil, ErrNotConfigured
	}

	if secret == "" || !s.matches(secret) {
		return nil, ErrInvalidCredentials
	}

	sess := &session.Session{
		ID:            session.NewID(),
		Authenticated: true,
	}

	if err := s.sessions.Save(sess, s.ttl); err != nil {
		return nil, err
	}

	return sess, nil
}

// matches 以常量时间比较提交的密钥
func (s *Service) matches(secret string) bool {
	if s.secretHash != "" {
		return bcrypt.CompareHashAndPassword([]byte(s.secretHash), []byte(secret)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(s.secret), []byte(secret)) == 1
}

// Deauthenticate 注销会话；会话不存在时不报错。
func (s *Service) Deauthenticate(sessionID string) error {
	if sessionID == "" {
		return nil
	}
	return s.sessions.Delete(sessionID)
}

// IsAuthenticated 检查会话是否已认证。
//
// 纯读取，永不返回错误：存储故障和会话缺失
// 一律按未认证处理。
func (s *Service) IsAuthenticated(sessionID string) bool {
	if sessionID == "" {
		return false
	}

	sess, err := s.sessions.Get(sessionID)
	if err != nil || sess == nil {
		return false
	}

	return sess.Authenticated
}

// Refresh 顺延已认证会话的有效期（滑动过期）。
func (s *Service) Refresh(sess *session.Session) error {
	return s.sessions.Save(sess, s.ttl)
}
