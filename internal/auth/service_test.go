package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"promarch/backend/internal/config"
	"promarch/backend/internal/session"
)

func newTestConfig(secret, hash string) *config.Config {
	return &config.Config{
		Admin: config.AdminConfig{
			Secret:     secret,
			SecretHash: hash,
		},
		Session: config.SessionConfig{
			TTL: time.Hour,
		},
	}
}

func TestService_Authenticate(t *testing.T) {
	t.Run("正确密钥签发已认证会话", func(t *testing.T) {
		sessions := session.NewMemoryStore()
		defer sessions.Close()
		service := NewService(newTestConfig("letmein", ""), sessions)

		sess, err := service.Authenticate("letmein")

		require.NoError(t, err)
		require.NotNil(t, sess)
		assert.NotEmpty(t, sess.ID)
		assert.True(t, sess.Authenticated)
		assert.True(t, service.IsAuthenticated(sess.ID))
	})

	t.Run("错误密钥返回凭证错误", func(t *testing.T) {
		sessions := session.NewMemoryStore()
		defer sessions.Close()
		service := NewService(newTestConfig("letmein", ""), sessions)

		sess, err := service.Authenticate("wrong")

		assert.ErrorIs(t, err, ErrInvalidCredentials)
		assert.Nil(t, sess)
	})

	t.Run("空密钥返回凭证错误", func(t *testing.T) {
		sessions := session.NewMemoryStore()
		defer sessions.Close()
		service := NewService(newTestConfig("letmein", ""), sessions)

		sess, err := service.Authenticate("")

		assert.ErrorIs(t, err, ErrInvalidCredentials)
		assert.Nil(t, sess)
	})

	t.Run("未配置密钥返回配置错误", func(t *testing.T) {
		sessions := session.NewMemoryStore()
		defer sessions.Close()
		service := NewService(newTestConfig("", ""), sessions)

		sess, err := service.Authenticate("anything")

		assert.ErrorIs(t, err, ErrNotConfigured)
		assert.NotErrorIs(t, err, ErrInvalidCredentials)
		assert.Nil(t, sess)
	})

	t.Run("bcrypt哈希密钥认证成功", func(t *testing.T) {
		hash, err := bcrypt.GenerateFromPassword([]byte("letmein"), bcrypt.MinCost)
		require.NoError(t, err)

		sessions := session.NewMemoryStore()
		defer sessions.Close()
		service := NewService(newTestConfig("", string(hash)), sessions)

		sess, err := service.Authenticate("letmein")

		require.NoError(t, err)
		assert.True(t, sess.Authenticated)

		_, err = service.Authenticate("wrong")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("哈希优先于明文", func(t *testing.T) {
		hash, err := bcrypt.GenerateFromPassword([]byte("hashed-secret"), bcrypt.MinCost)
		require.NoError(t, err)

		sessions := session.NewMemoryStore()
		defer sessions.Close()
		service := NewService(newTestConfig("plain-secret", string(hash)), sessions)

		_, err = service.Authenticate("plain-secret")
		assert.ErrorIs(t, err, ErrInvalidCredentials)

		sess, err := service.Authenticate("hashed-secret")
		require.NoError(t, err)
		assert.True(t, sess.Authenticated)
	})
}

func TestService_Deauthenticate(t *testing.T) {
	sessions := session.NewMemoryStore()
	defer sessions.Close()
	service := NewService(newTestConfig("letmein", ""), sessions)

	t.Run("注销后会话失效", func(t *testing.T) {
		sess, err := service.Authenticate("letmein")
		require.NoError(t, err)
		require.True(t, service.IsAuthenticated(sess.ID))

		err = service.Deauthenticate(sess.ID)

		require.NoError(t, err)
		assert.False(t, service.IsAuthenticated(sess.ID))
	})

	t.Run("注销不存在的会话不报错", func(t *testing.T) {
		assert.NoError(t, service.Deauthenticate("nonexistent"))
		assert.NoError(t, service.Deauthenticate(""))
	})
}

func TestService_IsAuthenticated(t *testing.T) {
	sessions := session.NewMemoryStore()
	defer sessions.Close()
	service := NewService(newTestConfig("letmein", ""), sessions)

	t.Run("空会话ID未认证", func(t *testing.T) {
		assert.False(t, service.IsAuthenticated(""))
	})

	t.Run("未知会话ID未认证", func(t *testing.T) {
		assert.False(t, service.IsAuthenticated("unknown-session-id"))
	})

	t.Run("过期会话未认证", func(t *testing.T) {
		sess := &session.Session{ID: session.NewID(), Authenticated: true}
		require.NoError(t, sessions.Save(sess, -time.Minute))

		assert.False(t, service.IsAuthenticated(sess.ID))
	})
}
