package notify

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"promarch/backend/internal/config"
	"promarch/backend/internal/domain"
)

func TestMailer_Enabled(t *testing.T) {
	testCases := []struct {
		name     string
		cfg      config.NotifyConfig
		expected bool
	}{
		{
			name:     "完整配置已启用",
			cfg:      config.NotifyConfig{Host: "smtp.example.com", To: "inbox@example.com"},
			expected: true,
		},
		{
			name:     "缺少主机未启用",
			cfg:      config.NotifyConfig{To: "inbox@example.com"},
			expected: false,
		},
		{
			name:     "缺少收件人未启用",
			cfg:      config.NotifyConfig{Host: "smtp.example.com"},
			expected: false,
		},
		{
			name:     "空配置未启用",
			cfg:      config.NotifyConfig{},
			expected: false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			mailer := NewMailer(tc.cfg, nil)
			assert.Equal(t, tc.expected, mailer.Enabled())
		})
	}
}

func TestMailer_NotifyDisabled(t *testing.T) {
	t.Run("未配置时直接成功", func(t *testing.T) {
		mailer := NewMailer(config.NotifyConfig{}, nil)

		err := mailer.Notify(domain.ContactMessage{Name: "Ada", Email: "ada@x.com"})

		assert.NoError(t, err)
	})
}

func TestMailer_NotifyTimeout(t *testing.T) {
	t.Run("无法连接的中继在超时后返回", func(t *testing.T) {
		// 保留地址，连接会挂起或被拒绝；超时必须先触发
		mailer := NewMailer(config.NotifyConfig{
			Host:    "192.0.2.1", // TEST-NET-1，不可路由
			Port:    25,
			To:      "inbox@example.com",
			From:    "noreply@example.com",
			Timeout: 100 * time.Millisecond,
		}, nil)

		start := time.Now()
		err := mailer.Notify(domain.ContactMessage{Name: "Ada", Email: "ada@x.com", Subject: "Hi"})

		assert.Error(t, err)
		assert.Less(t, time.Since(start), 5*time.Second)
	})
}

func TestFormatBody(t *testing.T) {
	message := domain.ContactMessage{
		Name:    "Ada",
		Email:   "ada@x.com",
		Subject: "Hiring Staff",
		Message: "need 3 nurses",
	}

	body := formatBody(message)

	assert.True(t, strings.HasPrefix(body, "You have received a new message"))
	assert.Contains(t, body, "Name: Ada")
	assert.Contains(t, body, "Email: ada@x.com")
	assert.Contains(t, body, "Subject: Hiring Staff")
	assert.Contains(t, body, "need 3 nurses")
}
