package notify

import (
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"

	"promarch/backend/internal/config"
	"promarch/backend/internal/domain"
)

// ErrTimeout 通知发送超时
var ErrTimeout = errors.New("notification send timed out")

// Mailer 负责把新询盘转发到站点收件箱。
//
// 通知是尽力而为的旁路：发送失败或超时只记日志，
// 绝不影响询盘本身的保存结果。邮件内容使用提交者的
// 原始字段值（入库转义与邮件展示无关）。
type Mailer struct {
	cfg config.NotifyConfig
	log *zap.Logger
}

// NewMailer 创建通知邮件发送器
func NewMailer(cfg config.NotifyConfig, log *zap.Logger) *Mailer {
	if log == nil {
		log = zap.NewNop()
	}

	return &Mailer{
		cfg: cfg,
		log: log,
	}
}

// Enabled 判断通知是否已配置
func (m *Mailer) Enabled() bool {
	return m.cfg.Host != "" && m.cfg.To != ""
}

// Notify 发送新询盘通知，受配置的超时约束。
//
// Reply-To 设置为提交者邮箱，收件人可以直接回复；
// 发件人固定用站点地址以保证送达率。
func (m *Mailer) Notify(message domain.ContactMessage) error {
	if !m.Enabled() {
		return nil
	}

	mail := gomail.NewMessage()
	mail.SetHeader("From", m.cfg.From)
	mail.SetHeader("To", m.cfg.To)
	mail.SetHeader("Reply-To", message.Email)
	mail.SetHeader("Subject", "New Inquiry: "+message.Subject)
	mail.SetBody("text/plain", formatBody(message))

	dialer := gomail.NewDialer(m.cfg.Host, m.cfg.Port, m.cfg.Username, m.cfg.Password)

	// gomail 没有 context 支持，用协程加定时器实现发送超时，
	// 防止缓慢的邮件中继拖住工作协程
	errCh := make(chan error, 1)
	go func() {
		errCh <- dialer.DialAndSend(mail)
	}()

	timeout := m.cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	select {
	case err := <-errCh:
		return err
	case <-time.After(timeout):
		return ErrTimeout
	}
}

// formatBody 组装通知正文，格式沿用原站的纯文本邮件
func formatBody(message domain.ContactMessage) string {
	return fmt.Sprintf(
		"You have received a new message from your website contact form.\n\n"+
			"Name: %s\nEmail: %s\nSubject: %s\n\nMessage:\n%s\n",
		message.Name, message.Email, message.Subject, message.Message,
	)
}
