package domain

import (
	"errors"
	"strings"
)

// 验证相关的错误定义
var (
	ErrNameRequired    = errors.New("name is required")
	ErrEmailRequired   = errors.New("email is required")
	ErrMessageTooLarge = errors.New("message body too large")
)

// 字段长度限制，与线上 contact_messages 表的列宽保持一致
const (
	MaxNameLength    = 50
	MaxEmailLength   = 50
	MaxSubjectLength = 100
)

// SubmissionInput 联系表单的原始提交内容。
//
// Subject 与 Message 可选；Name 与 Email 仅要求非空，
// 邮箱不做可达性验证（原站也只检查了存在性）。
type SubmissionInput struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// Normalize 清洗提交内容：去除首尾空白，填充默认主题，
// 截断超长的短字段。正文超限由 Validate 负责拒绝而不是截断，
// 以便调用方能把错误反馈给提交者。
func (in *SubmissionInput) Normalize(defaultSubject string) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	in.Subject = strings.TrimSpace(in.Subject)

	if in.Subject == "" {
		in.Subject = defaultSubject
	}

	if len(in.Name) > MaxNameLength {
		in.Name = in.Name[:MaxNameLength]
	}
	if len(in.Email) > MaxEmailLength {
		in.Email = in.Email[:MaxEmailLength]
	}
	if len(in.Subject) > MaxSubjectLength {
		in.Subject = in.Subject[:MaxSubjectLength]
	}
}

// Validate 校验提交内容
//
// 参数:
//   - maxMessageBytes: 正文最大字节数，<=0 表示不限制
//
// 返回值:
//   - error: 首个校验失败原因，全部通过返回 nil
func (in *SubmissionInput) Validate(maxMessageBytes int) error {
	if in.Name == "" {
		return ErrNameRequired
	}
	if in.Email == "" {
		return ErrEmailRequired
	}
	if maxMessageBytes > 0 && len(in.Message) > maxMessageBytes {
		return ErrMessageTooLarge
	}
	return nil
}

// IsValidationError 判断错误是否属于提交内容校验错误
func IsValidationError(err error) bool {
	return errors.Is(err, ErrNameRequired) ||
		errors.Is(err, ErrEmailRequired) ||
		errors.Is(err, ErrMessageTooLarge)
}
