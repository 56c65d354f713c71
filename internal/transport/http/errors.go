package httptransport

import (
	"errors"

	"promarch/backend/internal/domain"
)

// API 对外的英文提示消息。
//
// 前端管理后台和联系表单已经在按这些字符串做分支判断，
// 改动属于破坏性变更，新增可以，修改要跟前端一起发版。
const (
	MsgSubmitOK       = "Message sent successfully"
	MsgIncompleteData = "Incomplete data"
	MsgMessageTooLong = "Message body too large"
	MsgSubmitFailed   = "Failed to send message"

	MsgLoginVerified = "Authorization verified."
	MsgLoginRejected = "Unauthorized: Incorrect access credentials."

	MsgUnauthorized = "Unauthorized"
	MsgDeleted      = "Deleted successfully"
	MsgInvalidID    = "Invalid message id"

	MsgListFailed    = "Failed to load messages"
	MsgDeleteFailed  = "Failed to delete message"
	MsgInternalError = "Internal server error"
)

// SubmissionErrorMessage 把提交校验错误翻译成对外提示。
//
// 缺名字和缺邮箱统一归为 "Incomplete data"，正文超限单独提示，
// 因为提交者能自己修正。
func SubmissionErrorMessage(err error) string {
	switch {
	case errors.Is(err, domain.ErrNameRequired), errors.Is(err, domain.ErrEmailRequired):
		return MsgIncompleteData
	case errors.Is(err, domain.ErrMessageTooLarge):
		return MsgMessageTooLong
	default:
		return MsgIncompleteData
	}
}
