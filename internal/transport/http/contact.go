package httptransport

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"promarch/backend/internal/domain"
	"promarch/backend/internal/service"
)

// ContactHandler 联系表单与职位列表处理器
type ContactHandler struct {
	contacts *service.ContactService
	log      *zap.Logger
}

// NewContactHandler 创建联系表单处理器
func NewContactHandler(contacts *service.ContactService, log *zap.Logger) *ContactHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &ContactHandler{
		contacts: contacts,
		log:      log,
	}
}

// submitMessage 接收联系表单提交（公开端点）。
//
// 入库成功即返回成功，邮件通知异步派发，不影响响应。
func (h *ContactHandler) submitMessage(c *gin.Context) {
	var input domain.SubmissionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		BadRequest(c, MsgIncompleteData)
		return
	}

	message, err := h.contacts.Submit(input)
	if err != nil {
		if domain.IsValidationError(err) {
			BadRequest(c, SubmissionErrorMessage(err))
			return
		}

		// 存储细节只进日志，不出响应
		h.log.Error("failed to persist contact submission", zap.Error(err))
		InternalError(c, MsgSubmitFailed)
		return
	}

	h.log.Info("contact submission accepted",
		zap.Uint("message_id", message.ID),
		zap.String("subject", message.Subject),
	)

	OK(c, MsgSubmitOK)
}

// listMessages 返回全部询盘，最新在前（管理端点）
func (h *ContactHandler) listMessages(c *gin.Context) {
	messages, err := h.contacts.List()
	if err != nil {
		h.log.Error("failed to list contact messages", zap.Error(err))
		InternalError(c, MsgListFailed)
		return
	}

	// 前端期望的就是裸数组
	OKData(c, messages)
}

type deleteMessageRequest struct {
	ID uint `json:"id"`
}

// deleteMessage 删除指定询盘（管理端点）。
//
// ID 不存在按成功处理（删除是幂等的）；格式非法返回 400。
func (h *ContactHandler) deleteMessage(c *gin.Context) {
	var req deleteMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.ID == 0 {
		BadRequest(c, MsgInvalidID)
		return
	}

	if err := h.contacts.Delete(req.ID); err != nil {
		h.log.Error("failed to delete contact message",
			zap.Uint("message_id", req.ID),
			zap.Error(err),
		)
		InternalError(c, MsgDeleteFailed)
		return
	}

	OK(c, MsgDeleted)
}

// listJobs 返回在招职位列表（公开端点）
func (h *ContactHandler) listJobs(c *gin.Context) {
	OKData(c, domain.JobListings())
}
