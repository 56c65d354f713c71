package service

import (
	"go.uber.org/zap"

	"promarch/backend/internal/domain"
	"promarch/backend/internal/monitoring"
	"promarch/backend/internal/pool"
	"promarch/backend/internal/storage"
)

// Notifier 新询盘通知接口
type Notifier interface {
	Enabled() bool
	Notify(message domain.ContactMessage) error
}

// ContactService 封装询盘的提交、查询与删除逻辑。
type ContactService struct {
	repo     storage.MessageRepository
	notifier Notifier
	workers  *pool.WorkerPool
	metrics  *monitoring.Metrics
	log      *zap.Logger

	defaultSubject  string
	maxMessageBytes int
}

// ContactServiceOptions 构造 ContactService 的依赖项
type ContactServiceOptions struct {
	Repo            storage.MessageRepository
	Notifier        Notifier // 可为 nil，表示关闭通知
	Workers         *pool.WorkerPool
	Metrics         *monitoring.Metrics // 可为 nil
	Logger          *zap.Logger
	DefaultSubject  string
	MaxMessageBytes int
}

// NewContactService 创建询盘业务服务
func NewContactService(opts ContactServiceOptions) *ContactService {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	defaultSubject := opts.DefaultSubject
	if defaultSubject == "" {
		defaultSubject = "No Subject"
	}

	return &ContactService{
		repo:            opts.Repo,
		notifier:        opts.Notifier,
		workers:         opts.Workers,
		metrics:         opts.Metrics,
		log:             log,
		defaultSubject:  defaultSubject,
		maxMessageBytes: opts.MaxMessageBytes,
	}
}

// Submit 接收一条联系表单提交。
//
// 流程：清洗 → 校验 → 入库 → 派发通知。通知在工作协程里
// 异步执行，失败只记日志和指标；入库一旦成功，返回值
// 就是成功，不会被通知结果改写。
func (s *ContactService) Submit(input domain.SubmissionInput) (*domain.ContactMessage, error) {
	input.Normalize(s.defaultSubject)

	if err := input.Validate(s.maxMessageBytes); err != nil {
		if s.metrics != nil {
			s.metrics.SubmissionsRejected.Inc()
		}
		return nil, err
	}

	message := &domain.ContactMessage{
		Name:    input.Name,
		Email:   input.Email,
		Subject: input.Subject,
		Message: input.Message,
	}

	if err := s.repo.SaveMessage(message); err != nil {
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.SubmissionsTotal.Inc()
	}

	s.dispatchNotification(*message)

	return message, nil
}

// dispatchNotification 异步派发新询盘通知
func (s *ContactService) dispatchNotification(message domain.ContactMessage) {
	if s.notifier == nil || !s.notifier.Enabled() {
		return
	}

	task := func() {
		if err := s.notifier.Notify(message); err != nil {
			if s.metrics != nil {
				s.metrics.NotificationsFailed.Inc()
			}
			s.log.Warn("notification email failed",
				zap.Uint("message_id", message.ID),
				zap.Error(err),
			)
			return
		}

		if s.metrics != nil {
			s.metrics.NotificationsSent.Inc()
		}
	}

	if s.workers != nil {
		// 队列已满时丢弃通知而不是阻塞提交请求
		if !s.workers.TrySubmit(task) {
			if s.metrics != nil {
				s.metrics.NotificationsFailed.Inc()
			}
			s.log.Warn("notification queue full, dropping notification",
				zap.Uint("message_id", message.ID),
			)
		}
		return
	}

	go task()
}

// List 返回全部询盘，最新在前。
func (s *ContactService) List() ([]domain.ContactMessage, error) {
	return s.repo.ListMessages()
}

// Delete 删除指定询盘；ID 不存在同样返回成功。
func (s *ContactService) Delete(id uint) error {
	if err := s.repo.DeleteMessage(id); err != nil {
		return err
	}

	if s.metrics != nil {
		s.metrics.MessagesDeleted.Inc()
	}
	return nil
}
