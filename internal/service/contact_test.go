package service

import (
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"promarch/backend/internal/domain"
	"promarch/backend/internal/storage/memory"
)

// fakeNotifier 记录通知调用的测试替身
type fakeNotifier struct {
	mu       sync.Mutex
	messages []domain.ContactMessage
	err      error
	notified chan struct{}
}

func newFakeNotifier(err error) *fakeNotifier {
	return &fakeNotifier{
		err:      err,
		notified: make(chan struct{}, 16),
	}
}

func (f *fakeNotifier) Enabled() bool { return true }

func (f *fakeNotifier) Notify(message domain.ContactMessage) error {
	f.mu.Lock()
	f.messages = append(f.messages, message)
	f.mu.Unlock()
	f.notified <- struct{}{}
	return f.err
}

func (f *fakeNotifier) waitForNotify(t *testing.T) domain.ContactMessage {
	t.Helper()
	select {
	case <-f.notified:
	case <-time.After(2 * time.Second):
		t.Fatal("notification was not dispatched")
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.messages[len(f.messages)-1]
}

func newTestService(notifier Notifier) (*ContactService, *memory.Store) {
	store := memory.NewStore()
	svc := NewContactService(ContactServiceOptions{
		Repo:            store,
		Notifier:        notifier,
		DefaultSubject:  "No Subject",
		MaxMessageBytes: 8192,
	})
	return svc, store
}

func TestContactService_Submit(t *testing.T) {
	t.Run("有效提交入库成功", func(t *testing.T) {
		svc, store := newTestService(nil)

		message, err := svc.Submit(domain.SubmissionInput{
			Name:    "Ada",
			Email:   "ada@x.com",
			Subject: "Hiring Staff",
			Message: "need 3 nurses",
		})

		require.NoError(t, err)
		require.NotNil(t, message)
		assert.NotZero(t, message.ID)
		assert.False(t, message.CreatedAt.IsZero())

		messages, err := store.ListMessages()
		require.NoError(t, err)
		require.Len(t, messages, 1)
		assert.Equal(t, "Ada", messages[0].Name)
		assert.Equal(t, "ada@x.com", messages[0].Email)
		assert.Equal(t, "Hiring Staff", messages[0].Subject)
	})

	t.Run("连续提交ID严格递增", func(t *testing.T) {
		svc, _ := newTestService(nil)

		first, err := svc.Submit(domain.SubmissionInput{Name: "A", Email: "a@x.com"})
		require.NoError(t, err)
		second, err := svc.Submit(domain.SubmissionInput{Name: "B", Email: "b@x.com"})
		require.NoError(t, err)

		assert.Greater(t, second.ID, first.ID)
	})

	t.Run("缺少姓名校验失败且不入库", func(t *testing.T) {
		svc, store := newTestService(nil)

		message, err := svc.Submit(domain.SubmissionInput{Name: "", Email: "x@y.com"})

		assert.ErrorIs(t, err, domain.ErrNameRequired)
		assert.Nil(t, message)

		messages, err := store.ListMessages()
		require.NoError(t, err)
		assert.Empty(t, messages)
	})

	t.Run("缺少邮箱校验失败", func(t *testing.T) {
		svc, _ := newTestService(nil)

		_, err := svc.Submit(domain.SubmissionInput{Name: "Ada", Email: "  "})

		assert.ErrorIs(t, err, domain.ErrEmailRequired)
	})

	t.Run("空主题落库为默认值", func(t *testing.T) {
		svc, _ := newTestService(nil)

		message, err := svc.Submit(domain.SubmissionInput{Name: "Ada", Email: "ada@x.com"})

		require.NoError(t, err)
		assert.Equal(t, "No Subject", message.Subject)
	})

	t.Run("正文超限被拒绝", func(t *testing.T) {
		svc, _ := newTestService(nil)

		_, err := svc.Submit(domain.SubmissionInput{
			Name:    "Ada",
			Email:   "ada@x.com",
			Message: strings.Repeat("x", 9000),
		})

		assert.ErrorIs(t, err, domain.ErrMessageTooLarge)
	})
}

func TestContactService_SubmitNotification(t *testing.T) {
	t.Run("入库成功后派发通知", func(t *testing.T) {
		notifier := newFakeNotifier(nil)
		svc, _ := newTestService(notifier)

		message, err := svc.Submit(domain.SubmissionInput{
			Name:    "Ada",
			Email:   "ada@x.com",
			Subject: "Hiring Staff",
		})
		require.NoError(t, err)

		notified := notifier.waitForNotify(t)
		assert.Equal(t, message.ID, notified.ID)
		assert.Equal(t, "ada@x.com", notified.Email)
	})

	t.Run("通知失败不影响提交结果", func(t *testing.T) {
		notifier := newFakeNotifier(errors.New("smtp relay down"))
		svc, store := newTestService(notifier)

		message, err := svc.Submit(domain.SubmissionInput{Name: "Ada", Email: "ada@x.com"})

		require.NoError(t, err)
		require.NotNil(t, message)
		notifier.waitForNotify(t)

		messages, err := store.ListMessages()
		require.NoError(t, err)
		assert.Len(t, messages, 1)
	})

	t.Run("校验失败不派发通知", func(t *testing.T) {
		notifier := newFakeNotifier(nil)
		svc, _ := newTestService(notifier)

		_, err := svc.Submit(domain.SubmissionInput{Name: "", Email: "x@y.com"})
		require.Error(t, err)

		select {
		case <-notifier.notified:
			t.Fatal("notification should not be dispatched for rejected submission")
		case <-time.After(100 * time.Millisecond):
		}
	})
}

func TestContactService_List(t *testing.T) {
	t.Run("按ID倒序返回", func(t *testing.T) {
		svc, _ := newTestService(nil)

		for _, name := range []string{"first", "second", "third"} {
			_, err := svc.Submit(domain.SubmissionInput{Name: name, Email: name + "@x.com"})
			require.NoError(t, err)
		}

		messages, err := svc.List()

		require.NoError(t, err)
		require.Len(t, messages, 3)
		assert.Equal(t, "third", messages[0].Name)
		assert.Equal(t, "first", messages[2].Name)
	})

	t.Run("空存储返回空切片", func(t *testing.T) {
		svc, _ := newTestService(nil)

		messages, err := svc.List()

		require.NoError(t, err)
		assert.NotNil(t, messages)
		assert.Empty(t, messages)
	})
}

func TestContactService_Delete(t *testing.T) {
	t.Run("删除后列表不再包含", func(t *testing.T) {
		svc, _ := newTestService(nil)

		message, err := svc.Submit(domain.SubmissionInput{Name: "Ada", Email: "ada@x.com"})
		require.NoError(t, err)

		require.NoError(t, svc.Delete(message.ID))

		messages, err := svc.List()
		require.NoError(t, err)
		assert.Empty(t, messages)
	})

	t.Run("重复删除幂等", func(t *testing.T) {
		svc, _ := newTestService(nil)

		message, err := svc.Submit(domain.SubmissionInput{Name: "Ada", Email: "ada@x.com"})
		require.NoError(t, err)

		assert.NoError(t, svc.Delete(message.ID))
		assert.NoError(t, svc.Delete(message.ID))
	})

	t.Run("删除不存在的ID返回成功且列表长度不变", func(t *testing.T) {
		svc, _ := newTestService(nil)

		_, err := svc.Submit(domain.SubmissionInput{Name: "Ada", Email: "ada@x.com"})
		require.NoError(t, err)

		before, err := svc.List()
		require.NoError(t, err)

		assert.NoError(t, svc.Delete(42424242))

		after, err := svc.List()
		require.NoError(t, err)
		assert.Equal(t, len(before), len(after))
	})
}
