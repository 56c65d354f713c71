package memory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"promarch/backend/internal/domain"
)

func TestStore_SaveMessage(t *testing.T) {
	store := NewStore()

	t.Run("保存询盘分配ID与时间戳", func(t *testing.T) {
		message := &domain.ContactMessage{
			Name:    "Ada",
			Email:   "ada@x.com",
			Subject: "Hiring Staff",
			Message: "need 3 nurses",
		}

		err := store.SaveMessage(message)

		require.NoError(t, err)
		assert.Equal(t, uint(1), message.ID)
		assert.False(t, message.CreatedAt.IsZero())
	})

	t.Run("ID单调递增", func(t *testing.T) {
		first := &domain.ContactMessage{Name: "A", Email: "a@x.com"}
		second := &domain.ContactMessage{Name: "B", Email: "b@x.com"}

		require.NoError(t, store.SaveMessage(first))
		require.NoError(t, store.SaveMessage(second))

		assert.Greater(t, second.ID, first.ID)
	})

	t.Run("删除后的ID不复用", func(t *testing.T) {
		message := &domain.ContactMessage{Name: "C", Email: "c@x.com"}
		require.NoError(t, store.SaveMessage(message))
		lastID := message.ID

		require.NoError(t, store.DeleteMessage(lastID))

		next := &domain.ContactMessage{Name: "D", Email: "d@x.com"}
		require.NoError(t, store.SaveMessage(next))

		assert.Greater(t, next.ID, lastID)
	})
}

func TestStore_ListMessages(t *testing.T) {
	t.Run("空存储返回空切片", func(t *testing.T) {
		store := NewStore()

		messages, err := store.ListMessages()

		require.NoError(t, err)
		assert.NotNil(t, messages)
		assert.Empty(t, messages)
	})

	t.Run("按ID倒序返回", func(t *testing.T) {
		store := NewStore()
		for _, name := range []string{"first", "second", "third"} {
			require.NoError(t, store.SaveMessage(&domain.ContactMessage{Name: name, Email: name + "@x.com"}))
		}

		messages, err := store.ListMessages()

		require.NoError(t, err)
		require.Len(t, messages, 3)
		assert.Equal(t, "third", messages[0].Name)
		assert.Equal(t, "second", messages[1].Name)
		assert.Equal(t, "first", messages[2].Name)
		assert.Greater(t, messages[0].ID, messages[1].ID)
		assert.Greater(t, messages[1].ID, messages[2].ID)
	})

	t.Run("返回的是副本", func(t *testing.T) {
		store := NewStore()
		require.NoError(t, store.SaveMessage(&domain.ContactMessage{Name: "Ada", Email: "ada@x.com"}))

		messages, err := store.ListMessages()
		require.NoError(t, err)
		messages[0].Name = "mutated"

		again, err := store.ListMessages()
		require.NoError(t, err)
		assert.Equal(t, "Ada", again[0].Name)
	})
}

func TestStore_DeleteMessage(t *testing.T) {
	store := NewStore()

	message := &domain.ContactMessage{Name: "Ada", Email: "ada@x.com"}
	require.NoError(t, store.SaveMessage(message))

	t.Run("删除存在的询盘", func(t *testing.T) {
		err := store.DeleteMessage(message.ID)

		require.NoError(t, err)

		messages, err := store.ListMessages()
		require.NoError(t, err)
		assert.Empty(t, messages)
	})

	t.Run("重复删除同一ID仍然成功", func(t *testing.T) {
		err := store.DeleteMessage(message.ID)

		assert.NoError(t, err)
	})

	t.Run("删除不存在的ID不改变列表长度", func(t *testing.T) {
		require.NoError(t, store.SaveMessage(&domain.ContactMessage{Name: "B", Email: "b@x.com"}))

		before, err := store.ListMessages()
		require.NoError(t, err)

		require.NoError(t, store.DeleteMessage(99999))

		after, err := store.ListMessages()
		require.NoError(t, err)
		assert.Equal(t, len(before), len(after))
	})
}
