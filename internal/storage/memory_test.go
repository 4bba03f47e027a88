package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetComments_Empty(t *testing.T) {
	storage := NewMemoryStorage(nil)

	page, err := storage.GetComments(context.Background(), 1, 5)

	// Пустое хранилище - не ошибка, а пустая страница
	assert.NoError(t, err)
	assert.Empty(t, page.Comments)
	assert.Equal(t, 0, page.Total)
}

func TestGetComments_InvalidParams(t *testing.T) {
	storage := NewMemoryStorage(nil)

	_, err := storage.GetComments(context.Background(), 0, 5)
	assert.ErrorIs(t, err, ErrInvalidPage)

	_, err = storage.GetComments(context.Background(), 1, 0)
	assert.ErrorIs(t, err, ErrInvalidPage)

	_, err = storage.GetComments(context.Background(), 1, -2)
	assert.ErrorIs(t, err, ErrInvalidPage)
}

func TestAddComment(t *testing.T) {
	storage := NewMemoryStorage(nil)

	first, err := storage.AddComment(context.Background(), "alice", "hello")
	assert.NoError(t, err)
	second, err := storage.AddComment(context.Background(), "bob", "hi")
	assert.NoError(t, err)

	// ID присваиваются по возрастанию
	assert.Equal(t, int64(1), first.ID)
	assert.Equal(t, int64(2), second.ID)
	assert.Equal(t, "alice", first.Name)
	assert.Equal(t, "hello", first.Content)
	assert.Equal(t, 2, storage.Len())
}

func TestGetComments_Pagination(t *testing.T) {
	storage := NewMemoryStorage(nil)
	ctx := context.Background()

	for i := 0; i < 12; i++ {
		_, err := storage.AddComment(ctx, "user", "comment")
		assert.NoError(t, err)
	}

	var counts []int
	for p := 1; p <= 4; p++ {
		page, err := storage.GetComments(ctx, p, 5)
		assert.NoError(t, err)
		assert.Equal(t, 12, page.Total)
		counts = append(counts, len(page.Comments))
	}

	assert.Equal(t, []int{5, 5, 2, 0}, counts)

	page, err := storage.GetComments(ctx, 3, 5)
	assert.NoError(t, err)
	assert.Equal(t, int64(11), page.Comments[0].ID)
}

func TestGetComments_All(t *testing.T) {
	storage := NewMemoryStorage(nil)
	ctx := context.Background()

	for i := 0; i < 7; i++ {
		_, _ = storage.AddComment(ctx, "user", "comment")
	}

	page, err := storage.GetComments(ctx, 1, AllComments)
	assert.NoError(t, err)
	assert.Len(t, page.Comments, 7)
	assert.Equal(t, 7, page.Total)
}

func TestGetComments_ReturnsCopy(t *testing.T) {
	storage := NewMemoryStorage(nil)
	ctx := context.Background()
	_, _ = storage.AddComment(ctx, "alice", "hello")

	page, err := storage.GetComments(ctx, 1, 5)
	assert.NoError(t, err)
	page.Comments[0].Content = "mutated"

	again, err := storage.GetComments(ctx, 1, 5)
	assert.NoError(t, err)
	assert.Equal(t, "hello", again.Comments[0].Content)
}

func TestDeleteComment(t *testing.T) {
	storage := NewMemoryStorage(nil)
	ctx := context.Background()

	c, err := storage.AddComment(ctx, "alice", "hello")
	assert.NoError(t, err)

	assert.NoError(t, storage.DeleteComment(ctx, c.ID))
	assert.Equal(t, 0, storage.Len())

	// Повторное удаление - ErrNotFound
	assert.ErrorIs(t, storage.DeleteComment(ctx, c.ID), ErrNotFound)
}

func TestDeleteComment_KeepsIDsUnique(t *testing.T) {
	storage := NewMemoryStorage(nil)
	ctx := context.Background()

	a, _ := storage.AddComment(ctx, "a", "1")
	assert.NoError(t, storage.DeleteComment(ctx, a.ID))
	b, _ := storage.AddComment(ctx, "b", "2")

	assert.NotEqual(t, a.ID, b.ID)
}
