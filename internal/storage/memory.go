package storage

import (
	"context"
	"sync"

	"github.com/MosinFAM/comment-widget/internal/models"

	"go.uber.org/zap"
)

// MemoryStorage - хранилище в памяти
type MemoryStorage struct {
	comments []models.Comment
	nextID   int64
	logger   *zap.Logger
	mu       sync.RWMutex
}

// NewMemoryStorage создает новое in-memory хранилище
func NewMemoryStorage(logger *zap.Logger) *MemoryStorage {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MemoryStorage{
		nextID: 1,
		logger: logger.Named("memory"),
	}
}

// GetComments возвращает страницу комментариев и их общее количество
func (s *MemoryStorage) GetComments(_ context.Context, page, size int) (models.Page, error) {
	if err := validPage(page, size); err != nil {
		return models.Page{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	s.logger.Debug("fetching comments", zap.Int("page", page), zap.Int("size", size))

	total := len(s.comments)
	start, end := 0, total
	if size != AllComments {
		start = (page - 1) * size
		end = start + size
	}
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	result := make([]models.Comment, end-start)
	copy(result, s.comments[start:end])
	return models.Page{Comments: result, Total: total}, nil
}

// AddComment добавляет комментарий и присваивает ему ID
func (s *MemoryStorage) AddComment(_ context.Context, name, content string) (*models.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	comment := models.Comment{
		ID:      s.nextID,
		Name:    name,
		Content: content,
	}
	s.nextID++
	s.comments = append(s.comments, comment)

	s.logger.Info("comment added", zap.Int64("id", comment.ID), zap.String("name", name))
	return &comment, nil
}

// DeleteComment удаляет комментарий по ID
func (s *MemoryStorage) DeleteComment(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, c := range s.comments {
		if c.ID == id {
			s.comments = append(s.comments[:i], s.comments[i+1:]...)
			s.logger.Info("comment deleted", zap.Int64("id", id))
			return nil
		}
	}
	s.logger.Debug("comment not found", zap.Int64("id", id))
	return ErrNotFound
}

// Len возвращает количество сохранённых комментариев
func (s *MemoryStorage) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.comments)
}
