package storage

import (
	"context"

	"github.com/MosinFAM/comment-widget/internal/models"
	"github.com/stretchr/testify/mock"
)

type MockStorage struct {
	mock.Mock
}

func (m *MockStorage) GetComments(ctx context.Context, page, size int) (models.Page, error) {
	args := m.Called(ctx, page, size)
	return args.Get(0).(models.Page), args.Error(1)
}

func (m *MockStorage) AddComment(ctx context.Context, name, content string) (*models.Comment, error) {
	args := m.Called(ctx, name, content)
	comment, _ := args.Get(0).(*models.Comment)
	return comment, args.Error(1)
}

func (m *MockStorage) DeleteComment(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
