package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/MosinFAM/comment-widget/internal/models"
)

// Storage - интерфейс для всех типов хранилищ (in-memory и HTTP Store API)
type Storage interface {
	GetComments(ctx context.Context, page, size int) (models.Page, error)
	AddComment(ctx context.Context, name, content string) (*models.Comment, error)
	DeleteComment(ctx context.Context, id int64) error
}

// AllComments - size, при котором возвращаются все комментарии без пагинации
const AllComments = -1

var (
	ErrNotFound    = errors.New("comment not found")
	ErrInvalidPage = errors.New("invalid page parameters")
)

// NetworkError - запрос к Store API не удался или вернул не-2xx ответ
type NetworkError struct {
	Op     string
	Status int
	Msg    string
	Err    error
}

func (e *NetworkError) Error() string {
	switch {
	case e.Status != 0 && e.Msg != "":
		return fmt.Sprintf("%s: status %d: %s", e.Op, e.Status, e.Msg)
	case e.Status != 0:
		return fmt.Sprintf("%s: status %d", e.Op, e.Status)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return e.Op + ": request failed"
}

func (e *NetworkError) Unwrap() error { return e.Err }

func validPage(page, size int) error {
	if page < 1 {
		return fmt.Errorf("%w: page %d", ErrInvalidPage, page)
	}
	if size == 0 || size < AllComments {
		return fmt.Errorf("%w: size %d", ErrInvalidPage, size)
	}
	return nil
}
