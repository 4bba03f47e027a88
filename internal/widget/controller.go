package widget

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/MosinFAM/comment-widget/internal/metrics"
	"github.com/MosinFAM/comment-widget/internal/storage"

	"go.uber.org/zap"
)

// Controller владеет состоянием списка и синхронизирует его с хранилищем.
// Безопасен для одновременного вызова из UI и таймера опроса.
type Controller struct {
	storage storage.Storage
	logger  *zap.Logger
	metrics *metrics.Metrics

	mu     sync.Mutex
	state  State
	issued uint64
}

// NewController создаёт контроллер на первой странице
func NewController(s storage.Storage, logger *zap.Logger, m *metrics.Metrics) *Controller {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Controller{
		storage: s,
		logger:  logger.Named("widget"),
		metrics: m,
		state:   NewState(),
	}
}

// State возвращает копию текущего состояния
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.clone()
}

// Refresh загружает текущую страницу.
// Ошибка сохраняется в State.Err, прежние комментарии остаются.
func (c *Controller) Refresh(ctx context.Context) (State, error) {
	st, clamped, err := c.fetch(ctx)
	if clamped {
		c.logger.Debug("current page out of range, refetching", zap.Int("page", st.CurrentPage))
		st, _, err = c.fetch(ctx)
	}
	return st, err
}

func (c *Controller) fetch(ctx context.Context) (State, bool, error) {
	c.mu.Lock()
	c.issued++
	seq := c.issued
	page, size := c.state.CurrentPage, c.state.PageSize
	c.mu.Unlock()

	result, err := c.storage.GetComments(ctx, page, size)
	c.metrics.ObserveRequest("get", err)

	c.mu.Lock()
	defer c.mu.Unlock()

	// Ответ устарел: после него уже выдан новый запрос или сменилась страница
	if seq != c.issued || page != c.state.CurrentPage {
		c.metrics.ObserveStale()
		c.logger.Debug("discarding stale page",
			zap.Uint64("seq", seq), zap.Uint64("latest", c.issued), zap.Int("page", page))
		return c.state.clone(), false, nil
	}

	if err != nil {
		c.state = c.state.Fail(err)
		c.logger.Warn("fetch page failed", zap.Int("page", page), zap.Error(err))
		return c.state.clone(), false, fmt.Errorf("fetch page %d: %w", page, err)
	}

	var clamped bool
	c.state, clamped = c.state.Apply(result)
	c.metrics.ObservePage(c.state.CurrentPage, c.state.Total)
	c.logger.Debug("page applied",
		zap.Int("page", c.state.CurrentPage), zap.Int("max_page", c.state.MaxPage),
		zap.Int("total", c.state.Total), zap.Int("count", len(c.state.Comments)))
	return c.state.clone(), clamped, nil
}

// Submit создаёт комментарий и перезагружает текущую страницу.
// Пустое имя или текст дают *ValidationError без запроса.
func (c *Controller) Submit(ctx context.Context, name, content string) error {
	if err := (Draft{Name: name, Content: content}).Validate(); err != nil {
		c.logger.Debug("submit rejected", zap.Error(err))
		return err
	}

	comment, err := c.storage.AddComment(ctx, name, content)
	c.metrics.ObserveRequest("add", err)
	if err != nil {
		c.fail(err)
		c.logger.Warn("add comment failed", zap.Error(err))
		return fmt.Errorf("add comment: %w", err)
	}
	if comment != nil {
		c.logger.Info("comment submitted", zap.Int64("id", comment.ID), zap.String("name", name))
	}

	_, err = c.Refresh(ctx)
	return err
}

// Delete удаляет комментарий по ID и перезагружает текущую страницу
func (c *Controller) Delete(ctx context.Context, id int64) error {
	err := c.storage.DeleteComment(ctx, id)
	c.metrics.ObserveRequest("delete", err)
	if err != nil {
		c.fail(err)
		c.logger.Warn("delete comment failed", zap.Int64("id", id), zap.Error(err))
		return fmt.Errorf("delete comment %d: %w", id, err)
	}
	c.logger.Info("comment deleted", zap.Int64("id", id))

	_, err = c.Refresh(ctx)
	return err
}

// Next переходит на следующую страницу; false, если она последняя
func (c *Controller) Next(ctx context.Context) (bool, error) {
	return c.move(ctx, State.Next)
}

// Prev переходит на предыдущую страницу; false на первой
func (c *Controller) Prev(ctx context.Context) (bool, error) {
	return c.move(ctx, State.Prev)
}

func (c *Controller) move(ctx context.Context, step func(State) (State, bool)) (bool, error) {
	c.mu.Lock()
	next, ok := step(c.state)
	if ok {
		c.state = next
	}
	c.mu.Unlock()

	if !ok {
		return false, nil
	}
	_, err := c.Refresh(ctx)
	return true, err
}

// GoTo открывает страницу page; страница за пределами MaxPage прижимается.
// При ошибке загрузки остаётся прежняя страница.
func (c *Controller) GoTo(ctx context.Context, page int) (State, error) {
	if page < 1 {
		return c.State(), fmt.Errorf("%w: page %d", storage.ErrInvalidPage, page)
	}
	c.mu.Lock()
	prev := c.state.CurrentPage
	if c.state.Loaded && page > c.state.MaxPage {
		page = c.state.MaxPage
	}
	c.state.CurrentPage = page
	c.state.Version++
	c.mu.Unlock()

	st, err := c.Refresh(ctx)
	if err == nil {
		return st, nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	// Возвращаем прежнюю страницу, если её не сменил другой вызов
	if c.state.CurrentPage == page && page != prev {
		c.state.CurrentPage = prev
		c.state.Version++
	}
	return c.state.clone(), err
}

// Poll перезагружает текущую страницу каждые interval, пока ctx не отменён.
// Ошибки не прерывают опрос: следующий тик повторяет запрос.
func (c *Controller) Poll(ctx context.Context, interval time.Duration, onUpdate func(State)) error {
	if interval <= 0 {
		return fmt.Errorf("poll interval must be positive, got %s", interval)
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			st, err := c.Refresh(ctx)
			if err != nil {
				if errors.Is(err, context.Canceled) || ctx.Err() != nil {
					return nil
				}
				c.logger.Warn("poll refresh failed, retrying on next tick", zap.Error(err))
			}
			if onUpdate != nil {
				onUpdate(st)
			}
		}
	}
}

func (c *Controller) fail(err error) {
	c.mu.Lock()
	c.state = c.state.Fail(err)
	c.mu.Unlock()
}
